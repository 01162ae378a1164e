package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"rhood_server/services"
)

// AIController handles HTTP requests for AI-powered matching and insights
type AIController struct {
	AIMatchService *services.AIMatchService
}

// NewAIController creates a new AIController instance
func NewAIController(aiMatchService *services.AIMatchService) *AIController {
	return &AIController{AIMatchService: aiMatchService}
}

// GenerateAIMatches handles running the AI matching pipeline for a user
func (ac *AIController) GenerateAIMatches(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID   string `json:"userId"`
		Scenario string `json:"scenario"`
		Limit    int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	response, err := ac.AIMatchService.GenerateAIMatches(r.Context(), payload.UserID, payload.Scenario, payload.Limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"matches": response.Matches,
		"summary": response.Summary,
	})
}

// GenerateInsights handles requesting AI career insights for a user
func (ac *AIController) GenerateInsights(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	insights, err := ac.AIMatchService.GenerateInsights(r.Context(), payload.UserID)
	if err != nil {
		var aiErr *services.AIServiceError
		var malformedErr *services.MalformedAIResponseError
		if errors.As(err, &aiErr) || errors.As(err, &malformedErr) {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"insights": insights,
	})
}

// GetScenarios handles listing the available AI matching scenarios
func (ac *AIController) GetScenarios(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"scenarios": services.AvailableScenarios(),
	})
}
