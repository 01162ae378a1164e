package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rhood_server/models"
	"rhood_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for match generation,
// applications, feedback, and performance history
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// GetMatches handles fetching a user's matches, optionally filtered by status
func (mc *MatchController) GetMatches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID := query.Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	matches, err := mc.MatchService.GetMatches(r.Context(), userID, query.Get("status"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}

// GenerateMatches handles scoring all active opportunities for a user
func (mc *MatchController) GenerateMatches(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
		Limit  int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	matches, err := mc.MatchService.GenerateMatches(r.Context(), payload.UserID, payload.Limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Matches generated successfully",
		"matches": matches,
		"count":   len(matches),
	})
}

// UpdateMatchStatus handles transitioning a match to a new status
func (mc *MatchController) UpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.UpdateMatchStatus(r.Context(), matchID, payload.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Match status updated successfully",
		"match":   match,
	})
}

// ApplyToOpportunity handles a user applying to an opportunity
func (mc *MatchController) ApplyToOpportunity(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID        string `json:"userId"`
		OpportunityID string `json:"opportunityId"`
		Message       string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	application, err := mc.MatchService.ApplyToOpportunity(r.Context(), payload.UserID, payload.OpportunityID, payload.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// GetRemainingApplications handles checking today's remaining application quota
func (mc *MatchController) GetRemainingApplications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	remaining, err := mc.MatchService.RemainingDailyApplications(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"remaining": remaining,
		"limit":     models.DailyApplicationLimit,
	})
}

// SubmitFeedback handles recording feedback on a match
func (mc *MatchController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var feedback models.MatchFeedback
	if err := json.NewDecoder(r.Body).Decode(&feedback); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := mc.MatchService.SubmitFeedback(r.Context(), feedback); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Feedback submitted successfully",
	})
}

// GetPerformances handles fetching a DJ's performance history
func (mc *MatchController) GetPerformances(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID := query.Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	performances, err := mc.MatchService.GetPerformanceHistory(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"performances": performances,
		"count":        len(performances),
	})
}

// AddPerformance handles appending a performance history entry
func (mc *MatchController) AddPerformance(w http.ResponseWriter, r *http.Request) {
	var performance models.Performance
	if err := json.NewDecoder(r.Body).Decode(&performance); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := mc.MatchService.AddPerformance(r.Context(), performance); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Performance recorded successfully",
		"performance": performance,
	})
}

// GetAnalytics handles fetching a user's matchmaking analytics
func (mc *MatchController) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	analytics, err := mc.MatchService.GetAnalytics(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"analytics": analytics,
	})
}
