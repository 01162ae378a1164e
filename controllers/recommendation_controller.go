package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rhood_server/services"
)

// RecommendationController handles HTTP requests for mix recommendations
// and embedding operations
type RecommendationController struct {
	RecommendationService *services.RecommendationService
	EmbeddingService      *services.EmbeddingService
}

// NewRecommendationController creates a new RecommendationController instance
func NewRecommendationController(recommendationService *services.RecommendationService, embeddingService *services.EmbeddingService) *RecommendationController {
	return &RecommendationController{
		RecommendationService: recommendationService,
		EmbeddingService:      embeddingService,
	}
}

// GetRecommendations handles fetching personalized mix recommendations
func (rc *RecommendationController) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID := query.Get("userId")

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	includePlayed := query.Get("includePlayed") == "true"

	recommendations, err := rc.RecommendationService.GetRecommendations(r.Context(), userID, limit, includePlayed)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

// CalculateSimilarities handles batch user-mix similarity scoring
func (rc *RecommendationController) CalculateSimilarities(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string   `json:"userId"`
		MixIDs []string `json:"mixIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}
	if len(payload.MixIDs) == 0 {
		http.Error(w, "mixIds is required", http.StatusBadRequest)
		return
	}

	similarities, err := rc.EmbeddingService.BatchCalculateSimilarities(r.Context(), payload.UserID, payload.MixIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"similarities": similarities,
	})
}

// RebuildUserEmbedding handles recomputing a user's taste embedding
func (rc *RecommendationController) RebuildUserEmbedding(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	embedding, err := rc.EmbeddingService.BuildUserEmbedding(r.Context(), payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "User embedding rebuilt successfully",
		"embedding": embedding,
	})
}
