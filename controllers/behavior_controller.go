package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"rhood_server/services"
)

// BehaviorController handles HTTP requests for listening behavior tracking
type BehaviorController struct {
	BehaviorService *services.BehaviorService
}

// NewBehaviorController creates a new BehaviorController instance
func NewBehaviorController(behaviorService *services.BehaviorService) *BehaviorController {
	return &BehaviorController{BehaviorService: behaviorService}
}

// RecordSession handles recording a completed listening session
func (bc *BehaviorController) RecordSession(w http.ResponseWriter, r *http.Request) {
	var input services.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	sessionID, err := bc.BehaviorService.RecordSession(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Session recorded successfully",
		"sessionId": sessionID,
	})
}

// TrackSkip handles recording a skip event
func (bc *BehaviorController) TrackSkip(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID          string  `json:"userId"`
		MixID           string  `json:"mixId"`
		SkipTimeSeconds float64 `json:"skipTimeSeconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	sessionID, err := bc.BehaviorService.TrackSkip(r.Context(), payload.UserID, payload.MixID, payload.SkipTimeSeconds)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Skip tracked successfully",
		"sessionId": sessionID,
	})
}

// TrackLike handles marking the latest session for a mix as liked
func (bc *BehaviorController) TrackLike(w http.ResponseWriter, r *http.Request) {
	bc.trackEngagement(w, r, bc.BehaviorService.TrackLike, "Like tracked successfully")
}

// TrackSave handles marking the latest session for a mix as saved
func (bc *BehaviorController) TrackSave(w http.ResponseWriter, r *http.Request) {
	bc.trackEngagement(w, r, bc.BehaviorService.TrackSave, "Save tracked successfully")
}

func (bc *BehaviorController) trackEngagement(w http.ResponseWriter, r *http.Request, track func(ctx context.Context, userID, mixID string, value bool) error, message string) {
	var payload struct {
		UserID string `json:"userId"`
		MixID  string `json:"mixId"`
		Value  *bool  `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	value := true
	if payload.Value != nil {
		value = *payload.Value
	}

	if err := track(r.Context(), payload.UserID, payload.MixID, value); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": message,
	})
}

// GetStats handles fetching aggregated listening stats for a user
func (bc *BehaviorController) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	stats, err := bc.BehaviorService.GetListeningStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"stats": stats,
	})
}

// writeServiceError maps service errors onto HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	var limitErr *services.DailyLimitError
	var appliedErr *services.AlreadyAppliedError

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &limitErr):
		http.Error(w, limitErr.Error(), http.StatusTooManyRequests)
	case errors.As(err, &appliedErr):
		http.Error(w, appliedErr.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrNoMixesUploaded):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
