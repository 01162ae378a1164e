package controllers

import (
	"encoding/json"
	"net/http"

	"rhood_server/models"
	"rhood_server/services"
)

// PreferenceController handles HTTP requests for DJ preferences and
// availability windows
type PreferenceController struct {
	MatchService *services.MatchService
}

// NewPreferenceController creates a new PreferenceController instance
func NewPreferenceController(matchService *services.MatchService) *PreferenceController {
	return &PreferenceController{MatchService: matchService}
}

// GetPreferences handles fetching a user's preference set
func (pc *PreferenceController) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	preferences, err := pc.MatchService.GetPreferences(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"preferences": preferences,
	})
}

// SetPreferences handles replacing a user's full preference set
func (pc *PreferenceController) SetPreferences(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID      string                `json:"userId"`
		Preferences []models.DJPreference `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := pc.MatchService.SetPreferences(r.Context(), payload.UserID, payload.Preferences); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Preferences updated successfully",
	})
}

// GetAvailability handles fetching a user's availability ranges
func (pc *PreferenceController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	availability, err := pc.MatchService.GetAvailability(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"availability": availability,
	})
}

// SetAvailability handles storing an availability range
func (pc *PreferenceController) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var availability models.Availability
	if err := json.NewDecoder(r.Body).Decode(&availability); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := pc.MatchService.SetAvailability(r.Context(), availability); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":      "Availability saved successfully",
		"availability": availability,
	})
}
