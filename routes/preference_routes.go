package routes

import (
	"rhood_server/controllers"
	"rhood_server/services"

	"github.com/gorilla/mux"
)

// RegisterPreferenceRoutes sets up routes for DJ preferences and availability
func RegisterPreferenceRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewPreferenceController(matchService)

	r.HandleFunc("/api/preferences", controller.GetPreferences).Methods("GET")
	r.HandleFunc("/api/preferences", controller.SetPreferences).Methods("PUT")
	r.HandleFunc("/api/availability", controller.GetAvailability).Methods("GET")
	r.HandleFunc("/api/availability", controller.SetAvailability).Methods("POST")
}
