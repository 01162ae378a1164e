package routes

import (
	"rhood_server/controllers"
	"rhood_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for matches, applications,
// feedback, performances, and analytics
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("", controller.GetMatches).Methods("GET")
	matchRouter.HandleFunc("/generate", controller.GenerateMatches).Methods("POST")
	matchRouter.HandleFunc("/apply", controller.ApplyToOpportunity).Methods("POST")
	matchRouter.HandleFunc("/remaining", controller.GetRemainingApplications).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/status", controller.UpdateMatchStatus).Methods("PATCH")

	r.HandleFunc("/api/feedback", controller.SubmitFeedback).Methods("POST")
	r.HandleFunc("/api/performances", controller.GetPerformances).Methods("GET")
	r.HandleFunc("/api/performances", controller.AddPerformance).Methods("POST")
	r.HandleFunc("/api/analytics", controller.GetAnalytics).Methods("GET")
}
