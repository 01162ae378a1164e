package routes

import (
	"rhood_server/controllers"
	"rhood_server/services"

	"github.com/gorilla/mux"
)

// RegisterAIRoutes sets up routes for AI matching and insights under /api/ai
func RegisterAIRoutes(r *mux.Router, aiMatchService *services.AIMatchService) {
	controller := controllers.NewAIController(aiMatchService)

	aiRouter := r.PathPrefix("/api/ai").Subrouter()

	aiRouter.HandleFunc("/matches", controller.GenerateAIMatches).Methods("POST")
	aiRouter.HandleFunc("/insights", controller.GenerateInsights).Methods("POST")
	aiRouter.HandleFunc("/scenarios", controller.GetScenarios).Methods("GET")
}
