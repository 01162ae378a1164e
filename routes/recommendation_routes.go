package routes

import (
	"rhood_server/controllers"
	"rhood_server/services"

	"github.com/gorilla/mux"
)

// RegisterRecommendationRoutes sets up routes for recommendations and
// embeddings under /api/recommendations
func RegisterRecommendationRoutes(r *mux.Router, recommendationService *services.RecommendationService, embeddingService *services.EmbeddingService) {
	controller := controllers.NewRecommendationController(recommendationService, embeddingService)

	recommendationRouter := r.PathPrefix("/api/recommendations").Subrouter()

	recommendationRouter.HandleFunc("", controller.GetRecommendations).Methods("GET")
	recommendationRouter.HandleFunc("/similarities", controller.CalculateSimilarities).Methods("POST")
	recommendationRouter.HandleFunc("/embedding", controller.RebuildUserEmbedding).Methods("POST")
}
