package routes

import (
	"rhood_server/controllers"
	"rhood_server/services"

	"github.com/gorilla/mux"
)

// RegisterBehaviorRoutes sets up routes for listening behavior tracking under /api/behavior
func RegisterBehaviorRoutes(r *mux.Router, behaviorService *services.BehaviorService) {
	controller := controllers.NewBehaviorController(behaviorService)

	behaviorRouter := r.PathPrefix("/api/behavior").Subrouter()

	behaviorRouter.HandleFunc("/session", controller.RecordSession).Methods("POST")
	behaviorRouter.HandleFunc("/skip", controller.TrackSkip).Methods("POST")
	behaviorRouter.HandleFunc("/like", controller.TrackLike).Methods("POST")
	behaviorRouter.HandleFunc("/save", controller.TrackSave).Methods("POST")
	behaviorRouter.HandleFunc("/stats", controller.GetStats).Methods("GET")
}
