package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"rhood_server/routes"
	"rhood_server/services"
	"rhood_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize the socket server for realtime match events
	socketServer := socket.NewServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize Services
	behaviorService := &services.BehaviorService{Dynamo: dynamoService}
	embeddingService := &services.EmbeddingService{Dynamo: dynamoService, Behavior: behaviorService}
	recommendationService := &services.RecommendationService{
		Dynamo:     dynamoService,
		Embeddings: embeddingService,
		Behavior:   behaviorService,
	}
	matchService := &services.MatchService{Dynamo: dynamoService, Events: socketServer}

	aiProvider := services.NewProviderFromEnv()
	if aiProvider == nil {
		log.Println("⚠️ No AI provider configured; AI matching will use algorithmic fallback")
	}
	aiMatchService := &services.AIMatchService{Matches: matchService, Provider: aiProvider}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to R/HOOD")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Mount the socket.io endpoint
	r.Handle("/socket.io/", socketServer.IO())

	// Register routes
	routes.RegisterBehaviorRoutes(r, behaviorService)
	routes.RegisterRecommendationRoutes(r, recommendationService, embeddingService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterPreferenceRoutes(r, matchService)
	routes.RegisterAIRoutes(r, aiMatchService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
