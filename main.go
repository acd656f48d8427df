package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"sparkd_server/routes"
	"sparkd_server/services"
	"sparkd_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env first; OS environment variables always win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment")
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	swipeService := &services.SwipeService{Dynamo: dynamoService}
	feedService := &services.FeedService{Swipes: swipeService, Users: userProfileService, Dynamo: dynamoService}
	matchService := &services.MatchService{Swipes: swipeService, Users: userProfileService}
	chatService := &services.ChatService{Dynamo: dynamoService}

	// Realtime layer
	registry := socket.NewConnectionRegistry()
	socketServer := socket.NewSocketServer(chatService, registry)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

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
		fmt.Fprintln(w, "Welcome to Sparkd")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]interface{}{"status": "healthy", "online": registry.OnlineCount()}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterUserRoutes(r, swipeService, feedService, matchService)
	routes.RegisterChatRoutes(r, chatService)

	// Mount the realtime endpoint
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	allowedOrigin := os.Getenv("FRONTEND_URL")
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
