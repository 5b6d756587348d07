package main

import (
	"flag"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"healthbot/config"
	"healthbot/controllers"
	"healthbot/services"
)

// Server ties the router, configuration and controller together.
type Server struct {
	router     *mux.Router
	cfg        *config.Config
	controller *controllers.Controller
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config, controller *controllers.Controller) *Server {
	return &Server{
		router:     mux.NewRouter(),
		cfg:        cfg,
		controller: controller,
	}
}

// setupRoutes configures all endpoints.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.controller.HealthHandler).Methods("GET")
	s.router.HandleFunc("/chat", s.controller.ChatHandler).Methods("POST")
	s.router.HandleFunc("/sos", s.controller.SOSHandler).Methods("POST")
}

// Start configures CORS and starts the HTTP server.
func (s *Server) Start() error {
	s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(s.router)

	port := s.cfg.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	log.Printf("Server starting on port %s", port)
	return http.ListenAndServe(port, handler)
}

func main() {
	var (
		port          = flag.String("port", "", "Port to listen on (overrides PORT)")
		dataPath      = flag.String("data", "", "Document directory to index (overrides DATA_PATH)")
		enableDiscord = flag.Bool("discord", false, "Enable the Discord bot front-end")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system environment variables only")
	}

	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}

	// The index is only needed when context inclusion or the extractive
	// fallback can consume it.
	retriever := services.NewRAGService(cfg.DataPath)
	if cfg.IncludeContext || cfg.ExtractFallback {
		if err := retriever.Initialize(cfg.OpenAIKey); err != nil {
			log.Printf("Retrieval disabled: %v", err)
		} else if err := retriever.IndexDocuments(); err != nil {
			log.Printf("Document indexing failed: %v", err)
		}
	} else {
		log.Printf("Context inclusion and fallback disabled, skipping document indexing")
	}

	openAI := services.NewOpenAIService(cfg)
	ollama := services.NewLLMService(cfg)
	chatbot := services.NewChatbot(cfg, retriever, openAI, ollama)

	discord := services.NewDiscordService(chatbot, cfg.DiscordToken, cfg.DiscordPrefix)
	controller := controllers.NewController(chatbot, discord)

	if err := controller.StartServices(*enableDiscord); err != nil {
		log.Printf("Background services failed to start: %v", err)
	}
	defer controller.StopServices()

	server := NewServer(cfg, controller)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
