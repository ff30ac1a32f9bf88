package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/pawconnect/assistant/internal/auth"
	"github.com/pawconnect/assistant/internal/config"
	"github.com/pawconnect/assistant/internal/domain"
	"github.com/pawconnect/assistant/internal/extract"
	"github.com/pawconnect/assistant/internal/gateway"
	"github.com/pawconnect/assistant/internal/handlers"
	"github.com/pawconnect/assistant/internal/middleware"
	"github.com/pawconnect/assistant/internal/ratelimit"
	"github.com/pawconnect/assistant/internal/repository/conversation"
	"github.com/pawconnect/assistant/internal/repository/document"
	"github.com/pawconnect/assistant/internal/repository/message"
	"github.com/pawconnect/assistant/internal/services"
	"github.com/pawconnect/assistant/internal/services/assistant"
	"github.com/pawconnect/assistant/internal/session"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("server")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&domain.Conversation{}, &domain.Message{}, &domain.Document{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	convRepo := conversation.NewRepository(db)
	msgRepo := message.NewRepository(db)
	docRepo := document.NewRepository(db)

	// --- Remote function client ---
	assistantCfg := assistant.DefaultConfig(cfg.FunctionsBaseURL, cfg.ServiceAPIKey)
	assistantCfg.Timeout = time.Duration(cfg.RequestTimeout) * time.Second
	assistantClient, err := assistant.NewClient(assistantCfg, services.NewLogger("assistant"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize assistant client: %v", err)
	}

	// --- Gateway and per-user sessions ---
	gw, err := gateway.New(
		auth.ContextProvider{},
		convRepo,
		msgRepo,
		docRepo,
		assistantClient,
		assistantClient,
		services.NewLogger("gateway"),
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize gateway: %v", err)
	}
	registry := session.NewRegistry(gw, session.ExtractorFunc(extract.ExtractText), services.NewLogger("session"))

	// --- Handlers ---
	chatHandler := handlers.NewChatHandler(registry)
	documentHandler := handlers.NewDocumentHandler(registry)
	publicHandler := handlers.NewPublicChatHandler(assistantClient)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware([]byte(cfg.JWTSecretKey), services.NewLogger("auth"))

	publicLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultPublicChatConfig())
	defer publicLimiter.Close()

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic(logger))
	r.Use(middleware.LoggingMiddleware(logger))

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	public := r.PathPrefix("/api/public").Subrouter()
	public.Use(middleware.RateLimitMiddleware(publicLimiter, "public-chat", logger))
	public.HandleFunc("/chat", publicHandler.Ask).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/chat", chatHandler.GetState).Methods("GET")
	api.HandleFunc("/chat/send", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chat/new", chatHandler.NewChat).Methods("POST")
	api.HandleFunc("/chat/conversations/{id}/select", chatHandler.SelectConversation).Methods("POST")
	api.HandleFunc("/chat/conversations/{id}", chatHandler.DeleteConversation).Methods("DELETE")
	api.HandleFunc("/documents", documentHandler.GetDocuments).Methods("GET")
	api.HandleFunc("/documents", documentHandler.Upload).Methods("POST")
	api.HandleFunc("/documents/{id}", documentHandler.DeleteDocument).Methods("DELETE")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	logger.Info("server starting", "port", cfg.ServerPort, "environment", cfg.Environment)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
