package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courier/internal/common"
	"courier/internal/wire"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize application with dependency injection
	app, err := wire.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Logger.Sync()

	router := setupRouter(app)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", app.Config.Server.Host, app.Config.Server.Port),
		Handler:        router,
		ReadTimeout:    time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(app.Config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		app.Logger.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatalw("server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		app.Logger.Errorw("server forced to shutdown", "error", err)
	}

	// In-flight requests have finished; now stop the notification workers
	// so nothing they enqueued is discarded.
	if app.Dispatcher != nil {
		app.Dispatcher.Shutdown()
	}

	app.Logger.Infow("server gracefully stopped")
}

// setupRouter configures HTTP routes
func setupRouter(app *wire.Application) *mux.Router {
	router := mux.NewRouter()

	router.Use(common.CORSMiddleware)
	router.Use(common.RequestIDMiddleware)
	router.Use(common.LoggingMiddleware(app.Logger))

	router.HandleFunc("/", rootHandler).Methods("GET")
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Auth routes
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", app.UserHandler.Register).Methods("POST")
	auth.HandleFunc("/login", app.UserHandler.Login).Methods("POST")

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(common.AuthMiddleware(app.Tokens))

	authed.HandleFunc("/auth/me", app.UserHandler.Me).Methods("GET")

	messages := authed.PathPrefix("/messages").Subrouter()
	messages.HandleFunc("", app.ChatHandler.SendMessage).Methods("POST")
	messages.HandleFunc("", app.ChatHandler.ListMessages).Methods("GET")
	messages.HandleFunc("/{messageID}", app.ChatHandler.GetMessage).Methods("GET")
	messages.HandleFunc("/{messageID}/read", app.ChatHandler.MarkMessageRead).Methods("PATCH")

	conversations := authed.PathPrefix("/conversations").Subrouter()
	conversations.HandleFunc("", app.ChatHandler.ListConversations).Methods("GET")
	conversations.HandleFunc("/{conversationID}", app.ChatHandler.GetConversation).Methods("GET")
	conversations.HandleFunc("/{conversationID}/messages", app.ChatHandler.ListConversationMessages).Methods("GET")

	authed.HandleFunc("/notifications/digest", app.ChatHandler.SendUnreadDigest).Methods("POST")

	return router
}

// healthCheckHandler provides basic health check
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"courier"}`))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"service":"courier","version":"v1"}`))
}
