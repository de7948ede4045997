// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campushq/campus-assistant/cmd/campus-assistant-api/handlers"
	"github.com/campushq/campus-assistant/cmd/campus-assistant-api/middleware"
	"github.com/campushq/campus-assistant/internal/api/rpc"
	"github.com/campushq/campus-assistant/internal/chat"
	"github.com/campushq/campus-assistant/internal/config"
	"github.com/campushq/campus-assistant/internal/observability"
	"github.com/campushq/campus-assistant/internal/store"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, s store.Store, orchestrator *chat.Orchestrator) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.PropagateRequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	// Health check (unauthenticated)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"campus-assistant"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.Stats(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})

	authCfg := middleware.AuthConfig{
		Enabled:   cfg.Auth.Enabled,
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	}

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(logger, orchestrator)
	adminHandler := handlers.NewAdminHandler(logger, s)
	conversationsHandler := handlers.NewConversationsHandler(logger, s)

	// Connect RPC surface for agent runtimes
	chatService := rpc.NewChatService(logger, orchestrator)
	askPath, askHandler := rpc.NewAskHandler(chatService)
	r.Handle(askPath, askHandler)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))

		// Chat routes
		r.Post("/chat", chatHandler.Chat)

		// Conversation history
		r.Get("/conversations", conversationsHandler.List)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRoles(middleware.RoleAdmin))

			r.Get("/stats", adminHandler.Stats)

			r.Route("/{category}", func(r chi.Router) {
				r.Get("/", adminHandler.List)
				r.Post("/", adminHandler.Create)
				r.Get("/search", adminHandler.Search)
				r.Get("/{id}", adminHandler.Get)
				r.Put("/{id}", adminHandler.Update)
				r.Delete("/{id}", adminHandler.Delete)
			})
		})
	})

	return r
}
