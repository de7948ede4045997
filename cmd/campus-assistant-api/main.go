// Package main provides the Campus Assistant API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/campushq/campus-assistant/internal/ai"
	"github.com/campushq/campus-assistant/internal/cache"
	"github.com/campushq/campus-assistant/internal/chat"
	"github.com/campushq/campus-assistant/internal/config"
	"github.com/campushq/campus-assistant/internal/contextual"
	"github.com/campushq/campus-assistant/internal/observability"
	"github.com/campushq/campus-assistant/internal/store"
)

func main() {
	// Local .env files are optional
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "campus-assistant",
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Str("cache", cfg.Cache.Driver).
		Bool("ai", cfg.AI.Enabled).
		Msg("Starting Campus Assistant API")

	ctx := context.Background()

	sqlStore, err := store.Open(ctx, cfg.Database.Driver, cfg.DatabaseDSN(), store.OpenOptions{
		MaxOpenConns:    cfg.Database.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Database.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open data store")
	}

	dataStore := buildStore(logger, cfg, sqlStore)
	defer dataStore.Close()

	orchestrator := buildOrchestrator(logger, cfg, dataStore)

	router := NewRouter(logger, cfg, dataStore, orchestrator)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

// buildStore wraps the SQL store with the configured snapshot cache.
func buildStore(logger *observability.Logger, cfg *config.Config, s store.Store) store.Store {
	var client cache.Client
	if cfg.Cache.Driver == "redis" {
		redisClient, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, falling back to memory cache")
			client = cache.NewMemoryClient(cfg.Cache.MaxEntries)
		} else {
			client = redisClient
		}
	} else {
		client = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}

	return cache.NewSnapshotStore(s, client, cfg.Cache.TTL)
}

// buildOrchestrator assembles the chat pipeline from configuration.
func buildOrchestrator(logger *observability.Logger, cfg *config.Config, dataStore store.Store) *chat.Orchestrator {
	var generator ai.Generator
	if cfg.AI.Enabled {
		client, err := ai.NewClient(ai.Config{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Models:  cfg.AI.Models,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("AI client unavailable, using rule-based answers")
		} else {
			generator = client
		}
	}

	retriever := contextual.NewRetriever(dataStore, logger, contextual.Options{
		PerCategoryLimit: cfg.Retrieval.PerCategoryLimit,
		MaxKeywords:      cfg.Retrieval.MaxKeywords,
		MaxConcurrent:    cfg.Retrieval.MaxConcurrent,
		Broad:            cfg.Retrieval.Strategy == "broad",
	})

	return chat.NewOrchestrator(dataStore, retriever, generator, logger, chat.Options{
		MaxConcurrentMatchers: cfg.Matching.MaxConcurrentMatchers,
		SkipTranscript:        cfg.Matching.SkipTranscript,
	})
}
