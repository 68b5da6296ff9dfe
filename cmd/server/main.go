package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor/gemini"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor/local"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor/remote"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/analytics"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/api"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/chat"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/config"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/repository"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("backend", cfg.Storage.Backend).
		Msg("Starting Upaj advisory chat server")

	// Initialize storage
	keyspace, err := repository.Open(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage backend")
	}
	defer keyspace.Close()

	sessionStore := store.New(keyspace)

	// Evict stale sessions at boot when configured; nothing runs it
	// mid-flight, cmd/cleanup covers scheduled use.
	if cfg.Cleanup.OnStart && cfg.Cleanup.MaxAgeDays > 0 {
		deleted, err := analytics.CleanupOldSessions(context.Background(), sessionStore, cfg.Cleanup.MaxAgeDays)
		if err != nil {
			log.Warn().Err(err).Msg("Startup cleanup failed")
		} else if deleted > 0 {
			log.Info().Int("deleted", deleted).Msg("Removed stale sessions")
		}
	}

	// Answer resolution: remote ask endpoint first, then Gemini when
	// configured, local responder always last.
	chain := advisor.NewChain(
		remote.New(cfg.Advisor.AskURL, cfg.Advisor.Timeout, cfg.Advisor.Retries),
		gemini.NewProvider(cfg.Advisor.Gemini),
		local.New(cfg.Advisor.Fallback.MinDelay, cfg.Advisor.Fallback.MaxDelay),
	)

	historyClient := chat.NewHistoryClient(cfg.Remote)
	var history chat.HistoryService
	if historyClient != nil {
		history = historyClient
	}

	manager := chat.NewManager(sessionStore, chain, history, cfg.Assistant.Language)

	router := api.NewRouter(manager, sessionStore)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
