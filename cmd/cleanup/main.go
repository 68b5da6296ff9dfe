package main

import (
	"context"
	"flag"
	"os"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/analytics"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/config"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/repository"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// One-shot eviction of stale sessions, intended for cron.
func main() {
	days := flag.Int("days", 0, "delete sessions not updated for this many days (default: cleanup.max_age_days)")
	flag.Parse()

	_ = godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	maxAge := *days
	if maxAge <= 0 {
		maxAge = cfg.Cleanup.MaxAgeDays
	}
	if maxAge <= 0 {
		log.Fatal().Msg("No cleanup age given; pass -days or set cleanup.max_age_days")
	}

	ctx := context.Background()
	keyspace, err := repository.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage backend")
	}
	defer keyspace.Close()

	deleted, err := analytics.CleanupOldSessions(ctx, store.New(keyspace), maxAge)
	if err != nil {
		log.Fatal().Err(err).Msg("Cleanup failed")
	}

	log.Info().Int("deleted", deleted).Int("days", maxAge).Msg("Cleanup complete")
}
