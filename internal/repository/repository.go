// Package repository selects a session-store backend from config.
package repository

import (
	"context"
	"fmt"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/config"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/repository/filestore"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/repository/redis"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/repository/sqlite"
)

// Open constructs the keyspace named by cfg.Backend
func Open(ctx context.Context, cfg config.StorageConfig) (domain.Keyspace, error) {
	switch cfg.Backend {
	case "", "file":
		return filestore.New(cfg.File.Dir)
	case "sqlite":
		return sqlite.New(ctx, cfg.SQLite.Path)
	case "redis":
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redis.NewKeyspace(client), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
