package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Keyspace implements domain.Keyspace over Redis. Keys carry the caller's
// namespace and are stored without TTL; the session store owns eviction.
type Keyspace struct {
	client *Client
}

// NewKeyspace creates a Redis-backed keyspace
func NewKeyspace(client *Client) *Keyspace {
	return &Keyspace{client: client}
}

// Get reads a key
func (k *Keyspace) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := k.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes a key
func (k *Keyspace) Set(ctx context.Context, key string, value []byte) error {
	if err := k.client.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting a missing key is not an error
func (k *Keyspace) Delete(ctx context.Context, key string) error {
	if err := k.client.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client
func (k *Keyspace) Close() error {
	return k.client.Close()
}

var _ domain.Keyspace = (*Keyspace)(nil)
