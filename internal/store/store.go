// Package store persists chat sessions as one JSON blob in a keyspace.
// The blob under StoreKey maps session id to session and is the source
// of truth across restarts; callers keep their in-memory copy
// authoritative for the current process when a write fails.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/rs/zerolog/log"
)

// StoreKey is the fixed keyspace key holding the whole session map
const StoreKey = "upaj:chat_sessions"

// SessionStore reads and writes the session map through a storage port
type SessionStore struct {
	ks  domain.Keyspace
	now func() time.Time
}

// New creates a session store over the given keyspace
func New(ks domain.Keyspace) *SessionStore {
	return &SessionStore{ks: ks, now: time.Now}
}

// NewWithClock creates a session store with an injected clock for tests
func NewWithClock(ks domain.Keyspace, now func() time.Time) *SessionStore {
	return &SessionStore{ks: ks, now: now}
}

// Save merges the session's message list into the store, recomputing
// LastUpdated and Title, and writes the whole map back. Created is set
// on first write and preserved afterwards.
func (s *SessionStore) Save(ctx context.Context, sessionID string, messages []domain.Message) error {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}

	now := s.now().UnixMilli()
	session, exists := all[sessionID]
	if !exists {
		session = domain.ChatSession{ID: sessionID, Created: now}
	}

	session.Messages = messages
	session.LastUpdated = now
	session.Title = domain.DeriveTitle(messages)
	all[sessionID] = session

	return s.writeAll(ctx, all)
}

// LoadAll reads the entire session map. A missing or corrupt blob is
// treated as no history, not a fatal error.
func (s *SessionStore) LoadAll(ctx context.Context) (map[string]domain.ChatSession, error) {
	data, ok, err := s.ks.Get(ctx, StoreKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session store: %w", err)
	}
	if !ok {
		return map[string]domain.ChatSession{}, nil
	}

	var all map[string]domain.ChatSession
	if err := json.Unmarshal(data, &all); err != nil {
		log.Warn().Err(err).Msg("session store corrupt, treating as empty")
		return map[string]domain.ChatSession{}, nil
	}
	if all == nil {
		all = map[string]domain.ChatSession{}
	}
	return all, nil
}

// Load returns one session or domain.ErrSessionNotFound
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*domain.ChatSession, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	session, ok := all[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes one session and rewrites the store. Deleting an id
// with no entry is a no-op.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}

	if _, ok := all[sessionID]; !ok {
		return nil
	}

	delete(all, sessionID)
	return s.writeAll(ctx, all)
}

// Clear removes the whole store key
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.ks.Delete(ctx, StoreKey); err != nil {
		return fmt.Errorf("failed to clear session store: %w", err)
	}
	return nil
}

// ReplaceAll rewrites the store in a single write, used by cleanup
func (s *SessionStore) ReplaceAll(ctx context.Context, all map[string]domain.ChatSession) error {
	return s.writeAll(ctx, all)
}

func (s *SessionStore) writeAll(ctx context.Context, all map[string]domain.ChatSession) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("failed to marshal session store: %w", err)
	}
	if err := s.ks.Set(ctx, StoreKey, data); err != nil {
		return fmt.Errorf("failed to write session store: %w", err)
	}
	return nil
}
