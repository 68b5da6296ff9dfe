package domain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrSessionNotFound is returned when a session id has no entry in the store
var ErrSessionNotFound = errors.New("session not found")

const (
	sessionIDPrefix = "chat"
	titleMaxRunes   = 30

	// DefaultTitle is used until the session has a user message
	DefaultTitle = "New Chat"
)

// ChatSession represents one ordered conversation
type ChatSession struct {
	ID          string    `json:"id"`
	Messages    []Message `json:"messages"`
	Created     int64     `json:"created"`
	LastUpdated int64     `json:"lastUpdated"`
	Title       string    `json:"title"`
}

// NewSessionID generates a client-local session id of the form
// chat_<unix-ms>_<random suffix>. Collision-resistant enough for a
// per-user store, not cryptographically unique.
func NewSessionID() string {
	suffix := strconv.FormatUint(rand.Uint64(), 36)
	if len(suffix) > 9 {
		suffix = suffix[:9]
	}
	return fmt.Sprintf("%s_%d_%s", sessionIDPrefix, time.Now().UnixMilli(), suffix)
}

// DeriveTitle returns the first user message truncated to 30 runes,
// or "New Chat" when no user message exists yet.
func DeriveTitle(messages []Message) string {
	for _, m := range messages {
		if m.Role != RoleUser {
			continue
		}
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		if utf8.RuneCountInString(text) <= titleMaxRunes {
			return text
		}
		runes := []rune(text)
		return string(runes[:titleMaxRunes]) + "..."
	}
	return DefaultTitle
}

// Keyspace is the storage port every persistence backend implements.
// Values are opaque blobs; a missing key is reported via the bool, not
// an error.
type Keyspace interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
