// Package chat owns the current conversation: an ordered, append-only
// message list gated so at most one send is in flight, synchronized to
// the session store after every answer.
package chat

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/store"
	"github.com/rs/zerolog/log"
)

// ErrBusy is returned when a send overlaps an unresolved one. Policy is
// reject, not queue: the caller retries once the first send settles.
var ErrBusy = errors.New("a message is already being processed")

const (
	welcomeEN = "Hello! I'm your Upaj farming assistant. Ask me about crop yield, weather, soil health, pests or irrigation."
	welcomeHI = "नमस्ते! मैं आपका उपज कृषि सहायक हूं। फसल की उपज, मौसम, मिट्टी, कीट या सिंचाई के बारे में पूछें।"
)

// Resolver produces an answer for a user question; advisor.Chain is the
// production implementation.
type Resolver interface {
	Resolve(ctx context.Context, req advisor.Request) *advisor.Response
}

// HistoryService is the optional remote history backend consulted for
// session listing and clear-all. Never authoritative.
type HistoryService interface {
	List(ctx context.Context) ([]SessionSummary, error)
	Clear(ctx context.Context) error
}

// SessionSummary is the list-view projection of a session
type SessionSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Created      int64  `json:"created"`
	LastUpdated  int64  `json:"lastUpdated"`
	MessageCount int    `json:"messageCount"`
	Source       string `json:"source"`
}

// Manager owns the current session for one logical user
type Manager struct {
	mu       sync.Mutex
	store    *store.SessionStore
	resolver Resolver
	history  HistoryService // may be nil
	language string

	currentID string
	messages  []domain.Message
	sending   bool

	// generation invalidates in-flight sends when the user moves to a
	// different session before the answer settles
	generation uint64
}

// NewManager creates a manager with a fresh welcome session
func NewManager(sessionStore *store.SessionStore, resolver Resolver, history HistoryService, language string) *Manager {
	m := &Manager{
		store:    sessionStore,
		resolver: resolver,
		history:  history,
		language: normalizeLanguage(language),
	}
	m.resetLocked(context.Background())
	return m
}

// SendMessage appends the user message, resolves an answer through the
// resolver chain, appends the answer and persists the session. An
// empty or whitespace-only text is a no-op returning (nil, nil); a send
// while another is unresolved returns ErrBusy.
func (m *Manager) SendMessage(ctx context.Context, text string) (*domain.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	m.mu.Lock()
	if m.sending {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	m.sending = true
	gen := m.generation
	chatID := m.currentID
	language := m.language

	userMsg := domain.NewMessage(domain.RoleUser, trimmed)
	m.messages = append(m.messages, userMsg)
	m.mu.Unlock()

	// The gate must release even when a provider panics, otherwise every
	// later send is rejected with ErrBusy until restart.
	defer func() {
		m.mu.Lock()
		m.sending = false
		m.mu.Unlock()
	}()

	resp := m.resolver.Resolve(ctx, advisor.Request{
		Question:  trimmed,
		Language:  language,
		ChatID:    chatID,
		Timestamp: userMsg.Timestamp,
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != gen {
		// The user left this session mid-send; drop the stale answer
		// instead of writing into whatever is current now.
		log.Debug().
			Str("chat_id", chatID).
			Msg("discarding answer for abandoned session")
		return nil, nil
	}

	aiMsg := domain.NewMessage(domain.RoleAI, resp.Text)
	m.messages = append(m.messages, aiMsg)

	if err := m.store.Save(ctx, m.currentID, m.messages); err != nil {
		// In-memory state stays authoritative for this process
		log.Error().Err(err).Str("chat_id", m.currentID).Msg("failed to persist session")
	}

	return &aiMsg, nil
}

// StartNewChat switches to a fresh session with a single welcome
// message. Prior sessions are untouched.
func (m *Manager) StartNewChat() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resetLocked(context.Background())
}

// LoadChat replaces the current session with a stored one. Returns
// domain.ErrSessionNotFound for an unknown id.
func (m *Manager) LoadChat(ctx context.Context, sessionID string) error {
	session, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	m.currentID = session.ID
	m.messages = append([]domain.Message(nil), session.Messages...)
	return nil
}

// DeleteChat removes a session from the store. Deleting the current
// session immediately starts a fresh one so the manager never points at
// a missing session.
func (m *Manager) DeleteChat(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Deleting under the lock keeps a settling send from re-saving the
	// session after it is gone.
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	if sessionID == m.currentID {
		m.resetLocked(ctx)
	}
	return nil
}

// ClearAll clears history remotely when a backend is wired, clears the
// local store in both outcomes, then starts a fresh session.
func (m *Manager) ClearAll(ctx context.Context) error {
	if m.history != nil {
		if err := m.history.Clear(ctx); err != nil {
			log.Warn().Err(err).Msg("remote clear failed, clearing local store only")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Clear and generation bump happen under one lock so a send settling
	// concurrently cannot write a cleared session back into the store.
	err := m.store.Clear(ctx)
	m.resetLocked(ctx)
	return err
}

// ListSessions returns session summaries for display. The remote
// history backend is preferred when it answers with a non-empty list;
// otherwise the local store is the source. The two are never merged.
func (m *Manager) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	if m.history != nil {
		remote, err := m.history.List(ctx)
		if err == nil && len(remote) > 0 {
			sortSummaries(remote)
			return remote, nil
		}
		if err != nil {
			log.Warn().Err(err).Msg("remote history unavailable, using local store")
		}
	}

	all, err := m.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(all))
	for _, s := range all {
		summaries = append(summaries, SessionSummary{
			ID:           s.ID,
			Title:        s.Title,
			Created:      s.Created,
			LastUpdated:  s.LastUpdated,
			MessageCount: len(s.Messages),
			Source:       "local",
		})
	}
	sortSummaries(summaries)
	return summaries, nil
}

// Snapshot returns the current session id and a copy of its messages
func (m *Manager) Snapshot() (string, []domain.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentID, append([]domain.Message(nil), m.messages...)
}

// Sending reports whether a send is currently unresolved
func (m *Manager) Sending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sending
}

// SetLanguage switches welcome and apology localization
func (m *Manager) SetLanguage(language string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.language = normalizeLanguage(language)
}

// Language returns the active language tag
func (m *Manager) Language() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.language
}

// resetLocked starts a fresh welcome session. Caller holds m.mu.
func (m *Manager) resetLocked(ctx context.Context) string {
	m.generation++
	m.currentID = domain.NewSessionID()
	m.messages = []domain.Message{domain.NewMessage(domain.RoleAI, welcomeText(m.language))}

	if err := m.store.Save(ctx, m.currentID, m.messages); err != nil {
		log.Error().Err(err).Str("chat_id", m.currentID).Msg("failed to persist new session")
	}
	return m.currentID
}

func sortSummaries(summaries []SessionSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LastUpdated != summaries[j].LastUpdated {
			return summaries[i].LastUpdated > summaries[j].LastUpdated
		}
		return summaries[i].ID < summaries[j].ID
	})
}

func welcomeText(language string) string {
	if language == "hi" {
		return welcomeHI
	}
	return welcomeEN
}

func normalizeLanguage(language string) string {
	if language == "hi" {
		return "hi"
	}
	return "en"
}
