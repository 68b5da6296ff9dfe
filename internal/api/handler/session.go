package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/api/response"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/chat"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/export"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/store"
	"github.com/go-chi/chi/v5"
)

// SessionHandler exposes session listing, deletion and export
type SessionHandler struct {
	manager *chat.Manager
	store   *store.SessionStore
}

// NewSessionHandler creates a session handler
func NewSessionHandler(manager *chat.Manager, sessionStore *store.SessionStore) *SessionHandler {
	return &SessionHandler{manager: manager, store: sessionStore}
}

// List handles GET /sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.manager.ListSessions(r.Context())
	if err != nil {
		response.InternalError(w, "failed to list sessions")
		return
	}
	response.OK(w, sessions)
}

// Delete handles DELETE /sessions/{sessionID}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.manager.DeleteChat(r.Context(), sessionID); err != nil {
		response.InternalError(w, "failed to delete session")
		return
	}
	response.OK(w, map[string]string{"message": "session deleted"})
}

// Clear handles DELETE /sessions
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.ClearAll(r.Context()); err != nil {
		response.InternalError(w, "failed to clear sessions")
		return
	}
	response.OK(w, map[string]string{"message": "all sessions cleared"})
}

// Export handles GET /sessions/{sessionID}/export?format=json|markdown
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	exporter, err := export.NewExporter(format)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	session, err := h.store.Load(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, "session not found")
			return
		}
		response.InternalError(w, "failed to load session")
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(session, &buf); err != nil {
		response.InternalError(w, "failed to export session")
		return
	}

	filename := export.Filename(session.Title, exporter.Extension())
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
