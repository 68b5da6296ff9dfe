package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/analytics"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/api/response"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// AnalyticsHandler exposes derived statistics and cleanup
type AnalyticsHandler struct {
	store    *store.SessionStore
	validate *validator.Validate
}

// NewAnalyticsHandler creates an analytics handler
func NewAnalyticsHandler(sessionStore *store.SessionStore) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:    sessionStore,
		validate: validator.New(),
	}
}

// Session handles GET /sessions/{sessionID}/analytics
func (h *AnalyticsHandler) Session(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.store.Load(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, "session not found")
			return
		}
		response.InternalError(w, "failed to load session")
		return
	}

	response.OK(w, analytics.AnalyzeSession(*session))
}

// Overview handles GET /analytics
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.LoadAll(r.Context())
	if err != nil {
		response.InternalError(w, "failed to read session store")
		return
	}

	response.OK(w, analytics.AnalyzeAll(all))
}

type cleanupRequest struct {
	Days int `json:"days" validate:"required,min=1"`
}

// Cleanup handles POST /sessions/cleanup
func (h *AnalyticsHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	var req cleanupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	deleted, err := analytics.CleanupOldSessions(r.Context(), h.store, req.Days)
	if err != nil {
		response.InternalError(w, "cleanup failed")
		return
	}

	response.OK(w, map[string]int{"deleted": deleted})
}
