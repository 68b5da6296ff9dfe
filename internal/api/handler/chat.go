package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/api/response"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/chat"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ChatHandler exposes the session manager over HTTP
type ChatHandler struct {
	manager  *chat.Manager
	validate *validator.Validate
}

// NewChatHandler creates a chat handler
func NewChatHandler(manager *chat.Manager) *ChatHandler {
	return &ChatHandler{
		manager:  manager,
		validate: validator.New(),
	}
}

type sendMessageRequest struct {
	Text     string `json:"text" validate:"required,max=4000"`
	Language string `json:"language" validate:"omitempty,oneof=en hi"`
}

type snapshotResponse struct {
	SessionID string           `json:"sessionId"`
	Messages  []domain.Message `json:"messages"`
}

// SendMessage handles POST /chat/message
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.BadRequest(w, "message text is empty")
		return
	}

	if req.Language != "" {
		h.manager.SetLanguage(req.Language)
	}

	if _, err := h.manager.SendMessage(r.Context(), req.Text); err != nil {
		if errors.Is(err, chat.ErrBusy) {
			response.Conflict(w, "a message is already being processed")
			return
		}
		response.InternalError(w, "failed to process message")
		return
	}

	sessionID, messages := h.manager.Snapshot()
	response.OK(w, snapshotResponse{SessionID: sessionID, Messages: messages})
}

// NewChat handles POST /chat/new
func (h *ChatHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	h.manager.StartNewChat()

	sessionID, messages := h.manager.Snapshot()
	response.Created(w, snapshotResponse{SessionID: sessionID, Messages: messages})
}

// LoadChat handles POST /chat/load/{sessionID}
func (h *ChatHandler) LoadChat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.manager.LoadChat(r.Context(), sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, "session not found")
			return
		}
		response.InternalError(w, "failed to load session")
		return
	}

	id, messages := h.manager.Snapshot()
	response.OK(w, snapshotResponse{SessionID: id, Messages: messages})
}

// Current handles GET /chat/current
func (h *ChatHandler) Current(w http.ResponseWriter, r *http.Request) {
	sessionID, messages := h.manager.Snapshot()
	response.OK(w, snapshotResponse{SessionID: sessionID, Messages: messages})
}
