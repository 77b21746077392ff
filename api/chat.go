package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/hojin-dev/newschat/internal/app"
	"github.com/hojin-dev/newschat/internal/log"
	"github.com/hojin-dev/newschat/internal/session"
)

// MaxMessageLength bounds a single user message.
const MaxMessageLength = 4000

// ChatHandler handles the chat and clear endpoints.
type ChatHandler struct {
	app    *app.App
	logger log.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(application *app.App, logger log.Logger) *ChatHandler {
	return &ChatHandler{app: application, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions/{id}/chat", h.send)
	mux.HandleFunc("POST /api/sessions/{id}/clear", h.clear)
}

// ChatRequest is the request body for sending a message.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the response body for a completed message.
type ChatResponse struct {
	Reply session.ChatTurn `json:"reply"`
	Epoch int64            `json:"epoch"`

	// Stale is true when the topic changed while the completion was in
	// flight. The reply was discarded and is not part of the history.
	Stale bool `json:"stale,omitempty"`

	// Notice classifies a degraded reply: "credential_missing" or
	// "upstream_error". Empty for a real completion.
	Notice string `json:"notice,omitempty"`
}

// send runs one request cycle for the session.
func (h *ChatHandler) send(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_session_id", "session id must be a UUID")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}
	if len(req.Message) > MaxMessageLength {
		writeError(w, http.StatusBadRequest, "invalid_request", "message too long (max 4000 characters)")
		return
	}

	res, err := h.app.Send(r.Context(), id, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			writeError(w, http.StatusNotFound, "session_not_found", "no such session")
		case errors.Is(err, session.ErrInvalidState):
			writeError(w, http.StatusConflict, "no_query_key", "set a query key before chatting")
		default:
			h.logger.Error("chat request failed", "session_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "chat request failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Reply:  res.Turn,
		Epoch:  res.Epoch,
		Stale:  res.Stale,
		Notice: res.Notice,
	})
}

// clear drops the session's history while keeping its query key and
// grounding records.
func (h *ChatHandler) clear(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_session_id", "session id must be a UUID")
		return
	}
	if err := h.app.ClearHistory(id); err != nil {
		writeError(w, http.StatusNotFound, "session_not_found", "no such session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
