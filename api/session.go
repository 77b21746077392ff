package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hojin-dev/newschat/internal/app"
	"github.com/hojin-dev/newschat/internal/grounding"
	"github.com/hojin-dev/newschat/internal/i18n"
	"github.com/hojin-dev/newschat/internal/log"
	"github.com/hojin-dev/newschat/internal/session"
)

// Session validation constants.
const (
	MaxKeywordLength     = 100
	MaxDestinationLength = 100
)

// SessionHandler handles session lifecycle and query-key endpoints.
type SessionHandler struct {
	app    *app.App
	logger log.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(application *app.App, logger log.Logger) *SessionHandler {
	return &SessionHandler{app: application, logger: logger}
}

// RegisterRoutes registers session routes on the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.create)
	mux.HandleFunc("GET /api/sessions", h.list)
	mux.HandleFunc("GET /api/sessions/{id}", h.get)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.delete)
	mux.HandleFunc("POST /api/sessions/{id}/query", h.setQuery)
}

// SessionSummary is the wire form of a session without its transcript.
type SessionSummary struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Locale    string     `json:"locale"`
	Epoch     int64      `json:"epoch"`
	Query     *QueryBody `json:"query,omitempty"`
}

// SessionDetail adds the transcript and grounding set.
type SessionDetail struct {
	SessionSummary
	History []session.ChatTurn `json:"history"`
	Records []RecordBody       `json:"records"`
}

// QueryBody is the wire form of a query key.
type QueryBody struct {
	Mode        string `json:"mode"`
	Keyword     string `json:"keyword,omitempty"`
	Destination string `json:"destination,omitempty"`
	Locale      string `json:"locale"`
}

// RecordBody is the wire form of a grounding record. Summaries are
// truncated to the configured display limit.
type RecordBody struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	SourceName  string    `json:"source_name"`
	URL         string    `json:"url,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
}

// CreateSessionRequest is the optional request body for session
// creation. An absent body or empty locale uses the configured default.
type CreateSessionRequest struct {
	Locale string `json:"locale"`
}

// create creates a new in-memory session.
func (h *SessionHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}

	var sess *session.Session
	if req.Locale != "" {
		loc, err := i18n.Parse(req.Locale)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_locale", err.Error())
			return
		}
		sess = h.app.Sessions.CreateWithLocale(loc)
	} else {
		sess = h.app.Sessions.Create()
	}
	writeJSON(w, http.StatusCreated, h.summarize(sess))
}

// list returns all sessions ordered by creation time.
func (h *SessionHandler) list(w http.ResponseWriter, _ *http.Request) {
	sessions := h.app.Sessions.List()
	summaries := make([]SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, h.summarize(sess))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": summaries,
		"total":    len(summaries),
	})
}

// get returns one session with its transcript and grounding set.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	detail := SessionDetail{
		SessionSummary: h.summarize(sess),
		History:        sess.History(),
		Records:        h.renderRecords(sess.Records()),
	}
	writeJSON(w, http.StatusOK, detail)
}

// delete removes a session.
func (h *SessionHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_session_id", "session id must be a UUID")
		return
	}
	if err := h.app.Sessions.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, "session_not_found", "no such session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetQueryResponse is the response body for the query endpoint.
type SetQueryResponse struct {
	Changed bool              `json:"changed"`
	Epoch   int64             `json:"epoch"`
	Welcome *session.ChatTurn `json:"welcome,omitempty"`
	Records []RecordBody      `json:"records"`
	Warning string            `json:"warning,omitempty"`
}

// setQuery sets or changes the session's query key. A changed key
// resets the conversation and fetches a fresh grounding set; an
// unchanged key is a no-op that preserves history.
func (h *SessionHandler) setQuery(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var body QueryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}
	if len(body.Keyword) > MaxKeywordLength {
		writeError(w, http.StatusBadRequest, "invalid_request", "keyword too long (max 100 characters)")
		return
	}
	if len(body.Destination) > MaxDestinationLength {
		writeError(w, http.StatusBadRequest, "invalid_request", "destination too long (max 100 characters)")
		return
	}

	key, err := h.parseKey(body, sess)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query_key", err.Error())
		return
	}

	res, err := h.app.SetQuery(r.Context(), sess.ID(), key)
	if err != nil {
		if errors.Is(err, session.ErrInvalidQueryKey) {
			writeError(w, http.StatusBadRequest, "invalid_query_key", err.Error())
			return
		}
		h.logger.Error("failed to set query key", "session_id", sess.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to set query key")
		return
	}

	resp := SetQueryResponse{
		Changed: res.Changed,
		Epoch:   res.Epoch,
		Records: h.renderRecords(res.Records),
		Warning: res.Warning,
	}
	if res.Changed {
		welcome := res.Welcome
		resp.Welcome = &welcome
	}
	writeJSON(w, http.StatusOK, resp)
}

// lookup resolves the {id} path segment to a session, writing the
// appropriate error response when it cannot.
func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_session_id", "session id must be a UUID")
		return nil, false
	}
	sess, err := h.app.Sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session_not_found", "no such session")
		return nil, false
	}
	return sess, true
}

// parseKey converts a wire query body into a validated QueryKey.
// Locale defaults to the session's current locale when omitted.
func (h *SessionHandler) parseKey(body QueryBody, sess *session.Session) (session.QueryKey, error) {
	loc := sess.Locale()
	if body.Locale != "" {
		parsed, err := i18n.Parse(body.Locale)
		if err != nil {
			return session.QueryKey{}, err
		}
		loc = parsed
	}

	key := session.QueryKey{
		Mode:        session.Mode(body.Mode),
		Keyword:     body.Keyword,
		Destination: body.Destination,
		Locale:      loc,
	}
	if err := key.Validate(); err != nil {
		return session.QueryKey{}, err
	}
	return key, nil
}

// summarize renders a session without its transcript.
func (h *SessionHandler) summarize(sess *session.Session) SessionSummary {
	summary := SessionSummary{
		ID:        sess.ID().String(),
		CreatedAt: sess.CreatedAt(),
		Locale:    string(sess.Locale()),
		Epoch:     sess.Epoch(),
	}
	if key, ok := sess.QueryKey(); ok {
		summary.Query = &QueryBody{
			Mode:        string(key.Mode),
			Keyword:     key.Keyword,
			Destination: key.Destination,
			Locale:      string(key.Locale),
		}
	}
	return summary
}

// renderRecords converts records to wire form, truncating summaries to
// the display limit.
func (h *SessionHandler) renderRecords(records []grounding.Record) []RecordBody {
	limit := h.app.Config.DisplayCharLimit
	out := make([]RecordBody, 0, len(records))
	for _, rec := range records {
		out = append(out, RecordBody{
			Title:       rec.Title,
			Summary:     grounding.Truncate(rec.Summary, limit),
			SourceName:  rec.SourceName,
			URL:         rec.URL,
			ImageURL:    rec.ImageURL,
			PublishedAt: rec.PublishedAt,
		})
	}
	return out
}
