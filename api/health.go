package api

import (
	"net/http"

	"github.com/hojin-dev/newschat/internal/app"
	"github.com/hojin-dev/newschat/internal/i18n"
	"github.com/hojin-dev/newschat/internal/log"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	app    *app.App
	logger log.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(application *app.App, logger log.Logger) *HealthHandler {
	return &HealthHandler{app: application, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness is a liveness probe endpoint.
// Returns 200 OK if the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness is a readiness probe endpoint.
// Returns 200 OK once the application container and its message catalog
// are usable. There is no external storage to probe; sessions are
// in-memory.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if h.app == nil || h.app.Genkit == nil {
		http.Error(w, "application not initialized", http.StatusServiceUnavailable)
		return
	}
	if err := i18n.Validate(); err != nil {
		h.logger.Error("readiness check failed", "error", err)
		http.Error(w, "message catalog incomplete", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
