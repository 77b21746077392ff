// Package api provides the HTTP REST API for the grounded chat engine.
//
// Endpoints:
//
//	GET    /health                     liveness probe
//	GET    /ready                      readiness probe
//	POST   /api/sessions               create session
//	GET    /api/sessions               list sessions
//	GET    /api/sessions/{id}          session detail (history + grounding)
//	DELETE /api/sessions/{id}          delete session
//	POST   /api/sessions/{id}/query    set or change the query key
//	POST   /api/sessions/{id}/chat     send a user message
//	POST   /api/sessions/{id}/clear    clear chat history, keep grounding
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (logging, recovery)
//   - health.go: health check endpoints (/health, /ready)
//   - session.go: session lifecycle and query-key endpoints
//   - chat.go: chat and clear endpoints
//   - response.go: JSON response helpers
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/hojin-dev/newschat/internal/app"
	"github.com/hojin-dev/newschat/internal/log"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:3400"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Model completions can take a while, so this is generous.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the REST API.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger

	// Handlers
	health  *HealthHandler
	session *SessionHandler
	chat    *ChatHandler
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(application *app.App, logger log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:     mux,
		logger:  logger,
		health:  NewHealthHandler(application, logger),
		session: NewSessionHandler(application, logger),
		chat:    NewChatHandler(application, logger),
	}

	s.health.RegisterRoutes(mux)
	s.session.RegisterRoutes(mux)
	s.chat.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		loggingMiddleware(s.logger),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
