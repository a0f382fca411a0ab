// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bm/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bm/internal/httpserver/mw"
	"github.com/MrSnakeDoc/bm/internal/httpserver/routes"
	"github.com/MrSnakeDoc/bm/internal/logger"
)

const defaultRequestTimeout = 2 * time.Minute

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	logger  logger.Logger
	started time.Time
}

// New builds the HTTP server (router, middlewares, route registration).
func New(addr string, loggerClient logger.Logger, d deps.Deps) *Server {
	if d.Logger == nil {
		d.Logger = loggerClient
	}
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	s := &http.Server{
		Addr:              addr,
		Handler:           newRouter(loggerClient, timeout, d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// an add batch fetches pages one after the other
		WriteTimeout:   timeout + 5*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return &Server{
		http:    s,
		logger:  loggerClient,
		started: d.StartTime,
	}
}

func newRouter(loggerClient logger.Logger, timeout time.Duration, d deps.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(mw.Log(loggerClient))

	names := routes.RegisterAll(r, d)
	loggerClient.Debug("routes registered", logger.Strings("groups", names))
	return r
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
