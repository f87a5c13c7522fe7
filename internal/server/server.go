// Package server provides the HTTP server for the cellarlens API.
package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cellarlens/cellarlens/internal/server/handlers"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	uploader handlers.Uploader
	logger   *zerolog.Logger
	config   Config
	httpSrv  *http.Server
}

// New creates a new server instance with the given configuration.
func New(uploader handlers.Uploader, logger *zerolog.Logger, cfg Config) *Server {
	s := &Server{
		uploader: uploader,
		logger:   logger,
		config:   cfg,
	}

	s.httpSrv = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.setupRouter(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the configured http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe runs the server until it fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("address", s.config.Address).Msg("Starting HTTP server")
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully shuts the server down, draining in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")
	return s.httpSrv.Shutdown(ctx)
}
