// Package server provides the HTTP API for kouhou.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/minatolab/kouhou/internal/config"
	"github.com/minatolab/kouhou/internal/search"
	"go.uber.org/zap"
)

// Server is the HTTP server for the kouhou API.
type Server struct {
	engine *search.Engine
	cfg    *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server around the given engine.
func NewServer(engine *search.Engine, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		engine: engine,
		cfg:    cfg,
		logger: logger,
	}
}

// Router builds the HTTP route tree. Exposed for tests.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/document", s.handleUpload)
	r.Get("/api/v1/document", s.handleGetDocument)
	r.Get("/api/v1/document/sections/{index}", s.handleGetSection)
	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
