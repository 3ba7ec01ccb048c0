// Package api exposes the report pipeline over HTTP: report creation,
// artifact serving and health endpoints. The pipeline itself lives in the
// service package; this layer only validates the protocol surface and maps
// results to responses.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gustitos/gustitosgo-backend/internal/config"
	"github.com/Gustitos/gustitosgo-backend/internal/logging"
	"github.com/Gustitos/gustitosgo-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server represents the HTTP API server.
type Server struct {
	router  *chi.Mux
	handler *Handler
	server  *http.Server
	cfg     *config.Config
	logger  logging.Logger
}

// NewServer creates a new API server around the report service.
func NewServer(cfg *config.Config, svc *service.Service, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(config.Logger)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	handler := NewHandler(svc, logger)
	router := chi.NewRouter()

	router.Use(CORSMiddleware)
	router.Use(s.RecoverMiddleware)
	router.Use(s.LoggingMiddleware)
	router.Use(middleware.RealIP)

	router.Get("/", handler.Root)
	router.Get("/health", handler.Health)
	router.Post("/create-report", handler.CreateReport)
	router.Post("/reload-data", handler.ReloadData)

	// Generated artifacts are immutable files; serve them directly.
	fileServer := http.StripPrefix("/reports/", http.FileServer(http.Dir(svc.ReportDir())))
	router.Get("/reports/*", fileServer.ServeHTTP)

	s.router = router
	s.handler = handler
	return s
}

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.WithField("addr", addr).Info("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
