// Package api implements the REST server for the meta analyzer.
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/api/handlers"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/api/response"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/engine"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/version"
)

// Server represents the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	addr       string
}

// Config holds configuration for the API server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{Addr: ":8080"}
}

// NewServer creates a new API server over the given engine.
func NewServer(cfg *Config, e *engine.Engine) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		router: chi.NewRouter(),
		addr:   cfg.Addr,
	}

	s.setupMiddleware()
	s.setupRoutes(e)

	return s
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
}

// setupRoutes registers all API routes.
func (s *Server) setupRoutes(e *engine.Engine) {
	analysis := handlers.NewAnalysisHandler(e)
	snapshots := handlers.NewSnapshotHandler(e)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/dashboard", analysis.GetDashboard)
		r.Get("/analysis", analysis.GetAnalysis)
		r.Get("/lineup", analysis.GetLineup)
		r.Get("/cycles", analysis.GetCycles)
		r.Get("/diversity", analysis.GetDiversity)
		r.Get("/gems", analysis.GetGems)
		r.Get("/trends", analysis.GetTrends)
		r.Post("/refresh", analysis.Refresh)

		r.Get("/snapshots", snapshots.GetSnapshots)
	})
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.GetVersion(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server in a goroutine.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("API server listening on %s", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("API server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}
