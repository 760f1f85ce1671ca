// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the composition root: it wires the GitHub client into
// the services, the services into the handlers, and the handlers into routes.
//
//	main.go creates: config, logger, github.Client
//	server.New creates: StatsService, SuggestionService → handlers → chi router
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/salifshaikh/portfolio/internal/config"
	"github.com/salifshaikh/portfolio/internal/handler"
	"github.com/salifshaikh/portfolio/internal/middleware"
	"github.com/salifshaikh/portfolio/internal/service"
)

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
}

// New creates a Server. gh is the GitHub API the stats endpoint reads from;
// main passes a *github.Client, tests pass a fake.
func New(cfg *config.Config, logger *slog.Logger, gh service.GitHubAPI) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: nil config")
	}
	if gh == nil {
		return nil, errors.New("server: nil GitHub client")
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}
	s.setupRoutes(gh)
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET  /healthz            → liveness probe
// GET  /api/github-stats   → aggregated GitHub statistics (JSON)
// POST /api/ai-suggestion  → contact message suggestion (JSON)
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns a unique ID to each request
// 2. RealIP: extracts the client IP from proxy headers
// 3. Recoverer: turns panics into 500s
// 4. Logger: logs each request with timing info and the request ID
func (s *Server) setupRoutes(gh service.GitHubAPI) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Get("/healthz", handler.HandleHealth)

	statsService := service.NewStatsService(gh, s.config.GitHubUsername, s.logger)
	statsHandler := handler.NewStatsHandler(statsService, s.logger)

	suggestionService := service.NewSuggestionService(s.logger)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/github-stats", statsHandler.HandleGetStats)
		r.Post("/ai-suggestion", suggestionHandler.HandleSuggest)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully, giving in-flight requests up to 30 seconds to finish.
func (s *Server) Start() error {
	// WriteTimeout must outlast a full aggregation: up to two rounds of
	// outbound calls, each bounded by the HTTP client timeout.
	writeTimeout := 2*s.config.HTTPTimeout + 5*time.Second
	if writeTimeout < 15*time.Second {
		writeTimeout = 15 * time.Second
	}

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("github_user", s.config.GitHubUsername),
			slog.Bool("github_token", s.config.GitHubToken != ""),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
