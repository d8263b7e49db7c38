// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the whole
// dependency chain is assembled in one place:
//
//	sqlite.DB → services (prompt, history, auth) → handlers → routes
//
// Keeping server setup out of main.go makes it testable (a test can create a
// server without running main) and keeps main minimal.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/prompt-library/internal/auth"
	"github.com/sakif/prompt-library/internal/handler"
	"github.com/sakif/prompt-library/internal/middleware"
	sqliteRepo "github.com/sakif/prompt-library/internal/repository/sqlite"
	"github.com/sakif/prompt-library/internal/service"
)

// Config holds server configuration, read once at process start.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string

	// SessionSecret signs the JWT session cookies. Required.
	SessionSecret string

	// GitHub OAuth app credentials.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database connection; it is closed during graceful
// shutdown so the WAL is flushed and the file lock released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	tokens *auth.TokenService
}

// New creates a Server: opens the database, builds the service and handler
// graph, and wires the routes.
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo to avoid confusion with the
// sqlite driver package.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.SessionSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
		tokens: tokens,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET  /                      → Library page (HTML)
//	GET  /login                 → Same shell; shown after a failed OAuth flow
//	GET  /static/*              → Static files (CSS, JS)
//	GET  /auth/github           → Redirect to GitHub authorization
//	GET  /auth/github/callback  → OAuth callback
//	GET  /auth/check            → Session state (JSON)
//	GET  /auth/logout           → Clear session, redirect home
//	GET  /api/prompts           → List prompts (JSON)
//	GET  /api/prompts/{id}      → Get single prompt (JSON)
//	POST /api/prompts           → Create prompt (auth required)
//	PUT  /api/prompts/{id}      → Update prompt (auth required)
//	GET  /api/history           → Change history (JSON)
//	GET  /api/tags              → Tag catalog (JSON)
//
// Middleware order matters: RequestID → RealIP → Recoverer → request logging
// run on every request, in that order.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500

	s.router.Use(middleware.Logger(s.logger))

	// === Static Files ===
	// GET /static/css/style.css → serves {StaticDir}/css/style.css
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// === Page Routes ===
	pageHandler, err := handler.NewPageHandler(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pageHandler.HandleLibrary)
	s.router.Get("/login", pageHandler.HandleLibrary)

	// === Service / handler graph ===
	// The *sqliteRepo.DB value satisfies every repository interface; each
	// service receives only the narrow interface it needs.
	promptService := service.NewPromptService(s.db, s.db, s.db, s.logger)
	historyService := service.NewHistoryService(s.db, s.logger)
	authService := service.NewAuthService(s.db, s.tokens, s.logger)

	github := auth.NewGitHubProvider(
		s.config.GitHubClientID,
		s.config.GitHubClientSecret,
		s.config.GitHubCallbackURL,
	)

	authHandler := handler.NewAuthHandler(github, authService, s.logger)
	promptHandler := handler.NewPromptHandler(promptService, s.logger)
	historyHandler := handler.NewHistoryHandler(historyService, s.logger)

	// === Auth Routes ===
	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/github", authHandler.HandleGitHubLogin)
		r.Get("/github/callback", authHandler.HandleGitHubCallback)
		r.With(auth.OptionalAuth(s.tokens)).Get("/check", authHandler.HandleCheck)
		r.Get("/logout", authHandler.HandleLogout)
	})

	// === API Routes ===
	// Reads are public; writes require a valid session. RequireAuth rejects
	// anonymous writes with 401 before any handler or SQL runs.
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/prompts", promptHandler.HandleList)
		r.Get("/prompts/{id}", promptHandler.HandleGet)
		r.Get("/history", historyHandler.HandleList)
		r.Get("/tags", promptHandler.HandleListTags)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(s.tokens))
			r.Post("/prompts", promptHandler.HandleCreate)
			r.Put("/prompts/{id}", promptHandler.HandleUpdate)
		})
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown:
//
//  1. Stop accepting new HTTP connections on SIGINT/SIGTERM
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Close the database connection (flushes WAL, releases file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
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
