// Package server is the composition root: it opens the store, seeds it,
// builds the service, controller and handlers, and mounts them on a chi
// router.
//
// DEPENDENCY FLOW:
//
//	config.Config → store (memory | sqlite) → SnippetService → App → handlers
//
// Every dependency is created here and passed down; no package reaches for
// a global.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/code-vault/internal/app"
	"github.com/sakif/code-vault/internal/config"
	"github.com/sakif/code-vault/internal/explain"
	"github.com/sakif/code-vault/internal/handler"
	"github.com/sakif/code-vault/internal/middleware"
	"github.com/sakif/code-vault/internal/model"
	"github.com/sakif/code-vault/internal/repository"
	"github.com/sakif/code-vault/internal/repository/memory"
	sqliteRepo "github.com/sakif/code-vault/internal/repository/sqlite"
	"github.com/sakif/code-vault/internal/seed"
	"github.com/sakif/code-vault/internal/service"
	"github.com/sakif/code-vault/web"
)

// Server owns the HTTP router and the store. Close releases the store; for
// the in-memory backends that discards every snippet.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  io.Closer
}

// New wires the whole application.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seeds, err := loadSeeds(cfg)
	if err != nil {
		return nil, err
	}

	repo, closer, err := openStore(cfg, seeds)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  closer,
	}

	if err := s.setupRoutes(repo); err != nil {
		closer.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	logger.Info("store ready",
		slog.String("backend", cfg.Store),
		slog.Int("seeded", len(seeds)),
	)
	return s, nil
}

func loadSeeds(cfg config.Config) ([]model.Snippet, error) {
	if cfg.SeedFile == "" {
		return seed.Samples(), nil
	}
	return seed.Load(cfg.SeedFile)
}

// openStore returns the configured backend, already holding seeds.
func openStore(cfg config.Config, seeds []model.Snippet) (repository.SnippetRepository, io.Closer, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		// A file database may already hold rows from an earlier run; seeds
		// only fill an empty store.
		existing, err := db.List(context.Background())
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		if len(existing) == 0 {
			for i := range seeds {
				if err := db.Create(context.Background(), &seeds[i]); err != nil {
					db.Close()
					return nil, nil, fmt.Errorf("seeding database: %w", err)
				}
			}
		}
		return db, db, nil
	default:
		return memory.New(seeds...), closerFunc(func() error { return nil }), nil
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// setupRoutes mounts middleware and handlers.
//
// ROUTES:
//
//	GET    /                              current screen (HTML)
//	POST   /events                        dispatch a UI command
//	GET    /healthz                       liveness
//	GET    /api/screen                    current screen (JSON view model)
//	GET    /api/languages                 distinct languages
//	GET    /api/snippets?q=&language=     filtered list
//	POST   /api/snippets                  create
//	GET    /api/snippets/{id}             read
//	PUT    /api/snippets/{id}             update
//	DELETE /api/snippets/{id}             delete
//	POST   /api/snippets/{id}/favorite    toggle favorite
//	GET    /api/snippets/{id}/explain     canned explanation
//
// Middleware runs in the order added: RequestID must come before the
// logger so the log line can carry the id.
func (s *Server) setupRoutes(repo repository.SnippetRepository) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	snippetService := service.NewSnippetService(repo, explain.Canned{}, s.logger)
	controller := app.New(snippetService, s.logger)

	screenHandler, err := handler.NewScreenHandler(controller, web.Templates, s.logger)
	if err != nil {
		return fmt.Errorf("creating screen handler: %w", err)
	}
	snippetHandler := handler.NewSnippetHandler(snippetService, s.logger)

	s.router.Get("/", screenHandler.HandleScreen)
	s.router.Post("/events", screenHandler.HandleEvent)
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/screen", screenHandler.HandleState)
		r.Get("/languages", snippetHandler.HandleLanguages)
		r.Route("/snippets", func(r chi.Router) {
			r.Get("/", snippetHandler.HandleList)
			r.Post("/", snippetHandler.HandleCreate)
			r.Get("/{id}", snippetHandler.HandleGetByID)
			r.Put("/{id}", snippetHandler.HandleUpdate)
			r.Delete("/{id}", snippetHandler.HandleDelete)
			r.Post("/{id}/favorite", snippetHandler.HandleToggleFavorite)
			r.Get("/{id}/explain", snippetHandler.HandleExplain)
		})
	})

	return nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests for up
// to 30 seconds and closes the store.
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
			slog.String("store", s.config.Store),
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
