// Package server wires the application together: it owns the composition
// root (database → repositories → services → handlers), the route table, and
// the HTTP server lifecycle.
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

	"github.com/sakif/snippetshare/internal/auth"
	"github.com/sakif/snippetshare/internal/handler"
	"github.com/sakif/snippetshare/internal/middleware"
	sqliteRepo "github.com/sakif/snippetshare/internal/repository/sqlite"
	"github.com/sakif/snippetshare/internal/service"
	"github.com/sakif/snippetshare/internal/session"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string
}

// Server is the HTTP server and the dependencies it owns. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: it opens the database, builds the whole dependency
// chain, and registers every route.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes builds the dependency chain and the route table.
//
// Guard placement mirrors the access rules: /snippets/new and
// /snippets/create need any logged-in user; the per-snippet edit/update/
// remove/delete routes need the owner; login and registration pages reject
// users who are already logged in. Everything else is public.
func (s *Server) setupRoutes() error {
	// One sqlite.DB implements all three repository interfaces.
	sessions := session.NewManager(s.db, s.logger)
	passwords := auth.NewPasswordService()
	snippetService := service.NewSnippetService(s.db, s.logger)
	userService := service.NewUserService(s.db, s.db, passwords, s.logger)

	render, err := handler.NewRenderer(s.config.TemplateDir, sessions, s.logger)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	guards := handler.NewGuards(snippetService, render, s.logger)

	home := handler.NewHomeHandler(render)
	snippets := handler.NewSnippetHandler(snippetService, sessions, render, s.logger)
	users := handler.NewUserHandler(userService, render, s.logger)
	login := handler.NewLoginHandler(userService, sessions, render, s.logger)

	// Global middleware, outermost first. Rescue sits inside the logger so
	// a recovered panic is still logged as a 500 request.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Rescue(s.logger, func(w http.ResponseWriter) {
		render.Error(w, http.StatusInternalServerError)
	}))
	s.router.Use(session.Middleware(sessions))

	// Routing misses render the same 404 page as missing resources.
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, http.StatusNotFound)
	})

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	s.router.Get("/", home.HandleIndex)

	s.router.Route("/snippets", func(r chi.Router) {
		r.Get("/", snippets.HandleList)
		r.With(guards.RequireAuthenticated).Get("/new", snippets.HandleNew)
		r.With(guards.RequireAuthenticated).Post("/create", snippets.HandleCreate)
		r.Get("/{id}", snippets.HandleShow)
		r.With(guards.RequireOwner).Get("/{id}/edit", snippets.HandleEdit)
		r.With(guards.RequireOwner).Get("/{id}/remove", snippets.HandleRemove)
		r.With(guards.RequireOwner).Post("/{id}/update", snippets.HandleUpdate)
		r.With(guards.RequireOwner).Post("/{id}/delete", snippets.HandleDelete)
	})

	s.router.Route("/login", func(r chi.Router) {
		r.With(guards.RequireAnonymous).Get("/", login.HandleForm)
		r.With(guards.RequireAnonymous).Post("/", login.HandleLogin)
		r.With(guards.RequireAuthenticated).Get("/logout", login.HandleLogout)
	})

	s.router.Route("/user", func(r chi.Router) {
		r.With(guards.RequireAnonymous).Get("/new", users.HandleNew)
		r.With(guards.RequireAnonymous).Post("/create", users.HandleCreate)
		r.Get("/{username}", users.HandleShow)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
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
