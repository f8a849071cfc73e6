package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/snippetshare/internal/apperror"
	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/service"
	"github.com/sakif/snippetshare/internal/session"
)

// contextKey is unexported so only this package can stash values for the
// wrapped handlers.
type contextKey string

const snippetKey contextKey = "snippet"

// Guards are the authorization preconditions evaluated before a handler
// runs. Each one is chi middleware: a failing guard short-circuits with its
// error page and the handler never executes. Composing them on a route is
// the explicit ordered predicate chain — first failure wins.
type Guards struct {
	snippets *service.SnippetService
	render   *Renderer
	logger   *slog.Logger
}

// NewGuards creates the guard set.
func NewGuards(snippets *service.SnippetService, render *Renderer, logger *slog.Logger) *Guards {
	return &Guards{
		snippets: snippets,
		render:   render,
		logger:   logger,
	}
}

// RequireAuthenticated passes only if a user is logged in; otherwise 403.
func (g *Guards) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.LoggedIn() {
			g.render.Error(w, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAnonymous passes only if nobody is logged in; otherwise 403. Used
// on the login and registration pages — a logged-in user has no business
// there.
func (g *Guards) RequireAnonymous(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if ok && sess.LoggedIn() {
			g.render.Error(w, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwner loads the snippet named by the {id} URL parameter and passes
// only if the logged-in user is its author. A missing snippet is 404, a
// non-owner (or anonymous) requester is 403. On success the loaded snippet
// is stashed in the request context so the handler doesn't fetch it twice.
//
// Ownership is recomputed per request from session.User == snippet.Author —
// nothing about it is persisted.
func (g *Guards) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		snippet, err := g.snippets.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrValidation) {
				g.render.Error(w, http.StatusNotFound)
				return
			}
			g.logger.Error("owner guard: loading snippet failed",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
			g.render.Error(w, http.StatusInternalServerError)
			return
		}

		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.LoggedIn() || sess.User != snippet.Author {
			g.render.Error(w, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), snippetKey, snippet)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SnippetFromContext retrieves the snippet loaded by RequireOwner.
func SnippetFromContext(ctx context.Context) (*model.Snippet, bool) {
	s, ok := ctx.Value(snippetKey).(*model.Snippet)
	return s, ok && s != nil
}
