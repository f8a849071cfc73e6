package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/snippetshare/internal/model"
)

// contextKey is unexported so only this package can read or write session
// values in a request context.
type contextKey string

const sessionKey contextKey = "session"

// Middleware hydrates the session for every request: it loads (or creates)
// the session from the cookie and stores it in the request context, where
// handlers and guards read it with FromContext.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.Load(r.Context(), w, r)
			if err != nil {
				m.logger.Error("failed to load session", slog.String("error", err.Error()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext retrieves the request's session.
//
// Returns (nil, false) only when Middleware did not run — inside the normal
// request chain the session always exists, even for anonymous visitors.
func FromContext(ctx context.Context) (*model.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*model.Session)
	return sess, ok && sess != nil
}
