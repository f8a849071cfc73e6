package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Rescue returns middleware that recovers from handler panics. The panic is
// logged with a stack trace and the client gets the generic 500 page via
// renderError — never any internal detail.
//
// renderError is injected (rather than importing the renderer) so this
// package stays independent of the handler layer.
func Rescue(logger *slog.Logger, renderError func(http.ResponseWriter)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
					renderError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
