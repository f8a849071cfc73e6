// Package handler contains the HTTP layer: template rendering, authorization
// guards, and the request handlers for every page. Handlers parse forms, call
// exactly one service operation, and either render a view or queue a flash
// message and redirect — no business logic lives here.
package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/snippetshare/internal/apperror"
	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/session"
)

// pages are the templates rendered inside the base layout. Each one is
// parsed together with base.html so {{define "content"}} blocks slot into
// the layout's {{template "content" .}} placeholder.
var pages = []string{
	"home.html",
	"snippet_index.html",
	"snippet_show.html",
	"snippet_new.html",
	"snippet_edit.html",
	"snippet_remove.html",
	"login.html",
	"user_new.html",
	"user_show.html",
}

// errorPages are standalone full pages, rendered without the layout (and
// without touching the session, so a pending flash survives for the next
// successful render).
var errorPages = map[int]string{
	http.StatusForbidden:           "403.html",
	http.StatusNotFound:            "404.html",
	http.StatusInternalServerError: "500.html",
}

// viewData is what every page template receives.
type viewData struct {
	Title string
	User  string       // logged-in username, empty for anonymous visitors
	Flash *model.Flash // consumed from the session for this render only
	Data  any          // page-specific view model
}

// Renderer holds the parsed templates and renders pages and error pages.
// Templates are parsed once at startup; a bad template fails boot instead of
// the first request.
type Renderer struct {
	pages    map[string]*template.Template
	errors   map[int]*template.Template
	sessions *session.Manager
	logger   *slog.Logger
}

// NewRenderer parses all templates under templateDir.
func NewRenderer(templateDir string, sessions *session.Manager, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		pages:    make(map[string]*template.Template, len(pages)),
		errors:   make(map[int]*template.Template, len(errorPages)),
		sessions: sessions,
		logger:   logger,
	}

	base := filepath.Join(templateDir, "base.html")
	for _, page := range pages {
		tmpl, err := template.ParseFiles(base, filepath.Join(templateDir, page))
		if err != nil {
			return nil, fmt.Errorf("handler: parsing template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	for status, page := range errorPages {
		tmpl, err := template.ParseFiles(filepath.Join(templateDir, "errors", page))
		if err != nil {
			return nil, fmt.Errorf("handler: parsing error template %s: %w", page, err)
		}
		r.errors[status] = tmpl
	}

	return r, nil
}

// Page renders a page template inside the base layout.
//
// The pending flash message (if any) is taken from the session here — taking
// it removes it, which is what makes a flash show exactly once.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	vd := viewData{
		Title: title,
		Data:  data,
	}

	if sess, ok := session.FromContext(r.Context()); ok {
		vd.User = sess.User

		flash, err := rn.sessions.TakeFlash(r.Context(), sess)
		if err != nil {
			rn.logger.Error("failed to take flash", slog.String("error", err.Error()))
		} else {
			vd.Flash = flash
		}
	}

	tmpl, ok := rn.pages[page]
	if !ok {
		rn.logger.Error("unknown template requested", slog.String("page", page))
		rn.Error(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", vd); err != nil {
		rn.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Error renders the generic error page for the given status (403, 404, 500).
// The page is static — no stack detail or request data ever leaks into it.
func (rn *Renderer) Error(w http.ResponseWriter, status int) {
	tmpl, ok := rn.errors[status]
	if !ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, nil); err != nil {
		rn.logger.Error("failed to render error page",
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
	}
}

// Fail converts a service error into the response the user sees.
//
// Recoverable failures (validation, conflict, bad credentials) become a
// danger flash and a redirect back to formURL so the user can fix their
// input. NotFound and Forbidden render their error pages. Anything else is
// an unexpected failure and renders the 500 page.
func (rn *Renderer) Fail(w http.ResponseWriter, r *http.Request, err error, formURL string) {
	switch {
	case errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrConflict),
		errors.Is(err, apperror.ErrAuth):
		rn.FlashRedirect(w, r, model.FlashDanger, err.Error(), formURL)
	case errors.Is(err, apperror.ErrNotFound):
		rn.Error(w, http.StatusNotFound)
	case errors.Is(err, apperror.ErrForbidden):
		rn.Error(w, http.StatusForbidden)
	default:
		rn.logger.Error("unexpected handler error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		rn.Error(w, http.StatusInternalServerError)
	}
}

// FlashRedirect queues a flash message on the session and redirects.
func (rn *Renderer) FlashRedirect(w http.ResponseWriter, r *http.Request, flashType, text, url string) {
	if sess, ok := session.FromContext(r.Context()); ok {
		if err := rn.sessions.SetFlash(r.Context(), sess, flashType, text); err != nil {
			rn.logger.Error("failed to set flash", slog.String("error", err.Error()))
		}
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
