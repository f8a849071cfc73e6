package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/service"
	"github.com/sakif/snippetshare/internal/session"
)

// LoginHandler serves the login form, authentication, and logout.
type LoginHandler struct {
	users    *service.UserService
	sessions *session.Manager
	render   *Renderer
	logger   *slog.Logger
}

// NewLoginHandler creates a LoginHandler.
func NewLoginHandler(
	users *service.UserService,
	sessions *session.Manager,
	render *Renderer,
	logger *slog.Logger,
) *LoginHandler {
	return &LoginHandler{
		users:    users,
		sessions: sessions,
		render:   render,
		logger:   logger,
	}
}

// HandleForm renders the login form.
//
// HTTP: GET /login (anonymous only)
func (h *LoginHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, "login.html", "Log In", nil)
}

// HandleLogin authenticates the submitted credentials and starts the
// session. The failure message is identical for unknown usernames and wrong
// passwords.
//
// HTTP: POST /login (anonymous only)
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.Fail(w, r, err, "/login")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		h.render.FlashRedirect(w, r, model.FlashDanger,
			"Please enter all fields", "/login")
		return
	}

	user, err := h.users.Authenticate(r.Context(), username, password)
	if err != nil {
		h.render.Fail(w, r, err, "/login")
		return
	}

	sess, _ := session.FromContext(r.Context())
	if err := h.sessions.SetUser(r.Context(), sess, user.Username); err != nil {
		h.render.Fail(w, r, err, "/login")
		return
	}

	h.render.FlashRedirect(w, r, model.FlashSuccess,
		"Welcome "+user.Username, "/user/"+user.Username)
}

// HandleLogout destroys the session. The old session row is deleted, so the
// cookie the browser held is dead immediately; the goodbye flash goes on the
// fresh anonymous session so it survives the redirect.
//
// HTTP: GET /login/logout (requires a logged-in user)
func (h *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	fresh, err := h.sessions.Destroy(r.Context(), w, sess)
	if err != nil {
		h.render.Fail(w, r, err, "/")
		return
	}

	if err := h.sessions.SetFlash(r.Context(), fresh, model.FlashSuccess,
		"You are now logged out!"); err != nil {
		h.logger.Error("failed to set logout flash", slog.String("error", err.Error()))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
