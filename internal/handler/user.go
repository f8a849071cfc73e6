package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/service"
)

// UserHandler serves registration and the public profile page.
type UserHandler struct {
	users  *service.UserService
	render *Renderer
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, render *Renderer, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		render: render,
		logger: logger,
	}
}

// profileView backs the public profile page: the username and their
// snippets, newest first.
type profileView struct {
	Username string
	Snippets []model.Snippet
}

// HandleNew renders the registration form.
//
// HTTP: GET /user/new (anonymous only)
func (h *UserHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, "user_new.html", "Register", nil)
}

// HandleCreate registers a new account from the submitted form. Success
// redirects to the login page; any validation or conflict failure flashes
// the reason and returns to the form.
//
// HTTP: POST /user/create (anonymous only)
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.Fail(w, r, err, "/user/new")
		return
	}

	_, err := h.users.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
		r.PostFormValue("confirmPassword"),
	)
	if err != nil {
		h.render.Fail(w, r, err, "/user/new")
		return
	}

	h.render.FlashRedirect(w, r, model.FlashSuccess,
		"Account successfully created!", "/login")
}

// HandleShow displays a user's public snippet list. Visible to everyone;
// 404 when no such user exists.
//
// HTTP: GET /user/{username}
func (h *UserHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, snippets, err := h.users.Profile(r.Context(), username)
	if err != nil {
		h.render.Fail(w, r, err, "/")
		return
	}

	h.render.Page(w, r, "user_show.html", user.Username, profileView{
		Username: user.Username,
		Snippets: snippets,
	})
}
