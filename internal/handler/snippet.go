package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/service"
	"github.com/sakif/snippetshare/internal/session"
)

// SnippetHandler serves the snippet pages: list, show, and the create/edit/
// delete forms with their POST actions. The owner-only routes are wrapped in
// Guards.RequireOwner by the router, so by the time those handlers run the
// snippet is loaded and the requester is its author.
type SnippetHandler struct {
	snippets *service.SnippetService
	sessions *session.Manager
	render   *Renderer
	logger   *slog.Logger
}

// NewSnippetHandler creates a SnippetHandler.
func NewSnippetHandler(
	snippets *service.SnippetService,
	sessions *session.Manager,
	render *Renderer,
	logger *slog.Logger,
) *SnippetHandler {
	return &SnippetHandler{
		snippets: snippets,
		sessions: sessions,
		render:   render,
		logger:   logger,
	}
}

// snippetFormView backs the create and edit forms.
type snippetFormView struct {
	Snippet   *model.Snippet
	Languages []string
}

// snippetShowView backs the show page. IsOwner controls whether the edit and
// delete links render.
type snippetShowView struct {
	Snippet *model.Snippet
	IsOwner bool
}

// HandleList shows all snippets, newest first.
//
// HTTP: GET /snippets
func (h *SnippetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	snippets, err := h.snippets.ListAll(r.Context())
	if err != nil {
		h.render.Fail(w, r, err, "/snippets")
		return
	}

	h.render.Page(w, r, "snippet_index.html", "All Snippets", snippets)
}

// HandleShow displays a single snippet. Anyone may view; the owner also
// gets edit/delete links.
//
// HTTP: GET /snippets/{id}
func (h *SnippetHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.snippets.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.render.Fail(w, r, err, "/snippets")
		return
	}

	view := snippetShowView{Snippet: snippet}
	if sess, ok := session.FromContext(r.Context()); ok {
		view.IsOwner = sess.LoggedIn() && sess.User == snippet.Author
	}

	h.render.Page(w, r, "snippet_show.html", snippet.Title, view)
}

// HandleNew renders the creation form.
//
// HTTP: GET /snippets/new (requires a logged-in user)
func (h *SnippetHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, "snippet_new.html", "New Snippet", snippetFormView{
		Languages: model.Languages,
	})
}

// HandleCreate creates a snippet from the submitted form.
//
// HTTP: POST /snippets/create (requires a logged-in user)
func (h *SnippetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.Fail(w, r, err, "/snippets/new")
		return
	}

	sess, _ := session.FromContext(r.Context())

	_, err := h.snippets.Create(r.Context(),
		r.PostFormValue("title"),
		r.PostFormValue("description"),
		r.PostFormValue("language"),
		r.PostFormValue("content"),
		sess.User,
	)
	if err != nil {
		h.render.Fail(w, r, err, "/snippets/new")
		return
	}

	h.render.FlashRedirect(w, r, model.FlashSuccess,
		"Snippet was successfully created!", "/snippets")
}

// HandleEdit renders the edit form, prefilled with the snippet loaded by the
// owner guard.
//
// HTTP: GET /snippets/{id}/edit (owner only)
func (h *SnippetHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	snippet, ok := SnippetFromContext(r.Context())
	if !ok {
		h.render.Error(w, http.StatusNotFound)
		return
	}

	h.render.Page(w, r, "snippet_edit.html", "Edit Snippet", snippetFormView{
		Snippet:   snippet,
		Languages: model.Languages,
	})
}

// HandleUpdate replaces the snippet's mutable fields with the submitted
// form values.
//
// HTTP: POST /snippets/{id}/update (owner only)
func (h *SnippetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	snippet, ok := SnippetFromContext(r.Context())
	if !ok {
		h.render.Error(w, http.StatusNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.render.Fail(w, r, err, "/snippets/"+snippet.ID+"/edit")
		return
	}

	_, err := h.snippets.Update(r.Context(), snippet.ID,
		r.PostFormValue("title"),
		r.PostFormValue("description"),
		r.PostFormValue("language"),
		r.PostFormValue("content"),
	)
	if err != nil {
		h.render.Fail(w, r, err, "/snippets/"+snippet.ID+"/edit")
		return
	}

	h.render.FlashRedirect(w, r, model.FlashSuccess,
		"Snippet was successfully updated!", "/snippets/"+snippet.ID)
}

// HandleRemove renders the delete confirmation page.
//
// HTTP: GET /snippets/{id}/remove (owner only)
func (h *SnippetHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	snippet, ok := SnippetFromContext(r.Context())
	if !ok {
		h.render.Error(w, http.StatusNotFound)
		return
	}

	h.render.Page(w, r, "snippet_remove.html", "Delete Snippet", snippet)
}

// HandleDelete permanently removes the snippet.
//
// HTTP: POST /snippets/{id}/delete (owner only)
func (h *SnippetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	snippet, ok := SnippetFromContext(r.Context())
	if !ok {
		h.render.Error(w, http.StatusNotFound)
		return
	}

	if err := h.snippets.Delete(r.Context(), snippet.ID); err != nil {
		h.render.Fail(w, r, err, "/snippets")
		return
	}

	h.render.FlashRedirect(w, r, model.FlashSuccess,
		"Snippet was successfully deleted!", "/snippets")
}
