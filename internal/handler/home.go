package handler

import (
	"net/http"

	"github.com/sakif/snippetshare/internal/model"
)

// homeSnippet is the fixed sample shown on the landing page so first-time
// visitors see what a rendered snippet looks like before registering.
var homeSnippet = model.Snippet{
	Title:    "Shuffle a deck",
	Language: "javascript",
	Content: "function shuffleCards (array) {\n" +
		"  let currentIndex = array.length\n\n" +
		"  while (currentIndex !== 0) {\n" +
		"    const randomIndex = Math.floor(Math.random() * currentIndex)\n" +
		"    currentIndex -= 1\n\n" +
		"    const temporaryValue = array[currentIndex]\n" +
		"    array[currentIndex] = array[randomIndex]\n" +
		"    array[randomIndex] = temporaryValue\n" +
		"  }\n" +
		"}",
}

// HomeHandler serves the landing page.
type HomeHandler struct {
	render *Renderer
}

// NewHomeHandler creates a HomeHandler.
func NewHomeHandler(render *Renderer) *HomeHandler {
	return &HomeHandler{render: render}
}

// HandleIndex renders the home page.
//
// HTTP: GET /
func (h *HomeHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, "home.html", "Snippet Share", homeSnippet)
}
