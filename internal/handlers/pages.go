package handlers

import (
	"net/http"

	"blogicum/internal/render"
)

// Pages serves the static site pages.
type Pages struct {
	renderer *render.Renderer
}

// NewPages creates a new Pages handler group.
func NewPages(renderer *render.Renderer) *Pages {
	return &Pages{renderer: renderer}
}

// About renders the about page.
func (p *Pages) About(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "about", &render.PageData{Title: "About", Section: "about"})
}

// Rules renders the community rules page.
func (p *Pages) Rules(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "rules", &render.PageData{Title: "Rules", Section: "rules"})
}
