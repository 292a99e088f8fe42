// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/pagination"
	"blogicum/internal/render"
	"blogicum/internal/store"
)

// Profile groups the profile page and the self-service profile editor.
type Profile struct {
	renderer  *render.Renderer
	userStore *store.UserStore
	postStore *store.PostStore
	pageSize  int
}

// NewProfile creates a new Profile handler group.
func NewProfile(renderer *render.Renderer, userStore *store.UserStore, postStore *store.PostStore, pageSize int) *Profile {
	return &Profile{
		renderer:  renderer,
		userStore: userStore,
		postStore: postStore,
		pageSize:  pageSize,
	}
}

// Show renders a user's profile with their complete post archive, drafts
// and scheduled posts included, paginated newest first. The archive is the
// same for every visitor.
func (p *Profile) Show(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := p.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("find user failed", "error", err, "username", username)
		p.renderer.ServerError(w, r)
		return
	}
	if user == nil {
		p.renderer.NotFound(w, r)
		return
	}

	posts, err := p.postStore.ListByAuthor(user.ID)
	if err != nil {
		slog.Error("list author posts failed", "error", err, "username", username)
		p.renderer.ServerError(w, r)
		return
	}

	number := pagination.ParseNumber(r.URL.Query().Get("page"))
	page := pagination.Paginate(posts, p.pageSize, number)

	sess := middleware.SessionFromCtx(r.Context())
	isOwner := sess != nil && sess.UserID == user.ID

	p.renderer.Page(w, r, "profile", &render.PageData{
		Title:   user.FullName(),
		Section: "profile",
		Data: map[string]any{
			"Profile": user,
			"Page":    page,
			"IsOwner": isOwner,
		},
	})
}

// loadOwnProfile resolves the {username} path segment for the profile
// editor. Unknown usernames are a 404; a logged-in user opening someone
// else's editor is bounced to the login page. Returns nil when a response
// has already been written.
func (p *Profile) loadOwnProfile(w http.ResponseWriter, r *http.Request) *models.User {
	username := chi.URLParam(r, "username")

	user, err := p.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("find user for profile edit failed", "error", err, "username", username)
		p.renderer.ServerError(w, r)
		return nil
	}
	if user == nil {
		p.renderer.NotFound(w, r)
		return nil
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || sess.UserID != user.ID {
		http.Redirect(w, r, "/auth/login/", http.StatusSeeOther)
		return nil
	}
	return user
}

// EditForm renders the profile editor for the logged-in user.
func (p *Profile) EditForm(w http.ResponseWriter, r *http.Request) {
	user := p.loadOwnProfile(w, r)
	if user == nil {
		return
	}

	p.renderer.Page(w, r, "profile_form", &render.PageData{
		Title: "Edit profile",
		Data:  map[string]any{"User": user},
	})
}

// EditSubmit validates and saves the profile fields, then returns to the
// profile page.
func (p *Profile) EditSubmit(w http.ResponseWriter, r *http.Request) {
	user := p.loadOwnProfile(w, r)
	if user == nil {
		return
	}

	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	bio := r.FormValue("bio")

	if msg := validateProfile(firstName, lastName, email, bio); msg != "" {
		user.FirstName, user.LastName, user.Email, user.Bio = firstName, lastName, email, bio
		p.renderer.Page(w, r, "profile_form", &render.PageData{
			Title: "Edit profile",
			Data:  map[string]any{"User": user, "Errors": []string{msg}},
		})
		return
	}

	if email != user.Email {
		other, err := p.userStore.FindByEmail(email)
		if err != nil {
			slog.Error("email lookup failed", "error", err)
			p.renderer.ServerError(w, r)
			return
		}
		if other != nil {
			user.FirstName, user.LastName, user.Bio = firstName, lastName, bio
			p.renderer.Page(w, r, "profile_form", &render.PageData{
				Title: "Edit profile",
				Data:  map[string]any{"User": user, "Errors": []string{"That email address is already in use."}},
			})
			return
		}
	}

	if err := p.userStore.UpdateProfile(user.ID, firstName, lastName, email, bio); err != nil {
		slog.Error("update profile failed", "error", err, "user_id", user.ID)
		p.renderer.ServerError(w, r)
		return
	}

	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusSeeOther)
}
