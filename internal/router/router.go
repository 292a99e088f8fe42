// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains. It
// organizes routes into public, authenticated and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogicum/internal/handlers"
	"blogicum/internal/middleware"
	"blogicum/internal/render"
	"blogicum/internal/session"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Renderer *render.Renderer
	Sessions *session.Store
	Limiter  *middleware.RateLimiter // applied to auth endpoints
	Secure   bool                    // marks cookies Secure in production

	Blog     *handlers.Blog
	Posts    *handlers.Posts
	Comments *handlers.Comments
	Profile  *handlers.Profile
	Auth     *handlers.Auth
	Pages    *handlers.Pages
	Admin    *handlers.Admin

	Static http.Handler // serves embedded /static assets
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.NewRecoverer(http.HandlerFunc(d.Renderer.ServerError)))
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	// Body cap before anything parses forms: the CSRF check reads the
	// token from the form, which would otherwise buffer an unbounded
	// multipart body to disk.
	r.Use(middleware.MaxBody(handlers.MaxRequestBody))
	r.Use(middleware.LoadSession(d.Sessions))
	r.Use(middleware.NewCSRF(d.Secure, http.HandlerFunc(d.Renderer.CSRFFailure)))

	r.NotFound(d.Renderer.NotFound)

	// Health check — no session state needed.
	r.Get("/health", healthHandler)

	// Static assets.
	r.Handle("/static/*", d.Static)

	// Public read-only pages.
	r.Get("/", d.Blog.Index)
	r.Get("/posts/{postID}/", d.Blog.Detail)
	r.Get("/category/{slug}/", d.Blog.CategoryPosts)
	r.Get("/profile/{username}/", d.Profile.Show)
	r.Get("/pages/about/", d.Pages.About)
	r.Get("/pages/rules/", d.Pages.Rules)
	r.Get("/about/", d.Pages.About)
	r.Get("/rules/", d.Pages.Rules)

	// Auth endpoints — rate limited against credential stuffing.
	r.Route("/auth", func(r chi.Router) {
		r.Use(d.Limiter.Middleware)

		r.Get("/registration/", d.Auth.RegistrationPage)
		r.Post("/registration/", d.Auth.RegistrationSubmit)
		r.Get("/login/", d.Auth.LoginPage)
		r.Post("/login/", d.Auth.LoginSubmit)
		r.Post("/logout/", d.Auth.Logout)

		// 2FA verification — requires a pending session from a password
		// login, not a completed one.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePending2FA)
			r.Get("/2fa/verify/", d.Auth.TwoFAVerifyPage)
			r.Post("/2fa/verify/", d.Auth.TwoFAVerifySubmit)
		})

		// 2FA setup — a fully logged-in user opting in.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup/", d.Auth.TwoFASetupPage)
			r.Post("/2fa/setup/", d.Auth.TwoFASetupSubmit)
		})
	})

	// Authenticated mutations.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/posts/create/", d.Posts.CreateForm)
		r.Post("/posts/create/", d.Posts.CreateSubmit)
		r.Get("/posts/{postID}/edit/", d.Posts.EditForm)
		r.Post("/posts/{postID}/edit/", d.Posts.EditSubmit)
		r.Get("/posts/{postID}/delete/", d.Posts.DeleteConfirm)
		r.Post("/posts/{postID}/delete/", d.Posts.DeleteSubmit)

		r.Post("/posts/{postID}/comment/", d.Comments.AddSubmit)
		r.Get("/posts/{postID}/edit_comment/{commentID}/", d.Comments.EditForm)
		r.Post("/posts/{postID}/edit_comment/{commentID}/", d.Comments.EditSubmit)
		// The comment delete and profile edit URLs answer with and without
		// a trailing slash; links elsewhere on the site use the slashed form.
		r.Get("/posts/{postID}/delete_comment/{commentID}/", d.Comments.DeleteConfirm)
		r.Post("/posts/{postID}/delete_comment/{commentID}/", d.Comments.DeleteSubmit)
		r.Get("/posts/{postID}/delete_comment/{commentID}", d.Comments.DeleteConfirm)
		r.Post("/posts/{postID}/delete_comment/{commentID}", d.Comments.DeleteSubmit)

		r.Get("/edit_profile/{username}/", d.Profile.EditForm)
		r.Post("/edit_profile/{username}/", d.Profile.EditSubmit)
		r.Get("/edit_profile/{username}", d.Profile.EditForm)
		r.Post("/edit_profile/{username}", d.Profile.EditSubmit)
	})

	// Admin area — superusers only.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireSuperuser)

		r.Get("/", d.Admin.Dashboard)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.Admin.Categories)
			r.Get("/new/", d.Admin.CategoryNewForm)
			r.Post("/new/", d.Admin.CategoryCreate)
			r.Get("/{categoryID}/", d.Admin.CategoryEditForm)
			r.Post("/{categoryID}/", d.Admin.CategoryUpdate)
			r.Post("/{categoryID}/delete/", d.Admin.CategoryDelete)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", d.Admin.Locations)
			r.Get("/new/", d.Admin.LocationNewForm)
			r.Post("/new/", d.Admin.LocationCreate)
			r.Get("/{locationID}/", d.Admin.LocationEditForm)
			r.Post("/{locationID}/", d.Admin.LocationUpdate)
			r.Post("/{locationID}/delete/", d.Admin.LocationDelete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
