// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"blogicum/internal/handlers"
	"blogicum/internal/middleware"
	"blogicum/internal/render"
	"blogicum/internal/session"
)

// testRouter builds the full route table with inert dependencies. Routes
// are only matched, never invoked, so the stores can stay nil.
func testRouter(t *testing.T) chi.Router {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	limiter := middleware.NewRateLimiter(20, time.Minute)
	t.Cleanup(limiter.Stop)

	return New(Deps{
		Renderer: renderer,
		Sessions: session.NewStore(nil, false),
		Limiter:  limiter,

		Blog:     handlers.NewBlog(renderer, nil, nil, nil, nil, 10),
		Posts:    handlers.NewPosts(renderer, nil, nil, nil, nil, nil),
		Comments: handlers.NewComments(renderer, nil, nil, nil),
		Profile:  handlers.NewProfile(renderer, nil, nil, 10),
		Auth:     handlers.NewAuth(renderer, nil, nil),
		Pages:    handlers.NewPages(renderer),
		Admin:    handlers.NewAdmin(renderer, nil, nil, nil, nil),

		Static: http.NotFoundHandler(),
	})
}

func TestRoutesMatchWithAndWithoutTrailingSlash(t *testing.T) {
	r := testRouter(t)

	// The comment delete and profile edit routes answer both URL forms.
	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/posts/11111111-1111-1111-1111-111111111111/delete_comment/22222222-2222-2222-2222-222222222222/"},
		{"POST", "/posts/11111111-1111-1111-1111-111111111111/delete_comment/22222222-2222-2222-2222-222222222222/"},
		{"GET", "/posts/11111111-1111-1111-1111-111111111111/delete_comment/22222222-2222-2222-2222-222222222222"},
		{"POST", "/posts/11111111-1111-1111-1111-111111111111/delete_comment/22222222-2222-2222-2222-222222222222"},
		{"GET", "/edit_profile/someone/"},
		{"POST", "/edit_profile/someone/"},
		{"GET", "/edit_profile/someone"},
		{"POST", "/edit_profile/someone"},
	}
	for _, p := range paths {
		rctx := chi.NewRouteContext()
		if !r.Match(rctx, p.method, p.path) {
			t.Errorf("%s %s did not match any route", p.method, p.path)
		}
	}
}

func TestPublicRoutesMatch(t *testing.T) {
	r := testRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/"},
		{"GET", "/posts/11111111-1111-1111-1111-111111111111/"},
		{"GET", "/category/travel/"},
		{"GET", "/profile/someone/"},
		{"GET", "/about/"},
		{"GET", "/rules/"},
		{"GET", "/pages/about/"},
		{"GET", "/pages/rules/"},
		{"GET", "/health"},
		{"POST", "/auth/login/"},
		{"POST", "/posts/11111111-1111-1111-1111-111111111111/comment/"},
		{"GET", "/admin/categories/new/"},
	}
	for _, p := range paths {
		rctx := chi.NewRouteContext()
		if !r.Match(rctx, p.method, p.path) {
			t.Errorf("%s %s did not match any route", p.method, p.path)
		}
	}
}
