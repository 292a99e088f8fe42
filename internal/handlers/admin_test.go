// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestAdminDashboardListsResources(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env, "admin-test-dashboard")

	req := httptest.NewRequest("GET", "/admin/", nil)
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(admin)))
	w := httptest.NewRecorder()
	env.Admin.Dashboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Categories") || !strings.Contains(body, "Locations") {
		t.Error("dashboard should list the category and location resources")
	}
}

func TestAdminDashboardRendersInjectedCatalog(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env, "admin-test-catalog")

	custom := NewAdmin(env.Renderer, env.CategoryStore, env.LocationStore, env.PageCache, []AdminResource{
		{Title: "Galleries", Path: "/admin/galleries/", Count: func() (int, error) { return 7, nil }},
	})

	req := httptest.NewRequest("GET", "/admin/", nil)
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(admin)))
	w := httptest.NewRecorder()
	custom.Dashboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Galleries") || !strings.Contains(body, ">7<") {
		t.Error("dashboard should render the catalog passed to NewAdmin")
	}
	if strings.Contains(body, "Categories") {
		t.Error("dashboard rendered a resource that is not in the catalog")
	}
}

func TestAdminCategoryCreateGeneratesSlug(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env, "admin-test-catcreate")
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE slug = $1", "weekend-trips") })
	env.DB.Exec("DELETE FROM categories WHERE slug = $1", "weekend-trips")

	form := url.Values{
		"title":        {"Weekend Trips"},
		"is_published": {"on"},
	}
	req := postForm(t, "/admin/categories/new/", form)
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(admin)))
	w := httptest.NewRecorder()
	env.Admin.CategoryCreate(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", w.Code)
	}

	created, err := env.CategoryStore.FindBySlug("weekend-trips")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if created == nil {
		t.Fatal("category with generated slug not found")
	}
	if created.Title != "Weekend Trips" {
		t.Errorf("title: got %q", created.Title)
	}
}

func TestAdminCategoryUnpublishHidesListing(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env, "admin-test-unpublish")
	category := createCategory(t, env, "admin-test-unpublish-cat", true)

	form := url.Values{
		"title": {category.Title},
		"slug":  {category.Slug},
		// is_published omitted — checkbox unchecked.
	}
	req := postForm(t, "/admin/categories/"+category.ID.String()+"/", form)
	req = withURLParams(req, map[string]string{"categoryID": category.ID.String()})
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(admin)))
	w := httptest.NewRecorder()
	env.Admin.CategoryUpdate(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", w.Code)
	}

	// The public lookup hides unpublished categories.
	hidden, err := env.CategoryStore.FindBySlug(category.Slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if hidden != nil {
		t.Error("unpublished category still resolves publicly")
	}
}

func TestAdminLocationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env, "admin-test-location")
	env.DB.Exec("DELETE FROM locations WHERE name = $1", "Admin Test Mountain")
	t.Cleanup(func() { env.DB.Exec("DELETE FROM locations WHERE name = $1", "Admin Test Mountain") })

	form := url.Values{
		"name":         {"Admin Test Mountain"},
		"is_published": {"on"},
	}
	req := postForm(t, "/admin/locations/new/", form)
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(admin)))
	w := httptest.NewRecorder()
	env.Admin.LocationCreate(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("create status: got %d, want 303", w.Code)
	}

	locations, err := env.LocationStore.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var found bool
	for _, l := range locations {
		if l.Name == "Admin Test Mountain" {
			found = true
		}
	}
	if !found {
		t.Error("created location not in admin listing")
	}
}
