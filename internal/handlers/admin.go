// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"blogicum/internal/cache"
	"blogicum/internal/render"
	"blogicum/internal/slug"
	"blogicum/internal/store"
)

// AdminResource is one entry in the admin dashboard's resource catalog.
// The catalog is an explicit list built at wiring time and handed to
// NewAdmin; adding a managed resource means adding it there and wiring
// its routes, nothing is discovered by reflection.
type AdminResource struct {
	Title string
	Path  string
	Count func() (int, error) // live item count shown on the dashboard
}

// Admin groups the superuser-only handlers for managing categories and
// locations.
type Admin struct {
	renderer      *render.Renderer
	categoryStore *store.CategoryStore
	locationStore *store.LocationStore
	pageCache     *cache.PageCache
	resources     []AdminResource
}

// NewAdmin creates a new Admin handler group managing the given resource
// catalog.
func NewAdmin(renderer *render.Renderer, categoryStore *store.CategoryStore, locationStore *store.LocationStore, pageCache *cache.PageCache, resources []AdminResource) *Admin {
	return &Admin{
		renderer:      renderer,
		categoryStore: categoryStore,
		locationStore: locationStore,
		pageCache:     pageCache,
		resources:     resources,
	}
}

// Dashboard renders the resource catalog with item counts.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Title string
		Path  string
		Count int
	}

	entries := make([]entry, 0, len(a.resources))
	for _, res := range a.resources {
		n, err := res.Count()
		if err != nil {
			slog.Error("count admin resource failed", "error", err, "resource", res.Title)
			a.renderer.ServerError(w, r)
			return
		}
		entries = append(entries, entry{Title: res.Title, Path: res.Path, Count: n})
	}

	a.renderer.Page(w, r, "admin_dashboard", &render.PageData{
		Title: "Administration",
		Data:  map[string]any{"Resources": entries},
	})
}

// Categories renders the category list.
func (a *Admin) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}
	a.renderer.Page(w, r, "admin_categories", &render.PageData{
		Title: "Categories",
		Data:  map[string]any{"Categories": categories},
	})
}

// CategoryNewForm renders the empty category form.
func (a *Admin) CategoryNewForm(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "admin_category_form", &render.PageData{
		Title: "New category",
		Data:  map[string]any{},
	})
}

// CategoryCreate validates and creates a category. An empty slug is
// generated from the title.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.FormValue("title"))
	slugValue := strings.TrimSpace(r.FormValue("slug"))
	description := r.FormValue("description")
	isPublished := r.FormValue("is_published") == "on"

	if title == "" {
		a.renderer.Page(w, r, "admin_category_form", &render.PageData{
			Title: "New category",
			Data:  map[string]any{"Errors": []string{"Title is required."}},
		})
		return
	}
	if slugValue == "" {
		slugValue = slug.Generate(title)
	}

	if _, err := a.categoryStore.Create(title, slugValue, description, isPublished); err != nil {
		slog.Error("create category failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/categories/", http.StatusSeeOther)
}

// CategoryEditForm renders the form pre-filled with an existing category.
func (a *Admin) CategoryEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "categoryID")
	if !ok {
		a.renderer.NotFound(w, r)
		return
	}
	category, err := a.categoryStore.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "category_id", id)
		a.renderer.ServerError(w, r)
		return
	}
	if category == nil {
		a.renderer.NotFound(w, r)
		return
	}
	a.renderer.Page(w, r, "admin_category_form", &render.PageData{
		Title: "Edit category",
		Data:  map[string]any{"Category": category, "IsEdit": true},
	})
}

// CategoryUpdate saves changes to a category. Unpublishing a category
// drops its posts from all public listings, which is why the page cache
// is flushed here.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "categoryID")
	if !ok {
		a.renderer.NotFound(w, r)
		return
	}
	category, err := a.categoryStore.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "category_id", id)
		a.renderer.ServerError(w, r)
		return
	}
	if category == nil {
		a.renderer.NotFound(w, r)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	slugValue := strings.TrimSpace(r.FormValue("slug"))
	description := r.FormValue("description")
	isPublished := r.FormValue("is_published") == "on"

	if title == "" {
		a.renderer.Page(w, r, "admin_category_form", &render.PageData{
			Title: "Edit category",
			Data:  map[string]any{"Category": category, "IsEdit": true, "Errors": []string{"Title is required."}},
		})
		return
	}
	if slugValue == "" {
		slugValue = slug.Generate(title)
	}

	if err := a.categoryStore.Update(id, title, slugValue, description, isPublished); err != nil {
		slog.Error("update category failed", "error", err, "category_id", id)
		a.renderer.ServerError(w, r)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/categories/", http.StatusSeeOther)
}

// CategoryDelete removes a category.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "categoryID")
	if !ok {
		a.renderer.NotFound(w, r)
		return
	}
	if err := a.categoryStore.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err, "category_id", id)
		a.renderer.ServerError(w, r)
		return
	}
	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/categories/", http.StatusSeeOther)
}

// Locations renders the location list.
func (a *Admin) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := a.locationStore.List()
	if err != nil {
		slog.Error("list locations failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}
	a.renderer.Page(w, r, "admin_locations", &render.PageData{
		Title: "Locations",
		Data:  map[string]any{"Locations": locations},
	})
}

// LocationNewForm renders the empty location form.
func (a *Admin) LocationNewForm(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "admin_location_form", &render.PageData{
		Title: "New location",
		Data:  map[string]any{},
	})
}

// LocationCreate validates and creates a location.
func (a *Admin) LocationCreate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	isPublished := r.FormValue("is_published") == "on"

	if name == "" {
		a.renderer.Page(w, r, "admin_location_form", &render.PageData{
			Title: "New location",
			Data:  map[string]any{"Errors": []string{"Name is required."}},
		})
		return
	}

	if _, err := a.locationStore.Create(name, isPublished); err != nil {
		slog.Error("create location failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/locations/", http.StatusSeeOther)
}

// LocationEditForm renders the form pre-filled with an existing location.
func (a *Admin) LocationEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "locationID")
	if !ok {
		a.renderer.NotFound(w, r)
		return
	}
	location, err := a.locationStore.FindByID(id)
	if err != nil {
		slog.Error("find location failed", "error", err, "location_id", id)
		a.renderer.ServerError(w, r)
		return
	}
	if location == nil {
		a.renderer.NotFound(w, r)
		return
	}
	a.renderer.Page(w, r, "admin_location_form", &render.PageData{
		Title: "Edit location",
		Data:  map[string]any{"Location": location, "IsEdit": true},
	})
}

// LocationUpdate saves changes to a location.
func (a *Admin) LocationUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "locationID")
	if !ok {
		a.renderer.NotFound(w, r)
		return
	}
	location, err := a.locationStore.FindByID(id)
	if err != nil {
		slog.Error("find location failed", "error", err, "location_id", id)
		a.renderer.ServerError(w, r)
		return
	}
	if location == nil {
		a.renderer.NotFound(w, r)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	isPublished := r.FormValue("is_published") == "on"

	if name == "" {
		a.renderer.Page(w, r, "admin_location_form", &render.PageData{
			Title: "Edit location",
			Data:  map[string]any{"Location": location, "IsEdit": true, "Errors": []string{"Name is required."}},
		})
		return
	}

	if err := a.locationStore.Update(id, name, isPublished); err != nil {
		slog.Error("update location failed", "error", err, "location_id", id)
		a.renderer.ServerError(w, r)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/locations/", http.StatusSeeOther)
}

// LocationDelete removes a location.
func (a *Admin) LocationDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "locationID")
	if !ok {
		a.renderer.NotFound(w, r)
		return
	}
	if err := a.locationStore.Delete(id); err != nil {
		slog.Error("delete location failed", "error", err, "location_id", id)
		a.renderer.ServerError(w, r)
		return
	}
	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/locations/", http.StatusSeeOther)
}
