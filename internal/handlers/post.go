// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogicum/internal/cache"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/policy"
	"blogicum/internal/render"
	"blogicum/internal/storage"
	"blogicum/internal/store"
)

const (
	// MaxImageUpload caps post image uploads at 10 MiB.
	MaxImageUpload = 10 << 20

	// MaxRequestBody bounds the whole request body: the image plus the
	// text fields and multipart framing. The router feeds this to the
	// body-limit middleware.
	MaxRequestBody = MaxImageUpload + 1<<20
)

// pubDateLayouts lists the accepted publication date formats: the
// datetime-local input format first, then a space-separated fallback.
var pubDateLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

// Posts groups the authenticated post mutation handlers: create, edit and
// delete. A mutation attempt on someone else's post redirects to the post
// detail page instead of failing loudly.
type Posts struct {
	renderer      *render.Renderer
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
	locationStore *store.LocationStore
	storageClient *storage.Client
	pageCache     *cache.PageCache
}

// NewPosts creates a new Posts handler group. storageClient may be nil if
// S3 is not configured; image uploads are then skipped.
func NewPosts(renderer *render.Renderer, postStore *store.PostStore, categoryStore *store.CategoryStore, locationStore *store.LocationStore, storageClient *storage.Client, pageCache *cache.PageCache) *Posts {
	return &Posts{
		renderer:      renderer,
		postStore:     postStore,
		categoryStore: categoryStore,
		locationStore: locationStore,
		storageClient: storageClient,
		pageCache:     pageCache,
	}
}

// loadOwnPost fetches the post named in the URL and applies the access
// policy for mutations: an invisible post renders as not-found, a visible
// post the actor does not own redirects to its detail page. The returned
// post is non-nil only when the actor may mutate it.
func (p *Posts) loadOwnPost(w http.ResponseWriter, r *http.Request) *models.Post {
	id, ok := uuidParam(r, "postID")
	if !ok {
		p.renderer.NotFound(w, r)
		return nil
	}

	post, err := p.postStore.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "post_id", id)
		p.renderer.ServerError(w, r)
		return nil
	}

	actorID := middleware.ActorID(r.Context())
	if !policy.PostVisible(post, actorID) {
		p.renderer.NotFound(w, r)
		return nil
	}
	if !policy.CanMutatePost(post, actorID) {
		http.Redirect(w, r, "/posts/"+post.ID.String()+"/", http.StatusSeeOther)
		return nil
	}
	return post
}

// formChoices loads the published categories and locations for the post form.
func (p *Posts) formChoices() ([]models.Category, []models.Location, error) {
	categories, err := p.categoryStore.ListPublished()
	if err != nil {
		return nil, nil, err
	}
	locations, err := p.locationStore.ListPublished()
	if err != nil {
		return nil, nil, err
	}
	return categories, locations, nil
}

func (p *Posts) renderForm(w http.ResponseWriter, r *http.Request, post *models.Post, isEdit bool, errs []string) {
	categories, locations, err := p.formChoices()
	if err != nil {
		slog.Error("load form choices failed", "error", err)
		p.renderer.ServerError(w, r)
		return
	}

	title := "New post"
	if isEdit {
		title = "Edit post"
	}
	p.renderer.Page(w, r, "post_form", &render.PageData{
		Title: title,
		Data: map[string]any{
			"Post":       post,
			"IsEdit":     isEdit,
			"Categories": categories,
			"Locations":  locations,
			"Errors":     errs,
		},
	})
}

// CreateForm renders the empty post form.
func (p *Posts) CreateForm(w http.ResponseWriter, r *http.Request) {
	p.renderForm(w, r, nil, false, nil)
}

// CreateSubmit validates the form and creates the post. On success the
// author lands on their own profile, where the new post is visible even
// when it is a draft or scheduled.
func (p *Posts) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	post, errs := p.postFromForm(r, &models.Post{AuthorID: sess.UserID})
	if len(errs) > 0 {
		p.renderForm(w, r, post, false, errs)
		return
	}

	created, err := p.postStore.Create(post)
	if err != nil {
		slog.Error("create post failed", "error", err)
		p.renderer.ServerError(w, r)
		return
	}

	p.pageCache.InvalidateAll(r.Context())
	slog.Info("post created", "post_id", created.ID, "author", sess.Username)
	http.Redirect(w, r, "/profile/"+sess.Username+"/", http.StatusSeeOther)
}

// EditForm renders the form pre-filled with the post being edited.
func (p *Posts) EditForm(w http.ResponseWriter, r *http.Request) {
	post := p.loadOwnPost(w, r)
	if post == nil {
		return
	}
	p.renderForm(w, r, post, true, nil)
}

// EditSubmit validates the form and saves the post, then returns to the
// detail page.
func (p *Posts) EditSubmit(w http.ResponseWriter, r *http.Request) {
	post := p.loadOwnPost(w, r)
	if post == nil {
		return
	}

	updated, errs := p.postFromForm(r, post)
	if len(errs) > 0 {
		p.renderForm(w, r, updated, true, errs)
		return
	}

	if _, err := p.postStore.Update(updated); err != nil {
		slog.Error("update post failed", "error", err, "post_id", post.ID)
		p.renderer.ServerError(w, r)
		return
	}

	p.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/posts/"+post.ID.String()+"/", http.StatusSeeOther)
}

// DeleteConfirm renders the delete confirmation page.
func (p *Posts) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	post := p.loadOwnPost(w, r)
	if post == nil {
		return
	}
	p.renderer.Page(w, r, "post_confirm_delete", &render.PageData{
		Title: "Delete post",
		Data:  map[string]any{"Post": post},
	})
}

// DeleteSubmit removes the post and its comments and returns to the index.
func (p *Posts) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	post := p.loadOwnPost(w, r)
	if post == nil {
		return
	}

	if err := p.postStore.Delete(post.ID); err != nil {
		slog.Error("delete post failed", "error", err, "post_id", post.ID)
		p.renderer.ServerError(w, r)
		return
	}

	if post.ImageURL != nil && p.storageClient != nil {
		if key, ok := imageKeyFromURL(*post.ImageURL); ok {
			if err := p.storageClient.Delete(r.Context(), key); err != nil {
				slog.Warn("delete post image failed", "error", err, "key", key)
			}
		}
	}

	p.pageCache.InvalidateAll(r.Context())
	slog.Info("post deleted", "post_id", post.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// postFromForm fills post from the submitted form, returning validation
// errors rather than failing on the first one. The incoming post carries
// the identity fields (ID, AuthorID) that the form never sets.
func (p *Posts) postFromForm(r *http.Request, post *models.Post) (*models.Post, []string) {
	if err := r.ParseMultipartForm(MaxImageUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return post, []string{"The upload is too large. Images may be at most 10 MB."}
		}
		// Plain form posts (no file field) fall back to urlencoded parsing.
		if err := r.ParseForm(); err != nil {
			return post, []string{"The submitted form could not be read."}
		}
	}

	post.Title = strings.TrimSpace(r.FormValue("title"))
	post.Text = r.FormValue("text")
	post.IsPublished = r.FormValue("is_published") == "on"

	var errs []string
	if msg := validatePost(post.Title, post.Text); msg != "" {
		errs = append(errs, msg)
	}

	if pubDate, ok := parsePubDate(r.FormValue("pub_date")); ok {
		post.PubDate = pubDate
	} else {
		errs = append(errs, "Enter a valid publication date.")
	}

	post.CategoryID = nil
	if raw := r.FormValue("category"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			post.CategoryID = &id
		} else {
			errs = append(errs, "Choose a valid category.")
		}
	} else {
		errs = append(errs, "Category is required.")
	}

	post.LocationID = nil
	if raw := r.FormValue("location"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			post.LocationID = &id
		} else {
			errs = append(errs, "Choose a valid location.")
		}
	}

	if len(errs) > 0 {
		return post, errs
	}

	if url, err := p.uploadImage(r); err != nil {
		errs = append(errs, "The image could not be uploaded.")
	} else if url != "" {
		post.ImageURL = &url
	}
	return post, errs
}

// uploadImage stores the submitted image in S3 and returns its public URL.
// Returns "" when no file was submitted or storage is not configured.
func (p *Posts) uploadImage(r *http.Request) (string, error) {
	if p.storageClient == nil || r.MultipartForm == nil {
		return "", nil
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	key := fmt.Sprintf("posts/%s%s", uuid.New(), strings.ToLower(filepath.Ext(header.Filename)))
	if err := p.storageClient.Upload(r.Context(), key, contentTypeOf(header), file, header.Size); err != nil {
		return "", err
	}
	return p.storageClient.FileURL(key), nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// imageKeyFromURL recovers the storage key from a stored image URL.
func imageKeyFromURL(url string) (string, bool) {
	const marker = "/posts/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", false
	}
	return url[idx+1:], true
}

func parsePubDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
