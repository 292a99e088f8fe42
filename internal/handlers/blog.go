// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains all HTTP handlers, grouped by area: the public
// blog, post and comment mutations, profiles, authentication and the admin
// panel. Handlers load entities by their path id, run the policy checks and
// render templates; they never reach into the router.
package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogicum/internal/cache"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/pagination"
	"blogicum/internal/policy"
	"blogicum/internal/render"
	"blogicum/internal/store"
)

// Blog groups the read-only public handlers: index, category listings and
// the post detail page. Anonymous responses are cached in Valkey; logged-in
// views bypass the cache because they carry per-user state (draft badges,
// edit links, CSRF tokens).
type Blog struct {
	renderer      *render.Renderer
	postStore     *store.PostStore
	commentStore  *store.CommentStore
	categoryStore *store.CategoryStore
	pageCache     *cache.PageCache
	pageSize      int
}

// NewBlog creates a new Blog handler group.
func NewBlog(renderer *render.Renderer, postStore *store.PostStore, commentStore *store.CommentStore, categoryStore *store.CategoryStore, pageCache *cache.PageCache, pageSize int) *Blog {
	return &Blog{
		renderer:      renderer,
		postStore:     postStore,
		commentStore:  commentStore,
		categoryStore: categoryStore,
		pageCache:     pageCache,
		pageSize:      pageSize,
	}
}

// uuidParam parses the named chi URL parameter as a UUID. ok is false for
// anything that is not a well-formed UUID; callers treat that as not-found.
func uuidParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// cacheable reports whether the response may be served from and stored in
// the page cache. Only fully anonymous requests qualify.
func cacheable(r *http.Request) bool {
	return middleware.SessionFromCtx(r.Context()) == nil
}

// servePage renders name through the page cache when the request is
// anonymous, and straight through otherwise.
func (b *Blog) servePage(w http.ResponseWriter, r *http.Request, key, name string, data *render.PageData) {
	ctx := r.Context()

	if !cacheable(r) {
		b.renderer.Page(w, r, name, data)
		return
	}

	if cached, ok := b.pageCache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(cached)
		return
	}

	var buf bytes.Buffer
	rec := &bufferingWriter{ResponseWriter: w, buf: &buf}
	b.renderer.Page(rec, r, name, data)
	if rec.status == http.StatusOK {
		b.pageCache.Set(ctx, key, buf.Bytes())
	}
}

// bufferingWriter tees the response body so a successful render can be
// stored in the page cache after it has been sent to the client.
type bufferingWriter struct {
	http.ResponseWriter
	buf    *bytes.Buffer
	status int
}

func (bw *bufferingWriter) WriteHeader(code int) {
	if bw.status == 0 {
		bw.status = code
	}
	bw.ResponseWriter.WriteHeader(code)
}

func (bw *bufferingWriter) Write(p []byte) (int, error) {
	if bw.status == 0 {
		bw.status = http.StatusOK
	}
	bw.buf.Write(p)
	return bw.ResponseWriter.Write(p)
}

// Index renders the front page: publicly listed posts, newest first,
// paginated.
func (b *Blog) Index(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	posts, err := b.postStore.ListPublic(now)
	if err != nil {
		slog.Error("list public posts failed", "error", err)
		b.renderer.ServerError(w, r)
		return
	}

	number := pagination.ParseNumber(r.URL.Query().Get("page"))
	page := pagination.Paginate(posts, b.pageSize, number)

	b.servePage(w, r, cache.IndexKey(page.Number), "index", &render.PageData{
		Title:   "Latest posts",
		Section: "index",
		Data:    map[string]any{"Page": page},
	})
}

// CategoryPosts renders one category's listing. Unknown and unpublished
// categories both come back as not-found.
func (b *Blog) CategoryPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, err := b.categoryStore.FindBySlug(slug)
	if err != nil {
		slog.Error("find category failed", "error", err, "slug", slug)
		b.renderer.ServerError(w, r)
		return
	}
	if category == nil {
		b.renderer.NotFound(w, r)
		return
	}

	now := time.Now()
	posts, err := b.postStore.ListByCategory(category.ID, now)
	if err != nil {
		slog.Error("list category posts failed", "error", err, "slug", slug)
		b.renderer.ServerError(w, r)
		return
	}

	number := pagination.ParseNumber(r.URL.Query().Get("page"))
	page := pagination.Paginate(posts, b.pageSize, number)

	b.servePage(w, r, cache.CategoryKey(slug, page.Number), "category", &render.PageData{
		Title:   category.Title,
		Section: "category",
		Data:    map[string]any{"Category": category, "Page": page},
	})
}

// Detail renders a single post with its comments. Posts the viewer may
// not see render as not-found, never as forbidden, so drafts stay
// undiscoverable.
func (b *Blog) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "postID")
	if !ok {
		b.renderer.NotFound(w, r)
		return
	}

	post, err := b.postStore.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "post_id", id)
		b.renderer.ServerError(w, r)
		return
	}

	actorID := middleware.ActorID(r.Context())
	if !policy.PostVisible(post, actorID) {
		b.renderer.NotFound(w, r)
		return
	}

	comments, err := b.commentStore.ListByPost(post.ID)
	if err != nil {
		slog.Error("list comments failed", "error", err, "post_id", id)
		b.renderer.ServerError(w, r)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	b.servePage(w, r, cache.PostKey(post.ID.String()), "detail", &render.PageData{
		Title: post.Title,
		Data: map[string]any{
			"Post":     post,
			"Comments": comments,
			"ActorID":  actorID,
			"CanEdit":  policy.CanMutatePost(post, actorID),
		},
	})
}
