// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"blogicum/internal/cache"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/policy"
	"blogicum/internal/render"
	"blogicum/internal/store"
)

// Comments groups the authenticated comment handlers. As with posts, a
// mutation attempt on someone else's comment redirects to the post detail
// page.
type Comments struct {
	renderer     *render.Renderer
	postStore    *store.PostStore
	commentStore *store.CommentStore
	pageCache    *cache.PageCache
}

// NewComments creates a new Comments handler group.
func NewComments(renderer *render.Renderer, postStore *store.PostStore, commentStore *store.CommentStore, pageCache *cache.PageCache) *Comments {
	return &Comments{
		renderer:     renderer,
		postStore:    postStore,
		commentStore: commentStore,
		pageCache:    pageCache,
	}
}

// loadOwnComment fetches the comment named in the URL and applies the
// mutation policy: a missing comment (or one that does not belong to the
// post in the URL) renders as not-found; a comment the actor does not own
// redirects to the post detail page. Non-nil only when mutation is allowed.
func (c *Comments) loadOwnComment(w http.ResponseWriter, r *http.Request) *models.Comment {
	postID, ok := uuidParam(r, "postID")
	if !ok {
		c.renderer.NotFound(w, r)
		return nil
	}
	commentID, ok := uuidParam(r, "commentID")
	if !ok {
		c.renderer.NotFound(w, r)
		return nil
	}

	comment, err := c.commentStore.FindByID(commentID)
	if err != nil {
		slog.Error("find comment failed", "error", err, "comment_id", commentID)
		c.renderer.ServerError(w, r)
		return nil
	}
	if comment == nil || comment.PostID != postID {
		c.renderer.NotFound(w, r)
		return nil
	}

	if !policy.CanMutateComment(comment, middleware.ActorID(r.Context())) {
		http.Redirect(w, r, "/posts/"+postID.String()+"/", http.StatusSeeOther)
		return nil
	}
	return comment
}

// AddSubmit creates a comment on a post the actor can see and returns to
// the detail page.
func (c *Comments) AddSubmit(w http.ResponseWriter, r *http.Request) {
	postID, ok := uuidParam(r, "postID")
	if !ok {
		c.renderer.NotFound(w, r)
		return
	}

	post, err := c.postStore.FindByID(postID)
	if err != nil {
		slog.Error("find post failed", "error", err, "post_id", postID)
		c.renderer.ServerError(w, r)
		return
	}

	actorID := middleware.ActorID(r.Context())
	if !policy.PostVisible(post, actorID) {
		c.renderer.NotFound(w, r)
		return
	}

	text := r.FormValue("text")
	if msg := validateComment(text); msg != "" {
		// Invalid comment text just returns to the detail page; the form
		// field is marked required client-side.
		http.Redirect(w, r, "/posts/"+post.ID.String()+"/", http.StatusSeeOther)
		return
	}

	if _, err := c.commentStore.Create(post.ID, *actorID, text); err != nil {
		slog.Error("create comment failed", "error", err, "post_id", post.ID)
		c.renderer.ServerError(w, r)
		return
	}

	c.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/posts/"+post.ID.String()+"/", http.StatusSeeOther)
}

// EditForm renders the comment edit form.
func (c *Comments) EditForm(w http.ResponseWriter, r *http.Request) {
	comment := c.loadOwnComment(w, r)
	if comment == nil {
		return
	}
	c.renderer.Page(w, r, "comment_form", &render.PageData{
		Title: "Edit comment",
		Data:  map[string]any{"Comment": comment},
	})
}

// EditSubmit saves the edited comment text.
func (c *Comments) EditSubmit(w http.ResponseWriter, r *http.Request) {
	comment := c.loadOwnComment(w, r)
	if comment == nil {
		return
	}

	text := r.FormValue("text")
	if msg := validateComment(text); msg != "" {
		c.renderer.Page(w, r, "comment_form", &render.PageData{
			Title: "Edit comment",
			Data:  map[string]any{"Comment": comment, "Errors": []string{msg}},
		})
		return
	}

	if err := c.commentStore.Update(comment.ID, text); err != nil {
		slog.Error("update comment failed", "error", err, "comment_id", comment.ID)
		c.renderer.ServerError(w, r)
		return
	}

	c.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/posts/"+comment.PostID.String()+"/", http.StatusSeeOther)
}

// DeleteConfirm renders the comment delete confirmation page.
func (c *Comments) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	comment := c.loadOwnComment(w, r)
	if comment == nil {
		return
	}
	c.renderer.Page(w, r, "comment_confirm_delete", &render.PageData{
		Title: "Delete comment",
		Data:  map[string]any{"Comment": comment},
	})
}

// DeleteSubmit removes the comment and returns to the post.
func (c *Comments) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	comment := c.loadOwnComment(w, r)
	if comment == nil {
		return
	}

	if err := c.commentStore.Delete(comment.ID); err != nil {
		slog.Error("delete comment failed", "error", err, "comment_id", comment.ID)
		c.renderer.ServerError(w, r)
		return
	}

	c.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/posts/"+comment.PostID.String()+"/", http.StatusSeeOther)
}
