// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package policy holds the predicates that gate reading and mutating posts
// and comments. Handlers treat a failed read check as not-found rather than
// forbidden, so a draft's existence is never revealed to other users, and a
// failed mutation check as a redirect to the post detail page.
package policy

import (
	"time"

	"github.com/google/uuid"

	"blogicum/internal/models"
)

// PostVisible reports whether viewer may open the post's detail page.
// Published posts are visible to everyone; unpublished posts only to their
// author. viewerID is nil for anonymous visitors.
func PostVisible(post *models.Post, viewerID *uuid.UUID) bool {
	if post == nil {
		return false
	}
	if post.IsPublished {
		return true
	}
	return viewerID != nil && post.AuthorID == *viewerID
}

// PostListedPublicly reports whether the post belongs on the index and
// category listings. Stricter than PostVisible: the post itself and its
// category must be published, and the publication date must have passed.
// Authors never see their own drafts or scheduled posts in listings, only
// on the detail page.
func PostListedPublicly(post *models.Post, now time.Time) bool {
	if post == nil || !post.IsPublished {
		return false
	}
	if post.PubDate.After(now) {
		return false
	}
	return post.Category != nil && post.Category.IsPublished
}

// CanMutatePost reports whether actor may edit or delete the post.
func CanMutatePost(post *models.Post, actorID *uuid.UUID) bool {
	if post == nil || actorID == nil {
		return false
	}
	return post.AuthorID == *actorID
}

// CanMutateComment reports whether actor may edit or delete the comment.
func CanMutateComment(comment *models.Comment, actorID *uuid.UUID) bool {
	if comment == nil || actorID == nil {
		return false
	}
	return comment.AuthorID == *actorID
}
