// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPostStoreFindByIDJoins(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	author := testUser(t, db, "store-test-post-author")
	category := testCategory(t, db, "store-test-post-cat", true)
	created := testPost(t, db, author, category, time.Now().Add(-time.Hour), true)

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected post, got nil")
	}
	if found.Author == nil || found.Author.Username != author.Username {
		t.Errorf("author not joined: %+v", found.Author)
	}
	if found.Category == nil || found.Category.Slug != category.Slug {
		t.Errorf("category not joined: %+v", found.Category)
	}
	if !found.Category.IsPublished {
		t.Error("category publication flag not carried through join")
	}
	if found.CommentCount != 0 {
		t.Errorf("comment count: got %d, want 0", found.CommentCount)
	}

	missing, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID (missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown id, got %+v", missing)
	}
}

func TestPostStoreListPublicFilters(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	author := testUser(t, db, "store-test-list-author")
	visible := testCategory(t, db, "store-test-list-cat", true)
	hidden := testCategory(t, db, "store-test-list-hidden", false)

	now := time.Now()
	listed := testPost(t, db, author, visible, now.Add(-time.Hour), true)
	draft := testPost(t, db, author, visible, now.Add(-time.Hour), false)
	scheduled := testPost(t, db, author, visible, now.Add(time.Hour), true)
	hiddenCat := testPost(t, db, author, hidden, now.Add(-time.Hour), true)

	posts, err := s.ListPublic(now)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}

	got := map[uuid.UUID]bool{}
	for _, p := range posts {
		got[p.ID] = true
	}
	if !got[listed.ID] {
		t.Error("published past post missing from public listing")
	}
	if got[draft.ID] {
		t.Error("draft must not be listed publicly")
	}
	if got[scheduled.ID] {
		t.Error("scheduled post must not be listed before its pub_date")
	}
	if got[hiddenCat.ID] {
		t.Error("post in unpublished category must not be listed publicly")
	}
}

func TestPostStoreListByAuthorIncludesDrafts(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	author := testUser(t, db, "store-test-archive-author")
	category := testCategory(t, db, "store-test-archive-cat", true)

	now := time.Now()
	older := testPost(t, db, author, category, now.Add(-2*time.Hour), true)
	draft := testPost(t, db, author, category, now.Add(-time.Hour), false)
	scheduled := testPost(t, db, author, category, now.Add(time.Hour), true)

	posts, err := s.ListByAuthor(author.ID)
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected the full archive (3 posts), got %d", len(posts))
	}

	// Newest pub_date first.
	if posts[0].ID != scheduled.ID || posts[1].ID != draft.ID || posts[2].ID != older.ID {
		t.Errorf("unexpected order: %v %v %v", posts[0].ID, posts[1].ID, posts[2].ID)
	}
}

func TestPostStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	author := testUser(t, db, "store-test-update-author")
	category := testCategory(t, db, "store-test-update-cat", true)
	post := testPost(t, db, author, category, time.Now().Add(-time.Hour), true)

	post.Title = "Edited Title"
	post.IsPublished = false
	updated, err := s.Update(post)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Edited Title" {
		t.Errorf("title: got %q", updated.Title)
	}
	if updated.IsPublished {
		t.Error("expected is_published=false after update")
	}
}

func TestCommentStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)

	author := testUser(t, db, "store-test-comment-author")
	category := testCategory(t, db, "store-test-comment-cat", true)
	post := testPost(t, db, author, category, time.Now().Add(-time.Hour), true)

	first, err := s.Create(post.ID, author.ID, "first")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(post.ID, author.ID, "second"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	comments, err := s.ListByPost(post.ID)
	if err != nil {
		t.Fatalf("ListByPost: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	// Oldest first.
	if comments[0].Text != "first" || comments[1].Text != "second" {
		t.Errorf("unexpected order: %q, %q", comments[0].Text, comments[1].Text)
	}
	if comments[0].Author == nil || comments[0].Author.Username != author.Username {
		t.Errorf("comment author not joined: %+v", comments[0].Author)
	}

	if err := s.Update(first.ID, "edited"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	edited, err := s.FindByID(first.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if edited.Text != "edited" {
		t.Errorf("text: got %q, want %q", edited.Text, "edited")
	}

	n, err := s.CountByPost(post.ID)
	if err != nil {
		t.Fatalf("CountByPost: %v", err)
	}
	if n != 2 {
		t.Errorf("count: got %d, want 2", n)
	}

	if err := s.Delete(first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(first.ID)
	if err != nil {
		t.Fatalf("FindByID (deleted): %v", err)
	}
	if gone != nil {
		t.Errorf("expected nil after delete, got %+v", gone)
	}
}
