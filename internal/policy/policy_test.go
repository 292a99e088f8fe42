package policy

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"blogicum/internal/models"
)

var (
	now    = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	past   = now.Add(-time.Hour)
	future = now.Add(time.Hour)
)

func makePost(authorID uuid.UUID, published bool, pubDate time.Time, categoryPublished bool) *models.Post {
	return &models.Post{
		ID:          uuid.New(),
		Title:       "Post",
		AuthorID:    authorID,
		IsPublished: published,
		PubDate:     pubDate,
		Category: &models.Category{
			ID:          uuid.New(),
			Title:       "Category",
			Slug:        "category",
			IsPublished: categoryPublished,
		},
	}
}

func TestPostVisible(t *testing.T) {
	author := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name     string
		post     *models.Post
		viewerID *uuid.UUID
		want     bool
	}{
		{
			name:     "published post, anonymous viewer",
			post:     makePost(author, true, past, true),
			viewerID: nil,
			want:     true,
		},
		{
			name:     "published post, unrelated viewer",
			post:     makePost(author, true, past, true),
			viewerID: &stranger,
			want:     true,
		},
		{
			name:     "draft, anonymous viewer",
			post:     makePost(author, false, past, true),
			viewerID: nil,
			want:     false,
		},
		{
			name:     "draft, unrelated viewer",
			post:     makePost(author, false, past, true),
			viewerID: &stranger,
			want:     false,
		},
		{
			name:     "draft, its author",
			post:     makePost(author, false, past, true),
			viewerID: &author,
			want:     true,
		},
		{
			name:     "scheduled post is still visible on detail",
			post:     makePost(author, true, future, true),
			viewerID: nil,
			want:     true,
		},
		{
			name:     "nil post",
			post:     nil,
			viewerID: &author,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PostVisible(tt.post, tt.viewerID); got != tt.want {
				t.Errorf("PostVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPostListedPublicly(t *testing.T) {
	author := uuid.New()

	tests := []struct {
		name string
		post *models.Post
		want bool
	}{
		{
			name: "published, past pub date, published category",
			post: makePost(author, true, past, true),
			want: true,
		},
		{
			name: "pub date exactly now counts as listed",
			post: makePost(author, true, now, true),
			want: true,
		},
		{
			name: "draft never listed",
			post: makePost(author, false, past, true),
			want: false,
		},
		{
			name: "future pub date not listed",
			post: makePost(author, true, future, true),
			want: false,
		},
		{
			name: "unpublished category hides post",
			post: makePost(author, true, past, false),
			want: false,
		},
		{
			name: "no category hides post",
			post: &models.Post{AuthorID: author, IsPublished: true, PubDate: past},
			want: false,
		},
		{
			name: "nil post",
			post: nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PostListedPublicly(tt.post, now); got != tt.want {
				t.Errorf("PostListedPublicly() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestListedImpliesVisible checks the containment between the two read
// predicates: anything on a public listing must also be openable by anyone,
// while the converse fails for an author's own draft.
func TestListedImpliesVisible(t *testing.T) {
	author := uuid.New()

	posts := []*models.Post{
		makePost(author, true, past, true),
		makePost(author, true, past, false),
		makePost(author, true, future, true),
		makePost(author, false, past, true),
		makePost(author, false, future, false),
	}

	for _, p := range posts {
		if PostListedPublicly(p, now) && !PostVisible(p, nil) {
			t.Errorf("post %s listed publicly but not visible to anonymous viewer", p.ID)
		}
	}

	// The converse: a draft is visible to its author but never listed.
	draft := makePost(author, false, past, true)
	if !PostVisible(draft, &author) {
		t.Fatal("author should see own draft on detail")
	}
	if PostListedPublicly(draft, now) {
		t.Error("draft must not appear in public listings, even for its author")
	}
}

func TestCanMutatePost(t *testing.T) {
	author := uuid.New()
	stranger := uuid.New()
	post := makePost(author, true, past, true)

	if !CanMutatePost(post, &author) {
		t.Error("author should be allowed to mutate own post")
	}
	if CanMutatePost(post, &stranger) {
		t.Error("non-author must not mutate the post")
	}
	if CanMutatePost(post, nil) {
		t.Error("anonymous actor must not mutate the post")
	}
	if CanMutatePost(nil, &author) {
		t.Error("nil post must not be mutable")
	}
}

func TestCanMutateComment(t *testing.T) {
	author := uuid.New()
	stranger := uuid.New()
	comment := &models.Comment{
		ID:       uuid.New(),
		PostID:   uuid.New(),
		AuthorID: author,
		Text:     "a comment",
	}

	if !CanMutateComment(comment, &author) {
		t.Error("author should be allowed to mutate own comment")
	}
	if CanMutateComment(comment, &stranger) {
		t.Error("non-author must not mutate the comment")
	}
	if CanMutateComment(comment, nil) {
		t.Error("anonymous actor must not mutate the comment")
	}
	if CanMutateComment(nil, &author) {
		t.Error("nil comment must not be mutable")
	}
}
