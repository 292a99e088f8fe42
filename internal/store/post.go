// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogicum/internal/models"
)

// postQuery selects a post together with its author, category, location and
// comment count. Every PostStore read goes through this shape so listings and
// detail pages carry the same joined data.
const postQuery = `
	SELECT p.id, p.title, p.text, p.pub_date, p.author_id, p.category_id,
	       p.location_id, p.image_url, p.is_published, p.created_at,
	       u.username, u.first_name, u.last_name,
	       c.title, c.slug, c.is_published,
	       l.name, l.is_published,
	       (SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN locations l ON l.id = p.location_id`

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostRow(row rowScanner) (*models.Post, error) {
	p := &models.Post{}
	var (
		author            models.User
		catTitle, catSlug sql.NullString
		catPublished      sql.NullBool
		locName           sql.NullString
		locPublished      sql.NullBool
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Text, &p.PubDate, &p.AuthorID, &p.CategoryID,
		&p.LocationID, &p.ImageURL, &p.IsPublished, &p.CreatedAt,
		&author.Username, &author.FirstName, &author.LastName,
		&catTitle, &catSlug, &catPublished,
		&locName, &locPublished,
		&p.CommentCount,
	)
	if err != nil {
		return nil, err
	}

	author.ID = p.AuthorID
	p.Author = &author

	if p.CategoryID != nil {
		p.Category = &models.Category{
			ID:          *p.CategoryID,
			Title:       catTitle.String,
			Slug:        catSlug.String,
			IsPublished: catPublished.Bool,
		}
	}
	if p.LocationID != nil {
		p.Location = &models.Location{
			ID:          *p.LocationID,
			Name:        locName.String,
			IsPublished: locPublished.Bool,
		}
	}
	return p, nil
}

func (s *PostStore) queryPosts(query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPostRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by its UUID with author, category, location and
// comment count attached. Returns nil if not found. Visibility is decided by
// the caller, not here: drafts and scheduled posts come back too.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, err := scanPostRow(s.db.QueryRow(postQuery+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// ListPublic returns the posts that belong on the index: published, with a
// published category, publication date in the past. Newest first.
func (s *PostStore) ListPublic(now time.Time) ([]models.Post, error) {
	posts, err := s.queryPosts(postQuery+`
		WHERE p.is_published = TRUE
		  AND p.pub_date <= $1
		  AND c.is_published = TRUE
		ORDER BY p.pub_date DESC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list public posts: %w", err)
	}
	return posts, nil
}

// ListByCategory returns the publicly listed posts of one category, newest first.
func (s *PostStore) ListByCategory(categoryID uuid.UUID, now time.Time) ([]models.Post, error) {
	posts, err := s.queryPosts(postQuery+`
		WHERE p.category_id = $1
		  AND p.is_published = TRUE
		  AND p.pub_date <= $2
		ORDER BY p.pub_date DESC
	`, categoryID, now)
	if err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}
	return posts, nil
}

// ListByAuthor returns every post by one author, newest first, drafts and
// scheduled posts included. The profile page shows an author's full archive
// to any visitor.
func (s *PostStore) ListByAuthor(authorID uuid.UUID) ([]models.Post, error) {
	posts, err := s.queryPosts(postQuery+`
		WHERE p.author_id = $1
		ORDER BY p.pub_date DESC
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return posts, nil
}

// Create inserts a new post and returns it fully joined.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO posts (title, text, pub_date, author_id, category_id, location_id, image_url, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.Title, p.Text, p.PubDate, p.AuthorID, p.CategoryID, p.LocationID, p.ImageURL, p.IsPublished).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

// Update saves changes to an existing post and returns it fully joined.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	_, err := s.db.Exec(`
		UPDATE posts
		SET title = $1, text = $2, pub_date = $3, category_id = $4,
		    location_id = $5, image_url = $6, is_published = $7
		WHERE id = $8
	`, p.Title, p.Text, p.PubDate, p.CategoryID, p.LocationID, p.ImageURL, p.IsPublished, p.ID)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.FindByID(p.ID)
}

// Delete removes a post. Its comments go with it via the foreign key cascade.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
