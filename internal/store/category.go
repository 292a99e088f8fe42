// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"blogicum/internal/models"
)

// CategoryStore handles all category-related database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories with their post counts, ordered by title.
// Used by the admin area, so unpublished categories are included.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.title, c.slug, c.description, c.is_published, c.created_at,
		       (SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id) AS post_count
		FROM categories c
		ORDER BY c.title ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.Description, &c.IsPublished, &c.CreatedAt,
			&c.PostCount,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Count returns the total number of categories, published or not.
func (s *CategoryStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// FindBySlug retrieves a published category by its slug. Returns nil if the
// category does not exist or is unpublished, so hidden categories render as
// not-found on the public site.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, title, slug, description, is_published, created_at
		FROM categories WHERE slug = $1 AND is_published = TRUE
	`, slug).Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.IsPublished, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// FindByID retrieves a category by its UUID regardless of publication state.
// Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, title, slug, description, is_published, created_at
		FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.IsPublished, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// ListPublished returns published categories ordered by title. Used to
// populate the category selector on the post form.
func (s *CategoryStore) ListPublished() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT id, title, slug, description, is_published, created_at
		FROM categories WHERE is_published = TRUE
		ORDER BY title ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list published categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.Description, &c.IsPublished, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Create inserts a new category and returns it with the generated ID.
func (s *CategoryStore) Create(title, slug, description string, isPublished bool) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (title, slug, description, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, slug, description, is_published, created_at
	`, title, slug, description, isPublished).Scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, &c.IsPublished, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Update saves changes to an existing category.
func (s *CategoryStore) Update(id uuid.UUID, title, slug, description string, isPublished bool) error {
	_, err := s.db.Exec(`
		UPDATE categories SET title = $1, slug = $2, description = $3, is_published = $4
		WHERE id = $5
	`, title, slug, description, isPublished, id)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Posts filed under it keep existing with a
// NULL category and fall off public listings.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
