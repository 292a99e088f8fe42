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

// LocationStore handles all location-related database operations.
type LocationStore struct {
	db *sql.DB
}

// NewLocationStore creates a new LocationStore with the given database connection.
func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

// List returns all locations with their post counts, ordered by name.
// Used by the admin area, so unpublished locations are included.
func (s *LocationStore) List() ([]models.Location, error) {
	rows, err := s.db.Query(`
		SELECT l.id, l.name, l.is_published, l.created_at,
		       (SELECT COUNT(*) FROM posts p WHERE p.location_id = l.id) AS post_count
		FROM locations l
		ORDER BY l.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var items []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt, &l.PostCount); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// Count returns the total number of locations, published or not.
func (s *LocationStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM locations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}

// ListPublished returns published locations ordered by name. Used to
// populate the location selector on the post form.
func (s *LocationStore) ListPublished() ([]models.Location, error) {
	rows, err := s.db.Query(`
		SELECT id, name, is_published, created_at
		FROM locations WHERE is_published = TRUE
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list published locations: %w", err)
	}
	defer rows.Close()

	var items []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// FindByID retrieves a location by its UUID. Returns nil if not found.
func (s *LocationStore) FindByID(id uuid.UUID) (*models.Location, error) {
	l := &models.Location{}
	err := s.db.QueryRow(`
		SELECT id, name, is_published, created_at FROM locations WHERE id = $1
	`, id).Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find location by id: %w", err)
	}
	return l, nil
}

// Create inserts a new location and returns it with the generated ID.
func (s *LocationStore) Create(name string, isPublished bool) (*models.Location, error) {
	l := &models.Location{}
	err := s.db.QueryRow(`
		INSERT INTO locations (name, is_published)
		VALUES ($1, $2)
		RETURNING id, name, is_published, created_at
	`, name, isPublished).Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return l, nil
}

// Update saves changes to an existing location.
func (s *LocationStore) Update(id uuid.UUID, name string, isPublished bool) error {
	_, err := s.db.Exec(`
		UPDATE locations SET name = $1, is_published = $2 WHERE id = $3
	`, name, isPublished, id)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Delete removes a location. Posts tagged with it keep existing with a
// NULL location.
func (s *LocationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
