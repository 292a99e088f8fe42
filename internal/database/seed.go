package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a superuser
// account and a couple of published categories. No-op when any users exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, is_superuser)
		VALUES ($1, $2, $3, TRUE)
	`, "admin", "admin@blogicum.local", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO categories (title, slug, description) VALUES
		('Travel', 'travel', 'Trips, routes and places worth seeing.'),
		('Food', 'food', 'Recipes and restaurant notes.')
	`)
	if err != nil {
		return fmt.Errorf("seed insert categories: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO locations (name) VALUES ('Moscow'), ('Saint Petersburg')
	`)
	if err != nil {
		return fmt.Errorf("seed insert locations: %w", err)
	}

	slog.Info("database seeded with default superuser",
		"username", "admin",
		"password", "admin",
	)

	return nil
}
