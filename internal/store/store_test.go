// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"blogicum/internal/database"
	"blogicum/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogicum")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogicum")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway user and removes it when the test finishes.
// Deleting the user cascades to their posts and comments.
func testUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()

	s := NewUserStore(db)
	db.Exec("DELETE FROM users WHERE username = $1", username)

	u, err := s.Create(username, username+"@store-test.local", "testpass123", "Test", "Author")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// testCategory creates a throwaway category and removes it when the test
// finishes.
func testCategory(t *testing.T, db *sql.DB, slug string, published bool) *models.Category {
	t.Helper()

	s := NewCategoryStore(db)
	db.Exec("DELETE FROM categories WHERE slug = $1", slug)

	c, err := s.Create("Test "+slug, slug, "", published)
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", c.ID) })
	return c
}

// testPost inserts a post for the given author and category.
func testPost(t *testing.T, db *sql.DB, author *models.User, category *models.Category, pubDate time.Time, published bool) *models.Post {
	t.Helper()

	var categoryID *uuid.UUID
	if category != nil {
		categoryID = &category.ID
	}
	p, err := NewPostStore(db).Create(&models.Post{
		Title:       "Test Post",
		Text:        "Body text.",
		PubDate:     pubDate,
		AuthorID:    author.ID,
		CategoryID:  categoryID,
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}
