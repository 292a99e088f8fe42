// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"blogicum/internal/cache"
	"blogicum/internal/database"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/render"
	"blogicum/internal/session"
	"blogicum/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogicum")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogicum")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Renderer      *render.Renderer
	Sessions      *session.Store
	UserStore     *store.UserStore
	CategoryStore *store.CategoryStore
	LocationStore *store.LocationStore
	PostStore     *store.PostStore
	CommentStore  *store.CommentStore
	PageCache     *cache.PageCache
	Blog          *Blog
	Posts         *Posts
	Comments      *Comments
	Profile       *Profile
	Auth          *Auth
	Admin         *Admin
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	locationStore := store.NewLocationStore(db)
	postStore := store.NewPostStore(db)
	commentStore := store.NewCommentStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Renderer:      renderer,
		Sessions:      sessions,
		UserStore:     userStore,
		CategoryStore: categoryStore,
		LocationStore: locationStore,
		PostStore:     postStore,
		CommentStore:  commentStore,
		PageCache:     pageCache,
		Blog:          NewBlog(renderer, postStore, commentStore, categoryStore, pageCache, 10),
		Posts:         NewPosts(renderer, postStore, categoryStore, locationStore, nil, pageCache),
		Comments:      NewComments(renderer, postStore, commentStore, pageCache),
		Profile:       NewProfile(renderer, userStore, postStore, 10),
		Auth:          NewAuth(renderer, sessions, userStore),
		Admin: NewAdmin(renderer, categoryStore, locationStore, pageCache, []AdminResource{
			{Title: "Categories", Path: "/admin/categories/", Count: categoryStore.Count},
			{Title: "Locations", Path: "/admin/locations/", Count: locationStore.Count},
		}),
	}
}

// ctxWithSession adds session data to a context using the middleware key,
// simulating the state after LoadSession has run.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// sessionFor builds completed-login session data for a user.
func sessionFor(u *models.User) *session.Data {
	return &session.Data{
		UserID:      u.ID,
		Username:    u.Username,
		IsSuperuser: u.IsSuperuser,
		TwoFADone:   true,
	}
}

// withURLParams attaches chi URL parameters to the request context so
// handlers can be invoked without a full router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// createUser inserts a throwaway user, cleaned up (with their posts and
// comments) when the test finishes.
func createUser(t *testing.T, env *testEnv, username string) *models.User {
	t.Helper()

	env.DB.Exec("DELETE FROM users WHERE username = $1", username)
	u, err := env.UserStore.Create(username, username+"@handler-test.local", "testpass123", "Test", "User")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// createCategory inserts a throwaway category.
func createCategory(t *testing.T, env *testEnv, slug string, published bool) *models.Category {
	t.Helper()

	env.DB.Exec("DELETE FROM categories WHERE slug = $1", slug)
	c, err := env.CategoryStore.Create("Category "+slug, slug, "", published)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE id = $1", c.ID) })
	return c
}

// createPost inserts a post for the given author.
func createPost(t *testing.T, env *testEnv, author *models.User, category *models.Category, published bool, pubDate time.Time) *models.Post {
	t.Helper()

	var categoryID *uuid.UUID
	if category != nil {
		categoryID = &category.ID
	}
	p, err := env.PostStore.Create(&models.Post{
		Title:       "Handler test post",
		Text:        "Body text.",
		PubDate:     pubDate,
		AuthorID:    author.ID,
		CategoryID:  categoryID,
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}
