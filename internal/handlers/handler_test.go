// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"sweetcreations/internal/database"
	"sweetcreations/internal/middleware"
	"sweetcreations/internal/session"
	"sweetcreations/internal/store"
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
	user := envOr("POSTGRES_USER", "sweetcreations")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "sweetcreations")
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

// testValkeyClient returns a Valkey client for handler tests on DB 15.
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
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB           *sql.DB
	Valkey       *redis.Client
	Sessions     *session.Store
	Users        *store.UserStore
	PortfolioDB  *store.PortfolioStore
	Testimonials *store.TestimonialStore
	Contacts     *store.ContactStore
	Portfolio    *Portfolio
	Testimonial  *Testimonials
	Contact      *Contacts
	Auth         *Auth
	Stats        *Stats
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, []byte("handler-test-secret"))
	users := store.NewUserStore(db)
	portfolio := store.NewPortfolioStore(db)
	testimonials := store.NewTestimonialStore(db)
	contacts := store.NewContactStore(db)
	stats := store.NewStatsStore(db)

	return &testEnv{
		DB:           db,
		Valkey:       vk,
		Sessions:     sessions,
		Users:        users,
		PortfolioDB:  portfolio,
		Testimonials: testimonials,
		Contacts:     contacts,
		Portfolio:    NewPortfolio(portfolio),
		Testimonial:  NewTestimonials(testimonials),
		Contact:      NewContacts(contacts),
		Auth:         NewAuth(sessions, users),
		Stats:        NewStats(stats),
	}
}

// adminSession returns session data carrying the admin role.
func adminSession() *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "admin@test.local",
		DisplayName: "Test Admin",
		Role:        "admin",
	}
}

// withSession attaches session data to a request context.
func withSession(r *http.Request, data *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, data))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanPortfolioTitles removes test portfolio rows by title.
func cleanPortfolioTitles(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM portfolio_items WHERE title = $1", title)
	}
}

// cleanContactEmails removes test inquiries by email.
func cleanContactEmails(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM contact_messages WHERE email = $1", email)
	}
}

// cleanUserEmails removes test accounts by email.
func cleanUserEmails(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}
