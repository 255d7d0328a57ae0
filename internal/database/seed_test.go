package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed creates data only when tables are empty, so calling it twice
	// verifies idempotency. The database is not cleared first because other
	// test packages may be running concurrently against it.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	// Verify at least one user account exists.
	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if userCount < 1 {
		t.Errorf("expected at least 1 user after seed, got %d", userCount)
	}

	// Verify the catalog has something to show.
	var itemCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM portfolio_items").Scan(&itemCount); err != nil {
		t.Fatalf("count portfolio items: %v", err)
	}
	if itemCount < 1 {
		t.Errorf("expected at least 1 portfolio item after seed, got %d", itemCount)
	}
}
