package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/lib/pq"
)

// Seed populates the database with initial development data: a default
// admin account and a handful of portfolio items so the catalog pages have
// something to show. It is a no-op when data already exists.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedPortfolio(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4)
	`, "admin@sweetcreations.local", string(hash), "Admin", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@sweetcreations.local",
		"password", "admin",
	)
	return nil
}

func seedPortfolio(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM portfolio_items").Scan(&count); err != nil {
		return fmt.Errorf("seed check portfolio: %w", err)
	}
	if count > 0 {
		slog.Info("portfolio already seeded, skipping")
		return nil
	}

	samples := []struct {
		title, description, category string
		price                        float64
		tags                         []string
		featured                     bool
	}{
		{
			title:       "Classic Three-Tier Wedding Cake",
			description: "Elegant vanilla sponge with buttercream roses, finished in ivory fondant.",
			category:    "Wedding Cakes",
			price:       450,
			tags:        []string{"tiered", "fondant", "vanilla"},
			featured:    true,
		},
		{
			title:       "Chocolate Drip Birthday Cake",
			description: "Rich chocolate cake with ganache drip and fresh berries.",
			category:    "Birthday Cakes",
			price:       85,
			tags:        []string{"chocolate", "drip", "berries"},
			featured:    true,
		},
		{
			title:       "Lemon Meringue Cupcake Dozen",
			description: "Zesty lemon cupcakes topped with torched Swiss meringue.",
			category:    "Cupcakes",
			price:       42,
			tags:        []string{"lemon", "meringue"},
		},
	}

	for _, s := range samples {
		_, err := db.Exec(`
			INSERT INTO portfolio_items (title, description, category, price, tags, featured)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.title, s.description, s.category, s.price, pq.Array(s.tags), s.featured)
		if err != nil {
			return fmt.Errorf("seed insert portfolio item: %w", err)
		}
	}

	slog.Info("portfolio seeded with sample items", "count", len(samples))
	return nil
}
