package store

import (
	"database/sql"
	"fmt"

	"sweetcreations/internal/models"
)

// StatsStore aggregates counters for the admin dashboard.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore creates a new StatsStore with the given database connection.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// Dashboard holds the headline numbers shown on the admin dashboard.
type Dashboard struct {
	PortfolioItems      int `json:"portfolioItems"`
	TotalViews          int `json:"totalViews"`
	Testimonials        int `json:"testimonials"`
	PendingTestimonials int `json:"pendingTestimonials"`
	Contacts            int `json:"contacts"`
	NewContacts         int `json:"newContacts"`
}

// Dashboard collects item, view, testimonial, and inquiry counts.
func (s *StatsStore) Dashboard() (*Dashboard, error) {
	d := &Dashboard{}
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM portfolio_items),
			(SELECT COALESCE(SUM(views), 0) FROM portfolio_items),
			(SELECT COUNT(*) FROM testimonials),
			(SELECT COUNT(*) FROM testimonials WHERE is_approved = FALSE),
			(SELECT COUNT(*) FROM contact_messages),
			(SELECT COUNT(*) FROM contact_messages WHERE status = 'new')
	`).Scan(
		&d.PortfolioItems, &d.TotalViews, &d.Testimonials,
		&d.PendingTestimonials, &d.Contacts, &d.NewContacts,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return d, nil
}

// CategoryStat is the per-category rollup for the portfolio analytics view.
type CategoryStat struct {
	Category string `json:"category"`
	Items    int    `json:"items"`
	Views    int    `json:"views"`
}

// MostViewed returns the top n portfolio items by view count.
func (s *StatsStore) MostViewed(n int) ([]models.PortfolioItem, error) {
	rows, err := s.db.Query(
		"SELECT "+portfolioColumns+" FROM portfolio_items ORDER BY views DESC, id LIMIT $1", n)
	if err != nil {
		return nil, fmt.Errorf("most viewed: %w", err)
	}
	defer rows.Close()

	items := []models.PortfolioItem{}
	for rows.Next() {
		p, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan most viewed: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ByCategory returns item and view totals grouped by category.
func (s *StatsStore) ByCategory() ([]CategoryStat, error) {
	rows, err := s.db.Query(`
		SELECT category, COUNT(*), COALESCE(SUM(views), 0)
		FROM portfolio_items
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("stats by category: %w", err)
	}
	defer rows.Close()

	stats := []CategoryStat{}
	for rows.Next() {
		var c CategoryStat
		if err := rows.Scan(&c.Category, &c.Items, &c.Views); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		stats = append(stats, c)
	}
	return stats, rows.Err()
}
