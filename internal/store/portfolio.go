// Package store provides database access methods for all Sweet Creations
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sweetcreations/internal/models"
)

// PortfolioStore handles all portfolio catalog database operations.
type PortfolioStore struct {
	db *sql.DB
}

// NewPortfolioStore creates a new PortfolioStore with the given database connection.
func NewPortfolioStore(db *sql.DB) *PortfolioStore {
	return &PortfolioStore{db: db}
}

const portfolioColumns = `id, title, description, category, price, images, tags,
	featured, servings, preparation_time, is_active, views, created_at, updated_at`

// scanPortfolioItem scans a row into a PortfolioItem, decoding the JSONB
// images column and the tags array.
func scanPortfolioItem(scanner interface{ Scan(...any) error }) (*models.PortfolioItem, error) {
	var p models.PortfolioItem
	var images []byte
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.Price,
		&images, pq.Array((*[]string)(&p.Tags)),
		&p.Featured, &p.Servings, &p.PreparationTime,
		&p.IsActive, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	if p.Tags == nil {
		p.Tags = models.TagList{}
	}
	return &p, nil
}

// Filter is the predicate applied to portfolio scans. Each set field adds
// one clause; all clauses are combined with AND. The public listing path
// always sets ActiveOnly.
type Filter struct {
	Category   *models.CakeCategory
	Featured   *bool
	ActiveOnly bool
	Search     string
}

// where builds the WHERE clause and its positional arguments.
func (f Filter) where() (string, []any) {
	var clauses []string
	var args []any

	if f.ActiveOnly {
		clauses = append(clauses, "is_active = TRUE")
	}
	if f.Category != nil {
		args = append(args, *f.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		clauses = append(clauses, fmt.Sprintf("featured = $%d", len(args)))
	}
	if f.Search != "" {
		// Case-insensitive match across title, description, and tags.
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR array_to_string(tags, ' ') ILIKE $%d)",
			n, n, n))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// DefaultSort orders newest items first.
const DefaultSort = "-createdAt"

// sortColumns whitelists the API sort keys and maps them to columns.
// Anything outside this map falls back to the default ordering.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"price":     "price",
	"views":     "views",
	"featured":  "featured",
	"category":  "category",
}

// orderBy translates an API sort key (optionally prefixed with "-" for
// descending) into an ORDER BY clause. The id tiebreaker keeps pagination
// stable when many rows share the sort value.
func orderBy(sort string) string {
	if sort == "" {
		sort = DefaultSort
	}
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = sort[1:]
	}
	col, ok := sortColumns[sort]
	if !ok {
		col, dir = "created_at", "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id", col, dir)
}

// Scan executes a filtered, sorted, paginated query and returns the page of
// items plus the total number of rows matching the filter (ignoring
// skip/limit).
func (s *PortfolioStore) Scan(f Filter, sort string, skip, limit int) ([]models.PortfolioItem, int, error) {
	where, args := f.where()

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM portfolio_items"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count portfolio items: %w", err)
	}

	query := "SELECT " + portfolioColumns + " FROM portfolio_items" + where + orderBy(sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := s.db.Query(query, append(args, limit, skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("scan portfolio items: %w", err)
	}
	defer rows.Close()

	items := []models.PortfolioItem{}
	for rows.Next() {
		p, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan portfolio item: %w", err)
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a portfolio item by its UUID without touching the view
// counter. Returns nil if not found.
func (s *PortfolioStore) FindByID(id uuid.UUID) (*models.PortfolioItem, error) {
	row := s.db.QueryRow("SELECT "+portfolioColumns+" FROM portfolio_items WHERE id = $1", id)
	p, err := scanPortfolioItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find portfolio item by id: %w", err)
	}
	return p, nil
}

// FetchAndIncrementViews retrieves a portfolio item and bumps its view
// counter in one statement, so concurrent fetches never lose an increment.
// Returns nil if not found.
func (s *PortfolioStore) FetchAndIncrementViews(id uuid.UUID) (*models.PortfolioItem, error) {
	row := s.db.QueryRow(`
		UPDATE portfolio_items SET views = views + 1
		WHERE id = $1
		RETURNING `+portfolioColumns, id)
	p, err := scanPortfolioItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("increment portfolio views: %w", err)
	}
	return p, nil
}

// Insert stores a new portfolio item and returns it with the generated ID
// and timestamps.
func (s *PortfolioStore) Insert(p *models.PortfolioItem) (*models.PortfolioItem, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO portfolio_items
			(title, description, category, price, images, tags,
			 featured, servings, preparation_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+portfolioColumns,
		p.Title, p.Description, p.Category, p.Price, images,
		pq.Array([]string(p.Tags)), p.Featured, p.Servings,
		p.PreparationTime, p.IsActive,
	)
	result, err := scanPortfolioItem(row)
	if err != nil {
		return nil, fmt.Errorf("insert portfolio item: %w", err)
	}
	return result, nil
}

// Update writes the full merged record back. The merge itself happens in
// the handler layer; concurrent updates to the same id are last-write-wins.
// Returns nil if the id no longer exists.
func (s *PortfolioStore) Update(p *models.PortfolioItem) (*models.PortfolioItem, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}

	row := s.db.QueryRow(`
		UPDATE portfolio_items SET
			title = $1, description = $2, category = $3, price = $4,
			images = $5, tags = $6, featured = $7, servings = $8,
			preparation_time = $9, is_active = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING `+portfolioColumns,
		p.Title, p.Description, p.Category, p.Price, images,
		pq.Array([]string(p.Tags)), p.Featured, p.Servings,
		p.PreparationTime, p.IsActive, p.ID,
	)
	result, err := scanPortfolioItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}
	return result, nil
}

// Delete removes a portfolio item by ID. Returns false if no row matched.
func (s *PortfolioStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM portfolio_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete portfolio item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete portfolio item rows: %w", err)
	}
	return n > 0, nil
}

// DistinctCategories enumerates the categories currently in use across the
// catalog, sorted alphabetically.
func (s *PortfolioStore) DistinctCategories() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT category FROM portfolio_items ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
