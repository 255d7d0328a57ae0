package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"sweetcreations/internal/models"
)

// TestimonialStore handles all testimonial database operations.
type TestimonialStore struct {
	db *sql.DB
}

// NewTestimonialStore creates a new TestimonialStore with the given database connection.
func NewTestimonialStore(db *sql.DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

const testimonialColumns = `id, name, email, occasion, rating, message,
	featured, is_approved, created_at, updated_at`

func scanTestimonial(scanner interface{ Scan(...any) error }) (*models.Testimonial, error) {
	var t models.Testimonial
	err := scanner.Scan(
		&t.ID, &t.Name, &t.Email, &t.Occasion, &t.Rating, &t.Message,
		&t.Featured, &t.IsApproved, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns testimonials newest first. When approvedOnly is true only
// approved entries are returned (the public path). A limit of 0 means no limit.
func (s *TestimonialStore) List(approvedOnly bool, limit int) ([]models.Testimonial, error) {
	query := "SELECT " + testimonialColumns + " FROM testimonials"
	var args []any
	if approvedOnly {
		query += " WHERE is_approved = TRUE"
	}
	query += " ORDER BY featured DESC, created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	items := []models.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a testimonial by ID. Returns nil if not found.
func (s *TestimonialStore) FindByID(id uuid.UUID) (*models.Testimonial, error) {
	row := s.db.QueryRow("SELECT "+testimonialColumns+" FROM testimonials WHERE id = $1", id)
	t, err := scanTestimonial(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find testimonial by id: %w", err)
	}
	return t, nil
}

// Insert stores a new testimonial and returns it with the generated ID.
func (s *TestimonialStore) Insert(t *models.Testimonial) (*models.Testimonial, error) {
	row := s.db.QueryRow(`
		INSERT INTO testimonials (name, email, occasion, rating, message, featured, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+testimonialColumns,
		t.Name, t.Email, t.Occasion, t.Rating, t.Message, t.Featured, t.IsApproved,
	)
	result, err := scanTestimonial(row)
	if err != nil {
		return nil, fmt.Errorf("insert testimonial: %w", err)
	}
	return result, nil
}

// Update writes the full record back. Returns nil if the id no longer exists.
func (s *TestimonialStore) Update(t *models.Testimonial) (*models.Testimonial, error) {
	row := s.db.QueryRow(`
		UPDATE testimonials SET
			name = $1, email = $2, occasion = $3, rating = $4, message = $5,
			featured = $6, is_approved = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+testimonialColumns,
		t.Name, t.Email, t.Occasion, t.Rating, t.Message, t.Featured, t.IsApproved, t.ID,
	)
	result, err := scanTestimonial(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update testimonial: %w", err)
	}
	return result, nil
}

// ToggleApproval flips the approval flag and returns the updated record.
// Returns nil if not found.
func (s *TestimonialStore) ToggleApproval(id uuid.UUID) (*models.Testimonial, error) {
	row := s.db.QueryRow(`
		UPDATE testimonials SET is_approved = NOT is_approved, updated_at = NOW()
		WHERE id = $1
		RETURNING `+testimonialColumns, id)
	result, err := scanTestimonial(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("toggle testimonial approval: %w", err)
	}
	return result, nil
}

// Delete removes a testimonial by ID. Returns false if no row matched.
func (s *TestimonialStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete testimonial: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete testimonial rows: %w", err)
	}
	return n > 0, nil
}
