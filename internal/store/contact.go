package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"sweetcreations/internal/models"
)

// ContactStore handles all contact inquiry database operations.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore with the given database connection.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, phone, occasion_type, event_date,
	message, status, created_at, updated_at`

func scanContact(scanner interface{ Scan(...any) error }) (*models.ContactMessage, error) {
	var c models.ContactMessage
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.OccasionType, &c.EventDate,
		&c.Message, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns contact inquiries newest first, optionally filtered by
// status, plus the total count for pagination.
func (s *ContactStore) List(status *models.ContactStatus, skip, limit int) ([]models.ContactMessage, int, error) {
	where := ""
	var args []any
	if status != nil {
		args = append(args, *status)
		where = " WHERE status = $1"
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM contact_messages"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contact messages: %w", err)
	}

	query := "SELECT " + contactColumns + " FROM contact_messages" + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := s.db.Query(query, append(args, limit, skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	items := []models.ContactMessage{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact message: %w", err)
		}
		items = append(items, *c)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a contact inquiry by ID. Returns nil if not found.
func (s *ContactStore) FindByID(id uuid.UUID) (*models.ContactMessage, error) {
	row := s.db.QueryRow("SELECT "+contactColumns+" FROM contact_messages WHERE id = $1", id)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find contact message by id: %w", err)
	}
	return c, nil
}

// Insert stores a new inquiry with status "new" and returns it.
func (s *ContactStore) Insert(c *models.ContactMessage) (*models.ContactMessage, error) {
	row := s.db.QueryRow(`
		INSERT INTO contact_messages (name, email, phone, occasion_type, event_date, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.OccasionType, c.EventDate, c.Message,
	)
	result, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("insert contact message: %w", err)
	}
	return result, nil
}

// UpdateStatus moves an inquiry to a new workflow state. Returns nil if
// the id no longer exists.
func (s *ContactStore) UpdateStatus(id uuid.UUID, status models.ContactStatus) (*models.ContactMessage, error) {
	row := s.db.QueryRow(`
		UPDATE contact_messages SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+contactColumns, status, id)
	result, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update contact status: %w", err)
	}
	return result, nil
}

// Delete removes an inquiry by ID. Returns false if no row matched.
func (s *ContactStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete contact message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete contact message rows: %w", err)
	}
	return n > 0, nil
}
