package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactStatus tracks where an inquiry is in the admin workflow.
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusReplied  ContactStatus = "replied"
	ContactStatusArchived ContactStatus = "archived"
)

// Valid reports whether the status is one of the workflow states.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied, ContactStatusArchived:
		return true
	}
	return false
}

// ContactMessage is an inquiry submitted through the public contact form.
type ContactMessage struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	OccasionType string        `json:"occasionType"`
	EventDate    *time.Time    `json:"eventDate,omitempty"`
	Message      string        `json:"message"`
	Status       ContactStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
