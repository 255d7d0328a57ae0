package models

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is a customer review. Submissions start unapproved and only
// appear on the public site once an admin approves them.
type Testimonial struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Occasion   string    `json:"occasion"`
	Rating     int       `json:"rating"`
	Message    string    `json:"message"`
	Featured   bool      `json:"featured"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
