package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"sweetcreations/internal/models"
)

// Validation limits for user-supplied fields.
const (
	maxTitleLen       = 300
	maxDescriptionLen = 10_000
	maxNameLen        = 200
	maxMessageLen     = 5_000
)

// validatePortfolio checks a merged portfolio record and returns the first
// problem found, or "" when the record is acceptable.
func validatePortfolio(item *models.PortfolioItem) string {
	if item.Title == "" {
		return "Please provide a title"
	}
	if utf8.RuneCountInString(item.Title) > maxTitleLen {
		return "Title is too long (max 300 characters)"
	}
	if item.Description == "" {
		return "Please provide a description"
	}
	if utf8.RuneCountInString(item.Description) > maxDescriptionLen {
		return "Description is too long (max 10,000 characters)"
	}
	if item.Category == "" {
		return "Please provide a category"
	}
	if !item.Category.Valid() {
		return fmt.Sprintf("Invalid category %q", item.Category)
	}
	if item.Price < 0 {
		return "Price must not be negative"
	}
	return ""
}

// validateTestimonial checks a merged testimonial record.
func validateTestimonial(t *models.Testimonial) string {
	if t.Name == "" {
		return "Please provide a name"
	}
	if utf8.RuneCountInString(t.Name) > maxNameLen {
		return "Name is too long (max 200 characters)"
	}
	if t.Message == "" {
		return "Please provide a message"
	}
	if utf8.RuneCountInString(t.Message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)"
	}
	if t.Rating < 1 || t.Rating > 5 {
		return "Rating must be between 1 and 5"
	}
	return ""
}

// validateContact checks a contact form submission.
func validateContact(c *models.ContactMessage) string {
	if c.Name == "" {
		return "Please provide your name"
	}
	if c.Email == "" {
		return "Please provide an email address"
	}
	if c.Message == "" {
		return "Please provide a message"
	}
	if utf8.RuneCountInString(c.Message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)"
	}
	return ""
}

// flexBool accepts JSON booleans as well as the "true"/"false" strings the
// admin form submits for checkbox fields.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = flexBool(s == "true")
	return nil
}

// intParam parses a positive integer query parameter, returning fallback
// for absent or unparseable values. Values below 1 are clamped to 1 so
// pagination can never compute a negative offset.
func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if n < 1 {
		return 1
	}
	return n
}
