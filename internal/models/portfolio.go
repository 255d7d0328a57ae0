// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CakeCategory is the closed set of categories a portfolio item can belong to.
type CakeCategory string

const (
	CategoryWeddingCakes  CakeCategory = "Wedding Cakes"
	CategoryBirthdayCakes CakeCategory = "Birthday Cakes"
	CategoryCupcakes      CakeCategory = "Cupcakes"
	CategoryCustomCakes   CakeCategory = "Custom Cakes"
	CategoryDesserts      CakeCategory = "Desserts"
	CategoryOther         CakeCategory = "Other"
)

// CakeCategories lists every valid category, in display order.
func CakeCategories() []CakeCategory {
	return []CakeCategory{
		CategoryWeddingCakes,
		CategoryBirthdayCakes,
		CategoryCupcakes,
		CategoryCustomCakes,
		CategoryDesserts,
		CategoryOther,
	}
}

// Valid reports whether the category is a member of the closed set.
func (c CakeCategory) Valid() bool {
	switch c {
	case CategoryWeddingCakes, CategoryBirthdayCakes, CategoryCupcakes,
		CategoryCustomCakes, CategoryDesserts, CategoryOther:
		return true
	}
	return false
}

// Image is one portfolio photo with its accessibility text.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// TagList holds normalized portfolio tags. It accepts either a JSON array
// of strings or a single comma-delimited string on input (the admin form
// submits the latter); tags are trimmed and empties dropped either way.
type TagList []string

// UnmarshalJSON implements json.Unmarshaler for the two accepted shapes.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = NormalizeTags(raw)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = NormalizeTags(strings.Split(s, ","))
	return nil
}

// NormalizeTags trims each tag and drops empty entries.
func NormalizeTags(raw []string) TagList {
	tags := make(TagList, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// PortfolioItem represents one sellable cake or dessert design in the
// public catalog.
type PortfolioItem struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Category        CakeCategory `json:"category"`
	Price           float64      `json:"price"`
	Images          []Image      `json:"images"`
	Tags            TagList      `json:"tags"`
	Featured        bool         `json:"featured"`
	Servings        string       `json:"servings"`
	PreparationTime string       `json:"preparationTime"`
	IsActive        bool         `json:"isActive"`
	Views           int          `json:"views"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Defaults for fields the admin form may leave blank.
const (
	DefaultServings        = "Varies"
	DefaultPreparationTime = "2-3 days"
)

// ApplyDefaults fills zero-valued optional fields with their documented
// defaults. Called before insert, never on update.
func (p *PortfolioItem) ApplyDefaults() {
	if p.Servings == "" {
		p.Servings = DefaultServings
	}
	if p.PreparationTime == "" {
		p.PreparationTime = DefaultPreparationTime
	}
	if p.Images == nil {
		p.Images = []Image{}
	}
	if p.Tags == nil {
		p.Tags = TagList{}
	}
}
