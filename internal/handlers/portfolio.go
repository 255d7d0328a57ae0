package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sweetcreations/internal/models"
	"sweetcreations/internal/store"
)

// Pagination defaults for the public listing.
const (
	defaultPage  = 1
	defaultLimit = 50
)

// Portfolio serves the cake catalog: public browsing plus the admin CRUD
// behind it.
type Portfolio struct {
	store *store.PortfolioStore
}

// NewPortfolio creates the portfolio handler group.
func NewPortfolio(s *store.PortfolioStore) *Portfolio {
	return &Portfolio{store: s}
}

// List handles GET /api/portfolio. Visitors only ever see active items;
// category, featured=true, and search narrow the result further.
func (h *Portfolio) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := store.Filter{ActiveOnly: true, Search: strings.TrimSpace(q.Get("search"))}
	if raw := q.Get("category"); raw != "" {
		category := models.CakeCategory(raw)
		if !category.Valid() {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid category %q", raw))
			return
		}
		f.Category = &category
	}
	if q.Get("featured") == "true" {
		featured := true
		f.Featured = &featured
	}

	page := intParam(q.Get("page"), defaultPage)
	limit := intParam(q.Get("limit"), defaultLimit)

	items, total, err := h.store.Scan(f, q.Get("sort"), (page-1)*limit, limit)
	if err != nil {
		slog.Error("portfolio list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load portfolio")
		return
	}

	respondJSON(w, http.StatusOK, listEnvelope{
		Status:  "success",
		Results: len(items),
		Total:   total,
		Page:    page,
		Pages:   pageCount(total, limit),
		Data:    items,
	})
}

// Get handles GET /api/portfolio/{id}. Every successful fetch counts as a
// view, so the returned record already carries the incremented counter.
func (h *Portfolio) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Portfolio item not found")
		return
	}

	item, err := h.store.FetchAndIncrementViews(id)
	if err != nil {
		slog.Error("portfolio get failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to load portfolio item")
		return
	}
	if item == nil {
		respondError(w, http.StatusNotFound, "Portfolio item not found")
		return
	}

	respondData(w, http.StatusOK, item)
}

// Categories handles GET /api/portfolio/categories/list. The data field is
// a plain string list of the categories currently in use across the catalog.
func (h *Portfolio) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.DistinctCategories()
	if err != nil {
		slog.Error("portfolio categories failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	respondData(w, http.StatusOK, categories)
}

// portfolioPayload is the request body for create and update. Pointer
// fields distinguish "absent" from "zero" so updates only touch what the
// client sent.
type portfolioPayload struct {
	Title           *string         `json:"title"`
	Description     *string         `json:"description"`
	Category        *string         `json:"category"`
	Price           *float64        `json:"price"`
	Images          *[]models.Image `json:"images"`
	Tags            *models.TagList `json:"tags"`
	Featured        *flexBool       `json:"featured"`
	Servings        *string         `json:"servings"`
	PreparationTime *string         `json:"preparationTime"`
	IsActive        *flexBool       `json:"isActive"`
}

// apply copies the provided fields onto item, leaving absent ones alone.
func (p *portfolioPayload) apply(item *models.PortfolioItem) {
	if p.Title != nil {
		item.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		item.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		item.Category = models.CakeCategory(strings.TrimSpace(*p.Category))
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Images != nil {
		item.Images = *p.Images
	}
	if p.Tags != nil {
		item.Tags = *p.Tags
	}
	if p.Featured != nil {
		item.Featured = bool(*p.Featured)
	}
	if p.Servings != nil {
		item.Servings = strings.TrimSpace(*p.Servings)
	}
	if p.PreparationTime != nil {
		item.PreparationTime = strings.TrimSpace(*p.PreparationTime)
	}
	if p.IsActive != nil {
		item.IsActive = bool(*p.IsActive)
	}
}

// Create handles POST /api/portfolio (admin only).
func (h *Portfolio) Create(w http.ResponseWriter, r *http.Request) {
	var payload portfolioPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := &models.PortfolioItem{IsActive: true}
	payload.apply(item)
	item.ApplyDefaults()

	if msg := validatePortfolio(item); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.store.Insert(item)
	if err != nil {
		slog.Error("portfolio create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create portfolio item")
		return
	}

	respondData(w, http.StatusCreated, created)
}

// Update handles PUT /api/portfolio/{id} (admin only). The payload is merged
// over the stored record, so partial updates leave omitted fields untouched.
func (h *Portfolio) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Portfolio item not found")
		return
	}

	var payload portfolioPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("portfolio update lookup failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to update portfolio item")
		return
	}
	if item == nil {
		respondError(w, http.StatusNotFound, "Portfolio item not found")
		return
	}

	payload.apply(item)
	if msg := validatePortfolio(item); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.store.Update(item)
	if err != nil {
		slog.Error("portfolio update failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to update portfolio item")
		return
	}
	if updated == nil {
		// Deleted between the lookup and the write.
		respondError(w, http.StatusNotFound, "Portfolio item not found")
		return
	}

	respondData(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/portfolio/{id} (admin only).
func (h *Portfolio) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Portfolio item not found")
		return
	}

	ok, err := h.store.Delete(id)
	if err != nil {
		slog.Error("portfolio delete failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to delete portfolio item")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "Portfolio item not found")
		return
	}

	respondMessage(w, http.StatusOK, "Portfolio item deleted successfully")
}
