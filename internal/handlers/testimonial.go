package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sweetcreations/internal/middleware"
	"sweetcreations/internal/models"
	"sweetcreations/internal/store"
)

// Testimonials serves customer reviews: an approved-only public listing and
// the admin moderation operations.
type Testimonials struct {
	store *store.TestimonialStore
}

// NewTestimonials creates the testimonials handler group.
func NewTestimonials(s *store.TestimonialStore) *Testimonials {
	return &Testimonials{store: s}
}

// List handles GET /api/testimonials. Visitors see approved entries only;
// an authenticated admin can pass all=true to include pending ones.
func (h *Testimonials) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	approvedOnly := true
	if q.Get("all") == "true" {
		sess := middleware.SessionFromCtx(r.Context())
		if sess != nil && sess.IsAdmin() {
			approvedOnly = false
		}
	}

	// limit caps the listing; zero, negative, or unparseable values all mean
	// no limit.
	limit := 0
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		limit = n
	}

	items, err := h.store.List(approvedOnly, limit)
	if err != nil {
		slog.Error("testimonial list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load testimonials")
		return
	}

	// The listing is not paginated; everything fits on page one.
	pages := 0
	if len(items) > 0 {
		pages = 1
	}
	respondJSON(w, http.StatusOK, listEnvelope{
		Status:  "success",
		Results: len(items),
		Total:   len(items),
		Page:    1,
		Pages:   pages,
		Data:    items,
	})
}

// Get handles GET /api/testimonials/{id} (admin only).
func (h *Testimonials) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	t, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("testimonial get failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to load testimonial")
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	respondData(w, http.StatusOK, t)
}

// testimonialPayload is the create/update request body.
type testimonialPayload struct {
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Occasion   *string   `json:"occasion"`
	Rating     *int      `json:"rating"`
	Message    *string   `json:"message"`
	Featured   *flexBool `json:"featured"`
	IsApproved *flexBool `json:"isApproved"`
}

func (p *testimonialPayload) apply(t *models.Testimonial) {
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		t.Email = strings.TrimSpace(*p.Email)
	}
	if p.Occasion != nil {
		t.Occasion = strings.TrimSpace(*p.Occasion)
	}
	if p.Rating != nil {
		t.Rating = *p.Rating
	}
	if p.Message != nil {
		t.Message = strings.TrimSpace(*p.Message)
	}
	if p.Featured != nil {
		t.Featured = bool(*p.Featured)
	}
	if p.IsApproved != nil {
		t.IsApproved = bool(*p.IsApproved)
	}
}

// Create handles POST /api/testimonials (admin only).
func (h *Testimonials) Create(w http.ResponseWriter, r *http.Request) {
	var payload testimonialPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t := &models.Testimonial{Rating: 5}
	payload.apply(t)

	if msg := validateTestimonial(t); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.store.Insert(t)
	if err != nil {
		slog.Error("testimonial create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}

	respondData(w, http.StatusCreated, created)
}

// Update handles PUT /api/testimonials/{id} (admin only).
func (h *Testimonials) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	var payload testimonialPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("testimonial update lookup failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	payload.apply(t)
	if msg := validateTestimonial(t); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.store.Update(t)
	if err != nil {
		slog.Error("testimonial update failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	respondData(w, http.StatusOK, updated)
}

// ToggleApproval handles PATCH /api/testimonials/{id}/approve (admin only).
func (h *Testimonials) ToggleApproval(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	t, err := h.store.ToggleApproval(id)
	if err != nil {
		slog.Error("testimonial approval toggle failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	respondData(w, http.StatusOK, t)
}

// Delete handles DELETE /api/testimonials/{id} (admin only).
func (h *Testimonials) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	ok, err := h.store.Delete(id)
	if err != nil {
		slog.Error("testimonial delete failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	respondMessage(w, http.StatusOK, "Testimonial deleted successfully")
}
