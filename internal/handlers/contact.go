package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sweetcreations/internal/models"
	"sweetcreations/internal/store"
)

// Contacts serves the public inquiry form and the admin inbox behind it.
type Contacts struct {
	store *store.ContactStore
}

// NewContacts creates the contact handler group.
func NewContacts(s *store.ContactStore) *Contacts {
	return &Contacts{store: s}
}

// contactPayload is the public form submission body.
type contactPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	OccasionType string `json:"occasionType"`
	EventDate    string `json:"eventDate"`
	Message      string `json:"message"`
}

// parseEventDate accepts a bare date or a full RFC 3339 timestamp.
func parseEventDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// Submit handles POST /api/contact, the public inquiry form.
func (h *Contacts) Submit(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	eventDate, ok := parseEventDate(strings.TrimSpace(payload.EventDate))
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid event date")
		return
	}

	msg := &models.ContactMessage{
		Name:         strings.TrimSpace(payload.Name),
		Email:        strings.TrimSpace(payload.Email),
		Phone:        strings.TrimSpace(payload.Phone),
		OccasionType: strings.TrimSpace(payload.OccasionType),
		EventDate:    eventDate,
		Message:      strings.TrimSpace(payload.Message),
	}
	if problem := validateContact(msg); problem != "" {
		respondError(w, http.StatusBadRequest, problem)
		return
	}

	created, err := h.store.Insert(msg)
	if err != nil {
		slog.Error("contact submit failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to submit inquiry")
		return
	}

	respondJSON(w, http.StatusCreated, dataResponse{
		Status:  "success",
		Message: "Thank you for your inquiry! We'll get back to you soon.",
		Data:    created,
	})
}

// List handles GET /api/contact (admin only), optionally filtered by status.
func (h *Contacts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var status *models.ContactStatus
	if raw := q.Get("status"); raw != "" {
		s := models.ContactStatus(raw)
		if !s.Valid() {
			respondError(w, http.StatusBadRequest, "Invalid status "+raw)
			return
		}
		status = &s
	}

	page := intParam(q.Get("page"), defaultPage)
	limit := intParam(q.Get("limit"), defaultLimit)

	items, total, err := h.store.List(status, (page-1)*limit, limit)
	if err != nil {
		slog.Error("contact list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load inquiries")
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

// Get handles GET /api/contact/{id} (admin only). Opening a new inquiry
// moves it to "read" so the inbox badge count stays honest.
func (h *Contacts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Contact message not found")
		return
	}

	msg, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("contact get failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to load inquiry")
		return
	}
	if msg == nil {
		respondError(w, http.StatusNotFound, "Contact message not found")
		return
	}

	if msg.Status == models.ContactStatusNew {
		updated, err := h.store.UpdateStatus(id, models.ContactStatusRead)
		if err != nil {
			slog.Error("contact mark read failed", "error", err, "id", id)
		} else if updated != nil {
			msg = updated
		}
	}

	respondData(w, http.StatusOK, msg)
}

// UpdateStatus handles PATCH /api/contact/{id} (admin only).
func (h *Contacts) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Contact message not found")
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := models.ContactStatus(payload.Status)
	if !status.Valid() {
		respondError(w, http.StatusBadRequest, "Invalid status "+payload.Status)
		return
	}

	msg, err := h.store.UpdateStatus(id, status)
	if err != nil {
		slog.Error("contact status update failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to update inquiry")
		return
	}
	if msg == nil {
		respondError(w, http.StatusNotFound, "Contact message not found")
		return
	}

	respondData(w, http.StatusOK, msg)
}

// Delete handles DELETE /api/contact/{id} (admin only).
func (h *Contacts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Contact message not found")
		return
	}

	ok, err := h.store.Delete(id)
	if err != nil {
		slog.Error("contact delete failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to delete inquiry")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "Contact message not found")
		return
	}

	respondMessage(w, http.StatusOK, "Contact message deleted successfully")
}
