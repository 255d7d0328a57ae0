package handlers

import (
	"log/slog"
	"net/http"

	"sweetcreations/internal/store"
)

// Stats serves the admin dashboard aggregates.
type Stats struct {
	store *store.StatsStore
}

// NewStats creates the stats handler group.
func NewStats(s *store.StatsStore) *Stats {
	return &Stats{store: s}
}

// Dashboard handles GET /api/stats (admin only).
func (h *Stats) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Dashboard()
	if err != nil {
		slog.Error("dashboard stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	respondData(w, http.StatusOK, d)
}

// Portfolio handles GET /api/stats/portfolio (admin only): the most viewed
// items plus per-category rollups.
func (h *Stats) Portfolio(w http.ResponseWriter, r *http.Request) {
	mostViewed, err := h.store.MostViewed(intParam(r.URL.Query().Get("top"), 5))
	if err != nil {
		slog.Error("most viewed stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	byCategory, err := h.store.ByCategory()
	if err != nil {
		slog.Error("category stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"mostViewed": mostViewed,
		"byCategory": byCategory,
	})
}
