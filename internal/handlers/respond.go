// Package handlers implements the JSON REST surface of the Sweet Creations
// API: the public catalog, testimonials, the contact form, and the
// authenticated admin operations behind them.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// dataResponse is the standard single-resource wrapper.
type dataResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errorResponse is the wire shape for every failure.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// listEnvelope is the paginated wrapper for collection listings.
type listEnvelope struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	Pages   int    `json:"pages"`
	Data    any    `json:"data"`
}

// respondJSON serializes v with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondData writes a success envelope around a single resource.
func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, dataResponse{Status: "success", Data: data})
}

// respondMessage writes a success envelope carrying only a message.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, dataResponse{Status: "success", Message: message})
}

// respondError writes the error envelope. Messages are caller-facing; never
// put internal error detail in them.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Status: "error", Message: message})
}

// pageCount returns ceil(total/limit), 0 when the collection is empty.
func pageCount(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
