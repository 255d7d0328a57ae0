package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"sweetcreations/internal/storage"
)

// maxUploadSize caps portfolio image uploads at 10 MB.
const maxUploadSize = 10 << 20

// imageContentTypes whitelists what the gallery can serve.
var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Uploads serves portfolio image uploads to the S3 bucket. The client may
// be nil when storage is not configured; every operation then returns 503.
type Uploads struct {
	storage *storage.Client
}

// NewUploads creates the uploads handler group.
func NewUploads(s *storage.Client) *Uploads {
	return &Uploads{storage: s}
}

// Upload handles POST /api/uploads (admin only). Accepts a multipart form
// with an "image" field and returns the public URL of the stored object.
func (h *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Media storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Image too large or invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Please attach an image file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !imageContentTypes[contentType] {
		respondError(w, http.StatusBadRequest, "Unsupported image type "+contentType)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := "portfolio/" + uuid.NewString() + ext

	if err := h.storage.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("image upload failed", "error", err, "key", key)
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	slog.Info("image uploaded", "key", key, "size", header.Size)
	respondData(w, http.StatusCreated, map[string]string{
		"key": key,
		"url": h.storage.FileURL(key),
	})
}

// Delete handles DELETE /api/uploads (admin only). The body carries the
// public URL of the object to remove.
func (h *Uploads) Delete(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Media storage is not configured")
		return
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	key, ok := h.storage.ExtractKey(payload.URL)
	if !ok {
		respondError(w, http.StatusBadRequest, "URL does not belong to media storage")
		return
	}

	if err := h.storage.Delete(r.Context(), key); err != nil {
		slog.Error("image delete failed", "error", err, "key", key)
		respondError(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	respondMessage(w, http.StatusOK, "Image deleted successfully")
}
