package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vibesense/vibesense/internal/storage"
	"github.com/vibesense/vibesense/pkg/models"
)

// maxCaptureSize bounds uploaded capture files to 200MB.
const maxCaptureSize = 200 * 1024 * 1024

// CaptureHandler handles raw capture file upload/download requests
type CaptureHandler struct {
	store storage.CaptureStore
}

// NewCaptureHandler creates a new capture handler
func NewCaptureHandler(store storage.CaptureStore) *CaptureHandler {
	return &CaptureHandler{store: store}
}

// CreateUpload returns a pre-signed URL for uploading a capture file
func (h *CaptureHandler) CreateUpload(ctx context.Context, req *models.CreateCaptureUploadRequest) (*models.CreateCaptureUploadResponse, error) {
	if req.Body.FileSize > maxCaptureSize {
		return nil, huma.Error400BadRequest("Capture file too large", nil)
	}

	key := fmt.Sprintf("captures/%s/%s", uuid.New().String(), req.Body.Filename)

	uploadURL, err := h.store.GenerateUploadURL(ctx, key, req.Body.ContentType)
	if err != nil {
		if strings.Contains(err.Error(), "invalid content type") {
			return nil, huma.Error400BadRequest("Capture file format not supported", err)
		}
		return nil, huma.Error500InternalServerError("Failed to prepare upload", err)
	}

	log.Info().Str("key", key).Str("contentType", req.Body.ContentType).Msg("Capture upload URL generated")

	resp := &models.CreateCaptureUploadResponse{}
	resp.Body.Key = key
	resp.Body.UploadURL = uploadURL
	resp.Body.ExpiresIn = int((15 * time.Minute).Seconds())
	return resp, nil
}

// GetDownload returns a pre-signed URL for downloading a capture file
func (h *CaptureHandler) GetDownload(ctx context.Context, req *models.GetCaptureDownloadRequest) (*models.GetCaptureDownloadResponse, error) {
	downloadURL, err := h.store.GenerateDownloadURL(ctx, req.Key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to prepare download", err)
	}

	resp := &models.GetCaptureDownloadResponse{}
	resp.Body.DownloadURL = downloadURL
	return resp, nil
}

// DeleteCapture removes a capture file from storage
func (h *CaptureHandler) DeleteCapture(ctx context.Context, req *models.DeleteCaptureRequest) (*models.MessageResponse, error) {
	if err := h.store.DeleteFile(ctx, req.Key); err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete capture file", err)
	}

	log.Info().Str("key", req.Key).Msg("Capture file deleted")

	resp := &models.MessageResponse{}
	resp.Body.Message = "Capture file deleted successfully"
	return resp, nil
}

// ServeFile streams a capture file body through the API, for clients that
// cannot reach the object store endpoint directly. Served raw on the router
// because the response is the file body, not JSON.
func (h *CaptureHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	data, err := h.store.DownloadFile(r.Context(), key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Capture file fetch failed")
		http.Error(w, "capture file not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	w.Write(data)
}
