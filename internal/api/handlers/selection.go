package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/vibesense/vibesense/internal/render"
	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/internal/selection"
	"github.com/vibesense/vibesense/pkg/models"
)

// SelectionHandler handles interactive selection session requests
type SelectionHandler struct {
	manager     *selection.Manager
	historyRepo repository.HistoryRepository
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(manager *selection.Manager, historyRepo repository.HistoryRepository) *SelectionHandler {
	return &SelectionHandler{manager: manager, historyRepo: historyRepo}
}

// selectionError translates selection sentinel errors into HTTP errors.
func selectionError(err error) error {
	switch {
	case errors.Is(err, selection.ErrSessionNotFound):
		return huma.Error404NotFound("Selection session not found", err)
	case errors.Is(err, selection.ErrNoSamples):
		return huma.Error404NotFound("No history records found for that scope and file", err)
	case errors.Is(err, selection.ErrNoLockedPoint):
		return huma.Error400BadRequest("Select a point on the plot before confirming", err)
	case errors.Is(err, selection.ErrAlreadyConfirmed):
		return huma.Error409Conflict("Selection already confirmed", err)
	default:
		return huma.Error500InternalServerError("Selection operation failed", err)
	}
}

// CreateSelection loads a capture file's samples and opens a session
func (h *SelectionHandler) CreateSelection(ctx context.Context, req *models.CreateSelectionRequest) (*models.SelectionViewResponse, error) {
	scope := models.HistoryScope{
		Project: req.Body.Project,
		Model:   req.Body.Model,
		Tag:     req.Body.Tag,
		Email:   req.Body.Email,
	}

	records, err := h.historyRepo.ListRecords(ctx, scope, req.Body.Filename)
	if err != nil {
		return nil, storeError(err, "History")
	}

	session, err := h.manager.Open(scope, req.Body.Filename, records)
	if err != nil {
		return nil, selectionError(err)
	}

	return &models.SelectionViewResponse{Body: session.View()}, nil
}

// GetSelection returns a session's current view state
func (h *SelectionHandler) GetSelection(ctx context.Context, req *models.GetSelectionRequest) (*models.SelectionViewResponse, error) {
	session, err := h.manager.Get(req.ID)
	if err != nil {
		return nil, selectionError(err)
	}
	return &models.SelectionViewResponse{Body: session.View()}, nil
}

// ChangeSlider applies a slider move
func (h *SelectionHandler) ChangeSlider(ctx context.Context, req *models.SliderChangeRequest) (*models.SelectionViewResponse, error) {
	session, err := h.manager.Get(req.ID)
	if err != nil {
		return nil, selectionError(err)
	}

	view, err := session.SliderChanged(selection.Bound(req.Body.Which), req.Body.Value)
	if err != nil {
		return nil, selectionError(err)
	}
	return &models.SelectionViewResponse{Body: view}, nil
}

// DragLine applies a range-line drag
func (h *SelectionHandler) DragLine(ctx context.Context, req *models.LineDragRequest) (*models.SelectionViewResponse, error) {
	session, err := h.manager.Get(req.ID)
	if err != nil {
		return nil, selectionError(err)
	}

	view, err := session.LineDragged(selection.Bound(req.Body.Which), req.Body.Position)
	if err != nil {
		return nil, selectionError(err)
	}
	return &models.SelectionViewResponse{Body: view}, nil
}

// Pointer applies a pointer move or click
func (h *SelectionHandler) Pointer(ctx context.Context, req *models.PointerEventRequest) (*models.SelectionViewResponse, error) {
	session, err := h.manager.Get(req.ID)
	if err != nil {
		return nil, selectionError(err)
	}

	view, err := session.Pointer(req.Body.X, req.Body.Y, req.Body.Click)
	if err != nil {
		return nil, selectionError(err)
	}
	return &models.SelectionViewResponse{Body: view}, nil
}

// Confirm materializes the one-shot selection payload and closes the session
func (h *SelectionHandler) Confirm(ctx context.Context, req *models.ConfirmSelectionRequest) (*models.SelectionPayloadResponse, error) {
	session, err := h.manager.Get(req.ID)
	if err != nil {
		return nil, selectionError(err)
	}

	payload, err := session.Confirm()
	if err != nil {
		return nil, selectionError(err)
	}

	// Watchers received the payload during Confirm; the session is done.
	h.manager.Close(req.ID)
	log.Info().Str("sessionID", req.ID).Str("recordID", payload.RecordID).Msg("Selection confirmed")

	return &models.SelectionPayloadResponse{Body: *payload}, nil
}

// Chart renders the session's samples as an HTML chart. Served raw on the
// router because the response is a full HTML document, not JSON.
func (h *SelectionHandler) Chart(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "selection session not found", http.StatusNotFound)
		return
	}

	maxPoints := render.DefaultMaxPoints
	if mp := r.URL.Query().Get("max_points"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil && v > 100 && v <= 50000 {
			maxPoints = v
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.FrequencyChart(w, session.Samples().Points(), session.View(), maxPoints); err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to render chart")
	}
}
