package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/pkg/models"
)

// HistoryHandler handles captured frame HTTP requests
type HistoryHandler struct {
	repo        repository.HistoryRepository
	projectRepo repository.ProjectRepository
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(repo repository.HistoryRepository, projectRepo repository.ProjectRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo, projectRepo: projectRepo}
}

// SaveRecord stores a captured data frame, defaulting sampling metadata from
// the owning model when the frame omits it.
func (h *HistoryHandler) SaveRecord(ctx context.Context, req *models.SaveHistoryRequest) (*models.HistoryRecordResponse, error) {
	model, err := h.projectRepo.GetModel(ctx, req.Body.Email, req.Body.Project, req.Body.Model)
	if err != nil {
		return nil, storeError(err, "Model")
	}

	record := &models.HistoryRecord{
		ID:               uuid.New().String(),
		Project:          req.Body.Project,
		Model:            req.Body.Model,
		Tag:              req.Body.Tag,
		Email:            req.Body.Email,
		Filename:         req.Body.Filename,
		FrameIndex:       req.Body.FrameIndex,
		Message:          req.Body.Message,
		NumberOfChannels: req.Body.NumberOfChannels,
		TacoChannelCount: req.Body.TacoChannelCount,
		SamplingSize:     req.Body.SamplingSize,
		SamplingRate:     req.Body.SamplingRate,
		MessageFrequency: req.Body.MessageFrequency,
		CreatedAt:        req.Body.CreatedAt,
	}

	if record.NumberOfChannels == 0 {
		record.NumberOfChannels = model.NumberOfChannels
	}
	if record.TacoChannelCount == 0 {
		record.TacoChannelCount = model.TacoChannelCount
	}
	if record.SamplingRate == 0 {
		record.SamplingRate = model.SamplingRate
	}
	if record.SamplingSize == 0 {
		record.SamplingSize = model.SamplingSize
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	log.Info().Str("project", record.Project).Str("filename", record.Filename).
		Int("frameIndex", record.FrameIndex).Int("samples", len(record.Message)).Msg("Saving history record")
	if err := h.repo.SaveRecord(ctx, record); err != nil {
		return nil, storeError(err, "History record")
	}

	return &models.HistoryRecordResponse{Body: *record}, nil
}

// ListRecords returns the records in scope, ordered by frame index
func (h *HistoryHandler) ListRecords(ctx context.Context, req *models.ListHistoryRequest) (*models.ListHistoryResponse, error) {
	scope := models.HistoryScope{Project: req.Project, Model: req.Model, Tag: req.Tag, Email: req.Email}
	records, err := h.repo.ListRecords(ctx, scope, req.Filename)
	if err != nil {
		return nil, storeError(err, "History")
	}

	resp := &models.ListHistoryResponse{}
	resp.Body.Records = records
	return resp, nil
}

// ListFilenames returns the distinct capture filenames in scope
func (h *HistoryHandler) ListFilenames(ctx context.Context, req *models.ListFilenamesRequest) (*models.ListFilenamesResponse, error) {
	scope := models.HistoryScope{Project: req.Project, Model: req.Model, Tag: req.Tag, Email: req.Email}
	filenames, err := h.repo.DistinctFilenames(ctx, scope)
	if err != nil {
		return nil, storeError(err, "History")
	}

	resp := &models.ListFilenamesResponse{}
	resp.Body.Filenames = filenames
	return resp, nil
}
