package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/pkg/models"
	"github.com/vibesense/vibesense/pkg/units"
)

// ProjectHandler handles project and model HTTP requests
type ProjectHandler struct {
	repo repository.ProjectRepository
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(repo repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{repo: repo}
}

// storeError translates repository sentinel errors into HTTP errors.
func storeError(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return huma.Error404NotFound(what+" not found", err)
	case errors.Is(err, repository.ErrDuplicate):
		return huma.Error409Conflict(what+" already exists", err)
	default:
		log.Error().Err(err).Str("what", what).Msg("Store operation failed")
		return huma.Error500InternalServerError("Store operation failed", err)
	}
}

// CreateProject creates a new project after normalizing its units
func (h *ProjectHandler) CreateProject(ctx context.Context, req *models.CreateProjectRequest) (*models.ProjectResponse, error) {
	unit, err := units.NormalizeUnit(req.Body.Unit)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error(), err)
	}
	subunit, err := units.NormalizeSubunit(req.Body.Subunit)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error(), err)
	}

	now := time.Now()
	project := &models.Project{
		ID:        uuid.New().String(),
		Name:      req.Body.Name,
		Email:     req.Body.Email,
		Unit:      unit,
		Subunit:   subunit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	log.Info().Str("project", project.Name).Str("email", project.Email).Msg("Creating project")
	if err := h.repo.CreateProject(ctx, project); err != nil {
		return nil, storeError(err, "Project")
	}

	return &models.ProjectResponse{Body: *project}, nil
}

// ListProjects returns the projects owned by an email
func (h *ProjectHandler) ListProjects(ctx context.Context, req *models.ListProjectsRequest) (*models.ListProjectsResponse, error) {
	projects, err := h.repo.ListProjects(ctx, req.Email)
	if err != nil {
		return nil, storeError(err, "Project")
	}

	resp := &models.ListProjectsResponse{}
	resp.Body.Projects = projects
	return resp, nil
}

// EditProject updates a project; a rename propagates to all dependent records
func (h *ProjectHandler) EditProject(ctx context.Context, req *models.EditProjectRequest) (*models.ProjectResponse, error) {
	unit := ""
	if req.Body.Unit != "" {
		normalized, err := units.NormalizeUnit(req.Body.Unit)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error(), err)
		}
		unit = normalized
	}
	subunit := ""
	if req.Body.Subunit != "" {
		normalized, err := units.NormalizeSubunit(req.Body.Subunit)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error(), err)
		}
		subunit = normalized
	}

	log.Info().Str("project", req.Name).Str("newName", req.Body.NewName).Msg("Editing project")
	project, err := h.repo.EditProject(ctx, req.Body.Email, req.Name, req.Body.NewName, unit, subunit)
	if err != nil {
		return nil, storeError(err, "Project")
	}

	return &models.ProjectResponse{Body: *project}, nil
}

// CreateModel adds a sensor model to a project
func (h *ProjectHandler) CreateModel(ctx context.Context, req *models.CreateModelRequest) (*models.ModelResponse, error) {
	if _, err := h.repo.GetProject(ctx, req.Body.Email, req.Project); err != nil {
		return nil, storeError(err, "Project")
	}

	model := &models.Model{
		ID:               uuid.New().String(),
		Email:            req.Body.Email,
		Project:          req.Project,
		Name:             req.Body.Name,
		NumberOfChannels: req.Body.NumberOfChannels,
		TacoChannelCount: req.Body.TacoChannelCount,
		SamplingRate:     req.Body.SamplingRate,
		SamplingSize:     req.Body.SamplingSize,
		CreatedAt:        time.Now(),
	}

	log.Info().Str("project", req.Project).Str("model", model.Name).Msg("Creating model")
	if err := h.repo.CreateModel(ctx, model); err != nil {
		return nil, storeError(err, "Model")
	}

	return &models.ModelResponse{Body: *model}, nil
}

// ListModels returns a project's models
func (h *ProjectHandler) ListModels(ctx context.Context, req *models.ListModelsRequest) (*models.ListModelsResponse, error) {
	if _, err := h.repo.GetProject(ctx, req.Email, req.Project); err != nil {
		return nil, storeError(err, "Project")
	}

	result, err := h.repo.ListModels(ctx, req.Email, req.Project)
	if err != nil {
		return nil, storeError(err, "Model")
	}

	resp := &models.ListModelsResponse{}
	resp.Body.Models = result
	return resp, nil
}
