package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/pkg/models"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	repo        repository.TagRepository
	projectRepo repository.ProjectRepository
}

// NewTagHandler creates a new tag handler
func NewTagHandler(repo repository.TagRepository, projectRepo repository.ProjectRepository) *TagHandler {
	return &TagHandler{repo: repo, projectRepo: projectRepo}
}

// CreateTag binds a model to an external data topic
func (h *TagHandler) CreateTag(ctx context.Context, req *models.CreateTagRequest) (*models.TagResponse, error) {
	if _, err := h.projectRepo.GetProject(ctx, req.Body.Email, req.Project); err != nil {
		return nil, storeError(err, "Project")
	}

	tag := &models.Tag{
		ID:        uuid.New().String(),
		Email:     req.Body.Email,
		Project:   req.Project,
		Model:     req.Body.Model,
		Name:      req.Body.Name,
		Topic:     req.Body.Topic,
		CreatedAt: time.Now(),
	}

	log.Info().Str("project", req.Project).Str("tag", tag.Name).Str("topic", tag.Topic).Msg("Creating tag")
	if err := h.repo.CreateTag(ctx, tag); err != nil {
		return nil, storeError(err, "Tag")
	}

	return &models.TagResponse{Body: *tag}, nil
}

// EditTag updates a tag; a rename propagates to dependent history records
func (h *TagHandler) EditTag(ctx context.Context, req *models.EditTagRequest) (*models.TagResponse, error) {
	if _, err := h.projectRepo.GetProject(ctx, req.Body.Email, req.Project); err != nil {
		return nil, storeError(err, "Project")
	}

	log.Info().Str("project", req.Project).Str("tag", req.Tag).Str("newName", req.Body.NewName).Msg("Editing tag")
	tag, err := h.repo.EditTag(ctx, req.Body.Email, req.Project, req.Tag, req.Body.NewName, req.Body.Topic)
	if err != nil {
		return nil, storeError(err, "Tag")
	}

	return &models.TagResponse{Body: *tag}, nil
}

// DeleteTag removes a tag
func (h *TagHandler) DeleteTag(ctx context.Context, req *models.DeleteTagRequest) (*models.MessageResponse, error) {
	if _, err := h.projectRepo.GetProject(ctx, req.Email, req.Project); err != nil {
		return nil, storeError(err, "Project")
	}

	log.Info().Str("project", req.Project).Str("tag", req.Tag).Msg("Deleting tag")
	if err := h.repo.DeleteTag(ctx, req.Email, req.Project, req.Tag); err != nil {
		return nil, storeError(err, "Tag")
	}

	resp := &models.MessageResponse{}
	resp.Body.Message = "Tag deleted successfully"
	return resp, nil
}
