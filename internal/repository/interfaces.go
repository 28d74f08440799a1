package repository

import (
	"context"
	"errors"

	"github.com/vibesense/vibesense/pkg/models"
)

// Sentinel errors for expected failure modes. Handlers translate these to
// HTTP statuses; anything else is an unexpected store error.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// ProjectRepository defines the interface for project and model operations
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, email, name string) (*models.Project, error)
	ListProjects(ctx context.Context, email string) ([]models.Project, error)
	// EditProject updates the project; a non-empty newName renames the
	// project across models, tags and history records in one transaction.
	EditProject(ctx context.Context, email, name, newName, unit, subunit string) (*models.Project, error)
	CreateModel(ctx context.Context, model *models.Model) error
	GetModel(ctx context.Context, email, project, name string) (*models.Model, error)
	ListModels(ctx context.Context, email, project string) ([]models.Model, error)
}

// TagRepository defines the interface for tag operations. All lookups are
// scoped by the owning email; two tenants may use the same project and tag
// names without colliding.
type TagRepository interface {
	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTag(ctx context.Context, email, project, name string) (*models.Tag, error)
	// EditTag updates the tag; a non-empty newName renames the tag across
	// dependent history records in one transaction.
	EditTag(ctx context.Context, email, project, name, newName, topic string) (*models.Tag, error)
	DeleteTag(ctx context.Context, email, project, name string) error
}

// HistoryRepository defines the interface for captured frame operations
type HistoryRepository interface {
	SaveRecord(ctx context.Context, record *models.HistoryRecord) error
	// ListRecords returns records in scope ordered by frame index. An empty
	// filename matches all capture files in scope.
	ListRecords(ctx context.Context, scope models.HistoryScope, filename string) ([]models.HistoryRecord, error)
	DistinctFilenames(ctx context.Context, scope models.HistoryScope) ([]string, error)
}
