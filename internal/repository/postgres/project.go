package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/pkg/models"
)

// PostgresProjectRepository implements ProjectRepository for PostgreSQL
type PostgresProjectRepository struct {
	db *sql.DB
}

// NewPostgresProjectRepository creates a new PostgreSQL project repository
func NewPostgresProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &PostgresProjectRepository{db: db}
}

// uniqueViolation is the postgres error code for duplicate keys.
const uniqueViolation = "23505"

func isDuplicate(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// CreateProject inserts a new project record
func (r *PostgresProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, email, unit, subunit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Email,
		project.Unit,
		project.Subunit,
		project.CreatedAt,
		project.UpdatedAt)

	if isDuplicate(err) {
		return fmt.Errorf("project %s: %w", project.Name, repository.ErrDuplicate)
	}
	return err
}

// GetProject retrieves a project by owner email and name
func (r *PostgresProjectRepository) GetProject(ctx context.Context, email, name string) (*models.Project, error) {
	query := `
		SELECT id, name, email, unit, subunit, created_at, updated_at
		FROM projects
		WHERE email = $1 AND name = $2`

	var project models.Project
	err := r.db.QueryRowContext(ctx, query, email, name).Scan(
		&project.ID,
		&project.Name,
		&project.Email,
		&project.Unit,
		&project.Subunit,
		&project.CreatedAt,
		&project.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", name, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// ListProjects retrieves all projects owned by an email
func (r *PostgresProjectRepository) ListProjects(ctx context.Context, email string) ([]models.Project, error) {
	query := `
		SELECT id, name, email, unit, subunit, created_at, updated_at
		FROM projects
		WHERE email = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Email,
			&project.Unit,
			&project.Subunit,
			&project.CreatedAt,
			&project.UpdatedAt)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// EditProject updates a project. A rename rewrites the project name in the
// models, tags and history_records tables in the same transaction, so the
// four tables can never disagree about a project's name.
func (r *PostgresProjectRepository) EditProject(ctx context.Context, email, name, newName, unit, subunit string) (*models.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	finalName := name
	if newName != "" && newName != name {
		finalName = newName
	}

	query := `
		UPDATE projects
		SET name = $1,
		    unit = COALESCE(NULLIF($2, ''), unit),
		    subunit = COALESCE(NULLIF($3, ''), subunit),
		    updated_at = NOW()
		WHERE email = $4 AND name = $5`

	result, err := tx.ExecContext(ctx, query, finalName, unit, subunit, email, name)
	if err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("project %s: %w", finalName, repository.ErrDuplicate)
		}
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("project %s: %w", name, repository.ErrNotFound)
	}

	if finalName != name {
		// Another tenant may own a project with the same name; every
		// dependent table is rewritten under this tenant's email only.
		for _, dependent := range []string{"models", "tags", "history_records"} {
			q := fmt.Sprintf("UPDATE %s SET project = $1 WHERE project = $2 AND email = $3", dependent)
			if _, err := tx.ExecContext(ctx, q, finalName, name, email); err != nil {
				return nil, fmt.Errorf("rename in %s: %w", dependent, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetProject(ctx, email, finalName)
}

// CreateModel inserts a new model record after verifying the owning tenant's
// project exists
func (r *PostgresProjectRepository) CreateModel(ctx context.Context, model *models.Model) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM projects WHERE email = $1 AND name = $2)",
		model.Email, model.Project).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("project %s: %w", model.Project, repository.ErrNotFound)
	}

	query := `
		INSERT INTO models (id, email, project, name, number_of_channels, taco_channel_count, sampling_rate, sampling_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		model.ID,
		model.Email,
		model.Project,
		model.Name,
		model.NumberOfChannels,
		model.TacoChannelCount,
		model.SamplingRate,
		model.SamplingSize,
		model.CreatedAt)

	if isDuplicate(err) {
		return fmt.Errorf("model %s: %w", model.Name, repository.ErrDuplicate)
	}
	return err
}

// GetModel retrieves a model by tenant, project and name
func (r *PostgresProjectRepository) GetModel(ctx context.Context, email, project, name string) (*models.Model, error) {
	query := `
		SELECT id, email, project, name, number_of_channels, taco_channel_count, sampling_rate, sampling_size, created_at
		FROM models
		WHERE email = $1 AND project = $2 AND name = $3`

	var model models.Model
	err := r.db.QueryRowContext(ctx, query, email, project, name).Scan(
		&model.ID,
		&model.Email,
		&model.Project,
		&model.Name,
		&model.NumberOfChannels,
		&model.TacoChannelCount,
		&model.SamplingRate,
		&model.SamplingSize,
		&model.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("model %s: %w", name, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &model, nil
}

// ListModels retrieves all models in a tenant's project
func (r *PostgresProjectRepository) ListModels(ctx context.Context, email, project string) ([]models.Model, error) {
	query := `
		SELECT id, email, project, name, number_of_channels, taco_channel_count, sampling_rate, sampling_size, created_at
		FROM models
		WHERE email = $1 AND project = $2
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, email, project)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Model
	for rows.Next() {
		var model models.Model
		err := rows.Scan(
			&model.ID,
			&model.Email,
			&model.Project,
			&model.Name,
			&model.NumberOfChannels,
			&model.TacoChannelCount,
			&model.SamplingRate,
			&model.SamplingSize,
			&model.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, model)
	}

	return result, rows.Err()
}
