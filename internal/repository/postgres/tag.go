package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/pkg/models"
)

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *sql.DB
}

// NewPostgresTagRepository creates a new PostgreSQL tag repository
func NewPostgresTagRepository(db *sql.DB) repository.TagRepository {
	return &PostgresTagRepository{db: db}
}

// CreateTag inserts a new tag after verifying the owning tenant's project and
// model exist
func (r *PostgresTagRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM projects WHERE email = $1 AND name = $2)",
		tag.Email, tag.Project).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("project %s: %w", tag.Project, repository.ErrNotFound)
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM models WHERE email = $1 AND project = $2 AND name = $3)",
		tag.Email, tag.Project, tag.Model).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("model %s: %w", tag.Model, repository.ErrNotFound)
	}

	query := `
		INSERT INTO tags (id, email, project, model, name, topic, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		tag.ID,
		tag.Email,
		tag.Project,
		tag.Model,
		tag.Name,
		tag.Topic,
		tag.CreatedAt)

	if isDuplicate(err) {
		return fmt.Errorf("tag %s: %w", tag.Name, repository.ErrDuplicate)
	}
	return err
}

// GetTag retrieves a tag by tenant, project and name
func (r *PostgresTagRepository) GetTag(ctx context.Context, email, project, name string) (*models.Tag, error) {
	query := `
		SELECT id, email, project, model, name, topic, created_at
		FROM tags
		WHERE email = $1 AND project = $2 AND name = $3`

	var tag models.Tag
	err := r.db.QueryRowContext(ctx, query, email, project, name).Scan(
		&tag.ID,
		&tag.Email,
		&tag.Project,
		&tag.Model,
		&tag.Name,
		&tag.Topic,
		&tag.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag %s: %w", name, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &tag, nil
}

// EditTag updates a tag. A rename rewrites the tag name in the tenant's
// history_records in the same transaction.
func (r *PostgresTagRepository) EditTag(ctx context.Context, email, project, name, newName, topic string) (*models.Tag, error) {
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
		UPDATE tags
		SET name = $1, topic = COALESCE(NULLIF($2, ''), topic)
		WHERE email = $3 AND project = $4 AND name = $5`

	result, err := tx.ExecContext(ctx, query, finalName, topic, email, project, name)
	if err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("tag %s: %w", finalName, repository.ErrDuplicate)
		}
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("tag %s: %w", name, repository.ErrNotFound)
	}

	if finalName != name {
		_, err = tx.ExecContext(ctx,
			"UPDATE history_records SET tag = $1 WHERE email = $2 AND project = $3 AND tag = $4",
			finalName, email, project, name)
		if err != nil {
			return nil, fmt.Errorf("rename in history_records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetTag(ctx, email, project, finalName)
}

// DeleteTag removes a tag by tenant, project and name
func (r *PostgresTagRepository) DeleteTag(ctx context.Context, email, project, name string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tags WHERE email = $1 AND project = $2 AND name = $3", email, project, name)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("tag %s: %w", name, repository.ErrNotFound)
	}

	return nil
}
