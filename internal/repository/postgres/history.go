package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/pkg/models"
)

// PostgresHistoryRepository implements HistoryRepository for PostgreSQL
type PostgresHistoryRepository struct {
	db *sql.DB
}

// NewPostgresHistoryRepository creates a new PostgreSQL history repository
func NewPostgresHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// SaveRecord inserts a captured data frame. The message array is stored as
// JSON in a jsonb column.
func (r *PostgresHistoryRepository) SaveRecord(ctx context.Context, record *models.HistoryRecord) error {
	message, err := json.Marshal(record.Message)
	if err != nil {
		return fmt.Errorf("failed to marshal message array: %w", err)
	}

	query := `
		INSERT INTO history_records (id, project, model, tag, email, filename, frame_index, message,
			number_of_channels, taco_channel_count, sampling_size, sampling_rate, message_frequency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		record.Project,
		record.Model,
		record.Tag,
		record.Email,
		record.Filename,
		record.FrameIndex,
		string(message),
		record.NumberOfChannels,
		record.TacoChannelCount,
		record.SamplingSize,
		record.SamplingRate,
		record.MessageFrequency,
		record.CreatedAt)

	return err
}

// ListRecords retrieves records in scope ordered by frame index
func (r *PostgresHistoryRepository) ListRecords(ctx context.Context, scope models.HistoryScope, filename string) ([]models.HistoryRecord, error) {
	query := `
		SELECT id, project, model, tag, email, filename, frame_index, message,
			number_of_channels, taco_channel_count, sampling_size, sampling_rate, message_frequency, created_at
		FROM history_records
		WHERE project = $1 AND model = $2 AND tag = $3 AND email = $4
			AND ($5 = '' OR filename = $5)
		ORDER BY frame_index`

	rows, err := r.db.QueryContext(ctx, query, scope.Project, scope.Model, scope.Tag, scope.Email, filename)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.HistoryRecord
	for rows.Next() {
		var record models.HistoryRecord
		var message string

		err := rows.Scan(
			&record.ID,
			&record.Project,
			&record.Model,
			&record.Tag,
			&record.Email,
			&record.Filename,
			&record.FrameIndex,
			&message,
			&record.NumberOfChannels,
			&record.TacoChannelCount,
			&record.SamplingSize,
			&record.SamplingRate,
			&record.MessageFrequency,
			&record.CreatedAt)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(message), &record.Message); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message array: %w", err)
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// DistinctFilenames retrieves the distinct capture filenames in scope
func (r *PostgresHistoryRepository) DistinctFilenames(ctx context.Context, scope models.HistoryScope) ([]string, error) {
	query := `
		SELECT DISTINCT filename
		FROM history_records
		WHERE project = $1 AND model = $2 AND tag = $3 AND email = $4
		ORDER BY filename`

	rows, err := r.db.QueryContext(ctx, query, scope.Project, scope.Model, scope.Tag, scope.Email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filenames []string
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		filenames = append(filenames, filename)
	}

	if len(filenames) == 0 {
		return nil, fmt.Errorf("no capture files in scope: %w", repository.ErrNotFound)
	}

	return filenames, rows.Err()
}
