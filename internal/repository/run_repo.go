package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/models"
)

// RunRepository handles generation run database operations
type RunRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB, logger *zap.Logger) *RunRepository {
	return &RunRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a completed generation run
func (r *RunRepository) Create(run *models.GenerationRun) error {
	query := `
		INSERT INTO generation_runs (
			input_path, output_path, record_count, type_count,
			grand_total, status, error, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		run.InputPath,
		run.OutputPath,
		run.RecordCount,
		run.TypeCount,
		run.GrandTotal,
		run.Status,
		run.Error,
		run.DurationMS,
	)
	if err != nil {
		r.logger.Error("Failed to create generation run", zap.Error(err))
		return fmt.Errorf("failed to create generation run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	run.ID = id
	return nil
}

// ListRecent returns up to limit runs, newest first
func (r *RunRepository) ListRecent(limit int) ([]models.GenerationRun, error) {
	query := `
		SELECT id, input_path, output_path, record_count, type_count,
			grand_total, status, error, duration_ms, created_at
		FROM generation_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Error("Failed to list generation runs", zap.Error(err))
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}
	defer rows.Close()

	var runs []models.GenerationRun
	for rows.Next() {
		var run models.GenerationRun
		if err := rows.Scan(
			&run.ID,
			&run.InputPath,
			&run.OutputPath,
			&run.RecordCount,
			&run.TypeCount,
			&run.GrandTotal,
			&run.Status,
			&run.Error,
			&run.DurationMS,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generation run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetByID retrieves one run, or nil when no such run exists
func (r *RunRepository) GetByID(id int64) (*models.GenerationRun, error) {
	query := `
		SELECT id, input_path, output_path, record_count, type_count,
			grand_total, status, error, duration_ms, created_at
		FROM generation_runs
		WHERE id = ?
	`

	var run models.GenerationRun
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.InputPath,
		&run.OutputPath,
		&run.RecordCount,
		&run.TypeCount,
		&run.GrandTotal,
		&run.Status,
		&run.Error,
		&run.DurationMS,
		&run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get generation run", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get generation run: %w", err)
	}
	return &run, nil
}
