package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/hexmetrics-backend-go/internal/models"
)

// RunRepository tracks aggregation runs in the bookkeeping table.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a pending run and returns its id.
func (r *RunRepository) Create(ctx context.Context, domain string, partitions int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO aggregation_runs (domain, status, partitions) VALUES (?, 'pending', ?)`,
		domain, partitions)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

// MarkRunning marks a run as running.
func (r *RunRepository) MarkRunning(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE aggregation_runs SET status = 'running', started_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark run %d running: %w", id, err)
	}
	return nil
}

// MarkCompleted marks a run as completed with a diagnostics summary.
func (r *RunRepository) MarkCompleted(ctx context.Context, id int64, completed, failed int, summary string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE aggregation_runs
		SET status = 'completed', completed = ?, failed = ?, summary = ?,
		    finished_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		completed, failed, summary, id)
	if err != nil {
		return fmt.Errorf("failed to mark run %d completed: %w", id, err)
	}
	return nil
}

// MarkFailed marks a run as failed with an error message.
func (r *RunRepository) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE aggregation_runs
		SET status = 'failed', error_message = ?, finished_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to mark run %d failed: %w", id, err)
	}
	return nil
}

// Get retrieves one run by id. Returns nil when not found.
func (r *RunRepository) Get(ctx context.Context, id int64) (*models.AggregationRun, error) {
	query := `SELECT id, domain, status, partitions, completed, failed,
		summary, error_message, created_at, started_at, finished_at
		FROM aggregation_runs WHERE id = ?`

	var run models.AggregationRun
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.Domain, &run.Status, &run.Partitions, &run.Completed,
		&run.Failed, &run.Summary, &run.Error, &run.CreatedAt,
		&run.StartedAt, &run.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}
	return &run, nil
}

// List retrieves the most recent runs.
func (r *RunRepository) List(ctx context.Context, limit int) ([]models.AggregationRun, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `SELECT id, domain, status, partitions, completed, failed,
		summary, error_message, created_at, started_at, finished_at
		FROM aggregation_runs ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []models.AggregationRun
	for rows.Next() {
		var run models.AggregationRun
		err := rows.Scan(
			&run.ID, &run.Domain, &run.Status, &run.Partitions, &run.Completed,
			&run.Failed, &run.Summary, &run.Error, &run.CreatedAt,
			&run.StartedAt, &run.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
