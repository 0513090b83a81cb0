package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run status values.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run represents one scrape run
type Run struct {
	RunID        int64
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	BaseURL      string
	OutputPath   string
	Status       string
	PageCount    int
	QuoteCount   int
	ErrorMessage sql.NullString
}

// Duration returns how long the run took, or zero if it has not finished.
func (r Run) Duration() time.Duration {
	if !r.FinishedAt.Valid {
		return 0
	}
	return r.FinishedAt.Time.Sub(r.StartedAt)
}

// StartRun inserts a run in the running state and returns its run_id.
func (db *DB) StartRun(baseURL, outputPath string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (base_url, output_path, status)
		VALUES (?, ?, ?)
	`, baseURL, outputPath, StatusRunning)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// FinishRun records the outcome of a run.
func (db *DB) FinishRun(runID int64, status string, pageCount, quoteCount int, errorMessage string) error {
	result, err := db.Exec(`
		UPDATE runs
		SET status = ?, page_count = ?, quote_count = ?, error_message = ?, finished_at = CURRENT_TIMESTAMP
		WHERE run_id = ?
	`, status, pageCount, quoteCount, NewNullString(errorMessage), runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check finished run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	return nil
}

// GetRunByID retrieves a run by ID
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, started_at, finished_at, base_url, output_path, status,
		       page_count, quote_count, error_message
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.StartedAt, &r.FinishedAt, &r.BaseURL, &r.OutputPath,
		&r.Status, &r.PageCount, &r.QuoteCount, &r.ErrorMessage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, started_at, finished_at, base_url, output_path, status,
		       page_count, quote_count, error_message
		FROM runs
		ORDER BY run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.FinishedAt, &r.BaseURL, &r.OutputPath,
			&r.Status, &r.PageCount, &r.QuoteCount, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// NewNullString creates a sql.NullString from a string value.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// NewNullFloat64 creates a sql.NullFloat64 from a float64 value.
func NewNullFloat64(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
