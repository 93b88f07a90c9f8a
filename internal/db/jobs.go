package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/careerdoc/internal/types"
)

// CreateJob inserts a new job posting and returns the stored record.
func (db *DB) CreateJob(ctx context.Context, job *types.Job) (*types.Job, error) {
	structured, err := marshalStructured(job.Structured)
	if err != nil {
		return nil, err
	}

	var stored types.Job
	var structuredBytes []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (user_id, source_type, title, company, url, raw_text, structured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, source_type, title, company, url, raw_text, structured, created_at`,
		job.UserID, job.SourceType, job.Title, job.Company, job.URL, job.RawText, structured,
	).Scan(&stored.ID, &stored.UserID, &stored.SourceType, &stored.Title, &stored.Company,
		&stored.URL, &stored.RawText, &structuredBytes, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := unmarshalStructured(structuredBytes, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetJob retrieves one job owned by userID. Returns (nil, nil) when not found.
func (db *DB) GetJob(ctx context.Context, userID, id uuid.UUID) (*types.Job, error) {
	var job types.Job
	var structuredBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, source_type, title, company, url, raw_text, structured, created_at
		 FROM jobs WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&job.ID, &job.UserID, &job.SourceType, &job.Title, &job.Company,
		&job.URL, &job.RawText, &structuredBytes, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if err := unmarshalStructured(structuredBytes, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs retrieves all jobs owned by userID, newest first.
func (db *DB) ListJobs(ctx context.Context, userID uuid.UUID) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, source_type, title, company, url, raw_text, structured, created_at
		 FROM jobs WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		var job types.Job
		var structuredBytes []byte
		if err := rows.Scan(&job.ID, &job.UserID, &job.SourceType, &job.Title, &job.Company,
			&job.URL, &job.RawText, &structuredBytes, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if err := unmarshalStructured(structuredBytes, &job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}

// SetJobStructured attaches a structured form to a job owned by userID.
func (db *DB) SetJobStructured(ctx context.Context, userID, id uuid.UUID, structured *types.StructuredJob) error {
	structuredBytes, err := marshalStructured(structured)
	if err != nil {
		return err
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET structured = $3 WHERE id = $1 AND user_id = $2`,
		id, userID, structuredBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to set structured job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job not found")
	}
	return nil
}

// DeleteJob removes a job owned by userID. Returns false when no such job
// existed.
func (db *DB) DeleteJob(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM jobs WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func marshalStructured(structured *types.StructuredJob) ([]byte, error) {
	if structured == nil {
		return nil, nil
	}
	data, err := json.Marshal(structured)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal structured job: %w", err)
	}
	return data, nil
}

func unmarshalStructured(data []byte, job *types.Job) error {
	if len(data) == 0 {
		return nil
	}
	var structured types.StructuredJob
	if err := json.Unmarshal(data, &structured); err != nil {
		return fmt.Errorf("failed to unmarshal structured job: %w", err)
	}
	job.Structured = &structured
	return nil
}
