package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/careerdoc/internal/types"
)

// ReplaceJobQuestions deletes the stored questions of a job and inserts the
// given seeds in order. Used when structuring re-seeds a job's questions.
func (db *DB) ReplaceJobQuestions(ctx context.Context, userID, jobID uuid.UUID, seeds []types.QuestionSeed) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM job_questions WHERE job_id = $1 AND user_id = $2`,
		jobID, userID,
	); err != nil {
		return fmt.Errorf("failed to clear job questions: %w", err)
	}

	for i, seed := range seeds {
		if _, err := tx.Exec(ctx,
			`INSERT INTO job_questions (job_id, user_id, question_title, char_limit, order_idx)
			 VALUES ($1, $2, $3, $4, $5)`,
			jobID, userID, seed.Title, seed.CharLimit, i,
		); err != nil {
			return fmt.Errorf("failed to insert job question: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit job questions: %w", err)
	}
	return nil
}

// AppendJobQuestion adds one question after the job's existing ones.
func (db *DB) AppendJobQuestion(ctx context.Context, userID, jobID uuid.UUID, title string, charLimit *int) (*types.JobQuestion, error) {
	var q types.JobQuestion
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_questions (job_id, user_id, question_title, char_limit, order_idx)
		 VALUES ($1, $2, $3, $4,
		   (SELECT COALESCE(MAX(order_idx) + 1, 0) FROM job_questions WHERE job_id = $1))
		 RETURNING id, job_id, user_id, question_title, char_limit, order_idx`,
		jobID, userID, title, charLimit,
	).Scan(&q.ID, &q.JobID, &q.UserID, &q.QuestionTitle, &q.CharLimit, &q.OrderIdx)
	if err != nil {
		return nil, fmt.Errorf("failed to append job question: %w", err)
	}
	return &q, nil
}

// ListJobQuestions retrieves a job's questions in order.
func (db *DB) ListJobQuestions(ctx context.Context, userID, jobID uuid.UUID) ([]types.JobQuestion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, user_id, question_title, char_limit, order_idx
		 FROM job_questions WHERE job_id = $1 AND user_id = $2 ORDER BY order_idx`,
		jobID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job questions: %w", err)
	}
	defer rows.Close()

	var questions []types.JobQuestion
	for rows.Next() {
		var q types.JobQuestion
		if err := rows.Scan(&q.ID, &q.JobID, &q.UserID, &q.QuestionTitle, &q.CharLimit, &q.OrderIdx); err != nil {
			return nil, fmt.Errorf("failed to scan job question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job questions: %w", err)
	}
	return questions, nil
}

// DeleteJobQuestion removes one question owned by userID. Returns false when
// no such question existed.
func (db *DB) DeleteJobQuestion(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM job_questions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete job question: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
