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

// SaveDocument persists a synthesized result the user chose to keep.
func (db *DB) SaveDocument(ctx context.Context, doc *types.Document) (*types.Document, error) {
	metaBytes, err := json.Marshal(doc.Meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document meta: %w", err)
	}

	var stored types.Document
	var storedMeta []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO documents (user_id, job_id, doc_type, content, content_md, meta)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, job_id, doc_type, content, content_md, meta, created_at`,
		doc.UserID, doc.JobID, doc.DocType, doc.Content, doc.ContentMD, metaBytes,
	).Scan(&stored.ID, &stored.UserID, &stored.JobID, &stored.DocType,
		&stored.Content, &stored.ContentMD, &storedMeta, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	if err := json.Unmarshal(storedMeta, &stored.Meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document meta: %w", err)
	}
	return &stored, nil
}

// GetDocument retrieves one saved document owned by userID.
// Returns (nil, nil) when not found.
func (db *DB) GetDocument(ctx context.Context, userID, id uuid.UUID) (*types.Document, error) {
	var doc types.Document
	var metaBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, job_id, doc_type, content, content_md, meta, created_at
		 FROM documents WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&doc.ID, &doc.UserID, &doc.JobID, &doc.DocType,
		&doc.Content, &doc.ContentMD, &metaBytes, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if err := json.Unmarshal(metaBytes, &doc.Meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document meta: %w", err)
	}
	return &doc, nil
}

// ListDocuments retrieves all saved documents owned by userID, newest first.
func (db *DB) ListDocuments(ctx context.Context, userID uuid.UUID) ([]types.Document, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, job_id, doc_type, content, content_md, meta, created_at
		 FROM documents WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var documents []types.Document
	for rows.Next() {
		var doc types.Document
		var metaBytes []byte
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.JobID, &doc.DocType,
			&doc.Content, &doc.ContentMD, &metaBytes, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if err := json.Unmarshal(metaBytes, &doc.Meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document meta: %w", err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}
	return documents, nil
}

// DeleteDocument removes a saved document owned by userID. Returns false
// when no such document existed.
func (db *DB) DeleteDocument(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM documents WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
