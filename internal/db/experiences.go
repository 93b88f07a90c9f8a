package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/careerdoc/internal/types"
)

const experienceColumns = `id, user_id, start_month, end_month, ongoing, company,
	company_visibility, project_name, raw_notes, one_liner, tags, keywords,
	role_level, risk_level, created_at`

// CreateExperience inserts a new experience with its derived fields and
// returns the stored record.
func (db *DB) CreateExperience(ctx context.Context, exp *types.Experience) (*types.Experience, error) {
	var stored types.Experience
	err := db.pool.QueryRow(ctx,
		`INSERT INTO experiences (user_id, start_month, end_month, ongoing, company,
		    company_visibility, project_name, raw_notes, one_liner, tags, keywords,
		    role_level, risk_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+experienceColumns,
		exp.UserID, exp.StartMonth, exp.EndMonth, exp.Ongoing, exp.Company,
		exp.CompanyVisibility, exp.ProjectName, exp.RawNotes, exp.OneLiner,
		exp.Tags, exp.Keywords, exp.RoleLevel, exp.RiskLevel,
	).Scan(scanExperience(&stored)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create experience: %w", err)
	}
	return &stored, nil
}

// UpdateExperience replaces the source and derived fields of an experience
// owned by userID. Returns (nil, nil) when no such experience exists.
func (db *DB) UpdateExperience(ctx context.Context, userID uuid.UUID, exp *types.Experience) (*types.Experience, error) {
	var stored types.Experience
	err := db.pool.QueryRow(ctx,
		`UPDATE experiences SET start_month = $3, end_month = $4, ongoing = $5,
		    company = $6, company_visibility = $7, project_name = $8, raw_notes = $9,
		    one_liner = $10, tags = $11, keywords = $12, role_level = $13, risk_level = $14
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+experienceColumns,
		exp.ID, userID, exp.StartMonth, exp.EndMonth, exp.Ongoing, exp.Company,
		exp.CompanyVisibility, exp.ProjectName, exp.RawNotes, exp.OneLiner,
		exp.Tags, exp.Keywords, exp.RoleLevel, exp.RiskLevel,
	).Scan(scanExperience(&stored)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update experience: %w", err)
	}
	return &stored, nil
}

// UpdateExperienceDerived rewrites only the derived fields of an experience.
// Used by bulk restructuring, which leaves the source fields untouched.
func (db *DB) UpdateExperienceDerived(ctx context.Context, userID, id uuid.UUID, s *types.StructuredExperience) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE experiences SET one_liner = $3, tags = $4, keywords = $5,
		    role_level = $6, risk_level = $7
		 WHERE id = $1 AND user_id = $2`,
		id, userID, s.OneLiner, s.Tags, s.Keywords, s.RoleLevel, s.RiskLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to update derived fields: %w", err)
	}
	return nil
}

// GetExperience retrieves one experience owned by userID.
// Returns (nil, nil) when not found.
func (db *DB) GetExperience(ctx context.Context, userID, id uuid.UUID) (*types.Experience, error) {
	var exp types.Experience
	err := db.pool.QueryRow(ctx,
		`SELECT `+experienceColumns+` FROM experiences WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(scanExperience(&exp)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}
	return &exp, nil
}

// ListExperiences retrieves all experiences owned by userID, newest first.
func (db *DB) ListExperiences(ctx context.Context, userID uuid.UUID) ([]types.Experience, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+experienceColumns+` FROM experiences
		 WHERE user_id = $1 ORDER BY start_month DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	var experiences []types.Experience
	for rows.Next() {
		var exp types.Experience
		if err := rows.Scan(scanExperience(&exp)...); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		experiences = append(experiences, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read experiences: %w", err)
	}
	return experiences, nil
}

// ListExperiencesByIDs retrieves the experiences with the given IDs owned by
// userID, preserving the order of ids.
func (db *DB) ListExperiencesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]types.Experience, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+experienceColumns+` FROM experiences
		 WHERE user_id = $1 AND id = ANY($2)`,
		userID, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]types.Experience, len(ids))
	for rows.Next() {
		var exp types.Experience
		if err := rows.Scan(scanExperience(&exp)...); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		byID[exp.ID] = exp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read experiences: %w", err)
	}

	ordered := make([]types.Experience, 0, len(byID))
	for _, id := range ids {
		if exp, ok := byID[id]; ok {
			ordered = append(ordered, exp)
		}
	}
	return ordered, nil
}

// DeleteExperience removes an experience owned by userID. Returns false when
// no such experience existed.
func (db *DB) DeleteExperience(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM experiences WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete experience: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanExperience returns the scan destinations matching experienceColumns.
func scanExperience(exp *types.Experience) []any {
	return []any{
		&exp.ID, &exp.UserID, &exp.StartMonth, &exp.EndMonth, &exp.Ongoing,
		&exp.Company, &exp.CompanyVisibility, &exp.ProjectName, &exp.RawNotes,
		&exp.OneLiner, &exp.Tags, &exp.Keywords, &exp.RoleLevel, &exp.RiskLevel,
		&exp.CreatedAt,
	}
}
