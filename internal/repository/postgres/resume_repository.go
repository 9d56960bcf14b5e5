package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-screening-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

// NewResumeRepository creates read access to the resume system of record
func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

// ListIdentities returns every resume id. This is the authoritative set
// the reconciliation engine compares the index against.
func (r *resumeRepo) ListIdentities(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM resumes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume identities: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *resumeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error) {
	query := `
		SELECT id, full_name, title, summary, skills, raw_text, created_at, updated_at
		FROM resumes
		WHERE id = $1`

	var resume domain.Resume
	err := r.db.QueryRow(ctx, query, id).Scan(
		&resume.ID, &resume.FullName, &resume.Title, &resume.Summary,
		&resume.Skills, &resume.RawText, &resume.CreatedAt, &resume.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM resumes WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
