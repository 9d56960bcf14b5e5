package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-screening-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type evaluationRepo struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates data access for candidate evaluations
func NewEvaluationRepository(db *pgxpool.Pool) domain.EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) GetLocked(ctx context.Context, resumeID uuid.UUID) (*domain.CandidateEvaluation, error) {
	query := `
		SELECT id, resume_id, manager_id, score, summary, strengths, weaknesses, locked, created_at, updated_at
		FROM candidate_evaluations
		WHERE resume_id = $1 AND locked`

	var eval domain.CandidateEvaluation
	err := r.db.QueryRow(ctx, query, resumeID).Scan(
		&eval.ID, &eval.ResumeID, &eval.ManagerID, &eval.Score, &eval.Summary,
		&eval.Strengths, &eval.Weaknesses, &eval.Locked, &eval.CreatedAt, &eval.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &eval, nil
}

// UpsertLocked creates or updates the manager's evaluation with
// locked = true. The partial unique index on (resume_id) WHERE locked is
// the authoritative invariant: a write that would produce a second
// locked row fails there, without any global lock, no matter how the
// callers race.
func (r *evaluationRepo) UpsertLocked(ctx context.Context, eval *domain.CandidateEvaluation) error {
	query := `
		INSERT INTO candidate_evaluations
			(resume_id, manager_id, score, summary, strengths, weaknesses, locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $7)
		ON CONFLICT (resume_id, manager_id) DO UPDATE
			SET score = EXCLUDED.score,
			    summary = EXCLUDED.summary,
			    strengths = EXCLUDED.strengths,
			    weaknesses = EXCLUDED.weaknesses,
			    locked = true,
			    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		eval.ResumeID, eval.ManagerID, eval.Score, eval.Summary,
		eval.Strengths, eval.Weaknesses, now,
	).Scan(&eval.ID, &eval.CreatedAt, &eval.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLockConflict
		}
		return fmt.Errorf("failed to lock evaluation: %w", err)
	}
	eval.Locked = true
	return nil
}

// Unlock clears the flag for the manager's evaluation. The row itself
// stays; evaluations and their history are never deleted.
func (r *evaluationRepo) Unlock(ctx context.Context, resumeID uuid.UUID, managerID string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE candidate_evaluations
		 SET locked = false, updated_at = $3
		 WHERE resume_id = $1 AND manager_id = $2 AND locked`,
		resumeID, managerID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to unlock evaluation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
