package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-screening-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type statusRepo struct {
	db *pgxpool.Pool
}

// NewStatusRepository creates data access for candidate statuses and
// their append-only history
func NewStatusRepository(db *pgxpool.Pool) domain.StatusRepository {
	return &statusRepo{db: db}
}

// Transition performs the read-modify-append as one transaction. The row
// lock on candidate_statuses serializes concurrent transitions per
// resume, so each history row captures the state immediately preceding
// it and no update is ever lost. The status update and the history
// append commit together or not at all.
func (r *statusRepo) Transition(ctx context.Context, t *domain.StatusTransition) (*domain.CandidateStatusHistory, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	var prevStatus, prevCustom *string

	err = tx.QueryRow(ctx,
		`SELECT status, custom_status FROM candidate_statuses WHERE resume_id = $1 FOR UPDATE`,
		t.ResumeID,
	).Scan(&prevStatus, &prevCustom)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// A resume with no status row is implicitly NEW. Two concurrent
		// first transitions both reach this insert; the primary key lets
		// only one commit, the loser reports the conflict instead of
		// double-writing history.
		initial := domain.StatusNew
		prevStatus = &initial
		_, err = tx.Exec(ctx,
			`INSERT INTO candidate_statuses (resume_id, manager_id, status, custom_status, updated_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			t.ResumeID, t.ChangedBy, t.NewStatus, t.CustomStatus, now,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, domain.ErrTransitionConflict
			}
			return nil, fmt.Errorf("failed to create candidate status: %w", err)
		}
	case err != nil:
		return nil, err
	default:
		_, err = tx.Exec(ctx,
			`UPDATE candidate_statuses
			 SET manager_id = $2, status = $3, custom_status = $4, updated_at = $5
			 WHERE resume_id = $1`,
			t.ResumeID, t.ChangedBy, t.NewStatus, t.CustomStatus, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update candidate status: %w", err)
		}
	}

	history := &domain.CandidateStatusHistory{
		ResumeID:             t.ResumeID,
		EvaluationID:         t.EvaluationID,
		PreviousStatus:       prevStatus,
		PreviousCustomStatus: prevCustom,
		NewStatus:            t.NewStatus,
		NewCustomStatus:      t.CustomStatus,
		ChangedBy:            t.ChangedBy,
		Comments:             t.Comments,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO candidate_status_history
			(resume_id, evaluation_id, previous_status, previous_custom_status,
			 new_status, new_custom_status, changed_by, changed_at, comments)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, changed_at`,
		t.ResumeID, t.EvaluationID, prevStatus, prevCustom,
		t.NewStatus, t.CustomStatus, t.ChangedBy, now, t.Comments,
	).Scan(&history.ID, &history.ChangedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to append status history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *statusRepo) GetCurrent(ctx context.Context, resumeID uuid.UUID) (*domain.CandidateStatus, error) {
	query := `
		SELECT resume_id, manager_id, status, custom_status, updated_at
		FROM candidate_statuses
		WHERE resume_id = $1`

	var status domain.CandidateStatus
	err := r.db.QueryRow(ctx, query, resumeID).Scan(
		&status.ResumeID, &status.ManagerID, &status.Status, &status.CustomStatus, &status.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// no transition recorded yet: the candidate is NEW
			return &domain.CandidateStatus{ResumeID: resumeID, Status: domain.StatusNew}, nil
		}
		return nil, err
	}
	return &status, nil
}

// GetHistory returns transitions newest first. The id tie-break keeps
// causal order when two transitions share a timestamp.
func (r *statusRepo) GetHistory(ctx context.Context, resumeID uuid.UUID) ([]domain.CandidateStatusHistory, error) {
	query := `
		SELECT id, resume_id, evaluation_id, previous_status, previous_custom_status,
		       new_status, new_custom_status, changed_by, changed_at, comments
		FROM candidate_status_history
		WHERE resume_id = $1
		ORDER BY changed_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.CandidateStatusHistory
	for rows.Next() {
		var h domain.CandidateStatusHistory
		if err := rows.Scan(
			&h.ID, &h.ResumeID, &h.EvaluationID, &h.PreviousStatus, &h.PreviousCustomStatus,
			&h.NewStatus, &h.NewCustomStatus, &h.ChangedBy, &h.ChangedAt, &h.Comments,
		); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
