package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CandidateEvaluation holds AI-derived evaluation content for a resume.
// At most one evaluation per resume may be locked at a time.
type CandidateEvaluation struct {
	ID         int64     `json:"id"`
	ResumeID   uuid.UUID `json:"resume_id"`
	ManagerID  string    `json:"manager_id"`
	Score      *float64  `json:"score,omitempty"`
	Summary    *string   `json:"summary,omitempty"`
	Strengths  []string  `json:"strengths,omitempty"`
	Weaknesses []string  `json:"weaknesses,omitempty"`
	Locked     bool      `json:"locked"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EvaluationPayload is the AI-produced content attached when a manager
// locks a candidate. Opaque to the consistency core beyond storage.
type EvaluationPayload struct {
	Score      *float64 `json:"score,omitempty"`
	Summary    *string  `json:"summary,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

// EvaluationRepository defines data access for candidate evaluations
type EvaluationRepository interface {
	// GetLocked returns the locked evaluation for a resume, or ErrNotFound
	GetLocked(ctx context.Context, resumeID uuid.UUID) (*CandidateEvaluation, error)
	// UpsertLocked creates or updates the manager's evaluation with
	// locked = true. Returns ErrLockConflict if another evaluation for the
	// resume is already locked.
	UpsertLocked(ctx context.Context, eval *CandidateEvaluation) error
	// Unlock clears the locked flag; returns ErrNotFound when the manager
	// holds no locked evaluation for the resume
	Unlock(ctx context.Context, resumeID uuid.UUID, managerID string) error
}

// EvaluationUsecase defines the locking policy API
type EvaluationUsecase interface {
	Lock(ctx context.Context, resumeID uuid.UUID, managerID string, payload EvaluationPayload) (*CandidateEvaluation, error)
	Unlock(ctx context.Context, resumeID uuid.UUID, managerID string) error
}
