package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Candidate status constants
const (
	StatusNew          = "NEW"
	StatusUnderReview  = "UNDER_REVIEW"
	StatusLocked       = "LOCKED"
	StatusInterviewing = "INTERVIEWING"
	StatusHired        = "HIRED"
	StatusRejected     = "REJECTED"
	StatusCustom       = "CUSTOM"
)

// KnownStatuses is the closed status enumeration. CUSTOM carries a
// manager-supplied label in CustomStatus.
var KnownStatuses = []string{
	StatusNew,
	StatusUnderReview,
	StatusLocked,
	StatusInterviewing,
	StatusHired,
	StatusRejected,
	StatusCustom,
}

// IsKnownStatus reports whether s is part of the closed enumeration
func IsKnownStatus(s string) bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CandidateStatus is the current evaluation state for a resume. Rows are
// transitioned in place, never deleted.
type CandidateStatus struct {
	ResumeID     uuid.UUID `json:"resume_id"`
	ManagerID    *string   `json:"manager_id,omitempty"`
	Status       string    `json:"status"`
	CustomStatus *string   `json:"custom_status,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CandidateStatusHistory is one append-only transition record. Created
// once per transition, never mutated or deleted.
type CandidateStatusHistory struct {
	ID                   int64     `json:"id"`
	ResumeID             uuid.UUID `json:"resume_id"`
	EvaluationID         *int64    `json:"evaluation_id,omitempty"`
	PreviousStatus       *string   `json:"previous_status,omitempty"`
	PreviousCustomStatus *string   `json:"previous_custom_status,omitempty"`
	NewStatus            string    `json:"new_status"`
	NewCustomStatus      *string   `json:"new_custom_status,omitempty"`
	ChangedBy            string    `json:"changed_by"`
	ChangedAt            time.Time `json:"changed_at"`
	Comments             *string   `json:"comments,omitempty"`
}

// StatusTransition is a request to move a candidate to a new status
type StatusTransition struct {
	ResumeID     uuid.UUID `json:"resume_id" validate:"required"`
	EvaluationID *int64    `json:"evaluation_id,omitempty"`
	NewStatus    string    `json:"new_status" validate:"required"`
	CustomStatus *string   `json:"custom_status,omitempty"`
	ChangedBy    string    `json:"changed_by" validate:"required"`
	Comments     *string   `json:"comments,omitempty"`
}

// StatusRepository defines data access for candidate statuses and history
type StatusRepository interface {
	// Transition atomically updates the current status and appends the
	// history row inside one unit of work. Concurrent transitions on the
	// same resume serialize; each history row reflects the state
	// immediately preceding it.
	Transition(ctx context.Context, t *StatusTransition) (*CandidateStatusHistory, error)
	GetCurrent(ctx context.Context, resumeID uuid.UUID) (*CandidateStatus, error)
	// GetHistory returns transitions newest first
	GetHistory(ctx context.Context, resumeID uuid.UUID) ([]CandidateStatusHistory, error)
}

// StatusUsecase defines the candidate status lifecycle API
type StatusUsecase interface {
	Transition(ctx context.Context, t *StatusTransition) (*CandidateStatusHistory, error)
	GetHistory(ctx context.Context, resumeID uuid.UUID) ([]CandidateStatusHistory, error)
}
