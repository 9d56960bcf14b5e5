package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// VectorEntry is one document in the vector index. A healthy index holds
// exactly one entry per resume; the raw listing may surface the same
// resume id more than once, so listings are slices, never sets.
type VectorEntry struct {
	ResumeID   uuid.UUID `json:"resume_id"`
	DocumentID string    `json:"document_id"`
}

// SyncOp identifies which corrective operation failed for an identity
type SyncOp string

const (
	SyncOpFetch  SyncOp = "fetch"
	SyncOpUpsert SyncOp = "upsert"
	SyncOpDelete SyncOp = "delete"
)

// SyncFailure records one identity the reconciliation pass could not repair
type SyncFailure struct {
	ResumeID uuid.UUID `json:"resume_id"`
	Op       SyncOp    `json:"op"`
	Reason   string    `json:"reason"`
}

// SyncResult summarizes one reconciliation pass. Immutable after
// construction; the scheduler keeps only the most recent instance.
type SyncResult struct {
	Added               int           `json:"added"`
	Removed             int           `json:"removed"`
	DuplicatesCollapsed int           `json:"duplicates_collapsed"`
	Failures            []SyncFailure `json:"failures,omitempty"`
	CompletedAt         time.Time     `json:"completed_at"`
	Success             bool          `json:"success"`
}

// VectorIndex defines the operations the reconciliation engine needs from
// the semantic-search store
type VectorIndex interface {
	// ListEntries returns the raw index listing. Duplicate resume ids are
	// possible and must be preserved by the caller.
	ListEntries(ctx context.Context) ([]VectorEntry, error)
	// Upsert creates or replaces the single entry for a resume
	Upsert(ctx context.Context, id uuid.UUID, content string) error
	// Delete removes one entry by its index-internal document id
	Delete(ctx context.Context, documentID string) error
}

// TriggerState classifies the outcome of a manual reconciliation trigger
type TriggerState string

const (
	TriggerRan            TriggerState = "ran"
	TriggerAlreadyRunning TriggerState = "already_running"
	TriggerFailed         TriggerState = "failed"
)

// TriggerOutcome is the tri-state result of a manual trigger. Result is
// set only for TriggerRan, Err only for TriggerFailed, so "skipped because
// busy" is never conflated with "ran and failed".
type TriggerOutcome struct {
	State  TriggerState `json:"state"`
	Result *SyncResult  `json:"result,omitempty"`
	Err    error        `json:"-"`
}

// ReconciliationUsecase runs one full index-database reconciliation pass
type ReconciliationUsecase interface {
	Run(ctx context.Context) (*SyncResult, error)
}
