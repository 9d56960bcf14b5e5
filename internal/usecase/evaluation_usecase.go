package usecase

import (
	"context"
	"errors"
	"strings"

	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/logger"

	"github.com/google/uuid"
)

type evaluationUsecase struct {
	evals   domain.EvaluationRepository
	resumes domain.ResumeRepository
	status  domain.StatusUsecase
}

// NewEvaluationUsecase creates the locking policy for candidate evaluations
func NewEvaluationUsecase(evals domain.EvaluationRepository, resumes domain.ResumeRepository, status domain.StatusUsecase) domain.EvaluationUsecase {
	return &evaluationUsecase{
		evals:   evals,
		resumes: resumes,
		status:  status,
	}
}

// Lock claims the resume for a manager's decision. At most one locked
// evaluation may exist per resume; a second lock fails with Conflict and
// leaves the existing one untouched. The lock itself is recorded through
// the status lifecycle so it shows up in the audit history.
func (u *evaluationUsecase) Lock(ctx context.Context, resumeID uuid.UUID, managerID string, payload domain.EvaluationPayload) (*domain.CandidateEvaluation, error) {
	if strings.TrimSpace(managerID) == "" {
		return nil, apperror.BadRequest("manager_id is required")
	}
	exists, err := u.resumes.Exists(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("Resume not found")
	}

	// Fast-path check. The repository enforces the invariant again with a
	// conditional write, so a race here still ends in Conflict, never in
	// two locked rows.
	if _, err := u.evals.GetLocked(ctx, resumeID); err == nil {
		return nil, apperror.Conflict("Resume already has a locked evaluation")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	eval := &domain.CandidateEvaluation{
		ResumeID:   resumeID,
		ManagerID:  managerID,
		Score:      payload.Score,
		Summary:    payload.Summary,
		Strengths:  payload.Strengths,
		Weaknesses: payload.Weaknesses,
		Locked:     true,
	}
	if err := u.evals.UpsertLocked(ctx, eval); err != nil {
		if errors.Is(err, domain.ErrLockConflict) {
			return nil, apperror.Conflict("Resume already has a locked evaluation")
		}
		return nil, err
	}

	comment := "evaluation locked"
	_, err = u.status.Transition(ctx, &domain.StatusTransition{
		ResumeID:     resumeID,
		EvaluationID: &eval.ID,
		NewStatus:    domain.StatusLocked,
		ChangedBy:    managerID,
		Comments:     &comment,
	})
	if err != nil {
		// Release the lock so the status history never disagrees with the
		// evaluation state.
		if uerr := u.evals.Unlock(ctx, resumeID, managerID); uerr != nil {
			logger.Log.Error("Failed to roll back lock after status transition failure",
				"resume_id", resumeID, "manager_id", managerID, "error", uerr)
		}
		return nil, err
	}
	return eval, nil
}

// Unlock clears the manager's lock and records the release in the audit
// history. Evaluation content and history rows are never deleted.
func (u *evaluationUsecase) Unlock(ctx context.Context, resumeID uuid.UUID, managerID string) error {
	if strings.TrimSpace(managerID) == "" {
		return apperror.BadRequest("manager_id is required")
	}
	if err := u.evals.Unlock(ctx, resumeID, managerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("No locked evaluation held by this manager")
		}
		return err
	}

	comment := "evaluation unlocked"
	_, err := u.status.Transition(ctx, &domain.StatusTransition{
		ResumeID:  resumeID,
		NewStatus: domain.StatusUnderReview,
		ChangedBy: managerID,
		Comments:  &comment,
	})
	return err
}
