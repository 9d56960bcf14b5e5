package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-screening-backend/internal/domain"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEvaluationLock(t *testing.T) {
	ctx := context.Background()
	resumeID := uuid.New()
	payload := domain.EvaluationPayload{Summary: strPtr("strong backend profile")}

	t.Run("Should lock and record an audited transition", func(t *testing.T) {
		evals := new(MockEvaluationRepo)
		resumes := new(MockResumeRepo)
		status := new(MockStatusUsecase)
		uc := usecase.NewEvaluationUsecase(evals, resumes, status)

		resumes.On("Exists", ctx, resumeID).Return(true, nil)
		evals.On("GetLocked", ctx, resumeID).Return(nil, domain.ErrNotFound)
		evals.On("UpsertLocked", ctx, mock.AnythingOfType("*domain.CandidateEvaluation")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.CandidateEvaluation).ID = 42
		})
		status.On("Transition", ctx, mock.AnythingOfType("*domain.StatusTransition")).Return(&domain.CandidateStatusHistory{}, nil).Run(func(args mock.Arguments) {
			tr := args.Get(1).(*domain.StatusTransition)
			assert.Equal(t, domain.StatusLocked, tr.NewStatus)
			assert.Equal(t, "manager-1", tr.ChangedBy)
			require.NotNil(t, tr.EvaluationID)
			assert.Equal(t, int64(42), *tr.EvaluationID)
		})

		eval, err := uc.Lock(ctx, resumeID, "manager-1", payload)
		require.NoError(t, err)
		assert.True(t, eval.Locked)
		assert.Equal(t, int64(42), eval.ID)
		status.AssertExpectations(t)
	})

	t.Run("Should fail with Conflict when already locked", func(t *testing.T) {
		evals := new(MockEvaluationRepo)
		resumes := new(MockResumeRepo)
		status := new(MockStatusUsecase)
		uc := usecase.NewEvaluationUsecase(evals, resumes, status)

		resumes.On("Exists", ctx, resumeID).Return(true, nil)
		evals.On("GetLocked", ctx, resumeID).Return(&domain.CandidateEvaluation{
			ResumeID: resumeID, ManagerID: "manager-0", Locked: true,
		}, nil)

		_, err := uc.Lock(ctx, resumeID, "manager-1", payload)
		assert.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
		// the existing lock stays untouched
		evals.AssertNotCalled(t, "UpsertLocked", mock.Anything, mock.Anything)
	})

	t.Run("Should map repository race to Conflict", func(t *testing.T) {
		// Both callers can pass the fast-path check; the conditional
		// write decides the winner.
		evals := new(MockEvaluationRepo)
		resumes := new(MockResumeRepo)
		status := new(MockStatusUsecase)
		uc := usecase.NewEvaluationUsecase(evals, resumes, status)

		resumes.On("Exists", ctx, resumeID).Return(true, nil)
		evals.On("GetLocked", ctx, resumeID).Return(nil, domain.ErrNotFound)
		evals.On("UpsertLocked", ctx, mock.Anything).Return(domain.ErrLockConflict)

		_, err := uc.Lock(ctx, resumeID, "manager-1", payload)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("Should roll the lock back when the audit transition fails", func(t *testing.T) {
		evals := new(MockEvaluationRepo)
		resumes := new(MockResumeRepo)
		status := new(MockStatusUsecase)
		uc := usecase.NewEvaluationUsecase(evals, resumes, status)

		resumes.On("Exists", ctx, resumeID).Return(true, nil)
		evals.On("GetLocked", ctx, resumeID).Return(nil, domain.ErrNotFound)
		evals.On("UpsertLocked", ctx, mock.Anything).Return(nil)
		status.On("Transition", ctx, mock.Anything).Return(nil, errors.New("history append failed"))
		evals.On("Unlock", ctx, resumeID, "manager-1").Return(nil)

		_, err := uc.Lock(ctx, resumeID, "manager-1", payload)
		assert.Error(t, err)
		evals.AssertCalled(t, "Unlock", ctx, resumeID, "manager-1")
	})

	t.Run("Should reject missing manager", func(t *testing.T) {
		evals := new(MockEvaluationRepo)
		resumes := new(MockResumeRepo)
		status := new(MockStatusUsecase)
		uc := usecase.NewEvaluationUsecase(evals, resumes, status)

		_, err := uc.Lock(ctx, resumeID, "", payload)
		assert.Error(t, err)
		resumes.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})
}

func TestEvaluationUnlock(t *testing.T) {
	ctx := context.Background()
	resumeID := uuid.New()

	t.Run("Should clear the flag and record the release", func(t *testing.T) {
		evals := new(MockEvaluationRepo)
		resumes := new(MockResumeRepo)
		status := new(MockStatusUsecase)
		uc := usecase.NewEvaluationUsecase(evals, resumes, status)

		evals.On("Unlock", ctx, resumeID, "manager-1").Return(nil)
		status.On("Transition", ctx, mock.AnythingOfType("*domain.StatusTransition")).Return(&domain.CandidateStatusHistory{}, nil).Run(func(args mock.Arguments) {
			tr := args.Get(1).(*domain.StatusTransition)
			assert.Equal(t, domain.StatusUnderReview, tr.NewStatus)
		})

		err := uc.Unlock(ctx, resumeID, "manager-1")
		assert.NoError(t, err)
		status.AssertExpectations(t)
	})

	t.Run("Should report NotFound when no lock is held", func(t *testing.T) {
		evals := new(MockEvaluationRepo)
		resumes := new(MockResumeRepo)
		status := new(MockStatusUsecase)
		uc := usecase.NewEvaluationUsecase(evals, resumes, status)

		evals.On("Unlock", ctx, resumeID, "manager-1").Return(domain.ErrNotFound)

		err := uc.Unlock(ctx, resumeID, "manager-1")
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
		status.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything)
	})
}
