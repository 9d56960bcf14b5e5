package usecase_test

import (
	"context"

	"go-screening-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) ListIdentities(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockResumeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockStatusRepo struct {
	mock.Mock
}

func (m *MockStatusRepo) Transition(ctx context.Context, t *domain.StatusTransition) (*domain.CandidateStatusHistory, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateStatusHistory), args.Error(1)
}

func (m *MockStatusRepo) GetCurrent(ctx context.Context, resumeID uuid.UUID) (*domain.CandidateStatus, error) {
	args := m.Called(ctx, resumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateStatus), args.Error(1)
}

func (m *MockStatusRepo) GetHistory(ctx context.Context, resumeID uuid.UUID) ([]domain.CandidateStatusHistory, error) {
	args := m.Called(ctx, resumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateStatusHistory), args.Error(1)
}

type MockEvaluationRepo struct {
	mock.Mock
}

func (m *MockEvaluationRepo) GetLocked(ctx context.Context, resumeID uuid.UUID) (*domain.CandidateEvaluation, error) {
	args := m.Called(ctx, resumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateEvaluation), args.Error(1)
}

func (m *MockEvaluationRepo) UpsertLocked(ctx context.Context, eval *domain.CandidateEvaluation) error {
	return m.Called(ctx, eval).Error(0)
}

func (m *MockEvaluationRepo) Unlock(ctx context.Context, resumeID uuid.UUID, managerID string) error {
	return m.Called(ctx, resumeID, managerID).Error(0)
}

type MockStatusUsecase struct {
	mock.Mock
}

func (m *MockStatusUsecase) Transition(ctx context.Context, t *domain.StatusTransition) (*domain.CandidateStatusHistory, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateStatusHistory), args.Error(1)
}

func (m *MockStatusUsecase) GetHistory(ctx context.Context, resumeID uuid.UUID) ([]domain.CandidateStatusHistory, error) {
	args := m.Called(ctx, resumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateStatusHistory), args.Error(1)
}
