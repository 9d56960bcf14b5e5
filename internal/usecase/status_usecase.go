package usecase

import (
	"context"
	"strings"

	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type statusUsecase struct {
	statuses domain.StatusRepository
	resumes  domain.ResumeRepository
	validate *validator.Validate
}

// NewStatusUsecase creates the candidate status lifecycle manager
func NewStatusUsecase(statuses domain.StatusRepository, resumes domain.ResumeRepository, validate *validator.Validate) domain.StatusUsecase {
	return &statusUsecase{
		statuses: statuses,
		resumes:  resumes,
		validate: validate,
	}
}

// Transition validates the request and applies it atomically. Any status
// may follow any other (managers can override, including correcting a
// HIRED/REJECTED decision); only missing or inconsistent fields are
// rejected, and rejection happens before any write.
func (u *statusUsecase) Transition(ctx context.Context, t *domain.StatusTransition) (*domain.CandidateStatusHistory, error) {
	if t == nil {
		return nil, apperror.BadRequest("Transition request is required")
	}
	if err := u.validate.Struct(t); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if strings.TrimSpace(t.ChangedBy) == "" {
		return nil, apperror.BadRequest("changed_by must identify the actor")
	}
	if !domain.IsKnownStatus(t.NewStatus) {
		return nil, apperror.BadRequest("Unknown status: " + t.NewStatus)
	}
	if t.NewStatus == domain.StatusCustom {
		if t.CustomStatus == nil || strings.TrimSpace(*t.CustomStatus) == "" {
			return nil, apperror.BadRequest("custom_status is required when status is CUSTOM")
		}
	} else if t.CustomStatus != nil {
		return nil, apperror.BadRequest("custom_status is only allowed when status is CUSTOM")
	}

	exists, err := u.resumes.Exists(ctx, t.ResumeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("Resume not found")
	}

	return u.statuses.Transition(ctx, t)
}

func (u *statusUsecase) GetHistory(ctx context.Context, resumeID uuid.UUID) ([]domain.CandidateStatusHistory, error) {
	return u.statuses.GetHistory(ctx, resumeID)
}
