package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
)

type interviewService struct {
	BaseService
	interviewRepo portsrepo.InterviewRepositoryFacade
}

// NewInterviewService creates a recruitment interview service.
func NewInterviewService(interviewRepo portsrepo.InterviewRepositoryFacade, opts ...Option) portssvc.InterviewSvcFacade {
	return &interviewService{
		BaseService:   newBaseService(opts),
		interviewRepo: interviewRepo,
	}
}

var _ portssvc.InterviewSvcFacade = (*interviewService)(nil)

func (s *interviewService) ScheduleInterview(ctx context.Context, actor domain.Actor, req dto.CreateInterviewRequest) (*domain.Interview, error) {
	if err := s.Authorize(ctx, domain.EntityInterview, domain.ActionCreate, actor); err != nil {
		return nil, err
	}
	if req.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("%w: interview time is required", apperrors.ErrValidation)
	}

	iv := domain.Interview{
		InterviewID:   s.newID(),
		ApplicationID: req.ApplicationID,
		InterviewerID: req.InterviewerID,
		ScheduledAt:   req.ScheduledAt,
		Type:          domain.InterviewType(req.Type),
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
		Notes:         req.Notes,
		Status:        domain.InterviewScheduled,
		AuditFields:   domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := s.interviewRepo.SaveInterview(ctx, iv); err != nil {
		s.LogError(ctx, err, "Failed to save interview", slog.String("application_id", iv.ApplicationID))
		return nil, err
	}
	return &iv, nil
}

func (s *interviewService) GetInterviewByID(ctx context.Context, actor domain.Actor, interviewID string) (*domain.Interview, error) {
	if err := s.Authorize(ctx, domain.EntityInterview, domain.ActionCreate, actor); err != nil {
		return nil, err
	}
	return s.interviewRepo.FindInterviewByID(ctx, interviewID)
}

func (s *interviewService) CompleteInterview(ctx context.Context, actor domain.Actor, interviewID string, feedback string) (*domain.Interview, error) {
	return s.transition(ctx, actor, interviewID, domain.ActionComplete, func(iv *domain.Interview, now time.Time) error {
		return iv.Complete(actor, feedback, now)
	})
}

func (s *interviewService) CancelInterview(ctx context.Context, actor domain.Actor, interviewID string, reason string) (*domain.Interview, error) {
	return s.transition(ctx, actor, interviewID, domain.ActionCancel, func(iv *domain.Interview, now time.Time) error {
		return iv.Cancel(actor, reason, now)
	})
}

func (s *interviewService) RescheduleInterview(ctx context.Context, actor domain.Actor, interviewID string, r domain.Reschedule) (*domain.Interview, error) {
	return s.transition(ctx, actor, interviewID, domain.ActionReschedule, func(iv *domain.Interview, now time.Time) error {
		return iv.Move(actor, r, now)
	})
}

func (s *interviewService) transition(ctx context.Context, actor domain.Actor, interviewID string, action domain.Action, apply func(*domain.Interview, time.Time) error) (*domain.Interview, error) {
	if err := s.Authorize(ctx, domain.EntityInterview, action, actor); err != nil {
		return nil, err
	}
	iv, err := s.interviewRepo.FindInterviewByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	from, version, now := iv.Status, iv.Version, s.Now()

	if err := apply(iv, now); err != nil {
		return nil, err
	}
	if err := s.interviewRepo.UpdateInterview(ctx, *iv, version); err != nil {
		s.LogError(ctx, err, "Failed to persist interview transition", slog.String("interview_id", interviewID))
		return nil, err
	}
	iv.Version = version + 1

	s.track(ctx, domain.EntityInterview, interviewID, action, status(from), status(iv.Status), actor, now)
	return iv, nil
}
