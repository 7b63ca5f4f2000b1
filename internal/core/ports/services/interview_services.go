package services

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/dto"
)

// InterviewSvcFacade defines the recruitment interview operations.
type InterviewSvcFacade interface {
	ScheduleInterview(ctx context.Context, actor domain.Actor, req dto.CreateInterviewRequest) (*domain.Interview, error)
	GetInterviewByID(ctx context.Context, actor domain.Actor, interviewID string) (*domain.Interview, error)
	CompleteInterview(ctx context.Context, actor domain.Actor, interviewID string, feedback string) (*domain.Interview, error)
	CancelInterview(ctx context.Context, actor domain.Actor, interviewID string, reason string) (*domain.Interview, error)
	RescheduleInterview(ctx context.Context, actor domain.Actor, interviewID string, r domain.Reschedule) (*domain.Interview, error)
}
