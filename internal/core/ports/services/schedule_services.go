package services

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/dto"
)

// ScheduleReaderSvc defines read operations for schedules and installments
type ScheduleReaderSvc interface {
	// GetSchedule returns the schedule with its installments ordered by sequence.
	GetSchedule(ctx context.Context, actor domain.Actor, scheduleID string) (*domain.PaymentSchedule, []domain.Installment, error)
	ListSchedules(ctx context.Context, actor domain.Actor, status *domain.ScheduleStatus, params portsrepo.ListParams) ([]domain.PaymentSchedule, *string, error)
	GetScheduleStats(ctx context.Context, actor domain.Actor) (*domain.ScheduleStats, error)
	// UpcomingInstallments lists pending installments due within the next days days.
	UpcomingInstallments(ctx context.Context, actor domain.Actor, days int) ([]domain.Installment, error)
	// OverdueInstallments lists pending installments whose due date has passed.
	OverdueInstallments(ctx context.Context, actor domain.Actor) ([]domain.Installment, error)
}

// ScheduleWriterSvc defines write operations for schedules and installments
type ScheduleWriterSvc interface {
	CreateSchedule(ctx context.Context, actor domain.Actor, req dto.CreateScheduleRequest) (*domain.PaymentSchedule, error)
	// GenerateInstallments materializes the schedule once; later calls fail with ErrAlreadyGenerated.
	GenerateInstallments(ctx context.Context, actor domain.Actor, scheduleID string) (*domain.PaymentSchedule, []domain.Installment, error)
	// MarkInstallmentPaid pays one installment and rolls the result up into its schedule.
	MarkInstallmentPaid(ctx context.Context, actor domain.Actor, installmentID string, notes string) (*domain.PaymentSchedule, *domain.Installment, error)
	// TransitionSchedule runs pause, resume or cancel.
	TransitionSchedule(ctx context.Context, actor domain.Actor, scheduleID string, action domain.Action) (*domain.PaymentSchedule, error)
	DeleteSchedule(ctx context.Context, actor domain.Actor, scheduleID string) error
}

// ScheduleSvcFacade combines all schedule-related service interfaces
type ScheduleSvcFacade interface {
	ScheduleReaderSvc
	ScheduleWriterSvc
}
