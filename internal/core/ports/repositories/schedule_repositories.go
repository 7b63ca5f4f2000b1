package repositories

import (
	"context"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// InstallmentPayer applies an installment payment to a locked schedule and its installments.
type InstallmentPayer func(schedule *domain.PaymentSchedule, installments []domain.Installment) (*domain.Installment, error)

// ScheduleReader defines read operations for payment schedules and installments
type ScheduleReader interface {
	FindScheduleByID(ctx context.Context, scheduleID string) (*domain.PaymentSchedule, error)
	FindInstallmentsBySchedule(ctx context.Context, scheduleID string) ([]domain.Installment, error)
	FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)
	ListSchedules(ctx context.Context, status *domain.ScheduleStatus, params ListParams) ([]domain.PaymentSchedule, *string, error)
	GetScheduleStats(ctx context.Context) (*domain.ScheduleStats, error)
	// ListPendingInstallmentsDue returns pending installments of running schedules due in [from, to).
	ListPendingInstallmentsDue(ctx context.Context, from, to time.Time) ([]domain.Installment, error)
}

// ScheduleWriter defines write operations for payment schedules and installments
type ScheduleWriter interface {
	SaveSchedule(ctx context.Context, schedule domain.PaymentSchedule) error

	// SaveGeneratedInstallments inserts the installments and flags the schedule as generated
	// in one transaction. It fails with apperrors.ErrAlreadyGenerated when the stored
	// schedule already has installments.
	SaveGeneratedInstallments(ctx context.Context, schedule domain.PaymentSchedule, expectedVersion int64, installments []domain.Installment) error

	// UpdateScheduleStatus persists pause/resume/cancel guarded by expectedVersion.
	UpdateScheduleStatus(ctx context.Context, schedule domain.PaymentSchedule, expectedVersion int64) error

	// PayInstallment locks the schedule owning installmentID with its installments,
	// runs pay and persists the result atomically.
	PayInstallment(ctx context.Context, installmentID string, pay InstallmentPayer) (*domain.PaymentSchedule, *domain.Installment, error)

	// DeleteSchedule removes the schedule; installments cascade.
	DeleteSchedule(ctx context.Context, scheduleID string) error
}

// ScheduleRepositoryFacade combines all schedule-related repository interfaces
type ScheduleRepositoryFacade interface {
	ScheduleReader
	ScheduleWriter
}
