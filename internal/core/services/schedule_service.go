package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/shopspring/decimal"
)

// DefaultUpcomingDays is the look-ahead of UpcomingInstallments when days is not positive.
const DefaultUpcomingDays = 7

// scheduleService implements the installment scheduler.
type scheduleService struct {
	BaseService
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	paymentRepo  portsrepo.PaymentReader
}

// NewScheduleService creates the payment schedule service. paymentRepo resolves
// the payment total that generated installments reconcile to.
func NewScheduleService(scheduleRepo portsrepo.ScheduleRepositoryFacade, paymentRepo portsrepo.PaymentReader, opts ...Option) portssvc.ScheduleSvcFacade {
	return &scheduleService{
		BaseService:  newBaseService(opts),
		scheduleRepo: scheduleRepo,
		paymentRepo:  paymentRepo,
	}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

func (s *scheduleService) CreateSchedule(ctx context.Context, actor domain.Actor, req dto.CreateScheduleRequest) (*domain.PaymentSchedule, error) {
	if err := s.Authorize(ctx, domain.EntitySchedule, domain.ActionCreate, actor); err != nil {
		return nil, err
	}
	if req.PaymentID != nil {
		if _, err := s.paymentRepo.FindPaymentByID(ctx, *req.PaymentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: payment %s does not exist", apperrors.ErrValidation, *req.PaymentID)
			}
			return nil, err
		}
	}

	sc := domain.PaymentSchedule{
		ScheduleID:        s.newID(),
		PaymentID:         req.PaymentID,
		StartDate:         req.StartDate.Time,
		EndDate:           req.EndDate.Time,
		Frequency:         req.Frequency,
		TotalInstallments: req.TotalInstallments,
		InstallmentAmount: req.InstallmentAmount,
		Status:            domain.ScheduleActive,
		Description:       req.Description,
		AuditFields:       domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if sc.EndDate.IsZero() {
		sc.EndDate = sc.DueDate(sc.TotalInstallments)
	}

	if err := s.scheduleRepo.SaveSchedule(ctx, sc); err != nil {
		s.LogError(ctx, err, "Failed to save payment schedule", slog.String("schedule_id", sc.ScheduleID))
		return nil, err
	}
	s.LogInfo(ctx, "Payment schedule created", slog.String("schedule_id", sc.ScheduleID))
	return &sc, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, actor domain.Actor, scheduleID string) (*domain.PaymentSchedule, []domain.Installment, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, nil, err
	}
	sc, err := s.scheduleRepo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}
	installments, err := s.scheduleRepo.FindInstallmentsBySchedule(ctx, scheduleID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load installments", slog.String("schedule_id", scheduleID))
		return nil, nil, err
	}
	return sc, installments, nil
}

func (s *scheduleService) ListSchedules(ctx context.Context, actor domain.Actor, st *domain.ScheduleStatus, params portsrepo.ListParams) ([]domain.PaymentSchedule, *string, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, nil, err
	}
	return s.scheduleRepo.ListSchedules(ctx, st, params)
}

func (s *scheduleService) GetScheduleStats(ctx context.Context, actor domain.Actor) (*domain.ScheduleStats, error) {
	if err := s.Authorize(ctx, domain.EntitySchedule, domain.ActionViewStats, actor); err != nil {
		return nil, err
	}
	return s.scheduleRepo.GetScheduleStats(ctx)
}

func (s *scheduleService) UpcomingInstallments(ctx context.Context, actor domain.Actor, days int) ([]domain.Installment, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	from := domain.StartOfDay(s.Now())
	return s.scheduleRepo.ListPendingInstallmentsDue(ctx, from, from.AddDate(0, 0, days+1))
}

func (s *scheduleService) OverdueInstallments(ctx context.Context, actor domain.Actor) ([]domain.Installment, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	return s.scheduleRepo.ListPendingInstallmentsDue(ctx, time.Time{}, domain.StartOfDay(s.Now()))
}

func (s *scheduleService) GenerateInstallments(ctx context.Context, actor domain.Actor, scheduleID string) (*domain.PaymentSchedule, []domain.Installment, error) {
	if err := s.Authorize(ctx, domain.EntitySchedule, domain.ActionGenerate, actor); err != nil {
		return nil, nil, err
	}
	sc, err := s.scheduleRepo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}
	if sc.Status == domain.ScheduleCancelled || sc.Status == domain.ScheduleCompleted {
		return nil, nil, fmt.Errorf("%w: schedule %s is %s", apperrors.ErrInvalidState, scheduleID, sc.Status)
	}

	var reconcileTo *decimal.Decimal
	if sc.PaymentID != nil {
		payment, err := s.paymentRepo.FindPaymentByID(ctx, *sc.PaymentID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load payment of schedule", slog.String("payment_id", *sc.PaymentID))
			return nil, nil, err
		}
		reconcileTo = &payment.Amount
	}

	now := s.Now()
	installments, err := domain.GenerateInstallments(sc, reconcileTo, actor, now, s.newID)
	if err != nil {
		return nil, nil, err
	}
	version := sc.Version
	sc.MarkGenerated(installments, actor, now)

	if err := s.scheduleRepo.SaveGeneratedInstallments(ctx, *sc, version, installments); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyGenerated) {
			s.LogError(ctx, err, "Failed to save installments", slog.String("schedule_id", scheduleID))
		}
		return nil, nil, err
	}
	sc.Version = version + 1

	s.LogInfo(ctx, "Installments generated",
		slog.String("schedule_id", scheduleID),
		slog.Int("count", len(installments)))
	return sc, installments, nil
}

func (s *scheduleService) MarkInstallmentPaid(ctx context.Context, actor domain.Actor, installmentID string, notes string) (*domain.PaymentSchedule, *domain.Installment, error) {
	if err := s.Authorize(ctx, domain.EntityInstallment, domain.ActionPay, actor); err != nil {
		return nil, nil, err
	}

	now := s.Now()
	var scheduleFrom domain.ScheduleStatus
	sc, paid, err := s.scheduleRepo.PayInstallment(ctx, installmentID, func(locked *domain.PaymentSchedule, installments []domain.Installment) (*domain.Installment, error) {
		scheduleFrom = locked.Status
		return locked.PayInstallment(installments, installmentID, actor, notes, now)
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to pay installment", slog.String("installment_id", installmentID))
		}
		return nil, nil, err
	}

	s.track(ctx, domain.EntityInstallment, installmentID, domain.ActionPay, status(domain.InstallmentPending), status(paid.Status), actor, now)
	if sc.Status != scheduleFrom {
		s.track(ctx, domain.EntitySchedule, sc.ScheduleID, domain.ActionPay, status(scheduleFrom), status(sc.Status), actor, now)
	}
	return sc, paid, nil
}

func (s *scheduleService) TransitionSchedule(ctx context.Context, actor domain.Actor, scheduleID string, action domain.Action) (*domain.PaymentSchedule, error) {
	if err := s.Authorize(ctx, domain.EntitySchedule, action, actor); err != nil {
		return nil, err
	}
	sc, err := s.scheduleRepo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	from, version, now := sc.Status, sc.Version, s.Now()

	if err := sc.Apply(action, actor, now); err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.UpdateScheduleStatus(ctx, *sc, version); err != nil {
		s.LogError(ctx, err, "Failed to persist schedule transition", slog.String("schedule_id", scheduleID))
		return nil, err
	}
	sc.Version = version + 1

	s.track(ctx, domain.EntitySchedule, scheduleID, action, status(from), status(sc.Status), actor, now)
	return sc, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, actor domain.Actor, scheduleID string) error {
	if err := s.Authorize(ctx, domain.EntitySchedule, domain.ActionDelete, actor); err != nil {
		return err
	}
	if err := s.scheduleRepo.DeleteSchedule(ctx, scheduleID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete schedule", slog.String("schedule_id", scheduleID))
		}
		return err
	}
	s.LogInfo(ctx, "Payment schedule deleted", slog.String("schedule_id", scheduleID))
	return nil
}

// isClientError reports whether err is caused by the request rather than the system.
func isClientError(err error) bool {
	for _, target := range []error{
		apperrors.ErrNotFound, apperrors.ErrValidation, apperrors.ErrInvalidState,
		apperrors.ErrInvalidTransition, apperrors.ErrConflict, apperrors.ErrAlreadyGenerated,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
