package services

import (
	"context"
	"fmt"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
)

// lifecycleService routes generic transitions to the service owning the entity.
type lifecycleService struct {
	payments    portssvc.PaymentWriterSvc
	invoices    portssvc.InvoiceSvcFacade
	bordereaux  portssvc.BordereauWriterSvc
	attendances portssvc.AttendanceSvcFacade
	interviews  portssvc.InterviewSvcFacade
	schedules   portssvc.ScheduleWriterSvc
}

// NewLifecycleService creates the transition dispatcher over the entity services.
func NewLifecycleService(c *portssvc.ServiceContainer) portssvc.LifecycleSvc {
	return &lifecycleService{
		payments:    c.Payment,
		invoices:    c.Invoice,
		bordereaux:  c.Bordereau,
		attendances: c.Attendance,
		interviews:  c.Interview,
		schedules:   c.Schedule,
	}
}

var _ portssvc.LifecycleSvc = (*lifecycleService)(nil)

func (s *lifecycleService) Transition(ctx context.Context, entity domain.EntityType, id string, action domain.Action, actor domain.Actor, meta domain.TransitionMeta) (any, error) {
	switch entity {
	case domain.EntityPayment:
		return s.payments.TransitionPayment(ctx, actor, id, action, meta)
	case domain.EntityInvoice:
		return s.invoices.TransitionInvoice(ctx, actor, id, action)
	case domain.EntityBordereau:
		return s.bordereaux.TransitionBordereau(ctx, actor, id, action, meta)
	case domain.EntityAttendance:
		return s.attendances.TransitionAttendance(ctx, actor, id, action, meta)
	case domain.EntityInterview:
		switch action {
		case domain.ActionComplete:
			return s.interviews.CompleteInterview(ctx, actor, id, meta.Comment)
		case domain.ActionCancel:
			return s.interviews.CancelInterview(ctx, actor, id, meta.Reason)
		case domain.ActionReschedule:
			return nil, fmt.Errorf("%w: rescheduling needs a new date and time; use POST /interviews/%s/reschedule", apperrors.ErrValidation, id)
		}
	case domain.EntitySchedule:
		switch action {
		case domain.ActionGenerate:
			sc, installments, err := s.schedules.GenerateInstallments(ctx, actor, id)
			if err != nil {
				return nil, err
			}
			return map[string]any{"schedule": sc, "installments": installments}, nil
		default:
			return s.schedules.TransitionSchedule(ctx, actor, id, action)
		}
	case domain.EntityInstallment:
		if action == domain.ActionPay {
			sc, inst, err := s.schedules.MarkInstallmentPaid(ctx, actor, id, meta.Comment)
			if err != nil {
				return nil, err
			}
			return map[string]any{"schedule": sc, "installment": inst}, nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, entity)
	}
	return nil, fmt.Errorf("%w: %s is not available for %s through the generic endpoint", apperrors.ErrInvalidTransition, action, entity)
}
