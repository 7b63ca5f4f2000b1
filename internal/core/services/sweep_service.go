package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
)

// sweepBatchSize bounds the rows loaded per query of a sweep.
const sweepBatchSize = 200

// overdueSweeper applies the time-driven transitions as the system actor.
// Each entity is persisted on its own; a conflict on one row does not stop the run.
type overdueSweeper struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewOverdueSweeper creates the service used by the scheduled overdue job.
func NewOverdueSweeper(paymentRepo portsrepo.PaymentRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, opts ...Option) portssvc.OverdueSweeperSvc {
	return &overdueSweeper{
		BaseService: newBaseService(opts),
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
	}
}

var _ portssvc.OverdueSweeperSvc = (*overdueSweeper)(nil)

func (s *overdueSweeper) MarkOverduePayments(ctx context.Context, now time.Time) (int, error) {
	actor := domain.SystemActor
	if err := s.Authorize(ctx, domain.EntityPayment, domain.ActionMarkOverdue, actor); err != nil {
		return 0, err
	}

	moved := 0
	for {
		batch, err := s.paymentRepo.FindPastDuePayments(ctx, now, sweepBatchSize)
		if err != nil {
			s.LogError(ctx, err, "Failed to load past due payments")
			return moved, err
		}
		progressed := 0
		for i := range batch {
			p := batch[i]
			from, version := p.Status, p.Version
			if err := p.Apply(domain.ActionMarkOverdue, actor, domain.TransitionMeta{}, now); err != nil {
				s.LogDebug(ctx, "Skipping payment", slog.String("payment_id", p.PaymentID), slog.String("reason", err.Error()))
				continue
			}
			if err := s.paymentRepo.UpdatePaymentStatus(ctx, p, version, nil, 0); err != nil {
				if errors.Is(err, apperrors.ErrConflict) {
					s.LogInfo(ctx, "Payment changed during sweep", slog.String("payment_id", p.PaymentID))
					continue
				}
				s.LogError(ctx, err, "Failed to mark payment overdue", slog.String("payment_id", p.PaymentID))
				return moved, err
			}
			s.track(ctx, domain.EntityPayment, p.PaymentID, domain.ActionMarkOverdue, status(from), status(p.Status), actor, now)
			progressed++
		}
		moved += progressed
		if len(batch) < sweepBatchSize || progressed == 0 {
			break
		}
	}

	if moved > 0 {
		s.LogInfo(ctx, "Payments marked overdue", slog.Int("count", moved))
	}
	return moved, nil
}

func (s *overdueSweeper) MarkUnpaidInvoices(ctx context.Context, now time.Time) (int, error) {
	actor := domain.SystemActor
	if err := s.Authorize(ctx, domain.EntityInvoice, domain.ActionMarkUnpaid, actor); err != nil {
		return 0, err
	}

	moved := 0
	for {
		batch, err := s.invoiceRepo.FindPastDueInvoices(ctx, now, sweepBatchSize)
		if err != nil {
			s.LogError(ctx, err, "Failed to load past due invoices")
			return moved, err
		}
		progressed := 0
		for i := range batch {
			inv := batch[i]
			from, version := inv.Status, inv.Version
			if err := inv.Apply(domain.ActionMarkUnpaid, actor, now); err != nil {
				s.LogDebug(ctx, "Skipping invoice", slog.String("invoice_id", inv.InvoiceID), slog.String("reason", err.Error()))
				continue
			}
			if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, inv, version); err != nil {
				if errors.Is(err, apperrors.ErrConflict) {
					s.LogInfo(ctx, "Invoice changed during sweep", slog.String("invoice_id", inv.InvoiceID))
					continue
				}
				s.LogError(ctx, err, "Failed to mark invoice unpaid", slog.String("invoice_id", inv.InvoiceID))
				return moved, err
			}
			s.track(ctx, domain.EntityInvoice, inv.InvoiceID, domain.ActionMarkUnpaid, status(from), status(inv.Status), actor, now)
			progressed++
		}
		moved += progressed
		if len(batch) < sweepBatchSize || progressed == 0 {
			break
		}
	}

	if moved > 0 {
		s.LogInfo(ctx, "Invoices marked unpaid", slog.Int("count", moved))
	}
	return moved, nil
}
