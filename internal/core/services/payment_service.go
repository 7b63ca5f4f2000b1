package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	paymentRepo     portsrepo.PaymentRepositoryFacade
	invoiceRepo     portsrepo.InvoiceReader
	defaultCurrency string
}

// NewPaymentService creates a payment service. defaultCurrency applies to
// payments created without a currency.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, invoiceRepo portsrepo.InvoiceReader, defaultCurrency string, opts ...Option) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService:     newBaseService(opts),
		paymentRepo:     paymentRepo,
		invoiceRepo:     invoiceRepo,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) CreatePayment(ctx context.Context, actor domain.Actor, req dto.CreatePaymentRequest) (*domain.Payment, *domain.PaymentSchedule, error) {
	if err := s.Authorize(ctx, domain.EntityPayment, domain.ActionCreate, actor); err != nil {
		return nil, nil, err
	}

	if req.InvoiceID != nil {
		if _, err := s.invoiceRepo.FindInvoiceByID(ctx, *req.InvoiceID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: invoice %s does not exist", apperrors.ErrValidation, *req.InvoiceID)
			}
			s.LogError(ctx, err, "Failed to load invoice for payment", slog.String("invoice_id", *req.InvoiceID))
			return nil, nil, err
		}
	}

	now := s.Now()
	payment := domain.Payment{
		PaymentID:   s.newID(),
		InvoiceID:   req.InvoiceID,
		ClientName:  strings.TrimSpace(req.ClientName),
		Type:        domain.PaymentType(req.Type),
		Method:      domain.PaymentMethod(req.Method),
		Amount:      req.Amount,
		Currency:    req.Currency,
		PaymentDate: req.PaymentDate.Time,
		DueDate:     dto.DatePtr(req.DueDate),
		Reference:   req.Reference,
		Description: req.Description,
		Status:      domain.PaymentDraft,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}
	if payment.Currency == "" {
		payment.Currency = s.defaultCurrency
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = domain.StartOfDay(now)
	}
	if !payment.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	var schedule *domain.PaymentSchedule
	if payment.Type == domain.PaymentMonthly {
		sc, err := s.scheduleFor(&payment, req, actor)
		if err != nil {
			return nil, nil, err
		}
		schedule = sc
	}

	if err := s.paymentRepo.CreatePayment(ctx, &payment, schedule); err != nil {
		s.LogError(ctx, err, "Failed to create payment", slog.String("payment_id", payment.PaymentID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Payment created",
		slog.String("payment_id", payment.PaymentID),
		slog.String("payment_number", payment.PaymentNumber),
		slog.Bool("with_schedule", schedule != nil))
	return &payment, schedule, nil
}

func (s *paymentService) scheduleFor(p *domain.Payment, req dto.CreatePaymentRequest, actor domain.Actor) (*domain.PaymentSchedule, error) {
	total, freq := 0, 0
	if req.TotalInstallments != nil {
		total = *req.TotalInstallments
	}
	if req.FrequencyMonths != nil {
		freq = *req.FrequencyMonths
	}
	start := p.PaymentDate
	switch {
	case req.ScheduleStartDate != nil && !req.ScheduleStartDate.IsZero():
		start = req.ScheduleStartDate.Time
	case p.DueDate != nil:
		start = *p.DueDate
	}

	sc := domain.ScheduleForPayment(p, total, freq, start)
	sc.ScheduleID = s.newID()
	sc.AuditFields = domain.NewAuditFields(actor.UserID, p.CreatedAt)
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment by ID", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, actor domain.Actor, filter portsrepo.PaymentFilter, params portsrepo.ListParams) ([]domain.Payment, *string, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, nil, err
	}
	payments, next, err := s.paymentRepo.ListPayments(ctx, filter, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, nil, err
	}
	return payments, next, nil
}

func (s *paymentService) TransitionPayment(ctx context.Context, actor domain.Actor, paymentID string, action domain.Action, meta domain.TransitionMeta) (*domain.Payment, error) {
	if err := s.Authorize(ctx, domain.EntityPayment, action, actor); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	from := payment.Status
	version := payment.Version
	now := s.Now()

	if err := applyPaymentAction(payment, action, actor, meta, now); err != nil {
		return nil, err
	}

	invoice, invoiceAction, err := s.cascadeInvoice(ctx, payment, from, action)
	if err != nil {
		return nil, err
	}
	var invoiceVersion int64
	var invoiceFrom domain.InvoiceStatus
	if invoice != nil {
		invoiceVersion = invoice.Version
		invoiceFrom = invoice.Status
		if err := invoice.Apply(invoiceAction, actor, now); err != nil {
			return nil, err
		}
	}

	if err := s.paymentRepo.UpdatePaymentStatus(ctx, *payment, version, invoice, invoiceVersion); err != nil {
		s.LogError(ctx, err, "Failed to persist payment transition",
			slog.String("payment_id", paymentID),
			slog.String("action", string(action)))
		return nil, err
	}
	payment.Version = version + 1

	s.track(ctx, domain.EntityPayment, payment.PaymentID, action, status(from), status(payment.Status), actor, now)
	if invoice != nil {
		invoice.Version = invoiceVersion + 1
		s.track(ctx, domain.EntityInvoice, invoice.InvoiceID, invoiceAction, status(invoiceFrom), status(invoice.Status), actor, now)
	}
	return payment, nil
}

// applyPaymentAction applies action; validate submits a draft first and then approves.
func applyPaymentAction(p *domain.Payment, action domain.Action, actor domain.Actor, meta domain.TransitionMeta, now time.Time) error {
	if action != domain.ActionValidate {
		return p.Apply(action, actor, meta, now)
	}
	original := *p
	if p.Status == domain.PaymentDraft {
		if err := p.Apply(domain.ActionSubmit, actor, meta, now); err != nil {
			return err
		}
	}
	if err := p.Apply(domain.ActionApprove, actor, meta, now); err != nil {
		*p = original
		return err
	}
	return nil
}

// cascadeInvoice returns the linked invoice this transition moves along with
// the invoice action to apply, or nil when nothing cascades. Approving, validating
// or paying settles an unpaid invoice. Rejecting an approved payment reopens the
// invoice only when that approval is what paid it.
func (s *paymentService) cascadeInvoice(ctx context.Context, p *domain.Payment, from domain.PaymentStatus, action domain.Action) (*domain.Invoice, domain.Action, error) {
	var invoiceAction domain.Action
	switch {
	case action == domain.ActionApprove, action == domain.ActionValidate, action == domain.ActionPay:
		invoiceAction = domain.ActionPay
	case action == domain.ActionReject && from == domain.PaymentApproved:
		invoiceAction = domain.ActionReopen
	default:
		return nil, "", nil
	}
	if p.InvoiceID == nil {
		return nil, "", nil
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, *p.InvoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load linked invoice", slog.String("invoice_id", *p.InvoiceID))
		return nil, "", err
	}

	if invoiceAction == domain.ActionReopen {
		if invoice.Status != domain.InvoicePaid || !settledBy(invoice, p) {
			return nil, "", nil
		}
		return invoice, invoiceAction, nil
	}
	if invoice.Status == domain.InvoicePaid {
		return nil, "", nil
	}
	return invoice, invoiceAction, nil
}

// settledBy reports whether the invoice was paid by p's approval. Both
// timestamps are written in one transaction from the same clock reading.
func settledBy(inv *domain.Invoice, p *domain.Payment) bool {
	return inv.PaidAt != nil && p.ApprovedAt != nil && inv.PaidAt.Equal(*p.ApprovedAt)
}
