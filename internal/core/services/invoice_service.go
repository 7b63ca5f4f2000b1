package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
)

type invoiceService struct {
	BaseService
	invoiceRepo     portsrepo.InvoiceRepositoryFacade
	defaultCurrency string
}

// NewInvoiceService creates an invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, defaultCurrency string, opts ...Option) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService:     newBaseService(opts),
		invoiceRepo:     invoiceRepo,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, domain.EntityInvoice, domain.ActionCreate, actor); err != nil {
		return nil, err
	}
	if req.IssueDate.IsZero() || req.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: issue date and due date are required", apperrors.ErrValidation)
	}
	if req.DueDate.Before(req.IssueDate.Time) {
		return nil, fmt.Errorf("%w: due date must not be before issue date", apperrors.ErrValidation)
	}

	now := s.Now()
	invoice := domain.Invoice{
		InvoiceID:     s.newID(),
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		ClientName:    strings.TrimSpace(req.ClientName),
		Amount:        req.Amount,
		Currency:      req.Currency,
		IssueDate:     req.IssueDate.Time,
		DueDate:       req.DueDate.Time,
		Status:        domain.InvoicePending,
		Notes:         req.Notes,
		AuditFields:   domain.NewAuditFields(actor.UserID, now),
	}
	if invoice.Currency == "" {
		invoice.Currency = s.defaultCurrency
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_number", invoice.InvoiceNumber))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", invoice.InvoiceID))
	return &invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, actor domain.Actor, st *domain.InvoiceStatus, params portsrepo.ListParams) ([]domain.Invoice, *string, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, nil, err
	}
	return s.invoiceRepo.ListInvoices(ctx, st, params)
}

func (s *invoiceService) TransitionInvoice(ctx context.Context, actor domain.Actor, invoiceID string, action domain.Action) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, domain.EntityInvoice, action, actor); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	from, version, now := invoice.Status, invoice.Version, s.Now()

	if err := invoice.Apply(action, actor, now); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, *invoice, version); err != nil {
		s.LogError(ctx, err, "Failed to persist invoice transition", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	invoice.Version = version + 1

	s.track(ctx, domain.EntityInvoice, invoiceID, action, status(from), status(invoice.Status), actor, now)
	return invoice, nil
}
