package services

import (
	"context"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment by its unique identifier.
	GetPaymentByID(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a page of payments and the token of the next page.
	ListPayments(ctx context.Context, actor domain.Actor, filter portsrepo.PaymentFilter, params portsrepo.ListParams) ([]domain.Payment, *string, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// CreatePayment persists a new draft payment. Monthly payments get their
	// schedule in the same transaction; it is returned alongside.
	CreatePayment(ctx context.Context, actor domain.Actor, req dto.CreatePaymentRequest) (*domain.Payment, *domain.PaymentSchedule, error)

	// TransitionPayment runs submit, approve, validate, reject, pay, reactivate or mark_overdue.
	// Approve, validate and pay cascade the linked invoice to paid.
	TransitionPayment(ctx context.Context, actor domain.Actor, paymentID string, action domain.Action, meta domain.TransitionMeta) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}

// OverdueSweeperSvc moves past-due entities to their overdue state.
type OverdueSweeperSvc interface {
	// MarkOverduePayments returns the number of payments moved to overdue.
	MarkOverduePayments(ctx context.Context, now time.Time) (int, error)
	// MarkUnpaidInvoices returns the number of invoices moved to unpaid.
	MarkUnpaidInvoices(ctx context.Context, now time.Time) (int, error)
}
