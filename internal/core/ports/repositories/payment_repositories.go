package repositories

import (
	"context"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// PaymentFilter narrows ListPayments.
type PaymentFilter struct {
	Status    *domain.PaymentStatus
	InvoiceID *string
}

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments returns a page of payments, newest first, and the token of the next page.
	ListPayments(ctx context.Context, filter PaymentFilter, params ListParams) ([]domain.Payment, *string, error)

	// FindPastDuePayments returns unsettled payments whose due date is before asOf.
	FindPastDuePayments(ctx context.Context, asOf time.Time, limit int) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// CreatePayment assigns the daily payment number and inserts the payment.
	// A non-nil schedule is inserted in the same transaction.
	CreatePayment(ctx context.Context, payment *domain.Payment, schedule *domain.PaymentSchedule) error

	// UpdatePaymentStatus persists a transitioned payment if its stored version still equals
	// expectedVersion. A non-nil invoice is persisted in the same transaction under the same
	// version rule; any failure rolls both back.
	UpdatePaymentStatus(ctx context.Context, payment domain.Payment, expectedVersion int64, invoice *domain.Invoice, invoiceExpectedVersion int64) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
