package repositories

import (
	"context"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, status *domain.InvoiceStatus, params ListParams) ([]domain.Invoice, *string, error)
	// FindPastDueInvoices returns pending invoices whose due date is before asOf.
	FindPastDueInvoices(ctx context.Context, asOf time.Time, limit int) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	// UpdateInvoiceStatus persists a transitioned invoice guarded by expectedVersion.
	UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
