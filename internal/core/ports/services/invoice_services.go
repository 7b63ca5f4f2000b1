package services

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/dto"
)

// InvoiceSvcFacade defines the invoice operations used by the handlers.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, actor domain.Actor, status *domain.InvoiceStatus, params portsrepo.ListParams) ([]domain.Invoice, *string, error)
	// TransitionInvoice runs pay or mark_unpaid.
	TransitionInvoice(ctx context.Context, actor domain.Actor, invoiceID string, action domain.Action) (*domain.Invoice, error)
}
