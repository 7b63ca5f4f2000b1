package dto

import (
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the body for creating an invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber" binding:"required,max=50"`
	ClientName    string          `json:"clientName" binding:"required,max=255"`
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Currency      string          `json:"currency" binding:"omitempty,max=10"`
	IssueDate     Date            `json:"issueDate"`
	DueDate       Date            `json:"dueDate"`
	Notes         string          `json:"notes" binding:"max=1000"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	InvoiceNumber string               `json:"invoiceNumber"`
	ClientName    string               `json:"clientName"`
	Amount        decimal.Decimal      `json:"amount"`
	Currency      string               `json:"currency"`
	IssueDate     Date                 `json:"issueDate"`
	DueDate       Date                 `json:"dueDate"`
	Status        domain.InvoiceStatus `json:"status"`
	PaidAt        *time.Time           `json:"paidAt,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Version       int64                `json:"version"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		Amount:        inv.Amount,
		Currency:      inv.Currency,
		IssueDate:     Date{inv.IssueDate},
		DueDate:       Date{inv.DueDate},
		Status:        inv.Status,
		PaidAt:        inv.PaidAt,
		Notes:         inv.Notes,
		Version:       inv.Version,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice to []InvoiceResponse.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}
