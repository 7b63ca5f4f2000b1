package dto

import (
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest is the body for creating a payment.
// Monthly payments may tune the schedule created alongside them.
type CreatePaymentRequest struct {
	InvoiceID   *string         `json:"invoiceID" binding:"omitempty,uuid"`
	ClientName  string          `json:"clientName" binding:"required,max=255"`
	Type        string          `json:"type" binding:"required,oneof=one_time monthly"`
	Method      string          `json:"method" binding:"required,oneof=bank_transfer check cash card direct_debit"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Currency    string          `json:"currency" binding:"omitempty,max=10"`
	PaymentDate Date            `json:"paymentDate"`
	DueDate     *Date           `json:"dueDate"`
	Reference   string          `json:"reference" binding:"max=100"`
	Description string          `json:"description" binding:"max=1000"`

	TotalInstallments *int  `json:"totalInstallments" binding:"omitempty,min=1,max=360"`
	FrequencyMonths   *int  `json:"frequencyMonths" binding:"omitempty,min=1,max=12"`
	ScheduleStartDate *Date `json:"scheduleStartDate"`
}

// ValidatePaymentRequest is the body of the one-step validation endpoint.
type ValidatePaymentRequest struct {
	Comment string `json:"comment" binding:"max=1000"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID         string               `json:"paymentID"`
	PaymentNumber     string               `json:"paymentNumber"`
	InvoiceID         *string              `json:"invoiceID,omitempty"`
	ClientName        string               `json:"clientName"`
	Type              domain.PaymentType   `json:"type"`
	Method            domain.PaymentMethod `json:"method"`
	Amount            decimal.Decimal      `json:"amount"`
	Currency          string               `json:"currency"`
	PaymentDate       Date                 `json:"paymentDate"`
	DueDate           *time.Time           `json:"dueDate,omitempty"`
	Reference         string               `json:"reference,omitempty"`
	Description       string               `json:"description,omitempty"`
	Status            domain.PaymentStatus `json:"status"`
	SubmittedAt       *time.Time           `json:"submittedAt,omitempty"`
	ApprovedAt        *time.Time           `json:"approvedAt,omitempty"`
	ValidatedBy       *string              `json:"validatedBy,omitempty"`
	ValidationComment string               `json:"validationComment,omitempty"`
	RejectedAt        *time.Time           `json:"rejectedAt,omitempty"`
	RejectedBy        *string              `json:"rejectedBy,omitempty"`
	RejectionReason   string               `json:"rejectionReason,omitempty"`
	RejectionComment  string               `json:"rejectionComment,omitempty"`
	PaidAt            *time.Time           `json:"paidAt,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	CreatedBy         string               `json:"createdBy"`
	Version           int64                `json:"version"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:         p.PaymentID,
		PaymentNumber:     p.PaymentNumber,
		InvoiceID:         p.InvoiceID,
		ClientName:        p.ClientName,
		Type:              p.Type,
		Method:            p.Method,
		Amount:            p.Amount,
		Currency:          p.Currency,
		PaymentDate:       Date{p.PaymentDate},
		DueDate:           p.DueDate,
		Reference:         p.Reference,
		Description:       p.Description,
		Status:            p.Status,
		SubmittedAt:       p.SubmittedAt,
		ApprovedAt:        p.ApprovedAt,
		ValidatedBy:       p.ValidatedBy,
		ValidationComment: p.ValidationComment,
		RejectedAt:        p.RejectedAt,
		RejectedBy:        p.RejectedBy,
		RejectionReason:   p.RejectionReason,
		RejectionComment:  p.RejectionComment,
		PaidAt:            p.PaidAt,
		CreatedAt:         p.CreatedAt,
		CreatedBy:         p.CreatedBy,
		Version:           p.Version,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to []PaymentResponse.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out
}

// PaymentListParams are the query parameters of the payment list.
type PaymentListParams struct {
	ListParams
	InvoiceID string `form:"invoiceID"`
}

// CreatePaymentResponse returns the new payment and, for monthly payments, its schedule.
type CreatePaymentResponse struct {
	Payment  PaymentResponse   `json:"payment"`
	Schedule *ScheduleResponse `json:"schedule,omitempty"`
}
