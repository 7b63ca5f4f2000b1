package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	PaymentNumber string          `db:"payment_number"`
	InvoiceID     *string         `db:"invoice_id"` // Nullable
	ClientName    string          `db:"client_name"`
	PaymentType   string          `db:"payment_type"`
	Method        string          `db:"method"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	PaymentDate   time.Time       `db:"payment_date"`
	DueDate       *time.Time      `db:"due_date"`
	Reference     string          `db:"reference"`
	Description   string          `db:"description"`
	Status        string          `db:"status"`

	SubmittedAt       *time.Time `db:"submitted_at"`
	ApprovedAt        *time.Time `db:"approved_at"`
	ValidatedBy       *string    `db:"validated_by"`
	ValidationComment string     `db:"validation_comment"`
	RejectedAt        *time.Time `db:"rejected_at"`
	RejectedBy        *string    `db:"rejected_by"`
	RejectionReason   string     `db:"rejection_reason"`
	RejectionComment  string     `db:"rejection_comment"`
	PaidAt            *time.Time `db:"paid_at"`

	AuditFields
}
