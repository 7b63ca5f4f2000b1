package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentDraft     PaymentStatus = "draft"
	PaymentSubmitted PaymentStatus = "submitted"
	PaymentApproved  PaymentStatus = "approved"
	PaymentRejected  PaymentStatus = "rejected"
	PaymentPaid      PaymentStatus = "paid"
	PaymentOverdue   PaymentStatus = "overdue"
)

// PaymentType distinguishes one-off payments from ones settled through a schedule.
type PaymentType string

const (
	PaymentOneTime PaymentType = "one_time"
	PaymentMonthly PaymentType = "monthly"
)

// PaymentMethod is how the money moves.
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodDirectDebit  PaymentMethod = "direct_debit"
)

// PaymentLifecycle is the payment transition table.
var PaymentLifecycle = NewMachine[PaymentStatus](EntityPayment).
	Allow(ActionSubmit, PaymentSubmitted, PaymentDraft).
	Allow(ActionApprove, PaymentApproved, PaymentSubmitted).
	Allow(ActionReject, PaymentRejected, PaymentSubmitted, PaymentApproved).
	Allow(ActionPay, PaymentPaid, PaymentApproved, PaymentOverdue).
	Allow(ActionMarkOverdue, PaymentOverdue, PaymentSubmitted, PaymentApproved).
	Allow(ActionReactivate, PaymentDraft, PaymentRejected)

// Payment is money owed or received, optionally settling an invoice.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	PaymentNumber string          `json:"paymentNumber"`
	InvoiceID     *string         `json:"invoiceID,omitempty"`
	ClientName    string          `json:"clientName"`
	Type          PaymentType     `json:"type"`
	Method        PaymentMethod   `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentDate   time.Time       `json:"paymentDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
	Status        PaymentStatus   `json:"status"`

	SubmittedAt       *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	ValidatedBy       *string    `json:"validatedBy,omitempty"`
	ValidationComment string     `json:"validationComment,omitempty"`
	RejectedAt        *time.Time `json:"rejectedAt,omitempty"`
	RejectedBy        *string    `json:"rejectedBy,omitempty"`
	RejectionReason   string     `json:"rejectionReason,omitempty"`
	RejectionComment  string     `json:"rejectionComment,omitempty"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`

	AuditFields
}

// IsPastDue reports whether the due date lies strictly before today.
func (p *Payment) IsPastDue(now time.Time) bool {
	return p.DueDate != nil && StartOfDay(*p.DueDate).Before(StartOfDay(now))
}

// Apply performs a lifecycle transition. It leaves p untouched on error.
func (p *Payment) Apply(action Action, actor Actor, meta TransitionMeta, now time.Time) error {
	next, err := PaymentLifecycle.Next(p.Status, action)
	if err != nil {
		return err
	}

	switch action {
	case ActionReject:
		if strings.TrimSpace(meta.Reason) == "" {
			return fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
		}
	case ActionMarkOverdue:
		if !p.IsPastDue(now) {
			return fmt.Errorf("%w: payment %s is not past its due date", apperrors.ErrInvalidTransition, p.PaymentID)
		}
	}

	switch action {
	case ActionSubmit:
		p.SubmittedAt = &now
	case ActionApprove:
		p.ApprovedAt = &now
		p.ValidatedBy = &actor.UserID
		p.ValidationComment = meta.Comment
	case ActionReject:
		p.RejectedAt = &now
		p.RejectedBy = &actor.UserID
		p.RejectionReason = meta.Reason
		p.RejectionComment = meta.Comment
	case ActionPay:
		p.PaidAt = &now
	case ActionReactivate:
		p.RejectedAt = nil
		p.RejectedBy = nil
		p.RejectionReason = ""
		p.RejectionComment = ""
		p.SubmittedAt = nil
		p.ApprovedAt = nil
		p.ValidatedBy = nil
		p.ValidationComment = ""
	}

	p.Status = next
	p.Touch(actor.UserID, now)
	return nil
}

// FormatPaymentNumber renders the public payment number for a day and its sequence.
func FormatPaymentNumber(day time.Time, seq int) string {
	return fmt.Sprintf("PAY%s%04d", day.Format("20060102"), seq)
}
