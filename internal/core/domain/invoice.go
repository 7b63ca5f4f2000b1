package domain

import (
	"fmt"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceUnpaid  InvoiceStatus = "unpaid"
)

// InvoiceLifecycle is the invoice transition table.
var InvoiceLifecycle = NewMachine[InvoiceStatus](EntityInvoice).
	Allow(ActionPay, InvoicePaid, InvoicePending, InvoiceUnpaid).
	Allow(ActionMarkUnpaid, InvoiceUnpaid, InvoicePending).
	Allow(ActionReopen, InvoicePending, InvoicePaid)

// Invoice is a bill sent to a client.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientName    string          `json:"clientName"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Status        InvoiceStatus   `json:"status"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	Notes         string          `json:"notes"`
	AuditFields
}

// IsPastDue reports whether the due date lies strictly before today.
func (inv *Invoice) IsPastDue(now time.Time) bool {
	return StartOfDay(inv.DueDate).Before(StartOfDay(now))
}

// Apply performs a lifecycle transition. It leaves inv untouched on error.
// Reopen lands on unpaid instead of pending once the due date has passed.
func (inv *Invoice) Apply(action Action, actor Actor, now time.Time) error {
	next, err := InvoiceLifecycle.Next(inv.Status, action)
	if err != nil {
		return err
	}
	switch action {
	case ActionMarkUnpaid:
		if !inv.IsPastDue(now) {
			return fmt.Errorf("%w: invoice %s is not past its due date", apperrors.ErrInvalidTransition, inv.InvoiceID)
		}
	case ActionPay:
		inv.PaidAt = &now
	case ActionReopen:
		inv.PaidAt = nil
		if inv.IsPastDue(now) {
			next = InvoiceUnpaid
		}
	}
	inv.Status = next
	inv.Touch(actor.UserID, now)
	return nil
}
