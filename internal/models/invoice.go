package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	InvoiceNumber string          `db:"invoice_number"`
	ClientName    string          `db:"client_name"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	IssueDate     time.Time       `db:"issue_date"`
	DueDate       time.Time       `db:"due_date"`
	Status        string          `db:"status"`
	PaidAt        *time.Time      `db:"paid_at"`
	Notes         string          `db:"notes"`
	AuditFields
}
