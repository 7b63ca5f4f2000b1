package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentSchedule is a row of the payment_schedules table.
type PaymentSchedule struct {
	ScheduleID            string          `db:"schedule_id"`
	PaymentID             *string         `db:"payment_id"`
	StartDate             time.Time       `db:"start_date"`
	EndDate               time.Time       `db:"end_date"`
	Frequency             int             `db:"frequency"`
	TotalInstallments     int             `db:"total_installments"`
	InstallmentAmount     decimal.Decimal `db:"installment_amount"`
	PaidInstallments      int             `db:"paid_installments"`
	NextPaymentDate       *time.Time      `db:"next_payment_date"`
	Status                string          `db:"status"`
	Description           string          `db:"description"`
	InstallmentsGenerated bool            `db:"installments_generated"`
	AuditFields
}

// Installment is a row of the installments table.
type Installment struct {
	InstallmentID  string          `db:"installment_id"`
	ScheduleID     string          `db:"schedule_id"`
	SequenceNumber int             `db:"sequence_number"`
	DueDate        time.Time       `db:"due_date"`
	Amount         decimal.Decimal `db:"amount"`
	Status         string          `db:"status"`
	PaidAt         *time.Time      `db:"paid_at"`
	PaidBy         *string         `db:"paid_by"`
	Notes          string          `db:"notes"`
	AuditFields
}
