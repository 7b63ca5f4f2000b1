package domain

import (
	"fmt"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ScheduleStatus is the aggregate state of a payment schedule.
type ScheduleStatus string

const (
	ScheduleActive    ScheduleStatus = "active"
	SchedulePaused    ScheduleStatus = "paused"
	ScheduleCompleted ScheduleStatus = "completed"
	ScheduleCancelled ScheduleStatus = "cancelled"
)

// InstallmentStatus is the state of one installment. Overdue is never stored;
// it is derived from a pending installment whose due date has passed.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

// ScheduleLifecycle is the transition table for the manual schedule actions.
// Completion happens only through installment payments.
var ScheduleLifecycle = NewMachine[ScheduleStatus](EntitySchedule).
	Allow(ActionPause, SchedulePaused, ScheduleActive).
	Allow(ActionResume, ScheduleActive, SchedulePaused).
	Allow(ActionCancel, ScheduleCancelled, ScheduleActive, SchedulePaused)

// Defaults for a schedule derived from a monthly payment.
const (
	DefaultTotalInstallments = 12
	DefaultFrequencyMonths   = 1
)

// PaymentSchedule spreads a payment over installments due every Frequency months.
type PaymentSchedule struct {
	ScheduleID            string          `json:"scheduleID"`
	PaymentID             *string         `json:"paymentID,omitempty"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               time.Time       `json:"endDate"`
	Frequency             int             `json:"frequency"`
	TotalInstallments     int             `json:"totalInstallments"`
	InstallmentAmount     decimal.Decimal `json:"installmentAmount"`
	PaidInstallments      int             `json:"paidInstallments"`
	NextPaymentDate       *time.Time      `json:"nextPaymentDate,omitempty"`
	Status                ScheduleStatus  `json:"status"`
	Description           string          `json:"description"`
	InstallmentsGenerated bool            `json:"installmentsGenerated"`
	AuditFields
}

// Installment is one scheduled partial payment.
type Installment struct {
	InstallmentID  string            `json:"installmentID"`
	ScheduleID     string            `json:"scheduleID"`
	SequenceNumber int               `json:"sequenceNumber"`
	DueDate        time.Time         `json:"dueDate"`
	Amount         decimal.Decimal   `json:"amount"`
	Status         InstallmentStatus `json:"status"`
	PaidAt         *time.Time        `json:"paidAt,omitempty"`
	PaidBy         *string           `json:"paidBy,omitempty"`
	Notes          string            `json:"notes"`
	AuditFields
}

// IsOverdue reports whether the installment is pending past its due date.
func (i *Installment) IsOverdue(now time.Time) bool {
	return i.Status == InstallmentPending && StartOfDay(i.DueDate).Before(StartOfDay(now))
}

// EffectiveStatus is the stored status with overdue derived at now.
func (i *Installment) EffectiveStatus(now time.Time) InstallmentStatus {
	if i.IsOverdue(now) {
		return InstallmentOverdue
	}
	return i.Status
}

// DaysUntilDue is negative once the due date has passed.
func (i *Installment) DaysUntilDue(now time.Time) int {
	return int(StartOfDay(i.DueDate).Sub(StartOfDay(now)).Hours() / 24)
}

// AddMonths adds n calendar months to t, clamping the day to the target month's length.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// Validate checks the generation inputs of the schedule.
func (s *PaymentSchedule) Validate() error {
	switch {
	case s.StartDate.IsZero():
		return fmt.Errorf("%w: start date is required", apperrors.ErrValidation)
	case !s.EndDate.IsZero() && s.EndDate.Before(s.StartDate):
		return fmt.Errorf("%w: start date must not be after end date", apperrors.ErrValidation)
	case s.Frequency < 1:
		return fmt.Errorf("%w: frequency must be at least 1", apperrors.ErrValidation)
	case s.TotalInstallments < 1:
		return fmt.Errorf("%w: total installments must be at least 1", apperrors.ErrValidation)
	case !s.InstallmentAmount.IsPositive():
		return fmt.Errorf("%w: installment amount must be greater than zero", apperrors.ErrValidation)
	case !s.EndDate.IsZero() && StartOfDay(s.EndDate).Before(StartOfDay(s.DueDate(s.TotalInstallments))):
		return fmt.Errorf("%w: end date %s is before the last installment falls due on %s", apperrors.ErrValidation,
			s.EndDate.Format(time.DateOnly), s.DueDate(s.TotalInstallments).Format(time.DateOnly))
	}
	return nil
}

// DueDate returns the due date of the 1-based installment seq.
func (s *PaymentSchedule) DueDate(seq int) time.Time {
	return AddMonths(s.StartDate, (seq-1)*s.Frequency)
}

// GenerateInstallments materializes the schedule into TotalInstallments pending installments.
// When reconcileTo is set, the final installment absorbs the difference between
// reconcileTo and InstallmentAmount × TotalInstallments.
func GenerateInstallments(s *PaymentSchedule, reconcileTo *decimal.Decimal, actor Actor, now time.Time, newID func() string) ([]Installment, error) {
	if s.InstallmentsGenerated {
		return nil, fmt.Errorf("%w: schedule %s", apperrors.ErrAlreadyGenerated, s.ScheduleID)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	last := s.InstallmentAmount
	if reconcileTo != nil {
		others := s.InstallmentAmount.Mul(decimal.NewFromInt(int64(s.TotalInstallments - 1)))
		last = reconcileTo.Sub(others)
		if !last.IsPositive() {
			return nil, fmt.Errorf("%w: installments of %s exceed the payment total %s", apperrors.ErrValidation, s.InstallmentAmount, reconcileTo)
		}
	}

	out := make([]Installment, 0, s.TotalInstallments)
	for seq := 1; seq <= s.TotalInstallments; seq++ {
		amount := s.InstallmentAmount
		if seq == s.TotalInstallments {
			amount = last
		}
		out = append(out, Installment{
			InstallmentID:  newID(),
			ScheduleID:     s.ScheduleID,
			SequenceNumber: seq,
			DueDate:        s.DueDate(seq),
			Amount:         amount,
			Status:         InstallmentPending,
			AuditFields:    NewAuditFields(actor.UserID, now),
		})
	}
	return out, nil
}

// MarkGenerated records that installments exist and points NextPaymentDate at the first one.
func (s *PaymentSchedule) MarkGenerated(installments []Installment, actor Actor, now time.Time) {
	s.InstallmentsGenerated = true
	s.refreshNextPaymentDate(installments)
	s.Touch(actor.UserID, now)
}

// Apply performs pause, resume or cancel.
func (s *PaymentSchedule) Apply(action Action, actor Actor, now time.Time) error {
	next, err := ScheduleLifecycle.Next(s.Status, action)
	if err != nil {
		return err
	}
	s.Status = next
	s.Touch(actor.UserID, now)
	return nil
}

// PayInstallment marks the installment with installmentID paid and rolls the
// result up into the schedule. installments must be the full set of the schedule.
// On error neither the schedule nor the installments are modified.
func (s *PaymentSchedule) PayInstallment(installments []Installment, installmentID string, actor Actor, notes string, now time.Time) (*Installment, error) {
	switch s.Status {
	case ScheduleCancelled, SchedulePaused, ScheduleCompleted:
		return nil, fmt.Errorf("%w: schedule %s is %s", apperrors.ErrInvalidState, s.ScheduleID, s.Status)
	}

	idx := -1
	for i := range installments {
		if installments[i].InstallmentID == installmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("installment", installmentID)
	}
	inst := &installments[idx]
	if inst.Status == InstallmentPaid {
		return nil, fmt.Errorf("%w: installment %d is already paid", apperrors.ErrInvalidState, inst.SequenceNumber)
	}

	inst.Status = InstallmentPaid
	inst.PaidAt = &now
	inst.PaidBy = &actor.UserID
	inst.Notes = notes
	inst.Touch(actor.UserID, now)

	paid := 0
	for i := range installments {
		if installments[i].Status == InstallmentPaid {
			paid++
		}
	}
	s.PaidInstallments = paid
	s.refreshNextPaymentDate(installments)
	if paid == len(installments) {
		s.Status = ScheduleCompleted
	}
	s.Touch(actor.UserID, now)
	return inst, nil
}

func (s *PaymentSchedule) refreshNextPaymentDate(installments []Installment) {
	var next *time.Time
	for i := range installments {
		if installments[i].Status != InstallmentPending {
			continue
		}
		if next == nil || installments[i].DueDate.Before(*next) {
			d := installments[i].DueDate
			next = &d
		}
	}
	s.NextPaymentDate = next
}

// ScheduleProgress is the derived money view of a schedule.
type ScheduleProgress struct {
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	PaidAmount            decimal.Decimal `json:"paidAmount"`
	RemainingAmount       decimal.Decimal `json:"remainingAmount"`
	RemainingInstallments int             `json:"remainingInstallments"`
	ProgressPercentage    decimal.Decimal `json:"progressPercentage"`
	OverdueInstallments   int             `json:"overdueInstallments"`
}

// Progress derives amounts from the installments when present, otherwise from
// InstallmentAmount × TotalInstallments.
func (s *PaymentSchedule) Progress(installments []Installment, now time.Time) ScheduleProgress {
	p := ScheduleProgress{}
	if len(installments) == 0 {
		p.TotalAmount = s.InstallmentAmount.Mul(decimal.NewFromInt(int64(s.TotalInstallments)))
		p.PaidAmount = s.InstallmentAmount.Mul(decimal.NewFromInt(int64(s.PaidInstallments)))
	} else {
		p.TotalAmount, p.PaidAmount = decimal.Zero, decimal.Zero
		for i := range installments {
			p.TotalAmount = p.TotalAmount.Add(installments[i].Amount)
			if installments[i].Status == InstallmentPaid {
				p.PaidAmount = p.PaidAmount.Add(installments[i].Amount)
			}
			if installments[i].IsOverdue(now) {
				p.OverdueInstallments++
			}
		}
	}
	p.RemainingAmount = p.TotalAmount.Sub(p.PaidAmount)
	p.RemainingInstallments = s.TotalInstallments - s.PaidInstallments
	if s.TotalInstallments > 0 {
		p.ProgressPercentage = decimal.NewFromInt(int64(s.PaidInstallments)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(s.TotalInstallments))).
			Round(2)
	}
	return p
}

// ScheduleStats aggregates schedules by status.
type ScheduleStats struct {
	Total       int             `json:"total"`
	Active      int             `json:"active"`
	Paused      int             `json:"paused"`
	Completed   int             `json:"completed"`
	Cancelled   int             `json:"cancelled"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
}

// ScheduleForPayment builds the default schedule attached to a monthly payment.
func ScheduleForPayment(p *Payment, totalInstallments, frequency int, start time.Time) PaymentSchedule {
	if totalInstallments < 1 {
		totalInstallments = DefaultTotalInstallments
	}
	if frequency < 1 {
		frequency = DefaultFrequencyMonths
	}
	s := PaymentSchedule{
		PaymentID:         &p.PaymentID,
		StartDate:         start,
		Frequency:         frequency,
		TotalInstallments: totalInstallments,
		InstallmentAmount: p.Amount.Div(decimal.NewFromInt(int64(totalInstallments))).Round(2),
		Status:            ScheduleActive,
		Description:       p.Description,
	}
	s.EndDate = s.DueDate(totalInstallments)
	return s
}
