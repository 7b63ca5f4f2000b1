package dto

import (
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateScheduleRequest is the body for creating a payment schedule.
type CreateScheduleRequest struct {
	PaymentID         *string         `json:"paymentID" binding:"omitempty,uuid"`
	StartDate         Date            `json:"startDate"`
	EndDate           Date            `json:"endDate"`
	Frequency         int             `json:"frequency" binding:"required,min=1,max=12"`
	TotalInstallments int             `json:"totalInstallments" binding:"required,min=1,max=360"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount" binding:"required,gt=0"`
	Description       string          `json:"description" binding:"max=1000"`
}

// PayInstallmentRequest is the body of the installment payment endpoint.
type PayInstallmentRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// UpcomingParams are the query parameters of the upcoming installments list.
type UpcomingParams struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

// DefaultUpcomingDays is the look-ahead window when none is given.
const DefaultUpcomingDays = 7

// InstallmentResponse defines the data returned for an installment.
// Status carries the derived overdue state.
type InstallmentResponse struct {
	InstallmentID  string                   `json:"installmentID"`
	ScheduleID     string                   `json:"scheduleID"`
	SequenceNumber int                      `json:"sequenceNumber"`
	DueDate        Date                     `json:"dueDate"`
	Amount         decimal.Decimal          `json:"amount"`
	Status         domain.InstallmentStatus `json:"status"`
	IsOverdue      bool                     `json:"isOverdue"`
	DaysUntilDue   int                      `json:"daysUntilDue"`
	PaidAt         *time.Time               `json:"paidAt,omitempty"`
	PaidBy         *string                  `json:"paidBy,omitempty"`
	Notes          string                   `json:"notes,omitempty"`
}

// ScheduleResponse defines the data returned for a payment schedule.
type ScheduleResponse struct {
	ScheduleID        string                  `json:"scheduleID"`
	PaymentID         *string                 `json:"paymentID,omitempty"`
	StartDate         Date                    `json:"startDate"`
	EndDate           Date                    `json:"endDate"`
	Frequency         int                     `json:"frequency"`
	TotalInstallments int                     `json:"totalInstallments"`
	InstallmentAmount decimal.Decimal         `json:"installmentAmount"`
	PaidInstallments  int                     `json:"paidInstallments"`
	NextPaymentDate   *Date                   `json:"nextPaymentDate,omitempty"`
	Status            domain.ScheduleStatus   `json:"status"`
	Description       string                  `json:"description,omitempty"`
	Progress          domain.ScheduleProgress `json:"progress"`
	Installments      []InstallmentResponse   `json:"installments,omitempty"`
	Version           int64                   `json:"version"`
}

// ToInstallmentResponse converts a domain.Installment, deriving overdue at now.
func ToInstallmentResponse(i *domain.Installment, now time.Time) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID:  i.InstallmentID,
		ScheduleID:     i.ScheduleID,
		SequenceNumber: i.SequenceNumber,
		DueDate:        Date{i.DueDate},
		Amount:         i.Amount,
		Status:         i.EffectiveStatus(now),
		IsOverdue:      i.IsOverdue(now),
		DaysUntilDue:   i.DaysUntilDue(now),
		PaidAt:         i.PaidAt,
		PaidBy:         i.PaidBy,
		Notes:          i.Notes,
	}
}

// ToInstallmentResponses converts a slice of domain.Installment.
func ToInstallmentResponses(list []domain.Installment, now time.Time) []InstallmentResponse {
	out := make([]InstallmentResponse, len(list))
	for i := range list {
		out[i] = ToInstallmentResponse(&list[i], now)
	}
	return out
}

// ToScheduleResponse converts a schedule and, optionally, its installments.
func ToScheduleResponse(s *domain.PaymentSchedule, installments []domain.Installment, now time.Time) ScheduleResponse {
	resp := ScheduleResponse{
		ScheduleID:        s.ScheduleID,
		PaymentID:         s.PaymentID,
		StartDate:         Date{s.StartDate},
		EndDate:           Date{s.EndDate},
		Frequency:         s.Frequency,
		TotalInstallments: s.TotalInstallments,
		InstallmentAmount: s.InstallmentAmount,
		PaidInstallments:  s.PaidInstallments,
		Status:            s.Status,
		Description:       s.Description,
		Progress:          s.Progress(installments, now),
		Version:           s.Version,
	}
	if s.NextPaymentDate != nil {
		resp.NextPaymentDate = &Date{*s.NextPaymentDate}
	}
	if len(installments) > 0 {
		resp.Installments = ToInstallmentResponses(installments, now)
	}
	return resp
}

// PayInstallmentResponse returns the paid installment with its refreshed schedule.
type PayInstallmentResponse struct {
	Installment InstallmentResponse `json:"installment"`
	Schedule    ScheduleResponse    `json:"schedule"`
}
