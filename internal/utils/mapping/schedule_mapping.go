package mapping

import (
	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/models"
)

// ToModelSchedule converts a domain PaymentSchedule to a model PaymentSchedule
func ToModelSchedule(d domain.PaymentSchedule) models.PaymentSchedule {
	return models.PaymentSchedule{
		ScheduleID:            d.ScheduleID,
		PaymentID:             d.PaymentID,
		StartDate:             d.StartDate,
		EndDate:               d.EndDate,
		Frequency:             d.Frequency,
		TotalInstallments:     d.TotalInstallments,
		InstallmentAmount:     d.InstallmentAmount,
		PaidInstallments:      d.PaidInstallments,
		NextPaymentDate:       d.NextPaymentDate,
		Status:                string(d.Status),
		Description:           d.Description,
		InstallmentsGenerated: d.InstallmentsGenerated,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSchedule converts a model PaymentSchedule to a domain PaymentSchedule
func ToDomainSchedule(m models.PaymentSchedule) domain.PaymentSchedule {
	return domain.PaymentSchedule{
		ScheduleID:            m.ScheduleID,
		PaymentID:             m.PaymentID,
		StartDate:             m.StartDate,
		EndDate:               m.EndDate,
		Frequency:             m.Frequency,
		TotalInstallments:     m.TotalInstallments,
		InstallmentAmount:     m.InstallmentAmount,
		PaidInstallments:      m.PaidInstallments,
		NextPaymentDate:       m.NextPaymentDate,
		Status:                domain.ScheduleStatus(m.Status),
		Description:           m.Description,
		InstallmentsGenerated: m.InstallmentsGenerated,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainScheduleSlice converts a slice of model schedules to domain schedules
func ToDomainScheduleSlice(ms []models.PaymentSchedule) []domain.PaymentSchedule {
	ds := make([]domain.PaymentSchedule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSchedule(m)
	}
	return ds
}

// ToModelInstallment converts a domain Installment to a model Installment
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID:  d.InstallmentID,
		ScheduleID:     d.ScheduleID,
		SequenceNumber: d.SequenceNumber,
		DueDate:        d.DueDate,
		Amount:         d.Amount,
		Status:         string(d.Status),
		PaidAt:         d.PaidAt,
		PaidBy:         d.PaidBy,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID:  m.InstallmentID,
		ScheduleID:     m.ScheduleID,
		SequenceNumber: m.SequenceNumber,
		DueDate:        m.DueDate,
		Amount:         m.Amount,
		Status:         domain.InstallmentStatus(m.Status),
		PaidAt:         m.PaidAt,
		PaidBy:         m.PaidBy,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts a slice of model installments to domain installments
func ToDomainInstallmentSlice(ms []models.Installment) []domain.Installment {
	ds := make([]domain.Installment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstallment(m)
	}
	return ds
}
