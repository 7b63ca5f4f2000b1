package mapping

import (
	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:         d.PaymentID,
		PaymentNumber:     d.PaymentNumber,
		InvoiceID:         d.InvoiceID,
		ClientName:        d.ClientName,
		PaymentType:       string(d.Type),
		Method:            string(d.Method),
		Amount:            d.Amount,
		Currency:          d.Currency,
		PaymentDate:       d.PaymentDate,
		DueDate:           d.DueDate,
		Reference:         d.Reference,
		Description:       d.Description,
		Status:            string(d.Status),
		SubmittedAt:       d.SubmittedAt,
		ApprovedAt:        d.ApprovedAt,
		ValidatedBy:       d.ValidatedBy,
		ValidationComment: d.ValidationComment,
		RejectedAt:        d.RejectedAt,
		RejectedBy:        d.RejectedBy,
		RejectionReason:   d.RejectionReason,
		RejectionComment:  d.RejectionComment,
		PaidAt:            d.PaidAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:         m.PaymentID,
		PaymentNumber:     m.PaymentNumber,
		InvoiceID:         m.InvoiceID,
		ClientName:        m.ClientName,
		Type:              domain.PaymentType(m.PaymentType),
		Method:            domain.PaymentMethod(m.Method),
		Amount:            m.Amount,
		Currency:          m.Currency,
		PaymentDate:       m.PaymentDate,
		DueDate:           m.DueDate,
		Reference:         m.Reference,
		Description:       m.Description,
		Status:            domain.PaymentStatus(m.Status),
		SubmittedAt:       m.SubmittedAt,
		ApprovedAt:        m.ApprovedAt,
		ValidatedBy:       m.ValidatedBy,
		ValidationComment: m.ValidationComment,
		RejectedAt:        m.RejectedAt,
		RejectedBy:        m.RejectedBy,
		RejectionReason:   m.RejectionReason,
		RejectionComment:  m.RejectionComment,
		PaidAt:            m.PaidAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		ClientName:    d.ClientName,
		Amount:        d.Amount,
		Currency:      d.Currency,
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		Status:        string(d.Status),
		PaidAt:        d.PaidAt,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		ClientName:    m.ClientName,
		Amount:        m.Amount,
		Currency:      m.Currency,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Status:        domain.InvoiceStatus(m.Status),
		PaidAt:        m.PaidAt,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to a slice of domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
