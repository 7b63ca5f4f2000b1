package mapping

import (
	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/models"
)

// ToModelBordereau converts a domain Bordereau to its header row and item rows.
func ToModelBordereau(d domain.Bordereau) (models.Bordereau, []models.BordereauItem) {
	items := make([]models.BordereauItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.BordereauItem{
			ItemID:      it.ItemID,
			BordereauID: d.BordereauID,
			Position:    i + 1,
			Designation: it.Designation,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return models.Bordereau{
		BordereauID:    d.BordereauID,
		Reference:      d.Reference,
		ClientName:     d.ClientName,
		VATRate:        d.VATRate,
		GlobalDiscount: d.GlobalDiscount,
		Notes:          d.Notes,
		Status:         int16(d.Status),
		ValidatedAt:    d.ValidatedAt,
		ValidatedBy:    d.ValidatedBy,
		Comment:        d.Comment,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}, items
}

// ToDomainBordereau converts a header row and its item rows, ordered by position.
func ToDomainBordereau(m models.Bordereau, items []models.BordereauItem) domain.Bordereau {
	d := domain.Bordereau{
		BordereauID:    m.BordereauID,
		Reference:      m.Reference,
		ClientName:     m.ClientName,
		Items:          make([]domain.BordereauItem, len(items)),
		VATRate:        m.VATRate,
		GlobalDiscount: m.GlobalDiscount,
		Notes:          m.Notes,
		Status:         domain.BordereauStatus(m.Status),
		ValidatedAt:    m.ValidatedAt,
		ValidatedBy:    m.ValidatedBy,
		Comment:        m.Comment,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	for i, it := range items {
		d.Items[i] = domain.BordereauItem{
			ItemID:      it.ItemID,
			Designation: it.Designation,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return d
}
