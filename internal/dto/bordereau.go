package dto

import (
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BordereauItemRequest is one line of a bordereau create/update request.
type BordereauItemRequest struct {
	Designation string          `json:"designation" binding:"required,max=255"`
	Unit        string          `json:"unit" binding:"max=50"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"gte=0"`
}

// BordereauRequest is the body for creating or updating a bordereau.
type BordereauRequest struct {
	Reference      string                 `json:"reference" binding:"required,max=100"`
	ClientName     string                 `json:"clientName" binding:"required,max=255"`
	Items          []BordereauItemRequest `json:"items" binding:"required,min=1,dive"`
	VATRate        *decimal.Decimal       `json:"vatRate" binding:"omitempty,gte=0,lte=100"`
	GlobalDiscount *decimal.Decimal       `json:"globalDiscount" binding:"omitempty,gte=0,lte=100"`
	Notes          string                 `json:"notes" binding:"max=2000"`
}

// BordereauItemResponse is one line of a bordereau response.
type BordereauItemResponse struct {
	ItemID      string          `json:"itemID"`
	Designation string          `json:"designation"`
	Unit        string          `json:"unit"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// BordereauResponse defines the data returned for a bordereau.
type BordereauResponse struct {
	BordereauID    string                  `json:"bordereauID"`
	Reference      string                  `json:"reference"`
	ClientName     string                  `json:"clientName"`
	Items          []BordereauItemResponse `json:"items"`
	VATRate        decimal.Decimal         `json:"vatRate"`
	GlobalDiscount decimal.Decimal         `json:"globalDiscount"`
	Totals         domain.BordereauTotals  `json:"totals"`
	Notes          string                  `json:"notes,omitempty"`
	Status         domain.BordereauStatus  `json:"status"`
	StatusLabel    string                  `json:"statusLabel"`
	ValidatedAt    *time.Time              `json:"validatedAt,omitempty"`
	ValidatedBy    *string                 `json:"validatedBy,omitempty"`
	Comment        string                  `json:"comment,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedBy      string                  `json:"createdBy"`
	Version        int64                   `json:"version"`
}

// ToBordereauResponse converts a domain.Bordereau to BordereauResponse DTO.
func ToBordereauResponse(b *domain.Bordereau) BordereauResponse {
	items := make([]BordereauItemResponse, len(b.Items))
	for i, it := range b.Items {
		items[i] = BordereauItemResponse{
			ItemID:      it.ItemID,
			Designation: it.Designation,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal(),
		}
	}
	return BordereauResponse{
		BordereauID:    b.BordereauID,
		Reference:      b.Reference,
		ClientName:     b.ClientName,
		Items:          items,
		VATRate:        b.VATRate,
		GlobalDiscount: b.GlobalDiscount,
		Totals:         b.Totals(),
		Notes:          b.Notes,
		Status:         b.Status,
		StatusLabel:    b.Status.String(),
		ValidatedAt:    b.ValidatedAt,
		ValidatedBy:    b.ValidatedBy,
		Comment:        b.Comment,
		CreatedAt:      b.CreatedAt,
		CreatedBy:      b.CreatedBy,
		Version:        b.Version,
	}
}

// ToBordereauResponses converts a slice of domain.Bordereau to []BordereauResponse.
func ToBordereauResponses(list []domain.Bordereau) []BordereauResponse {
	out := make([]BordereauResponse, len(list))
	for i := range list {
		out[i] = ToBordereauResponse(&list[i])
	}
	return out
}
