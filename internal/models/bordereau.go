package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bordereau is a row of the bordereaux table. Items live in bordereau_items.
type Bordereau struct {
	BordereauID    string          `db:"bordereau_id"`
	Reference      string          `db:"reference"`
	ClientName     string          `db:"client_name"`
	VATRate        decimal.Decimal `db:"vat_rate"`
	GlobalDiscount decimal.Decimal `db:"global_discount"`
	Notes          string          `db:"notes"`
	Status         int16           `db:"status"`
	ValidatedAt    *time.Time      `db:"validated_at"`
	ValidatedBy    *string         `db:"validated_by"`
	Comment        string          `db:"comment"`
	AuditFields
}

// BordereauItem is a row of the bordereau_items table.
type BordereauItem struct {
	ItemID      string          `db:"item_id"`
	BordereauID string          `db:"bordereau_id"`
	Position    int             `db:"position"`
	Designation string          `db:"designation"`
	Unit        string          `db:"unit"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}
