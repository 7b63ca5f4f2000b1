package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/shopspring/decimal"
)

// BordereauStatus keeps the historical integer wire values.
type BordereauStatus int

const (
	BordereauSubmitted BordereauStatus = 1
	BordereauValidated BordereauStatus = 2
	BordereauRejected  BordereauStatus = 3
)

func (s BordereauStatus) String() string {
	switch s {
	case BordereauSubmitted:
		return "submitted"
	case BordereauValidated:
		return "validated"
	case BordereauRejected:
		return "rejected"
	}
	return fmt.Sprintf("bordereau_status(%d)", int(s))
}

// BordereauLifecycle is the bordereau transition table.
var BordereauLifecycle = NewMachine[BordereauStatus](EntityBordereau).
	Allow(ActionValidate, BordereauValidated, BordereauSubmitted).
	Allow(ActionReject, BordereauRejected, BordereauSubmitted)

// DefaultVATRate is applied when a bordereau is created without one.
var DefaultVATRate = decimal.NewFromInt(20)

var hundred = decimal.NewFromInt(100)

// BordereauItem is one line of a bordereau.
type BordereauItem struct {
	ItemID      string          `json:"itemID"`
	Designation string          `json:"designation"`
	Unit        string          `json:"unit"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// LineTotal is quantity times unit price.
func (i BordereauItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Bordereau is an internal quote submitted for managerial approval.
type Bordereau struct {
	BordereauID    string          `json:"bordereauID"`
	Reference      string          `json:"reference"`
	ClientName     string          `json:"clientName"`
	Items          []BordereauItem `json:"items"`
	VATRate        decimal.Decimal `json:"vatRate"`
	GlobalDiscount decimal.Decimal `json:"globalDiscount"` // percent
	Notes          string          `json:"notes"`
	Status         BordereauStatus `json:"status"`
	ValidatedAt    *time.Time      `json:"validatedAt,omitempty"`
	ValidatedBy    *string         `json:"validatedBy,omitempty"`
	Comment        string          `json:"comment,omitempty"`
	AuditFields
}

// BordereauTotals are the derived amounts of a bordereau.
type BordereauTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	VATAmount      decimal.Decimal `json:"vatAmount"`
	Total          decimal.Decimal `json:"total"`
}

// Totals computes subtotal, discount, VAT and total rounded to cents.
func (b *Bordereau) Totals() BordereauTotals {
	subtotal := decimal.Zero
	for _, it := range b.Items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	discount := subtotal.Mul(b.GlobalDiscount).Div(hundred).Round(2)
	taxable := subtotal.Sub(discount)
	vat := taxable.Mul(b.VATRate).Div(hundred).Round(2)
	return BordereauTotals{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discount,
		TaxableAmount:  taxable.Round(2),
		VATAmount:      vat,
		Total:          taxable.Add(vat).Round(2),
	}
}

// EnsureEditable fails once the bordereau has left the submitted state.
func (b *Bordereau) EnsureEditable() error {
	if b.Status != BordereauSubmitted {
		return fmt.Errorf("%w: bordereau %s is %s and can no longer be modified", apperrors.ErrInvalidState, b.BordereauID, b.Status)
	}
	return nil
}

// Apply performs a lifecycle transition. It leaves b untouched on error.
func (b *Bordereau) Apply(action Action, actor Actor, meta TransitionMeta, now time.Time) error {
	next, err := BordereauLifecycle.Next(b.Status, action)
	if err != nil {
		return err
	}
	switch action {
	case ActionValidate:
		b.ValidatedAt = &now
		b.ValidatedBy = &actor.UserID
		b.Comment = ""
	case ActionReject:
		reason := strings.TrimSpace(meta.Reason)
		if reason == "" {
			return fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
		}
		b.Comment = reason
	}
	b.Status = next
	b.Touch(actor.UserID, now)
	return nil
}
