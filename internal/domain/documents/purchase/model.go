// Package purchase provides the Purchase document (stock-in).
// Recording a purchase receives goods from a supplier into stock.
package purchase

import (
	"time"

	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/totals"
)

// Purchase represents a stock-in document from a supplier.
type Purchase struct {
	ID id.ID `db:"id" json:"id"`

	// Code is the unique human-readable purchase code (COMP-YYYYMMDD-n)
	Code string `db:"code" json:"code"`

	SupplierID id.ID     `db:"supplier_id" json:"supplierId"`
	Date       time.Time `db:"date" json:"date"`

	// Totals are aggregates of the item rows (two-tier quantization)
	SubtotalExclVAT types.Money `db:"subtotal_excl_vat" json:"subtotalExclVat"`
	VATTotal        types.Money `db:"vat_total" json:"vatTotal"`
	Total           types.Money `db:"total" json:"total"`

	Notes string `db:"notes" json:"notes,omitempty"`

	// SupplierName is populated on reads via join, not stored
	SupplierName string `db:"supplier_name" json:"-"`

	// Table part: purchased goods
	Items []Item `db:"-" json:"items,omitempty"`
}

// Item represents a line in a purchase.
type Item struct {
	ID         id.ID `db:"id" json:"id"`
	PurchaseID id.ID `db:"purchase_id" json:"purchaseId"`
	ProductID  id.ID `db:"product_id" json:"productId"`

	Quantity int64       `db:"quantity" json:"quantity"`
	UnitCost types.Money `db:"unit_cost" json:"unitCost"` // ex-VAT
	VATRate  types.Money `db:"vat_rate" json:"vatRate"`

	TotalExclVAT types.Money `db:"total_excl_vat" json:"totalExclVat"`
	VATAmount    types.Money `db:"vat_amount" json:"vatAmount"`
	TotalInclVAT types.Money `db:"total_incl_vat" json:"totalInclVat"`
}

// Amounts returns the item's stored derived fields for aggregation.
func (i Item) Amounts() totals.LineAmounts {
	return totals.LineAmounts{
		TotalExclVAT: i.TotalExclVAT,
		VATAmount:    i.VATAmount,
		TotalInclVAT: i.TotalInclVAT,
	}
}

// New creates a purchase header with generated ID.
func New(code string, supplierID id.ID, notes string) *Purchase {
	return &Purchase{
		ID:              id.New(),
		Code:            code,
		SupplierID:      supplierID,
		Date:            time.Now().UTC(),
		SubtotalExclVAT: types.ZeroMoney(),
		VATTotal:        types.ZeroMoney(),
		Total:           types.ZeroMoney(),
		Notes:           notes,
	}
}

// ApplyTotals copies document aggregates onto the header.
func (p *Purchase) ApplyTotals(t totals.DocumentTotals) {
	p.SubtotalExclVAT = t.SubtotalExclVAT
	p.VATTotal = t.VATTotal
	p.Total = t.Total
}
