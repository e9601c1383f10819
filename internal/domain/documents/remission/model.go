// Package remission provides the Remission document (stock-out).
// A remission delivers goods to a customer without a fiscal invoice;
// it moves stock exactly like one.
package remission

import (
	"time"

	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/totals"
)

// DefaultPaymentMethod applies when the caller supplies none.
const DefaultPaymentMethod = "EFECTIVO"

// Remission represents a stock-out delivery document.
type Remission struct {
	ID id.ID `db:"id" json:"id"`

	// Number is the unique human-readable remission number
	// (REM-YYYYMMDD-nnn)
	Number string `db:"number" json:"number"`

	CustomerID id.ID     `db:"customer_id" json:"customerId"`
	Date       time.Time `db:"date" json:"date"`

	// Totals are aggregates of the item rows (two-tier quantization)
	SubtotalExclVAT types.Money `db:"subtotal_excl_vat" json:"subtotalExclVat"`
	VATTotal        types.Money `db:"vat_total" json:"vatTotal"`
	Total           types.Money `db:"total" json:"total"`

	PaymentMethod string `db:"payment_method" json:"paymentMethod"`
	Notes         string `db:"notes" json:"notes,omitempty"`

	// CustomerName is populated on reads via join, not stored
	CustomerName string `db:"customer_name" json:"-"`

	// Table part: delivered goods
	Items []Item `db:"-" json:"items,omitempty"`
}

// Item represents a line in a remission.
type Item struct {
	ID          id.ID `db:"id" json:"id"`
	RemissionID id.ID `db:"remission_id" json:"remissionId"`
	ProductID   id.ID `db:"product_id" json:"productId"`

	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"` // ex-VAT
	VATRate   types.Money `db:"vat_rate" json:"vatRate"`

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

// New creates a remission header with generated ID.
func New(number string, customerID id.ID, paymentMethod, notes string) *Remission {
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}
	return &Remission{
		ID:              id.New(),
		Number:          number,
		CustomerID:      customerID,
		Date:            time.Now().UTC(),
		SubtotalExclVAT: types.ZeroMoney(),
		VATTotal:        types.ZeroMoney(),
		Total:           types.ZeroMoney(),
		PaymentMethod:   paymentMethod,
		Notes:           notes,
	}
}

// ApplyTotals copies document aggregates onto the header.
func (r *Remission) ApplyTotals(t totals.DocumentTotals) {
	r.SubtotalExclVAT = t.SubtotalExclVAT
	r.VATTotal = t.VATTotal
	r.Total = t.Total
}
