// Package product provides the Product catalog.
// Products are the sellable items tracked by the stock ledger.
package product

import (
	"context"
	"strings"
	"time"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
)

// Product represents a sellable item with tracked stock.
type Product struct {
	ID id.ID `db:"id" json:"id"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// SKU is the unique stock keeping unit code
	SKU string `db:"sku" json:"sku"`

	// Price is the unit sale price, exclusive of VAT
	Price types.Money `db:"price" json:"price"`

	// VATRate is the tax fraction applied on purchase lines (e.g. 0.19)
	VATRate types.Money `db:"vat_rate" json:"vatRate"`

	// LowStockThreshold marks the stock level at which the product
	// appears in the low-stock alert
	LowStockThreshold int64 `db:"low_stock_threshold" json:"lowStockThreshold"`

	// CurrentStock is derived state: it must always equal the sum of
	// the product's ledger movement deltas
	CurrentStock int64 `db:"current_stock" json:"currentStock"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a Product with generated ID and zero stock.
func New(name, sku string) *Product {
	return &Product{
		ID:                id.New(),
		Name:              strings.TrimSpace(name),
		SKU:               strings.TrimSpace(sku),
		Price:             types.ZeroMoney(),
		VATRate:           types.MustMoney("0.19"),
		LowStockThreshold: 5,
		CreatedAt:         time.Now().UTC(),
	}
}

// PriceWithVAT returns the unit price including VAT.
func (p *Product) PriceWithVAT() types.Money {
	return types.Quantize(p.Price.Add(p.VATAmount()))
}

// VATAmount returns the VAT portion of the unit price.
func (p *Product) VATAmount() types.Money {
	return types.Quantize(p.Price.Mul(p.VATRate))
}

// IsLowStock reports whether stock is at or below the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.LowStockThreshold
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}
	if p.VATRate.IsNegative() {
		return apperror.NewValidation("vat rate cannot be negative").
			WithDetail("field", "vatRate")
	}
	if p.LowStockThreshold < 0 {
		return apperror.NewValidation("low stock threshold cannot be negative").
			WithDetail("field", "lowStockThreshold")
	}
	return nil
}
