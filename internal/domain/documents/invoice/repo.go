package invoice

import (
	"context"

	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/totals"
)

// Repository defines the interface for Invoice persistence.
type Repository interface {
	// Create inserts the invoice header. Returns DuplicateKey when the
	// number collides.
	Create(ctx context.Context, inv *Invoice) error

	// SaveItems inserts the invoice's item rows.
	SaveItems(ctx context.Context, invoiceID id.ID, items []Item) error

	// GetByID retrieves the header (with customer name).
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetItems retrieves an invoice's item rows.
	GetItems(ctx context.Context, invoiceID id.ID) ([]Item, error)

	// List retrieves the most recent invoices (with customer names).
	List(ctx context.Context, limit int) ([]*Invoice, error)

	// UpdateTotals writes the document aggregates.
	UpdateTotals(ctx context.Context, invoiceID id.ID, t totals.DocumentTotals) error

	// ItemsByProduct retrieves all item rows referencing a product,
	// across all invoices. Used by product cascade deletion.
	ItemsByProduct(ctx context.Context, productID id.ID) ([]Item, error)

	// DeleteItemsByProduct removes all item rows referencing a product
	// and returns the number removed.
	DeleteItemsByProduct(ctx context.Context, productID id.ID) (int64, error)
}

// ProductLookup is the slice of the product repository the invoice
// orchestrator needs.
type ProductLookup interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}
