package purchase

import (
	"context"

	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/totals"
)

// Repository defines the interface for Purchase persistence.
type Repository interface {
	// Create inserts the purchase header. Returns DuplicateKey when the
	// code collides.
	Create(ctx context.Context, p *Purchase) error

	// SaveItems inserts the purchase's item rows.
	SaveItems(ctx context.Context, purchaseID id.ID, items []Item) error

	// GetByID retrieves the header (with supplier name).
	GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error)

	// GetItems retrieves a purchase's item rows.
	GetItems(ctx context.Context, purchaseID id.ID) ([]Item, error)

	// List retrieves the most recent purchases (with supplier names).
	List(ctx context.Context, limit int) ([]*Purchase, error)

	// UpdateTotals writes the document aggregates.
	UpdateTotals(ctx context.Context, purchaseID id.ID, t totals.DocumentTotals) error

	// ItemsByProduct retrieves all item rows referencing a product,
	// across all purchases. Used by product cascade deletion.
	ItemsByProduct(ctx context.Context, productID id.ID) ([]Item, error)

	// DeleteItemsByProduct removes all item rows referencing a product
	// and returns the number removed.
	DeleteItemsByProduct(ctx context.Context, productID id.ID) (int64, error)
}

// ProductLookup is the slice of the product repository the purchase
// orchestrator needs.
type ProductLookup interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}
