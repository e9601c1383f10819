package remission

import (
	"context"

	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/totals"
)

// Repository defines the interface for Remission persistence.
type Repository interface {
	// Create inserts the remission header. Returns DuplicateKey when
	// the number collides.
	Create(ctx context.Context, r *Remission) error

	// SaveItems inserts the remission's item rows.
	SaveItems(ctx context.Context, remissionID id.ID, items []Item) error

	// GetByID retrieves the header (with customer name).
	GetByID(ctx context.Context, remissionID id.ID) (*Remission, error)

	// GetItems retrieves a remission's item rows.
	GetItems(ctx context.Context, remissionID id.ID) ([]Item, error)

	// List retrieves the most recent remissions (with customer names).
	List(ctx context.Context, limit int) ([]*Remission, error)

	// UpdateTotals writes the document aggregates.
	UpdateTotals(ctx context.Context, remissionID id.ID, t totals.DocumentTotals) error

	// ItemsByProduct retrieves all item rows referencing a product,
	// across all remissions. Used by product cascade deletion.
	ItemsByProduct(ctx context.Context, productID id.ID) ([]Item, error)

	// DeleteItemsByProduct removes all item rows referencing a product
	// and returns the number removed.
	DeleteItemsByProduct(ctx context.Context, productID id.ID) (int64, error)
}

// ProductLookup is the slice of the product repository the remission
// orchestrator needs.
type ProductLookup interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}
