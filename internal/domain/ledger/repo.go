package ledger

import (
	"context"

	"puntoventa/internal/core/id"
)

// Repository defines the interface for movement persistence.
type Repository interface {
	// Insert appends one immutable movement row.
	Insert(ctx context.Context, m *Movement) error

	// ListByProduct retrieves a product's movements, oldest first.
	ListByProduct(ctx context.Context, productID id.ID) ([]*Movement, error)

	// DeleteByProduct removes all movement rows for a product and
	// returns the number removed. Only product cascade deletion uses
	// this; audit history for a deleted product is discarded.
	DeleteByProduct(ctx context.Context, productID id.ID) (int64, error)
}

// StockStore is the slice of the product repository the ledger needs.
// Declared here so the product catalog can depend on the ledger without
// an import cycle.
type StockStore interface {
	// StockForUpdate reads current stock with a row lock.
	// Returns NotFound if the product is absent.
	StockForUpdate(ctx context.Context, productID id.ID) (int64, error)

	// SetStock writes the derived stock counter.
	SetStock(ctx context.Context, productID id.ID, stock int64) error
}
