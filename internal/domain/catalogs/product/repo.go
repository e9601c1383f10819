package product

import (
	"context"

	"puntoventa/internal/core/id"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	// Create inserts a new product. Returns DuplicateKey when the SKU
	// is already taken.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product. Returns NotFound if absent.
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// GetBySKU retrieves a product by its unique SKU.
	GetBySKU(ctx context.Context, sku string) (*Product, error)

	// List retrieves all products ordered by name.
	List(ctx context.Context) ([]*Product, error)

	// Search retrieves products whose name or SKU contains q.
	Search(ctx context.Context, q string, limit int) ([]*Product, error)

	// ListLowStock retrieves products with current_stock <= low_stock_threshold.
	ListLowStock(ctx context.Context) ([]*Product, error)

	// Delete removes the product row. Callers must cascade item and
	// movement rows first (see documents.DeletionService).
	Delete(ctx context.Context, productID id.ID) error

	// StockForUpdate reads current stock with a row lock, for use
	// inside a transaction. Returns NotFound if the product is absent.
	StockForUpdate(ctx context.Context, productID id.ID) (int64, error)

	// SetStock writes the derived stock counter. Only the ledger may
	// call this; it is staged into the ambient transaction.
	SetStock(ctx context.Context, productID id.ID, stock int64) error
}
