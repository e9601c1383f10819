package supplier

import (
	"context"

	"puntoventa/internal/core/id"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	// Create inserts a new supplier.
	Create(ctx context.Context, s *Supplier) error

	// GetByID retrieves a supplier. Returns NotFound if absent.
	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)

	// List retrieves all suppliers ordered by name.
	List(ctx context.Context) ([]*Supplier, error)
}
