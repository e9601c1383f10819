package customer

import (
	"context"

	"puntoventa/internal/core/id"
)

// Repository defines the interface for Customer persistence.
// The Find methods return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, c *Customer) error

	// Update overwrites the customer's contact fields.
	Update(ctx context.Context, c *Customer) error

	// GetByID retrieves a customer. Returns NotFound if absent.
	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)

	// FindByDocument retrieves the first customer with this document number.
	FindByDocument(ctx context.Context, documentNumber string) (*Customer, error)

	// FindByPhone retrieves the first customer with this phone.
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// FindByName retrieves the first customer with this exact name.
	FindByName(ctx context.Context, name string) (*Customer, error)

	// List retrieves the most recently created customers.
	List(ctx context.Context, limit int) ([]*Customer, error)
}
