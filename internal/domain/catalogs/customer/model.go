// Package customer provides the Customer catalog.
// Customers are de-duplicated by document number, else phone, else name.
package customer

import (
	"context"
	"strings"
	"time"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
)

// Customer represents a buyer referenced by invoices and remissions.
type Customer struct {
	ID   id.ID  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	// DocumentNumber is the customer's tax/identity document
	DocumentNumber string `db:"document_number" json:"documentNumber,omitempty"`

	Phone     string    `db:"phone" json:"phone,omitempty"`
	Email     string    `db:"email" json:"email,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a Customer with generated ID.
func New(name string) *Customer {
	return &Customer{
		ID:        id.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks customer invariants.
func (c *Customer) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "name")
	}
	return nil
}
