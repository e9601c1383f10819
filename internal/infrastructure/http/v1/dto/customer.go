package dto

import (
	"time"

	"puntoventa/internal/domain/catalogs/customer"
)

// CustomerInput carries the customer block of a sale request. The
// service resolves it to an existing customer or creates a new one.
type CustomerInput struct {
	Name           string `json:"name" binding:"required"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Address        string `json:"address,omitempty"`
}

// ToInput converts the DTO to the domain resolution input.
func (r CustomerInput) ToInput() customer.Input {
	return customer.Input{
		Name:           r.Name,
		DocumentNumber: r.DocumentNumber,
		Phone:          r.Phone,
		Email:          r.Email,
		Address:        r.Address,
	}
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DocumentNumber string    `json:"documentNumber,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FromCustomer converts entity to response DTO.
func FromCustomer(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		DocumentNumber: c.DocumentNumber,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		CreatedAt:      c.CreatedAt,
	}
}

// FromCustomers converts a customer slice to response DTOs.
func FromCustomers(items []*customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(items))
	for _, c := range items {
		out = append(out, FromCustomer(c))
	}
	return out
}
