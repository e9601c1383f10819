package customer

import (
	"context"
	"strings"

	"puntoventa/internal/core/apperror"
	"puntoventa/pkg/logger"
)

// Input carries customer fields supplied with a sale document.
type Input struct {
	Name           string
	DocumentNumber string
	Phone          string
	Email          string
	Address        string
}

// Service provides business operations for the customer catalog.
type Service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves the most recently created customers.
func (s *Service) List(ctx context.Context, limit int) ([]*Customer, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, limit)
}

// Ensure resolves the customer a sale document belongs to, creating or
// merging as needed. Lookup order: document number, else phone, else
// exact name; first match wins. On a match, newly supplied non-empty
// fields overwrite the stored ones. Staged into the ambient transaction
// when one is active.
func (s *Service) Ensure(ctx context.Context, in Input) (*Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.NewValidation("customer name is required").
			WithDetail("field", "customer.name")
	}
	doc := strings.TrimSpace(in.DocumentNumber)
	phone := strings.TrimSpace(in.Phone)
	email := strings.TrimSpace(in.Email)
	address := strings.TrimSpace(in.Address)

	existing, err := s.find(ctx, doc, phone, name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Name = name
		if phone != "" {
			existing.Phone = phone
		}
		if email != "" {
			existing.Email = email
		}
		if address != "" {
			existing.Address = address
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	c := New(name)
	c.DocumentNumber = doc
	c.Phone = phone
	c.Email = email
	c.Address = address

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info(ctx, "customer created", "id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) find(ctx context.Context, doc, phone, name string) (*Customer, error) {
	if doc != "" {
		return s.repo.FindByDocument(ctx, doc)
	}
	if phone != "" {
		return s.repo.FindByPhone(ctx, phone)
	}
	return s.repo.FindByName(ctx, name)
}
