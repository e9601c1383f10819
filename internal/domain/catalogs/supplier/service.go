package supplier

import (
	"context"
	"strings"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/pkg/logger"
)

// Input carries supplier fields supplied by a caller, either to create
// a supplier directly or embedded in a purchase request.
type Input struct {
	ID      *id.ID
	Name    string
	Phone   string
	Email   string
	Address string
}

// Service provides business operations for the supplier catalog.
type Service struct {
	repo Repository
}

// NewService creates a new supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new supplier.
func (s *Service) Create(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return err
	}
	logger.Info(ctx, "supplier created", "id", sup.ID, "name", sup.Name)
	return nil
}

// List retrieves all suppliers ordered by name.
func (s *Service) List(ctx context.Context) ([]*Supplier, error) {
	return s.repo.List(ctx)
}

// Resolve returns the referenced supplier when in carries an ID, or
// creates a new one from the remaining fields. Staged into the ambient
// transaction when one is active.
func (s *Service) Resolve(ctx context.Context, in Input) (*Supplier, error) {
	if in.ID != nil && !id.IsNil(*in.ID) {
		sup, err := s.repo.GetByID(ctx, *in.ID)
		if err != nil {
			return nil, err
		}
		return sup, nil
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.NewValidation("supplier name is required").
			WithDetail("field", "supplier.name")
	}

	sup := New(name)
	sup.Phone = strings.TrimSpace(in.Phone)
	sup.Email = strings.TrimSpace(in.Email)
	sup.Address = strings.TrimSpace(in.Address)

	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}
