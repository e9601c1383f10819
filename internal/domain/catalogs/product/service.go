package product

import (
	"context"
	"fmt"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/tx"
	"puntoventa/internal/domain/ledger"
	"puntoventa/pkg/logger"
)

// Service provides business operations for the product catalog.
type Service struct {
	repo      Repository
	ledger    *ledger.Service
	txManager tx.Manager
}

// NewService creates a new product service.
func NewService(repo Repository, ledgerSvc *ledger.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledgerSvc,
		txManager: txManager,
	}
}

// Create validates and persists a new product. When initialStock is
// positive an "initial" ledger movement seeds the stock counter, in the
// same transaction as the product row.
func (s *Service) Create(ctx context.Context, p *Product, initialStock int64) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if initialStock < 0 {
		return apperror.NewValidation("initial stock cannot be negative").
			WithDetail("field", "initialStock")
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		if initialStock > 0 {
			newStock, err := s.ledger.Adjust(ctx, p.ID, initialStock, ledger.MovementInitial, "Stock inicial", ledger.Reference{})
			if err != nil {
				return err
			}
			p.CurrentStock = newStock
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "product created",
		"id", p.ID,
		"sku", p.SKU,
		"initial_stock", initialStock,
	)

	return nil
}

// GetByID retrieves a product by ID.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// List retrieves all products ordered by name.
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

// Search retrieves products whose name or SKU contains q.
func (s *Service) Search(ctx context.Context, q string, limit int) ([]*Product, error) {
	if q == "" {
		return []*Product{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Search(ctx, q, limit)
}

// ListLowStock retrieves products at or below their low-stock threshold.
func (s *Service) ListLowStock(ctx context.Context) ([]*Product, error) {
	return s.repo.ListLowStock(ctx)
}

// AdjustInventory applies a manual signed stock correction with an
// auditable reason, in its own transaction.
func (s *Service) AdjustInventory(ctx context.Context, productID id.ID, delta int64, reason string) (int64, error) {
	if reason == "" {
		reason = "ajuste"
	}

	var newStock int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		newStock, err = s.ledger.Adjust(ctx, productID, delta, ledger.MovementAdjustment, reason, ledger.Reference{Type: "adjustment"})
		return err
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "inventory adjusted",
		"product_id", productID,
		"delta", delta,
		"new_stock", newStock,
	)

	return newStock, nil
}
