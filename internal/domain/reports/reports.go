// Package reports provides read-side queries that span documents.
package reports

import (
	"context"

	"puntoventa/internal/core/id"
)

// ProductStats carries per-product sales facts for catalog views.
type ProductStats struct {
	ProductID id.ID `db:"product_id"`

	// LastSupplierName is the supplier of the most recent purchase
	// containing the product, empty when never purchased.
	LastSupplierName string `db:"last_supplier_name"`

	// TotalSold is the total quantity shipped by invoices and remissions.
	TotalSold int64 `db:"total_sold"`
}

// Repository defines report persistence queries.
type Repository interface {
	ProductStats(ctx context.Context, productIDs []id.ID) (map[id.ID]ProductStats, error)
}

// Service provides report operations.
type Service struct {
	repo Repository
}

// NewService creates a new report service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ProductStats returns sales facts keyed by product. Products without
// sales or purchases are simply absent from the result.
func (s *Service) ProductStats(ctx context.Context, productIDs []id.ID) (map[id.ID]ProductStats, error) {
	if len(productIDs) == 0 {
		return map[id.ID]ProductStats{}, nil
	}
	return s.repo.ProductStats(ctx, productIDs)
}
