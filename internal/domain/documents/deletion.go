// Package documents hosts operations spanning more than one document
// type. Cascade product deletion lives here because it touches
// purchases, invoices and remissions at once.
package documents

import (
	"context"
	"fmt"

	"puntoventa/internal/core/id"
	"puntoventa/internal/core/tx"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/documents/invoice"
	"puntoventa/internal/domain/documents/purchase"
	"puntoventa/internal/domain/documents/remission"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/domain/totals"
	"puntoventa/pkg/logger"
)

// ProductStore is the slice of the product repository cascade deletion
// needs.
type ProductStore interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
	Delete(ctx context.Context, productID id.ID) error
}

// DeletionResult reports what a product cascade removed.
type DeletionResult struct {
	PurchaseItems  int64 `json:"purchaseItems"`
	InvoiceItems   int64 `json:"invoiceItems"`
	RemissionItems int64 `json:"remissionItems"`
	StockMovements int64 `json:"stockMovements"`
}

// DeletionService removes a product together with every reference to
// it: item rows in all three document types, its movement history, and
// finally the product row. Touched documents get their totals
// recomputed from the rows that remain.
type DeletionService struct {
	products   ProductStore
	purchases  purchase.Repository
	invoices   invoice.Repository
	remissions remission.Repository
	movements  ledger.Repository
	txManager  tx.Manager
}

// NewDeletionService creates a new cascade deletion service.
func NewDeletionService(
	products ProductStore,
	purchases purchase.Repository,
	invoices invoice.Repository,
	remissions remission.Repository,
	movements ledger.Repository,
	txManager tx.Manager,
) *DeletionService {
	return &DeletionService{
		products:   products,
		purchases:  purchases,
		invoices:   invoices,
		remissions: remissions,
		movements:  movements,
		txManager:  txManager,
	}
}

// DeleteProduct cascades the removal atomically. Recomputing a touched
// document is an aggregation step only: the remaining items' stored
// derived fields are summed and re-quantized, no line is recomputed
// from unit prices.
func (s *DeletionService) DeleteProduct(ctx context.Context, productID id.ID) (*DeletionResult, error) {
	var result DeletionResult

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.products.GetByID(ctx, productID); err != nil {
			return err
		}

		var err error
		if result.PurchaseItems, err = s.removePurchaseItems(ctx, productID); err != nil {
			return err
		}
		if result.InvoiceItems, err = s.removeInvoiceItems(ctx, productID); err != nil {
			return err
		}
		if result.RemissionItems, err = s.removeRemissionItems(ctx, productID); err != nil {
			return err
		}

		if result.StockMovements, err = s.movements.DeleteByProduct(ctx, productID); err != nil {
			return fmt.Errorf("delete movements: %w", err)
		}

		if err := s.products.Delete(ctx, productID); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product cascade deleted",
		"product_id", productID,
		"purchase_items", result.PurchaseItems,
		"invoice_items", result.InvoiceItems,
		"remission_items", result.RemissionItems,
		"stock_movements", result.StockMovements,
	)

	return &result, nil
}

func (s *DeletionService) removePurchaseItems(ctx context.Context, productID id.ID) (int64, error) {
	affected, err := s.purchases.ItemsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("purchase items by product: %w", err)
	}
	removed, err := s.purchases.DeleteItemsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("delete purchase items: %w", err)
	}
	for _, docID := range documentIDs(affected, func(it purchase.Item) id.ID { return it.PurchaseID }) {
		remaining, err := s.purchases.GetItems(ctx, docID)
		if err != nil {
			return 0, fmt.Errorf("purchase items: %w", err)
		}
		agg := aggregateItems(remaining, purchase.Item.Amounts)
		if err := s.purchases.UpdateTotals(ctx, docID, agg); err != nil {
			return 0, fmt.Errorf("update purchase totals: %w", err)
		}
	}
	return removed, nil
}

func (s *DeletionService) removeInvoiceItems(ctx context.Context, productID id.ID) (int64, error) {
	affected, err := s.invoices.ItemsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("invoice items by product: %w", err)
	}
	removed, err := s.invoices.DeleteItemsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("delete invoice items: %w", err)
	}
	for _, docID := range documentIDs(affected, func(it invoice.Item) id.ID { return it.InvoiceID }) {
		remaining, err := s.invoices.GetItems(ctx, docID)
		if err != nil {
			return 0, fmt.Errorf("invoice items: %w", err)
		}
		agg := aggregateItems(remaining, invoice.Item.Amounts)
		if err := s.invoices.UpdateTotals(ctx, docID, agg); err != nil {
			return 0, fmt.Errorf("update invoice totals: %w", err)
		}
	}
	return removed, nil
}

func (s *DeletionService) removeRemissionItems(ctx context.Context, productID id.ID) (int64, error) {
	affected, err := s.remissions.ItemsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("remission items by product: %w", err)
	}
	removed, err := s.remissions.DeleteItemsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("delete remission items: %w", err)
	}
	for _, docID := range documentIDs(affected, func(it remission.Item) id.ID { return it.RemissionID }) {
		remaining, err := s.remissions.GetItems(ctx, docID)
		if err != nil {
			return 0, fmt.Errorf("remission items: %w", err)
		}
		agg := aggregateItems(remaining, remission.Item.Amounts)
		if err := s.remissions.UpdateTotals(ctx, docID, agg); err != nil {
			return 0, fmt.Errorf("update remission totals: %w", err)
		}
	}
	return removed, nil
}

// documentIDs collects the distinct parent document IDs of item rows,
// preserving first-seen order.
func documentIDs[T any](items []T, parent func(T) id.ID) []id.ID {
	seen := make(map[id.ID]struct{}, len(items))
	var out []id.ID
	for _, it := range items {
		docID := parent(it)
		if _, ok := seen[docID]; ok {
			continue
		}
		seen[docID] = struct{}{}
		out = append(out, docID)
	}
	return out
}

func aggregateItems[T any](items []T, amounts func(T) totals.LineAmounts) totals.DocumentTotals {
	lines := make([]totals.LineAmounts, 0, len(items))
	for _, it := range items {
		lines = append(lines, amounts(it))
	}
	return totals.Aggregate(lines)
}
