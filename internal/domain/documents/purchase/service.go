package purchase

import (
	"context"
	"fmt"
	"time"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/sequence"
	"puntoventa/internal/core/tx"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/catalogs/supplier"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/domain/totals"
	"puntoventa/pkg/logger"
)

// SequenceName is the counter series for purchase codes.
const SequenceName = "purchase"

// sequenceStart is where the purchase series begins.
const sequenceStart = 1001

// LineInput is one requested purchase line.
type LineInput struct {
	ProductID id.ID
	Quantity  int64
	UnitCost  types.Money

	// VATRate overrides the default purchase rate when set.
	VATRate *types.Money
}

// CreateInput is a request to record a purchase.
type CreateInput struct {
	Supplier supplier.Input
	Items    []LineInput
	Notes    string
}

// Service orchestrates the record-purchase flow.
type Service struct {
	repo      Repository
	products  ProductLookup
	suppliers *supplier.Service
	ledger    *ledger.Service
	sequences sequence.Generator
	txManager tx.Manager
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	products ProductLookup,
	suppliers *supplier.Service,
	ledgerSvc *ledger.Service,
	sequences sequence.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		suppliers: suppliers,
		ledger:    ledgerSvc,
		sequences: sequences,
		txManager: txManager,
	}
}

// defaultVATRate applies when neither the line nor the product carries a rate.
var defaultVATRate = types.MustMoney("0.19")

// Create records a purchase: resolves or creates the supplier, mints the
// document code, validates and persists every line, moves stock in, and
// stores the aggregated totals. The whole flow is one atomic unit of
// work; the sequence advance alone survives a rollback (gaps tolerated).
func (s *Service) Create(ctx context.Context, in CreateInput) (*Purchase, error) {
	if len(in.Items) == 0 {
		return nil, apperror.NewValidation("purchase must include items").
			WithDetail("field", "items")
	}

	// Numbering runs outside the business transaction.
	seq, err := s.sequences.Next(ctx, SequenceName, sequenceStart)
	if err != nil {
		return nil, fmt.Errorf("next purchase sequence: %w", err)
	}
	code := FormatCode(time.Now().UTC(), seq)

	var doc *Purchase
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sup, err := s.suppliers.Resolve(ctx, in.Supplier)
		if err != nil {
			return err
		}

		doc = New(code, sup.ID, in.Notes)
		doc.SupplierName = sup.Name
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		lines := make([]totals.LineAmounts, 0, len(in.Items))
		items := make([]Item, 0, len(in.Items))

		for _, it := range in.Items {
			prod, err := s.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}

			rate := defaultVATRate
			if it.VATRate != nil {
				rate = *it.VATRate
			}

			amounts, err := totals.ComputeLine(it.Quantity, it.UnitCost, rate)
			if err != nil {
				return err
			}

			items = append(items, Item{
				ID:           id.New(),
				PurchaseID:   doc.ID,
				ProductID:    prod.ID,
				Quantity:     it.Quantity,
				UnitCost:     types.Quantize(it.UnitCost),
				VATRate:      rate,
				TotalExclVAT: amounts.TotalExclVAT,
				VATAmount:    amounts.VATAmount,
				TotalInclVAT: amounts.TotalInclVAT,
			})
			lines = append(lines, amounts)

			// One movement per item keeps the audit trail.
			note := fmt.Sprintf("Compra %s", code)
			if _, err := s.ledger.Adjust(ctx, prod.ID, it.Quantity, ledger.MovementPurchase, note, ledger.DocumentRef("purchase", doc.ID)); err != nil {
				return err
			}
		}

		if err := s.repo.SaveItems(ctx, doc.ID, items); err != nil {
			return fmt.Errorf("save items: %w", err)
		}

		agg := totals.Aggregate(lines)
		doc.ApplyTotals(agg)
		doc.Items = items
		if err := s.repo.UpdateTotals(ctx, doc.ID, agg); err != nil {
			return fmt.Errorf("update totals: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase recorded",
		"id", doc.ID,
		"code", doc.Code,
		"items", len(doc.Items),
		"total", doc.Total,
	)

	return doc, nil
}

// GetByID retrieves a purchase with its items.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	doc, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItems(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	doc.Items = items
	return doc, nil
}

// List retrieves the most recent purchases.
func (s *Service) List(ctx context.Context, limit int) ([]*Purchase, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, limit)
}

// FormatCode builds a date-stamped purchase code like COMP-20250115-1001.
func FormatCode(at time.Time, seq int64) string {
	return fmt.Sprintf("COMP-%s-%d", at.Format("20060102"), seq)
}
