package remission

import (
	"context"
	"fmt"
	"time"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/sequence"
	"puntoventa/internal/core/tx"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/catalogs/customer"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/domain/maintenance"
	"puntoventa/internal/domain/totals"
	"puntoventa/pkg/logger"
)

// SequenceName is the counter series for remission numbers.
const SequenceName = "remission"

// sequenceStart is where the remission series begins.
const sequenceStart = 1

// saleVATRate is the fixed tax rate on outgoing documents, same rule
// as invoices.
var saleVATRate = types.ZeroMoney()

// LineInput is one requested remission line.
type LineInput struct {
	ProductID id.ID
	Quantity  int64
	UnitPrice types.Money
}

// CreateInput is a request to issue a remission.
type CreateInput struct {
	Customer      customer.Input
	Items         []LineInput
	PaymentMethod string
	Notes         string

	// MaintenanceDays schedules a follow-up reminder due that many
	// days out when positive.
	MaintenanceDays int
}

// Service orchestrates the issue-remission flow.
type Service struct {
	repo        Repository
	products    ProductLookup
	customers   *customer.Service
	ledger      *ledger.Service
	maintenance *maintenance.Service
	sequences   sequence.Generator
	txManager   tx.Manager
}

// NewService creates a new remission service.
func NewService(
	repo Repository,
	products ProductLookup,
	customers *customer.Service,
	ledgerSvc *ledger.Service,
	maintenanceSvc *maintenance.Service,
	sequences sequence.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:        repo,
		products:    products,
		customers:   customers,
		ledger:      ledgerSvc,
		maintenance: maintenanceSvc,
		sequences:   sequences,
		txManager:   txManager,
	}
}

// Create issues a remission. Same flow as issuing an invoice: resolve
// or merge the customer, mint the number, validate stock for every
// line, move stock out, store the aggregated totals. One atomic unit
// of work; the sequence advance alone survives a rollback.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Remission, error) {
	if len(in.Items) == 0 {
		return nil, apperror.NewValidation("remission must include items").
			WithDetail("field", "items")
	}

	// Numbering runs outside the business transaction.
	seq, err := s.sequences.Next(ctx, SequenceName, sequenceStart)
	if err != nil {
		return nil, fmt.Errorf("next remission sequence: %w", err)
	}
	number := FormatNumber(time.Now().UTC(), seq)

	var doc *Remission
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cust, err := s.customers.Ensure(ctx, in.Customer)
		if err != nil {
			return err
		}

		doc = New(number, cust.ID, in.PaymentMethod, in.Notes)
		doc.CustomerName = cust.Name
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create remission: %w", err)
		}

		lines := make([]totals.LineAmounts, 0, len(in.Items))
		items := make([]Item, 0, len(in.Items))

		for _, it := range in.Items {
			prod, err := s.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}

			amounts, err := totals.ComputeLine(it.Quantity, it.UnitPrice, saleVATRate)
			if err != nil {
				return err
			}

			items = append(items, Item{
				ID:           id.New(),
				RemissionID:  doc.ID,
				ProductID:    prod.ID,
				Quantity:     it.Quantity,
				UnitPrice:    types.Quantize(it.UnitPrice),
				VATRate:      saleVATRate,
				TotalExclVAT: amounts.TotalExclVAT,
				VATAmount:    amounts.VATAmount,
				TotalInclVAT: amounts.TotalInclVAT,
			})
			lines = append(lines, amounts)

			// Availability is checked against the locked stock value,
			// not the read above, so concurrent sales cannot oversell.
			note := fmt.Sprintf("Remisión %s", number)
			if _, err := s.ledger.Deduct(ctx, prod.ID, prod.Name, it.Quantity, ledger.MovementRemission, note, ledger.DocumentRef("remission", doc.ID)); err != nil {
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

		if in.MaintenanceDays > 0 {
			notes := fmt.Sprintf("Recordatorio por remisión %s", number)
			if _, err := s.maintenance.Schedule(ctx, cust.ID, in.MaintenanceDays, notes, "remission", doc.ID); err != nil {
				return fmt.Errorf("schedule reminder: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "remission issued",
		"id", doc.ID,
		"number", doc.Number,
		"items", len(doc.Items),
		"total", doc.Total,
	)

	return doc, nil
}

// GetByID retrieves a remission with its items.
func (s *Service) GetByID(ctx context.Context, remissionID id.ID) (*Remission, error) {
	doc, err := s.repo.GetByID(ctx, remissionID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItems(ctx, remissionID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	doc.Items = items
	return doc, nil
}

// List retrieves the most recent remissions.
func (s *Service) List(ctx context.Context, limit int) ([]*Remission, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, limit)
}

// FormatNumber builds a date-stamped remission number like
// REM-20250115-001.
func FormatNumber(at time.Time, seq int64) string {
	return fmt.Sprintf("REM-%s-%03d", at.Format("20060102"), seq)
}
