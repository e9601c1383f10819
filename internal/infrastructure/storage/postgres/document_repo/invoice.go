package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/documents/invoice"
	"puntoventa/internal/domain/totals"
	"puntoventa/internal/infrastructure/storage/postgres"
)

const (
	invoiceTable     = "invoices"
	invoiceItemTable = "invoice_items"
)

// Compile-time check that InvoiceRepo implements invoice.Repository.
var _ invoice.Repository = (*InvoiceRepo)(nil)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	baseRepo
	headerCols []string
	itemCols   []string
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		baseRepo:   baseRepo{txm: txm},
		headerCols: postgres.ExtractDBColumns[invoice.Invoice](),
		itemCols:   postgres.ExtractDBColumns[invoice.Item](),
	}
}

// headerSelect joins the customer catalog for the display name.
func (r *InvoiceRepo) headerSelect() squirrel.SelectBuilder {
	cols := prefixed(r.headerCols, "i", "customer_name")
	cols = append(cols, "c.name AS customer_name")
	return r.builder().
		Select(cols...).
		From(invoiceTable + " i").
		Join("customers c ON c.id = i.customer_id")
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	data := postgres.StructToMap(inv)
	delete(data, "customer_name") // join column, not stored

	q := r.builder().
		Insert(invoiceTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("invoice", "number", inv.Number)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) SaveItems(ctx context.Context, invoiceID id.ID, items []invoice.Item) error {
	if len(items) == 0 {
		return nil
	}

	q := r.builder().
		Insert(invoiceItemTable).
		Columns(r.itemCols...)
	for _, it := range items {
		data := postgres.StructToMap(it)
		vals := make([]any, 0, len(r.itemCols))
		for _, col := range r.itemCols {
			vals = append(vals, data[col])
		}
		q = q.Values(vals...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice items: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	q := r.headerSelect().
		Where(squirrel.Eq{"i.id": invoiceID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.Invoice
	if err := pgxscan.Get(ctx, r.querier(ctx), &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID id.ID) ([]invoice.Item, error) {
	q := r.builder().
		Select(r.itemCols...).
		From(invoiceItemTable).
		Where(squirrel.Eq{"invoice_id": invoiceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []invoice.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	return out, nil
}

func (r *InvoiceRepo) List(ctx context.Context, limit int) ([]*invoice.Invoice, error) {
	q := r.headerSelect().
		OrderBy("i.date DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*invoice.Invoice
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return out, nil
}

func (r *InvoiceRepo) UpdateTotals(ctx context.Context, invoiceID id.ID, t totals.DocumentTotals) error {
	q := r.builder().
		Update(invoiceTable).
		Set("subtotal_excl_vat", t.SubtotalExclVAT).
		Set("vat_total", t.VATTotal).
		Set("total", t.Total).
		Where(squirrel.Eq{"id": invoiceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update invoice totals: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("invoice", invoiceID)
	}
	return nil
}

func (r *InvoiceRepo) ItemsByProduct(ctx context.Context, productID id.ID) ([]invoice.Item, error) {
	q := r.builder().
		Select(r.itemCols...).
		From(invoiceItemTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []invoice.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("invoice items by product: %w", err)
	}
	return out, nil
}

func (r *InvoiceRepo) DeleteItemsByProduct(ctx context.Context, productID id.ID) (int64, error) {
	q := r.builder().
		Delete(invoiceItemTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete invoice items: %w", err)
	}
	return result.RowsAffected(), nil
}
