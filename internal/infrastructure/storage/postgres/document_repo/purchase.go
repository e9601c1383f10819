package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/documents/purchase"
	"puntoventa/internal/domain/totals"
	"puntoventa/internal/infrastructure/storage/postgres"
)

const (
	purchaseTable     = "purchases"
	purchaseItemTable = "purchase_items"
)

// Compile-time check that PurchaseRepo implements purchase.Repository.
var _ purchase.Repository = (*PurchaseRepo)(nil)

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	baseRepo
	headerCols []string
	itemCols   []string
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		baseRepo:   baseRepo{txm: txm},
		headerCols: postgres.ExtractDBColumns[purchase.Purchase](),
		itemCols:   postgres.ExtractDBColumns[purchase.Item](),
	}
}

// headerSelect joins the supplier catalog for the display name.
func (r *PurchaseRepo) headerSelect() squirrel.SelectBuilder {
	cols := prefixed(r.headerCols, "p", "supplier_name")
	cols = append(cols, "s.name AS supplier_name")
	return r.builder().
		Select(cols...).
		From(purchaseTable + " p").
		Join("suppliers s ON s.id = p.supplier_id")
}

func (r *PurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	data := postgres.StructToMap(p)
	delete(data, "supplier_name") // join column, not stored

	q := r.builder().
		Insert(purchaseTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("purchase", "code", p.Code)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) SaveItems(ctx context.Context, purchaseID id.ID, items []purchase.Item) error {
	if len(items) == 0 {
		return nil
	}

	q := r.builder().
		Insert(purchaseItemTable).
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
		return fmt.Errorf("insert purchase items: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*purchase.Purchase, error) {
	q := r.headerSelect().
		Where(squirrel.Eq{"p.id": purchaseID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p purchase.Purchase
	if err := pgxscan.Get(ctx, r.querier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase", purchaseID)
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

func (r *PurchaseRepo) GetItems(ctx context.Context, purchaseID id.ID) ([]purchase.Item, error) {
	q := r.builder().
		Select(r.itemCols...).
		From(purchaseItemTable).
		Where(squirrel.Eq{"purchase_id": purchaseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []purchase.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("get purchase items: %w", err)
	}
	return out, nil
}

func (r *PurchaseRepo) List(ctx context.Context, limit int) ([]*purchase.Purchase, error) {
	q := r.headerSelect().
		OrderBy("p.date DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*purchase.Purchase
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return out, nil
}

func (r *PurchaseRepo) UpdateTotals(ctx context.Context, purchaseID id.ID, t totals.DocumentTotals) error {
	q := r.builder().
		Update(purchaseTable).
		Set("subtotal_excl_vat", t.SubtotalExclVAT).
		Set("vat_total", t.VATTotal).
		Set("total", t.Total).
		Where(squirrel.Eq{"id": purchaseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update purchase totals: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("purchase", purchaseID)
	}
	return nil
}

func (r *PurchaseRepo) ItemsByProduct(ctx context.Context, productID id.ID) ([]purchase.Item, error) {
	q := r.builder().
		Select(r.itemCols...).
		From(purchaseItemTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []purchase.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("purchase items by product: %w", err)
	}
	return out, nil
}

func (r *PurchaseRepo) DeleteItemsByProduct(ctx context.Context, productID id.ID) (int64, error) {
	q := r.builder().
		Delete(purchaseItemTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete purchase items: %w", err)
	}
	return result.RowsAffected(), nil
}
