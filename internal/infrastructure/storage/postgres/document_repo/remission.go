package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/documents/remission"
	"puntoventa/internal/domain/totals"
	"puntoventa/internal/infrastructure/storage/postgres"
)

const (
	remissionTable     = "remissions"
	remissionItemTable = "remission_items"
)

// Compile-time check that RemissionRepo implements remission.Repository.
var _ remission.Repository = (*RemissionRepo)(nil)

// RemissionRepo implements remission.Repository.
type RemissionRepo struct {
	baseRepo
	headerCols []string
	itemCols   []string
}

// NewRemissionRepo creates a new remission repository.
func NewRemissionRepo(txm *postgres.TxManager) *RemissionRepo {
	return &RemissionRepo{
		baseRepo:   baseRepo{txm: txm},
		headerCols: postgres.ExtractDBColumns[remission.Remission](),
		itemCols:   postgres.ExtractDBColumns[remission.Item](),
	}
}

// headerSelect joins the customer catalog for the display name.
func (r *RemissionRepo) headerSelect() squirrel.SelectBuilder {
	cols := prefixed(r.headerCols, "r", "customer_name")
	cols = append(cols, "c.name AS customer_name")
	return r.builder().
		Select(cols...).
		From(remissionTable + " r").
		Join("customers c ON c.id = r.customer_id")
}

func (r *RemissionRepo) Create(ctx context.Context, rem *remission.Remission) error {
	data := postgres.StructToMap(rem)
	delete(data, "customer_name") // join column, not stored

	q := r.builder().
		Insert(remissionTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("remission", "number", rem.Number)
		}
		return fmt.Errorf("insert remission: %w", err)
	}
	return nil
}

func (r *RemissionRepo) SaveItems(ctx context.Context, remissionID id.ID, items []remission.Item) error {
	if len(items) == 0 {
		return nil
	}

	q := r.builder().
		Insert(remissionItemTable).
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
		return fmt.Errorf("insert remission items: %w", err)
	}
	return nil
}

func (r *RemissionRepo) GetByID(ctx context.Context, remissionID id.ID) (*remission.Remission, error) {
	q := r.headerSelect().
		Where(squirrel.Eq{"r.id": remissionID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rem remission.Remission
	if err := pgxscan.Get(ctx, r.querier(ctx), &rem, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("remission", remissionID)
		}
		return nil, fmt.Errorf("get remission: %w", err)
	}
	return &rem, nil
}

func (r *RemissionRepo) GetItems(ctx context.Context, remissionID id.ID) ([]remission.Item, error) {
	q := r.builder().
		Select(r.itemCols...).
		From(remissionItemTable).
		Where(squirrel.Eq{"remission_id": remissionID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []remission.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("get remission items: %w", err)
	}
	return out, nil
}

func (r *RemissionRepo) List(ctx context.Context, limit int) ([]*remission.Remission, error) {
	q := r.headerSelect().
		OrderBy("r.date DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*remission.Remission
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list remissions: %w", err)
	}
	return out, nil
}

func (r *RemissionRepo) UpdateTotals(ctx context.Context, remissionID id.ID, t totals.DocumentTotals) error {
	q := r.builder().
		Update(remissionTable).
		Set("subtotal_excl_vat", t.SubtotalExclVAT).
		Set("vat_total", t.VATTotal).
		Set("total", t.Total).
		Where(squirrel.Eq{"id": remissionID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update remission totals: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("remission", remissionID)
	}
	return nil
}

func (r *RemissionRepo) ItemsByProduct(ctx context.Context, productID id.ID) ([]remission.Item, error) {
	q := r.builder().
		Select(r.itemCols...).
		From(remissionItemTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []remission.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("remission items by product: %w", err)
	}
	return out, nil
}

func (r *RemissionRepo) DeleteItemsByProduct(ctx context.Context, productID id.ID) (int64, error) {
	q := r.builder().
		Delete(remissionItemTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete remission items: %w", err)
	}
	return result.RowsAffected(), nil
}
