// Package register_repo provides PostgreSQL implementations for the
// register repositories: the stock movement log and maintenance
// reminders.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/infrastructure/storage/postgres"
)

const movementTable = "stock_movements"

// Compile-time check that MovementRepo implements ledger.Repository.
var _ ledger.Repository = (*MovementRepo)(nil)

// MovementRepo implements ledger.Repository. Movement rows are append
// only; the single delete path exists for product cascade deletion.
type MovementRepo struct {
	txm  *postgres.TxManager
	cols []string
}

// NewMovementRepo creates a new movement repository.
func NewMovementRepo(txm *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		txm:  txm,
		cols: postgres.ExtractDBColumns[ledger.Movement](),
	}
}

func (r *MovementRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *MovementRepo) Insert(ctx context.Context, m *ledger.Movement) error {
	q := r.builder().
		Insert(movementTable).
		SetMap(postgres.StructToMap(m))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*ledger.Movement, error) {
	q := r.builder().
		Select(r.cols...).
		From(movementTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*ledger.Movement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return out, nil
}

func (r *MovementRepo) DeleteByProduct(ctx context.Context, productID id.ID) (int64, error) {
	q := r.builder().
		Delete(movementTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete movements: %w", err)
	}
	return result.RowsAffected(), nil
}
