package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/maintenance"
	"puntoventa/internal/infrastructure/storage/postgres"
)

const reminderTable = "maintenance_reminders"

// Compile-time check that ReminderRepo implements maintenance.Repository.
var _ maintenance.Repository = (*ReminderRepo)(nil)

// ReminderRepo implements maintenance.Repository.
type ReminderRepo struct {
	txm  *postgres.TxManager
	cols []string
}

// NewReminderRepo creates a new maintenance reminder repository.
func NewReminderRepo(txm *postgres.TxManager) *ReminderRepo {
	return &ReminderRepo{
		txm:  txm,
		cols: postgres.ExtractDBColumns[maintenance.Reminder](),
	}
}

func (r *ReminderRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ReminderRepo) Create(ctx context.Context, rem *maintenance.Reminder) error {
	data := postgres.StructToMap(rem)
	delete(data, "customer_name") // join column, not stored

	q := r.builder().
		Insert(reminderTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepo) ListDue(ctx context.Context, until time.Time) ([]*maintenance.Reminder, error) {
	cols := make([]string, 0, len(r.cols))
	for _, c := range r.cols {
		if c == "customer_name" {
			continue
		}
		cols = append(cols, "m."+c)
	}
	cols = append(cols, "c.name AS customer_name")

	q := r.builder().
		Select(cols...).
		From(reminderTable + " m").
		Join("customers c ON c.id = m.customer_id").
		Where(squirrel.LtOrEq{"m.due_date": until}).
		OrderBy("m.due_date ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*maintenance.Reminder
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	return out, nil
}

func (r *ReminderRepo) Delete(ctx context.Context, reminderID id.ID) error {
	q := r.builder().
		Delete(reminderTable).
		Where(squirrel.Eq{"id": reminderID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("reminder", reminderID)
	}
	return nil
}
