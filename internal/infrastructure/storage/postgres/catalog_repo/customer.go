package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/customer"
	"puntoventa/internal/infrastructure/storage/postgres"
)

const customerTable = "customers"

// Compile-time check that CustomerRepo implements customer.Repository.
var _ customer.Repository = (*CustomerRepo)(nil)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	baseRepo
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{baseRepo{
		txm:   txm,
		table: customerTable,
		cols:  postgres.ExtractDBColumns[customer.Customer](),
	}}
}

func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	q := r.builder().
		Insert(r.table).
		SetMap(postgres.StructToMap(c))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	data := postgres.StructToMap(c)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(r.table).
		SetMap(data).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", c.ID)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": customerID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c customer.Customer
	if err := pgxscan.Get(ctx, r.querier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customer", customerID)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepo) FindByDocument(ctx context.Context, documentNumber string) (*customer.Customer, error) {
	return r.findOne(ctx, squirrel.Eq{"document_number": documentNumber})
}

func (r *CustomerRepo) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return r.findOne(ctx, squirrel.Eq{"phone": phone})
}

func (r *CustomerRepo) FindByName(ctx context.Context, name string) (*customer.Customer, error) {
	return r.findOne(ctx, squirrel.Eq{"name": name})
}

// findOne runs a single-row lookup. No match is not an error here: the
// dedup flow treats it as "create a new customer".
func (r *CustomerRepo) findOne(ctx context.Context, cond squirrel.Eq) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(cond).
		OrderBy("created_at ASC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c customer.Customer
	if err := pgxscan.Get(ctx, r.querier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepo) List(ctx context.Context, limit int) ([]*customer.Customer, error) {
	q := r.baseSelect().
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*customer.Customer
	if err := pgxscan.Select(ctx, r.querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}
