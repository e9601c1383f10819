// Package catalog_repo provides PostgreSQL implementations for the
// catalog repositories (products, suppliers, customers).
package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"puntoventa/internal/infrastructure/storage/postgres"
)

// baseRepo bundles what every catalog repo needs: the table, its
// column list extracted from db tags, and the transaction manager that
// resolves the ambient querier.
type baseRepo struct {
	txm   *postgres.TxManager
	table string
	cols  []string
}

// builder returns a squirrel builder with PostgreSQL placeholders.
func (r *baseRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// baseSelect creates a SELECT over the repo's columns.
func (r *baseRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(r.cols...).From(r.table)
}

// querier returns the ambient transaction or the pool.
func (r *baseRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}
