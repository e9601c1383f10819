// Package document_repo provides PostgreSQL implementations for the
// document repositories (purchases, invoices, remissions).
package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"puntoventa/internal/infrastructure/storage/postgres"
)

// baseRepo bundles what every document repo needs.
type baseRepo struct {
	txm *postgres.TxManager
}

// builder returns a squirrel builder with PostgreSQL placeholders.
func (r *baseRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// querier returns the ambient transaction or the pool.
func (r *baseRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// prefixed qualifies column names with a table alias, skipping the
// ones listed in except (columns that come from a join instead).
func prefixed(cols []string, alias string, except ...string) []string {
	skip := make(map[string]struct{}, len(except))
	for _, c := range except {
		skip[c] = struct{}{}
	}
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if _, ok := skip[c]; ok {
			continue
		}
		out = append(out, alias+"."+c)
	}
	return out
}
