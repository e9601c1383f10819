package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"puntoventa/internal/core/sequence"
)

// Ensure compile-time interface compliance.
var _ sequence.Generator = (*SequenceGenerator)(nil)

// SequenceGenerator is the persisted sequence.Generator. It always
// talks to the pool directly, never the ambient transaction: a counter
// advance must survive the caller's rollback so a failed document can
// never hand its number to a later one. Gaps are the price, duplicates
// the thing prevented.
type SequenceGenerator struct {
	pool *pgxpool.Pool
}

// NewSequenceGenerator creates a pool-backed sequence generator.
func NewSequenceGenerator(pool *Pool) *SequenceGenerator {
	return &SequenceGenerator{pool: pool.Pool}
}

// Next returns the current value for the named series and advances it,
// in a single UPSERT. The first call for a name returns startAt.
func (g *SequenceGenerator) Next(ctx context.Context, name string, startAt int64) (int64, error) {
	var current int64
	err := g.pool.QueryRow(ctx, `
        INSERT INTO document_sequences (name, next_value)
        VALUES ($1, $2 + 1)
        ON CONFLICT (name) DO UPDATE SET next_value = document_sequences.next_value + 1
        RETURNING next_value - 1
	`, name, startAt).Scan(&current)
	if err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", name, err)
	}
	return current, nil
}
