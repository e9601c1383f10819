// Package sequence provides the domain contract for persisted named counters.
// Counters mint human-readable document numbers; implementations live in the
// infrastructure layer.
package sequence

import (
	"context"
)

// Generator issues strictly increasing values from persisted named counters.
//
// Next returns the current value of the named counter and atomically advances
// it by one. If the counter does not exist it is created starting at startAt,
// and the first call returns startAt. Issued values never repeat, including
// across process restarts.
//
// Counter advances are intentionally executed outside of business
// transactions: a rolled-back document leaves a gap in the series, which is
// tolerated. Duplicate values are a correctness violation.
type Generator interface {
	Next(ctx context.Context, name string, startAt int64) (int64, error)
}
