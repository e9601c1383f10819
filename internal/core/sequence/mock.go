package sequence

import (
	"context"
	"sync"
)

// MockGenerator is an in-memory test implementation of Generator.
// Use in unit tests to avoid database dependencies.
type MockGenerator struct {
	mu       sync.Mutex
	counters map[string]int64

	// NextFunc overrides the default behavior when set.
	NextFunc func(ctx context.Context, name string, startAt int64) (int64, error)
}

// NewMockGenerator creates a MockGenerator with empty counters.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{counters: make(map[string]int64)}
}

// Next implements Generator with the same semantics as the persisted
// implementation: first call for a name returns startAt, later calls
// return strictly increasing values.
func (m *MockGenerator) Next(ctx context.Context, name string, startAt int64) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, name, startAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	cur, ok := m.counters[name]
	if !ok {
		cur = startAt
	}
	m.counters[name] = cur + 1
	return cur, nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
