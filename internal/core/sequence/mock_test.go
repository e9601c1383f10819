package sequence

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_StartsAtAndAdvances(t *testing.T) {
	gen := NewMockGenerator()
	ctx := context.Background()

	v, err := gen.Next(ctx, "purchase", 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), v)

	v, err = gen.Next(ctx, "purchase", 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1002), v)
}

func TestNext_SeriesAreIndependent(t *testing.T) {
	gen := NewMockGenerator()
	ctx := context.Background()

	p, err := gen.Next(ctx, "purchase", 1001)
	require.NoError(t, err)
	i, err := gen.Next(ctx, "invoice", 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1001), p)
	assert.Equal(t, int64(1), i)

	i, err = gen.Next(ctx, "invoice", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), i)
}

func TestNext_NeverRepeatsUnderConcurrency(t *testing.T) {
	gen := NewMockGenerator()
	ctx := context.Background()

	const workers = 8
	const perWorker = 50

	var mu sync.Mutex
	var wg sync.WaitGroup
	values := make([]int64, 0, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				v, err := gen.Next(ctx, "invoice", 1)
				assert.NoError(t, err)
				mu.Lock()
				values = append(values, v)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Slice(values, func(a, b int) bool { return values[a] < values[b] })
	for i := 1; i < len(values); i++ {
		require.NotEqual(t, values[i-1], values[i], "duplicate sequence value issued")
	}
	assert.Equal(t, int64(1), values[0])
	assert.Equal(t, int64(workers*perWorker), values[len(values)-1])
}

func TestNext_ContinuesFromStoredCounterAfterRestart(t *testing.T) {
	ctx := context.Background()

	gen := NewMockGenerator()
	v, err := gen.Next(ctx, "invoice", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	v, err = gen.Next(ctx, "invoice", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	// A fresh generator over the surviving counter state stands in
	// for a process restart: the stored counter wins over startAt,
	// so numbers already issued are never handed out again.
	restarted := &MockGenerator{counters: gen.counters}
	v, err = restarted.Next(ctx, "invoice", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	// A series never seen before still begins at its startAt.
	v, err = restarted.Next(ctx, "purchase", 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), v)
}
