package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedwinning/enrichment-engine/internal/types"
)

func TestTriager_MarksReachability(t *testing.T) {
	up := testEntry("up")
	down := testEntry("down")
	store := newFakeStore(up, down)

	probe := func(_ context.Context, url string) bool {
		return strings.Contains(url, "up")
	}

	triager := NewTriager(store, probe, 2)
	reachable, unreachable, err := triager.Run(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, reachable)
	assert.Equal(t, 1, unreachable)
	assert.Equal(t, types.StatusReachable, store.statuses[up.ID])
	assert.Equal(t, types.StatusNeedsTriage, store.statuses[down.ID])
}

func TestTriager_SelectsPendingOnly(t *testing.T) {
	store := newFakeStore()
	triager := NewTriager(store, func(context.Context, string) bool { return true }, 0)

	_, _, err := triager.Run(context.Background(), 25)
	require.NoError(t, err)

	require.Len(t, store.selections, 1)
	assert.Equal(t, []types.EnrichmentStatus{types.StatusPending}, store.selections[0].Statuses)
	assert.Equal(t, uint64(25), store.selections[0].Limit)
}

func TestTriager_BoundsConcurrency(t *testing.T) {
	entries := make([]types.Entry, 20)
	for i := range entries {
		entries[i] = testEntry("site")
	}
	store := newFakeStore(entries...)

	var mu sync.Mutex
	inFlight, peak := 0, 0
	probe := func(_ context.Context, _ string) bool {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		mu.Lock()
		inFlight--
		mu.Unlock()
		return true
	}

	triager := NewTriager(store, probe, 4)
	_, _, err := triager.Run(context.Background(), 20)
	require.NoError(t, err)

	assert.LessOrEqual(t, peak, 4)
}
