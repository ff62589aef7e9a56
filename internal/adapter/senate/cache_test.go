package senate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartovote/vote-map/internal/domain"
)

// --- mock for cache tests ---

type countingSource struct {
	calls int
	err   error
}

func (m *countingSource) Fetch(_ context.Context, congress, session, roll int) (domain.RollCall, error) {
	m.calls++
	if m.err != nil {
		return domain.RollCall{}, m.err
	}
	return domain.RollCall{Congress: congress, Session: session, Number: roll}, nil
}

// --- CachedSource tests ---

func TestCachedSource_Hit(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, 10, testMetrics())

	r1, err := cached.Fetch(context.Background(), 119, 1, 416)
	require.NoError(t, err)
	assert.Equal(t, 416, r1.Number)

	r2, err := cached.Fetch(context.Background(), 119, 1, 416)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedSource_DistinctKeys(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, 10, testMetrics())

	_, err := cached.Fetch(context.Background(), 119, 1, 416)
	require.NoError(t, err)
	_, err = cached.Fetch(context.Background(), 119, 2, 416)
	require.NoError(t, err)
	_, err = cached.Fetch(context.Background(), 119, 1, 417)
	require.NoError(t, err)

	assert.Equal(t, 3, inner.calls)
}

func TestCachedSource_ErrorsNotCached(t *testing.T) {
	inner := &countingSource{err: fmt.Errorf("%w: gone", domain.ErrNotFound)}
	cached := NewCachedSource(inner, 10, testMetrics())

	_, err := cached.Fetch(context.Background(), 119, 1, 416)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	inner.err = nil
	rc, err := cached.Fetch(context.Background(), 119, 1, 416)
	require.NoError(t, err)
	assert.Equal(t, 416, rc.Number)
	assert.Equal(t, 2, inner.calls, "failed fetches must be retried")
}

func TestCachedSource_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, 2, testMetrics())

	_, _ = cached.Fetch(context.Background(), 119, 1, 1)
	_, _ = cached.Fetch(context.Background(), 119, 1, 2)
	// Touch roll 1 so roll 2 becomes least recently used.
	_, _ = cached.Fetch(context.Background(), 119, 1, 1)
	// Roll 3 evicts roll 2.
	_, _ = cached.Fetch(context.Background(), 119, 1, 3)
	assert.Equal(t, 3, inner.calls)

	_, _ = cached.Fetch(context.Background(), 119, 1, 1)
	assert.Equal(t, 3, inner.calls, "roll 1 should still be cached")

	_, _ = cached.Fetch(context.Background(), 119, 1, 2)
	assert.Equal(t, 4, inner.calls, "roll 2 should have been evicted")
}
