package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSource is a configurable domain.ProductSource
type fakeSource struct {
	name   string
	items  []domain.RawProduct
	err    error
	delay  time.Duration
	panics bool

	calls     atomic.Int32
	lastQuery atomic.Value
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, q domain.SourceQuery) ([]domain.RawProduct, error) {
	f.calls.Add(1)
	f.lastQuery.Store(q)
	if f.panics {
		panic("boom")
	}
	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func raw(names ...string) []domain.RawProduct {
	items := make([]domain.RawProduct, len(names))
	for i, n := range names {
		items[i] = domain.RawProduct{Name: n, Price: 10.0}
	}
	return items
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps configuration order with local last", func(t *testing.T) {
		slow := &fakeSource{name: "claude", items: raw("A"), delay: 30 * time.Millisecond}
		fast := &fakeSource{name: "rainforest", items: raw("B", "C")}
		local := &fakeSource{name: "local", items: raw("D")}
		agg := NewAggregator([]domain.ProductSource{slow, fast}, local, AggregatorConfig{}, nil)

		result, err := agg.Aggregate(ctx, domain.SourceQuery{Query: "serum"}, false)
		require.NoError(t, err)

		require.Len(t, result.Batches, 3)
		assert.Equal(t, "claude", result.Batches[0].Source)
		assert.Equal(t, "rainforest", result.Batches[1].Source)
		assert.Equal(t, "local", result.Batches[2].Source)
		assert.Len(t, result.Batches[1].Items, 2)

		for _, r := range result.Reports {
			assert.True(t, r.OK, "source %s", r.Name)
		}
		assert.Equal(t, []string{"claude", "rainforest", "local"}, agg.Sources())
	})

	t.Run("a failing source contributes nothing", func(t *testing.T) {
		bad := &fakeSource{name: "openai", err: errors.New("500 from upstream")}
		local := &fakeSource{name: "local", items: raw("D")}
		agg := NewAggregator([]domain.ProductSource{bad}, local, AggregatorConfig{}, nil)

		result, err := agg.Aggregate(ctx, domain.SourceQuery{Query: "serum"}, false)
		require.NoError(t, err)

		assert.Empty(t, result.Batches[0].Items)
		assert.False(t, result.Reports[0].OK)
		assert.Equal(t, 0, result.Reports[0].Count)
		assert.Contains(t, result.Reports[0].Error, "500")
		assert.Len(t, result.Batches[1].Items, 1)
	})

	t.Run("a panicking source is contained", func(t *testing.T) {
		bad := &fakeSource{name: "gemini", panics: true}
		local := &fakeSource{name: "local", items: raw("D")}
		agg := NewAggregator([]domain.ProductSource{bad}, local, AggregatorConfig{}, nil)

		result, err := agg.Aggregate(ctx, domain.SourceQuery{Query: "serum"}, false)
		require.NoError(t, err)

		assert.False(t, result.Reports[0].OK)
		assert.Contains(t, result.Reports[0].Error, "panic")
		assert.True(t, result.Reports[1].OK)
	})

	t.Run("a slow source is bounded by its timeout", func(t *testing.T) {
		slow := &fakeSource{name: "rainforest", items: raw("late"), delay: 5 * time.Second}
		local := &fakeSource{name: "local", items: raw("D")}
		agg := NewAggregator([]domain.ProductSource{slow}, local, AggregatorConfig{SourceTimeout: 50 * time.Millisecond}, nil)

		start := time.Now()
		result, err := agg.Aggregate(ctx, domain.SourceQuery{Query: "serum"}, false)
		require.NoError(t, err)

		assert.Less(t, time.Since(start), 2*time.Second)
		assert.False(t, result.Reports[0].OK)
		assert.Len(t, result.Batches[1].Items, 1)
	})

	t.Run("skipRemote queries only the local source", func(t *testing.T) {
		remote := &fakeSource{name: "rainforest", items: raw("B")}
		local := &fakeSource{name: "local", items: raw("D")}
		agg := NewAggregator([]domain.ProductSource{remote}, local, AggregatorConfig{}, nil)

		result, err := agg.Aggregate(ctx, domain.SourceQuery{Query: "global"}, true)
		require.NoError(t, err)

		assert.Equal(t, int32(0), remote.calls.Load())
		require.Len(t, result.Batches, 1)
		assert.Equal(t, "local", result.Batches[0].Source)
	})

	t.Run("passes the query through", func(t *testing.T) {
		local := &fakeSource{name: "local"}
		agg := NewAggregator(nil, local, AggregatorConfig{}, nil)

		q := domain.SourceQuery{Query: "tanning", Category: "Tanning", Limit: 7}
		_, err := agg.Aggregate(ctx, q, false)
		require.NoError(t, err)

		assert.Equal(t, q, local.lastQuery.Load())
	})

	t.Run("expired request context is a timeout", func(t *testing.T) {
		local := &fakeSource{name: "local", items: raw("D"), delay: time.Second}
		agg := NewAggregator(nil, local, AggregatorConfig{}, nil)

		expired, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		_, err := agg.Aggregate(expired, domain.SourceQuery{}, false)
		assert.ErrorIs(t, err, domain.ErrRequestTimeout)
	})
}
