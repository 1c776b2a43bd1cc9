package metrics_test

import (
	"context"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedalus-labs/viz-mcp-example/metrics"
	"github.com/dedalus-labs/viz-mcp-example/store"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

const scope = "test_scope"

func Test_Accumulator_SerialPushes(t *testing.T) {
	ctx := context.Background()
	acc := metrics.NewAccumulator(store.NewMemoryStore())
	faker := gofakeit.New(1)

	const n = 25
	values := make([]float64, n)
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = faker.Float64Range(-1000, 1000)
		labels[i] = faker.Word()

		res, err := acc.Push(ctx, scope, values[i], labels[i])
		require.NoError(t, err)
		assert.Equal(t, i+1, res.TotalPoints)
		assert.Equal(t, uint64(i), res.Pushed.SequenceIndex)
	}

	ds, err := acc.Get(ctx, scope)
	require.NoError(t, err)
	require.Equal(t, n, ds.Count())
	for i, s := range ds.Samples {
		assert.Equal(t, uint64(i), s.SequenceIndex)
		assert.Equal(t, values[i], s.Value)
		assert.Equal(t, labels[i], s.Label)
	}
}

func Test_Accumulator_RejectsNonFinite(t *testing.T) {
	ctx := context.Background()
	acc := metrics.NewAccumulator(store.NewMemoryStore())

	_, err := acc.Push(ctx, scope, 1.0, "a")
	require.NoError(t, err)
	before, err := acc.Get(ctx, scope)
	require.NoError(t, err)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := acc.Push(ctx, scope, v, "bad")
		require.Error(t, err)
		assert.True(t, errors.Is(err, vizmodel.ErrInvalidArgument))
	}

	after, err := acc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, before.Count(), after.Count())
}

func Test_Accumulator_ClearIdempotent(t *testing.T) {
	ctx := context.Background()
	acc := metrics.NewAccumulator(store.NewMemoryStore())

	_, err := acc.Push(ctx, scope, 1.0, "a")
	require.NoError(t, err)

	require.NoError(t, acc.Clear(ctx, scope))
	ds, err := acc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Count())

	// second clear is observationally a no-op
	require.NoError(t, acc.Clear(ctx, scope))
	ds, err = acc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Count())
}

func Test_Accumulator_EndToEnd(t *testing.T) {
	ctx := context.Background()
	acc := metrics.NewAccumulator(store.NewMemoryStore())

	res, err := acc.Push(ctx, scope, 1.0, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalPoints)

	res, err = acc.Push(ctx, scope, 2.0, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPoints)

	ds, err := acc.Get(ctx, scope)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Count())
	assert.Equal(t, 1.0, ds.Samples[0].Value)
	assert.Equal(t, "a", ds.Samples[0].Label)
	assert.Equal(t, uint64(0), ds.Samples[0].SequenceIndex)
	assert.Equal(t, 2.0, ds.Samples[1].Value)
	assert.Equal(t, "b", ds.Samples[1].Label)
	assert.Equal(t, uint64(1), ds.Samples[1].SequenceIndex)

	require.NoError(t, acc.Clear(ctx, scope))
	ds, err = acc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Count())
}

func Test_Accumulator_MaxSamples(t *testing.T) {
	ctx := context.Background()
	acc := metrics.NewAccumulator(store.NewMemoryStore()).WithMaxSamples(3)

	for i := 0; i < 5; i++ {
		res, err := acc.Push(ctx, scope, float64(i), "")
		require.NoError(t, err)
		assert.LessOrEqual(t, res.TotalPoints, 3)
	}

	ds, err := acc.Get(ctx, scope)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Count())
	// oldest samples dropped, indexes keep rising
	assert.Equal(t, uint64(2), ds.Samples[0].SequenceIndex)
	assert.Equal(t, uint64(4), ds.Samples[2].SequenceIndex)
	assert.Equal(t, 2.0, ds.Samples[0].Value)
}

func Test_Accumulator_ScopeIsolation(t *testing.T) {
	ctx := context.Background()
	acc := metrics.NewAccumulator(store.NewMemoryStore())

	_, err := acc.Push(ctx, "scope-a", 1.0, "")
	require.NoError(t, err)

	ds, err := acc.Get(ctx, "scope-b")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Count())
}
