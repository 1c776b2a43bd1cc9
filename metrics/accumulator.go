// Package metrics implements the accumulator operating on top of the state
// store: append a labeled numeric sample, return the dataset, or reset it.
// The accumulator holds no cached copy between invocations; every operation
// is a read-modify-write cycle against the store, because the serving process
// may be restarted between tool calls.
package metrics

import (
	"context"
	"time"

	"github.com/effective-security/xlog"

	"github.com/dedalus-labs/viz-mcp-example/store"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

var logger = xlog.NewPackageLogger("github.com/dedalus-labs/viz-mcp-example", "metrics")

// Accumulator is stateless across calls and safe for concurrent use on
// independent scopes. Concurrent pushes on the same scope are not serialized:
// the read-modify-write cycle can race and one append may be lost
// (last-write-wins on the dataset as a whole).
type Accumulator struct {
	store      store.StateStore
	maxSamples int
}

// NewAccumulator returns an accumulator over the given store.
func NewAccumulator(st store.StateStore) *Accumulator {
	return &Accumulator{store: st}
}

// WithMaxSamples caps the dataset size; the oldest samples are dropped once
// the cap is exceeded, while sequence indexes keep rising. A non-positive cap
// means unlimited.
func (a *Accumulator) WithMaxSamples(n int) *Accumulator {
	a.maxSamples = n
	return a
}

// PushResult reports the appended sample and the resulting dataset size.
type PushResult struct {
	Pushed      vizmodel.Sample `json:"pushed"`
	TotalPoints int             `json:"total_points"`
}

// Push appends one sample under scope. The value must be finite; validation
// happens before any store access so an invalid push leaves the dataset
// untouched.
func (a *Accumulator) Push(ctx context.Context, scope string, value float64, label string) (*PushResult, error) {
	if err := vizmodel.ValidateValue(value); err != nil {
		return nil, err
	}

	ds, err := a.store.Read(ctx, scope)
	if err != nil {
		return nil, err
	}

	pushed := ds.Append(value, label, time.Now().UTC())
	ds.Trim(a.maxSamples)

	if err := a.store.Write(ctx, scope, ds); err != nil {
		return nil, err
	}

	logger.ContextKV(ctx, xlog.DEBUG, "op", "push", "scope", scope, "count", len(ds.Samples))
	return &PushResult{
		Pushed:      pushed,
		TotalPoints: len(ds.Samples),
	}, nil
}

// Get returns the current dataset for scope without mutating it.
func (a *Accumulator) Get(ctx context.Context, scope string) (*vizmodel.Dataset, error) {
	return a.store.Read(ctx, scope)
}

// Clear overwrites the dataset for scope with an empty one. Clearing an
// already-empty dataset is observationally a no-op.
func (a *Accumulator) Clear(ctx context.Context, scope string) error {
	err := a.store.Write(ctx, scope, vizmodel.NewDataset())
	if err != nil {
		return err
	}
	logger.ContextKV(ctx, xlog.DEBUG, "op", "clear", "scope", scope)
	return nil
}
