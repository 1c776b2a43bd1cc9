package vizmodel

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidArgument indicates malformed or out-of-range tool input.
	// Detected before any state store access and never retried.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStoreUnavailable indicates a state store read or write failed.
	ErrStoreUnavailable = errors.New("state store unavailable")
	// ErrRenderFailure indicates chart generation could not produce an image.
	ErrRenderFailure = errors.New("chart render failed")
)

// Sample is one recorded observation. Immutable once recorded; samples are
// never individually deleted, only bulk-cleared with the dataset.
type Sample struct {
	Value         float64   `json:"value"`
	Label         string    `json:"label"`
	SequenceIndex uint64    `json:"sequence_index"`
	Time          time.Time `json:"ts"`
}

// Dataset is the ordered sequence of samples stored under one scope.
// Ordering is insertion order; SequenceIndex is assigned at append time and
// is monotonically increasing within a dataset.
type Dataset struct {
	Samples     []Sample   `json:"metrics"`
	LastUpdated *time.Time `json:"last_updated"`
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{Samples: []Sample{}}
}

// Count returns the number of samples.
func (d *Dataset) Count() int {
	if d == nil {
		return 0
	}
	return len(d.Samples)
}

// Append records a new sample and stamps LastUpdated. The sequence index
// continues from the last sample so that indexes keep rising even after a
// capacity trim.
func (d *Dataset) Append(value float64, label string, now time.Time) Sample {
	var next uint64
	if n := len(d.Samples); n > 0 {
		next = d.Samples[n-1].SequenceIndex + 1
	}
	s := Sample{
		Value:         value,
		Label:         label,
		SequenceIndex: next,
		Time:          now,
	}
	d.Samples = append(d.Samples, s)
	d.LastUpdated = &now
	return s
}

// Trim drops the oldest samples so that at most max remain.
// A non-positive max leaves the dataset unchanged.
func (d *Dataset) Trim(max int) {
	if max <= 0 || len(d.Samples) <= max {
		return
	}
	d.Samples = d.Samples[len(d.Samples)-max:]
}

// Clone returns a deep copy so that callers can mutate the result without
// aliasing the stored dataset.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return NewDataset()
	}
	c := &Dataset{Samples: make([]Sample, len(d.Samples))}
	copy(c.Samples, d.Samples)
	if d.LastUpdated != nil {
		t := *d.LastUpdated
		c.LastUpdated = &t
	}
	return c
}

// ValidateValue rejects non-finite sample values.
func ValidateValue(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Mark(errors.Newf("value must be a finite number, got %v", value), ErrInvalidArgument)
	}
	return nil
}
