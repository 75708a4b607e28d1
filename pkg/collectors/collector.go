// Package collectors supplies live growth metrics for the chart's demo
// mode. A collector produces a single metric value in the engine's 0-1000
// range; the TUI rebuilds the chart model whenever a new sample arrives.
package collectors

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Collector is a single metric source.
type Collector interface {
	// Name returns a unique identifier for this source (e.g. "mem").
	Name() string

	// Collect performs one sample and returns a metric in [0,1000].
	Collect(ctx context.Context) (float64, error)

	// Interval returns how often this source should be sampled.
	Interval() time.Duration
}

// Mock is a deterministic-ish collector for tests and demos without system
// access. It walks a sine wave with a little jitter.
type Mock struct {
	interval time.Duration
	phase    float64
	rng      *rand.Rand
}

// NewMock returns a Mock sampling at the given interval.
func NewMock(interval time.Duration, seed int64) *Mock {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Mock{interval: interval, rng: rand.New(rand.NewSource(seed))}
}

// Name implements Collector.
func (m *Mock) Name() string { return "mock" }

// Interval implements Collector.
func (m *Mock) Interval() time.Duration { return m.interval }

// Collect implements Collector.
func (m *Mock) Collect(context.Context) (float64, error) {
	m.phase += 0.35
	v := 500 + 400*math.Sin(m.phase) + m.rng.Float64()*40
	if v < 0 {
		v = 0
	}
	if v > 1000 {
		v = 1000
	}
	return v, nil
}
