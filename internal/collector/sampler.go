package collector

import (
	"context"
	"time"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// SnapshotBuffer is the capacity of the channel returned by Sampler.Start.
const SnapshotBuffer = 16

// Sampler drives a Collector from a background goroutine.
type Sampler struct {
	collector *Collector
	interval  time.Duration
}

// NewSampler creates a sampler that collects every interval. Non-positive
// intervals fall back to telemetry.DefaultUpdateInterval milliseconds.
func NewSampler(c *Collector, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = telemetry.DefaultUpdateInterval * time.Millisecond
	}
	return &Sampler{collector: c, interval: interval}
}

// Interval returns the tick period.
func (s *Sampler) Interval() time.Duration {
	return s.interval
}

// Start launches the sampling goroutine. One snapshot is collected right
// away, then one per tick. The channel is closed once ctx is cancelled.
func (s *Sampler) Start(ctx context.Context) <-chan telemetry.Snapshot {
	out := make(chan telemetry.Snapshot, SnapshotBuffer)

	go func() {
		defer close(out)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			if ctx.Err() != nil {
				return
			}
			snap := s.collector.Collect(ctx)
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
