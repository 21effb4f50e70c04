package arcmem

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting allocation metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Any MetricsCollector satisfies mem.Observer and can be handed to a tracker
// with WithMetricsCollector.
type MetricsCollector interface {
	// RecordAlloc is called after each allocation attempt.
	// err is nil if the allocation succeeded.
	RecordAlloc(size int64, err error)

	// RecordFree is called after each deallocation.
	RecordFree(size int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(int64, error) {}
func (NoopMetricsCollector) RecordFree(int64)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount  atomic.Int64
	AllocErrors atomic.Int64
	AllocBytes  atomic.Int64
	FreeCount   atomic.Int64
	FreeBytes   atomic.Int64
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(size int64, err error) {
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	b.AllocCount.Add(1)
	b.AllocBytes.Add(size)
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(size int64) {
	b.FreeCount.Add(1)
	b.FreeBytes.Add(size)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	allocs := b.AllocCount.Load()
	frees := b.FreeCount.Load()
	return BasicMetricsStats{
		AllocCount:  allocs,
		AllocErrors: b.AllocErrors.Load(),
		AllocBytes:  b.AllocBytes.Load(),
		FreeCount:   frees,
		FreeBytes:   b.FreeBytes.Load(),
		Outstanding: allocs - frees,
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocCount  int64
	AllocErrors int64
	AllocBytes  int64
	FreeCount   int64
	FreeBytes   int64
	Outstanding int64
}
