package arcmem

import (
	"context"

	"github.com/hupe1980/arcmem/internal/fail"
	"github.com/hupe1980/arcmem/mem"
)

type options struct {
	memoryLimit      int64
	offHeap          bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a tracker built by NewTracker.
type Option func(*options)

// WithMemoryLimit caps the bytes a tracker lets be live at once.
// Allocations past the limit are rejected; cells rejected this way abort
// the process with an out-of-memory diagnostic.
//
// If limit <= 0, no limit is enforced (only tracking).
func WithMemoryLimit(limit int64) Option {
	return func(o *options) {
		o.memoryLimit = limit
	}
}

// WithOffHeap backs raw spans with anonymous memory mappings instead of
// the Go heap. Off-heap spans must only hold pointer-free data.
func WithOffHeap() Option {
	return func(o *options) {
		o.offHeap = true
	}
}

// WithMetricsCollector configures the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures the logger.
//
// If nil is passed, NoopLogger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// NewTracker creates a mem.Tracker that can serve as both the heap for
// arc cells (arc.WithHeap) and the allocator for arc blocks.
//
// Example:
//
//	tracker := arcmem.NewTracker(
//	    arcmem.WithMemoryLimit(64<<20),
//	    arcmem.WithLogger(arcmem.NewTextLogger(slog.LevelDebug)),
//	)
//	cfg := arc.New(loadConfig(), arc.WithHeap(tracker))
//	defer cfg.Drop()
func NewTracker(opts ...Option) *mem.Tracker {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var backing mem.Allocator = mem.GoAllocator{}
	if o.offHeap {
		backing = mem.NewAnonAllocator()
	}

	logger := o.logger.WithComponent("tracker")
	if o.memoryLimit > 0 {
		logger = logger.WithLimit(o.memoryLimit)
	}

	return mem.NewTracker(mem.TrackerConfig{
		MemoryLimitBytes: o.memoryLimit,
		Backing:          backing,
		Logger:           logger.Logger,
		Observer:         o.metricsCollector,
	})
}

// ReportLeaks logs the allocations still live in t and returns their IDs.
func ReportLeaks(ctx context.Context, l *Logger, t *mem.Tracker) []uint64 {
	ids := t.LiveIDs()
	l.LogLeaks(ctx, ids)
	return ids
}

// SetAbortLogger routes process-abort diagnostics (out of memory, double
// free, use of a dropped handle) to l. A nil logger restores slog.Default().
func SetAbortLogger(l *Logger) {
	if l == nil {
		fail.SetLogger(nil)
		return
	}
	fail.SetLogger(l.Logger)
}
