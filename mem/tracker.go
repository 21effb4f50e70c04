package mem

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/arcmem/internal/conv"
	"github.com/hupe1980/arcmem/internal/fail"
	"github.com/hupe1980/arcmem/internal/resource"
)

// Observer receives allocation events from a Tracker.
type Observer interface {
	RecordAlloc(size int64, err error)
	RecordFree(size int64)
}

// TrackerConfig configures a Tracker.
type TrackerConfig struct {
	// MemoryLimitBytes caps the bytes live at any time. 0 means unlimited.
	MemoryLimitBytes int64

	// Backing provides the spans returned by Alloc. Defaults to GoAllocator.
	Backing Allocator

	// Logger receives debug events. Defaults to a discarding logger.
	Logger *slog.Logger

	// Observer receives allocation events. Optional.
	Observer Observer
}

// TrackerStats is a point-in-time snapshot of a Tracker.
type TrackerStats struct {
	Allocs    uint64 // Historical: successful allocations
	Frees     uint64 // Historical: deallocations
	Failures  uint64 // Historical: rejected allocations
	Live      uint64 // Current: allocations not yet freed
	LiveBytes int64  // Current: bytes not yet freed
	PeakBytes int64  // Historical: highest LiveBytes
}

// Tracker is a Heap and Allocator that accounts for every allocation.
//
// Each allocation gets a fresh ID that stays in the live set until it is
// freed. Freeing an ID that is not live aborts the process.
type Tracker struct {
	backing  Allocator
	logger   *slog.Logger
	observer Observer
	ctrl     *resource.Controller

	nextID atomic.Uint64

	mu    sync.Mutex
	live  *roaring64.Bitmap
	spans map[uintptr]Ref

	allocs   atomic.Uint64
	frees    atomic.Uint64
	failures atomic.Uint64
}

// NewTracker creates a Tracker.
func NewTracker(cfg TrackerConfig) *Tracker {
	if cfg.Backing == nil {
		cfg.Backing = GoAllocator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Tracker{
		backing:  cfg.Backing,
		logger:   cfg.Logger,
		observer: cfg.Observer,
		ctrl:     resource.NewController(resource.Config{MemoryLimitBytes: cfg.MemoryLimitBytes}),
		live:     roaring64.New(),
		spans:    make(map[uintptr]Ref),
	}
}

// Allocate implements Heap.
func (t *Tracker) Allocate(size uintptr) (Ref, error) {
	n, err := conv.UintptrToInt64(size)
	if err == nil {
		err = t.ctrl.AcquireMemory(n)
	}
	if err != nil {
		t.failures.Add(1)
		t.logger.Warn("allocation rejected", "size", size, "error", err)
		if t.observer != nil {
			t.observer.RecordAlloc(n, err)
		}
		return Ref{}, fmt.Errorf("mem: allocate %d bytes: %w", size, err)
	}

	ref := Ref{ID: t.nextID.Add(1), Size: size}

	t.mu.Lock()
	t.live.Add(ref.ID)
	t.mu.Unlock()

	t.allocs.Add(1)
	t.logger.Debug("allocate", "id", ref.ID, "size", size)
	if t.observer != nil {
		t.observer.RecordAlloc(n, nil)
	}
	return ref, nil
}

// Deallocate implements Heap. It aborts if ref is not live.
func (t *Tracker) Deallocate(ref Ref) {
	t.mu.Lock()
	if !t.live.CheckedRemove(ref.ID) {
		t.mu.Unlock()
		fail.Abort("mem: double free", "id", ref.ID, "size", ref.Size)
		return
	}
	t.mu.Unlock()

	n, _ := conv.UintptrToInt64(ref.Size) // Allocate already validated the size
	t.ctrl.ReleaseMemory(n)

	t.frees.Add(1)
	t.logger.Debug("deallocate", "id", ref.ID, "size", ref.Size)
	if t.observer != nil {
		t.observer.RecordFree(n)
	}
}

// Alloc implements Allocator. The span comes from the backing allocator and
// is charged against the tracker like any other allocation.
func (t *Tracker) Alloc(size int) ([]byte, error) {
	usize, err := conv.IntToUintptr(size)
	if err != nil || size == 0 {
		return nil, ErrInvalidSize
	}

	ref, err := t.Allocate(usize)
	if err != nil {
		return nil, err
	}

	buf, err := t.backing.Alloc(size)
	if err != nil {
		t.Deallocate(ref)
		return nil, err
	}

	t.mu.Lock()
	t.spans[spanAddr(buf)] = ref
	t.mu.Unlock()

	return buf, nil
}

// Free implements Allocator. Freeing a span twice aborts.
func (t *Tracker) Free(buf []byte) error {
	if len(buf) == 0 {
		return ErrUnknownSpan
	}

	addr := spanAddr(buf)

	t.mu.Lock()
	ref, ok := t.spans[addr]
	delete(t.spans, addr)
	t.mu.Unlock()

	if !ok {
		fail.Abort("mem: free of unknown span", "addr", fmt.Sprintf("%#x", addr), "len", len(buf))
		return ErrUnknownSpan
	}

	err := t.backing.Free(buf)
	t.Deallocate(ref)
	return err
}

// IsLive reports whether the allocation with the given ID has not been freed.
func (t *Tracker) IsLive(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live.Contains(id)
}

// LiveIDs returns the IDs of all allocations not yet freed, in ascending order.
func (t *Tracker) LiveIDs() []uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live.ToArray()
}

// Stats returns the current tracker statistics.
func (t *Tracker) Stats() TrackerStats {
	t.mu.Lock()
	live := t.live.GetCardinality()
	t.mu.Unlock()

	return TrackerStats{
		Allocs:    t.allocs.Load(),
		Frees:     t.frees.Load(),
		Failures:  t.failures.Load(),
		Live:      live,
		LiveBytes: t.ctrl.MemoryUsage(),
		PeakBytes: t.ctrl.PeakMemoryUsage(),
	}
}

func (t *Tracker) String() string {
	s := t.Stats()
	return fmt.Sprintf(
		"Tracker{allocs: %d, frees: %d, failures: %d, live: %d, live bytes: %d, peak bytes: %d}",
		s.Allocs, s.Frees, s.Failures, s.Live, s.LiveBytes, s.PeakBytes,
	)
}
