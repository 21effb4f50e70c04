// Package arcmem provides shared-ownership and raw-memory primitives.
//
// The building blocks live in sub-packages:
//
//   - arc: Arc, an atomically reference-counted cell for sharing immutable
//     values across goroutines; MutexArc, its lock-guarded sibling for
//     shared mutable values; Block, a refcountable raw byte span
//   - ptr: raw memory operations (non-overlapping copy, overlap-safe copy,
//     fill, swap) over element spans
//   - mem: the heap capability cells are charged against, including an
//     off-heap allocator and an accounting Tracker
//
// This package carries the ambient surface: structured logging, metrics and
// the options used to build a configured Tracker.
//
// # Quick Start
//
//	tracker := arcmem.NewTracker(arcmem.WithMemoryLimit(64 << 20))
//
//	shared := arc.New(settings, arc.WithHeap(tracker))
//	for range workers {
//	    h := shared.Clone()
//	    go func() {
//	        defer h.Drop()
//	        serve(h.Borrow())
//	    }()
//	}
//	shared.Drop()
//
//	latest := arc.NewMutex(snapshot{}, arc.WithHeap(tracker))
//	prev := latest.Swap(next)
//
// # Failure Model
//
// Core operations never return errors. When the heap refuses a cell, or a
// handle is used after it was dropped, the process aborts with a diagnostic
// logged through log/slog (see SetAbortLogger). Contract violations such as
// overlapping spans passed to ptr.CopyNonoverlapping are undefined behavior
// and are not detected.
package arcmem
