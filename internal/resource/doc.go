// Package resource enforces a memory budget for tracked allocations.
//
// A Controller pairs a weighted semaphore (the hard limit) with atomic
// counters (current usage and peak). Acquisition never blocks: when the
// budget is exhausted AcquireMemory returns ErrMemoryLimitExceeded and the
// caller decides what that means. For the heap behind arc cells it means an
// out-of-memory abort.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(size); err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(size)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
