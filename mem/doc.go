// Package mem provides the heap capability that shared cells are charged against.
//
// # Heaps and Allocators
//
// Two interfaces cover the two kinds of storage:
//
//   - Heap accounts for typed cells. The cell itself is a Go allocation (so
//     the garbage collector keeps scanning the value inside it); the Heap
//     sees one Allocate when the cell is created and exactly one Deallocate
//     when the last handle lets go of it.
//   - Allocator hands out raw byte spans. Spans may live off the Go heap
//     (AnonAllocator) and must then only hold pointer-free data.
//
// # Implementations
//
//   - Runtime: a Heap that records nothing; the garbage collector reclaims cells
//   - GoAllocator: 64-byte aligned spans on the Go heap
//   - AnonAllocator: one anonymous mapping per span, unmapped on Free
//   - Tracker: both a Heap and an Allocator; enforces a memory limit,
//     records live allocations in a roaring bitmap, aborts on double free
//
// # Failure
//
// Heaps and allocators return errors. Callers that cannot recover, such as
// arc.New, turn them into an out-of-memory abort.
package mem
