package mem

import "errors"

// ErrInvalidSize is returned for non-positive span sizes.
var ErrInvalidSize = errors.New("mem: invalid size")

// Ref identifies one allocation made through a Heap.
type Ref struct {
	ID   uint64
	Size uintptr
}

// Heap is the allocate/deallocate capability behind shared cells.
//
// Deallocate is called exactly once per successful Allocate.
type Heap interface {
	Allocate(size uintptr) (Ref, error)
	Deallocate(ref Ref)
}

// Allocator hands out raw byte spans.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte) error
}

// Runtime is a Heap that leaves reclamation to the garbage collector.
type Runtime struct{}

// Allocate implements Heap.
func (Runtime) Allocate(size uintptr) (Ref, error) { return Ref{Size: size}, nil }

// Deallocate implements Heap.
func (Runtime) Deallocate(Ref) {}
