package arc

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/arcmem/internal/fail"
	"github.com/hupe1980/arcmem/mem"
)

// State is the ownership state of a handle.
type State uint32

const (
	// Owning handles hold one reference to a live cell.
	Owning State = iota
	// Moved handles gave their reference to another handle.
	Moved
	// Gone handles have been dropped.
	Gone
)

func (s State) String() string {
	switch s {
	case Owning:
		return "owning"
	case Moved:
		return "moved"
	case Gone:
		return "gone"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

// Dropper is implemented by values that release resources when the last
// handle to their cell is dropped.
type Dropper interface {
	Drop()
}

type cell[T any] struct {
	count atomic.Int64
	heap  mem.Heap
	ref   mem.Ref
	value T
}

// Arc is a handle to an atomically reference-counted cell.
//
// Handles are used through pointers and must not be copied.
type Arc[T any] struct {
	cell  atomic.Pointer[cell[T]]
	state atomic.Uint32
}

// New moves v into a new cell and returns its first handle.
func New[T any](v T, opts ...Option) *Arc[T] {
	return build(applyOptions(opts).heap, func(p *T) { *p = v })
}

// build allocates a cell, initializes the value in place and publishes it.
func build[T any](heap mem.Heap, init func(*T)) *Arc[T] {
	c := &cell[T]{heap: heap}

	size := unsafe.Sizeof(*c)
	ref, err := heap.Allocate(size)
	if err != nil {
		fail.OutOfMemory(size, err)
	}
	c.ref = ref

	init(&c.value)

	// No other handle can see the cell yet.
	c.count.Store(1)

	return wrap(c)
}

func wrap[T any](c *cell[T]) *Arc[T] {
	a := &Arc[T]{}
	a.cell.Store(c)
	return a
}

func (a *Arc[T]) live() *cell[T] {
	c := a.cell.Load()
	if c == nil {
		fail.Abort("arc: use of non-owning handle", "state", a.State().String())
	}
	return c
}

// Borrow returns a pointer to the shared value. It does not touch the count.
// The pointee must be treated as read-only and not used after Drop.
func (a *Arc[T]) Borrow() *T {
	return &a.live().value
}

// Load returns a copy of the shared value.
func (a *Arc[T]) Load() T {
	return a.live().value
}

// Clone returns a new handle to the same cell.
func (a *Arc[T]) Clone() *Arc[T] {
	c := a.live()
	c.count.Add(1)
	return wrap(c)
}

// Move transfers this handle's reference to a new handle.
// The receiver becomes Moved and its Drop is a no-op.
func (a *Arc[T]) Move() *Arc[T] {
	c := a.cell.Swap(nil)
	if c == nil {
		fail.Abort("arc: move of non-owning handle", "state", a.State().String())
	}
	a.state.Store(uint32(Moved))
	return wrap(c)
}

// Drop releases this handle. The last handle to drop frees the cell.
// Dropping a nil, Moved or Gone handle does nothing.
func (a *Arc[T]) Drop() {
	if a == nil {
		return
	}

	c := a.cell.Swap(nil)
	if c == nil {
		return
	}
	a.state.Store(uint32(Gone))

	c.release()
}

// State returns the handle's ownership state.
func (a *Arc[T]) State() State {
	return State(a.state.Load())
}

// Count returns the number of live handles to the cell, or 0 for a
// non-owning handle. The value may be stale by the time it is read.
func (a *Arc[T]) Count() int64 {
	c := a.cell.Load()
	if c == nil {
		return 0
	}
	return c.count.Load()
}

// Same reports whether a and b are handles to the same cell.
func Same[T any](a, b *Arc[T]) bool {
	ca, cb := a.cell.Load(), b.cell.Load()
	return ca != nil && ca == cb
}

func (c *cell[T]) release() {
	n := c.count.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		fail.Abort("arc: reference count underflow", "count", n)
	}

	// The decrement that reached zero is sequentially consistent with every
	// earlier decrement, so all other handles' accesses are visible here.
	dropValue(&c.value)

	var zero T
	c.value = zero
	c.heap.Deallocate(c.ref)
}

// dropValue runs the Drop method of *p, if it has one.
func dropValue[T any](p *T) {
	if d, ok := any(p).(Dropper); ok {
		d.Drop()
		return
	}
	if d, ok := any(*p).(Dropper); ok {
		d.Drop()
	}
}
