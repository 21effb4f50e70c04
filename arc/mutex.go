package arc

import (
	"sync"

	"github.com/hupe1980/arcmem/ptr"
)

type guarded[T any] struct {
	mu    sync.Mutex
	value T
}

// Drop forwards the final drop to the guarded value.
func (g *guarded[T]) Drop() {
	dropValue(&g.value)
}

// MutexArc is a shared cell whose value can be exchanged under a lock.
//
// Handles are used through pointers and must not be copied.
type MutexArc[T any] struct {
	inner *Arc[guarded[T]]
}

// NewMutex moves v into a new lock-guarded cell and returns its first handle.
func NewMutex[T any](v T, opts ...Option) *MutexArc[T] {
	inner := build(applyOptions(opts).heap, func(g *guarded[T]) { g.value = v })
	return &MutexArc[T]{inner: inner}
}

// Swap stores v and returns the previously stored value.
// It blocks while another handle holds the lock.
func (m *MutexArc[T]) Swap(v T) T {
	g := m.inner.Borrow()

	g.mu.Lock()
	defer g.mu.Unlock()

	ptr.Swap(&g.value, &v)
	return v
}

// TrySwap is like Swap but gives up instead of blocking.
// It reports false, and stores nothing, if the lock is held elsewhere.
func (m *MutexArc[T]) TrySwap(v T) (T, bool) {
	g := m.inner.Borrow()

	if !g.mu.TryLock() {
		var zero T
		return zero, false
	}
	defer g.mu.Unlock()

	ptr.Swap(&g.value, &v)
	return v, true
}

// Clone returns a new handle to the same cell. It does not take the lock.
func (m *MutexArc[T]) Clone() *MutexArc[T] {
	return &MutexArc[T]{inner: m.inner.Clone()}
}

// Move transfers this handle's reference to a new handle.
func (m *MutexArc[T]) Move() *MutexArc[T] {
	return &MutexArc[T]{inner: m.inner.Move()}
}

// Drop releases this handle. The last handle to drop frees the cell.
func (m *MutexArc[T]) Drop() {
	if m == nil {
		return
	}
	m.inner.Drop()
}

// State returns the handle's ownership state.
func (m *MutexArc[T]) State() State {
	return m.inner.State()
}

// Count returns the number of live handles to the cell.
func (m *MutexArc[T]) Count() int64 {
	return m.inner.Count()
}

// SameMutex reports whether a and b are handles to the same cell.
func SameMutex[T any](a, b *MutexArc[T]) bool {
	return Same(a.inner, b.inner)
}
