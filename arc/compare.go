package arc

import "cmp"

// DeepCloner is implemented by values that can produce an independent copy
// of themselves.
type DeepCloner[T any] interface {
	DeepClone() T
}

// DeepClone returns a handle to a new cell holding a deep copy of a's value.
// The new cell is charged against the same heap as the original.
func DeepClone[T DeepCloner[T]](a *Arc[T]) *Arc[T] {
	return DeepCloneFunc(a, func(v T) T { return v.DeepClone() })
}

// DeepCloneFunc is like DeepClone but copies the value with clone.
func DeepCloneFunc[T any](a *Arc[T], clone func(T) T) *Arc[T] {
	c := a.live()
	v := clone(c.value)
	return build(c.heap, func(p *T) { *p = v })
}

// Equal reports whether the values of a and b are equal.
// Handles to different cells compare by value.
func Equal[T comparable](a, b *Arc[T]) bool {
	return *a.Borrow() == *b.Borrow()
}

// EqualFunc is like Equal but uses eq to compare the values.
func EqualFunc[T any](a, b *Arc[T], eq func(T, T) bool) bool {
	return eq(*a.Borrow(), *b.Borrow())
}

// Compare returns -1, 0 or +1 depending on how a's value orders against b's.
func Compare[T cmp.Ordered](a, b *Arc[T]) int {
	return cmp.Compare(*a.Borrow(), *b.Borrow())
}

// CompareFunc is like Compare but uses cmpFn to order the values.
func CompareFunc[T any](a, b *Arc[T], cmpFn func(T, T) int) int {
	return cmpFn(*a.Borrow(), *b.Borrow())
}

// Less reports whether a's value is less than b's.
func Less[T cmp.Ordered](a, b *Arc[T]) bool {
	return cmp.Less(*a.Borrow(), *b.Borrow())
}
