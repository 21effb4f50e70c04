package arcmem_test

import (
	"fmt"

	"github.com/hupe1980/arcmem"
	"github.com/hupe1980/arcmem/arc"
	"github.com/hupe1980/arcmem/ptr"
)

// Example_sharedValue shares one immutable value between handles.
func Example_sharedValue() {
	tracker := arcmem.NewTracker()

	a := arc.New(42, arc.WithHeap(tracker))
	b := a.Clone()
	c := b.Clone()

	fmt.Println("handles:", a.Count())

	a.Drop()
	b.Drop()
	fmt.Println("live after two drops:", tracker.Stats().Live)

	c.Drop()
	fmt.Println("live after last drop:", tracker.Stats().Live)
	// Output:
	// handles: 3
	// live after two drops: 1
	// live after last drop: 0
}

// Example_mutexArc exchanges the value behind a lock-guarded cell.
func Example_mutexArc() {
	m := arc.NewMutex("a")
	defer m.Drop()

	fmt.Println(m.Swap("b"))
	fmt.Println(m.Swap("c"))
	// Output:
	// a
	// b
}

// Example_overlappingCopy shifts a buffer in place.
func Example_overlappingCopy() {
	buf := []byte("abcdef")
	ptr.Copy(&buf[2], &buf[0], 4)
	fmt.Println(string(buf))
	// Output: ababcd
}
