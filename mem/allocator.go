package mem

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/hupe1980/arcmem/internal/mmap"
)

// ErrUnknownSpan is returned when freeing a span the allocator did not hand out.
var ErrUnknownSpan = errors.New("mem: unknown span")

// GoAllocator allocates aligned spans on the Go heap.
// Free is a no-op; the garbage collector reclaims the span.
type GoAllocator struct{}

// Alloc implements Allocator.
func (GoAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return AllocAligned(size), nil
}

// Free implements Allocator.
func (GoAllocator) Free([]byte) error { return nil }

// AnonAllocator allocates each span as its own anonymous memory mapping.
//
// Spans are invisible to the garbage collector: never store Go pointers in them.
type AnonAllocator struct {
	mu       sync.Mutex
	mappings map[uintptr]*mmap.Mapping
}

// NewAnonAllocator creates an off-heap allocator.
func NewAnonAllocator() *AnonAllocator {
	return &AnonAllocator{
		mappings: make(map[uintptr]*mmap.Mapping),
	}
}

// Alloc implements Allocator. The returned span is zero-filled.
func (a *AnonAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("failed to map anonymous memory for span: %w", err)
	}

	buf := m.Bytes()

	a.mu.Lock()
	a.mappings[spanAddr(buf)] = m
	a.mu.Unlock()

	return buf, nil
}

// Free implements Allocator.
func (a *AnonAllocator) Free(buf []byte) error {
	if len(buf) == 0 {
		return ErrUnknownSpan
	}

	addr := spanAddr(buf)

	a.mu.Lock()
	m, ok := a.mappings[addr]
	delete(a.mappings, addr)
	a.mu.Unlock()

	if !ok {
		return ErrUnknownSpan
	}
	return m.Close()
}

// Mapped returns the number of spans currently mapped.
func (a *AnonAllocator) Mapped() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.mappings)
}

func spanAddr(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf))) //nolint:gosec // address used as a map key only
}
