package arc

import (
	"bytes"

	"github.com/hupe1980/arcmem/internal/fail"
	"github.com/hupe1980/arcmem/mem"
	"github.com/hupe1980/arcmem/ptr"
)

// Block is an immutable byte span owned by a mem.Allocator.
//
// Shared through an Arc, the span goes back to its allocator exactly once,
// when the last handle drops.
type Block struct {
	buf   []byte
	alloc mem.Allocator
}

// NewBlock copies src into a span from alloc and wraps it in a new cell.
// Allocation failure aborts the process.
func NewBlock(alloc mem.Allocator, src []byte, opts ...Option) *Arc[Block] {
	return New(copyBlock(alloc, src), opts...)
}

func copyBlock(alloc mem.Allocator, src []byte) Block {
	if len(src) == 0 {
		return Block{alloc: alloc}
	}

	buf, err := alloc.Alloc(len(src))
	if err != nil {
		fail.OutOfMemory(uintptr(len(src)), err)
	}
	ptr.CopyNonoverlapping(&buf[0], &src[0], len(src))

	return Block{buf: buf, alloc: alloc}
}

// Bytes returns the span. It must not be modified.
func (b Block) Bytes() []byte {
	return b.buf
}

// Len returns the span length.
func (b Block) Len() int {
	return len(b.buf)
}

// DeepClone copies the span into a new one from the same allocator.
func (b Block) DeepClone() Block {
	return copyBlock(b.alloc, b.buf)
}

// Drop returns the span to its allocator.
func (b Block) Drop() {
	if len(b.buf) == 0 {
		return
	}
	if err := b.alloc.Free(b.buf); err != nil {
		fail.Abort("arc: block free failed", "len", len(b.buf), "error", err)
	}
}

// Equal reports whether b and o hold the same bytes.
func (b Block) Equal(o Block) bool {
	return bytes.Equal(b.buf, o.buf)
}

// Compare compares b and o lexicographically.
func (b Block) Compare(o Block) int {
	return bytes.Compare(b.buf, o.buf)
}
