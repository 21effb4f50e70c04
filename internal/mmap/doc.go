// Package mmap provides anonymous memory mappings for off-heap spans.
//
// # Overview
//
// MapAnon returns read-write memory that lives outside the Go heap. The
// garbage collector neither scans nor frees it, so spans handed out by
// mem.AnonAllocator must only ever hold pointer-free data.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE, madvise(2) for hints
//   - Windows: VirtualAlloc / VirtualFree (Advise is a no-op)
//
// # Thread Safety
//
// Close is idempotent and guarded by an atomic flag. Callers must ensure no
// goroutine touches Bytes() after Close returns.
package mmap
