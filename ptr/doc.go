// Package ptr provides raw memory operations over element spans.
//
// A span is a start pointer plus an element count. Spans are owned by the
// caller and only borrowed for the duration of a call.
//
// # Operations
//
//   - CopyNonoverlapping: forward copy, spans must not intersect
//   - Copy: overlap-safe copy (memmove), direction chosen by address
//   - Set: byte fill (memset) over count elements
//   - Swap: exchange two elements through a one-element temporary
//   - Read: one-element copy out of raw memory
//   - Offset: pointer arithmetic by whole elements
//
// Elements are moved with typed assignments, so spans of pointerful types
// keep the garbage collector's write barriers intact.
//
// # Safety
//
// The pointer functions do not validate their inputs. Passing intersecting
// spans to CopyNonoverlapping, or a span shorter than count, is undefined
// behavior. A count of zero never dereferences either pointer.
//
// The slice helpers (CopySlice, MoveSlice, SetSlice) bounds-check count
// against the slices and abort the process on violation.
package ptr
