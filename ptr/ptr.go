package ptr

import (
	"unsafe"

	"github.com/hupe1980/arcmem/internal/fail"
)

// Offset returns p advanced by n elements of T. n may be negative.
func Offset[T any](p *T, n int) *T {
	var zero T
	return (*T)(unsafe.Add(unsafe.Pointer(p), n*int(unsafe.Sizeof(zero)))) //nolint:gosec // unsafe is required for pointer arithmetic
}

// CopyNonoverlapping copies count elements from src to dst, front to back.
// The spans must not overlap.
func CopyNonoverlapping[T any](dst, src *T, count int) {
	for i := 0; i < count; i++ {
		*Offset(dst, i) = *Offset(src, i)
	}
}

// Copy copies count elements from src to dst. The spans may overlap; the
// result is the same as copying src to a temporary buffer first.
func Copy[T any](dst, src *T, count int) {
	if count <= 0 {
		return
	}

	if uintptr(unsafe.Pointer(src)) < uintptr(unsafe.Pointer(dst)) { //nolint:gosec // address comparison only
		// dst is above src: copy from the end so unread source elements
		// are not clobbered.
		for i := count - 1; i >= 0; i-- {
			*Offset(dst, i) = *Offset(src, i)
		}
		return
	}

	for i := 0; i < count; i++ {
		*Offset(dst, i) = *Offset(src, i)
	}
}

// Set writes the byte val into every byte of count elements starting at dst.
//
// A zero val stores the zero value of T, which is valid for any element
// type. A non-zero val is only meaningful for pointer-free element types.
func Set[T any](dst *T, val byte, count int) {
	if count <= 0 {
		return
	}

	if val == 0 {
		var zero T
		for i := 0; i < count; i++ {
			*Offset(dst, i) = zero
		}
		return
	}

	size := int(unsafe.Sizeof(*dst))
	b := unsafe.Slice((*byte)(unsafe.Pointer(dst)), size*count) //nolint:gosec // unsafe is required for byte fill
	for i := range b {
		b[i] = val
	}
}

// Read returns a copy of the element at src.
func Read[T any](src *T) T {
	var tmp T
	CopyNonoverlapping(&tmp, src, 1)
	return tmp
}

// Swap exchanges the elements at x and y. x and y may alias.
func Swap[T any](x, y *T) {
	tmp := Read(x)
	Copy(x, y, 1)
	CopyNonoverlapping(y, &tmp, 1)
}

// CopySlice copies count elements from src to dst. The slices must not overlap.
func CopySlice[T any](dst, src []T, count int) {
	if count <= 0 {
		return
	}
	fail.BoundsCheck(count-1, len(dst))
	fail.BoundsCheck(count-1, len(src))
	CopyNonoverlapping(&dst[0], &src[0], count)
}

// MoveSlice copies count elements from src to dst. The slices may overlap.
func MoveSlice[T any](dst, src []T, count int) {
	if count <= 0 {
		return
	}
	fail.BoundsCheck(count-1, len(dst))
	fail.BoundsCheck(count-1, len(src))
	Copy(&dst[0], &src[0], count)
}

// SetSlice fills the first count elements of dst with the byte val.
func SetSlice[T any](dst []T, val byte, count int) {
	if count <= 0 {
		return
	}
	fail.BoundsCheck(count-1, len(dst))
	Set(&dst[0], val, count)
}
