// Package conv provides checked integer conversions.
//
// Sizes arrive as int (slice lengths), uintptr (unsafe.Sizeof) and int64
// (memory accounting). These helpers convert between them and report
// overflow instead of wrapping silently.
package conv
