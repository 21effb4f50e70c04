// Package fail reports unrecoverable conditions and terminates the process.
//
// Nothing in here returns. A failure is logged once at error level through
// log/slog and the process exits with ExitCode. Failures are never converted
// into panics, so they cannot be recovered by callers.
package fail

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

// ExitCode is the status the process exits with after a failure.
// It matches the conventional SIGABRT status.
const ExitCode = 134

var (
	logger atomic.Pointer[slog.Logger]

	// exit is swapped by tests that run in a subprocess.
	exit = os.Exit
)

// SetLogger sets the logger used for failure diagnostics.
// A nil logger restores slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func currentLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Abort logs msg with the given attributes and terminates the process.
func Abort(msg string, args ...any) {
	currentLogger().Error(msg, args...)
	exit(ExitCode)
}

// Abortf formats a message and terminates the process.
func Abortf(format string, args ...any) {
	Abort(fmt.Sprintf(format, args...))
}

// OutOfMemory terminates the process after a failed allocation of size bytes.
func OutOfMemory(size uintptr, cause error) {
	Abort("out of memory", "size", size, "error", cause)
}

// BoundsCheck terminates the process unless 0 <= index < length.
func BoundsCheck(index, length int) {
	if index < 0 || index >= length {
		Abort("index out of bounds", "index", index, "len", length)
	}
}

// Assert terminates the process if b is false.
func Assert(b bool, msg string) {
	if !b {
		Abort("assert failed: " + msg)
	}
}
