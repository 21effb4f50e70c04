package mem

import (
	"bytes"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arcmem/internal/resource"
)

type recordingObserver struct {
	mu       sync.Mutex
	allocs   []int64
	failures int
	frees    []int64
}

func (o *recordingObserver) RecordAlloc(size int64, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.failures++
		return
	}
	o.allocs = append(o.allocs, size)
}

func (o *recordingObserver) RecordFree(size int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.frees = append(o.frees, size)
}

func TestRuntime(t *testing.T) {
	var h Heap = Runtime{}

	ref, err := h.Allocate(32)
	require.NoError(t, err)
	assert.Equal(t, uintptr(32), ref.Size)
	h.Deallocate(ref)
}

func TestTracker_AllocateDeallocate(t *testing.T) {
	obs := &recordingObserver{}
	tr := NewTracker(TrackerConfig{Observer: obs})

	a, err := tr.Allocate(16)
	require.NoError(t, err)
	b, err := tr.Allocate(48)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, tr.IsLive(a.ID))
	assert.Equal(t, []uint64{a.ID, b.ID}, tr.LiveIDs())

	s := tr.Stats()
	assert.Equal(t, uint64(2), s.Allocs)
	assert.Equal(t, uint64(2), s.Live)
	assert.Equal(t, int64(64), s.LiveBytes)

	tr.Deallocate(a)
	assert.False(t, tr.IsLive(a.ID))

	tr.Deallocate(b)
	s = tr.Stats()
	assert.Equal(t, uint64(2), s.Frees)
	assert.Zero(t, s.Live)
	assert.Zero(t, s.LiveBytes)
	assert.Equal(t, int64(64), s.PeakBytes)
	assert.Empty(t, tr.LiveIDs())

	assert.Equal(t, []int64{16, 48}, obs.allocs)
	assert.Equal(t, []int64{16, 48}, obs.frees)
	assert.Contains(t, tr.String(), "allocs: 2")
}

func TestTracker_MemoryLimit(t *testing.T) {
	obs := &recordingObserver{}
	tr := NewTracker(TrackerConfig{MemoryLimitBytes: 100, Observer: obs})

	ref, err := tr.Allocate(80)
	require.NoError(t, err)

	_, err = tr.Allocate(40)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Equal(t, uint64(1), tr.Stats().Failures)
	assert.Equal(t, 1, obs.failures)

	tr.Deallocate(ref)

	_, err = tr.Allocate(40)
	require.NoError(t, err)
}

func TestTracker_ZeroSizeCell(t *testing.T) {
	tr := NewTracker(TrackerConfig{})

	ref, err := tr.Allocate(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tr.Stats().Live)

	tr.Deallocate(ref)
	assert.Zero(t, tr.Stats().Live)
}

func TestTracker_Spans(t *testing.T) {
	for name, backing := range map[string]Allocator{
		"go":   GoAllocator{},
		"anon": NewAnonAllocator(),
	} {
		t.Run(name, func(t *testing.T) {
			tr := NewTracker(TrackerConfig{Backing: backing})

			buf, err := tr.Alloc(128)
			require.NoError(t, err)
			require.Len(t, buf, 128)

			buf[0], buf[127] = 1, 2
			assert.Equal(t, int64(128), tr.Stats().LiveBytes)

			require.NoError(t, tr.Free(buf))
			s := tr.Stats()
			assert.Zero(t, s.Live)
			assert.Zero(t, s.LiveBytes)

			_, err = tr.Alloc(0)
			assert.ErrorIs(t, err, ErrInvalidSize)
			_, err = tr.Alloc(-3)
			assert.ErrorIs(t, err, ErrInvalidSize)
		})
	}
}

func TestTracker_SpanOverLimit(t *testing.T) {
	tr := NewTracker(TrackerConfig{MemoryLimitBytes: 64})

	_, err := tr.Alloc(65)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Zero(t, tr.Stats().Live)
}

func TestTracker_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := NewTracker(TrackerConfig{Logger: logger})

	ref, err := tr.Allocate(8)
	require.NoError(t, err)
	tr.Deallocate(ref)

	out := buf.String()
	assert.Contains(t, out, "msg=allocate")
	assert.Contains(t, out, "msg=deallocate")
	assert.Contains(t, out, "size=8")
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker(TrackerConfig{})

	const workers = 8
	const perWorker = 500

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ref, err := tr.Allocate(24)
				if err != nil {
					t.Errorf("allocate: %v", err)
					return
				}
				tr.Deallocate(ref)
			}
		}()
	}
	wg.Wait()

	s := tr.Stats()
	assert.Equal(t, uint64(workers*perWorker), s.Allocs)
	assert.Equal(t, uint64(workers*perWorker), s.Frees)
	assert.Zero(t, s.Live)
}

// TestTracker_DoubleFreeAborts re-runs the test binary and expects the child to abort.
func TestTracker_DoubleFreeAborts(t *testing.T) {
	if os.Getenv("ARCMEM_DOUBLE_FREE_CHILD") == "1" {
		tr := NewTracker(TrackerConfig{})
		ref, _ := tr.Allocate(8)
		tr.Deallocate(ref)
		tr.Deallocate(ref)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestTracker_DoubleFreeAborts$")
	cmd.Env = append(os.Environ(), "ARCMEM_DOUBLE_FREE_CHILD=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.NotZero(t, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "mem: double free")
}
