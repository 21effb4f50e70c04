package arcmem

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arcmem/arc"
)

func TestNewTracker_Defaults(t *testing.T) {
	tr := NewTracker()

	a := arc.New("v", arc.WithHeap(tr))
	assert.Equal(t, uint64(1), tr.Stats().Live)
	a.Drop()
	assert.Zero(t, tr.Stats().Live)
}

func TestNewTracker_MetricsAndLimit(t *testing.T) {
	mc := &BasicMetricsCollector{}
	tr := NewTracker(WithMemoryLimit(1024), WithMetricsCollector(mc))

	buf, err := tr.Alloc(512)
	require.NoError(t, err)

	_, err = tr.Alloc(1024)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	require.NoError(t, tr.Free(buf))

	s := mc.GetStats()
	assert.Equal(t, int64(1), s.AllocCount)
	assert.Equal(t, int64(1), s.AllocErrors)
	assert.Equal(t, int64(512), s.AllocBytes)
	assert.Equal(t, int64(1), s.FreeCount)
	assert.Equal(t, int64(512), s.FreeBytes)
	assert.Zero(t, s.Outstanding)

	_, err = tr.Alloc(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestNewTracker_OffHeapBlocks(t *testing.T) {
	tr := NewTracker(WithOffHeap(), WithMetricsCollector(nil), WithLogger(nil))

	b := arc.NewBlock(tr, []byte("mapped"), arc.WithHeap(tr))
	assert.Equal(t, "mapped", string(b.Borrow().Bytes()))
	assert.Equal(t, uint64(2), tr.Stats().Live)

	b.Drop()
	assert.Zero(t, tr.Stats().Live)
}

func TestNewTracker_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr := NewTracker(WithLogger(logger), WithMemoryLimit(64))
	_, err := tr.Allocate(128)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "component=tracker")
	assert.Contains(t, out, "memory_limit=64")
	assert.Contains(t, out, "allocation rejected")
}

func TestReportLeaks(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, nil))
	tr := NewTracker()
	ctx := context.Background()

	a := arc.New(1, arc.WithHeap(tr))
	m := arc.NewMutex(2, arc.WithHeap(tr))

	leaks := ReportLeaks(ctx, logger, tr)
	assert.Len(t, leaks, 2)
	assert.Contains(t, buf.String(), "live allocations at shutdown")

	a.Drop()
	m.Drop()
	buf.Reset()

	assert.Empty(t, ReportLeaks(ctx, logger, tr))
	assert.NotContains(t, buf.String(), "live allocations at shutdown")
}

func TestLoggers(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewJSONLogger(slog.LevelInfo))
	assert.NotNil(t, NewTextLogger(slog.LevelDebug))

	noop := NoopLogger()
	assert.False(t, noop.Enabled(context.Background(), slog.LevelError))
}

func TestSetAbortLogger(t *testing.T) {
	SetAbortLogger(NoopLogger())
	SetAbortLogger(nil)
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}
	mc.RecordAlloc(1, nil)
	mc.RecordFree(1)
}
