package debug_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowfold/rowfold/internal/debug"
)

type recordingHandler struct {
	records *[]slog.Record
}

func (h recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}

func (h recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordingHandler) WithGroup(string) slog.Handler      { return h }

func capture(t *testing.T) *[]slog.Record {
	t.Helper()
	records := &[]slog.Record{}
	debug.SetLogger(slog.New(recordingHandler{records: records}))
	t.Cleanup(func() { debug.Init(false) })
	return records
}

func TestLogger_DisabledByDefault(t *testing.T) {
	assert.False(t, debug.Enabled())

	// Discarded, not buffered: nothing surfaces after enabling later.
	debug.Info("dropped")
	records := capture(t)
	assert.Empty(t, *records)
}

func TestLogger_SetLoggerRoutesRecords(t *testing.T) {
	records := capture(t)
	assert.True(t, debug.Enabled())

	debug.Debug("compile", "sql", "SELECT 1")
	debug.Info("connected")
	debug.Warn("slow batch")
	debug.Error("driver gone")

	require.Len(t, *records, 4)
	assert.Equal(t, "compile", (*records)[0].Message)
	assert.Equal(t, slog.LevelDebug, (*records)[0].Level)
	assert.Equal(t, slog.LevelError, (*records)[3].Level)

	var attrs []slog.Attr
	(*records)[0].Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	require.Len(t, attrs, 1)
	assert.Equal(t, "sql", attrs[0].Key)
	assert.Equal(t, "SELECT 1", attrs[0].Value.String())
}

func TestLogger_InitTogglesOutput(t *testing.T) {
	records := capture(t)

	debug.Init(false)
	debug.Info("while disabled")
	assert.Empty(t, *records)
	assert.False(t, debug.Enabled())
}

func TestLogger_WithReturnsUsableLogger(t *testing.T) {
	records := capture(t)

	debug.With("component", "cursor").Info("fetch")
	require.Len(t, *records, 1)
	assert.Equal(t, "fetch", (*records)[0].Message)
}

func TestLogger_SetLoggerIgnoresNil(t *testing.T) {
	records := capture(t)
	debug.SetLogger(nil)

	debug.Info("still routed")
	assert.Len(t, *records, 1)
}
