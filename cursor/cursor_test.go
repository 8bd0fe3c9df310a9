package cursor_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowfold/rowfold/cursor"
	"github.com/rowfold/rowfold/db"
)

var errBoom = errors.New("boom")

// callLog records every provider call in order, so tests can pin the exact
// batch protocol a cursor drives.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) fetchSizes() []int {
	var sizes []int
	for _, call := range l.calls {
		var n int
		if _, err := fmt.Sscanf(call, "fetch %d", &n); err == nil {
			sizes = append(sizes, n)
		}
	}
	return sizes
}

type fakeConn struct {
	rows   []db.Row
	log    *callLog
	failOn string
}

func newFakeConn(n int) *fakeConn {
	rows := make([]db.Row, n)
	for i := range rows {
		rows[i] = db.Row{int64(i + 1), fmt.Sprintf("row-%d", i+1)}
	}
	return &fakeConn{rows: rows, log: &callLog{}}
}

func (c *fakeConn) Begin(context.Context) (db.Tx, error) {
	c.log.add("begin")
	if c.failOn == "begin" {
		return nil, errBoom
	}
	return &fakeTx{conn: c}, nil
}

func (c *fakeConn) QueryRow(context.Context, string) (db.Row, error) {
	if len(c.rows) == 0 {
		return nil, db.ErrNoRows
	}
	return c.rows[0], nil
}

func (c *fakeConn) Release() {}

type fakeTx struct {
	conn *fakeConn
}

func (t *fakeTx) Declare(context.Context, string) (db.Cursor, error) {
	t.conn.log.add("declare")
	if t.conn.failOn == "declare" {
		return nil, errBoom
	}
	return &fakeCursor{conn: t.conn}, nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.conn.log.add("commit")
	if t.conn.failOn == "commit" {
		return errBoom
	}
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.conn.log.add("rollback")
	return nil
}

type fakeCursor struct {
	conn *fakeConn
	pos  int
}

func (f *fakeCursor) Advance(_ context.Context, n int) error {
	f.conn.log.add("advance %d", n)
	if f.conn.failOn == "advance" {
		return errBoom
	}
	f.pos += n
	if f.pos > len(f.conn.rows) {
		f.pos = len(f.conn.rows)
	}
	return nil
}

func (f *fakeCursor) Fetch(_ context.Context, n int) ([]db.Row, error) {
	f.conn.log.add("fetch %d", n)
	if f.conn.failOn == "fetch" {
		return nil, errBoom
	}
	end := f.pos + n
	if end > len(f.conn.rows) {
		end = len(f.conn.rows)
	}
	rows := f.conn.rows[f.pos:end]
	f.pos = end
	return rows, nil
}

func drain(t *testing.T, c *cursor.Cursor) []int64 {
	t.Helper()
	var ids []int64
	for c.Next(context.Background()) {
		row := c.Row()
		require.Len(t, row, 2)
		ids = append(ids, row[0].(int64))
	}
	return ids
}

func seq(from, to int64) []int64 {
	var out []int64
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestCursor_Pagination(t *testing.T) {
	tests := []struct {
		name        string
		tableRows   int
		opts        []cursor.Option
		wantIDs     []int64
		wantFetches []int
	}{
		{
			name:        "stop bound shrinks the final fetch",
			tableRows:   10,
			opts:        []cursor.Option{cursor.WithBatchSize(3), cursor.WithStopBound(7)},
			wantIDs:     seq(1, 7),
			wantFetches: []int{3, 3, 1},
		},
		{
			name:        "stop bound on a batch boundary",
			tableRows:   10,
			opts:        []cursor.Option{cursor.WithBatchSize(3), cursor.WithStopBound(6)},
			wantIDs:     seq(1, 6),
			wantFetches: []int{3, 3},
		},
		{
			name:        "stop bound beyond the result set",
			tableRows:   4,
			opts:        []cursor.Option{cursor.WithBatchSize(3), cursor.WithStopBound(9)},
			wantIDs:     seq(1, 4),
			wantFetches: []int{3, 3, 3},
		},
		{
			name:        "offset skips leading rows",
			tableRows:   6,
			opts:        []cursor.Option{cursor.WithBatchSize(4), cursor.WithOffset(4)},
			wantIDs:     seq(5, 6),
			wantFetches: []int{4, 4},
		},
		{
			name:        "offset at the stop bound yields nothing",
			tableRows:   8,
			opts:        []cursor.Option{cursor.WithBatchSize(3), cursor.WithOffset(5), cursor.WithStopBound(5)},
			wantIDs:     nil,
			wantFetches: nil,
		},
		{
			name:        "offset past the stop bound yields nothing",
			tableRows:   8,
			opts:        []cursor.Option{cursor.WithBatchSize(3), cursor.WithOffset(6), cursor.WithStopBound(4)},
			wantIDs:     nil,
			wantFetches: nil,
		},
		{
			name:        "empty table ends on the first fetch",
			tableRows:   0,
			opts:        []cursor.Option{cursor.WithBatchSize(3)},
			wantIDs:     nil,
			wantFetches: []int{3},
		},
		{
			name:        "short final batch without a stop bound",
			tableRows:   5,
			opts:        []cursor.Option{cursor.WithBatchSize(2)},
			wantIDs:     seq(1, 5),
			wantFetches: []int{2, 2, 2, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := newFakeConn(tt.tableRows)
			c := cursor.New(conn, "SELECT * FROM book  ;", tt.opts...)

			ids := drain(t, c)

			require.NoError(t, c.Err())
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantFetches, conn.log.fetchSizes())
			assert.False(t, c.Next(context.Background()), "exhausted cursor must stay exhausted")
			require.NoError(t, c.Err())
		})
	}
}

// Every batch runs in its own transaction: begin, declare, advance to the
// current offset, fetch, commit. The sequence below also shows the final
// probe that detects the stop bound without fetching.
func TestCursor_BatchProtocol(t *testing.T) {
	conn := newFakeConn(10)
	c := cursor.New(conn, "SELECT * FROM book  ;",
		cursor.WithBatchSize(3), cursor.WithStopBound(7))

	ids := drain(t, c)

	require.NoError(t, c.Err())
	require.Equal(t, seq(1, 7), ids)
	assert.Equal(t, []string{
		"begin", "declare", "fetch 3", "commit",
		"begin", "declare", "advance 3", "fetch 3", "commit",
		"begin", "declare", "advance 6", "fetch 1", "commit",
		"begin", "declare", "advance 7", "commit",
	}, conn.log.calls)
}

func TestCursor_DefaultBatchSize(t *testing.T) {
	conn := newFakeConn(0)
	c := cursor.New(conn, "SELECT * FROM book  ;")

	assert.False(t, c.Next(context.Background()))
	require.NoError(t, c.Err())
	assert.Equal(t, []string{"begin", "declare", "fetch 20", "commit"}, conn.log.calls)
}

func TestCursor_LazyUntilFirstNext(t *testing.T) {
	conn := newFakeConn(3)
	cursor.New(conn, "SELECT * FROM book  ;")

	assert.Empty(t, conn.log.calls)
}

func TestCursor_DriverErrors(t *testing.T) {
	tests := []struct {
		failOn       string
		wantRollback bool
	}{
		{failOn: "begin", wantRollback: false},
		{failOn: "declare", wantRollback: true},
		{failOn: "advance", wantRollback: true},
		{failOn: "fetch", wantRollback: true},
		{failOn: "commit", wantRollback: false},
	}
	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			conn := newFakeConn(10)
			conn.failOn = tt.failOn
			c := cursor.New(conn, "SELECT * FROM book  ;",
				cursor.WithBatchSize(3), cursor.WithOffset(2))

			assert.False(t, c.Next(context.Background()))
			require.ErrorIs(t, c.Err(), errBoom)

			last := conn.log.calls[len(conn.log.calls)-1]
			if tt.wantRollback {
				assert.Equal(t, "rollback", last)
			} else {
				assert.False(t, strings.Contains(strings.Join(conn.log.calls, " "), "rollback"))
			}

			assert.False(t, c.Next(context.Background()), "failed cursor must stay failed")
			require.ErrorIs(t, c.Err(), errBoom)
		})
	}
}

func TestCursor_RowTracksNext(t *testing.T) {
	conn := newFakeConn(2)
	c := cursor.New(conn, "SELECT * FROM book  ;")

	require.True(t, c.Next(context.Background()))
	assert.Equal(t, db.Row{int64(1), "row-1"}, c.Row())
	require.True(t, c.Next(context.Background()))
	assert.Equal(t, db.Row{int64(2), "row-2"}, c.Row())
	require.False(t, c.Next(context.Background()))
	require.NoError(t, c.Err())
}
