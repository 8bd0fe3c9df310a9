// Package cursor streams the rows of a compiled SELECT in fixed-size
// batches, each batch fetched through a server-side cursor inside its own
// transaction on a borrowed connection.
package cursor

import (
	"context"

	"github.com/rowfold/rowfold/db"
)

// DefaultBatchSize is the batch size used when no option overrides it.
const DefaultBatchSize = 20

// Option configures a Cursor at construction.
type Option func(*Cursor)

// WithBatchSize sets how many rows each batch requests. Non-positive values
// keep the default.
func WithBatchSize(n int) Option {
	return func(c *Cursor) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithOffset starts iteration n rows into the result set.
func WithOffset(n int) Option {
	return func(c *Cursor) {
		if n > 0 {
			c.offset = n
		}
	}
}

// WithStopBound stops iteration at the exclusive offset n.
func WithStopBound(n int) Option {
	return func(c *Cursor) {
		if n >= 0 {
			c.stopBound = n
			c.hasStop = true
		}
	}
}

// Cursor is a pull-based row sequence. It is not safe for concurrent use,
// and it borrows its connection: the caller owns the connection's lifetime.
//
// Every batch runs in a fresh transaction, so a sequence spanning several
// batches observes no single snapshot: rows inserted or deleted between
// batches shift what later offsets see. Callers needing snapshot
// consistency must arrange it outside this type.
type Cursor struct {
	conn      db.Conn
	query     string
	batchSize int
	offset    int
	stopBound int
	hasStop   bool

	buffer  []db.Row
	current db.Row
	started bool
	done    bool
	err     error
}

// New builds a cursor over a compiled SELECT. Nothing touches the database
// until the first Next call.
func New(conn db.Conn, query string, opts ...Option) *Cursor {
	c := &Cursor{
		conn:      conn,
		query:     query,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Next advances to the next row, fetching a new batch when the buffer runs
// out. It returns false when the sequence ends or a driver call fails; the
// two cases are told apart by Err.
func (c *Cursor) Next(ctx context.Context) bool {
	if c.err != nil || c.done {
		return false
	}
	if !c.started {
		c.started = true
		if !c.fill(ctx) {
			return false
		}
	} else if len(c.buffer) == 0 {
		c.advance()
		if !c.fill(ctx) {
			return false
		}
	}
	c.current = c.buffer[0]
	c.buffer = c.buffer[1:]
	return true
}

// Row returns the row the last successful Next produced.
func (c *Cursor) Row() db.Row {
	return c.current
}

// Err returns the first driver error, or nil after a clean end of sequence.
func (c *Cursor) Err() error {
	return c.err
}

// advance moves the offset one batch forward, clamped to the stop bound.
func (c *Cursor) advance() {
	c.offset += c.batchSize
	if c.hasStop && c.offset > c.stopBound {
		c.offset = c.stopBound
	}
}

func (c *Cursor) fill(ctx context.Context) bool {
	rows, err := c.fetchBatch(ctx)
	if err != nil {
		c.err = err
		return false
	}
	if len(rows) == 0 {
		c.done = true
		return false
	}
	c.buffer = rows
	return true
}

// fetchBatch runs one batch in its own transaction. The transaction commits
// on every non-error path, the end-of-sequence ones included; it rolls back
// only when a driver call fails.
func (c *Cursor) fetchBatch(ctx context.Context) ([]db.Row, error) {
	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := c.runBatch(ctx, tx)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Cursor) runBatch(ctx context.Context, tx db.Tx) ([]db.Row, error) {
	cur, err := tx.Declare(ctx, c.query)
	if err != nil {
		return nil, err
	}
	if c.offset > 0 {
		if err := cur.Advance(ctx, c.offset); err != nil {
			return nil, err
		}
	}
	size := c.batchSize
	if c.hasStop {
		if c.offset >= c.stopBound {
			return nil, nil
		}
		if c.offset+c.batchSize >= c.stopBound {
			size = c.stopBound - c.offset
		}
	}
	return cur.Fetch(ctx, size)
}
