// Package pgxconn implements the db contract on a jackc/pgx/v5 connection
// pool. Server-side cursors are driven with DECLARE ... NO SCROLL CURSOR,
// MOVE FORWARD and FETCH FORWARD; compiled statements already carry their
// terminator, so they embed directly.
package pgxconn

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rowfold/rowfold/db"
)

// cursorSeq names declared cursors uniquely within a process.
var cursorSeq atomic.Uint64

// Pool wraps a pgxpool.Pool.
type Pool struct {
	pool *pgxpool.Pool
}

// New opens a pool for dsn and verifies it with a ping.
func New(ctx context.Context, dsn string) (*Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxconn: configure pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgxconn: ping: %w", err)
	}
	return &Pool{pool: pool}, nil
}

// Acquire borrows one connection from the pool.
func (p *Pool) Acquire(ctx context.Context) (db.Conn, error) {
	c, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("pgxconn: acquire: %w", err)
	}
	return &conn{c: c}, nil
}

// Close releases the pool and all idle connections.
func (p *Pool) Close() {
	p.pool.Close()
}

type conn struct {
	c *pgxpool.Conn
}

func (c *conn) Begin(ctx context.Context) (db.Tx, error) {
	tx, err := c.c.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &txn{tx: tx}, nil
}

func (c *conn) QueryRow(ctx context.Context, sql string) (db.Row, error) {
	tx, err := c.c.Begin(ctx)
	if err != nil {
		return nil, err
	}
	row, err := firstRow(ctx, tx, sql)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return row, nil
}

func (c *conn) Release() {
	c.c.Release()
}

func firstRow(ctx context.Context, tx pgx.Tx, sql string) (db.Row, error) {
	rows, err := tx.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, db.ErrNoRows
	}
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return db.Row(values), nil
}

type txn struct {
	tx pgx.Tx
}

func (t *txn) Declare(ctx context.Context, sql string) (db.Cursor, error) {
	name := fmt.Sprintf("rowfold_c%d", cursorSeq.Add(1))
	if _, err := t.tx.Exec(ctx, fmt.Sprintf("DECLARE %s NO SCROLL CURSOR FOR %s", name, sql)); err != nil {
		return nil, err
	}
	return &cursor{tx: t.tx, name: name}, nil
}

func (t *txn) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *txn) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

type cursor struct {
	tx   pgx.Tx
	name string
}

func (c *cursor) Advance(ctx context.Context, n int) error {
	_, err := c.tx.Exec(ctx, fmt.Sprintf("MOVE FORWARD %d FROM %s", n, c.name))
	return err
}

func (c *cursor) Fetch(ctx context.Context, n int) ([]db.Row, error) {
	rows, err := c.tx.Query(ctx, fmt.Sprintf("FETCH FORWARD %d FROM %s", n, c.name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		out = append(out, db.Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var (
	_ db.Pool   = (*Pool)(nil)
	_ db.Conn   = (*conn)(nil)
	_ db.Tx     = (*txn)(nil)
	_ db.Cursor = (*cursor)(nil)
)
