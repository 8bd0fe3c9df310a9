// Package sqlconn implements the db contract on database/sql with the
// lib/pq driver. It issues the same DECLARE/MOVE/FETCH statements as
// pgxconn; rows scan dynamically through column-count sized holders.
package sqlconn

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/rowfold/rowfold/db"
)

var cursorSeq atomic.Uint64

// Pool wraps a *sql.DB.
type Pool struct {
	sqldb *sql.DB
}

// Open opens a pool for dsn and verifies it with a ping.
func Open(ctx context.Context, dsn string) (*Pool, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlconn: open: %w", err)
	}
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("sqlconn: ping: %w", err)
	}
	return &Pool{sqldb: sqldb}, nil
}

// Acquire checks one connection out of the pool.
func (p *Pool) Acquire(ctx context.Context) (db.Conn, error) {
	c, err := p.sqldb.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlconn: acquire: %w", err)
	}
	return &conn{c: c}, nil
}

// Close closes the pool.
func (p *Pool) Close() {
	_ = p.sqldb.Close()
}

type conn struct {
	c *sql.Conn
}

func (c *conn) Begin(ctx context.Context) (db.Tx, error) {
	tx, err := c.c.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txn{tx: tx}, nil
}

func (c *conn) QueryRow(ctx context.Context, query string) (db.Row, error) {
	tx, err := c.c.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	row, err := firstRow(ctx, tx, query)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return row, nil
}

func (c *conn) Release() {
	_ = c.c.Close()
}

func firstRow(ctx context.Context, tx *sql.Tx, query string) (db.Row, error) {
	rows, err := tx.QueryContext(ctx, query)
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
	row, err := scanRow(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return row, nil
}

func scanRow(rows *sql.Rows) (db.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make(db.Row, len(cols))
	holders := make([]any, len(cols))
	for i := range values {
		holders[i] = &values[i]
	}
	if err := rows.Scan(holders...); err != nil {
		return nil, err
	}
	return values, nil
}

type txn struct {
	tx *sql.Tx
}

func (t *txn) Declare(ctx context.Context, query string) (db.Cursor, error) {
	name := fmt.Sprintf("rowfold_c%d", cursorSeq.Add(1))
	if _, err := t.tx.ExecContext(ctx, fmt.Sprintf("DECLARE %s NO SCROLL CURSOR FOR %s", name, query)); err != nil {
		return nil, err
	}
	return &cursor{tx: t.tx, name: name}, nil
}

func (t *txn) Commit(context.Context) error {
	return t.tx.Commit()
}

func (t *txn) Rollback(context.Context) error {
	return t.tx.Rollback()
}

type cursor struct {
	tx   *sql.Tx
	name string
}

func (c *cursor) Advance(ctx context.Context, n int) error {
	_, err := c.tx.ExecContext(ctx, fmt.Sprintf("MOVE FORWARD %d FROM %s", n, c.name))
	return err
}

func (c *cursor) Fetch(ctx context.Context, n int) ([]db.Row, error) {
	rows, err := c.tx.QueryContext(ctx, fmt.Sprintf("FETCH FORWARD %d FROM %s", n, c.name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
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
