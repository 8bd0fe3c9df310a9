// Package db defines the connection-provider contract the cursor and client
// layers run on. Implementations live in db/pgxconn (jackc/pgx/v5) and
// db/sqlconn (database/sql with lib/pq); tests substitute fakes.
package db

import (
	"context"
	"errors"
)

// ErrNoRows reports an absent row from QueryRow. Driver errors other than
// row absence propagate unchanged.
var ErrNoRows = errors.New("db: no rows in result")

// Row is one result row, column values in selection order.
type Row []any

// Pool hands out connections.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
	Close()
}

// Conn is a single borrowed connection. Release returns it to its pool;
// the holder must not use it afterwards.
type Conn interface {
	Begin(ctx context.Context) (Tx, error)
	// QueryRow executes sql inside its own transaction and returns the
	// first row, or ErrNoRows when the statement produces none.
	QueryRow(ctx context.Context, sql string) (Row, error)
	Release()
}

// Tx is an open transaction.
type Tx interface {
	// Declare opens a server-side cursor over a compiled SELECT.
	Declare(ctx context.Context, sql string) (Cursor, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Cursor is a declared server-side cursor, valid until its transaction
// ends.
type Cursor interface {
	// Advance moves the cursor forward n rows without fetching them.
	Advance(ctx context.Context, n int) error
	// Fetch returns up to n rows, fewer (possibly none) at the end of the
	// result set.
	Fetch(ctx context.Context, n int) ([]Row, error)
}
