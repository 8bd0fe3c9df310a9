// Package client ties the layers together: it owns the connection pool,
// gates on the server version at connect time, compiles operation chains
// and executes them through the provider contract.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rowfold/rowfold/cursor"
	"github.com/rowfold/rowfold/db"
	"github.com/rowfold/rowfold/db/pgxconn"
	"github.com/rowfold/rowfold/db/sqlconn"
	"github.com/rowfold/rowfold/internal/debug"
	"github.com/rowfold/rowfold/query"
)

// Provider selects the driver stack backing the pool.
type Provider string

// Supported providers.
const (
	ProviderPgx Provider = "pgx"
	ProviderSQL Provider = "sql"
)

// ErrNotConnected reports an operation on a client that has not connected.
var ErrNotConnected = errors.New("client: not connected")

// Option configures a Client at construction.
type Option func(*Client)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(c *Client) { c.dsn = dsn }
}

// WithProvider selects the driver stack. The default is ProviderPgx.
func WithProvider(p Provider) Option {
	return func(c *Client) { c.provider = p }
}

// WithBatchSize sets the default batch size Fetch hands its cursors.
func WithBatchSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithQueryTimeout bounds Connect, Exec and each Apply statement. Fetch
// batches run on the caller's context instead, since the sequence outlives
// the call.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithDebug switches diagnostic logging on or off for the process.
func WithDebug(enable bool) Option {
	return func(*Client) { debug.Init(enable) }
}

// WithLogger routes diagnostic logging to a caller-owned logger.
func WithLogger(l *slog.Logger) Option {
	return func(*Client) { debug.SetLogger(l) }
}

// WithPool runs the client over an existing pool instead of dialing one.
// Connect still runs the version gate through it.
func WithPool(pool db.Pool) Option {
	return func(c *Client) { c.pool = pool }
}

// Client executes compiled chains against one database.
type Client struct {
	dsn       string
	provider  Provider
	batchSize int
	timeout   time.Duration

	pool    db.Pool
	dialed  bool
	ready   bool
	version string
}

// New builds a client. Nothing touches the database until Connect.
func New(opts ...Option) *Client {
	c := &Client{
		provider:  ProviderPgx,
		batchSize: cursor.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials the pool for the configured provider and verifies the
// server version. Servers below db.MinServerVersion are rejected and the
// dialed pool is closed again.
func (c *Client) Connect(ctx context.Context) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	if c.pool == nil {
		pool, err := c.dial(ctx)
		if err != nil {
			return err
		}
		c.pool = pool
		c.dialed = true
	}

	reported, err := c.serverVersion(ctx)
	if err == nil {
		err = db.CheckServerVersion(reported)
	}
	if err != nil {
		if c.dialed {
			c.pool.Close()
			c.pool = nil
			c.dialed = false
		}
		return err
	}

	c.version = reported
	c.ready = true
	debug.Info("connected", "provider", string(c.provider), "server", reported)
	return nil
}

func (c *Client) dial(ctx context.Context) (db.Pool, error) {
	switch c.provider {
	case ProviderPgx:
		return pgxconn.New(ctx, c.dsn)
	case ProviderSQL:
		return sqlconn.Open(ctx, c.dsn)
	default:
		return nil, fmt.Errorf("client: unknown provider %q, want %q or %q",
			c.provider, ProviderPgx, ProviderSQL)
	}
}

func (c *Client) serverVersion(ctx context.Context) (string, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()
	row, err := conn.QueryRow(ctx, db.VersionQuery)
	if err != nil {
		return "", err
	}
	if len(row) == 0 {
		return "", errors.New("client: server reported an empty version row")
	}
	s, ok := row[0].(string)
	if !ok {
		return "", fmt.Errorf("client: server version is %T, want string", row[0])
	}
	return s, nil
}

// Close releases the pool. The client can Connect again afterwards.
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
	c.dialed = false
	c.ready = false
	c.version = ""
}

// ServerVersion returns the version string reported at Connect time.
func (c *Client) ServerVersion() string { return c.version }

// Rows is a streamed result set over a borrowed connection. Close returns
// the connection; calling it after the sequence ends is fine and expected.
type Rows struct {
	*cursor.Cursor
	conn db.Conn
}

// Close releases the connection backing the rows.
func (r *Rows) Close() { r.conn.Release() }

// Fetch compiles a row-producing chain and streams its result in batches.
// Extra cursor options, such as an offset or a stop bound, apply on top of
// the client's batch size.
func (c *Client) Fetch(ctx context.Context, chain query.Chain, opts ...cursor.Option) (*Rows, error) {
	if !c.ready {
		return nil, ErrNotConnected
	}
	stmt, err := query.Compile(chain)
	if err != nil {
		return nil, err
	}
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	debug.Debug("fetch", "sql", stmt)
	cur := cursor.New(conn, stmt,
		append([]cursor.Option{cursor.WithBatchSize(c.batchSize)}, opts...)...)
	return &Rows{Cursor: cur, conn: conn}, nil
}

// Exec compiles a chain, runs it in its own transaction and returns the
// first row it produces. Statements producing no row, such as a DELETE
// without RETURNING, return a nil row and no error.
func (c *Client) Exec(ctx context.Context, chain query.Chain) (db.Row, error) {
	if !c.ready {
		return nil, ErrNotConnected
	}
	stmt, err := query.Compile(chain)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.opCtx(ctx)
	defer cancel()
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()
	debug.Debug("exec", "sql", stmt)
	row, err := conn.QueryRow(ctx, stmt)
	if errors.Is(err, db.ErrNoRows) {
		return nil, nil
	}
	return row, err
}

// Apply runs a DDL script statement by statement on one connection. Row
// absence is the normal outcome and is not an error.
func (c *Client) Apply(ctx context.Context, statements []string) error {
	if !c.ready {
		return ErrNotConnected
	}
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	for i, stmt := range statements {
		debug.Debug("apply", "sql", stmt)
		if err := c.applyOne(ctx, conn, stmt); err != nil {
			return fmt.Errorf("client: statement %d of %d: %w", i+1, len(statements), err)
		}
	}
	return nil
}

func (c *Client) applyOne(ctx context.Context, conn db.Conn, stmt string) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()
	if _, err := conn.QueryRow(ctx, stmt); err != nil && !errors.Is(err, db.ErrNoRows) {
		return err
	}
	return nil
}

// Conn checks a raw connection out of the pool for callers running their
// own statements, such as the DDL history tracker. The caller releases it.
func (c *Client) Conn(ctx context.Context) (db.Conn, error) {
	if !c.ready {
		return nil, ErrNotConnected
	}
	return c.pool.Acquire(ctx)
}

func (c *Client) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}
