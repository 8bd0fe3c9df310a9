package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rowfold/rowfold/cursor"
	"github.com/rowfold/rowfold/db"
)

// HistoryTable is the bookkeeping table recording applied DDL scripts.
const HistoryTable = "_rowfold_ddl_history"

const (
	historyEnsure = `CREATE TABLE IF NOT EXISTS ` + HistoryTable + ` (
	id serial PRIMARY KEY,
	name varchar(255) UNIQUE NOT NULL,
	applied_at timestamp DEFAULT now() NOT NULL,
	checksum varchar(16) NOT NULL,
	execution_ms bigint NOT NULL
) ;`

	historySelect = "SELECT name, checksum, applied_at, execution_ms FROM " +
		HistoryTable + " ORDER BY id  ;"
)

// HistoryEntry is one applied script on record.
type HistoryEntry struct {
	Name        string
	Checksum    string
	AppliedAt   time.Time
	ExecutionMS int64
}

// History tracks which DDL scripts have been applied through a connection.
// It keeps its records in the HistoryTable, created on first use.
type History struct {
	conn db.Conn
}

// NewHistory returns a tracker over conn. The caller owns the connection.
func NewHistory(conn db.Conn) *History {
	return &History{conn: conn}
}

// Ensure creates the bookkeeping table when it does not exist yet.
func (h *History) Ensure(ctx context.Context) error {
	return h.exec(ctx, historyEnsure)
}

// Record notes that the named script was applied just now.
func (h *History) Record(ctx context.Context, name, checksum string, took time.Duration) error {
	stmt := fmt.Sprintf(
		"INSERT INTO %s (name, checksum, execution_ms) VALUES (%s, %s, %d) ;",
		HistoryTable, quote(name), quote(checksum), took.Milliseconds())
	return h.exec(ctx, stmt)
}

// Applied returns the recorded scripts in application order.
func (h *History) Applied(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	cur := cursor.New(h.conn, historySelect)
	for cur.Next(ctx) {
		row := cur.Row()
		if len(row) != 4 {
			return nil, &Error{Table: HistoryTable, Reason: fmt.Sprintf(
				"history row has %d columns, want 4", len(row))}
		}
		entries = append(entries, HistoryEntry{
			Name:        asString(row[0]),
			Checksum:    asString(row[1]),
			AppliedAt:   asTime(row[2]),
			ExecutionMS: asInt64(row[3]),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Pending filters names down to the ones with no applied record, keeping
// their order.
func (h *History) Pending(ctx context.Context, names []string) ([]string, error) {
	entries, err := h.Applied(ctx)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		applied[e.Name] = struct{}{}
	}
	var pending []string
	for _, name := range names {
		if _, ok := applied[name]; !ok {
			pending = append(pending, name)
		}
	}
	return pending, nil
}

// exec runs a statement that produces no rows. Row absence is the expected
// outcome, not an error.
func (h *History) exec(ctx context.Context, stmt string) error {
	if _, err := h.conn.QueryRow(ctx, stmt); err != nil && !errors.Is(err, db.ErrNoRows) {
		return err
	}
	return nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	t, _ := v.(time.Time)
	return t
}
