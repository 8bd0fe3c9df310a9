package schema

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/rowfold/rowfold/fields"
	"github.com/rowfold/rowfold/query"
)

// Registry holds tables in declaration order and renders the DDL script
// that creates them.
type Registry struct {
	tables []*Table
	byName map[string]*Table
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Table)}
}

// Add registers a table. Table names are unique within a registry.
func (r *Registry) Add(t *Table) error {
	if _, dup := r.byName[t.Name()]; dup {
		return &Error{Table: t.Name(), Reason: "already registered"}
	}
	r.tables = append(r.tables, t)
	r.byName[t.Name()] = t
	return nil
}

// Get returns the registered table named name, if any.
func (r *Registry) Get(name string) (*Table, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Tables returns the registered tables in declaration order.
func (r *Registry) Tables() []*Table {
	out := make([]*Table, len(r.tables))
	copy(out, r.tables)
	return out
}

// Requirements returns the extension statements the registered fields need,
// deduplicated, in first-use order. They must run before the creation
// queries.
func (r *Registry) Requirements() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range r.tables {
		for _, f := range t.fields {
			stmt, ok := fields.Requirement(f)
			if !ok {
				continue
			}
			if _, dup := seen[stmt]; dup {
				continue
			}
			seen[stmt] = struct{}{}
			out = append(out, stmt)
		}
	}
	return out
}

// CreationQueries renders one CREATE TABLE statement per table, in
// declaration order, followed by one per many-to-many link table.
func (r *Registry) CreationQueries() ([]string, error) {
	var tableStmts, linkStmts []string
	for _, t := range r.tables {
		var columns []string
		for _, f := range t.fields {
			frag, err := fields.CreationQuery(f)
			if err != nil {
				return nil, fmt.Errorf("schema: table %q: %w", t.Name(), err)
			}
			if f.Kind() == fields.KindManyToMany {
				link := f.(*fields.ManyToMany)
				stmt, err := query.Compile(query.Chain{query.CreateTable{
					Table:   link.LinkTable(),
					Columns: []string{frag},
				}})
				if err != nil {
					return nil, err
				}
				linkStmts = append(linkStmts, stmt)
				continue
			}
			columns = append(columns, frag)
		}
		stmt, err := query.Compile(query.Chain{query.CreateTable{
			Table:   t.Name(),
			Columns: columns,
		}})
		if err != nil {
			return nil, err
		}
		tableStmts = append(tableStmts, stmt)
	}
	return append(tableStmts, linkStmts...), nil
}

// Statements returns the full DDL script in apply order: requirements
// first, then creation queries.
func (r *Registry) Statements() ([]string, error) {
	creations, err := r.CreationQueries()
	if err != nil {
		return nil, err
	}
	return append(r.Requirements(), creations...), nil
}

// Fingerprint hashes the DDL script. Two registries producing the same
// statements in the same order share a fingerprint.
func (r *Registry) Fingerprint() (string, error) {
	stmts, err := r.Statements()
	if err != nil {
		return "", err
	}
	return Fingerprint(stmts), nil
}

// Fingerprint hashes a DDL script into a fixed-width hex digest.
func Fingerprint(statements []string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(strings.Join(statements, "\n")))
}
