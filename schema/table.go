// Package schema assembles field declarations into tables and registries
// and renders the DDL scripts that create them.
package schema

import (
	"fmt"
	"strings"

	"github.com/rowfold/rowfold/fields"
)

// Error reports an inconsistent table or registry declaration.
type Error struct {
	Table  string
	Reason string
}

func (e *Error) Error() string {
	if e.Table == "" {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: table %q: %s", e.Table, e.Reason)
}

// Table is an ordered set of field declarations under one name. Every table
// carries exactly one serial primary key; NewTable prepends an `id`
// AutoSerial when the declaration brings none of its own.
type Table struct {
	name   string
	fields []fields.Field
	pk     fields.Field
}

// NewTable declares a table. It validates the table name with the same rule
// columns follow, rejects duplicate columns and double primary keys, and
// requires every many-to-many relation to name this table as its owner.
func NewTable(name string, flds ...fields.Field) (*Table, error) {
	if err := checkTableName(name); err != nil {
		return nil, err
	}

	var pk fields.Field
	for _, f := range flds {
		switch f.Kind() {
		case fields.KindAutoSerial, fields.KindBigAutoSerial:
			if pk != nil {
				return nil, &Error{Table: name, Reason: fmt.Sprintf(
					"columns %q and %q both declare a serial primary key", pk.Column(), f.Column())}
			}
			pk = f
		case fields.KindManyToMany:
			m2m := f.(*fields.ManyToMany)
			if m2m.Owner() != name {
				return nil, &Error{Table: name, Reason: fmt.Sprintf(
					"relation %q is owned by table %q", m2m.Column(), m2m.Owner())}
			}
		}
	}

	if pk == nil {
		id, err := fields.NewAutoSerial("id")
		if err != nil {
			return nil, err
		}
		pk = id
		flds = append([]fields.Field{id}, flds...)
	}

	seen := make(map[string]struct{}, len(flds))
	for _, f := range flds {
		if _, dup := seen[f.Column()]; dup {
			return nil, &Error{Table: name, Reason: fmt.Sprintf("duplicate column %q", f.Column())}
		}
		seen[f.Column()] = struct{}{}
	}

	return &Table{name: name, fields: flds, pk: pk}, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Fields returns the declarations in order, the primary key first when it
// was auto-added.
func (t *Table) Fields() []fields.Field {
	out := make([]fields.Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Field returns the declaration for column, if any.
func (t *Table) Field(column string) (fields.Field, bool) {
	for _, f := range t.fields {
		if f.Column() == column {
			return f, true
		}
	}
	return nil, false
}

// PrimaryKey returns the table's serial primary key declaration.
func (t *Table) PrimaryKey() fields.Field { return t.pk }

// Relations returns the table's many-to-many declarations in order.
func (t *Table) Relations() []*fields.ManyToMany {
	var out []*fields.ManyToMany
	for _, f := range t.fields {
		if m2m, ok := f.(*fields.ManyToMany); ok {
			out = append(out, m2m)
		}
	}
	return out
}

// checkTableName applies the column naming rule to table names.
func checkTableName(name string) error {
	switch {
	case name == "":
		return &Error{Reason: "table name is required"}
	case strings.Contains(name, "__"):
		return &Error{Table: name, Reason: "table name contains a double underscore"}
	case strings.HasPrefix(name, "_") || strings.HasSuffix(name, "_"):
		return &Error{Table: name, Reason: "table name starts or ends with an underscore"}
	}
	return nil
}
