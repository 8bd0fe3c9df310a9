package query

import (
	"fmt"

	"github.com/rowfold/rowfold/fields"
)

// Assignment pairs a field with the value to write to it.
type Assignment struct {
	Field fields.Field
	Value any
}

// Builder accumulates a chain fluently. Errors from value rendering are
// collected and surfaced by Chain; the first one wins.
type Builder struct {
	table    string
	head     Operation
	ordering []string
	wheres   []Where
	err      error
}

// NewBuilder starts a chain against table.
func NewBuilder(table string) *Builder {
	return &Builder{table: table}
}

// SelectAll reads every column.
func (b *Builder) SelectAll() *Builder {
	b.head = SelectAll{Table: b.table, Selection: "*"}
	return b
}

// SelectExpr reads an aggregate expression instead of rows. Ordering does
// not apply to aggregate selections.
func (b *Builder) SelectExpr(expr string) *Builder {
	b.head = SelectAll{Table: b.table, Selection: expr}
	return b
}

// Count reads COUNT(*).
func (b *Builder) Count() *Builder {
	return b.SelectExpr("COUNT(*)")
}

// OrderBy sets the ordering columns; a leading "-" means descending.
func (b *Builder) OrderBy(columns ...string) *Builder {
	b.ordering = append(b.ordering, columns...)
	return b
}

// Where appends a pre-rendered condition fragment.
func (b *Builder) Where(condition string) *Builder {
	b.wheres = append(b.wheres, Where{Condition: condition})
	return b
}

// WhereValue appends a condition comparing a field's column against a typed
// value, rendered through the field's own sanitization.
func (b *Builder) WhereValue(f fields.Field, operator string, v any) *Builder {
	lit, err := fields.SQLLiteral(f, v)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.Where(fmt.Sprintf("%s %s %s", f.Column(), operator, lit))
}

// InsertRow makes the chain an insert of one row built from typed
// assignments.
func (b *Builder) InsertRow(assignments ...Assignment) *Builder {
	names, values, err := renderAssignments(assignments)
	if err != nil {
		b.fail(err)
		return b
	}
	b.head = Insert{Table: b.table, FieldNames: names, FieldValues: values}
	return b
}

// UpdateRow makes the chain an update of the row(s) matching idData.
func (b *Builder) UpdateRow(idData string, assignments ...Assignment) *Builder {
	names, values, err := renderAssignments(assignments)
	if err != nil {
		b.fail(err)
		return b
	}
	b.head = Update{Table: b.table, FieldNames: names, FieldValues: values, IDData: idData}
	return b
}

// DeleteRow makes the chain a delete of the row(s) matching idData.
func (b *Builder) DeleteRow(idData string) *Builder {
	b.head = Delete{Table: b.table, IDData: idData}
	return b
}

// Chain returns the accumulated chain.
func (b *Builder) Chain() (Chain, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.head == nil {
		return nil, &CompileError{Reason: "builder has no base operation"}
	}
	head := b.head
	switch h := head.(type) {
	case SelectAll:
		h.Ordering = b.ordering
		head = h
	case Select:
		h.Ordering = b.ordering
		head = h
	}
	chain := make(Chain, 0, 1+len(b.wheres))
	chain = append(chain, head)
	for _, w := range b.wheres {
		chain = append(chain, w)
	}
	return chain, nil
}

// Compile folds the accumulated chain into its statement.
func (b *Builder) Compile() (string, error) {
	chain, err := b.Chain()
	if err != nil {
		return "", err
	}
	return Compile(chain)
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func renderAssignments(assignments []Assignment) (names, values []string, err error) {
	names = make([]string, len(assignments))
	values = make([]string, len(assignments))
	for i, a := range assignments {
		lit, err := fields.SQLLiteral(a.Field, a.Value)
		if err != nil {
			return nil, nil, err
		}
		names[i] = a.Field.Column()
		values[i] = lit
	}
	return names, values, nil
}
