// Package query compiles an ordered chain of query operations into a single
// executable SQL statement. The compiler performs plain template
// substitution: condition fragments, field names and values arrive
// pre-sanitized (see the fields package) and are never escaped here.
package query

import "fmt"

// Operation is one step of a query chain. The variant set is closed; each
// variant renders one fixed statement template.
type Operation interface {
	// Render fills the variant's template with its fields. The result has
	// no trailing terminator; Compile appends it.
	Render() string

	isOperation()
}

// Chain is a non-empty ordered sequence of operations. The first element
// fixes the statement kind; every later element must be a Where refining it.
type Chain []Operation

// SelectAll reads rows with an optional ordering and no condition.
// Selection is "*" or an aggregate expression; ordering applies only to the
// former.
type SelectAll struct {
	Table     string
	Selection string
	Ordering  []string
}

func (op SelectAll) Render() string {
	return fmt.Sprintf(TemplateSelectAll, op.Selection, op.Table, orderingClause(op.Selection, op.Ordering))
}

// Select reads rows constrained by a condition. Chains normally reach this
// variant through folding a SelectAll with Where refinements.
type Select struct {
	Table     string
	Selection string
	Condition string
	Ordering  []string
}

func (op Select) Render() string {
	return fmt.Sprintf(TemplateSelect, op.Selection, op.Table, op.Condition, orderingClause(op.Selection, op.Ordering))
}

// Where refines the preceding operation with a boolean SQL fragment.
type Where struct {
	Condition string
}

func (op Where) Render() string {
	return fmt.Sprintf(TemplateWhere, op.Condition)
}

// Insert writes one row. FieldNames and FieldValues are parallel, already
// rendered as SQL text.
type Insert struct {
	Table       string
	FieldNames  []string
	FieldValues []string
}

func (op Insert) Render() string {
	return fmt.Sprintf(TemplateInsert, op.Table, joinList(op.FieldNames), joinList(op.FieldValues))
}

// Update rewrites the row(s) identified by IDData.
type Update struct {
	Table       string
	FieldNames  []string
	FieldValues []string
	IDData      string
}

func (op Update) Render() string {
	return fmt.Sprintf(TemplateUpdate, op.Table, joinList(op.FieldNames), joinList(op.FieldValues), op.IDData)
}

// Delete removes the row(s) identified by IDData.
type Delete struct {
	Table  string
	IDData string
}

func (op Delete) Render() string {
	return fmt.Sprintf(TemplateDelete, op.Table, op.IDData)
}

// SelectM2M reads the far side of a many-to-many relation through its link
// table: rows of OtherTable whose OtherPK appears in the LinkTable column
// OtherColumn for link rows matching LinkCondition.
type SelectM2M struct {
	Selection     string
	OtherTable    string
	OtherPK       string
	OtherColumn   string
	LinkTable     string
	LinkCondition string
}

func (op SelectM2M) Render() string {
	return fmt.Sprintf(TemplateSelectM2M,
		op.Selection, op.OtherTable, op.OtherPK, op.OtherColumn, op.LinkTable, op.LinkCondition)
}

// CreateTable creates a table from pre-rendered column fragments.
type CreateTable struct {
	Table   string
	Columns []string
}

func (op CreateTable) Render() string {
	return fmt.Sprintf(TemplateCreateTable, op.Table, joinList(op.Columns))
}

// DropTable drops a table and everything depending on it.
type DropTable struct {
	Table string
}

func (op DropTable) Render() string {
	return fmt.Sprintf(TemplateDropTable, op.Table)
}

// AlterTable applies pre-rendered column changes to a table.
type AlterTable struct {
	Table   string
	Changes []string
}

func (op AlterTable) Render() string {
	return fmt.Sprintf(TemplateAlterTable, op.Table, joinList(op.Changes))
}

// AddConstraint attaches a pre-rendered constraint to a table.
type AddConstraint struct {
	Table      string
	Constraint string
}

func (op AddConstraint) Render() string {
	return fmt.Sprintf(TemplateAddConstraint, op.Table, op.Constraint)
}

// AddColumn adds one pre-rendered column to a table.
type AddColumn struct {
	Table  string
	Column string
}

func (op AddColumn) Render() string {
	return fmt.Sprintf(TemplateAddColumn, op.Table, op.Column)
}

// AlterColumn changes one column of a table.
type AlterColumn struct {
	Table  string
	Change string
}

func (op AlterColumn) Render() string {
	return fmt.Sprintf(TemplateAlterColumn, op.Table, op.Change)
}

func (SelectAll) isOperation()     {}
func (Select) isOperation()        {}
func (Where) isOperation()         {}
func (Insert) isOperation()        {}
func (Update) isOperation()        {}
func (Delete) isOperation()        {}
func (SelectM2M) isOperation()     {}
func (CreateTable) isOperation()   {}
func (DropTable) isOperation()     {}
func (AlterTable) isOperation()    {}
func (AddConstraint) isOperation() {}
func (AddColumn) isOperation()     {}
func (AlterColumn) isOperation()   {}

var (
	_ Operation = SelectAll{}
	_ Operation = Select{}
	_ Operation = Where{}
	_ Operation = Insert{}
	_ Operation = Update{}
	_ Operation = Delete{}
	_ Operation = SelectM2M{}
	_ Operation = CreateTable{}
	_ Operation = DropTable{}
	_ Operation = AlterTable{}
	_ Operation = AddConstraint{}
	_ Operation = AddColumn{}
	_ Operation = AlterColumn{}
)
