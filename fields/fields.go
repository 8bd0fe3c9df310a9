// Package fields implements the column type system: per-kind value
// validation, SQL payload sanitization, read-side recomposition, and the
// DDL fragment each column contributes to a CREATE TABLE statement.
//
// The set of kinds is closed: Field is a sealed interface and every variant
// lives in this package. Shared behavior is implemented by package-level
// functions (Validate, SanitizeData, SerializeData, Recompose,
// CreationQuery) that dispatch on the concrete variant, not by method
// overriding.
package fields

import "strings"

// Kind tags a field variant.
type Kind int

// Field kinds, one per supported column type.
const (
	KindBoolean Kind = iota
	KindChar
	KindEmail
	KindText
	KindInteger
	KindBigInteger
	KindFloat
	KindDecimal
	KindAutoSerial
	KindBigAutoSerial
	KindDateTime
	KindDate
	KindTime
	KindForeignKey
	KindManyToMany
	KindJSON
	KindUUID
	KindArray
	KindIPAddress
	KindMacAddr
)

var kindNames = map[Kind]string{
	KindBoolean:       "boolean",
	KindChar:          "char",
	KindEmail:         "email",
	KindText:          "text",
	KindInteger:       "integer",
	KindBigInteger:    "biginteger",
	KindFloat:         "float",
	KindDecimal:       "decimal",
	KindAutoSerial:    "autoserial",
	KindBigAutoSerial: "bigautoserial",
	KindDateTime:      "datetime",
	KindDate:          "date",
	KindTime:          "time",
	KindForeignKey:    "foreignkey",
	KindManyToMany:    "manytomany",
	KindJSON:          "json",
	KindUUID:          "uuid",
	KindArray:         "array",
	KindIPAddress:     "ipaddress",
	KindMacAddr:       "macaddr",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Field is the common surface of every column kind. The interface is sealed:
// the unexported ddl method keeps the variant set closed to this package, and
// forces every variant to define its DDL fragment before it can exist.
type Field interface {
	// Column is the declared column name.
	Column() string
	// Nullable reports whether the column accepts NULL.
	Nullable() bool
	// Unique reports whether the column carries a UNIQUE constraint.
	Unique() bool
	// Indexed reports whether an index was requested for the column.
	Indexed() bool
	// Default returns the declared default, or nil when absent.
	Default() Default
	// Choices returns the declared allowed values, empty when unrestricted.
	Choices() Choices
	// Kind returns the variant tag.
	Kind() Kind

	ddl() string
}

// Options carries the attributes shared by every column kind. The zero value
// declares a non-nullable column with no constraints, no default and no
// choice restriction.
type Options struct {
	Null    bool
	Unique  bool
	Index   bool
	Default Default
	Choices Choices
}

// common holds the per-column attributes embedded by every variant.
type common struct {
	column  string
	null    bool
	unique  bool
	index   bool
	def     Default
	choices Choices
}

func newCommon(column string, opts Options) common {
	return common{
		column:  column,
		null:    opts.Null,
		unique:  opts.Unique,
		index:   opts.Index,
		def:     opts.Default,
		choices: opts.Choices,
	}
}

func (c common) Column() string   { return c.column }
func (c common) Nullable() bool   { return c.null }
func (c common) Unique() bool     { return c.unique }
func (c common) Indexed() bool    { return c.index }
func (c common) Default() Default { return c.def }
func (c common) Choices() Choices { return c.choices }

// checkColumn enforces the column naming rule: non-empty, no "__" anywhere,
// no leading or trailing "_".
func checkColumn(column string) error {
	switch {
	case column == "":
		return &DeclarationError{Field: column, Param: "column", Reason: "column name is required"}
	case strings.Contains(column, "__"):
		return &DeclarationError{Field: column, Param: "column", Reason: `column name cannot contain "__"`}
	case strings.HasPrefix(column, "_"):
		return &DeclarationError{Field: column, Param: "column", Reason: `column name cannot start with "_"`}
	case strings.HasSuffix(column, "_"):
		return &DeclarationError{Field: column, Param: "column", Reason: `column name cannot end with "_"`}
	}
	return nil
}

// checkLiteralDefault rejects a Literal default the field itself would not
// accept as a value. Producer defaults are resolved at DDL time and cannot be
// checked here.
func checkLiteralDefault(f Field) error {
	lit, ok := f.Default().(Literal)
	if !ok {
		return nil
	}
	if err := Validate(f, lit.Value); err != nil {
		return &DeclarationError{
			Field:  f.Column(),
			Param:  "default",
			Reason: "literal default rejected: " + err.Error(),
		}
	}
	return nil
}

var (
	_ Field = (*Boolean)(nil)
	_ Field = (*Char)(nil)
	_ Field = (*Email)(nil)
	_ Field = (*Text)(nil)
	_ Field = (*Integer)(nil)
	_ Field = (*BigInteger)(nil)
	_ Field = (*Float)(nil)
	_ Field = (*Decimal)(nil)
	_ Field = (*AutoSerial)(nil)
	_ Field = (*BigAutoSerial)(nil)
	_ Field = (*DateTime)(nil)
	_ Field = (*Date)(nil)
	_ Field = (*Time)(nil)
	_ Field = (*ForeignKey)(nil)
	_ Field = (*ManyToMany)(nil)
	_ Field = (*JSON)(nil)
	_ Field = (*UUID)(nil)
	_ Field = (*Array)(nil)
	_ Field = (*IPAddress)(nil)
	_ Field = (*MacAddr)(nil)
)
