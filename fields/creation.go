package fields

import (
	"strconv"
	"strings"
)

// CreationQuery renders the column fragment f contributes to a CREATE TABLE
// statement: column name, type DDL, resolved default, UNIQUE and null
// markers, in that order. ManyToMany is the exception: it renders the bare
// link-table DDL with no column prefix and no trailing markers.
func CreationQuery(f Field) (string, error) {
	if m2m, ok := f.(*ManyToMany); ok {
		return m2m.ddl(), nil
	}

	var b strings.Builder
	b.WriteString(f.Column())
	b.WriteString(" ")
	b.WriteString(f.ddl())

	def, ok, err := resolveDefault(f)
	if err != nil {
		return "", err
	}
	switch {
	case ok:
		b.WriteString(" DEFAULT ")
		b.WriteString(def)
	case autoNow(f):
		b.WriteString(" DEFAULT now()")
	}

	if f.Unique() {
		b.WriteString(" UNIQUE")
	}
	if f.Nullable() {
		b.WriteString(" NULL")
	} else {
		b.WriteString(" NOT NULL")
	}
	return b.String(), nil
}

// resolveDefault renders the declared default as DDL text. Strings are
// single-quoted as-is, booleans render bare, anything else goes through
// sanitization and literal formatting. Producer defaults are invoked here,
// once per rendering.
func resolveDefault(f Field) (string, bool, error) {
	var value any
	switch d := f.Default().(type) {
	case nil:
		return "", false, nil
	case Literal:
		value = d.Value
	case Producer:
		value = d()
	}
	switch v := value.(type) {
	case nil:
		return "NULL", true, nil
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	default:
		payload, err := SanitizeData(f, value)
		if err != nil {
			return "", false, &DeclarationError{
				Field:  f.Column(),
				Param:  "default",
				Reason: "produced default rejected: " + err.Error(),
			}
		}
		return formatLiteral(payload), true, nil
	}
}

func autoNow(f Field) bool {
	switch fld := f.(type) {
	case *DateTime:
		return fld.autoNow
	case *Date:
		return fld.autoNow
	case *Time:
		return fld.autoNow
	}
	return false
}

// Requirement returns the database-level statement f depends on before its
// DDL can apply, with ok false when the kind has none.
func Requirement(f Field) (string, bool) {
	if u, ok := f.(*UUID); ok {
		return u.Requirement(), true
	}
	return "", false
}
