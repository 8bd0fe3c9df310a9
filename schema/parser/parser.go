// Package parser reads schema definition files and lowers them onto the
// field factories, producing a ready schema.Registry.
//
// The format is one block per table:
//
//	table book {
//	  name     varchar(30) unique
//	  synopsis text null
//	  price    decimal(10,2) default 9.99
//	  author   fk(author) null
//	  tags     m2m(tag)
//	}
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rowfold/rowfold/fields"
	"github.com/rowfold/rowfold/schema"
)

var grammar = participle.MustBuild[File](
	participle.Lexer(schemaLexer),
	participle.Elide("Whitespace", "Newline", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(4),
)

// BindError reports a declaration the grammar accepted but the field
// factories rejected, located by source position.
type BindError struct {
	Pos    lexer.Position
	Table  string
	Column string
	Err    error
}

func (e *BindError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: table %q: %s", e.Pos, e.Table, e.Err)
	}
	return fmt.Sprintf("%s: table %q, column %q: %s", e.Pos, e.Table, e.Column, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// Parse reads a schema definition and returns the registry it declares.
// Grammar errors carry the participle position; declaration errors carry a
// BindError wrapping the fields or schema error.
func Parse(filename string, r io.Reader) (*schema.Registry, error) {
	file, err := grammar.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	reg := schema.NewRegistry()
	for _, decl := range file.Tables {
		tbl, err := lowerTable(decl)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(tbl); err != nil {
			return nil, &BindError{Pos: decl.Pos, Table: decl.Name, Err: err}
		}
	}
	return reg, nil
}

// ParseString parses a schema definition held in a string.
func ParseString(filename, input string) (*schema.Registry, error) {
	return Parse(filename, strings.NewReader(input))
}

func lowerTable(decl *TableDecl) (*schema.Table, error) {
	flds := make([]fields.Field, 0, len(decl.Fields))
	for _, fd := range decl.Fields {
		f, err := lowerField(decl.Name, fd)
		if err != nil {
			return nil, err
		}
		flds = append(flds, f)
	}
	tbl, err := schema.NewTable(decl.Name, flds...)
	if err != nil {
		return nil, &BindError{Pos: decl.Pos, Table: decl.Name, Err: err}
	}
	return tbl, nil
}

// attrSet is the flattened attribute list of one column line.
type attrSet struct {
	opts     fields.Options
	autoNow  bool
	protocol string
	unpack   string
	dialect  string
}

func lowerField(table string, fd *FieldDecl) (fields.Field, error) {
	fail := func(err error) (fields.Field, error) {
		return nil, &BindError{Pos: fd.Pos, Table: table, Column: fd.Name, Err: err}
	}
	failf := func(format string, args ...any) (fields.Field, error) {
		return fail(fmt.Errorf(format, args...))
	}

	attrs, err := collectAttrs(fd.Attrs)
	if err != nil {
		return fail(err)
	}

	tr := fd.Type
	kind := tr.Name
	if attrs.autoNow && kind != "timestamp" && kind != "date" && kind != "time" {
		return failf("auto_now applies to timestamp, date and time columns")
	}
	if (attrs.protocol != "" || attrs.unpack != "") && kind != "inet" {
		return failf("protocol and unpack apply to inet columns")
	}
	if attrs.dialect != "" && kind != "macaddr" {
		return failf("dialect applies to macaddr columns")
	}

	build := func(f fields.Field, err error) (fields.Field, error) {
		if err != nil {
			return fail(err)
		}
		return f, nil
	}

	switch kind {
	case "boolean":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewBoolean(fd.Name, attrs.opts))
	case "varchar", "char":
		n, err := intArg(tr, 0, 1)
		if err != nil {
			return fail(err)
		}
		return build(fields.NewChar(fd.Name, n, attrs.opts))
	case "email":
		n, err := intArg(tr, 0, 1)
		if err != nil {
			return fail(err)
		}
		return build(fields.NewEmail(fd.Name, n, attrs.opts))
	case "text":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewText(fd.Name, attrs.opts))
	case "integer":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewInteger(fd.Name, attrs.opts))
	case "bigint":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewBigInteger(fd.Name, attrs.opts))
	case "float":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewFloat(fd.Name, attrs.opts))
	case "decimal":
		if len(tr.Args) == 0 {
			return build(fields.NewDecimal(fd.Name, 0, 0, attrs.opts))
		}
		digits, err := intArg(tr, 0, 2)
		if err != nil {
			return fail(err)
		}
		places, err := intArg(tr, 1, 2)
		if err != nil {
			return fail(err)
		}
		return build(fields.NewDecimal(fd.Name, digits, places, attrs.opts))
	case "serial", "bigserial":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		if len(fd.Attrs) > 0 {
			return failf("%s columns take no attributes", kind)
		}
		if kind == "serial" {
			return build(fields.NewAutoSerial(fd.Name))
		}
		return build(fields.NewBigAutoSerial(fd.Name))
	case "timestamp":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewDateTime(fd.Name, attrs.autoNow, attrs.opts))
	case "date":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewDate(fd.Name, attrs.autoNow, attrs.opts))
	case "time":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewTime(fd.Name, attrs.autoNow, attrs.opts))
	case "fk":
		target, err := strArg(tr, 0, 1)
		if err != nil {
			return fail(err)
		}
		return build(fields.NewForeignKey(fd.Name, target, attrs.opts))
	case "m2m":
		target, err := strArg(tr, 0, 1)
		if err != nil {
			return fail(err)
		}
		if len(fd.Attrs) > 0 {
			return failf("m2m relations take no attributes")
		}
		return build(fields.NewManyToMany(fd.Name, table, target))
	case "json":
		n, err := intArg(tr, 0, 1)
		if err != nil {
			return fail(err)
		}
		return build(fields.NewJSON(fd.Name, n, attrs.opts))
	case "uuid":
		version := fields.UUIDv4
		if len(tr.Args) > 0 {
			switch tr.Args[0] {
			case "v1":
				version = fields.UUIDv1
			case "v4":
				version = fields.UUIDv4
			default:
				return failf("unknown uuid version %q, want v1 or v4", tr.Args[0])
			}
		}
		return build(fields.NewUUID(fd.Name, version, attrs.opts))
	case "array":
		elem := ""
		if len(tr.Args) > 0 {
			var err error
			if elem, err = strArg(tr, 0, 1); err != nil {
				return fail(err)
			}
		}
		return build(fields.NewArray(fd.Name, fields.ElementType(elem), attrs.opts))
	case "inet":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewIPAddress(fd.Name,
			fields.IPProtocol(attrs.protocol), fields.IPUnpack(attrs.unpack), attrs.opts))
	case "macaddr":
		if err := wantArgs(tr, 0); err != nil {
			return fail(err)
		}
		return build(fields.NewMacAddr(fd.Name, fields.MacDialect(attrs.dialect), attrs.opts))
	default:
		return failf("unknown column type %q", kind)
	}
}

func collectAttrs(decls []*AttrDecl) (attrSet, error) {
	var a attrSet
	for _, attr := range decls {
		switch {
		case attr.Null:
			a.opts.Null = true
		case attr.Unique:
			a.opts.Unique = true
		case attr.Indexed:
			a.opts.Index = true
		case attr.AutoNow:
			a.autoNow = true
		case attr.Default != nil:
			v, err := attr.Default.value()
			if err != nil {
				return a, err
			}
			a.opts.Default = fields.Literal{Value: v}
		case len(attr.Choices) > 0:
			choices := make(fields.Choices, 0, len(attr.Choices))
			for _, lit := range attr.Choices {
				v, err := lit.value()
				if err != nil {
					return a, err
				}
				choices = append(choices, fields.Choice{Value: v, Label: fmt.Sprint(v)})
			}
			a.opts.Choices = choices
		case attr.Protocol != "":
			a.protocol = attr.Protocol
		case attr.Unpack != "":
			a.unpack = attr.Unpack
		case attr.Dialect != "":
			a.dialect = attr.Dialect
		}
	}
	return a, nil
}

func wantArgs(tr *TypeRef, n int) error {
	if len(tr.Args) == n {
		return nil
	}
	switch n {
	case 0:
		return fmt.Errorf("%s takes no arguments", tr.Name)
	case 1:
		return fmt.Errorf("%s takes 1 argument, got %d", tr.Name, len(tr.Args))
	default:
		return fmt.Errorf("%s takes %d arguments, got %d", tr.Name, n, len(tr.Args))
	}
}

func strArg(tr *TypeRef, i, n int) (string, error) {
	if err := wantArgs(tr, n); err != nil {
		return "", err
	}
	return tr.Args[i], nil
}

func intArg(tr *TypeRef, i, n int) (int, error) {
	s, err := strArg(tr, i, n)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s argument %d must be an integer, got %q", tr.Name, i+1, s)
	}
	return v, nil
}
