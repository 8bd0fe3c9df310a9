package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is the raw parse tree of one schema definition file.
type File struct {
	Pos    lexer.Position
	Tables []*TableDecl `parser:"@@*"`
}

// TableDecl is one table block.
type TableDecl struct {
	Pos    lexer.Position
	Name   string       `parser:"\"table\" @Ident"`
	Fields []*FieldDecl `parser:"\"{\" @@* \"}\""`
}

// FieldDecl is one column line: a name, a type and its attributes.
type FieldDecl struct {
	Pos   lexer.Position
	Name  string      `parser:"@Ident"`
	Type  *TypeRef    `parser:"@@"`
	Attrs []*AttrDecl `parser:"@@*"`
}

// TypeRef is a type keyword with optional parenthesized arguments, such as
// varchar(30), decimal(10,2), fk(author) or uuid(v1).
type TypeRef struct {
	Pos  lexer.Position
	Name string   `parser:"@Ident"`
	Args []string `parser:"(\"(\" @(Ident | Number) (\",\" @(Ident | Number))* \")\")?"`
}

// AttrDecl is one column attribute.
type AttrDecl struct {
	Pos      lexer.Position
	Null     bool       `parser:"  @\"null\""`
	Unique   bool       `parser:"| @\"unique\""`
	Indexed  bool       `parser:"| @\"indexed\""`
	AutoNow  bool       `parser:"| @\"auto_now\""`
	Default  *Literal   `parser:"| \"default\" @@"`
	Choices  []*Literal `parser:"| \"choices\" \"(\" @@ (\",\" @@)* \")\""`
	Protocol string     `parser:"| \"protocol\" @Ident"`
	Unpack   string     `parser:"| \"unpack\" @Ident"`
	Dialect  string     `parser:"| \"dialect\" @Ident"`
}

// Literal is a quoted string, a number or a boolean.
type Literal struct {
	Pos  lexer.Position
	Str  *string `parser:"  @String"`
	Num  *string `parser:"| @Number"`
	Bool *string `parser:"| @(\"true\" | \"false\")"`
}

// value converts the literal to its runtime form: string, int64, float64 or
// bool. Numbers without a decimal point become int64.
func (l *Literal) value() (any, error) {
	switch {
	case l.Str != nil:
		return *l.Str, nil
	case l.Num != nil:
		if strings.Contains(*l.Num, ".") {
			return strconv.ParseFloat(*l.Num, 64)
		}
		return strconv.ParseInt(*l.Num, 10, 64)
	case l.Bool != nil:
		return *l.Bool == "true", nil
	}
	return nil, errors.New("empty literal")
}
