package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// schemaLexer tokenizes schema definition files.
var schemaLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Punctuation
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},

	// Literals
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},

	// Identifiers (keywords, column names, attribute values)
	{Name: "Ident", Pattern: `[\p{L}][\p{L}\p{N}_-]*`},

	// Comments run to end of line
	{Name: "Comment", Pattern: `//[^\n]*`},

	// Whitespace and newlines
	{Name: "Newline", Pattern: `[\r\n]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})
