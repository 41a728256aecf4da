// Package token defines the tokens produced when lexing calculator input.
//
// The token set is deliberately closed: it covers the arithmetic grammar
// plus the tokens needed to recognize, and reject by name, constructs that
// the calculator does not support (comparisons, boolean keywords, brackets,
// and so on). A construct that never lexes can never evaluate.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the input
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename, if any
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes. This assumes the
// advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types accepted by the calculator grammar.
const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	IDENT Type = "IDENT"
	INT   Type = "INT"
	FLOAT Type = "FLOAT"

	ASSIGN   Type = "="
	PLUS     Type = "+"
	MINUS    Type = "-"
	ASTERISK Type = "*"
	SLASH    Type = "/"
	FLOORDIV Type = "//"
	MOD      Type = "%"
	POW      Type = "**"

	LPAREN Type = "("
	RPAREN Type = ")"
	COMMA  Type = ","
)

// Token types that lex successfully but are always rejected by the parser.
// They exist so diagnostics can name the unsupported construct.
const (
	EQ        Type = "=="
	NOT_EQ    Type = "!="
	LT        Type = "<"
	LT_EQUALS Type = "<="
	GT        Type = ">"
	GT_EQUALS Type = ">="
	BANG      Type = "!"
	LBRACKET  Type = "["
	RBRACKET  Type = "]"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	COLON     Type = ":"
	PERIOD    Type = "."
	STRING    Type = "STRING"
	IF        Type = "IF"
	ELSE      Type = "ELSE"
	LAMBDA    Type = "LAMBDA"
	AND       Type = "AND"
	OR        Type = "OR"
	NOT       Type = "NOT"
)

// Keywords of the (rejected) surface syntax. None of them are part of the
// supported grammar, but lexing them as keywords gives better errors than
// treating them as unknown variable names.
var keywords = map[string]Type{
	"if":     IF,
	"else":   ELSE,
	"lambda": LAMBDA,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
}

// LookupIdentifier determines whether an identifier is a keyword.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}
