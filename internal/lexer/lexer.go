// Package lexer transforms calculator input into a stream of tokens.
//
// A Lexer is created by calling New() with the input string. Tokens are then
// read one at a time using Next(), until an EOF token is returned. Lexer
// errors are considered syntax errors by the parser.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/safecalc-io/safecalc/internal/token"
)

// Lexer is used to tokenize a calculator input string.
type Lexer struct {
	// input being tokenized
	input string

	// byte offset of the current rune
	pos int

	// byte offset of the start of the current line
	lineStart int

	// 0-indexed line and column of the current rune
	line   int
	column int

	// the filename associated with the input, if any
	filename string
}

// New returns a Lexer for the given input string.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// SetFilename sets the filename associated with the input.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the filename associated with the input.
func (l *Lexer) Filename() string {
	return l.filename
}

// GetLineText returns the full line of input containing the given token.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	rest := l.input[start:]
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

// Next returns the next token from the input. After the input is exhausted,
// every call returns an EOF token. A non-nil error indicates input that
// cannot be tokenized; the accompanying token is of type ILLEGAL.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	start := l.position()

	r, size := l.peek()
	if size == 0 {
		return l.emit(token.EOF, "", start), nil
	}

	switch {
	case isDigit(r), r == '.' && isDigit(l.peekAt(size)):
		return l.readNumber(start)
	case isIdentStart(r):
		return l.readIdentifier(start)
	case r == '\'' || r == '"':
		return l.readString(start, r)
	}

	l.advance(size)
	switch r {
	case '+':
		return l.emit(token.PLUS, "+", start), nil
	case '-':
		return l.emit(token.MINUS, "-", start), nil
	case '%':
		return l.emit(token.MOD, "%", start), nil
	case '(':
		return l.emit(token.LPAREN, "(", start), nil
	case ')':
		return l.emit(token.RPAREN, ")", start), nil
	case ',':
		return l.emit(token.COMMA, ",", start), nil
	case '[':
		return l.emit(token.LBRACKET, "[", start), nil
	case ']':
		return l.emit(token.RBRACKET, "]", start), nil
	case '{':
		return l.emit(token.LBRACE, "{", start), nil
	case '}':
		return l.emit(token.RBRACE, "}", start), nil
	case ':':
		return l.emit(token.COLON, ":", start), nil
	case '.':
		return l.emit(token.PERIOD, ".", start), nil
	case '*':
		if l.accept('*') {
			return l.emit(token.POW, "**", start), nil
		}
		return l.emit(token.ASTERISK, "*", start), nil
	case '/':
		if l.accept('/') {
			return l.emit(token.FLOORDIV, "//", start), nil
		}
		return l.emit(token.SLASH, "/", start), nil
	case '=':
		if l.accept('=') {
			return l.emit(token.EQ, "==", start), nil
		}
		return l.emit(token.ASSIGN, "=", start), nil
	case '!':
		if l.accept('=') {
			return l.emit(token.NOT_EQ, "!=", start), nil
		}
		return l.emit(token.BANG, "!", start), nil
	case '<':
		if l.accept('=') {
			return l.emit(token.LT_EQUALS, "<=", start), nil
		}
		return l.emit(token.LT, "<", start), nil
	case '>':
		if l.accept('=') {
			return l.emit(token.GT_EQUALS, ">=", start), nil
		}
		return l.emit(token.GT, ">", start), nil
	}

	tok := l.emit(token.ILLEGAL, string(r), start)
	return tok, fmt.Errorf("unexpected character %q", r)
}

// readNumber reads an integer or floating point literal. The leading rune is
// known to be a digit or a '.' followed by a digit.
func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	typ := token.INT
	l.acceptRun(isDigit)
	if l.accept('.') {
		typ = token.FLOAT
		l.acceptRun(isDigit)
	}
	if r, _ := l.peek(); r == 'e' || r == 'E' {
		typ = token.FLOAT
		mark := *l
		l.advance(1)
		l.accept('+')
		l.accept('-')
		if r, _ := l.peek(); !isDigit(r) {
			// Not an exponent after all ("2e" etc); rewind to the 'e' so it
			// surfaces as a trailing-character error below.
			*l = mark
		} else {
			l.acceptRun(isDigit)
		}
	}
	// A number immediately followed by an identifier character is malformed
	// input ("123abc"), not two adjacent tokens.
	if r, _ := l.peek(); isIdentStart(r) {
		l.acceptRun(func(r rune) bool { return isIdentStart(r) || isDigit(r) })
		lit := l.input[start.Char:l.pos]
		return l.emit(token.ILLEGAL, lit, start), fmt.Errorf("invalid number literal %q", lit)
	}
	return l.emit(typ, l.input[start.Char:l.pos], start), nil
}

func (l *Lexer) readIdentifier(start token.Position) (token.Token, error) {
	l.acceptRun(func(r rune) bool { return isIdentStart(r) || isDigit(r) })
	lit := l.input[start.Char:l.pos]
	return l.emit(token.LookupIdentifier(lit), lit, start), nil
}

// readString consumes a quoted string literal. String literals are not part
// of the calculator grammar, but lexing them lets the parser reject the
// construct by name rather than choking on the quote character.
func (l *Lexer) readString(start token.Position, quote rune) (token.Token, error) {
	l.advance(1) // opening quote
	for {
		r, size := l.peek()
		if size == 0 || r == '\n' {
			lit := l.input[start.Char:l.pos]
			return l.emit(token.ILLEGAL, lit, start), fmt.Errorf("unterminated string literal")
		}
		l.advance(size)
		if r == quote {
			break
		}
	}
	lit := l.input[start.Char:l.pos]
	return l.emit(token.STRING, lit, start), nil
}

func (l *Lexer) skipWhitespace() {
	for {
		r, size := l.peek()
		if size == 0 {
			return
		}
		switch r {
		case ' ', '\t', '\r':
			l.advance(size)
		case '\n':
			l.advance(size)
			l.line++
			l.column = 0
			l.lineStart = l.pos
		default:
			return
		}
	}
}

// peek returns the rune at the current offset without consuming it.
// A size of zero indicates end of input.
func (l *Lexer) peek() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

// peekAt returns the rune at the given byte offset past the current one.
func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos+offset:])
	return r
}

// advance consumes n bytes of input.
func (l *Lexer) advance(n int) {
	l.pos += n
	l.column += n
}

// accept consumes the next rune if it equals r.
func (l *Lexer) accept(r rune) bool {
	got, size := l.peek()
	if size > 0 && got == r {
		l.advance(size)
		return true
	}
	return false
}

// acceptRun consumes runes while the predicate holds.
func (l *Lexer) acceptRun(pred func(rune) bool) {
	for {
		r, size := l.peek()
		if size == 0 || !pred(r) {
			return
		}
		l.advance(size)
	}
}

func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.column,
		File:      l.filename,
	}
}

func (l *Lexer) emit(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   start.Advance(len(literal)),
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
