package lexer

import (
	"testing"

	"github.com/safecalc-io/safecalc/internal/token"
	"github.com/stretchr/testify/require"
)

// tokenize reads all tokens up to and including EOF, failing on any error.
func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		require.Nil(t, err)
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func TestTokenTypes(t *testing.T) {
	input := "x = 5 + 3.5 * 2 / 4 // 2 % 3 ** 2, (y)"
	expected := []struct {
		typ     token.Type
		literal string
	}{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.PLUS, "+"},
		{token.FLOAT, "3.5"},
		{token.ASTERISK, "*"},
		{token.INT, "2"},
		{token.SLASH, "/"},
		{token.INT, "4"},
		{token.FLOORDIV, "//"},
		{token.INT, "2"},
		{token.MOD, "%"},
		{token.INT, "3"},
		{token.POW, "**"},
		{token.INT, "2"},
		{token.COMMA, ","},
		{token.LPAREN, "("},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.EOF, ""},
	}
	tokens := tokenize(t, input)
	require.Len(t, tokens, len(expected))
	for i, exp := range expected {
		require.Equal(t, exp.typ, tokens[i].Type, "token %d", i)
		require.Equal(t, exp.literal, tokens[i].Literal, "token %d", i)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		typ      token.Type
		expected string
	}{
		{"0", token.INT, "0"},
		{"42", token.INT, "42"},
		{"3.5", token.FLOAT, "3.5"},
		{".5", token.FLOAT, ".5"},
		{"1.", token.FLOAT, "1."},
		{"1e3", token.FLOAT, "1e3"},
		{"1.5e-3", token.FLOAT, "1.5e-3"},
		{"2E+10", token.FLOAT, "2E+10"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok, err := l.Next()
		require.Nil(t, err, tt.input)
		require.Equal(t, tt.typ, tok.Type, tt.input)
		require.Equal(t, tt.expected, tok.Literal, tt.input)
	}
}

func TestInvalidNumbers(t *testing.T) {
	for _, input := range []string{"123abc", "1_000"} {
		l := New(input)
		tok, err := l.Next()
		require.NotNil(t, err, input)
		require.Equal(t, token.ILLEGAL, tok.Type, input)
	}
}

func TestBareExponent(t *testing.T) {
	// "2e" is the integer 2 followed by the identifier e, because the 'e'
	// is not followed by a digit. The number scanner rewinds and the
	// trailing identifier check then reports the malformed literal.
	l := New("2e")
	tok, err := l.Next()
	require.NotNil(t, err)
	require.Equal(t, token.ILLEGAL, tok.Type)
}

func TestKeywordsAreLexed(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"if", token.IF},
		{"else", token.ELSE},
		{"lambda", token.LAMBDA},
		{"and", token.AND},
		{"or", token.OR},
		{"not", token.NOT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok, err := l.Next()
		require.Nil(t, err)
		require.Equal(t, tt.typ, tok.Type, tt.input)
	}
}

func TestComparisonOperators(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"==", token.EQ},
		{"!=", token.NOT_EQ},
		{"<", token.LT},
		{"<=", token.LT_EQUALS},
		{">", token.GT},
		{">=", token.GT_EQUALS},
		{"!", token.BANG},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok, err := l.Next()
		require.Nil(t, err)
		require.Equal(t, tt.typ, tok.Type, tt.input)
	}
}

func TestStrings(t *testing.T) {
	l := New(`"hello"`)
	tok, err := l.Next()
	require.Nil(t, err)
	require.Equal(t, token.STRING, tok.Type)

	l = New(`'hi'`)
	tok, err = l.Next()
	require.Nil(t, err)
	require.Equal(t, token.STRING, tok.Type)

	l = New(`"unterminated`)
	tok, err = l.Next()
	require.NotNil(t, err)
	require.Equal(t, token.ILLEGAL, tok.Type)
}

func TestUnexpectedCharacter(t *testing.T) {
	l := New("3 $ 4")
	tok, err := l.Next()
	require.Nil(t, err)
	require.Equal(t, token.INT, tok.Type)

	tok, err = l.Next()
	require.NotNil(t, err)
	require.Equal(t, token.ILLEGAL, tok.Type)
	require.Equal(t, "$", tok.Literal)
}

func TestPositions(t *testing.T) {
	l := New("ab + cd")
	tok, err := l.Next()
	require.Nil(t, err)
	require.Equal(t, 0, tok.StartPosition.Column)
	require.Equal(t, 2, tok.EndPosition.Column)

	tok, err = l.Next()
	require.Nil(t, err)
	require.Equal(t, "+", tok.Literal)
	require.Equal(t, 3, tok.StartPosition.Column)

	tok, err = l.Next()
	require.Nil(t, err)
	require.Equal(t, "cd", tok.Literal)
	require.Equal(t, 5, tok.StartPosition.Column)
	require.Equal(t, 0, tok.StartPosition.Line)
}

func TestGetLineText(t *testing.T) {
	l := New("1 + 2\n3 + four")
	var tokens []token.Token
	for {
		tok, err := l.Next()
		require.Nil(t, err)
		if tok.Type == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	require.Len(t, tokens, 6)
	require.Equal(t, "1 + 2", l.GetLineText(tokens[0]))
	require.Equal(t, "3 + four", l.GetLineText(tokens[5]))
	require.Equal(t, 1, tokens[5].StartPosition.Line)
}

func TestEOFIsSticky(t *testing.T) {
	l := New("1")
	tok, err := l.Next()
	require.Nil(t, err)
	require.Equal(t, token.INT, tok.Type)
	for i := 0; i < 3; i++ {
		tok, err = l.Next()
		require.Nil(t, err)
		require.Equal(t, token.EOF, tok.Type)
	}
}

func TestFilename(t *testing.T) {
	l := New("1")
	l.SetFilename("input.calc")
	require.Equal(t, "input.calc", l.Filename())
	tok, err := l.Next()
	require.Nil(t, err)
	require.Equal(t, "input.calc", tok.StartPosition.File)
}
