// Package parser generates the restricted syntax tree for a line of
// calculator input.
//
// The parser is a whitelist, not a blacklist: only the six supported node
// kinds can ever be produced. Tokens belonging to unsupported constructs
// (comparisons, boolean operators, conditionals, lambdas, attribute access,
// indexing, collection and string literals) have registered handlers whose
// only job is to fail with an error naming the construct, so nothing is
// silently coerced into an approximate form.
//
// A parser is created by calling New() with a lexer as input, and should be
// used only once, by calling Parse() to produce the tree.
package parser

import (
	"context"
	"fmt"
	"strconv"

	"github.com/safecalc-io/safecalc/ast"
	"github.com/safecalc-io/safecalc/errz"
	"github.com/safecalc-io/safecalc/internal/lexer"
	"github.com/safecalc-io/safecalc/internal/token"
)

type (
	prefixParseFn func() ast.Node
	infixParseFn  func(ast.Node) ast.Node
)

// Parse the provided input as a single calculator line and return the
// syntax tree. This is a shorthand way to create a Lexer and Parser and
// then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (ast.Node, error) {
	return New(lexer.New(input), options...).Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in error locations.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser. This prevents
// stack overflow on deeply nested input. The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// MaxErrors is the maximum number of errors to collect before stopping.
const MaxErrors = 10

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// prevToken holds the previous token, which we already processed
	prevToken token.Token

	// curToken holds the current token from the lexer
	curToken token.Token

	// peekToken holds the next token from the lexer
	peekToken token.Token

	// parsing errors collected during parsing
	errors []*errz.Error

	// prefixParseFns holds parsing methods for prefix-position tokens
	prefixParseFns map[token.Type]prefixParseFn

	// infixParseFns holds parsing methods for infix-position tokens
	infixParseFns map[token.Type]infixParseFn

	// the filename of the input
	filename string

	// current recursion depth
	depth int

	// maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the input provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" {
		l.SetFilename(p.filename)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	// Register prefix functions for the supported grammar
	p.registerPrefix(token.INT, p.parseNumber)
	p.registerPrefix(token.FLOAT, p.parseNumber)
	p.registerPrefix(token.IDENT, p.parseIdent)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.PLUS, p.parsePrefixExpr)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.EOF, p.endOfInput)
	p.registerPrefix(token.ILLEGAL, p.illegalToken)

	// Register infix functions for the supported grammar
	p.registerInfix(token.PLUS, p.parseInfixExpr)
	p.registerInfix(token.MINUS, p.parseInfixExpr)
	p.registerInfix(token.ASTERISK, p.parseInfixExpr)
	p.registerInfix(token.SLASH, p.parseInfixExpr)
	p.registerInfix(token.FLOORDIV, p.parseInfixExpr)
	p.registerInfix(token.MOD, p.parseInfixExpr)
	p.registerInfix(token.POW, p.parseInfixExpr)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.ASSIGN, p.rejectAssignTarget)

	// Register handlers that reject unsupported constructs by name
	p.registerRejectedPrefix("comparisons are not supported",
		token.EQ, token.NOT_EQ,
		token.LT, token.LT_EQUALS, token.GT, token.GT_EQUALS)
	p.registerRejectedPrefix("boolean operators are not supported",
		token.AND, token.OR, token.NOT, token.BANG)
	p.registerRejectedPrefix("conditional expressions are not supported",
		token.IF, token.ELSE)
	p.registerRejectedPrefix("anonymous functions are not supported", token.LAMBDA)
	p.registerRejectedPrefix("list and tuple literals are not supported", token.LBRACKET)
	p.registerRejectedPrefix("mapping literals are not supported", token.LBRACE)
	p.registerRejectedPrefix("string literals are not supported", token.STRING)

	p.registerRejectedInfix("comparisons are not supported",
		token.EQ, token.NOT_EQ,
		token.LT, token.LT_EQUALS, token.GT, token.GT_EQUALS)
	p.registerRejectedInfix("boolean operators are not supported", token.AND, token.OR)
	p.registerRejectedInfix("conditional expressions are not supported", token.IF)
	p.registerRejectedInfix("attribute access is not supported", token.PERIOD)
	p.registerRejectedInfix("indexing is not supported", token.LBRACKET)

	return p
}

// Parse the line that is provided via the lexer. Returns the syntax tree,
// or the errors encountered. The tree is never partial: a non-nil tree
// contains only allow-listed nodes and consumed the entire input.
func (p *Parser) Parse(ctx context.Context) (ast.Node, error) {
	p.ctx = ctx
	// It's possible for errors to already exist because we read tokens from
	// the lexer in the constructor.
	if p.hasErrors() {
		return nil, combineErrors(p.errors)
	}

	var node ast.Node
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
		node = p.parseAssign()
	} else {
		node = p.parseNode(LOWEST)
	}
	if node == nil || p.hasErrors() {
		return nil, combineErrors(p.errors)
	}

	// The entire line must have been consumed
	if !p.peekTokenIs(token.EOF) {
		p.setTokenError(p.peekToken, "unexpected %s after expression",
			tokenDescription(p.peekToken))
		return nil, combineErrors(p.errors)
	}
	return node, nil
}

// parseAssign parses a whole-line assignment: identifier "=" expression.
// The target is known to be a bare identifier when this is called.
func (p *Parser) parseAssign() ast.Node {
	name := p.newIdent(p.curToken)
	if err := p.nextToken(); err != nil { // move to the "="
		return nil
	}
	opPos := p.curToken.StartPosition
	if err := p.nextToken(); err != nil { // move past the "="
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.Assign{Name: name, OpPos: opPos, Value: value}
}

func (p *Parser) parseNode(precedence int) ast.Node {
	if p.hasErrors() {
		return nil
	}
	p.depth++
	if p.depth > p.maxDepth {
		p.setTokenError(p.curToken, "maximum nesting depth exceeded")
		p.depth--
		return nil
	}
	defer func() { p.depth-- }()

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftNode := prefix()
	if p.hasErrors() || leftNode == nil {
		return nil
	}
	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftNode
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
		leftNode = infix(leftNode)
		if p.hasErrors() || leftNode == nil {
			return nil
		}
	}
	return leftNode
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	node := p.parseNode(precedence)
	if node == nil {
		return nil
	}
	expr, ok := node.(ast.Expr)
	if !ok {
		p.setTokenError(p.prevToken, "expected an expression")
		return nil
	}
	return expr
}

func (p *Parser) parseNumber() ast.Node {
	tok, lit := p.curToken, p.curToken.Literal
	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.setTokenError(tok, "invalid number literal %q", lit)
		return nil
	}
	return &ast.Number{ValuePos: tok.StartPosition, Literal: lit, Value: value}
}

func (p *Parser) parseIdent() ast.Node {
	if p.curToken.Literal == "" {
		p.setTokenError(p.curToken, "invalid identifier")
		return nil
	}
	return p.newIdent(p.curToken)
}

func (p *Parser) parsePrefixExpr() ast.Node {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	// The ** operator binds tighter than unary minus on its left:
	// -2**2 parses as -(2**2). Loop to handle chains like -2**2**3.
	for p.peekTokenIs(token.POW) {
		p.nextToken() // move to **
		powNode := p.parseInfixExpr(right)
		if powNode == nil {
			return nil
		}
		right, _ = powNode.(ast.Expr)
	}
	return &ast.Prefix{OpPos: opPos, Op: op, X: right}
}

func (p *Parser) parseInfixExpr(leftNode ast.Node) ast.Node {
	left, ok := leftNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "expected an expression")
		return nil
	}
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	precedence := p.currentPrecedence()
	// The power operator ** is right-associative: 2**2**3 = 2**(2**3)
	if p.curTokenIs(token.POW) {
		precedence--
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Infix{X: left, OpPos: opPos, Op: op, Y: right}
}

func (p *Parser) parseGroupedExpr() ast.Node {
	if err := p.nextToken(); err != nil { // move past the "("
		return nil
	}
	if p.curTokenIs(token.RPAREN) {
		// "()" is an empty tuple in the surface syntax
		p.setUnsupportedError(p.curToken, "list and tuple literals are not supported")
		return nil
	}
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.peekTokenIs(token.COMMA) {
		p.setUnsupportedError(p.peekToken, "list and tuple literals are not supported")
		return nil
	}
	if !p.expectPeek("a grouped expression", token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseCall(funcNode ast.Node) ast.Node {
	fun, ok := funcNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid call expression")
		return nil
	}
	lparen := p.curToken.StartPosition
	args, keywords, ok := p.parseCallArgs()
	if !ok {
		return nil
	}
	rparen := p.curToken.StartPosition
	return &ast.Call{
		Fun:      fun,
		Lparen:   lparen,
		Args:     args,
		Keywords: keywords,
		Rparen:   rparen,
	}
}

// parseCallArgs parses the argument list of a call: positional expressions
// first, then name=value keyword arguments, closed by ")". On success the
// current token is the closing parenthesis.
func (p *Parser) parseCallArgs() ([]ast.Expr, []ast.KeywordArg, bool) {
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return nil, nil, true
	}
	var args []ast.Expr
	var keywords []ast.KeywordArg
	for {
		if err := p.nextToken(); err != nil { // move to the argument
			return nil, nil, false
		}
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
			name := p.newIdent(p.curToken)
			p.nextToken() // move to the "="
			eqPos := p.curToken.StartPosition
			if err := p.nextToken(); err != nil { // move to the value
				return nil, nil, false
			}
			value := p.parseExpression(LOWEST)
			if value == nil {
				return nil, nil, false
			}
			keywords = append(keywords, ast.KeywordArg{Name: name, EqPos: eqPos, Value: value})
		} else {
			if len(keywords) > 0 {
				p.setTokenError(p.curToken, "positional argument follows keyword argument")
				return nil, nil, false
			}
			expr := p.parseExpression(LOWEST)
			if expr == nil {
				return nil, nil, false
			}
			args = append(args, expr)
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek("call arguments", token.RPAREN) {
		return nil, nil, false
	}
	return args, keywords, true
}

// rejectAssignTarget reports an "=" in expression position. Only a bare
// identifier at the start of the line may be assigned to.
func (p *Parser) rejectAssignTarget(ast.Node) ast.Node {
	p.setTokenError(p.curToken,
		"invalid assignment target (the left side must be a variable name)")
	return nil
}

func (p *Parser) endOfInput() ast.Node {
	p.setTokenError(p.curToken, "expected an expression")
	return nil
}

func (p *Parser) illegalToken() ast.Node {
	p.setTokenError(p.curToken, "illegal token %q", p.curToken.Literal)
	return nil
}

// registerPrefix registers a function for handling a prefix-position token.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-position token.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// registerRejectedPrefix registers prefix handlers that fail with an
// unsupported-construct error naming the construct.
func (p *Parser) registerRejectedPrefix(message string, types ...token.Type) {
	for _, t := range types {
		p.registerPrefix(t, func() ast.Node {
			p.setUnsupportedError(p.curToken, message)
			return nil
		})
	}
}

// registerRejectedInfix is the infix-position counterpart of
// registerRejectedPrefix.
func (p *Parser) registerRejectedInfix(message string, types ...token.Type) {
	for _, t := range types {
		p.registerInfix(t, func(ast.Node) ast.Node {
			p.setUnsupportedError(p.curToken, message)
			return nil
		})
	}
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken.
func (p *Parser) nextToken() error {
	var err error
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken, err = p.l.Next()
	if err == nil {
		return nil
	}
	// The lexer encountered an error. All lexer errors are syntax errors
	// and parsing is now considered broken.
	p.addError(NewSyntaxError(ErrorOpts{
		Cause:         err,
		File:          p.l.Filename(),
		StartPosition: p.peekToken.StartPosition,
		EndPosition:   p.peekToken.EndPosition,
		SourceCode:    p.l.GetLineText(p.peekToken),
	}))
	return err
}

// addError appends an error to the errors slice.
func (p *Parser) addError(err *errz.Error) {
	if len(p.errors) < MaxErrors {
		p.errors = append(p.errors, err)
	}
}

// hasErrors returns true if any errors have been recorded.
func (p *Parser) hasErrors() bool {
	return len(p.errors) > 0
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.setTokenError(t, "invalid syntax (unexpected %q)", t.Literal)
}

// peekError records an error when the next token is not the expected type.
func (p *Parser) peekError(context string, expected token.Type, got token.Token) {
	p.addError(NewSyntaxError(ErrorOpts{
		Message: fmt.Sprintf("unexpected %s while parsing %s (expected %s)",
			tokenDescription(got), context, tokenTypeDescription(expected)),
		File:          p.l.Filename(),
		StartPosition: got.StartPosition,
		EndPosition:   got.EndPosition,
		SourceCode:    p.l.GetLineText(got),
	}))
}

func (p *Parser) setTokenError(t token.Token, msg string, args ...interface{}) {
	p.addError(NewSyntaxError(ErrorOpts{
		Message:       fmt.Sprintf(msg, args...),
		File:          p.l.Filename(),
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.l.GetLineText(t),
	}))
}

func (p *Parser) setUnsupportedError(t token.Token, message string) {
	p.addError(NewUnsupportedConstructError(ErrorOpts{
		Message:       message,
		File:          p.l.Filename(),
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.l.GetLineText(t),
	}))
}

// newIdent creates a new Ident node from a token.
func (p *Parser) newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Literal}
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates that the next token is of the given type, and
// advances if it is. If it's a different type, an error is stored.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(context, t, p.peekToken)
	return false
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}
