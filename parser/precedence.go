package parser

import "github.com/safecalc-io/safecalc/internal/token"

// Precedence order for operators. Tokens for rejected constructs carry a
// precedence too, so the parser reaches their registered rejection handler
// instead of silently stopping in front of them.
const (
	_ int = iota
	LOWEST
	ASSIGN      // =
	TERNARY     // x if cond else y (rejected)
	COND        // and, or (rejected)
	EQUALS      // ==, != (rejected)
	LESSGREATER // <, <=, >, >= (rejected)
	SUM         // +, -
	PRODUCT     // *, /, //, %
	POWER       // **
	PREFIX      // -x, +x
	CALL        // f(x)
	INDEX       // x[i], x.y (rejected)
)

// Precedences for each token type.
var precedences = map[token.Type]int{
	token.ASSIGN:    ASSIGN,
	token.IF:        TERNARY,
	token.AND:       COND,
	token.OR:        COND,
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.LT:        LESSGREATER,
	token.LT_EQUALS: LESSGREATER,
	token.GT:        LESSGREATER,
	token.GT_EQUALS: LESSGREATER,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.FLOORDIV:  PRODUCT,
	token.MOD:       PRODUCT,
	token.POW:       POWER,
	token.LPAREN:    CALL,
	token.PERIOD:    INDEX,
	token.LBRACKET:  INDEX,
}
