package ast

import "github.com/safecalc-io/safecalc/internal/token"

// Number is an expression node that holds a numeric literal. All calculator
// values are 64-bit floats; integer literals are represented exactly as
// floats.
type Number struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text
	Value    float64        // the parsed value
}

func (x *Number) exprNode() {}

func (x *Number) Pos() token.Position { return x.ValuePos }
func (x *Number) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Number) String() string { return x.Literal }
