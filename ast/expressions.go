package ast

import (
	"bytes"
	"strings"

	"github.com/safecalc-io/safecalc/internal/token"
)

// Ident is an expression node that refers to a variable, constant, or
// function by name.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "-x" and "+x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "+" or "-"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Infix is an operator expression where the operator is between the operands.
// Examples include "x + y" and "5 - 1".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "-", "*", "/", "//", "%", "**"
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Assign is a node that binds the value of an expression to a variable name.
// It is only valid as the root of a parsed line; the target is always a bare
// identifier.
type Assign struct {
	Name  *Ident         // assignment target
	OpPos token.Position // position of "="
	Value Expr           // value expression
}

func (x *Assign) exprNode() {}

func (x *Assign) Pos() token.Position { return x.Name.Pos() }
func (x *Assign) End() token.Position { return x.Value.End() }

func (x *Assign) String() string {
	var out bytes.Buffer
	out.WriteString(x.Name.String())
	out.WriteString(" = ")
	out.WriteString(x.Value.String())
	return out.String()
}

// KeywordArg is a named argument in a function call, e.g. "base=10".
type KeywordArg struct {
	Name  *Ident // argument name
	EqPos token.Position
	Value Expr // argument value
}

func (a KeywordArg) String() string {
	return a.Name.String() + "=" + a.Value.String()
}

// Call is an expression node that describes the invocation of a function.
// Positional arguments precede keyword arguments, and the order in which
// keyword arguments were supplied is preserved.
type Call struct {
	Fun      Expr           // function expression
	Lparen   token.Position // position of "("
	Args     []Expr         // positional arguments
	Keywords []KeywordArg   // keyword arguments, in supplied order
	Rparen   token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	var out bytes.Buffer
	args := make([]string, 0, len(x.Args)+len(x.Keywords))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	for _, k := range x.Keywords {
		args = append(args, k.String())
	}
	out.WriteString(x.Fun.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}
