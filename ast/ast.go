// Package ast defines the restricted syntax tree for calculator input.
//
// The tree is limited to exactly six node kinds: number literals, variable
// references, assignments, unary operations, binary operations, and function
// calls. The parser can produce no other node type, and the evaluator
// independently rejects anything outside this set. Nodes are immutable once
// built and each node owns its children exclusively.
package ast

import "github.com/safecalc-io/safecalc/internal/token"

// Node represents a portion of the syntax tree. All nodes carry position
// information indicating where they appear in the input.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the node. This should
	// be similar to the original input, but not necessarily identical.
	String() string
}

// Expr represents an expression node. Expressions evaluate to a value and
// may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}
