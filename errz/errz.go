// Package errz defines the error taxonomy shared by the parser and the
// evaluator. Every failure surfaced to a caller is one of the seven kinds
// below, matchable with errors.As or KindOf; no input can produce an
// uncaught fault.
package errz

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Kind represents the category of a calculator error.
type Kind int

const (
	// SyntaxError indicates input that fails to parse under the restricted
	// grammar.
	SyntaxError Kind = iota
	// UnsupportedConstruct indicates a syntactic form outside the allow-list
	// (comparison, boolean operator, conditional, lambda, attribute access,
	// indexing, list/tuple/mapping or string literal).
	UnsupportedConstruct
	// UnknownName indicates an identifier not found in the environment,
	// constants, or functions.
	UnknownName
	// UnsupportedOperator indicates an operator outside the closed operator
	// set. Defensive; unreachable while parser and evaluator stay in sync.
	UnsupportedOperator
	// InvalidArguments indicates a wrong arity or unknown keyword argument
	// in a function call.
	InvalidArguments
	// DivisionByZero indicates a divide, floor-divide, or modulo with a zero
	// right-hand operand.
	DivisionByZero
	// MathDomain indicates a math primitive received an out-of-domain
	// argument.
	MathDomain
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case UnsupportedConstruct:
		return "unsupported construct"
	case UnknownName:
		return "unknown name"
	case UnsupportedOperator:
		return "unsupported operator"
	case InvalidArguments:
		return "invalid arguments"
	case DivisionByZero:
		return "division by zero"
	case MathDomain:
		return "math domain error"
	default:
		return "error"
	}
}

// Location identifies where in the input an error occurred.
type Location struct {
	File   string // filename, if any
	Line   int    // 1-indexed line number
	Column int    // 1-indexed column number
	Source string // text of the offending line
}

// IsZero returns true if the location has not been set.
func (l Location) IsZero() bool {
	return l == Location{}
}

// Error is a calculator error with a kind, message, and optional source
// location.
type Error struct {
	Kind     Kind
	Message  string
	Location Location
	Cause    error
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%d:%d)", e.Kind, e.Message, e.Location.Line, e.Location.Column)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithLocation returns the error annotated with a source location.
func (e *Error) WithLocation(loc Location) *Error {
	e.Location = loc
	return e
}

// WithCause wraps the error with a cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// FriendlyErrorMessage returns a human-friendly message with visual context,
// including the offending source line and a caret under the error column.
func (e *Error) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	msg.WriteString(e.Error())
	if e.Location.Source != "" {
		msg.WriteString("\n | ")
		msg.WriteString(e.Location.Source)
		if e.Location.Column > 0 {
			msg.WriteString("\n | ")
			msg.WriteString(strings.Repeat(" ", e.Location.Column-1))
			msg.WriteString("^")
		}
	}
	return msg.String()
}

// KindOf returns the kind of the first *Error found in err's chain. The
// second return value reports whether one was found.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err's chain contains an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
