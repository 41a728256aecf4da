// Package object provides the value types produced during evaluation.
//
// The calculator's value model is deliberately tiny: every result the
// evaluator hands back to a caller is a *object.Float. The only other
// object type, *object.Builtin, exists so that a registered function name
// can be referenced and then called; a builtin can never be stored in the
// environment or returned as a result.
package object

// Type of an object as a string.
type Type string

// Type constants
const (
	FLOAT   Type = "float"
	BUILTIN Type = "builtin"
)

// Object is the interface implemented by all calculator values.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the object.
	Inspect() string
}
