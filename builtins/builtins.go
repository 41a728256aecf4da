// Package builtins provides the capability registry: the closed set of
// operators, functions, and constants the evaluator is permitted to invoke.
//
// A Registry is immutable once built. The evaluator resolves call targets
// against the registry's value set, so the only callables that can ever run
// are the specific Builtin values registered here.
package builtins

import (
	"math"
	"sort"

	"github.com/safecalc-io/safecalc/object"
)

// BinaryFn applies a binary operator to two numeric operands.
type BinaryFn func(x, y float64) (float64, error)

// UnaryFn applies a unary operator to a numeric operand.
type UnaryFn func(x float64) (float64, error)

// Registry is the closed capability set consulted during evaluation. All
// lookup tables are read-only after construction, so a Registry may be
// shared by concurrent readers.
type Registry struct {
	operators      map[string]BinaryFn
	unaryOperators map[string]UnaryFn
	functions      map[string]*object.Builtin
	constants      map[string]float64
}

// Operator returns the reducer for a binary operator symbol.
func (r *Registry) Operator(op string) (BinaryFn, bool) {
	fn, ok := r.operators[op]
	return fn, ok
}

// UnaryOperator returns the reducer for a unary operator symbol.
func (r *Registry) UnaryOperator(op string) (UnaryFn, bool) {
	fn, ok := r.unaryOperators[op]
	return fn, ok
}

// Function returns the registered function with the given name.
func (r *Registry) Function(name string) (*object.Builtin, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// Constant returns the registered constant with the given name.
func (r *Registry) Constant(name string) (float64, bool) {
	v, ok := r.constants[name]
	return v, ok
}

// IsRegistered reports whether the given builtin value is one of the
// registry's own function values. The check is by identity, not by name: a
// same-named builtin constructed elsewhere does not pass.
func (r *Registry) IsRegistered(b *object.Builtin) bool {
	fn, ok := r.functions[b.Name()]
	return ok && fn == b
}

// FunctionNames returns the registered function names in sorted order.
func (r *Registry) FunctionNames() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConstantNames returns the registered constant names in sorted order.
func (r *Registry) ConstantNames() []string {
	names := make([]string, 0, len(r.constants))
	for name := range r.constants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the standard calculator registry: the arithmetic
// operators, the math functions sqrt, sin, cos, tan, log, ln, exp, abs, and
// round, and the constants pi and e.
func Default() *Registry {
	return &Registry{
		operators: map[string]BinaryFn{
			"+":  func(x, y float64) (float64, error) { return x + y, nil },
			"-":  func(x, y float64) (float64, error) { return x - y, nil },
			"*":  func(x, y float64) (float64, error) { return x * y, nil },
			"/":  func(x, y float64) (float64, error) { return x / y, nil },
			"//": FloorDiv,
			"%":  Modulo,
			"**": Power,
		},
		unaryOperators: map[string]UnaryFn{
			"+": func(x float64) (float64, error) { return x, nil },
			"-": func(x float64) (float64, error) { return -x, nil },
		},
		functions: map[string]*object.Builtin{
			"sqrt":  object.NewBuiltin("sqrt", Sqrt, object.Param{Name: "x"}),
			"sin":   object.NewBuiltin("sin", Sin, object.Param{Name: "x"}),
			"cos":   object.NewBuiltin("cos", Cos, object.Param{Name: "x"}),
			"tan":   object.NewBuiltin("tan", Tan, object.Param{Name: "x"}),
			"log": object.NewBuiltin("log", Log,
				object.Param{Name: "x"},
				object.Param{Name: "base", Default: object.DefaultOf(10)}),
			"ln":  object.NewBuiltin("ln", Ln, object.Param{Name: "x"}),
			"exp": object.NewBuiltin("exp", Exp, object.Param{Name: "x"}),
			"abs": object.NewBuiltin("abs", Abs, object.Param{Name: "x"}),
			"round": object.NewBuiltin("round", Round,
				object.Param{Name: "x"},
				object.Param{Name: "ndigits", Default: object.DefaultOf(0)}),
		},
		constants: map[string]float64{
			"pi": math.Pi,
			"e":  math.E,
		},
	}
}
