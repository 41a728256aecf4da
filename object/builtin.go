package object

import (
	"fmt"

	"github.com/safecalc-io/safecalc/errz"
)

// BuiltinFunction is the Go signature of a registered calculator function.
// Arguments arrive fully bound, one per declared parameter.
type BuiltinFunction func(args []float64) (float64, error)

// Param declares one parameter of a builtin. A nil Default marks the
// parameter as required.
type Param struct {
	Name    string
	Default *float64
}

// DefaultOf is a convenience for declaring an optional parameter default.
func DefaultOf(value float64) *float64 {
	return &value
}

// Builtin wraps a Go function so it can be registered, referenced by name,
// and called. Builtins are immutable after construction; the evaluator
// permits a call only when the callee resolves to a registered Builtin
// value.
type Builtin struct {
	name   string
	params []Param
	fn     BuiltinFunction
}

// NewBuiltin creates a new Builtin with the given name, implementation, and
// parameter declarations.
func NewBuiltin(name string, fn BuiltinFunction, params ...Param) *Builtin {
	return &Builtin{name: name, params: params, fn: fn}
}

func (b *Builtin) Type() Type {
	return BUILTIN
}

func (b *Builtin) Inspect() string {
	return fmt.Sprintf("builtin(%s)", b.name)
}

func (b *Builtin) String() string {
	return b.Inspect()
}

// Name returns the name the builtin was registered under.
func (b *Builtin) Name() string {
	return b.name
}

// Params returns the parameter declarations of the builtin.
func (b *Builtin) Params() []Param {
	return b.params
}

// NumRequired returns the count of parameters without defaults.
func (b *Builtin) NumRequired() int {
	n := 0
	for _, p := range b.params {
		if p.Default == nil {
			n++
		}
	}
	return n
}

// Keyword is a named argument value supplied at a call site.
type Keyword struct {
	Name  string
	Value float64
}

// Bind matches positional and keyword arguments against the builtin's
// declared parameters, applying defaults for omitted optional parameters.
// Arity and keyword mismatches are reported as invalid-arguments errors.
func (b *Builtin) Bind(args []float64, kwargs []Keyword) ([]float64, error) {
	if len(args) > len(b.params) {
		return nil, errz.Newf(errz.InvalidArguments,
			"%s() takes at most %d arguments (%d given)",
			b.name, len(b.params), len(args))
	}
	bound := make([]float64, len(b.params))
	set := make([]bool, len(b.params))
	for i, v := range args {
		bound[i] = v
		set[i] = true
	}
	for _, kw := range kwargs {
		idx := -1
		for i, p := range b.params {
			if p.Name == kw.Name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errz.Newf(errz.InvalidArguments,
				"%s() got an unexpected keyword argument %q", b.name, kw.Name)
		}
		if set[idx] {
			return nil, errz.Newf(errz.InvalidArguments,
				"%s() got multiple values for argument %q", b.name, kw.Name)
		}
		bound[idx] = kw.Value
		set[idx] = true
	}
	for i, p := range b.params {
		if set[i] {
			continue
		}
		if p.Default == nil {
			return nil, errz.Newf(errz.InvalidArguments,
				"%s() missing required argument %q", b.name, p.Name)
		}
		bound[i] = *p.Default
	}
	return bound, nil
}

// Call binds the supplied arguments and invokes the underlying function.
func (b *Builtin) Call(args []float64, kwargs []Keyword) (float64, error) {
	bound, err := b.Bind(args, kwargs)
	if err != nil {
		return 0, err
	}
	return b.fn(bound)
}
