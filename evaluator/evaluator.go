// Package evaluator walks a parsed calculator line and produces its value.
//
// The evaluator trusts nothing but the registry: every operator and every
// call target must resolve through it, so the set of reachable behaviors is
// exactly the set the registry was built with. Names resolve against the
// environment first, then constants, then functions, which lets a variable
// shadow a constant or function of the same name.
package evaluator

import (
	"context"

	"github.com/safecalc-io/safecalc/ast"
	"github.com/safecalc-io/safecalc/builtins"
	"github.com/safecalc-io/safecalc/errz"
	"github.com/safecalc-io/safecalc/object"
)

// Outcome is the result of evaluating one line. Name is empty for plain
// expressions and holds the target variable for assignments.
type Outcome struct {
	Name  string
	Value float64
}

// IsAssignment returns true if the line stored a variable.
func (o *Outcome) IsAssignment() bool {
	return o.Name != ""
}

// Option is a configuration function for an Evaluator.
type Option func(*Evaluator)

// WithRegistry sets the capability registry used to resolve operators,
// functions, and constants.
func WithRegistry(r *builtins.Registry) Option {
	return func(e *Evaluator) {
		e.registry = r
	}
}

// Evaluator evaluates syntax trees against an environment.
type Evaluator struct {
	registry *builtins.Registry
}

// New returns an Evaluator. Unless overridden with WithRegistry, the
// default registry from the builtins package is used.
func New(options ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range options {
		opt(e)
	}
	if e.registry == nil {
		e.registry = builtins.Default()
	}
	return e
}

// Registry returns the capability registry in use.
func (e *Evaluator) Registry() *builtins.Registry {
	return e.registry
}

// Evaluate runs one parsed line against the given environment. The
// environment is written only when the line is an assignment, and only
// after the right-hand side evaluated without error.
func (e *Evaluator) Evaluate(ctx context.Context, node ast.Node, env *object.Environment) (*Outcome, error) {
	if assign, ok := node.(*ast.Assign); ok {
		value, err := e.evalFloat(ctx, assign.Value, env)
		if err != nil {
			return nil, err
		}
		env.Set(assign.Name.Name, value)
		return &Outcome{Name: assign.Name.Name, Value: value}, nil
	}
	expr, ok := node.(ast.Expr)
	if !ok {
		return nil, errz.Newf(errz.SyntaxError, "cannot evaluate node of type %T", node)
	}
	value, err := e.evalFloat(ctx, expr, env)
	if err != nil {
		return nil, err
	}
	return &Outcome{Value: value}, nil
}

// evalFloat evaluates an expression whose result must be numeric.
func (e *Evaluator) evalFloat(ctx context.Context, expr ast.Expr, env *object.Environment) (float64, error) {
	obj, err := e.evalExpr(ctx, expr, env)
	if err != nil {
		return 0, err
	}
	return object.AsFloat(obj)
}

// evalExpr evaluates an expression to an object. Only a call target may
// legitimately be a non-float, so everything except the function position
// of a call goes through evalFloat instead.
func (e *Evaluator) evalExpr(ctx context.Context, expr ast.Expr, env *object.Environment) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch expr := expr.(type) {
	case *ast.Number:
		return object.NewFloat(expr.Value), nil
	case *ast.Ident:
		return e.resolveName(expr.Name, env)
	case *ast.Prefix:
		return e.evalPrefix(ctx, expr, env)
	case *ast.Infix:
		return e.evalInfix(ctx, expr, env)
	case *ast.Call:
		return e.evalCall(ctx, expr, env)
	default:
		// The parser only produces the node kinds handled above. Anything
		// else reaching us is refused rather than guessed at.
		return nil, errz.Newf(errz.UnsupportedConstruct,
			"cannot evaluate node of type %T", expr)
	}
}

// resolveName looks up a bare name: environment variables first, then
// registry constants, then registry functions.
func (e *Evaluator) resolveName(name string, env *object.Environment) (object.Object, error) {
	if value, ok := env.Get(name); ok {
		return object.NewFloat(value), nil
	}
	if value, ok := e.registry.Constant(name); ok {
		return object.NewFloat(value), nil
	}
	if fn, ok := e.registry.Function(name); ok {
		return fn, nil
	}
	return nil, errz.Newf(errz.UnknownName, "name %q is not defined", name)
}

func (e *Evaluator) evalPrefix(ctx context.Context, node *ast.Prefix, env *object.Environment) (object.Object, error) {
	operand, err := e.evalFloat(ctx, node.X, env)
	if err != nil {
		return nil, err
	}
	fn, ok := e.registry.UnaryOperator(node.Op)
	if !ok {
		return nil, errz.Newf(errz.UnsupportedOperator,
			"unary operator %q is not supported", node.Op)
	}
	value, err := fn(operand)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(value), nil
}

func (e *Evaluator) evalInfix(ctx context.Context, node *ast.Infix, env *object.Environment) (object.Object, error) {
	left, err := e.evalFloat(ctx, node.X, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalFloat(ctx, node.Y, env)
	if err != nil {
		return nil, err
	}
	// Zero divisors fail before the operator runs, so no NaN or Inf from a
	// division ever reaches the environment.
	if right == 0 {
		switch node.Op {
		case "/":
			return nil, errz.New(errz.DivisionByZero, "division by zero")
		case "//", "%":
			return nil, errz.New(errz.DivisionByZero,
				"integer division or modulo by zero")
		}
	}
	fn, ok := e.registry.Operator(node.Op)
	if !ok {
		return nil, errz.Newf(errz.UnsupportedOperator,
			"operator %q is not supported", node.Op)
	}
	value, err := fn(left, right)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(value), nil
}

func (e *Evaluator) evalCall(ctx context.Context, node *ast.Call, env *object.Environment) (object.Object, error) {
	target, err := e.evalExpr(ctx, node.Fun, env)
	if err != nil {
		return nil, err
	}
	fn, ok := target.(*object.Builtin)
	if !ok {
		return nil, errz.Newf(errz.UnsupportedConstruct,
			"%s is not a callable function", describeCallTarget(node.Fun))
	}
	// The call target must be the registry's own object, not merely share a
	// name with one.
	if !e.registry.IsRegistered(fn) {
		return nil, errz.Newf(errz.UnknownName,
			"function %q is not permitted", fn.Name())
	}
	args := make([]float64, 0, len(node.Args))
	for _, arg := range node.Args {
		value, err := e.evalFloat(ctx, arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	var kwargs []object.Keyword
	for _, kw := range node.Keywords {
		value, err := e.evalFloat(ctx, kw.Value, env)
		if err != nil {
			return nil, err
		}
		kwargs = append(kwargs, object.Keyword{Name: kw.Name.Name, Value: value})
	}
	value, err := fn.Call(args, kwargs)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(value), nil
}

func describeCallTarget(expr ast.Expr) string {
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return expr.String()
}
