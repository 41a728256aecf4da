package evaluator

import (
	"context"
	"testing"

	"github.com/safecalc-io/safecalc/ast"
	"github.com/safecalc-io/safecalc/builtins"
	"github.com/safecalc-io/safecalc/errz"
	"github.com/safecalc-io/safecalc/object"
	"github.com/safecalc-io/safecalc/parser"
	"github.com/stretchr/testify/require"
)

func evalLine(t *testing.T, input string, env *object.Environment) (*Outcome, error) {
	t.Helper()
	node, err := parser.Parse(context.Background(), input)
	require.Nil(t, err, "input: %s", input)
	return New().Evaluate(context.Background(), node, env)
}

func evalValue(t *testing.T, input string, env *object.Environment) float64 {
	t.Helper()
	outcome, err := evalLine(t, input, env)
	require.Nil(t, err, "input: %s", input)
	return outcome.Value
}

func evalError(t *testing.T, input string, env *object.Environment) error {
	t.Helper()
	_, err := evalLine(t, input, env)
	require.NotNil(t, err, "input: %s", input)
	return err
}

func TestArithmetic(t *testing.T) {
	env := object.NewEnvironment()
	tests := []struct {
		input    string
		expected float64
	}{
		{"2 + 3*4", 14},
		{"1 - 2", -1},
		{"6 / 4", 1.5},
		{"7 // 2", 3},
		{"-7 // 2", -4},
		{"7 % 3", 1},
		{"-7 % 3", 2},
		{"2 ** 10", 1024},
		{"2 ** 3 ** 2", 512},
		{"-2 ** 2", -4},
		{"(-2) ** 2", 4},
		{"-5", -5},
		{"+5", 5},
		{"--5", 5},
		{"(2 + 3) * 4", 20},
		{"0.1 + 0.2", 0.30000000000000004},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, evalValue(t, tt.input, env), "input: %s", tt.input)
	}
}

func TestAssignment(t *testing.T) {
	env := object.NewEnvironment()
	outcome, err := evalLine(t, "x = 5", env)
	require.Nil(t, err)
	require.True(t, outcome.IsAssignment())
	require.Equal(t, "x", outcome.Name)
	require.Equal(t, 5.0, outcome.Value)

	v, ok := env.Get("x")
	require.True(t, ok)
	require.Equal(t, 5.0, v)

	// expressions do not report a name
	outcome, err = evalLine(t, "x + 1", env)
	require.Nil(t, err)
	require.False(t, outcome.IsAssignment())
	require.Equal(t, 6.0, outcome.Value)
}

func TestAssignmentRollback(t *testing.T) {
	env := object.NewEnvironment()
	env.Set("x", 1)

	_, err := evalLine(t, "x = 1 / 0", env)
	require.True(t, errz.IsKind(err, errz.DivisionByZero))

	// the failed assignment left the prior binding intact
	v, ok := env.Get("x")
	require.True(t, ok)
	require.Equal(t, 1.0, v)

	_, err = evalLine(t, "y = sqrt(-1)", env)
	require.True(t, errz.IsKind(err, errz.MathDomain))
	_, ok = env.Get("y")
	require.False(t, ok)
}

func TestNameResolution(t *testing.T) {
	env := object.NewEnvironment()

	// constants resolve when no variable shadows them
	require.InDelta(t, 3.141592653589793, evalValue(t, "pi", env), 1e-15)

	// a variable shadows the constant
	env.Set("pi", 3)
	require.Equal(t, 3.0, evalValue(t, "pi", env))
	require.Equal(t, 9.0, evalValue(t, "pi * 3", env))

	// deleting the variable restores the constant
	env.Delete("pi")
	require.InDelta(t, 3.141592653589793, evalValue(t, "pi", env), 1e-15)

	err := evalError(t, "undefined_name", env)
	require.True(t, errz.IsKind(err, errz.UnknownName))
	require.Contains(t, err.Error(), `name "undefined_name" is not defined`)
}

func TestVariableShadowsFunction(t *testing.T) {
	env := object.NewEnvironment()
	env.Set("sqrt", 4)
	require.Equal(t, 4.0, evalValue(t, "sqrt", env))
	require.Equal(t, 8.0, evalValue(t, "sqrt * 2", env))

	// the shadowing variable is a number, so calling it fails
	err := evalError(t, "sqrt(9)", env)
	require.True(t, errz.IsKind(err, errz.UnsupportedConstruct))
	require.Contains(t, err.Error(), "sqrt is not a callable function")
}

func TestAns(t *testing.T) {
	env := object.NewEnvironment()
	require.Equal(t, 0.0, evalValue(t, "ans", env))

	env.SetAns(12)
	require.Equal(t, 6.0, evalValue(t, "ans / 2", env))

	// the evaluator itself never writes ans
	require.Equal(t, 12.0, env.Ans())
}

func TestCalls(t *testing.T) {
	env := object.NewEnvironment()
	env.Set("x", 5)

	require.InDelta(t, 6.0, evalValue(t, "sqrt(x**2 + 11)", env), 1e-9)
	require.InDelta(t, 3.0, evalValue(t, "log(1000)", env), 1e-12)
	require.InDelta(t, 3.0, evalValue(t, "log(1000, base=10)", env), 1e-12)
	require.InDelta(t, 3.0, evalValue(t, "log(8, base=2)", env), 1e-12)
	require.Equal(t, 3.0, evalValue(t, "round(2.7)", env))
	require.Equal(t, 2.0, evalValue(t, "round(2.5)", env))

	// a parenthesized callee still resolves to the registered function
	require.Equal(t, 2.0, evalValue(t, "(sqrt)(4)", env))
}

func TestCallErrors(t *testing.T) {
	env := object.NewEnvironment()

	err := evalError(t, "sqrt()", env)
	require.True(t, errz.IsKind(err, errz.InvalidArguments))

	err = evalError(t, "sqrt(1, 2)", env)
	require.True(t, errz.IsKind(err, errz.InvalidArguments))

	err = evalError(t, "log(1000, radix=2)", env)
	require.True(t, errz.IsKind(err, errz.InvalidArguments))

	err = evalError(t, "missing(1)", env)
	require.True(t, errz.IsKind(err, errz.UnknownName))

	// calling the result of an expression is refused
	err = evalError(t, "(1 + 2)(3)", env)
	require.True(t, errz.IsKind(err, errz.UnsupportedConstruct))
}

func TestDivisionByZero(t *testing.T) {
	env := object.NewEnvironment()
	for _, input := range []string{"1 / 0", "1 // 0", "1 % 0", "0 ** -1"} {
		err := evalError(t, input, env)
		require.True(t, errz.IsKind(err, errz.DivisionByZero), "input: %s", input)
	}
}

func TestMathDomainErrors(t *testing.T) {
	env := object.NewEnvironment()
	for _, input := range []string{
		"sqrt(-1)",
		"log(0)",
		"log(10, base=1)",
		"ln(-5)",
		"(-4) ** 0.5",
	} {
		err := evalError(t, input, env)
		require.True(t, errz.IsKind(err, errz.MathDomain), "input: %s", input)
	}
}

func TestBareFunctionReference(t *testing.T) {
	// A function name alone is not a numeric result
	env := object.NewEnvironment()
	err := evalError(t, "sqrt", env)
	require.True(t, errz.IsKind(err, errz.UnsupportedConstruct))
}

func TestCustomRegistry(t *testing.T) {
	reg := builtins.Default()
	e := New(WithRegistry(reg))
	require.Same(t, reg, e.Registry())

	env := object.NewEnvironment()
	node, err := parser.Parse(context.Background(), "sqrt(16)")
	require.Nil(t, err)
	outcome, err := e.Evaluate(context.Background(), node, env)
	require.Nil(t, err)
	require.Equal(t, 4.0, outcome.Value)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env := object.NewEnvironment()
	node, err := parser.Parse(context.Background(), "1 + 2")
	require.Nil(t, err)
	_, err = New().Evaluate(ctx, node, env)
	require.ErrorIs(t, err, context.Canceled)
}

func TestUnknownNodeKind(t *testing.T) {
	// Defense in depth: an expression kind outside the dispatch table is
	// refused rather than evaluated. An Assign node in expression position
	// is such a kind; the parser never produces one.
	env := object.NewEnvironment()
	node := &ast.Prefix{
		Op: "-",
		X: &ast.Assign{
			Name:  &ast.Ident{Name: "x"},
			Value: &ast.Number{Literal: "1", Value: 1},
		},
	}
	_, err := New().Evaluate(context.Background(), node, env)
	require.True(t, errz.IsKind(err, errz.UnsupportedConstruct))
}
