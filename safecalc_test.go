package safecalc

import (
	"context"
	"testing"

	"github.com/safecalc-io/safecalc/ast"
	"github.com/safecalc-io/safecalc/builtins"
	"github.com/safecalc-io/safecalc/errz"
	"github.com/safecalc-io/safecalc/object"
	"github.com/stretchr/testify/require"
)

func TestEvalExpression(t *testing.T) {
	env := object.NewEnvironment()
	outcome, err := Eval(context.Background(), "2 + 3*4", env)
	require.Nil(t, err)
	require.False(t, outcome.IsAssignment())
	require.Equal(t, 14.0, outcome.Value)
}

func TestEvalAssignment(t *testing.T) {
	env := object.NewEnvironment()
	outcome, err := Eval(context.Background(), "x = 5", env)
	require.Nil(t, err)
	require.True(t, outcome.IsAssignment())
	require.Equal(t, "x", outcome.Name)
	require.Equal(t, 5.0, outcome.Value)

	v, ok := env.Get("x")
	require.True(t, ok)
	require.Equal(t, 5.0, v)
}

func TestEvalSession(t *testing.T) {
	// a full session: assignments, ans, keyword arguments
	ctx := context.Background()
	env := object.NewEnvironment()

	_, err := Eval(ctx, "x = 5", env)
	require.Nil(t, err)

	outcome, err := Eval(ctx, "sqrt(x**2 + 11)", env)
	require.Nil(t, err)
	require.InDelta(t, 6.0, outcome.Value, 1e-9)
	env.SetAns(outcome.Value)

	outcome, err = Eval(ctx, "ans / 2", env)
	require.Nil(t, err)
	require.InDelta(t, 3.0, outcome.Value, 1e-9)

	outcome, err = Eval(ctx, "log(1000, base=10)", env)
	require.Nil(t, err)
	require.InDelta(t, 3.0, outcome.Value, 1e-9)
}

func TestEvalRejectsConditionals(t *testing.T) {
	env := object.NewEnvironment()
	env.Set("x", 1)
	_, err := Eval(context.Background(), "1 if x else 0", env)
	require.NotNil(t, err)
	kind, ok := errz.KindOf(err)
	require.True(t, ok)
	require.Contains(t,
		[]errz.Kind{errz.UnsupportedConstruct, errz.SyntaxError}, kind)
}

func TestEvalParseErrors(t *testing.T) {
	env := object.NewEnvironment()
	before := env.Snapshot()
	for _, input := range []string{
		"",
		"2 +",
		"import os",
		"__import__('os')",
		"x.y",
		"[1, 2, 3]",
		`"hello"`,
	} {
		_, err := Eval(context.Background(), input, env)
		require.NotNil(t, err, "input: %s", input)
		_, ok := errz.KindOf(err)
		require.True(t, ok, "input: %s err: %v", input, err)
	}
	// failed lines never touch the environment
	require.Equal(t, before, env.Snapshot())
}

func TestParse(t *testing.T) {
	node, err := Parse(context.Background(), "x = 2 + 3")
	require.Nil(t, err)
	assign, ok := node.(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "x = (2 + 3)", assign.String())
}

func TestWithFilename(t *testing.T) {
	_, err := Eval(context.Background(), "[1]", object.NewEnvironment(),
		WithFilename("repl"))
	require.NotNil(t, err)
	var structured *errz.Error
	require.ErrorAs(t, err, &structured)
	require.Equal(t, "repl", structured.Location.File)
}

func TestWithRegistry(t *testing.T) {
	reg := builtins.Default()
	env := object.NewEnvironment()
	outcome, err := Eval(context.Background(), "sqrt(16)", env, WithRegistry(reg))
	require.Nil(t, err)
	require.Equal(t, 4.0, outcome.Value)
}
