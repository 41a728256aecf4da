package builtins

import (
	"math"
	"testing"

	"github.com/safecalc-io/safecalc/object"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	for _, op := range []string{"+", "-", "*", "/", "//", "%", "**"} {
		_, ok := reg.Operator(op)
		require.True(t, ok, op)
	}
	_, ok := reg.Operator("<")
	require.False(t, ok)

	for _, op := range []string{"+", "-"} {
		_, ok := reg.UnaryOperator(op)
		require.True(t, ok, op)
	}
	_, ok = reg.UnaryOperator("!")
	require.False(t, ok)

	require.Equal(t,
		[]string{"abs", "cos", "exp", "ln", "log", "round", "sin", "sqrt", "tan"},
		reg.FunctionNames())
	require.Equal(t, []string{"e", "pi"}, reg.ConstantNames())

	pi, ok := reg.Constant("pi")
	require.True(t, ok)
	require.Equal(t, math.Pi, pi)
	e, ok := reg.Constant("e")
	require.True(t, ok)
	require.Equal(t, math.E, e)
	_, ok = reg.Constant("tau")
	require.False(t, ok)
}

func TestFunctionLookup(t *testing.T) {
	reg := Default()
	fn, ok := reg.Function("sqrt")
	require.True(t, ok)
	require.Equal(t, "sqrt", fn.Name())

	_, ok = reg.Function("eval")
	require.False(t, ok)
	_, ok = reg.Function("print")
	require.False(t, ok)
}

func TestIsRegistered(t *testing.T) {
	reg := Default()
	sqrt, ok := reg.Function("sqrt")
	require.True(t, ok)
	require.True(t, reg.IsRegistered(sqrt))

	// A builtin that merely shares the name is not the registry's object
	impostor := object.NewBuiltin("sqrt", Sqrt, object.Param{Name: "x"})
	require.False(t, reg.IsRegistered(impostor))

	// Registries do not share objects either
	other := Default()
	otherSqrt, _ := other.Function("sqrt")
	require.False(t, reg.IsRegistered(otherSqrt))
}

func TestDefaults(t *testing.T) {
	reg := Default()
	log, _ := reg.Function("log")
	params := log.Params()
	require.Len(t, params, 2)
	require.Equal(t, "base", params[1].Name)
	require.NotNil(t, params[1].Default)
	require.Equal(t, 10.0, *params[1].Default)

	round, _ := reg.Function("round")
	params = round.Params()
	require.Len(t, params, 2)
	require.Equal(t, "ndigits", params[1].Name)
	require.NotNil(t, params[1].Default)
	require.Equal(t, 0.0, *params[1].Default)
}
