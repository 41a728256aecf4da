package builtins

import (
	"math"

	"github.com/safecalc-io/safecalc/errz"
)

// Math function and operator implementations. Domain violations surface as
// math-domain errors rather than silent NaN/Inf results.

func Sqrt(args []float64) (float64, error) {
	x := args[0]
	if x < 0 {
		return 0, errz.Newf(errz.MathDomain, "sqrt() of a negative number (%v)", x)
	}
	return math.Sqrt(x), nil
}

func Sin(args []float64) (float64, error) {
	return math.Sin(args[0]), nil
}

func Cos(args []float64) (float64, error) {
	return math.Cos(args[0]), nil
}

func Tan(args []float64) (float64, error) {
	return math.Tan(args[0]), nil
}

// Log is the base-10 logarithm by default; the base is adjustable via the
// "base" keyword. The natural logarithm is the separate function Ln.
func Log(args []float64) (float64, error) {
	x, base := args[0], args[1]
	if x <= 0 {
		return 0, errz.Newf(errz.MathDomain, "log() of a non-positive number (%v)", x)
	}
	if base <= 0 || base == 1 {
		return 0, errz.Newf(errz.MathDomain, "log() with invalid base (%v)", base)
	}
	return math.Log(x) / math.Log(base), nil
}

func Ln(args []float64) (float64, error) {
	x := args[0]
	if x <= 0 {
		return 0, errz.Newf(errz.MathDomain, "ln() of a non-positive number (%v)", x)
	}
	return math.Log(x), nil
}

func Exp(args []float64) (float64, error) {
	return math.Exp(args[0]), nil
}

func Abs(args []float64) (float64, error) {
	return math.Abs(args[0]), nil
}

// Round rounds half to even (banker's rounding). The optional "ndigits"
// parameter shifts the rounding position, so round(2.567, ndigits=2)
// is 2.57.
func Round(args []float64) (float64, error) {
	x, ndigits := args[0], args[1]
	if ndigits != math.Trunc(ndigits) {
		return 0, errz.Newf(errz.InvalidArguments, "round() ndigits must be an integer (%v)", ndigits)
	}
	if ndigits == 0 {
		return math.RoundToEven(x), nil
	}
	shift := math.Pow(10, ndigits)
	return math.RoundToEven(x*shift) / shift, nil
}

// Power implements the ** operator. A zero base cannot be raised to a
// negative power, and a negative base requires an integer exponent; both
// yield typed errors instead of Inf/NaN.
func Power(x, y float64) (float64, error) {
	if x == 0 && y < 0 {
		return 0, errz.Newf(errz.DivisionByZero, "zero cannot be raised to a negative power")
	}
	if x < 0 && y != math.Trunc(y) {
		return 0, errz.Newf(errz.MathDomain, "negative number raised to a fractional power")
	}
	return math.Pow(x, y), nil
}

// FloorDiv implements the // operator with floored semantics, so the result
// is always rounded toward negative infinity: -7 // 2 is -4.
func FloorDiv(x, y float64) (float64, error) {
	return math.Floor(x / y), nil
}

// Modulo implements the % operator with the sign of the divisor, matching
// floored division: -7 % 2 is 1.
func Modulo(x, y float64) (float64, error) {
	return x - y*math.Floor(x/y), nil
}
