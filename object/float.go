package object

import (
	"strconv"

	"github.com/safecalc-io/safecalc/errz"
)

// Float wraps float64 and implements the Object interface.
type Float struct {
	value float64
}

// NewFloat creates a new Float object.
func NewFloat(value float64) *Float {
	return &Float{value: value}
}

func (f *Float) Type() Type {
	return FLOAT
}

func (f *Float) Value() float64 {
	return f.value
}

func (f *Float) Inspect() string {
	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

func (f *Float) String() string {
	return f.Inspect()
}

// AsFloat converts an Object to a float64, or fails if the object is not
// numeric. This is the boundary that keeps function values from flowing
// into arithmetic or into the environment.
func AsFloat(obj Object) (float64, error) {
	f, ok := obj.(*Float)
	if !ok {
		return 0, errz.Newf(errz.UnsupportedConstruct,
			"a %s value cannot be used as a number", obj.Type())
	}
	return f.Value(), nil
}
