package main

import (
	"testing"

	"github.com/safecalc-io/safecalc/errz"
	"github.com/safecalc-io/safecalc/evaluator"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{14, "14.0"},
		{0, "0.0"},
		{-3, "-3.0"},
		{2.5, "2.5"},
		{12.083045973594572, "12.083045973594572"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, formatFloat(tt.value))
	}
}

func TestFormatFloatPrecision(t *testing.T) {
	viper.Set("precision", 3)
	defer viper.Set("precision", 0)
	require.Equal(t, "14.000", formatFloat(14))
	require.Equal(t, "12.083", formatFloat(12.083045973594572))
}

func TestFormatOutcome(t *testing.T) {
	require.Equal(t, "14.0",
		formatOutcome(&evaluator.Outcome{Value: 14}))
	require.Equal(t, "x = 5.0",
		formatOutcome(&evaluator.Outcome{Name: "x", Value: 5}))
}

func TestGetOutput(t *testing.T) {
	outcome := &evaluator.Outcome{Name: "x", Value: 5}

	out, err := getOutput(outcome, "")
	require.Nil(t, err)
	require.Equal(t, "x = 5.0", out)

	out, err = getOutput(outcome, "text")
	require.Nil(t, err)
	require.Equal(t, "x = 5.0", out)

	_, err = getOutput(outcome, "yaml")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unknown output format")
}

func TestFormatEvalError(t *testing.T) {
	plain := errz.New(errz.DivisionByZero, "division by zero")
	require.Contains(t, formatEvalError(plain).Error(), "division by zero")

	located := errz.New(errz.UnsupportedConstruct, "comparisons are not supported").
		WithLocation(errz.Location{Line: 1, Column: 3, Source: "1 < 2"})
	msg := formatEvalError(located).Error()
	require.Contains(t, msg, "1 < 2")
	require.Contains(t, msg, "^")
}
