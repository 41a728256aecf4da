package main

import (
	"strings"
	"testing"

	"github.com/safecalc-io/safecalc/errz"
	"github.com/stretchr/testify/require"
)

func TestReplErrorLine(t *testing.T) {
	err := errz.New(errz.DivisionByZero, "division by zero")
	line := replErrorLine(err)
	require.True(t, strings.HasPrefix(line, "Error: "))
	require.Contains(t, line, "division by zero")

	located := errz.New(errz.UnsupportedConstruct, "comparisons are not supported").
		WithLocation(errz.Location{Line: 1, Column: 3, Source: "1 < 2"})
	line = replErrorLine(located)
	require.True(t, strings.HasPrefix(line, "Error: "))
	require.Contains(t, line, "comparisons are not supported")
}
