package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/safecalc-io/safecalc/errz"
	"github.com/safecalc-io/safecalc/evaluator"
	"github.com/spf13/viper"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}

// formatFloat renders a value the way the calculator prints results: the
// shortest decimal form, with ".0" kept on integral values so the numeric
// type stays visible. The "precision" setting fixes the decimal places
// instead.
func formatFloat(v float64) string {
	if p := viper.GetInt("precision"); p > 0 {
		return strconv.FormatFloat(v, 'f', p, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && s != "NaN" {
		s += ".0"
	}
	return s
}

// formatOutcome renders one evaluation result as a line of text:
// assignments echo "name = value", expressions print the value alone.
func formatOutcome(outcome *evaluator.Outcome) string {
	if outcome.IsAssignment() {
		return fmt.Sprintf("%s = %s", outcome.Name, formatFloat(outcome.Value))
	}
	return formatFloat(outcome.Value)
}

func getOutput(outcome *evaluator.Outcome, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return formatOutcome(outcome), nil
	case "json":
		record := map[string]any{"value": outcome.Value}
		if outcome.IsAssignment() {
			record["name"] = outcome.Name
		}
		output, err := getOutputJSON(record)
		if err != nil {
			return "", err
		}
		return string(output), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func getOutputJSON(record any) ([]byte, error) {
	if viper.GetBool("no-color") {
		return json.MarshalIndent(record, "", "  ")
	}
	return prettyjson.Marshal(record)
}

func colorizeJSON(data []byte) ([]byte, error) {
	if viper.GetBool("no-color") {
		return data, nil
	}
	return prettyjson.Format(data)
}

// formatEvalError prefers the friendly rendering with the source line and
// caret when the error carries a location.
func formatEvalError(err error) error {
	var structured *errz.Error
	if errors.As(err, &structured) {
		return fmt.Errorf("%s", structured.FriendlyErrorMessage())
	}
	return err
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
}
