package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/safecalc-io/safecalc"
	"github.com/safecalc-io/safecalc/evaluator"
	"github.com/safecalc-io/safecalc/object"
	"github.com/spf13/viper"
)

const historyFileName = ".safecalc_history"

var (
	promptColor = color.New(color.FgYellow, color.Bold)
	mutedColor  = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed)
	resultColor = color.New(color.FgCyan)
)

// repl holds the state of one interactive session: the environment the
// lines mutate, the evaluator, and the on-disk history.
type repl struct {
	eval        *evaluator.Evaluator
	env         *object.Environment
	historyPath string
}

func runRepl(ctx context.Context) error {
	r := &repl{
		eval:        evaluator.New(),
		env:         object.NewEnvironment(),
		historyPath: historyPath(),
	}
	r.printHeader()
	if data, err := os.ReadFile(r.historyPath); err == nil {
		log.Debug().Int("entries", strings.Count(string(data), "\n")).
			Msg("history loaded")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptColor.Print("> ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := r.handleCommand(line); quit {
				return nil
			}
			continue
		}
		r.appendHistory(line)
		r.evalLine(ctx, line)
	}
}

func (r *repl) printHeader() {
	fmt.Printf("safecalc %s — type :help for commands. Ctrl+D or :quit to exit.\n", version)
}

// evalLine evaluates one line and prints the result or error. The running
// result variable updates after every successful line, assignments
// included.
func (r *repl) evalLine(ctx context.Context, line string) {
	node, err := safecalc.Parse(ctx, line)
	if err != nil {
		errorColor.Fprintln(os.Stderr, replErrorLine(err))
		return
	}
	outcome, err := r.eval.Evaluate(ctx, node, r.env)
	if err != nil {
		errorColor.Fprintln(os.Stderr, replErrorLine(err))
		return
	}
	r.env.SetAns(outcome.Value)
	if outcome.IsAssignment() {
		fmt.Printf("%s = %s\n", outcome.Name, resultColor.Sprint(formatFloat(outcome.Value)))
		return
	}
	resultColor.Println(formatFloat(outcome.Value))
}

func replErrorLine(err error) string {
	return "Error: " + formatEvalError(err).Error()
}

// handleCommand processes a colon command. Returns true when the session
// should end.
func (r *repl) handleCommand(input string) bool {
	cmd := strings.ToLower(strings.Fields(input)[0])
	switch cmd {
	case ":help", ":h", ":?":
		r.printHelp()
	case ":vars", ":v":
		r.printVars()
	case ":clear", ":c":
		r.env.Clear()
		mutedColor.Println("Cleared variables. ans = 0.0")
	case ":quit", ":q", ":exit":
		return true
	default:
		errorColor.Println("Unknown command. Try :help")
	}
	return false
}

func (r *repl) printHelp() {
	rows := [][2]string{
		{"expr", "Evaluate an expression and print the result"},
		{"name = expr", "Store a value under a variable name"},
		{"ans", "The previous expression result"},
		{":help, :h", "Show this help"},
		{":vars, :v", "List defined variables"},
		{":clear, :c", "Clear all variables"},
		{":quit, :q", "Exit"},
	}
	fmt.Println()
	for _, row := range rows {
		fmt.Printf("  %s %s\n",
			promptColor.Sprintf("%-14s", row[0]), mutedColor.Sprint(row[1]))
	}
	fmt.Println()
	reg := r.eval.Registry()
	fmt.Printf("  %s %s\n", promptColor.Sprintf("%-14s", "functions:"),
		mutedColor.Sprint(strings.Join(reg.FunctionNames(), ", ")))
	fmt.Printf("  %s %s\n", promptColor.Sprintf("%-14s", "constants:"),
		mutedColor.Sprint(strings.Join(reg.ConstantNames(), ", ")))
	fmt.Println()
}

// printVars lists user variables in sorted order, then ans last.
func (r *repl) printVars() {
	var names []string
	for _, name := range r.env.Names() {
		if name != object.AnsName {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		mutedColor.Println("(no variables set)")
	}
	for _, name := range names {
		value, _ := r.env.Get(name)
		fmt.Printf("%s = %s\n", name, formatFloat(value))
	}
	fmt.Printf("%s = %s\n", object.AnsName, formatFloat(r.env.Ans()))
}

func historyPath() string {
	if !viper.GetBool("history") {
		return ""
	}
	home, err := homedir.Dir()
	if err != nil {
		log.Debug().Err(err).Msg("could not resolve home directory")
		return ""
	}
	return filepath.Join(home, historyFileName)
}

func (r *repl) appendHistory(line string) {
	if r.historyPath == "" {
		return
	}
	f, err := os.OpenFile(r.historyPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Debug().Err(err).Msg("could not open history file")
		return
	}
	defer f.Close()
	f.WriteString(line + "\n")
}
