package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func shouldRunRepl(cmd *cobra.Command, args []string) bool {
	if viper.GetBool("no-repl") || viper.GetBool("stdin") {
		return false
	}
	if f := cmd.Flags().Lookup("no-repl"); f != nil && f.Changed {
		return false
	}
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		return false
	}
	if len(args) > 0 {
		return false
	}
	return isTerminalIO()
}

// getInputLines determines what lines are to be evaluated. There are three
// possibilities:
//  1. --code <lines>
//  2. --stdin (read lines from stdin)
//  3. path as args[0]
func getInputLines(cmd *cobra.Command, args []string) ([]string, error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	// Error if multiple input sources are specified
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return nil, errors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return nil, errors.New("multiple input sources specified")
	}
	var text string
	if stdinFlagSet {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		text = string(data)
	} else if pathSupplied {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		text = string(data)
	} else {
		code, err := cmd.Flags().GetString("code")
		if err != nil {
			return nil, err
		}
		text = code
	}
	return strings.Split(text, "\n"), nil
}
