package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/safecalc-io/safecalc"
	"github.com/safecalc-io/safecalc/object"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "safecalc [file]",
		Short: "Sandboxed arithmetic calculator",
		Long: `safecalc evaluates arithmetic expressions, one per line, against a
persistent set of variables. Input can never do anything except arithmetic:
the grammar has no strings, collections, conditionals, or user functions.

With no arguments an interactive session is started.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			processGlobalFlags()
			if f := viper.ConfigFileUsed(); f != "" {
				log.Debug().Str("file", f).Msg("loaded config")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if shouldRunRepl(cmd, args) {
				return runRepl(ctx)
			}

			lines, err := getInputLines(cmd, args)
			if err != nil {
				return err
			}
			return runLines(ctx, lines)
		},
	}
	rootCmd.Flags().StringP("code", "c", "", "Line(s) to evaluate")
	rootCmd.Flags().Bool("stdin", false, "Read lines from stdin")
	rootCmd.Flags().StringP("output", "o", "", "Output format (json or text)")
	rootCmd.Flags().Bool("timing", false, "Show evaluation time")
	rootCmd.Flags().Bool("no-repl", false, "Disable the interactive session")
	rootCmd.Flags().Int("precision", 0, "Decimal places for results (0 = shortest form)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetDefault("history", true)
	viper.BindPFlag("timing", rootCmd.Flags().Lookup("timing"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("precision", rootCmd.Flags().Lookup("precision"))
	viper.SetEnvPrefix("safecalc")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	loadConfigFile()

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			if strings.ToLower(format) == "json" {
				info, err := json.MarshalIndent(map[string]any{
					"version": version,
					"commit":  commit,
					"date":    date,
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(info))
			} else {
				fmt.Println(version)
			}
			return nil
		},
	}
	versionCmd.Flags().StringP("output", "o", "", "Output format (json or text)")

	docCmd := &cobra.Command{
		Use:   "doc [topic]",
		Short: "Show calculator documentation",
		Long: `Show the functions, constants, operators, and syntax forms the
calculator accepts, as JSON. A topic narrows the output to one category
("functions", "constants", "operators", "syntax") or one name ("sqrt").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []safecalc.DocsOption
			if len(args) > 0 {
				switch args[0] {
				case "functions", "constants", "operators", "syntax":
					opts = append(opts, safecalc.DocsCategory(args[0]))
				default:
					opts = append(opts, safecalc.DocsTopic(args[0]))
				}
			}
			output, err := colorizeJSON([]byte(safecalc.Docs(opts...).JSON()))
			if err != nil {
				return err
			}
			fmt.Println(string(output))
			return nil
		},
	}

	rootCmd.AddCommand(versionCmd, docCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fatal(err)
	}
}

// loadConfigFile reads optional settings (no-color, precision, log-level)
// from ~/.safecalc.yaml. A missing file is not an error.
func loadConfigFile() {
	home, err := homedir.Dir()
	if err != nil {
		return
	}
	viper.SetConfigName(".safecalc")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.ReadInConfig()
}

// setupLogging configures the zerolog global logger. Logging goes to stderr
// so it never interleaves with results. SAFECALC_LOG_LEVEL selects the
// level; the default hides everything below warnings.
func setupLogging() {
	level := zerolog.WarnLevel
	if s := viper.GetString("log-level"); s != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil {
			level = parsed
		}
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    viper.GetBool("no-color"),
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()
}

// runLines evaluates a batch of input lines sharing one environment and
// prints each result. The first error stops the batch.
func runLines(ctx context.Context, lines []string) error {
	env := object.NewEnvironment()
	format := strings.ToLower(viper.GetString("output"))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		start := time.Now()
		outcome, err := safecalc.Eval(ctx, line, env)
		dt := time.Since(start)
		if err != nil {
			return formatEvalError(err)
		}
		log.Debug().Str("line", line).Float64("value", outcome.Value).
			Dur("elapsed", dt).Msg("evaluated")
		env.SetAns(outcome.Value)
		output, err := getOutput(outcome, format)
		if err != nil {
			return err
		}
		if output != "" {
			fmt.Println(output)
		}
		if viper.GetBool("timing") {
			fmt.Printf("%v\n", dt)
		}
	}
	return nil
}
