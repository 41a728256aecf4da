package safecalc

import (
	"context"

	"github.com/safecalc-io/safecalc/ast"
	"github.com/safecalc-io/safecalc/builtins"
	"github.com/safecalc-io/safecalc/evaluator"
	"github.com/safecalc-io/safecalc/object"
	"github.com/safecalc-io/safecalc/parser"
)

// Option configures a calculator parse or evaluation.
type Option func(*options)

type options struct {
	registry *builtins.Registry
	filename string
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithRegistry sets the capability registry used to resolve operators,
// functions, and constants. By default the standard registry from the
// builtins package is used. Supplying a smaller registry narrows what input
// lines are able to do:
//
//	reg := builtins.Default()
//	result, _ := safecalc.Eval(ctx, line, env, safecalc.WithRegistry(reg))
func WithRegistry(registry *builtins.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithFilename sets the filename for the line being evaluated. This is used
// in error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// Parse parses one calculator line into its syntax tree without evaluating
// it. The tree contains only the allow-listed node kinds.
func Parse(ctx context.Context, line string, opts ...Option) (ast.Node, error) {
	o := collectOptions(opts...)
	var parserOpts []parser.Option
	if o.filename != "" {
		parserOpts = append(parserOpts, parser.WithFilename(o.filename))
	}
	return parser.Parse(ctx, line, parserOpts...)
}

// Eval parses and evaluates one calculator line against the given
// environment. It is equivalent to Parse() followed by Evaluator.Evaluate().
// The environment is written only when the line is a successful assignment.
func Eval(ctx context.Context, line string, env *object.Environment, opts ...Option) (*evaluator.Outcome, error) {
	o := collectOptions(opts...)
	node, err := Parse(ctx, line, opts...)
	if err != nil {
		return nil, err
	}
	var evalOpts []evaluator.Option
	if o.registry != nil {
		evalOpts = append(evalOpts, evaluator.WithRegistry(o.registry))
	}
	return evaluator.New(evalOpts...).Evaluate(ctx, node, env)
}
