package parser

import (
	"github.com/hashicorp/go-multierror"
	"github.com/safecalc-io/safecalc/errz"
	"github.com/safecalc-io/safecalc/internal/token"
)

// ErrorOpts holds the data used to build a parser error. All fields are
// optional, although a Message is recommended.
type ErrorOpts struct {
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// NewSyntaxError returns a syntax error populated with the given data.
func NewSyntaxError(opts ErrorOpts) *errz.Error {
	return newError(errz.SyntaxError, opts)
}

// NewUnsupportedConstructError returns an unsupported-construct error
// populated with the given data. The message should name the construct.
func NewUnsupportedConstructError(opts ErrorOpts) *errz.Error {
	return newError(errz.UnsupportedConstruct, opts)
}

func newError(kind errz.Kind, opts ErrorOpts) *errz.Error {
	message := opts.Message
	if opts.Cause != nil && message == "" {
		message = opts.Cause.Error()
	}
	err := errz.New(kind, message)
	err.Location = errz.Location{
		File:   opts.File,
		Line:   opts.StartPosition.LineNumber(),
		Column: opts.StartPosition.ColumnNumber(),
		Source: opts.SourceCode,
	}
	err.Cause = opts.Cause
	return err
}

// combineErrors folds the collected parser errors into a single error
// value. A single error is returned as-is so that callers can match on it
// directly; multiple errors are combined.
func combineErrors(errs []*errz.Error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	var result *multierror.Error
	for _, err := range errs {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return "identifier"
	default:
		return string(t)
	}
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of input"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return t.Literal
	}
}
