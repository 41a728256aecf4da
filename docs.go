package safecalc

import (
	"encoding/json"
	"sort"

	"github.com/safecalc-io/safecalc/builtins"
	"github.com/safecalc-io/safecalc/object"
)

// Version is the current safecalc version.
const Version = "1.0.0"

// DocsOption configures documentation retrieval.
type DocsOption func(*docsOptions)

type docsOptions struct {
	category string
	topic    string
	registry *builtins.Registry
}

// DocsCategory filters documentation to a specific category.
// Valid categories: "functions", "constants", "operators", "syntax"
func DocsCategory(cat string) DocsOption {
	return func(o *docsOptions) {
		o.category = cat
	}
}

// DocsTopic retrieves documentation for a specific topic, such as a single
// function name.
func DocsTopic(topic string) DocsOption {
	return func(o *docsOptions) {
		o.topic = topic
	}
}

// DocsRegistry documents the given registry instead of the default one.
func DocsRegistry(r *builtins.Registry) DocsOption {
	return func(o *docsOptions) {
		o.registry = r
	}
}

// Documentation provides structured access to calculator documentation.
type Documentation struct {
	data any
}

// JSON returns the documentation as a JSON string.
func (d *Documentation) JSON() string {
	b, _ := json.MarshalIndent(d.data, "", "  ")
	return string(b)
}

// Data returns the raw documentation data.
func (d *Documentation) Data() any {
	return d.data
}

// docsInfo provides basic calculator information.
type docsInfo struct {
	Version        string `json:"version"`
	Description    string `json:"description"`
	ExecutionModel string `json:"execution_model"`
}

// docsFunction summarizes one registered function.
type docsFunction struct {
	Name      string   `json:"name"`
	Doc       string   `json:"doc"`
	Signature string   `json:"signature"`
	Params    []string `json:"params"`
}

// docsConstant summarizes one registered constant.
type docsConstant struct {
	Name  string  `json:"name"`
	Doc   string  `json:"doc"`
	Value float64 `json:"value"`
}

// docsSyntaxItem describes a single syntax form.
type docsSyntaxItem struct {
	Syntax string `json:"syntax"`
	Notes  string `json:"notes"`
}

// docsReference is the complete documentation structure.
type docsReference struct {
	Info      docsInfo         `json:"calculator"`
	Functions []docsFunction   `json:"functions"`
	Constants []docsConstant   `json:"constants"`
	Operators []docsSyntaxItem `json:"operators"`
	Syntax    []docsSyntaxItem `json:"syntax"`
}

// Docs returns structured documentation about the calculator: the registered
// functions and constants, the operators, and the accepted syntax forms.
// Useful for tooling and for the interactive help command.
//
// Example:
//
//	docs := safecalc.Docs(safecalc.DocsCategory("functions"))
//	fmt.Println(docs.JSON())
func Docs(opts ...DocsOption) *Documentation {
	o := &docsOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = builtins.Default()
	}

	if o.topic != "" {
		return &Documentation{data: buildTopicDocs(o.registry, o.topic)}
	}
	if o.category != "" {
		return &Documentation{data: buildCategoryDocs(o.registry, o.category)}
	}
	return &Documentation{data: buildReference(o.registry)}
}

func buildReference(r *builtins.Registry) docsReference {
	return docsReference{
		Info: docsInfo{
			Version:        Version,
			Description:    "Sandboxed arithmetic calculator",
			ExecutionModel: "line -> lexer -> parser -> evaluator",
		},
		Functions: functionDocs(r),
		Constants: constantDocs(r),
		Operators: docsOperators,
		Syntax:    docsSyntaxForms,
	}
}

func buildCategoryDocs(r *builtins.Registry, category string) any {
	switch category {
	case "functions":
		fns := functionDocs(r)
		return map[string]any{
			"category":    "functions",
			"description": "Functions available in expressions",
			"count":       len(fns),
			"functions":   fns,
		}
	case "constants":
		consts := constantDocs(r)
		return map[string]any{
			"category":    "constants",
			"description": "Named constants available in expressions",
			"count":       len(consts),
			"constants":   consts,
		}
	case "operators":
		return map[string]any{
			"category":    "operators",
			"description": "Arithmetic operators",
			"operators":   docsOperators,
		}
	case "syntax":
		return map[string]any{
			"category":    "syntax",
			"description": "Accepted input forms",
			"syntax":      docsSyntaxForms,
		}
	default:
		return map[string]any{
			"error": "unknown category: " + category,
		}
	}
}

func buildTopicDocs(r *builtins.Registry, topic string) any {
	for _, fn := range functionDocs(r) {
		if fn.Name == topic {
			return map[string]any{
				"type":     "function",
				"function": fn,
			}
		}
	}
	for _, c := range constantDocs(r) {
		if c.Name == topic {
			return map[string]any{
				"type":     "constant",
				"constant": c,
			}
		}
	}
	return map[string]any{
		"error": "unknown topic: " + topic,
	}
}

func functionDocs(r *builtins.Registry) []docsFunction {
	names := r.FunctionNames()
	fns := make([]docsFunction, 0, len(names))
	for _, name := range names {
		fn, _ := r.Function(name)
		fns = append(fns, describeFunction(fn))
	}
	return fns
}

func describeFunction(fn *object.Builtin) docsFunction {
	params := fn.Params()
	names := make([]string, len(params))
	sig := fn.Name() + "("
	for i, p := range params {
		names[i] = p.Name
		if i > 0 {
			sig += ", "
		}
		sig += p.Name
		if p.Default != nil {
			sig += "=" + object.NewFloat(*p.Default).Inspect()
		}
	}
	sig += ")"
	return docsFunction{
		Name:      fn.Name(),
		Doc:       docsFunctionNotes[fn.Name()],
		Signature: sig,
		Params:    names,
	}
}

func constantDocs(r *builtins.Registry) []docsConstant {
	names := r.ConstantNames()
	sort.Strings(names)
	consts := make([]docsConstant, 0, len(names))
	for _, name := range names {
		value, _ := r.Constant(name)
		consts = append(consts, docsConstant{
			Name:  name,
			Doc:   docsConstantNotes[name],
			Value: value,
		})
	}
	return consts
}

var docsFunctionNotes = map[string]string{
	"sqrt":  "Square root",
	"sin":   "Sine (radians)",
	"cos":   "Cosine (radians)",
	"tan":   "Tangent (radians)",
	"log":   "Logarithm of x in the given base (default 10)",
	"ln":    "Natural logarithm",
	"exp":   "e raised to the power x",
	"abs":   "Absolute value",
	"round": "Round to ndigits decimal places (default 0)",
}

var docsConstantNotes = map[string]string{
	"pi": "Ratio of a circle's circumference to its diameter",
	"e":  "Euler's number",
}

var docsOperators = []docsSyntaxItem{
	{Syntax: "x + y", Notes: "Addition"},
	{Syntax: "x - y", Notes: "Subtraction"},
	{Syntax: "x * y", Notes: "Multiplication"},
	{Syntax: "x / y", Notes: "Division"},
	{Syntax: "x // y", Notes: "Floor division"},
	{Syntax: "x % y", Notes: "Modulo (result has the divisor's sign)"},
	{Syntax: "x ** y", Notes: "Power (right-associative)"},
	{Syntax: "-x, +x", Notes: "Unary minus and plus"},
}

var docsSyntaxForms = []docsSyntaxItem{
	{Syntax: "2 + 3*4", Notes: "Expression: evaluated and printed"},
	{Syntax: "x = expr", Notes: "Assignment: stores the value under the name"},
	{Syntax: "ans", Notes: "The previous result"},
	{Syntax: "f(a, b=c)", Notes: "Function call with optional keyword arguments"},
	{Syntax: "(expr)", Notes: "Grouping"},
}
