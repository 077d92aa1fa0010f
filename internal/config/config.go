package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jacoelho/jsontext/internal/exit"
	"github.com/jacoelho/jsontext/internal/output"
	"github.com/jacoelho/jsontext/internal/query"
)

var (
	ErrNoArguments       = errors.New("no arguments provided")
	ErrNoSelector        = errors.New("no selector specified")
	ErrTooManyArguments  = errors.New("expected a selector and at most one operand")
	ErrConflictingAction = errors.New("only one of -set, -patch, -first, -last and -nth may be used")
	ErrInvalidOperand    = errors.New("invalid operand")
)

// OperandType controls how the operand argument is converted.
type OperandType string

const (
	OperandAuto   OperandType = "auto"
	OperandInt    OperandType = "int"
	OperandString OperandType = "str"
)

// InputFormat selects how the document is decoded.
type InputFormat string

const (
	InputJSON InputFormat = "json"
	InputYAML InputFormat = "yaml"
)

// Config represents the complete configuration for the jsontext tool.
type Config struct {
	// Input; empty or "-" reads standard input
	File  string
	Input InputFormat

	Selector    string
	Operand     string
	HasOperand  bool
	OperandType OperandType

	// Actions other than a query
	Set   string
	Patch string
	First bool
	Last  bool
	Nth   int // negative when unset

	Output        output.Format
	OperatorsFile string
	Debug         bool
}

// Action names what the tool does with the document.
type Action int

const (
	ActionQuery Action = iota
	ActionSet
	ActionPatch
	ActionFirst
	ActionLast
	ActionNth
)

func (c *Config) Action() Action {
	switch {
	case c.Set != "":
		return ActionSet
	case c.Patch != "":
		return ActionPatch
	case c.First:
		return ActionFirst
	case c.Last:
		return ActionLast
	case c.Nth >= 0:
		return ActionNth
	default:
		return ActionQuery
	}
}

// TypedOperand converts the operand per OperandType. In auto mode a decimal
// integer becomes an int and anything else stays a string.
func (c *Config) TypedOperand() (any, error) {
	switch c.OperandType {
	case OperandString:
		return c.Operand, nil
	case OperandInt:
		i, err := strconv.Atoi(c.Operand)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidOperand, c.Operand)
		}
		return i, nil
	default:
		if i, err := strconv.Atoi(c.Operand); err == nil {
			return i, nil
		}
		return c.Operand, nil
	}
}

// Operators returns the operator set from OperatorsFile, or the Postgres
// set when no file is configured.
func (c *Config) Operators() (query.OperatorSet, error) {
	if c.OperatorsFile == "" {
		return query.Postgres(), nil
	}
	return LoadOperatorSet(c.OperatorsFile)
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	actions := 0
	for _, set := range []bool{c.Set != "", c.Patch != "", c.First, c.Last, c.Nth >= 0} {
		if set {
			actions++
		}
	}
	if actions > 1 {
		return ErrConflictingAction
	}

	switch c.Action() {
	case ActionQuery, ActionSet:
		if c.Selector == "" {
			return ErrNoSelector
		}
	}

	switch c.OperandType {
	case OperandAuto, OperandInt, OperandString:
	default:
		return fmt.Errorf("%w: unknown operand type %q", ErrInvalidOperand, c.OperandType)
	}

	switch c.Input {
	case InputJSON, InputYAML:
	default:
		return fmt.Errorf("unknown input format %q", c.Input)
	}

	for _, file := range []string{c.File, c.Patch, c.OperatorsFile} {
		if file == "" || file == "-" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("file %s not found: %w", file, err)
		}
	}

	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		file          = fs.String("file", "", "Path to the JSON document (default: standard input)")
		input         = fs.String("input", string(InputJSON), "Input format: json or yaml")
		operandType   = fs.String("operand-type", string(OperandAuto), "Operand conversion: auto, int or str")
		set           = fs.String("set", "", "Replace the nodes addressed by the selector with this JSON value")
		patch         = fs.String("patch", "", "Path to an RFC 6902 JSON Patch file to apply")
		first         = fs.Bool("first", false, "Print the first node of the flattened document")
		last          = fs.Bool("last", false, "Print the last node of the flattened document")
		nth           = fs.Int("nth", -1, "Print the node at this position of the flattened document")
		format        = fs.String("output", "json", "Output format: json or yaml")
		operatorsFile = fs.String("operators", "", "Path to a YAML operator set")
		debug         = fs.Bool("debug", false, "Enable debug logging on standard error")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	outputFormat, err := output.ParseFormat(*format)
	if err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	config := &Config{
		File:          *file,
		Input:         InputFormat(*input),
		OperandType:   OperandType(*operandType),
		Set:           *set,
		Patch:         *patch,
		First:         *first,
		Last:          *last,
		Nth:           *nth,
		Output:        outputFormat,
		OperatorsFile: *operatorsFile,
		Debug:         *debug,
	}

	positional := fs.Args()
	switch len(positional) {
	case 0:
	case 1:
		config.Selector = positional[0]
	case 2:
		config.Selector = positional[0]
		config.Operand = positional[1]
		config.HasOperand = true
	default:
		return nil, exit.Usagef("Error: %v\n\n%s", ErrTooManyArguments, Usage())
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jsontext - query and update JSON documents

Usage: jsontext [options] [--] <selector> [operand]

Operator selectors start with '-', so separate them from the options
with --.

Selectors:
  ->  N                   Node at position N of the flattened document
  ->> NAME                First node whose member name is NAME
  #>  '{"key":"sub"}'     Entries at sub below every node named key
  $.path.to[0]            Path expression (also *, $..name, [a:b:c], [?filter])

Options:
  --file FILE             Path to the JSON document (default: standard input)
  --input FORMAT          Input format: json or yaml (default: json)
  --operand-type TYPE     Operand conversion: auto, int or str (default: auto)
  --set JSON              Replace the nodes addressed by the selector with JSON
  --patch FILE            Apply an RFC 6902 JSON Patch file
  --first, --last         Print the first or last flattened node
  --nth N                 Print the node at position N
  --output FORMAT         Output format: json or yaml (default: json)
  --operators FILE        YAML operator set replacing the Postgres operators
  --debug                 Enable debug logging on standard error
  -h, --help              Show this help message

Examples:
  jsontext --file cars.json -- '->>' british
  jsontext --file cars.json -- '->' 5
  jsontext --file cars.json '$.american[*]'
  jsontext --file cars.json --set '"lada"' '$.[2]'
  cat cars.json | jsontext --output yaml -- '#>' '{"american":"0"}'`
}
