// Package execute runs one command-line invocation against a document.
package execute

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/jacoelho/jsontext/internal/config"
	"github.com/jacoelho/jsontext/internal/document"
	"github.com/jacoelho/jsontext/internal/exit"
	"github.com/jacoelho/jsontext/internal/matcher"
	"github.com/jacoelho/jsontext/internal/output"
	"github.com/jacoelho/jsontext/internal/query"
	"github.com/jacoelho/jsontext/internal/value"
	"github.com/jacoelho/jsontext/internal/yamldoc"
)

type Runner struct {
	config    *config.Config
	engine    *query.Engine
	logger    *slog.Logger
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
}

func New(cfg *config.Config) (*Runner, *exit.Result) {
	operators, err := cfg.Operators()
	if err != nil {
		return nil, exit.Usagef("Error loading operators: %v\n", err)
	}

	r := &Runner{
		config:    cfg,
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}
	r.logger = newLogger(r.errorWriter(), cfg.Debug)
	r.engine = query.New(query.WithOperators(operators), query.WithLogger(r.logger))
	return r, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (r *Runner) SetInput(in io.Reader) {
	r.input = in
}

func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

// SetErrorOutput redirects error messages and logs.
func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
	r.logger = newLogger(r.errorWriter(), r.config.Debug)
	r.engine = query.New(query.WithOperators(r.engine.Operators()), query.WithLogger(r.logger))
}

func (r *Runner) payloadWriter() io.Writer {
	if r.output == nil {
		return io.Discard
	}
	return r.output
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

// Run executes the configured action and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	if err := ctx.Err(); err != nil {
		return r.fail(exit.Errorf("Error: %v\n", err))
	}

	doc, result := r.readDocument()
	if result != nil {
		return r.fail(result)
	}
	r.logger.Debug("document loaded", "nodes", doc.Len())

	if result := r.execute(doc); result != nil {
		return r.fail(result)
	}
	return exit.CodeSuccess
}

func (r *Runner) fail(result *exit.Result) int {
	result.Output = r.errorWriter()
	result.Print()
	return result.ExitCode
}

func (r *Runner) readDocument() (*document.Document, *exit.Result) {
	in := r.input
	if name := r.config.File; name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, exit.Errorf("Error: failed to open %s: %v\n", name, err)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, exit.Errorf("Error: failed to read document: %v\n", err)
	}

	if r.config.Input == config.InputYAML {
		root, err := yamldoc.Decode(data)
		if err != nil {
			return nil, exit.FromError(err)
		}
		if root.IsNull() {
			return nil, exit.Errorf("Error: document cannot be null\n")
		}
		return document.New(root), nil
	}

	doc, err := document.Parse(string(data))
	if err != nil {
		return nil, exit.FromError(err)
	}
	return doc, nil
}

func (r *Runner) execute(doc *document.Document) *exit.Result {
	cfg := r.config

	switch cfg.Action() {
	case config.ActionSet:
		return r.set(doc)
	case config.ActionPatch:
		return r.patch(doc)
	case config.ActionFirst:
		return r.writeResult(matcher.First(doc))
	case config.ActionLast:
		return r.writeResult(matcher.Last(doc))
	case config.ActionNth:
		return r.writeResult(matcher.Nth(doc, cfg.Nth))
	default:
		return r.query(doc)
	}
}

func (r *Runner) query(doc *document.Document) *exit.Result {
	var operands []any
	if r.config.HasOperand {
		operand, err := r.config.TypedOperand()
		if err != nil {
			return exit.Usagef("Error: %v\n", err)
		}
		operands = append(operands, operand)
	}

	result, err := r.engine.Query(doc, r.config.Selector, operands...)
	if err != nil {
		return exit.FromError(err)
	}
	return r.writeResult(result)
}

func (r *Runner) set(doc *document.Document) *exit.Result {
	replacement, err := value.Decode([]byte(r.config.Set))
	if err != nil {
		return exit.Usagef("Error: -set value: %v\n", err)
	}

	updated, changes, err := doc.SetAtPath(r.config.Selector, replacement)
	if err != nil {
		return exit.FromError(err)
	}
	r.logger.Debug("set", "selector", r.config.Selector, "replaced", len(changes.Replaced))

	return r.writeValue(updated.Root())
}

func (r *Runner) patch(doc *document.Document) *exit.Result {
	patch, err := os.ReadFile(r.config.Patch)
	if err != nil {
		return exit.Errorf("Error: failed to read patch %s: %v\n", r.config.Patch, err)
	}

	updated, err := doc.ApplyPatch(patch)
	if err != nil {
		return exit.FromError(err)
	}
	return r.writeValue(updated.Root())
}

func (r *Runner) writeResult(result matcher.Result) *exit.Result {
	if err := output.WriteResult(r.payloadWriter(), r.config.Output, result); err != nil {
		return exit.Errorf("Error: failed to write result: %v\n", err)
	}
	return nil
}

func (r *Runner) writeValue(v value.Value) *exit.Result {
	if err := output.WriteValue(r.payloadWriter(), r.config.Output, v); err != nil {
		return exit.Errorf("Error: failed to write document: %v\n", err)
	}
	return nil
}
