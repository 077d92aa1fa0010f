package jsontext

import (
	"log/slog"

	"github.com/jacoelho/jsontext/internal/document"
	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/matcher"
	"github.com/jacoelho/jsontext/internal/query"
)

// Field is a named JSON text value. The zero text "" is an empty document.
//
// A Field caches its parsed document until the text changes. It is not
// safe for concurrent use.
type Field struct {
	name   string
	text   string
	mode   ReturnMode
	engine *query.Engine
	logger *slog.Logger

	doc *document.Document
}

// New returns an empty Field using the Postgres operators and Raw mode
// unless overridden.
func New(name string, opts ...Option) *Field {
	o := options{
		mode:   Raw,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Field{
		name:   name,
		mode:   o.mode,
		engine: query.New(o.engine...),
		logger: o.logger.With("field", name),
	}
}

func (f *Field) Name() string {
	return f.name
}

// Value returns the stored text.
func (f *Field) Value() string {
	return f.text
}

// SetValue stores text. It must be valid JSON other than null, or empty.
func (f *Field) SetValue(text string) error {
	if !document.IsValidDBValue(text) {
		return jsonerr.Malformed("field %s: value is not valid JSON", f.name)
	}
	f.text = text
	f.doc = nil
	return nil
}

func (f *Field) ReturnMode() ReturnMode {
	return f.mode
}

// SetReturnMode changes how Query, First, Last and Nth render results.
func (f *Field) SetReturnMode(mode ReturnMode) error {
	switch mode {
	case Raw, JSON, Typed:
		f.mode = mode
		return nil
	default:
		return jsonerr.Argument("unknown return mode %s", mode)
	}
}

// Document returns the parsed text, reusing the previous parse when the
// text has not changed.
func (f *Field) Document() (*document.Document, error) {
	if f.doc != nil {
		return f.doc, nil
	}

	doc, err := document.Parse(f.text)
	if err != nil {
		return nil, err
	}
	f.doc = doc
	return doc, nil
}

// IsEmpty reports whether the document has no nodes to traverse.
func (f *Field) IsEmpty() (bool, error) {
	doc, err := f.Document()
	if err != nil {
		return false, err
	}
	return doc.IsEmpty(), nil
}

// Query runs an operator with its operand, or a path expression without
// one, and renders the result in the current return mode.
func (f *Field) Query(selector string, operand ...any) (any, error) {
	doc, err := f.Document()
	if err != nil {
		return nil, err
	}

	result, err := f.engine.Query(doc, selector, operand...)
	if err != nil {
		return nil, err
	}
	return f.engine.Render(result, f.mode)
}

// First returns the first node of the flattened document, keyed by its own
// key.
func (f *Field) First() (any, error) {
	return f.positional(matcher.First)
}

// Last returns the last node of the flattened document.
func (f *Field) Last() (any, error) {
	return f.positional(matcher.Last)
}

// Nth returns the node at position n of the flattened document.
func (f *Field) Nth(n int) (any, error) {
	return f.positional(func(doc *document.Document) matcher.Result {
		return matcher.Nth(doc, n)
	})
}

func (f *Field) positional(match func(*document.Document) matcher.Result) (any, error) {
	doc, err := f.Document()
	if err != nil {
		return nil, err
	}
	return f.engine.Render(match(doc), f.mode)
}

// SetValueAt replaces every node addressed by expr with v and stores the
// re-serialized text. An expression that addresses nothing leaves the
// field unchanged. On error the field is untouched.
func (f *Field) SetValueAt(expr string, v any) error {
	doc, err := f.Document()
	if err != nil {
		return err
	}

	updated, changes, err := doc.SetAtPath(expr, v)
	if err != nil {
		return err
	}
	f.logger.Debug("set value", "expr", expr, "replaced", len(changes.Replaced))

	if changes.Empty() {
		return nil
	}
	f.text = updated.Text()
	f.doc = updated
	return nil
}

// ApplyPatch applies an RFC 6902 JSON Patch to the stored document.
func (f *Field) ApplyPatch(patch []byte) error {
	doc, err := f.Document()
	if err != nil {
		return err
	}

	updated, err := doc.ApplyPatch(patch)
	if err != nil {
		return err
	}
	f.logger.Debug("patch applied", "bytes", len(patch))

	f.text = updated.Text()
	f.doc = updated
	return nil
}
