// Package query classifies selectors, dispatches them to the matchers and
// renders the results.
package query

import (
	"log/slog"

	"github.com/jacoelho/jsontext/internal/document"
	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/jsonpath"
	"github.com/jacoelho/jsontext/internal/matcher"
)

// Engine runs queries against documents. It holds no per-document state
// and is safe for concurrent use once built.
type Engine struct {
	operators OperatorSet
	types     TypeMap
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithOperators replaces the Postgres operator set.
func WithOperators(set OperatorSet) Option {
	return func(e *Engine) {
		e.operators = set
	}
}

// WithTypeMap replaces the classifier used by Typed rendering.
func WithTypeMap(types TypeMap) Option {
	return func(e *Engine) {
		e.types = types
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an Engine using the Postgres operators, the default type map
// and a discarding logger unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		operators: Postgres(),
		types:     DefaultTypeMap(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Operators() OperatorSet {
	return e.operators
}

func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Classify resolves a selector to its matcher. Expressions are checked
// against the grammar; any other selector must be in the operator set.
func (e *Engine) Classify(selector string) (MatcherKind, error) {
	if jsonpath.IsExpression(selector) {
		if err := jsonpath.Validate(selector); err != nil {
			return 0, err
		}
		return MatchExpr, nil
	}

	kind, ok := e.operators.Lookup(selector)
	if !ok {
		return 0, jsonerr.Operator("%q is not a known operator", selector)
	}
	return kind, nil
}

// Query runs selector against doc. Operator tokens take exactly one
// operand; expressions take none. An empty document yields an empty result
// for every valid selector.
func (e *Engine) Query(doc *document.Document, selector string, operand ...any) (matcher.Result, error) {
	kind, err := e.Classify(selector)
	if err != nil {
		e.logger.Debug("selector rejected", "selector", selector, "error", err)
		return matcher.Result{}, err
	}

	if doc.IsEmpty() {
		e.logger.Debug("empty document", "selector", selector)
		return matcher.Result{}, nil
	}

	isExpr := jsonpath.IsExpression(selector)
	switch {
	case isExpr && len(operand) > 0:
		return matcher.Result{}, jsonerr.Argument("expression %q takes no operand", selector)
	case !isExpr && len(operand) != 1:
		return matcher.Result{}, jsonerr.Argument("operator %q takes exactly one operand, got %d", selector, len(operand))
	}

	var result matcher.Result
	switch kind {
	case MatchInt:
		result, err = matcher.MatchOnInt(doc, operand[0])
	case MatchStr:
		result, err = matcher.MatchOnStr(doc, operand[0])
	case MatchPath:
		result, err = matcher.MatchOnPath(doc, operand[0])
	case MatchExpr:
		expr := selector
		if !isExpr {
			s, ok := operand[0].(string)
			if !ok {
				return matcher.Result{}, jsonerr.Argument("operator %q takes an expression operand, got %T", selector, operand[0])
			}
			expr = s
		}
		result, err = matcher.MatchOnExpr(doc, expr)
	default:
		return matcher.Result{}, jsonerr.Operator("operator %q maps to unsupported matcher %s", selector, kind)
	}
	if err != nil {
		e.logger.Debug("match failed", "selector", selector, "matcher", kind, "error", err)
		return matcher.Result{}, err
	}

	e.logger.Debug("query", "selector", selector, "matcher", kind, "matches", result.Len())
	return result, nil
}
