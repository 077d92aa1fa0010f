// Package matcher implements the operator matchers over a flattened
// document: positional (->), member name (->>), path (#>) and expression.
//
// Every matcher yields its entries in document order.
package matcher

import (
	"strconv"

	"github.com/jacoelho/jsontext/internal/document"
	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/number"
	"github.com/jacoelho/jsontext/internal/value"
)

// MatchOnInt returns the node at the given zero-based position of the
// flattened traversal. Positions out of range, negative ones included,
// yield an empty result.
func MatchOnInt(doc *document.Document, operand any) (Result, error) {
	pos, err := number.ToStrictInt(operand)
	if err != nil {
		return Result{}, jsonerr.Argument("-> operand must be an integer: %v", err)
	}
	return Nth(doc, pos), nil
}

// MatchOnStr returns the first node, in flattened order, whose member name
// equals operand. Array indices never match.
func MatchOnStr(doc *document.Document, operand any) (Result, error) {
	name, ok := operand.(string)
	if !ok {
		return Result{}, jsonerr.Argument("->> operand must be a string, got %T", operand)
	}

	for n := range doc.Flatten() {
		if k := n.Key(); !k.IsIndex() && k.Name() == name {
			return NewResult(fromNode(n)), nil
		}
	}
	return Result{}, nil
}

// MatchOnPath takes JSON text holding a single-pair object {"key":"sub"}.
// Every node named key whose value is a container with a non-empty entry at
// sub contributes that entry. Matches are keyed 0..n-1.
func MatchOnPath(doc *document.Document, operand any) (Result, error) {
	text, ok := operand.(string)
	if !ok {
		return Result{}, jsonerr.Argument("#> operand must be JSON text, got %T", operand)
	}

	parsed, err := value.Decode([]byte(text))
	if err != nil {
		return Result{}, jsonerr.Argument("#> operand %q is not valid JSON", text)
	}
	if parsed.Kind() != value.Object {
		return Result{}, jsonerr.Argument("#> operand must be a JSON object, got %s", parsed.Kind())
	}

	members := parsed.Members()
	switch {
	case len(members) == 0:
		return Result{}, nil
	case len(members) > 1:
		return Result{}, jsonerr.ErrComplexOperandUnsupported
	}

	name := members[0].Key
	subKey, err := subKeyOf(members[0].Value)
	if err != nil {
		return Result{}, err
	}

	var entries []Entry
	for n := range doc.Flatten() {
		if k := n.Key(); k.IsIndex() || k.Name() != name || !n.Value.IsContainer() {
			continue
		}

		key, ok := resolveSubKey(n.Value, subKey)
		if !ok {
			continue
		}
		child, ok := n.Value.Child(key)
		if !ok || isEmpty(child) {
			continue
		}

		entries = append(entries, Entry{
			Key:   value.IndexKey(len(entries)),
			Path:  n.Location.Child(key).String(),
			Value: child,
		})
	}
	return NewResult(entries...), nil
}

// MatchOnExpr evaluates a path expression. Matches are keyed 0..n-1.
func MatchOnExpr(doc *document.Document, expr string) (Result, error) {
	nodes, err := doc.GetAtPath(expr)
	if err != nil {
		return Result{}, err
	}

	entries := make([]Entry, 0, len(nodes))
	for i, n := range nodes {
		entries = append(entries, Entry{Key: value.IndexKey(i), Path: n.Path(), Value: n.Value})
	}
	return NewResult(entries...), nil
}

// First returns the first node of the flattened traversal.
func First(doc *document.Document) Result {
	return Nth(doc, 0)
}

// Last returns the last node of the flattened traversal.
func Last(doc *document.Document) Result {
	var (
		last  value.Node
		found bool
	)
	for n := range doc.Flatten() {
		last, found = n, true
	}
	if !found {
		return Result{}
	}
	return NewResult(fromNode(last))
}

// Nth returns the node at position n of the flattened traversal.
func Nth(doc *document.Document, n int) Result {
	if n < 0 {
		return Result{}
	}

	i := 0
	for node := range doc.Flatten() {
		if i == n {
			return NewResult(fromNode(node))
		}
		i++
	}
	return Result{}
}

// subKeyOf accepts a string or an integer literal.
func subKeyOf(v value.Value) (string, error) {
	switch v.Kind() {
	case value.String:
		return v.Str(), nil
	case value.Number:
		if lit := v.Number(); number.IsIntegerLiteral(lit) {
			return lit.String(), nil
		}
	}
	return "", jsonerr.Argument("#> operand value must be a string or an integer, got %s", v)
}

// resolveSubKey maps sub onto a key of container. Arrays accept decimal
// indices only.
func resolveSubKey(container value.Value, sub string) (value.Key, bool) {
	if container.Kind() == value.Object {
		return value.NameKey(sub), true
	}

	i, err := strconv.Atoi(sub)
	if err != nil || i < 0 || i >= container.Len() || strconv.Itoa(i) != sub {
		return value.Key{}, false
	}
	return value.IndexKey(i), true
}

// isEmpty treats null, false, zero, "", "0" and empty containers as empty.
func isEmpty(v value.Value) bool {
	switch v.Kind() {
	case value.Null:
		return true
	case value.Bool:
		return !v.Bool()
	case value.Number:
		f, err := v.Number().Float64()
		return err == nil && f == 0
	case value.String:
		return v.Str() == "" || v.Str() == "0"
	default:
		return v.Len() == 0
	}
}
