package jsonpath

import (
	"strconv"
	"strings"

	rfc9535 "github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"

	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/value"
)

// Wildcard is the single-token expression selecting every child of the root.
const Wildcard = "*"

// selector picks children of a container.
type selector interface {
	// matches reports whether the child at k belongs to the selection.
	matches(ctx *evalContext, k value.Key, child value.Value, parentLen int) bool
	// apply emits the selected children of v in selector order.
	apply(ctx *evalContext, v value.Value, yield func(value.Key, value.Value) bool) bool
}

type segment struct {
	deep bool       // true for '..' descendant segments
	sels []selector // empty on a trailing '..', which selects the node and all descendants
}

type (
	nameSel     string
	wildcardSel struct{}
	indexSel    int
	sliceSel    struct{ start, end, step int }
)

// filterSel tests each child with an RFC 9535 filter expression. '@' is
// the child and '$' is the document root.
type filterSel struct {
	filter *spec.FilterSelector
}

func (n nameSel) matches(_ *evalContext, k value.Key, _ value.Value, _ int) bool {
	return !k.IsIndex() && k.Name() == string(n)
}

func (n nameSel) apply(_ *evalContext, v value.Value, yield func(value.Key, value.Value) bool) bool {
	if v.Kind() != value.Object {
		return true
	}
	child, ok := v.Get(string(n))
	if !ok {
		return true
	}
	return yield(value.NameKey(string(n)), child)
}

func (wildcardSel) matches(_ *evalContext, _ value.Key, _ value.Value, _ int) bool {
	return true
}

func (wildcardSel) apply(_ *evalContext, v value.Value, yield func(value.Key, value.Value) bool) bool {
	for k, child := range v.Children {
		if !yield(k, child) {
			return false
		}
	}
	return true
}

func (i indexSel) resolve(n int) int {
	idx := int(i)
	if idx < 0 {
		idx += n
	}
	return idx
}

func (i indexSel) matches(_ *evalContext, k value.Key, _ value.Value, parentLen int) bool {
	return k.IsIndex() && k.Index() == i.resolve(parentLen)
}

func (i indexSel) apply(_ *evalContext, v value.Value, yield func(value.Key, value.Value) bool) bool {
	idx := i.resolve(v.Len())
	child, ok := v.Index(idx)
	if !ok {
		return true
	}
	return yield(value.IndexKey(idx), child)
}

// bounds follows the RFC 9535 slice normalization.
func (s sliceSel) bounds(n int) (lower, upper int) {
	normalize := func(i int) int {
		if i < 0 {
			return n + i
		}
		return i
	}

	start, end := normalize(s.start), normalize(s.end)
	if s.step > 0 {
		return min(max(start, 0), n), min(max(end, 0), n)
	}
	return min(max(end, -1), n-1), min(max(start, -1), n-1)
}

func (s sliceSel) matches(_ *evalContext, k value.Key, _ value.Value, parentLen int) bool {
	if !k.IsIndex() {
		return false
	}
	lower, upper := s.bounds(parentLen)
	i := k.Index()
	if s.step > 0 {
		return i >= lower && i < upper && (i-lower)%s.step == 0
	}
	return i > lower && i <= upper && (upper-i)%(-s.step) == 0
}

func (s sliceSel) apply(_ *evalContext, v value.Value, yield func(value.Key, value.Value) bool) bool {
	if v.Kind() != value.Array {
		return true
	}

	lower, upper := s.bounds(v.Len())
	if s.step > 0 {
		for i := lower; i < upper; i += s.step {
			child, _ := v.Index(i)
			if !yield(value.IndexKey(i), child) {
				return false
			}
		}
		return true
	}

	for i := upper; lower < i; i += s.step {
		child, _ := v.Index(i)
		if !yield(value.IndexKey(i), child) {
			return false
		}
	}
	return true
}

func (f filterSel) matches(ctx *evalContext, _ value.Key, child value.Value, _ int) bool {
	return f.filter.Eval(child.Plain(), ctx.plainRoot())
}

func (f filterSel) apply(ctx *evalContext, v value.Value, yield func(value.Key, value.Value) bool) bool {
	for k, child := range v.Children {
		if !f.matches(ctx, k, child, v.Len()) {
			continue
		}
		if !yield(k, child) {
			return false
		}
	}
	return true
}

// IsExpression reports whether selector uses expression syntax rather than
// an operator token: it starts with "$." or is the lone wildcard.
func IsExpression(selector string) bool {
	return selector == Wildcard || strings.HasPrefix(selector, "$.")
}

func compile(expr string) ([]segment, error) {
	if err := validateExpression(expr); err != nil {
		return nil, err
	}

	if expr == Wildcard {
		return []segment{{sels: []selector{wildcardSel{}}}}, nil
	}

	i := 1 // current parsing index in expr, after '$'
	var segs []segment

	for i < len(expr) {
		seg, newIndex, err := parseSegment(expr, i, len(segs) == 0)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
		i = newIndex
	}

	return segs, nil
}

func validateExpression(expr string) error {
	if expr == "" {
		return jsonerr.Expression("expression cannot be empty")
	}
	if expr == "$" {
		return jsonerr.Expression("expression '$' must be followed by a segment")
	}
	if !IsExpression(expr) {
		return jsonerr.Expression("expression %q must start with '$.'", expr)
	}
	return nil
}

func parseSegment(expr string, i int, first bool) (segment, int, error) {
	switch expr[i] {
	case '.':
		return parseDotSegment(expr, i, first)
	case '[':
		return parseBracketSegment(expr, i)
	}

	return segment{}, i, jsonerr.Expression("unexpected token '%c' at position %d, expected '.' or '['", expr[i], i)
}

func parseDotSegment(expr string, i int, first bool) (segment, int, error) {
	seg := segment{}

	if i+1 < len(expr) && expr[i+1] == '.' { // descendant '..'
		seg.deep = true
		i += 2
	} else { // child '.'
		i++
	}

	if i >= len(expr) {
		if seg.deep {
			return seg, i, nil
		}
		return segment{}, i, jsonerr.Expression("path segment cannot end with '.'")
	}

	switch {
	case expr[i] == '[': // "$.[2]" and "$..[*]"
		bracket, newIndex, err := parseBracketSegment(expr, i)
		if err != nil {
			return segment{}, newIndex, err
		}
		bracket.deep = seg.deep
		return bracket, newIndex, nil

	case expr[i] == '*':
		seg.sels = append(seg.sels, wildcardSel{})
		return seg, i + 1, nil
	}

	name, newIndex, err := parseName(expr, i)
	if err != nil {
		return segment{}, i, err
	}
	if first && !seg.deep && isNumeric(name) {
		return segment{}, i, jsonerr.Expression("leading path segment %q cannot be numeric", name)
	}
	seg.sels = append(seg.sels, nameSel(name))
	return seg, newIndex, nil
}

func parseName(expr string, i int) (string, int, error) {
	start := i
	for i < len(expr) && value.IsNameByte(expr[i]) {
		i++
	}
	if start == i {
		return "", i, jsonerr.Expression("name selector cannot be empty at position %d", start)
	}
	return expr[start:i], i, nil
}

func parseBracketSegment(expr string, i int) (segment, int, error) {
	end := findMatchingBracket(expr, i)
	if end == -1 {
		return segment{}, i, jsonerr.Expression("unterminated bracket selector starting at position %d", i)
	}

	content := strings.TrimSpace(expr[i+1 : end])
	next := end + 1

	if content == "" {
		return segment{}, next, jsonerr.Expression("empty bracket selector '[]'")
	}

	if content[0] == '?' {
		fs, err := parseFilter(content[1:])
		if err != nil {
			return segment{}, next, err
		}
		return segment{sels: []selector{fs}}, next, nil
	}

	seg := segment{}
	for _, part := range splitUnion(content) {
		sel, err := parseUnionPart(part)
		if err != nil {
			return segment{}, next, err
		}
		seg.sels = append(seg.sels, sel)
	}

	return seg, next, nil
}

func parseFilter(body string) (filterSel, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return filterSel{}, jsonerr.Expression("filter expression cannot be empty")
	}

	src := "$[?" + body + "]"
	p, err := rfc9535.Parse(src)
	if err != nil {
		return filterSel{}, jsonerr.Expression("filter %q: %v", body, err)
	}

	filter, ok := p.Query().Segments()[0].Selectors()[0].(*spec.FilterSelector)
	if !ok {
		return filterSel{}, jsonerr.Expression("filter %q is not a single filter selector", body)
	}

	return filterSel{filter: filter}, nil
}

func parseUnionPart(part string) (selector, error) {
	p := strings.TrimSpace(part)
	if p == "" {
		return nil, jsonerr.Expression("empty part in union selector")
	}

	if p == "*" {
		return wildcardSel{}, nil
	}

	if isQuotedName(p) {
		return nameSel(unquote(p)), nil
	}

	if strings.Contains(p, ":") {
		return parseSlice(p)
	}

	if idx, err := strconv.Atoi(p); err == nil {
		return indexSel(idx), nil
	}

	return nil, jsonerr.Expression("invalid content '%s' in bracket selector", p)
}

func isQuotedName(s string) bool {
	return (len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'') ||
		(len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"')
}

func unquote(s string) string {
	inner := s[1 : len(s)-1]
	if !strings.Contains(inner, `\`) {
		return inner
	}
	return strings.NewReplacer(`\\`, `\`, `\'`, `'`, `\"`, `"`).Replace(inner)
}

// parseSlice only accepts the fully specified start:end:step form.
func parseSlice(p string) (selector, error) {
	bounds := strings.Split(p, ":")
	if len(bounds) != 3 {
		return nil, jsonerr.Expression("slice '%s' must be written as start:end:step", p)
	}

	var parsed [3]int
	for i, name := range []string{"start", "end", "step"} {
		trimmed := strings.TrimSpace(bounds[i])
		v, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, jsonerr.Expression("slice %s '%s' in '%s' is not a number", name, trimmed, p)
		}
		parsed[i] = v
	}

	if parsed[2] == 0 {
		return nil, jsonerr.Expression("slice step cannot be zero in '%s'", p)
	}

	return sliceSel{start: parsed[0], end: parsed[1], step: parsed[2]}, nil
}

// findMatchingBracket finds the closing bracket for the opening bracket at start.
func findMatchingBracket(expr string, start int) int {
	if start >= len(expr) || expr[start] != '[' {
		return -1
	}

	bracketDepth := 0
	inSingleQuote := false
	inDoubleQuote := false

	for i := start; i < len(expr); i++ {
		c := expr[i]

		if c == '\\' && (inSingleQuote || inDoubleQuote) {
			i++
			continue
		}

		if c == '\'' && !inDoubleQuote {
			inSingleQuote = !inSingleQuote
			continue
		}
		if c == '"' && !inSingleQuote {
			inDoubleQuote = !inDoubleQuote
			continue
		}

		if inSingleQuote || inDoubleQuote {
			continue
		}

		switch c {
		case '[':
			bracketDepth++
		case ']':
			bracketDepth--
			if bracketDepth == 0 {
				return i
			}
		}
	}

	return -1
}

// splitUnion splits bracket content on commas outside quoted names.
func splitUnion(content string) []string {
	var parts []string
	var current strings.Builder
	quote := byte(0)

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case quote != 0 && c == '\\' && i+1 < len(content):
			current.WriteByte(c)
			i++
			current.WriteByte(content[i])
			continue
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && c == ',':
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteByte(c)
	}

	return append(parts, current.String())
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
