package jsonpath

import (
	"iter"

	"github.com/jacoelho/jsontext/internal/value"
)

// Path is a compiled expression. It is immutable and safe for concurrent use.
type Path struct {
	expr string
	segs []segment
}

// Compile parses an expression such as "$.cars.american[*]", "$..japanese"
// or "*". Errors wrap jsonerr.ErrInvalidExpression.
func Compile(expr string) (*Path, error) {
	segs, err := compile(expr)
	if err != nil {
		return nil, err
	}
	return &Path{expr: expr, segs: segs}, nil
}

// Validate checks if an expression is syntactically valid.
func Validate(expr string) error {
	_, err := compile(expr)
	return err
}

func (p *Path) String() string {
	return p.expr
}

// Select returns every node addressed by the path, in document order.
func (p *Path) Select(root value.Value) []value.Node {
	var nodes []value.Node
	for n := range p.All(root) {
		nodes = append(nodes, n)
	}
	return nodes
}

// All lazily yields the nodes addressed by the path.
func (p *Path) All(root value.Value) iter.Seq[value.Node] {
	return func(yield func(value.Node) bool) {
		ctx := &evalContext{root: root}
		ctx.processSegments(value.Node{Value: root}, p.segs, yield)
	}
}

// evalContext carries the document root through one evaluation. Filters
// see it as '$'.
type evalContext struct {
	root      value.Value
	rootPlain any
	converted bool
}

func (c *evalContext) plainRoot() any {
	if !c.converted {
		c.rootPlain = c.root.Plain()
		c.converted = true
	}
	return c.rootPlain
}

func (c *evalContext) processSegments(n value.Node, segs []segment, yield func(value.Node) bool) bool {
	if len(segs) == 0 {
		return yield(n)
	}

	if segs[0].deep {
		return c.processDeepSegment(n, segs[0], segs[1:], yield)
	}
	return c.processChildSegment(n, segs[0], segs[1:], yield)
}

// processChildSegment applies the selectors in order, so "[2,0]" yields
// index 2 before index 0.
func (c *evalContext) processChildSegment(n value.Node, seg segment, remaining []segment, yield func(value.Node) bool) bool {
	if !n.Value.IsContainer() {
		return true
	}

	for _, sel := range seg.sels {
		ok := sel.apply(c, n.Value, func(k value.Key, child value.Value) bool {
			return c.processSegments(value.Node{Location: n.Location.Child(k), Value: child}, remaining, yield)
		})
		if !ok {
			return false
		}
	}
	return true
}

// processDeepSegment walks n and its descendants in pre-order. A trailing
// '..' yields the node itself and every descendant; otherwise each child
// matched by any selector continues with the remaining segments before the
// walk descends into it.
func (c *evalContext) processDeepSegment(n value.Node, seg segment, remaining []segment, yield func(value.Node) bool) bool {
	if len(seg.sels) == 0 {
		if !c.processSegments(n, remaining, yield) {
			return false
		}
	}

	if !n.Value.IsContainer() {
		return true
	}

	parentLen := n.Value.Len()
	for k, child := range n.Value.Children {
		childNode := value.Node{Location: n.Location.Child(k), Value: child}

		if len(seg.sels) > 0 && c.anyMatch(seg.sels, k, child, parentLen) {
			if !c.processSegments(childNode, remaining, yield) {
				return false
			}
		}

		if !c.processDeepSegment(childNode, seg, remaining, yield) {
			return false
		}
	}
	return true
}

func (c *evalContext) anyMatch(sels []selector, k value.Key, child value.Value, parentLen int) bool {
	for _, s := range sels {
		if s.matches(c, k, child, parentLen) {
			return true
		}
	}
	return false
}
