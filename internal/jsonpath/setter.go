package jsonpath

import (
	"github.com/jacoelho/jsontext/internal/value"
)

// Set replaces every node addressed by the path with replacement and returns
// the new root together with the replaced nodes. The input root is not
// modified. When a selected node sits inside another selected node only the
// outer one is replaced. No match returns root unchanged and no nodes.
func (p *Path) Set(root value.Value, replacement value.Value) (value.Value, []value.Node) {
	var replaced []value.Node
	for _, n := range p.Select(root) {
		if coveredBy(n.Location, replaced) {
			continue
		}
		replaced = append(replaced, n)
	}

	updated := root
	for _, n := range replaced {
		updated, _ = updated.ReplaceAt(n.Location, replacement)
	}
	return updated, replaced
}

func coveredBy(loc value.Location, nodes []value.Node) bool {
	for _, n := range nodes {
		if loc.HasPrefix(n.Location) {
			return true
		}
	}
	return false
}
