// Package yamldoc converts YAML documents into JSON value trees so they can
// be queried like JSON text.
package yamldoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/number"
	"github.com/jacoelho/jsontext/internal/value"
)

// maxDepth bounds nesting, so an anchor whose content refers back to itself
// fails instead of recursing forever.
const maxDepth = 64

// maxNodes bounds the size of the decoded tree with every alias expanded.
const maxNodes = 1 << 20

// Decode reads the first YAML document in data. Mapping order is kept and
// mapping keys must be scalars.
func Decode(data []byte) (value.Value, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return value.Value{}, jsonerr.Malformed("empty YAML document")
		}
		return value.Value{}, jsonerr.Malformed("%v", err)
	}

	d := &decoder{anchors: make(map[*yaml.Node]anchored)}
	return d.convert(&root, 0)
}

// anchored is a converted anchor node and the number of nodes it expands to.
type anchored struct {
	value value.Value
	size  int
}

// decoder converts each anchored node once. Every alias still counts the
// full size of its target towards maxNodes.
type decoder struct {
	nodes   int
	anchors map[*yaml.Node]anchored
}

func (d *decoder) count(n int, node *yaml.Node) error {
	d.nodes += n
	if d.nodes > maxNodes {
		return jsonerr.Malformed("YAML document expands to more than %d nodes at line %d", maxNodes, node.Line)
	}
	return nil
}

func (d *decoder) convert(node *yaml.Node, depth int) (value.Value, error) {
	if node.Anchor == "" || node.Kind == yaml.AliasNode {
		return d.convertNode(node, depth)
	}

	if a, ok := d.anchors[node]; ok {
		if err := d.count(a.size, node); err != nil {
			return value.Value{}, err
		}
		return a.value, nil
	}

	before := d.nodes
	v, err := d.convertNode(node, depth)
	if err != nil {
		return value.Value{}, err
	}
	d.anchors[node] = anchored{value: v, size: d.nodes - before}
	return v, nil
}

func (d *decoder) convertNode(node *yaml.Node, depth int) (value.Value, error) {
	if depth > maxDepth {
		return value.Value{}, jsonerr.Malformed("YAML nesting deeper than %d at line %d", maxDepth, node.Line)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return value.NullValue(), nil
		}
		return d.convert(node.Content[0], depth)
	case yaml.AliasNode:
		return d.convert(node.Alias, depth+1)
	}

	if err := d.count(1, node); err != nil {
		return value.Value{}, err
	}

	switch node.Kind {
	case yaml.SequenceNode:
		items := make([]value.Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := d.convert(child, depth+1)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, item)
		}
		return value.ArrayValue(items...), nil
	case yaml.MappingNode:
		members := make([]value.Member, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return value.Value{}, jsonerr.Malformed("non-scalar mapping key at line %d", key.Line)
			}
			v, err := d.convert(node.Content[i+1], depth+1)
			if err != nil {
				return value.Value{}, err
			}
			members = append(members, value.Member{Key: key.Value, Value: v})
		}
		return value.ObjectValue(members...), nil
	case yaml.ScalarNode:
		return scalar(node)
	default:
		return value.Value{}, jsonerr.Malformed("unsupported YAML node at line %d", node.Line)
	}
}

func scalar(node *yaml.Node) (value.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return value.NullValue(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return value.Value{}, jsonerr.Malformed("%v", err)
		}
		return value.BoolValue(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return value.Value{}, jsonerr.Malformed("%v", err)
		}
		return value.NumberValue(json.Number(strconv.FormatInt(i, 10))), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return value.Value{}, jsonerr.Malformed("%v", err)
		}
		lit, err := number.FromFloat64(f)
		if err != nil {
			return value.Value{}, jsonerr.Malformed("line %d: %v", node.Line, err)
		}
		return value.NumberValue(lit), nil
	default:
		return value.StringValue(node.Value), nil
	}
}
