// Package document wraps a parsed JSON text value.
//
// A Document is immutable. Path mutation and patching return a new Document
// whose text is re-serialized from the updated tree.
package document

import (
	"iter"
	"strings"

	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/value"
)

// Document holds one root value together with its text.
type Document struct {
	text string
	root value.Value
}

// Parse decodes text. The empty string is the "no value yet" state and
// yields an empty array. The literal null is rejected like any other
// malformed input.
func Parse(text string) (*Document, error) {
	if text == "" {
		return &Document{root: value.ArrayValue()}, nil
	}

	root, err := value.Decode([]byte(text))
	if err != nil {
		return nil, err
	}
	if root.IsNull() {
		return nil, jsonerr.Malformed("document cannot be null")
	}

	return &Document{text: text, root: root}, nil
}

// New builds a Document from a value tree, serializing it compactly.
func New(root value.Value) *Document {
	return &Document{text: root.String(), root: root}
}

// IsValidJSON reports whether text decodes to a non-null JSON value.
func IsValidJSON(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	v, err := value.Decode([]byte(text))
	return err == nil && !v.IsNull()
}

// IsValidDBValue is IsValidJSON that also accepts the empty string stored by
// a freshly initialized field.
func IsValidDBValue(text string) bool {
	return text == "" || IsValidJSON(text)
}

// Text returns the text the document was built from. A document parsed
// from "" keeps "" as its text.
func (d *Document) Text() string {
	return d.text
}

// Bytes returns the compact serialization of the root.
func (d *Document) Bytes() []byte {
	return d.root.AppendJSON(nil)
}

func (d *Document) Root() value.Value {
	return d.root
}

// IsEmpty reports whether the root has nothing to traverse.
func (d *Document) IsEmpty() bool {
	return d.root.Len() == 0
}

// Flatten yields every node below the root in self-first, depth-first
// order: each container comes before its children. The root itself is not
// yielded. Every call starts a fresh traversal.
func (d *Document) Flatten() iter.Seq[value.Node] {
	return func(yield func(value.Node) bool) {
		walk(value.Node{Value: d.root}, yield)
	}
}

// Len returns the number of nodes Flatten yields.
func (d *Document) Len() int {
	n := 0
	for range d.Flatten() {
		n++
	}
	return n
}

func walk(parent value.Node, yield func(value.Node) bool) bool {
	for k, child := range parent.Value.Children {
		n := value.Node{Location: parent.Location.Child(k), Value: child}
		if !yield(n) {
			return false
		}
		if !walk(n, yield) {
			return false
		}
	}
	return true
}

// Plain returns the root as map[string]any, []any, float64, string, bool
// or nil.
func (d *Document) Plain() any {
	return d.root.Plain()
}
