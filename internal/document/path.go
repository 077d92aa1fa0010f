package document

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/jsonpath"
	"github.com/jacoelho/jsontext/internal/value"
)

// Changes describes what a SetAtPath call replaced.
type Changes struct {
	// Replaced holds the nodes as they were before the replacement.
	Replaced []value.Node
	// Patch is the equivalent RFC 6902 patch of replace operations.
	Patch jsonpatch.Patch
}

func (c Changes) Empty() bool {
	return len(c.Replaced) == 0
}

type patchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// GetAtPath evaluates an expression against the root.
func (d *Document) GetAtPath(expr string) ([]value.Node, error) {
	p, err := jsonpath.Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.Select(d.root), nil
}

// SetAtPath replaces every node addressed by expr with newValue. Operator
// tokens are not accepted. An expression that addresses nothing returns the
// same document and empty Changes.
func (d *Document) SetAtPath(expr string, newValue any) (*Document, Changes, error) {
	if !jsonpath.IsExpression(expr) {
		return nil, Changes{}, jsonerr.Expression("%q is not a path expression", expr)
	}

	p, err := jsonpath.Compile(expr)
	if err != nil {
		return nil, Changes{}, err
	}

	replacement, err := value.FromAny(newValue)
	if err != nil {
		return nil, Changes{}, err
	}

	updated, replaced := p.Set(d.root, replacement)
	if len(replaced) == 0 {
		return d, Changes{}, nil
	}
	if updated.IsNull() {
		return nil, Changes{}, jsonerr.Argument("%q would replace the document with null", expr)
	}

	patch, err := replacePatch(replaced, replacement)
	if err != nil {
		return nil, Changes{}, err
	}

	return New(updated), Changes{Replaced: replaced, Patch: patch}, nil
}

func replacePatch(replaced []value.Node, replacement value.Value) (jsonpatch.Patch, error) {
	raw := json.RawMessage(replacement.AppendJSON(nil))
	ops := make([]patchOperation, 0, len(replaced))
	for _, n := range replaced {
		ops = append(ops, patchOperation{Op: "replace", Path: n.Location.Pointer(), Value: raw})
	}

	data, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}
	return jsonpatch.DecodePatch(data)
}

// ApplyPatch applies an RFC 6902 JSON Patch and returns the patched document.
// The receiver is left untouched when any operation fails.
func (d *Document) ApplyPatch(patch []byte) (*Document, error) {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, jsonerr.Argument("decode patch: %v", err)
	}

	out, err := p.Apply(d.Bytes())
	if err != nil {
		return nil, jsonerr.Argument("apply patch: %v", err)
	}

	root, err := value.Decode(out)
	if err != nil {
		return nil, err
	}
	if root.IsNull() {
		return nil, jsonerr.Argument("patch would replace the document with null")
	}
	return New(root), nil
}
