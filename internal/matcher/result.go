package matcher

import (
	"encoding/json"

	"github.com/jacoelho/jsontext/internal/value"
)

// Entry is one matched node.
type Entry struct {
	Key   value.Key
	Path  string
	Value value.Value
}

// Result is an ordered list of matches. The zero Result means "no match".
type Result struct {
	entries []Entry
}

// NewResult builds a Result from entries, keeping their order.
func NewResult(entries ...Entry) Result {
	return Result{entries: entries}
}

func fromNode(n value.Node) Entry {
	return Entry{Key: n.Key(), Path: n.Path(), Value: n.Value}
}

func (r Result) Len() int {
	return len(r.entries)
}

func (r Result) Empty() bool {
	return len(r.entries) == 0
}

// Entries returns a copy of the matched entries.
func (r Result) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Single returns the only entry when the result has exactly one.
func (r Result) Single() (Entry, bool) {
	if len(r.entries) != 1 {
		return Entry{}, false
	}
	return r.entries[0], true
}

// Values returns the matched values in order.
func (r Result) Values() []value.Value {
	out := make([]value.Value, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Value)
	}
	return out
}

// IsList reports whether the entry keys are exactly the indices 0..n-1.
func (r Result) IsList() bool {
	for i, e := range r.entries {
		if !e.Key.IsIndex() || e.Key.Index() != i {
			return false
		}
	}
	return true
}

// AppendJSON renders the result. A list renders as an array, anything else
// as an object keyed by the entry keys; an empty result renders as [].
func (r Result) AppendJSON(dst []byte) []byte {
	if r.IsList() {
		dst = append(dst, '[')
		for i, e := range r.entries {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.Value.AppendJSON(dst)
		}
		return append(dst, ']')
	}

	dst = append(dst, '{')
	for i, e := range r.entries {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = value.StringValue(e.Key.String()).AppendJSON(dst)
		dst = append(dst, ':')
		dst = e.Value.AppendJSON(dst)
	}
	return append(dst, '}')
}

func (r Result) MarshalJSON() ([]byte, error) {
	return r.AppendJSON(nil), nil
}

func (r Result) String() string {
	return string(r.AppendJSON(nil))
}

var _ json.Marshaler = Result{}
