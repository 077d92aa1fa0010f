// Package value holds the JSON value tree used by the document store.
//
// A Value is a tagged union over null, booleans, numbers, strings, arrays and
// objects. Objects keep their members in insertion order so positional
// queries over object keys are stable. Numbers keep their literal text.
//
// Values are immutable: the With* helpers return modified copies that share
// untouched subtrees with the original.
package value

import (
	"encoding/json"
	"slices"
)

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Kind identifies the JSON type held by a Value.
type Kind uint8

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Member is a single object entry.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value. The zero Value is JSON null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string payload or number literal
	items   []Value
	members []Member
}

func NullValue() Value {
	return Value{}
}

func BoolValue(b bool) Value {
	return Value{kind: Bool, boolean: b}
}

// NumberValue keeps the literal as written; callers must pass a valid JSON number.
func NumberValue(n json.Number) Value {
	return Value{kind: Number, text: string(n)}
}

func StringValue(s string) Value {
	return Value{kind: String, text: s}
}

func ArrayValue(items ...Value) Value {
	return Value{kind: Array, items: items}
}

// ObjectValue builds an object; a repeated key keeps its first position and its last value.
func ObjectValue(members ...Member) Value {
	out := Value{kind: Object, members: make([]Member, 0, len(members))}
	for _, m := range members {
		if i := out.memberIndex(m.Key); i >= 0 {
			out.members[i].Value = m.Value
			continue
		}
		out.members = append(out.members, m)
	}
	return out
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == Null
}

func (v Value) IsContainer() bool {
	return v.kind == Array || v.kind == Object
}

func (v Value) Bool() bool {
	return v.boolean
}

// Str returns the string payload; it is empty for non-string values.
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.text
}

// Number returns the number literal; it is empty for non-number values.
func (v Value) Number() json.Number {
	if v.kind != Number {
		return ""
	}
	return json.Number(v.text)
}

// Len reports the number of children of a container, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	}
	return 0
}

// Items returns the array elements. The slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.items
}

// Members returns the object entries in order. The slice must not be modified.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.members
}

func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

func (v Value) Get(key string) (Value, bool) {
	i := v.memberIndex(key)
	if i < 0 {
		return Value{}, false
	}
	return v.members[i].Value, true
}

// Child resolves a single step. Name keys only address object members and
// index keys only address array elements.
func (v Value) Child(k Key) (Value, bool) {
	if k.IsIndex() {
		return v.Index(k.Index())
	}
	if v.kind != Object {
		return Value{}, false
	}
	return v.Get(k.Name())
}

// Children visits direct children in document order.
func (v Value) Children(yield func(Key, Value) bool) {
	switch v.kind {
	case Array:
		for i, item := range v.items {
			if !yield(IndexKey(i), item) {
				return
			}
		}
	case Object:
		for _, m := range v.members {
			if !yield(NameKey(m.Key), m.Value) {
				return
			}
		}
	}
}

// WithChild returns a copy of v where the child at k is replaced by child.
// It returns v unchanged when k does not address an existing child.
func (v Value) WithChild(k Key, child Value) Value {
	switch {
	case k.IsIndex() && v.kind == Array:
		i := k.Index()
		if i < 0 || i >= len(v.items) {
			return v
		}
		items := slices.Clone(v.items)
		items[i] = child
		return Value{kind: Array, items: items}
	case !k.IsIndex() && v.kind == Object:
		i := v.memberIndex(k.Name())
		if i < 0 {
			return v
		}
		members := slices.Clone(v.members)
		members[i].Value = child
		return Value{kind: Object, members: members}
	}
	return v
}

// At resolves a location from v.
func (v Value) At(loc Location) (Value, bool) {
	current := v
	for _, k := range loc {
		next, ok := current.Child(k)
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return current, true
}

// ReplaceAt returns a copy of v with the node at loc replaced. Missing
// locations leave v unchanged and report false.
func (v Value) ReplaceAt(loc Location, replacement Value) (Value, bool) {
	if len(loc) == 0 {
		return replacement, true
	}

	child, ok := v.Child(loc[0])
	if !ok {
		return v, false
	}

	updated, ok := child.ReplaceAt(loc[1:], replacement)
	if !ok {
		return v, false
	}
	return v.WithChild(loc[0], updated), true
}

func (v Value) memberIndex(key string) int {
	if v.kind != Object {
		return -1
	}
	for i := range v.members {
		if v.members[i].Key == key {
			return i
		}
	}
	return -1
}
