package value

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"

	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/number"
)

// FromAny converts a Go value into a Value. It accepts Value, nil, bool,
// string, json.Number, Go integers and floats, []any, map[string]any, and
// anything encoding/json can marshal. Map keys are emitted in sorted order.
func FromAny(v any) (Value, error) {
	switch current := v.(type) {
	case Value:
		return current, nil
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(current), nil
	case string:
		return StringValue(current), nil
	case json.Number:
		if _, err := current.Float64(); err != nil {
			return Value{}, jsonerr.Argument("invalid number literal %q", current)
		}
		return NumberValue(current), nil
	case float32, float64:
		f, _ := number.ToFloat64(current)
		lit, err := number.FromFloat64(f)
		if err != nil {
			return Value{}, jsonerr.Argument("%v", err)
		}
		return NumberValue(lit), nil
	case []any:
		items := make([]Value, 0, len(current))
		for _, item := range current {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, converted)
		}
		return ArrayValue(items...), nil
	case map[string]any:
		members := make([]Member, 0, len(current))
		for _, key := range slices.Sorted(maps.Keys(current)) {
			converted, err := FromAny(current[key])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: key, Value: converted})
		}
		return ObjectValue(members...), nil
	}

	if i, err := number.ToStrictInt(v); err == nil {
		return NumberValue(json.Number(strconv.Itoa(i))), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, jsonerr.Argument("unsupported value of type %T: %v", v, err)
	}
	return Decode(data)
}

// Plain projects v onto the types produced by encoding/json: map[string]any,
// []any, float64, string, bool and nil. Member order is lost. A number
// outside the float64 range is returned as its literal text.
func (v Value) Plain() any {
	switch v.kind {
	case Bool:
		return v.boolean
	case Number:
		f, ok := number.ToFloat64(json.Number(v.text))
		if !ok {
			return v.text
		}
		return f
	case String:
		return v.text
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Plain()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Plain()
		}
		return out
	}
	return nil
}

// Equal reports whether a and b hold the same JSON value. Object member
// order is ignored; numbers compare by value.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.boolean == b.boolean
	case String:
		return a.text == b.text
	case Number:
		if a.text == b.text {
			return true
		}
		fa, okA := number.ToFloat64(json.Number(a.text))
		fb, okB := number.ToFloat64(json.Number(b.text))
		return okA && okB && fa == fb
	case Array:
		return slices.EqualFunc(a.items, b.items, Equal)
	case Object:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}
