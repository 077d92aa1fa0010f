package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/matcher"
	"github.com/jacoelho/jsontext/internal/number"
	"github.com/jacoelho/jsontext/internal/value"
)

// ReturnMode selects how results are handed back to callers.
type ReturnMode int

const (
	// Raw returns the matcher.Result itself.
	Raw ReturnMode = iota
	// JSON returns the result serialized as a string.
	JSON
	// Typed returns the result with every scalar leaf classified.
	Typed
)

func (m ReturnMode) String() string {
	switch m {
	case Raw:
		return "raw"
	case JSON:
		return "json"
	case Typed:
		return "typed"
	default:
		return fmt.Sprintf("ReturnMode(%d)", int(m))
	}
}

// ParseReturnMode accepts raw (alias array), json and typed.
func ParseReturnMode(s string) (ReturnMode, error) {
	switch strings.ToLower(s) {
	case "raw", "array":
		return Raw, nil
	case "json":
		return JSON, nil
	case "typed":
		return Typed, nil
	default:
		return 0, jsonerr.Argument("unknown return mode %q", s)
	}
}

// ScalarKind classifies a scalar leaf for Typed rendering.
type ScalarKind int

const (
	Integer ScalarKind = iota + 1
	Float
	Boolean
	String
)

func (k ScalarKind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	case String:
		return "String"
	default:
		return fmt.Sprintf("ScalarKind(%d)", int(k))
	}
}

// TypedScalar is the default wrapper for classified leaves.
type TypedScalar struct {
	Kind  ScalarKind
	Value any
}

// TypeMap converts a classified leaf into the caller's representation.
// Integer leaves arrive as int64, Float as float64, Boolean as bool and
// String as string. Kinds missing from the map pass through unchanged.
type TypeMap map[ScalarKind]func(v any) any

// DefaultTypeMap wraps every leaf in a TypedScalar.
func DefaultTypeMap() TypeMap {
	wrap := func(k ScalarKind) func(any) any {
		return func(v any) any { return TypedScalar{Kind: k, Value: v} }
	}
	return TypeMap{
		Integer: wrap(Integer),
		Float:   wrap(Float),
		Boolean: wrap(Boolean),
		String:  wrap(String),
	}
}

// TypedMember is one member of a TypedObject.
type TypedMember struct {
	Key   string
	Value any
}

// TypedObject is an object rendered in Typed mode; member order is kept.
type TypedObject []TypedMember

// Render converts a result according to mode. Raw yields matcher.Result,
// JSON a string and Typed either []any (list results) or TypedObject.
func (e *Engine) Render(result matcher.Result, mode ReturnMode) (any, error) {
	switch mode {
	case Raw:
		return result, nil
	case JSON:
		return result.String(), nil
	case Typed:
		return e.typedResult(result), nil
	default:
		return nil, jsonerr.Argument("unknown return mode %s", mode)
	}
}

func (e *Engine) typedResult(result matcher.Result) any {
	entries := result.Entries()
	if result.IsList() {
		out := make([]any, 0, len(entries))
		for _, entry := range entries {
			out = append(out, e.typed(entry.Value))
		}
		return out
	}

	out := make(TypedObject, 0, len(entries))
	for _, entry := range entries {
		out = append(out, TypedMember{Key: entry.Key.String(), Value: e.typed(entry.Value)})
	}
	return out
}

// Typed classifies every scalar leaf of v. Nulls stay nil.
func (e *Engine) Typed(v value.Value) any {
	return e.typed(v)
}

func (e *Engine) typed(v value.Value) any {
	switch v.Kind() {
	case value.Null:
		return nil
	case value.Bool:
		return e.classify(Boolean, v.Bool())
	case value.String:
		return e.classify(String, v.Str())
	case value.Number:
		lit := v.Number()
		if number.IsIntegerLiteral(lit) {
			i, _ := strconv.ParseInt(lit.String(), 10, 64)
			return e.classify(Integer, i)
		}
		f, ok := number.ToFloat64(lit)
		if !ok {
			return e.classify(String, lit.String())
		}
		return e.classify(Float, f)
	case value.Array:
		out := make([]any, 0, v.Len())
		for _, item := range v.Items() {
			out = append(out, e.typed(item))
		}
		return out
	default:
		out := make(TypedObject, 0, v.Len())
		for _, m := range v.Members() {
			out = append(out, TypedMember{Key: m.Key, Value: e.typed(m.Value)})
		}
		return out
	}
}

func (e *Engine) classify(kind ScalarKind, v any) any {
	if fn, ok := e.types[kind]; ok && fn != nil {
		return fn(v)
	}
	return v
}
