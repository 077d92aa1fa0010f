package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/stack"
)

// containerFrame tracks a container that is still being decoded.
type containerFrame struct {
	kind    Kind
	items   []Value
	members []Member
	seen    map[string]int // member positions, for duplicate keys
	needKey bool
	key     string
}

func (f *containerFrame) add(v Value) {
	if f.kind == Array {
		f.items = append(f.items, v)
		return
	}

	if i, ok := f.seen[f.key]; ok {
		f.members[i].Value = v
	} else {
		f.seen[f.key] = len(f.members)
		f.members = append(f.members, Member{Key: f.key, Value: v})
	}
	f.needKey = true
}

func (f *containerFrame) value() Value {
	if f.kind == Array {
		if f.items == nil {
			f.items = []Value{}
		}
		return Value{kind: Array, items: f.items}
	}
	if f.members == nil {
		f.members = []Member{}
	}
	return Value{kind: Object, members: f.members}
}

// Decode parses exactly one JSON value from data.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeTokens(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, jsonerr.Malformed("unexpected data after top-level value")
	}

	return root, nil
}

func decodeTokens(dec *json.Decoder) (Value, error) {
	containers := stack.NewWithCapacity[containerFrame](8)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return Value{}, jsonerr.Malformed("unexpected end of input")
		}
		if err != nil {
			return Value{}, jsonerr.Malformed("%v", err)
		}

		// In key position the decoder only yields a string or the closing '}'.
		if top := containers.PeekRef(); top != nil && top.kind == Object && top.needKey {
			if key, ok := tok.(string); ok {
				top.key = key
				top.needKey = false
				continue
			}
		}

		var done Value
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				containers.Push(containerFrame{kind: Object, needKey: true, seen: make(map[string]int)})
				continue
			case '[':
				containers.Push(containerFrame{kind: Array})
				continue
			case '}', ']':
				frame, ok := containers.Pop()
				if !ok {
					return Value{}, jsonerr.Malformed("unexpected delimiter %q", t)
				}
				done = frame.value()
			}
		case json.Number:
			done = NumberValue(t)
		case string:
			done = StringValue(t)
		case bool:
			done = BoolValue(t)
		case nil:
			done = NullValue()
		default:
			return Value{}, jsonerr.Malformed("unexpected token %v", tok)
		}

		parent := containers.PeekRef()
		if parent == nil {
			return done, nil
		}
		parent.add(done)
	}
}
