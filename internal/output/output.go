// Package output prints query results and documents for the command line.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jsontext/internal/matcher"
	"github.com/jacoelho/jsontext/internal/number"
	"github.com/jacoelho/jsontext/internal/value"
)

// Format represents the output format.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown output format %q", s)
	}
}

// WriteResult prints a match result. List results print as a sequence and
// anything else as a mapping keyed by the entry keys.
func WriteResult(w io.Writer, format Format, result matcher.Result) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, resultYAML(result))
	default:
		return writeJSON(w, result.AppendJSON(nil))
	}
}

// WriteValue prints a single value, typically a whole document.
func WriteValue(w io.Writer, format Format, v value.Value) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, ToYAML(v))
	default:
		return writeJSON(w, v.AppendJSON(nil))
	}
}

func writeJSON(w io.Writer, compact []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return fmt.Errorf("indent JSON: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func writeYAML(w io.Writer, v any) error {
	payload, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	_, err = w.Write(payload)
	return err
}

func resultYAML(result matcher.Result) any {
	if result.IsList() {
		out := make([]any, 0, result.Len())
		for _, v := range result.Values() {
			out = append(out, ToYAML(v))
		}
		return out
	}

	out := make(yaml.MapSlice, 0, result.Len())
	for _, e := range result.Entries() {
		out = append(out, yaml.MapItem{Key: e.Key.String(), Value: ToYAML(e.Value)})
	}
	return out
}

// ToYAML converts v for the YAML encoder. Objects become yaml.MapSlice so
// member order survives; integer literals stay integers.
func ToYAML(v value.Value) any {
	switch v.Kind() {
	case value.Null:
		return nil
	case value.Bool:
		return v.Bool()
	case value.String:
		return v.Str()
	case value.Number:
		lit := v.Number()
		if number.IsIntegerLiteral(lit) {
			i, _ := strconv.ParseInt(lit.String(), 10, 64)
			return i
		}
		f, _ := number.ToFloat64(lit)
		return f
	case value.Array:
		out := make([]any, 0, v.Len())
		for _, item := range v.Items() {
			out = append(out, ToYAML(item))
		}
		return out
	default:
		out := make(yaml.MapSlice, 0, v.Len())
		for _, m := range v.Members() {
			out = append(out, yaml.MapItem{Key: m.Key, Value: ToYAML(m.Value)})
		}
		return out
	}
}
