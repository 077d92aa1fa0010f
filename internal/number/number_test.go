package number

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToFloat64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		ok    bool
		want  float64
	}{
		{name: "int", input: int(10), ok: true, want: 10},
		{name: "uint16", input: uint16(3), ok: true, want: 3},
		{name: "float64", input: 12.5, ok: true, want: 12.5},
		{name: "json_number", input: json.Number("42"), ok: true, want: 42},
		{name: "non_numeric", input: "x", ok: false, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.input)
			if ok != tt.ok {
				t.Fatalf("ToFloat64(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("ToFloat64(%v) value = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToStrictInt(t *testing.T) {
	t.Parallel()

	if got, err := ToStrictInt(int64(7)); err != nil || got != 7 {
		t.Fatalf("ToStrictInt(int64(7)) = (%d, %v), want (7, nil)", got, err)
	}

	for _, input := range []any{4.2, "5", json.Number("5"), uint64(math.MaxUint64), uint(math.MaxUint64)} {
		if _, err := ToStrictInt(input); err == nil {
			t.Fatalf("ToStrictInt(%#v) expected error", input)
		}
	}
}

func TestIsIntegerLiteral(t *testing.T) {
	t.Parallel()

	tests := map[json.Number]bool{
		"101":                  true,
		"-3":                   true,
		"44.6":                 false,
		"1e3":                  false,
		"99999999999999999999": false,
	}

	for lit, want := range tests {
		if got := IsIntegerLiteral(lit); got != want {
			t.Errorf("IsIntegerLiteral(%s) = %v, want %v", lit, got, want)
		}
	}
}

func TestFromFloat64(t *testing.T) {
	t.Parallel()

	got, err := FromFloat64(99.99)
	if err != nil || got != "99.99" {
		t.Fatalf("FromFloat64(99.99) = (%q, %v), want (99.99, nil)", got, err)
	}

	if _, err := FromFloat64(math.NaN()); err == nil {
		t.Fatal("FromFloat64(NaN) expected error")
	}
}
