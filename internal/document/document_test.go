package document

import (
	"errors"
	"math"
	"testing"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/jacoelho/jsontext/internal/jsonerr"
	"github.com/jacoelho/jsontext/internal/value"
)

const carsJSON = `{"chinese":true,"american":["buick","oldsmobile"],"british":["vauxhall","morris"]}`

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	d, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	return d
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"empty_string", "", false},
		{"empty_array", "[]", false},
		{"object", carsJSON, false},
		{"scalar_root", `"hello"`, false},
		{"null_literal", "null", true},
		{"truncated", `{"a":`, true},
		{"trailing_data", `[1] [2]`, true},
		{"bare_word", "hello", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.text)
			if tt.wantErr {
				if !errors.Is(err, jsonerr.ErrMalformedJSON) {
					t.Fatalf("Parse(%q) error = %v, want ErrMalformedJSON", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.text, err)
			}
		})
	}
}

func TestEmptyTextIsEmptyArray(t *testing.T) {
	t.Parallel()

	d := mustParse(t, "")
	if d.Root().Kind() != value.Array || !d.IsEmpty() || d.Len() != 0 {
		t.Fatalf("Parse(\"\") root = %s, want empty array", d.Root())
	}
	if d.Text() != "" {
		t.Errorf("Text() = %q, want empty", d.Text())
	}
}

func TestValidityPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		validJSON bool
		validDB   bool
	}{
		{"", false, true},
		{"   ", false, false},
		{"[]", true, true},
		{`{"a":1}`, true, true},
		{"null", false, false},
		{"{", false, false},
	}

	for _, tt := range tests {
		if got := IsValidJSON(tt.text); got != tt.validJSON {
			t.Errorf("IsValidJSON(%q) = %v, want %v", tt.text, got, tt.validJSON)
		}
		if got := IsValidDBValue(tt.text); got != tt.validDB {
			t.Errorf("IsValidDBValue(%q) = %v, want %v", tt.text, got, tt.validDB)
		}
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	d := mustParse(t, carsJSON)

	var paths []string
	for n := range d.Flatten() {
		paths = append(paths, n.Path())
	}

	want := []string{
		"$.chinese",
		"$.american", "$.american[0]", "$.american[1]",
		"$.british", "$.british[0]", "$.british[1]",
	}
	if len(paths) != len(want) {
		t.Fatalf("Flatten() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Flatten()[%d] = %s, want %s", i, paths[i], want[i])
		}
	}
	if d.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", d.Len(), len(want))
	}

	// restartable
	count := 0
	for range d.Flatten() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("early break yielded %d nodes", count)
	}
}

func TestGetAtPath(t *testing.T) {
	t.Parallel()

	d := mustParse(t, carsJSON)

	nodes, err := d.GetAtPath("$.british[*]")
	if err != nil {
		t.Fatalf("GetAtPath() error = %v", err)
	}
	if len(nodes) != 2 || nodes[1].Value.Str() != "morris" {
		t.Fatalf("GetAtPath() = %+v", nodes)
	}

	if _, err := d.GetAtPath("->"); !errors.Is(err, jsonerr.ErrInvalidExpression) {
		t.Errorf("GetAtPath(->) error = %v, want ErrInvalidExpression", err)
	}
}

func TestSetAtPath(t *testing.T) {
	t.Parallel()

	t.Run("replaces_and_reports_patch", func(t *testing.T) {
		t.Parallel()

		d := mustParse(t, `["great wall","ford","trabant","oldsmobile"]`)
		updated, changes, err := d.SetAtPath("$.[2]", "lada")
		if err != nil {
			t.Fatalf("SetAtPath() error = %v", err)
		}
		if got := updated.Text(); got != `["great wall","ford","lada","oldsmobile"]` {
			t.Fatalf("Text() = %s", got)
		}
		if d.Text() != `["great wall","ford","trabant","oldsmobile"]` {
			t.Fatalf("receiver modified: %s", d.Text())
		}
		if changes.Empty() || changes.Replaced[0].Value.Str() != "trabant" {
			t.Fatalf("Changes = %+v", changes)
		}

		patched, err := changes.Patch.Apply(d.Bytes())
		if err != nil {
			t.Fatalf("Patch.Apply() error = %v", err)
		}
		if !jsonpatch.Equal(patched, updated.Bytes()) {
			t.Errorf("patch result %s, want %s", patched, updated.Bytes())
		}
	})

	t.Run("unsigned_above_int64", func(t *testing.T) {
		t.Parallel()

		d := mustParse(t, `[1,2]`)
		updated, _, err := d.SetAtPath("$.[0]", uint(math.MaxUint64))
		if err != nil {
			t.Fatalf("SetAtPath() error = %v", err)
		}
		if got := updated.Text(); got != `[18446744073709551615,2]` {
			t.Errorf("Text() = %s, want [18446744073709551615,2]", got)
		}
	})

	t.Run("container_value", func(t *testing.T) {
		t.Parallel()

		d := mustParse(t, carsJSON)
		updated, _, err := d.SetAtPath("$.chinese", map[string]any{"brand": "great wall"})
		if err != nil {
			t.Fatalf("SetAtPath() error = %v", err)
		}
		want := `{"chinese":{"brand":"great wall"},"american":["buick","oldsmobile"],"british":["vauxhall","morris"]}`
		if got := updated.Text(); got != want {
			t.Errorf("Text() = %s, want %s", got, want)
		}
	})

	t.Run("no_match_is_noop", func(t *testing.T) {
		t.Parallel()

		d := mustParse(t, carsJSON)
		updated, changes, err := d.SetAtPath("$.german", "vw")
		if err != nil {
			t.Fatalf("SetAtPath() error = %v", err)
		}
		if updated != d || !changes.Empty() {
			t.Errorf("no-match SetAtPath() changed the document")
		}
	})

	t.Run("rejects_operator", func(t *testing.T) {
		t.Parallel()

		d := mustParse(t, carsJSON)
		if _, _, err := d.SetAtPath("->", "x"); !errors.Is(err, jsonerr.ErrInvalidExpression) {
			t.Errorf("SetAtPath(->) error = %v, want ErrInvalidExpression", err)
		}
		if _, _, err := d.SetAtPath("$[0]", "x"); !errors.Is(err, jsonerr.ErrInvalidExpression) {
			t.Errorf("SetAtPath($[0]) error = %v, want ErrInvalidExpression", err)
		}
	})

	t.Run("rejects_unencodable_value", func(t *testing.T) {
		t.Parallel()

		d := mustParse(t, carsJSON)
		if _, _, err := d.SetAtPath("$.chinese", make(chan int)); !errors.Is(err, jsonerr.ErrInvalidArgument) {
			t.Errorf("SetAtPath(chan) error = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestApplyPatch(t *testing.T) {
	t.Parallel()

	d := mustParse(t, carsJSON)

	updated, err := d.ApplyPatch([]byte(`[{"op":"add","path":"/american/-","value":"ford"}]`))
	if err != nil {
		t.Fatalf("ApplyPatch() error = %v", err)
	}
	nodes, _ := updated.GetAtPath("$.american[-1]")
	if len(nodes) != 1 || nodes[0].Value.Str() != "ford" {
		t.Errorf("after patch $.american[-1] = %+v", nodes)
	}

	if _, err := d.ApplyPatch([]byte(`[{"op":"remove","path":"/german"}]`)); !errors.Is(err, jsonerr.ErrInvalidArgument) {
		t.Errorf("ApplyPatch(missing path) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := d.ApplyPatch([]byte(`not a patch`)); !errors.Is(err, jsonerr.ErrInvalidArgument) {
		t.Errorf("ApplyPatch(garbage) error = %v, want ErrInvalidArgument", err)
	}
}
