package execute

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacoelho/jsontext/internal/config"
	"github.com/jacoelho/jsontext/internal/exit"
)

const cars = `{"chinese":"great wall","american":["buick","oldsmobile","ford"],"british":["vauxhall","morris"]}`

func newRunner(t *testing.T, args ...string) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cfg, result := config.Parse(append([]string{"jsontext"}, args...))
	if result != nil {
		t.Fatalf("config.Parse() exit result: %s", result.Message)
	}

	r, result := New(cfg)
	if result != nil {
		t.Fatalf("New() exit result: %s", result.Message)
	}

	var stdout, stderr bytes.Buffer
	r.SetInput(strings.NewReader(cars))
	r.SetOutput(&stdout)
	r.SetErrorOutput(&stderr)
	return r, &stdout, &stderr
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"str_operator", []string{"--", "->>", "british"}, "{\n  \"british\": [\n    \"vauxhall\",\n    \"morris\"\n  ]\n}\n"},
		{"int_operator", []string{"--", "->", "0"}, "{\n  \"chinese\": \"great wall\"\n}\n"},
		{"expression", []string{"$.american[1]"}, "[\n  \"oldsmobile\"\n]\n"},
		{"no_match", []string{"$.german"}, "[]\n"},
		{"last", []string{"-last"}, "{\n  \"1\": \"morris\"\n}\n"},
		{"yaml_output", []string{"-output", "yaml", "--", "#>", `{"british":"1"}`}, "- morris\n"},
		{"set", []string{"-set", `"lada"`, "$.american[2]"}, "{\n  \"chinese\": \"great wall\",\n  \"american\": [\n    \"buick\",\n    \"oldsmobile\",\n    \"lada\"\n  ],\n  \"british\": [\n    \"vauxhall\",\n    \"morris\"\n  ]\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, stdout, stderr := newRunner(t, tt.args...)
			if code := r.Run(context.Background()); code != exit.CodeSuccess {
				t.Fatalf("Run() = %d, stderr: %s", code, stderr.String())
			}
			if stdout.String() != tt.want {
				t.Errorf("Run() output = %q, want %q", stdout.String(), tt.want)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{"unknown_operator", []string{"<>", "1"}, exit.CodeUsage, "invalid operator"},
		{"bad_expression", []string{"$.1.a"}, exit.CodeUsage, "invalid expression"},
		{"missing_operand", []string{"--", "->"}, exit.CodeUsage, "invalid argument"},
		{"set_operator", []string{"-set", "1", "--", "->"}, exit.CodeUsage, "invalid expression"},
		{"set_bad_json", []string{"-set", "{", "$.chinese"}, exit.CodeUsage, "-set value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, stdout, stderr := newRunner(t, tt.args...)
			if code := r.Run(context.Background()); code != tt.wantCode {
				t.Fatalf("Run() = %d, want %d", code, tt.wantCode)
			}
			if stdout.Len() != 0 {
				t.Errorf("Run() wrote output on failure: %s", stdout.String())
			}
			if !strings.Contains(stderr.String(), tt.wantMsg) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantMsg)
			}
		})
	}
}

func TestRunMalformedDocument(t *testing.T) {
	t.Parallel()

	r, _, stderr := newRunner(t, "*")
	r.SetInput(strings.NewReader(`{"a":`))

	if code := r.Run(context.Background()); code != exit.CodeFailure {
		t.Fatalf("Run() = %d, want %d", code, exit.CodeFailure)
	}
	if !strings.Contains(stderr.String(), "malformed JSON") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunPatchFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	patchFile := filepath.Join(dir, "patch.json")
	if err := os.WriteFile(patchFile, []byte(`[{"op":"remove","path":"/american"},{"op":"remove","path":"/british"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	docFile := filepath.Join(dir, "cars.json")
	if err := os.WriteFile(docFile, []byte(cars), 0o644); err != nil {
		t.Fatal(err)
	}

	r, stdout, stderr := newRunner(t, "-file", docFile, "-patch", patchFile)
	if code := r.Run(context.Background()); code != exit.CodeSuccess {
		t.Fatalf("Run() = %d, stderr: %s", code, stderr.String())
	}
	if want := "{\n  \"chinese\": \"great wall\"\n}\n"; stdout.String() != want {
		t.Errorf("Run() output = %q, want %q", stdout.String(), want)
	}
}

func TestRunDebugLogs(t *testing.T) {
	t.Parallel()

	r, _, stderr := newRunner(t, "-debug", "$.chinese")
	if code := r.Run(context.Background()); code != exit.CodeSuccess {
		t.Fatalf("Run() = %d", code)
	}
	if !strings.Contains(stderr.String(), "level=DEBUG") || !strings.Contains(stderr.String(), "nodes=8") {
		t.Errorf("debug log = %q", stderr.String())
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	r, _, _ := newRunner(t, "*")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if code := r.Run(ctx); code != exit.CodeFailure {
		t.Errorf("Run() = %d, want %d", code, exit.CodeFailure)
	}
}

func TestRunYAMLInput(t *testing.T) {
	t.Parallel()

	r, stdout, stderr := newRunner(t, "-input", "yaml", "-output", "yaml", "--", "->>", "british")
	r.SetInput(strings.NewReader("chinese: great wall\nbritish:\n  - vauxhall\n  - morris\n"))

	if code := r.Run(context.Background()); code != exit.CodeSuccess {
		t.Fatalf("Run() = %d, stderr: %s", code, stderr.String())
	}
	if want := "british:\n- vauxhall\n- morris\n"; stdout.String() != want {
		t.Errorf("Run() output = %q, want %q", stdout.String(), want)
	}
}
