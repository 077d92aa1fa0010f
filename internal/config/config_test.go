package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacoelho/jsontext/internal/exit"
	"github.com/jacoelho/jsontext/internal/output"
	"github.com/jacoelho/jsontext/internal/query"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	tempDir := t.TempDir()
	docFile := writeFile(t, tempDir, "cars.json", `["great wall","ford"]`)
	opsFile := writeFile(t, tempDir, "ops.yaml", "name: custom\noperators:\n  \"@>\": str\n")

	tests := []struct {
		name     string
		args     []string
		want     *Config
		wantCode int
		wantMsg  string
	}{
		{
			name: "operator_with_operand",
			args: []string{"jsontext", "-file", docFile, "--", "->", "5"},
			want: &Config{File: docFile, Selector: "->", Operand: "5", HasOperand: true, OperandType: OperandAuto, Input: InputJSON, Nth: -1},
		},
		{
			name: "expression_yaml_output",
			args: []string{"jsontext", "-output", "yaml", "$.cars[*]"},
			want: &Config{Selector: "$.cars[*]", OperandType: OperandAuto, Input: InputJSON, Nth: -1, Output: output.FormatYAML},
		},
		{
			name: "set_with_operators_file",
			args: []string{"jsontext", "-set", `"lada"`, "-operators", opsFile, "-debug", "$.[2]"},
			want: &Config{Selector: "$.[2]", Set: `"lada"`, OperandType: OperandAuto, Input: InputJSON, Nth: -1, OperatorsFile: opsFile, Debug: true},
		},
		{
			name: "nth_without_selector",
			args: []string{"jsontext", "-nth", "2"},
			want: &Config{OperandType: OperandAuto, Input: InputJSON, Nth: 2},
		},
		{
			name: "yaml_input",
			args: []string{"jsontext", "-input", "yaml", "-first"},
			want: &Config{Input: InputYAML, OperandType: OperandAuto, Nth: -1, First: true},
		},
		{
			name:     "unknown_input",
			args:     []string{"jsontext", "-input", "xml", "*"},
			wantCode: exit.CodeUsage,
			wantMsg:  "unknown input format",
		},
		{
			name:     "help",
			args:     []string{"jsontext", "-h"},
			wantCode: exit.CodeSuccess,
			wantMsg:  "Usage: jsontext",
		},
		{
			name:     "no_arguments",
			args:     []string{},
			wantCode: exit.CodeUsage,
			wantMsg:  ErrNoArguments.Error(),
		},
		{
			name:     "missing_selector",
			args:     []string{"jsontext", "-file", docFile},
			wantCode: exit.CodeUsage,
			wantMsg:  ErrNoSelector.Error(),
		},
		{
			name:     "too_many_arguments",
			args:     []string{"jsontext", "--", "->", "1", "2"},
			wantCode: exit.CodeUsage,
			wantMsg:  ErrTooManyArguments.Error(),
		},
		{
			name:     "conflicting_actions",
			args:     []string{"jsontext", "-first", "-last"},
			wantCode: exit.CodeUsage,
			wantMsg:  ErrConflictingAction.Error(),
		},
		{
			name:     "unknown_output",
			args:     []string{"jsontext", "-output", "toml", "*"},
			wantCode: exit.CodeUsage,
			wantMsg:  "unknown output format",
		},
		{
			name:     "missing_file",
			args:     []string{"jsontext", "-file", filepath.Join(tempDir, "nope.json"), "*"},
			wantCode: exit.CodeUsage,
			wantMsg:  "not found",
		},
		{
			name:     "bad_operand_type",
			args:     []string{"jsontext", "-operand-type", "float", "--", "->", "1"},
			wantCode: exit.CodeUsage,
			wantMsg:  "unknown operand type",
		},
		{
			name:     "undefined_flag",
			args:     []string{"jsontext", "->", "1"},
			wantCode: exit.CodeUsage,
			wantMsg:  "failed to parse arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, result := Parse(tt.args)

			if tt.want == nil {
				if result == nil {
					t.Fatalf("Parse() expected exit result, got config %+v", cfg)
				}
				if result.ExitCode != tt.wantCode {
					t.Errorf("Parse() exit code = %d, want %d", result.ExitCode, tt.wantCode)
				}
				if !strings.Contains(result.Message, tt.wantMsg) {
					t.Errorf("Parse() message = %q, want it to contain %q", result.Message, tt.wantMsg)
				}
				return
			}

			if result != nil {
				t.Fatalf("Parse() unexpected exit result: %s", result.Message)
			}
			if *cfg != *tt.want {
				t.Errorf("Parse() = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestAction(t *testing.T) {
	tests := []struct {
		cfg  Config
		want Action
	}{
		{Config{Selector: "*", Nth: -1}, ActionQuery},
		{Config{Set: "1", Nth: -1}, ActionSet},
		{Config{Patch: "p.json", Nth: -1}, ActionPatch},
		{Config{First: true, Nth: -1}, ActionFirst},
		{Config{Last: true, Nth: -1}, ActionLast},
		{Config{Nth: 0}, ActionNth},
	}

	for _, tt := range tests {
		if got := tt.cfg.Action(); got != tt.want {
			t.Errorf("Action(%+v) = %d, want %d", tt.cfg, got, tt.want)
		}
	}
}

func TestTypedOperand(t *testing.T) {
	tests := []struct {
		operand string
		typ     OperandType
		want    any
		wantErr bool
	}{
		{"5", OperandAuto, 5, false},
		{"-1", OperandAuto, -1, false},
		{"british", OperandAuto, "british", false},
		{`{"a":"b"}`, OperandAuto, `{"a":"b"}`, false},
		{"5", OperandString, "5", false},
		{"5", OperandInt, 5, false},
		{"five", OperandInt, nil, true},
	}

	for _, tt := range tests {
		cfg := Config{Operand: tt.operand, OperandType: tt.typ}
		got, err := cfg.TypedOperand()
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidOperand) {
				t.Errorf("TypedOperand(%q, %s) error = %v, want ErrInvalidOperand", tt.operand, tt.typ, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("TypedOperand(%q, %s) = %#v, %v, want %#v", tt.operand, tt.typ, got, err, tt.want)
		}
	}
}

func TestLoadOperatorSet(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, tempDir, "postgres.yaml", "name: postgres\noperators:\n  \"->\": int\n  \"->>\": str\n  \"#>\": path\n")

		set, err := LoadOperatorSet(path)
		if err != nil {
			t.Fatalf("LoadOperatorSet() error = %v", err)
		}
		want := query.Postgres()
		if len(set) != len(want) {
			t.Fatalf("LoadOperatorSet() = %v, want %v", set, want)
		}
		for token, kind := range want {
			if set[token] != kind {
				t.Errorf("operator %q = %s, want %s", token, set[token], kind)
			}
		}
	})

	errorTests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown_kind", "operators:\n  \"~\": regex\n", "unknown matcher kind"},
		{"empty", "name: nothing\n", "no operators defined"},
		{"unknown_field", "name: x\nops:\n  a: int\n", "decode YAML"},
		{"expression_token", "operators:\n  \"$.a\": str\n", "path expression"},
	}

	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tempDir, tt.name+".yaml", tt.content)
			_, err := LoadOperatorSet(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("LoadOperatorSet() error = %v, want it to contain %q", err, tt.wantMsg)
			}
		})
	}

	if _, err := LoadOperatorSet(filepath.Join(tempDir, "missing.yaml")); err == nil {
		t.Error("LoadOperatorSet(missing) expected error")
	}
}

func TestOperatorsDefault(t *testing.T) {
	cfg := Config{}
	set, err := cfg.Operators()
	if err != nil {
		t.Fatalf("Operators() error = %v", err)
	}
	if kind, ok := set.Lookup("->>"); !ok || kind != query.MatchStr {
		t.Errorf("Operators() lookup ->> = %s, %v", kind, ok)
	}
}
