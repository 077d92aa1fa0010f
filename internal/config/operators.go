package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jsontext/internal/query"
)

type operatorFile struct {
	Name      string            `yaml:"name"`
	Operators map[string]string `yaml:"operators"`
}

// LoadOperatorSet reads a YAML operator set:
//
//	name: postgres
//	operators:
//	  "->": int
//	  "->>": str
//	  "#>": path
func LoadOperatorSet(filename string) (query.OperatorSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read operator set %s: %w", filename, err)
	}

	set, err := DecodeOperatorSet(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("operator set %s: %w", filename, err)
	}
	return set, nil
}

// DecodeOperatorSet decodes an operator set document from r.
func DecodeOperatorSet(r io.Reader) (query.OperatorSet, error) {
	var f operatorFile
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}

	if len(f.Operators) == 0 {
		return nil, fmt.Errorf("no operators defined")
	}

	return query.NewOperatorSet(f.Operators)
}
