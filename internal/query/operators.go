package query

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jacoelho/jsontext/internal/jsonpath"
)

// MatcherKind names the matcher an operator token dispatches to.
type MatcherKind int

const (
	MatchInt MatcherKind = iota + 1
	MatchStr
	MatchPath
	MatchExpr
)

var kindNames = map[MatcherKind]string{
	MatchInt:  "int",
	MatchStr:  "str",
	MatchPath: "path",
	MatchExpr: "expr",
}

func (k MatcherKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("MatcherKind(%d)", int(k))
}

// ParseMatcherKind parses the names used in operator-set files.
func ParseMatcherKind(s string) (MatcherKind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown matcher kind %q", s)
}

// OperatorSet maps operator tokens to matchers.
type OperatorSet map[string]MatcherKind

// Postgres returns the operators modelled on PostgreSQL's JSON operators.
func Postgres() OperatorSet {
	return OperatorSet{
		"->":  MatchInt,
		"->>": MatchStr,
		"#>":  MatchPath,
	}
}

// NewOperatorSet builds a set from token to kind-name pairs.
func NewOperatorSet(pairs map[string]string) (OperatorSet, error) {
	set := make(OperatorSet, len(pairs))
	for token, name := range pairs {
		if strings.TrimSpace(token) == "" {
			return nil, fmt.Errorf("operator token cannot be empty")
		}
		if jsonpath.IsExpression(token) {
			return nil, fmt.Errorf("operator %q would be read as a path expression", token)
		}
		kind, err := ParseMatcherKind(name)
		if err != nil {
			return nil, fmt.Errorf("operator %q: %w", token, err)
		}
		set[token] = kind
	}
	return set, nil
}

func (s OperatorSet) Lookup(token string) (MatcherKind, bool) {
	kind, ok := s[token]
	return kind, ok
}

// Tokens returns the operator tokens in sorted order.
func (s OperatorSet) Tokens() []string {
	return slices.Sorted(maps.Keys(s))
}
