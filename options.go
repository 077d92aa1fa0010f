package jsontext

import (
	"log/slog"

	"github.com/jacoelho/jsontext/internal/query"
)

// Re-exported so embedders can configure a Field without internal imports.
type (
	ReturnMode  = query.ReturnMode
	OperatorSet = query.OperatorSet
	MatcherKind = query.MatcherKind
	TypeMap     = query.TypeMap
	ScalarKind  = query.ScalarKind
	TypedScalar = query.TypedScalar
	TypedObject = query.TypedObject
	TypedMember = query.TypedMember
)

const (
	Raw   = query.Raw
	JSON  = query.JSON
	Typed = query.Typed

	MatchInt  = query.MatchInt
	MatchStr  = query.MatchStr
	MatchPath = query.MatchPath
	MatchExpr = query.MatchExpr

	Integer = query.Integer
	Float   = query.Float
	Boolean = query.Boolean
	String  = query.String
)

// Postgres returns the default operator set: ->, ->> and #>.
func Postgres() OperatorSet {
	return query.Postgres()
}

type options struct {
	engine []query.Option
	mode   ReturnMode
	logger *slog.Logger
}

// Option configures a Field.
type Option func(*options)

func WithOperators(set OperatorSet) Option {
	return func(o *options) {
		o.engine = append(o.engine, query.WithOperators(set))
	}
}

// WithTypeMap sets the classifier applied to scalar leaves in Typed mode.
func WithTypeMap(types TypeMap) Option {
	return func(o *options) {
		o.engine = append(o.engine, query.WithTypeMap(types))
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
			o.engine = append(o.engine, query.WithLogger(logger))
		}
	}
}

// WithReturnMode sets the initial return mode; the default is Raw.
func WithReturnMode(mode ReturnMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}
