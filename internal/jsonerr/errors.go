// Package jsonerr defines the error sentinels shared by the document store, the
// expression compiler, the matchers and the query façade.
//
// Callers classify failures with errors.Is. Every error returned by the
// engine wraps exactly one of the kinds below; ErrComplexOperandUnsupported
// additionally wraps ErrInvalidArgument.
package jsonerr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedJSON indicates text that does not decode to a single JSON value.
	ErrMalformedJSON = errors.New("malformed JSON")

	// ErrInvalidArgument indicates an operand whose type or shape does not fit the operator in use.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrComplexOperandUnsupported indicates a path operand with more than one key/value pair.
	ErrComplexOperandUnsupported = fmt.Errorf("%w: complex operands unsupported", ErrInvalidArgument)

	// ErrInvalidOperator indicates a selector token missing from the active operator set.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidExpression indicates a selector that fails the path expression grammar.
	ErrInvalidExpression = errors.New("invalid expression")
)

// Malformed wraps a message as ErrMalformedJSON.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedJSON, fmt.Sprintf(format, args...))
}

// Argument wraps a message as ErrInvalidArgument.
func Argument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Operator wraps a message as ErrInvalidOperator.
func Operator(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperator, fmt.Sprintf(format, args...))
}

// Expression wraps a message as ErrInvalidExpression.
func Expression(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidExpression, fmt.Sprintf(format, args...))
}
