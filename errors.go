package jsontext

import "github.com/jacoelho/jsontext/internal/jsonerr"

// Error kinds returned by Field methods. Use errors.Is to classify.
var (
	ErrMalformedJSON             = jsonerr.ErrMalformedJSON
	ErrInvalidArgument           = jsonerr.ErrInvalidArgument
	ErrComplexOperandUnsupported = jsonerr.ErrComplexOperandUnsupported
	ErrInvalidOperator           = jsonerr.ErrInvalidOperator
	ErrInvalidExpression         = jsonerr.ErrInvalidExpression
)
