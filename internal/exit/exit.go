package exit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/jsontext/internal/jsonerr"
)

// Exit codes. Usage errors are told apart from failed queries so scripts
// can distinguish a bad invocation from a bad document.
const (
	CodeSuccess = 0
	CodeFailure = 1
	CodeUsage   = 2
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeSuccess,
		Message:  message,
	}
}

func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  message,
	}
}

func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// Usagef reports a bad invocation.
func Usagef(format string, a ...any) *Result {
	r := Errorf(format, a...)
	r.ExitCode = CodeUsage
	return r
}

// FromError maps engine errors to a result. Selector and operand mistakes
// are usage errors; everything else is a failure.
func FromError(err error) *Result {
	msg := fmt.Sprintf("Error: %v\n", err)
	switch {
	case errors.Is(err, jsonerr.ErrInvalidOperator),
		errors.Is(err, jsonerr.ErrInvalidExpression),
		errors.Is(err, jsonerr.ErrInvalidArgument):
		return Usagef("%s", msg)
	default:
		return Error(msg)
	}
}
