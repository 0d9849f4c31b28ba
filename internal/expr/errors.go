package expr

import (
	"fmt"

	"github.com/pkg/errors"
)

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Offset int
	Msg    string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

func syntaxErrorf(offset int, format string, args ...any) error {
	return errors.WithStack(&SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)})
}

// UnboundError reports a variable with no value bound to it.
type UnboundError struct {
	Name   string
	Offset int
}

// Error implements the error interface.
func (e *UnboundError) Error() string {
	return fmt.Sprintf("variable %q at offset %d is not bound", e.Name, e.Offset)
}
