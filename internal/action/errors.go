package action

import (
	"errors"
	"fmt"
)

// ErrUnknownFunction is returned by Decode when the invocation names a
// function none of the registered operations recognize.
var ErrUnknownFunction = errors.New("unknown function")

// ValidationError reports a missing or empty required parameter. It is
// detected at the boundary, before any side effect, and maps to a 400
// failure response.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
