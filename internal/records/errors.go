package records

import (
	"errors"
	"fmt"
)

// ValidationError marks a business-rule or candidate-shape violation. The
// message names the violated rule and is shown to callers verbatim, so it is
// never generic. I/O failures are plain wrapped errors, not ValidationErrors.
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
