package pipeline

import "errors"

// ValidationError marks failures the client can correct. The HTTP layer
// maps these to 400; everything else is treated as an upstream failure and
// mapped to a generic 500.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
