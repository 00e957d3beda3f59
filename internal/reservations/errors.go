package reservations

import "errors"

// ValidationError is a request-time input problem. The message is
// shown to the customer as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError means the requested tables cannot be held for the
// slot. The message is shown to the customer as-is.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// AsValidation reports whether err is a ValidationError.
func AsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsConflict reports whether err is a ConflictError.
func AsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
