package schedule

import "errors"

var ErrTimeNotFound = errors.New("working time not found")

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
