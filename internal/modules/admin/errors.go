package admin

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrDayExists    = errors.New("working day already exists")
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
