package catalog

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrShopNotFound    = errors.New("shop not found")
	ErrBlogNotFound    = errors.New("blog not found")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
