package favorite

import "errors"

var (
	ErrServiceNotFound = errors.New("Service not found")
	ErrShopNotFound    = errors.New("Shop not found")
)
