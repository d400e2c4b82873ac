package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidQuery  = errors.New("invalid query")
	ErrInvalidConfig = errors.New("invalid configuration")
)
