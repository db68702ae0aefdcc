package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNoInput           = errors.New("no input provided")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
