package errors

import "fmt"

var (
	// ErrRequired will be used when a required value is missing.
	ErrRequired = fmt.Errorf("is required")
	// ErrNotFound will be used when a resource is missing.
	ErrNotFound = fmt.Errorf("resource not found")
	// ErrInvalidRange will be used when a requested date range is unknown.
	ErrInvalidRange = fmt.Errorf("invalid date range")
)
