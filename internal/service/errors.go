package service

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when a stored record does not exist
	ErrNotFound = errors.New("not found")
	// ErrLimitExceeded is returned when an expansion would produce more
	// cells than the configured maximum
	ErrLimitExceeded = errors.New("cell limit exceeded")
)
