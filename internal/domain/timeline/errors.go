package timeline

import "errors"

// Sentinel error kinds for timestamp generation.
var (
	ErrInvalidStep  = errors.New("step interval must be positive")
	ErrInvalidCount = errors.New("timestamp count must not be negative")
)
