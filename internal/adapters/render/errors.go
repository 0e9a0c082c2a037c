package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrMissingValue = errors.New("page value missing")
	ErrTemplate     = errors.New("page template failed")
)
