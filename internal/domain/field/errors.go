package field

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrLookup     = errors.New("field lookup failed")
	ErrNotNumeric = errors.New("field value is not numeric")
)

var (
	errMissingKey     = errors.New("key not found")
	errOutOfRange     = errors.New("index out of range")
	errNotTraversable = errors.New("value is not traversable")
)
