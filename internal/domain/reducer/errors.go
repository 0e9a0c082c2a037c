package reducer

import "errors"

// Sentinel error kinds for trajectory reduction.
var (
	ErrEmptyEpisode   = errors.New("episode has no steps")
	ErrMalformedField = errors.New("malformed field value")
)
