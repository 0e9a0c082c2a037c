package config

import (
	"errors"
)

// Sentinel error kinds for this package. ErrInvalidConfig marks a missing or
// invalid render option; ErrLoadConfig marks an unreadable file or env value.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
