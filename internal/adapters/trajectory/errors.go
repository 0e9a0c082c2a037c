package trajectory

import "errors"

// Sentinel errors returned by Load and Save.
var (
	ErrUnsupportedFormat = errors.New("unsupported trajectory format")
	ErrDecode            = errors.New("decode trajectory")
	ErrEncode            = errors.New("encode trajectory")
)
