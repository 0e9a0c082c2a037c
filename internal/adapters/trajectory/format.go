package trajectory

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a trajectory serialization.
type Format string

// Supported serializations.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Compression wraps a serialized trajectory.
type Compression string

// Supported compressions.
const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

var (
	formatsByExt = map[string]Format{
		".json":    FormatJSON,
		".yaml":    FormatYAML,
		".yml":     FormatYAML,
		".msgpack": FormatMsgpack,
		".mpk":     FormatMsgpack,
	}
	compressionsByExt = map[string]Compression{
		".gz":  CompressionGzip,
		".zst": CompressionZstd,
	}
)

// Detect infers the format and compression of path from its extensions, for
// example "run.msgpack.zst" is zstd-compressed msgpack.
func Detect(path string) (Format, Compression, error) {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)

	comp := CompressionNone
	if c, ok := compressionsByExt[ext]; ok {
		comp = c
		name = strings.TrimSuffix(name, ext)
		ext = filepath.Ext(name)
	}

	format, ok := formatsByExt[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
	}
	return format, comp, nil
}
