// Package output writes render artifacts to disk atomically.
package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	filePermission      = 0o644
	directoryPermission = 0o750
)

// countingWriter tracks how many bytes reached the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteFile streams fn's output into a temporary file next to path and renames
// it over path once fn, the flush and the sync all succeed. On any failure the
// temporary file is removed and path is left untouched. It returns the number
// of bytes written.
func WriteFile(ctx context.Context, path string, fn func(w io.Writer) error) (written int64, err error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)
	cw := &countingWriter{w: bw}
	if err = fn(cw); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err = bw.Flush(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = tmp.Sync(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = tmp.Chmod(filePermission); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return cw.n, nil
}
