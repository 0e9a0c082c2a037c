// Package trajectory reads and writes simulation trajectories on disk.
package trajectory

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/okian/geoplot/internal/adapters/output"
	"github.com/okian/geoplot/internal/domain/model"
)

// Load reads the trajectory stored at path. The format is taken from the
// file extension; see Detect.
func Load(ctx context.Context, path string) (model.Trajectory, error) {
	format, comp, err := Detect(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trajectory: %w", err)
	}
	defer f.Close()

	traj, err := Decode(bufio.NewReader(f), format, comp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return traj, ctx.Err()
}

// Decode reads one trajectory from r.
func Decode(r io.Reader, format Format, comp Compression) (model.Trajectory, error) {
	switch comp {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %w", ErrDecode, err)
		}
		defer zr.Close()
		r = zr
	case CompressionZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrDecode, err)
		}
		defer zr.Close()
		r = zr
	}

	var traj model.Trajectory
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&traj)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&traj)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&traj)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, format, err)
	}
	return traj, nil
}

// Save writes traj to path atomically, in the format its extension names.
func Save(ctx context.Context, path string, traj model.Trajectory) error {
	format, comp, err := Detect(path)
	if err != nil {
		return err
	}
	_, err = output.WriteFile(ctx, path, func(w io.Writer) error {
		return Encode(w, traj, format, comp)
	})
	return err
}

// Encode writes traj to w.
func Encode(w io.Writer, traj model.Trajectory, format Format, comp Compression) error {
	var closer io.Closer
	switch comp {
	case CompressionGzip:
		zw := gzip.NewWriter(w)
		w, closer = zw, zw
	case CompressionZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("%w: zstd: %w", ErrEncode, err)
		}
		w, closer = zw, zw
	}

	var err error
	switch format {
	case FormatJSON:
		err = json.NewEncoder(w).Encode(traj)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(traj); err == nil {
			err = enc.Close()
		}
	case FormatMsgpack:
		err = msgpack.NewEncoder(w).Encode(traj)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return fmt.Errorf("%w: %s: %w", ErrEncode, format, err)
	}

	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("%w: close %s: %w", ErrEncode, comp, err)
		}
	}
	return nil
}
