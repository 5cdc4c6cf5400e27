// Package codec selects between registered image codec backends per format.
package codec

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/rasterkit/pkg/ports"
	"github.com/user/rasterkit/pkg/raster"
)

// Format identifies an image file format.
type Format string

const (
	FormatPNG     Format = "png"
	FormatBMP     Format = "bmp"
	FormatUnknown Format = "unknown"
)

var pngSignature = []byte{137, 80, 78, 71, 13, 10, 26, 10}

// Detect sniffs the image format from file bytes.
func Detect(data []byte) Format {
	if len(data) >= len(pngSignature) && bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return FormatPNG
	}
	if len(data) >= 2 && data[0] == 'B' && data[1] == 'M' {
		return FormatBMP
	}
	return FormatUnknown
}

// DetectFromPath guesses the format from a file extension, for encode paths
// where no bytes exist yet.
func DetectFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".bmp":
		return FormatBMP
	default:
		return FormatUnknown
	}
}

// Registry holds codec backends for one format in priority order. Decode and
// Encode try each backend in turn and fall back to the next on failure, so an
// accelerated backend can be preferred while the pure codec stays the
// guaranteed baseline.
type Registry struct {
	format   Format
	backends []ports.ImageCodec
	logger   ports.Logger
}

// NewRegistry creates a registry for one format. Backends are tried in the
// order given; there must be at least one.
func NewRegistry(format Format, logger ports.Logger, backends ...ports.ImageCodec) (*Registry, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("codec: registry for %s needs at least one backend: %w", format, raster.ErrInvalidArgument)
	}
	return &Registry{
		format:   format,
		backends: backends,
		logger:   logger.WithComponent("codec"),
	}, nil
}

// Format returns the format this registry serves.
func (r *Registry) Format() Format { return r.format }

// Decode parses file bytes with the first backend that accepts them.
// If every backend fails, the errors are reported together. A later backend
// is only consulted when the earlier one returned an error, never on success.
func (r *Registry) Decode(data []byte) (*raster.Buffer, error) {
	var errs []error
	for _, b := range r.backends {
		buf, err := b.Decode(data)
		if err == nil {
			r.logger.Debug("Decoded %s with backend %s", r.format, b.Name())
			return buf, nil
		}
		r.logger.Debug("Backend %s rejected %s input: %v", b.Name(), r.format, err)
		errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
	}
	return nil, joinErrors(r.format, "decode", errs)
}

// Encode serializes the buffer with the first backend that succeeds.
func (r *Registry) Encode(buf *raster.Buffer) ([]byte, error) {
	var errs []error
	for _, b := range r.backends {
		data, err := b.Encode(buf)
		if err == nil {
			r.logger.Debug("Encoded %s with backend %s", r.format, b.Name())
			return data, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
	}
	return nil, joinErrors(r.format, "encode", errs)
}

// joinErrors combines per-backend failures into one error that still matches
// each wrapped sentinel with errors.Is.
func joinErrors(format Format, op string, errs []error) error {
	err := errs[0]
	for _, e := range errs[1:] {
		err = fmt.Errorf("%w; %w", err, e)
	}
	return fmt.Errorf("codec: every %s backend failed to %s: %w", format, op, err)
}
