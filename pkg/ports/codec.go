package ports

import "github.com/user/rasterkit/pkg/raster"

// ImageCodec abstracts one decode/encode backend for a single image format.
// Backends are registered in priority order; a failing backend is skipped and
// the next one is tried, so an accelerated implementation can sit in front of
// the pure baseline decoder that is always available.
type ImageCodec interface {
	// Name identifies the backend in logs and joined errors.
	Name() string

	// Decode parses raw file bytes into a pixel buffer.
	Decode(data []byte) (*raster.Buffer, error)

	// Encode serializes a pixel buffer to file bytes.
	Encode(buf *raster.Buffer) ([]byte, error)
}
