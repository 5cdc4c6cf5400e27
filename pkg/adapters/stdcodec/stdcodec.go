// Package stdcodec provides image codec backends built on the Go image
// libraries. They sit ahead of the pure codecs in the registry and handle
// the PNG and BMP variants the pure codecs reject (palette, 16-bit,
// interlaced), while the pure codecs remain the guaranteed baseline.
package stdcodec

import (
	"bytes"
	"fmt"
	"image/png"

	"golang.org/x/image/bmp"

	"github.com/user/rasterkit/pkg/raster"
)

// PNGCodec decodes and encodes PNG via image/png.
type PNGCodec struct {
	// Level is the deflate compression level 0-9, mapped onto the
	// stdlib encoder's level buckets.
	Level int
}

// NewPNG returns a PNG backend encoding at the default level.
func NewPNG() *PNGCodec { return &PNGCodec{Level: 6} }

// Name identifies the backend.
func (c *PNGCodec) Name() string { return "png-std" }

// Decode parses PNG bytes of any stdlib-supported variant.
func (c *PNGCodec) Decode(data []byte) (*raster.Buffer, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("stdcodec: decode png: %v: %w", err, raster.ErrFormat)
	}
	return raster.FromImage(img)
}

// Encode serializes the buffer as PNG.
func (c *PNGCodec) Encode(buf *raster.Buffer) ([]byte, error) {
	var out bytes.Buffer
	enc := png.Encoder{CompressionLevel: compressionLevel(c.Level)}
	if err := enc.Encode(&out, buf.ToImage()); err != nil {
		return nil, fmt.Errorf("stdcodec: encode png: %w", err)
	}
	return out.Bytes(), nil
}

// compressionLevel maps the 0-9 scale onto the stdlib encoder's buckets.
func compressionLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// BMPCodec decodes and encodes BMP via golang.org/x/image/bmp.
type BMPCodec struct{}

// NewBMP returns the BMP backend.
func NewBMP() *BMPCodec { return &BMPCodec{} }

// Name identifies the backend.
func (c *BMPCodec) Name() string { return "bmp-std" }

// Decode parses BMP bytes of any x/image-supported variant.
func (c *BMPCodec) Decode(data []byte) (*raster.Buffer, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("stdcodec: decode bmp: %v: %w", err, raster.ErrFormat)
	}
	return raster.FromImage(img)
}

// Encode serializes the buffer as BMP.
func (c *BMPCodec) Encode(buf *raster.Buffer) ([]byte, error) {
	var out bytes.Buffer
	if err := bmp.Encode(&out, buf.ToImage()); err != nil {
		return nil, fmt.Errorf("stdcodec: encode bmp: %w", err)
	}
	return out.Bytes(), nil
}
