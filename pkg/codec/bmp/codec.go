package bmp

import "github.com/user/rasterkit/pkg/raster"

// Codec adapts the pure BMP functions to the ports.ImageCodec interface.
type Codec struct{}

// NewCodec returns the pure BMP codec.
func NewCodec() *Codec { return &Codec{} }

// Name identifies the backend.
func (c *Codec) Name() string { return "bmp-pure" }

// Decode parses BMP bytes into a pixel buffer.
func (c *Codec) Decode(data []byte) (*raster.Buffer, error) {
	return Decode(data)
}

// Encode serializes the buffer as a 32bpp BMP.
func (c *Codec) Encode(buf *raster.Buffer) ([]byte, error) {
	return Encode(buf)
}
