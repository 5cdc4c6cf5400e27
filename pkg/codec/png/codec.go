package png

import "github.com/user/rasterkit/pkg/raster"

// DefaultLevel is the deflate level used when the caller does not pick one.
const DefaultLevel = 6

// Codec adapts the pure PNG functions to the ports.ImageCodec interface.
type Codec struct {
	// Level is the deflate compression level 0-9 used by Encode.
	Level int
}

// NewCodec returns a Codec encoding at DefaultLevel.
func NewCodec() *Codec {
	return &Codec{Level: DefaultLevel}
}

// Name identifies the backend.
func (c *Codec) Name() string { return "png-pure" }

// Decode parses PNG bytes into a pixel buffer.
func (c *Codec) Decode(data []byte) (*raster.Buffer, error) {
	return Decode(data)
}

// Encode serializes the buffer as an RGBA PNG.
func (c *Codec) Encode(buf *raster.Buffer) ([]byte, error) {
	return Encode(buf, c.Level)
}
