// Package raster defines the pixel buffer data model shared by every
// codec, transform and filter in the engine.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
)

// MaxPixels caps buffer allocations. Decoders validate dimensions against
// this limit before allocating, so a crafted header cannot exhaust memory.
const MaxPixels = 100_000_000

// Buffer is a dense w×h grid of RGBA8 pixels in row-major order.
// Pix always holds exactly W*H*4 bytes; pixel (x,y) starts at (y*W+x)*4.
// Operations that transform a Buffer return a new, independently owned
// Buffer unless documented as in-place.
type Buffer struct {
	W, H int
	Pix  []uint8
}

// New allocates a transparent-black buffer of the given dimensions.
func New(w, h int) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: dimensions must be positive, got %dx%d: %w", w, h, ErrInvalidArgument)
	}
	if w*h > MaxPixels {
		return nil, fmt.Errorf("raster: %dx%d exceeds the %d pixel cap: %w", w, h, MaxPixels, ErrInvalidArgument)
	}
	return &Buffer{W: w, H: h, Pix: make([]uint8, w*h*4)}, nil
}

// NewFilled allocates a buffer with every pixel set to c.
func NewFilled(w, h int, c Color) (*Buffer, error) {
	b, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = c.R
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.B
		b.Pix[i+3] = c.A
	}
	return b, nil
}

// Clone returns an independent copy of b.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{W: b.W, H: b.H, Pix: pix}
}

// Offset returns the index of pixel (x,y) in Pix. Coordinates are 0-based
// and must be in bounds.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.W + x) * 4
}

// InBounds reports whether the 0-based coordinate lies inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.W && y < b.H
}

// At returns the pixel at the 0-based coordinate (x,y).
func (b *Buffer) At(x, y int) Color {
	o := b.Offset(x, y)
	return RGBA(b.Pix[o], b.Pix[o+1], b.Pix[o+2], b.Pix[o+3])
}

// Set overwrites the pixel at the 0-based coordinate (x,y) without blending.
func (b *Buffer) Set(x, y int, c Color) {
	o := b.Offset(x, y)
	b.Pix[o] = c.R
	b.Pix[o+1] = c.G
	b.Pix[o+2] = c.B
	b.Pix[o+3] = c.A
}

// Equal reports whether two buffers have identical dimensions and pixels.
func Equal(a, b *Buffer) bool {
	return a.W == b.W && a.H == b.H && bytes.Equal(a.Pix, b.Pix)
}

// ToImage converts the buffer to a non-premultiplied stdlib image.
// The returned image shares no memory with the buffer.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.W, b.H))
	for y := 0; y < b.H; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+b.W*4], b.Pix[y*b.W*4:(y+1)*b.W*4])
	}
	return img
}

// FromImage converts any stdlib image to a Buffer, flattening it through
// NRGBA so channel values stay non-premultiplied.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	b, err := New(w, h)
	if err != nil {
		return nil, err
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	for y := 0; y < h; y++ {
		copy(b.Pix[y*w*4:(y+1)*w*4], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+w*4])
	}
	return b, nil
}
