// Package bmp implements a pure decoder and encoder for uncompressed
// 24-bit and 32-bit Windows BMP files.
package bmp

import (
	"encoding/binary"
	"fmt"

	"github.com/user/rasterkit/pkg/raster"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
)

// Decode parses BMP file bytes into a pixel buffer. Supported inputs carry a
// BITMAPINFOHEADER (or larger), 24 or 32 bits per pixel, no compression.
// Negative height means top-down row order; positive means bottom-up.
func Decode(data []byte) (*raster.Buffer, error) {
	if len(data) < fileHeaderSize+infoHeaderSize {
		return nil, fmt.Errorf("bmp: file shorter than headers: %w", raster.ErrFormat)
	}
	if data[0] != 'B' || data[1] != 'M' {
		return nil, fmt.Errorf("bmp: missing BM magic: %w", raster.ErrFormat)
	}

	pixOffset := int(binary.LittleEndian.Uint32(data[10:]))
	headerSize := int(binary.LittleEndian.Uint32(data[14:]))
	if headerSize < infoHeaderSize {
		return nil, fmt.Errorf("bmp: info header is %d bytes, want >= %d: %w", headerSize, infoHeaderSize, raster.ErrFormat)
	}

	width := int(int32(binary.LittleEndian.Uint32(data[18:])))
	rawHeight := int(int32(binary.LittleEndian.Uint32(data[22:])))
	planes := int(binary.LittleEndian.Uint16(data[26:]))
	bpp := int(binary.LittleEndian.Uint16(data[28:]))
	compression := int(binary.LittleEndian.Uint32(data[30:]))

	if planes != 1 {
		return nil, fmt.Errorf("bmp: %d color planes, want 1: %w", planes, raster.ErrUnsupported)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("bmp: %d bits per pixel: %w", bpp, raster.ErrUnsupported)
	}
	if compression != 0 {
		return nil, fmt.Errorf("bmp: compression method %d: %w", compression, raster.ErrUnsupported)
	}

	topDown := rawHeight < 0
	height := rawHeight
	if topDown {
		height = -rawHeight
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bmp: dimensions %dx%d: %w", width, rawHeight, raster.ErrCorrupt)
	}

	stride := ((bpp*width + 31) / 32) * 4
	if pixOffset < fileHeaderSize+headerSize || pixOffset+stride*height > len(data) {
		return nil, fmt.Errorf("bmp: pixel data extends past end of file: %w", raster.ErrCorrupt)
	}

	buf, err := raster.New(width, height)
	if err != nil {
		return nil, err
	}

	bytesPerPixel := bpp / 8
	for row := 0; row < height; row++ {
		y := row
		if !topDown {
			y = height - 1 - row
		}
		src := data[pixOffset+row*stride:]
		dst := buf.Pix[y*width*4:]
		for x := 0; x < width; x++ {
			s := x * bytesPerPixel
			d := x * 4
			dst[d] = src[s+2]
			dst[d+1] = src[s+1]
			dst[d+2] = src[s]
			if bytesPerPixel == 4 {
				dst[d+3] = src[s+3]
			} else {
				dst[d+3] = 255
			}
		}
	}
	return buf, nil
}

// Encode serializes the buffer as an uncompressed 32bpp BGRA BMP with
// bottom-up row order.
func Encode(buf *raster.Buffer) ([]byte, error) {
	stride := buf.W * 4 // 32bpp rows are already 4-byte aligned
	imageSize := stride * buf.H
	fileSize := fileHeaderSize + infoHeaderSize + imageSize

	out := make([]byte, fileSize)
	out[0] = 'B'
	out[1] = 'M'
	binary.LittleEndian.PutUint32(out[2:], uint32(fileSize))
	binary.LittleEndian.PutUint32(out[10:], fileHeaderSize+infoHeaderSize)

	binary.LittleEndian.PutUint32(out[14:], infoHeaderSize)
	binary.LittleEndian.PutUint32(out[18:], uint32(buf.W))
	binary.LittleEndian.PutUint32(out[22:], uint32(buf.H))
	binary.LittleEndian.PutUint16(out[26:], 1)  // planes
	binary.LittleEndian.PutUint16(out[28:], 32) // bits per pixel
	binary.LittleEndian.PutUint32(out[34:], uint32(imageSize))

	pix := out[fileHeaderSize+infoHeaderSize:]
	for row := 0; row < buf.H; row++ {
		y := buf.H - 1 - row
		src := buf.Pix[y*buf.W*4:]
		dst := pix[row*stride:]
		for x := 0; x < buf.W; x++ {
			s := x * 4
			dst[s] = src[s+2]
			dst[s+1] = src[s+1]
			dst[s+2] = src[s]
			dst[s+3] = src[s+3]
		}
	}
	return out, nil
}
