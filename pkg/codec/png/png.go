// Package png implements a pure decoder and encoder for 8-bit,
// non-interlaced RGB and RGBA PNG files.
package png

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/user/rasterkit/pkg/raster"
)

var signature = []byte{137, 80, 78, 71, 13, 10, 26, 10}

const (
	colorTypeRGB  = 2
	colorTypeRGBA = 6
)

// Decode parses PNG file bytes into a pixel buffer. Supported inputs are
// 8-bit depth, color type 2 (RGB) or 6 (RGBA), compression 0, filter
// method 0, no interlacing. Anything else fails with raster.ErrUnsupported;
// structural damage fails with raster.ErrFormat or raster.ErrCorrupt.
func Decode(data []byte) (*raster.Buffer, error) {
	if len(data) < len(signature) || !bytes.Equal(data[:len(signature)], signature) {
		return nil, fmt.Errorf("png: missing signature: %w", raster.ErrFormat)
	}

	var (
		width, height int
		channels      int
		idat          []byte
		sawIHDR       bool
		sawIEND       bool
	)

	pos := len(signature)
	for pos < len(data) {
		if pos+8 > len(data) {
			return nil, fmt.Errorf("png: truncated chunk header: %w", raster.ErrCorrupt)
		}
		length := int(binary.BigEndian.Uint32(data[pos:]))
		ctype := string(data[pos+4 : pos+8])
		pos += 8
		if length < 0 || pos+length+4 > len(data) {
			return nil, fmt.Errorf("png: truncated %s chunk: %w", ctype, raster.ErrCorrupt)
		}
		payload := data[pos : pos+length]
		pos += length + 4 // skip CRC

		switch ctype {
		case "IHDR":
			if length != 13 {
				return nil, fmt.Errorf("png: IHDR length %d, want 13: %w", length, raster.ErrCorrupt)
			}
			width = int(binary.BigEndian.Uint32(payload[0:]))
			height = int(binary.BigEndian.Uint32(payload[4:]))
			bitDepth := payload[8]
			colorType := payload[9]
			compression := payload[10]
			filterMethod := payload[11]
			interlace := payload[12]

			if compression != 0 {
				return nil, fmt.Errorf("png: compression method %d: %w", compression, raster.ErrUnsupported)
			}
			if filterMethod != 0 {
				return nil, fmt.Errorf("png: filter method %d: %w", filterMethod, raster.ErrUnsupported)
			}
			if interlace != 0 {
				return nil, fmt.Errorf("png: interlaced image: %w", raster.ErrUnsupported)
			}
			if bitDepth != 8 {
				return nil, fmt.Errorf("png: bit depth %d: %w", bitDepth, raster.ErrUnsupported)
			}
			switch colorType {
			case colorTypeRGB:
				channels = 3
			case colorTypeRGBA:
				channels = 4
			default:
				return nil, fmt.Errorf("png: color type %d: %w", colorType, raster.ErrUnsupported)
			}
			if width <= 0 || height <= 0 {
				return nil, fmt.Errorf("png: dimensions %dx%d: %w", width, height, raster.ErrCorrupt)
			}
			sawIHDR = true
		case "IDAT":
			if !sawIHDR {
				return nil, fmt.Errorf("png: IDAT before IHDR: %w", raster.ErrCorrupt)
			}
			idat = append(idat, payload...)
		case "IEND":
			sawIEND = true
		}
		if sawIEND {
			break
		}
	}

	if !sawIHDR {
		return nil, fmt.Errorf("png: missing IHDR chunk: %w", raster.ErrFormat)
	}
	if len(idat) == 0 {
		return nil, fmt.Errorf("png: missing IDAT data: %w", raster.ErrCorrupt)
	}

	zr, err := zlib.NewReader(bytes.NewReader(idat))
	if err != nil {
		return nil, fmt.Errorf("png: bad zlib stream: %w", raster.ErrCorrupt)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("png: decompress pixel data: %w", raster.ErrCorrupt)
	}

	stride := width * channels
	need := (stride + 1) * height
	if len(raw) < need {
		return nil, fmt.Errorf("png: pixel data is %d bytes, want %d: %w", len(raw), need, raster.ErrCorrupt)
	}

	buf, err := raster.New(width, height)
	if err != nil {
		return nil, err
	}

	prev := make([]uint8, stride)
	cur := make([]uint8, stride)
	for y := 0; y < height; y++ {
		rowStart := y * (stride + 1)
		filter := raw[rowStart]
		copy(cur, raw[rowStart+1:rowStart+1+stride])
		if err := unfilterRow(filter, cur, prev, channels); err != nil {
			return nil, err
		}

		out := buf.Pix[y*width*4:]
		if channels == 4 {
			copy(out[:stride], cur)
		} else {
			for x := 0; x < width; x++ {
				out[x*4] = cur[x*3]
				out[x*4+1] = cur[x*3+1]
				out[x*4+2] = cur[x*3+2]
				out[x*4+3] = 255
			}
		}
		prev, cur = cur, prev
	}
	return buf, nil
}

// unfilterRow reconstructs one scanline in place from its filtered form.
// prev is the already-reconstructed row above, all zeros for the first row.
func unfilterRow(filter uint8, cur, prev []uint8, bpp int) error {
	switch filter {
	case 0: // None
	case 1: // Sub
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}
	case 2: // Up
		for i := range cur {
			cur[i] += prev[i]
		}
	case 3: // Average
		for i := 0; i < len(cur); i++ {
			var left int
			if i >= bpp {
				left = int(cur[i-bpp])
			}
			cur[i] += uint8((left + int(prev[i])) / 2)
		}
	case 4: // Paeth
		for i := 0; i < len(cur); i++ {
			var a, c int
			if i >= bpp {
				a = int(cur[i-bpp])
				c = int(prev[i-bpp])
			}
			b := int(prev[i])
			cur[i] += uint8(paeth(a, b, c))
		}
	default:
		return fmt.Errorf("png: unknown row filter %d: %w", filter, raster.ErrCorrupt)
	}
	return nil
}

// paeth picks whichever of a (left), b (up), c (up-left) is closest to
// a+b-c. Ties resolve to a, then b, then c.
func paeth(a, b, c int) int {
	p := a + b - c
	pa := abs(p - a)
	pb := abs(p - b)
	pc := abs(p - c)
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Encode serializes the buffer as an RGBA PNG with filter 0 on every row.
// level is the deflate compression level 0-9.
func Encode(buf *raster.Buffer, level int) ([]byte, error) {
	if level < 0 || level > 9 {
		return nil, fmt.Errorf("png: compression level %d outside 0-9: %w", level, raster.ErrInvalidArgument)
	}

	stride := buf.W * 4
	raw := make([]byte, 0, (stride+1)*buf.H)
	for y := 0; y < buf.H; y++ {
		raw = append(raw, 0)
		raw = append(raw, buf.Pix[y*stride:(y+1)*stride]...)
	}

	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, level)
	if err != nil {
		return nil, fmt.Errorf("png: compression setup: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("png: compress pixel data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("png: compress pixel data: %w", err)
	}

	var out bytes.Buffer
	out.Write(signature)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(buf.W))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(buf.H))
	ihdr[8] = 8             // bit depth
	ihdr[9] = colorTypeRGBA // color type
	writeChunk(&out, "IHDR", ihdr)
	writeChunk(&out, "IDAT", compressed.Bytes())
	writeChunk(&out, "IEND", nil)
	return out.Bytes(), nil
}

func writeChunk(out *bytes.Buffer, ctype string, payload []byte) {
	var head [8]byte
	binary.BigEndian.PutUint32(head[0:], uint32(len(payload)))
	copy(head[4:], ctype)
	out.Write(head[:])
	out.Write(payload)

	crc := crc32.NewIEEE()
	crc.Write(head[4:])
	crc.Write(payload)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	out.Write(sum[:])
}
