package bmp

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/user/rasterkit/pkg/raster"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src, err := raster.New(5, 3)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			src.Set(x, y, raster.RGBA(uint8(x*40), uint8(y*80), uint8(x+y), uint8(200+x)))
		}
	}

	data, err := Encode(src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, got) {
		t.Fatal("round trip changed pixels")
	}
}

// buildBMP assembles a file with the given header fields and raw pixel rows.
func buildBMP(w, h int, bpp, compression uint16, rows []byte) []byte {
	out := make([]byte, 54+len(rows))
	out[0] = 'B'
	out[1] = 'M'
	binary.LittleEndian.PutUint32(out[2:], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:], 54)
	binary.LittleEndian.PutUint32(out[14:], 40)
	binary.LittleEndian.PutUint32(out[18:], uint32(w))
	binary.LittleEndian.PutUint32(out[22:], uint32(int32(h)))
	binary.LittleEndian.PutUint16(out[26:], 1)
	binary.LittleEndian.PutUint16(out[28:], bpp)
	binary.LittleEndian.PutUint32(out[30:], uint32(compression))
	copy(out[54:], rows)
	return out
}

func TestDecode32bppKnownLayout(t *testing.T) {
	// 2x2, bottom-up, BGRA: file row 0 is the image's bottom row.
	rows := []byte{
		// bottom row: blue, white
		255, 0, 0, 255, 255, 255, 255, 255,
		// top row: red, green
		0, 0, 255, 255, 0, 255, 0, 255,
	}
	buf, err := Decode(buildBMP(2, 2, 32, 0, rows))
	if err != nil {
		t.Fatal(err)
	}

	want := map[[2]int]raster.Color{
		{0, 0}: raster.RGBA(255, 0, 0, 255),     // top-left red
		{1, 0}: raster.RGBA(0, 255, 0, 255),     // top-right green
		{0, 1}: raster.RGBA(0, 0, 255, 255),     // bottom-left blue
		{1, 1}: raster.RGBA(255, 255, 255, 255), // bottom-right white
	}
	for pos, w := range want {
		if got := buf.At(pos[0], pos[1]); got != w {
			t.Errorf("(%d,%d) = %+v, want %+v", pos[0], pos[1], got, w)
		}
	}
}

func TestDecodeTopDownHeight(t *testing.T) {
	// Same pixels as the bottom-up case but height is negative, so file
	// row 0 is the top row.
	rows := []byte{
		0, 0, 255, 255, 0, 255, 0, 255, // top: red, green
		255, 0, 0, 255, 255, 255, 255, 255, // bottom: blue, white
	}
	buf, err := Decode(buildBMP(2, -2, 32, 0, rows))
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(0, 0); got != raster.RGBA(255, 0, 0, 255) {
		t.Fatalf("top-left: %+v", got)
	}
	if got := buf.At(1, 1); got != raster.RGBA(255, 255, 255, 255) {
		t.Fatalf("bottom-right: %+v", got)
	}
}

func TestDecode24bppPaddedStride(t *testing.T) {
	// 1x2 at 24bpp: each 3-byte row pads to 4 bytes.
	rows := []byte{
		10, 20, 30, 0, // bottom row BGR + pad
		40, 50, 60, 0, // top row BGR + pad
	}
	buf, err := Decode(buildBMP(1, 2, 24, 0, rows))
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(0, 0); got != raster.RGBA(60, 50, 40, 255) {
		t.Fatalf("top: %+v", got)
	}
	if got := buf.At(0, 1); got != raster.RGBA(30, 20, 10, 255) {
		t.Fatalf("bottom: %+v", got)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	if _, err := Decode([]byte("XX")); !errors.Is(err, raster.ErrFormat) {
		t.Errorf("bad magic: got %v, want ErrFormat", err)
	}

	rows := make([]byte, 8)
	if _, err := Decode(buildBMP(1, 1, 16, 0, rows)); !errors.Is(err, raster.ErrUnsupported) {
		t.Errorf("16bpp: got %v, want ErrUnsupported", err)
	}
	if _, err := Decode(buildBMP(1, 1, 32, 1, rows)); !errors.Is(err, raster.ErrUnsupported) {
		t.Errorf("RLE compression: got %v, want ErrUnsupported", err)
	}

	// Header claims more pixels than the file carries.
	if _, err := Decode(buildBMP(4, 4, 32, 0, rows)); !errors.Is(err, raster.ErrCorrupt) {
		t.Errorf("short pixel data: got %v, want ErrCorrupt", err)
	}
}
