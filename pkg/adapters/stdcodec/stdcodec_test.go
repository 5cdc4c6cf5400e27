package stdcodec

import (
	"errors"
	"testing"

	purebmp "github.com/user/rasterkit/pkg/codec/bmp"
	purepng "github.com/user/rasterkit/pkg/codec/png"
	"github.com/user/rasterkit/pkg/raster"
)

func opaquePattern(t *testing.T, w, h int) *raster.Buffer {
	t.Helper()
	buf, err := raster.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, raster.RGBA(uint8(x*20), uint8(y*30), uint8(x+y), 255))
		}
	}
	return buf
}

func TestPNGRoundTrip(t *testing.T) {
	c := NewPNG()
	src := opaquePattern(t, 6, 4)

	data, err := c.Encode(src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, got) {
		t.Fatal("round trip changed pixels")
	}
}

func TestPNGInteroperatesWithPureCodec(t *testing.T) {
	src := opaquePattern(t, 5, 5)

	// Pure encoder output must decode through the stdlib backend.
	data, err := purepng.Encode(src, 6)
	if err != nil {
		t.Fatal(err)
	}
	got, err := NewPNG().Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, got) {
		t.Fatal("stdlib backend misread pure encoder output")
	}

	// And the other way around.
	data, err = NewPNG().Encode(src)
	if err != nil {
		t.Fatal(err)
	}
	got, err = purepng.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, got) {
		t.Fatal("pure codec misread stdlib encoder output")
	}
}

func TestBMPRoundTrip(t *testing.T) {
	c := NewBMP()
	src := opaquePattern(t, 4, 3)

	data, err := c.Encode(src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, got) {
		t.Fatal("round trip changed pixels")
	}
}

func TestBMPDecodesPureEncoderOutput(t *testing.T) {
	src := opaquePattern(t, 4, 4)
	data, err := purebmp.Encode(src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := NewBMP().Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, got) {
		t.Fatal("stdlib backend misread pure encoder output")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := NewPNG().Decode([]byte("junk")); !errors.Is(err, raster.ErrFormat) {
		t.Errorf("png: got %v, want ErrFormat", err)
	}
	if _, err := NewBMP().Decode([]byte("junk")); !errors.Is(err, raster.ErrFormat) {
		t.Errorf("bmp: got %v, want ErrFormat", err)
	}
}

func TestScaleHQ(t *testing.T) {
	src, _ := raster.NewFilled(10, 10, raster.RGBA(30, 60, 90, 255))
	got, err := ScaleHQ(src, 4, 6)
	if err != nil {
		t.Fatal(err)
	}
	if got.W != 4 || got.H != 6 {
		t.Fatalf("got %dx%d, want 4x6", got.W, got.H)
	}
	if c := got.At(2, 3); c != raster.RGBA(30, 60, 90, 255) {
		t.Fatalf("uniform image changed: %+v", c)
	}

	if _, err := ScaleHQ(src, 0, 5); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}
