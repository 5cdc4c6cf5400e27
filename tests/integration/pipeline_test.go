// Package integration contains integration tests for the full
// decode -> transform -> filter -> encode flow.
package integration

import (
	"errors"
	"testing"

	"github.com/user/rasterkit/pkg/adapters/logger"
	"github.com/user/rasterkit/pkg/adapters/stdcodec"
	"github.com/user/rasterkit/pkg/codec"
	purebmp "github.com/user/rasterkit/pkg/codec/bmp"
	purepng "github.com/user/rasterkit/pkg/codec/png"
	"github.com/user/rasterkit/pkg/compose"
	"github.com/user/rasterkit/pkg/draw"
	"github.com/user/rasterkit/pkg/pipeline"
	"github.com/user/rasterkit/pkg/raster"
)

func newRegistries(t *testing.T) (*codec.Registry, *codec.Registry) {
	t.Helper()
	log := logger.NewNoop()
	pngReg, err := codec.NewRegistry(codec.FormatPNG, log, stdcodec.NewPNG(), purepng.NewCodec())
	if err != nil {
		t.Fatal(err)
	}
	bmpReg, err := codec.NewRegistry(codec.FormatBMP, log, stdcodec.NewBMP(), purebmp.NewCodec())
	if err != nil {
		t.Fatal(err)
	}
	return pngReg, bmpReg
}

// TestDrawFilterEncodeDecode exercises the whole engine: rasterize a scene,
// run a pipeline over it, then round-trip the result through both formats.
func TestDrawFilterEncodeDecode(t *testing.T) {
	pngReg, bmpReg := newRegistries(t)

	canvas, err := raster.NewFilled(64, 48, raster.RGBA(240, 240, 240, 255))
	if err != nil {
		t.Fatal(err)
	}

	canvas, err = draw.Ellipse(canvas, raster.Point{X: 32, Y: 24}, 14, 10, raster.RGBA(200, 40, 40, 255), true, 1)
	if err != nil {
		t.Fatal(err)
	}
	canvas, err = draw.Line(canvas, 1, 1, 64, 48, raster.RGBA(0, 0, 200, 255), 3)
	if err != nil {
		t.Fatal(err)
	}
	ring := []raster.Point{{X: 4, Y: 4}, {X: 20, Y: 4}, {X: 20, Y: 16}, {X: 4, Y: 16}, {X: 4, Y: 4}}
	canvas, err = draw.Polygon(canvas, ring, raster.RGBA(40, 160, 40, 255), true, 1)
	if err != nil {
		t.Fatal(err)
	}

	steps := []pipeline.Step{
		{Op: "blur", Radius: 1},
		{Op: "grayscale"},
		{Op: "resize", Width: 32, Height: 24, Antialias: true},
	}
	processed, err := pipeline.Apply(canvas, steps, logger.NewNoop())
	if err != nil {
		t.Fatal(err)
	}
	if processed.W != 32 || processed.H != 24 {
		t.Fatalf("pipeline output %dx%d, want 32x24", processed.W, processed.H)
	}

	for name, reg := range map[string]*codec.Registry{"png": pngReg, "bmp": bmpReg} {
		data, err := reg.Encode(processed)
		if err != nil {
			t.Fatalf("%s encode: %v", name, err)
		}
		back, err := reg.Decode(data)
		if err != nil {
			t.Fatalf("%s decode: %v", name, err)
		}
		if !raster.Equal(processed, back) {
			t.Fatalf("%s round trip changed pixels", name)
		}
	}
}

// TestCrossFormatConversion decodes PNG bytes and re-encodes them as BMP,
// the CLI convert path.
func TestCrossFormatConversion(t *testing.T) {
	pngReg, bmpReg := newRegistries(t)

	src, _ := raster.NewFilled(16, 16, raster.RGBA(10, 90, 170, 255))
	overlay, _ := raster.NewFilled(8, 8, raster.RGBA(255, 255, 0, 255))
	src = compose.Blit(overlay, src, 5, 5, true)

	pngData, err := pngReg.Encode(src)
	if err != nil {
		t.Fatal(err)
	}
	if codec.Detect(pngData) != codec.FormatPNG {
		t.Fatal("encoded PNG not detected as PNG")
	}

	decoded, err := pngReg.Decode(pngData)
	if err != nil {
		t.Fatal(err)
	}
	bmpData, err := bmpReg.Encode(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if codec.Detect(bmpData) != codec.FormatBMP {
		t.Fatal("encoded BMP not detected as BMP")
	}

	back, err := bmpReg.Decode(bmpData)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, back) {
		t.Fatal("PNG -> BMP conversion changed pixels")
	}
}

// TestRegistryRejectsForeignFormat makes sure feeding one format's bytes to
// the other registry fails loudly instead of producing garbage.
func TestRegistryRejectsForeignFormat(t *testing.T) {
	pngReg, bmpReg := newRegistries(t)

	src, _ := raster.NewFilled(4, 4, raster.RGB(1, 2, 3))
	pngData, err := pngReg.Encode(src)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := bmpReg.Decode(pngData); !errors.Is(err, raster.ErrFormat) {
		t.Fatalf("got %v, want wrapped ErrFormat", err)
	}
}
