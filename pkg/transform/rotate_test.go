package transform

import (
	"testing"

	"github.com/user/rasterkit/pkg/raster"
)

func TestRotateZeroIsIdentity(t *testing.T) {
	src := numbered(t, 5, 3)
	got, err := Rotate(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, got) {
		t.Fatal("rotate 0 changed pixels")
	}
	got.Set(0, 0, raster.RGB(9, 9, 9))
	if src.At(0, 0) == got.At(0, 0) {
		t.Fatal("rotate 0 returned shared storage")
	}
}

func TestRotate90SwapsDimensions(t *testing.T) {
	src := numbered(t, 5, 3)
	got, err := Rotate(src, 90)
	if err != nil {
		t.Fatal(err)
	}
	if got.W != 3 || got.H != 5 {
		t.Fatalf("got %dx%d, want 3x5", got.W, got.H)
	}
}

func TestRotateFullTurnsAreLossless(t *testing.T) {
	src := numbered(t, 4, 7)

	// Four quarter turns restore the original.
	cur := src
	for i := 0; i < 4; i++ {
		next, err := Rotate(cur, 90)
		if err != nil {
			t.Fatal(err)
		}
		cur = next
	}
	if !raster.Equal(src, cur) {
		t.Fatal("four 90-degree turns changed pixels")
	}

	// 90 then 270 also restores it.
	quarter, err := Rotate(src, 90)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Rotate(quarter, 270)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, back) {
		t.Fatal("90 + 270 changed pixels")
	}
}

func TestRotate180TwiceIsIdentity(t *testing.T) {
	src := numbered(t, 6, 4)
	once, err := Rotate(src, 180)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Rotate(once, 180)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, twice) {
		t.Fatal("two half turns changed pixels")
	}
	// Corner check: the 180 image's top-left is the source's bottom-right.
	if c := once.At(0, 0); c.R != 5 || c.G != 3 {
		t.Fatalf("top-left maps to source (%d,%d), want (5,3)", c.R, c.G)
	}
}

func TestRotateNegativeAnglesNormalize(t *testing.T) {
	src := numbered(t, 4, 7)
	a, err := Rotate(src, -90)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Rotate(src, 270)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(a, b) {
		t.Fatal("-90 and 270 disagree")
	}
}

func TestRotateArbitraryKeepsDimensions(t *testing.T) {
	src, _ := raster.NewFilled(9, 9, raster.RGBA(200, 100, 50, 255))
	got, err := Rotate(src, 45)
	if err != nil {
		t.Fatal(err)
	}
	if got.W != 9 || got.H != 9 {
		t.Fatalf("got %dx%d, want 9x9", got.W, got.H)
	}
	// The center pixel is on the rotation axis and keeps its color.
	if c := got.At(4, 4); c != raster.RGBA(200, 100, 50, 255) {
		t.Fatalf("center = %+v", c)
	}
	// A corner rotates out of the square and becomes transparent.
	if c := got.At(0, 0); c.A != 0 {
		t.Fatalf("corner = %+v, want transparent", c)
	}
}
