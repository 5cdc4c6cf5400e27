package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/user/rasterkit/pkg/raster"
)

func TestBlurZeroIsIdentity(t *testing.T) {
	src := gradient(t, 7, 5)
	got, err := Blur(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, got) {
		t.Fatal("blur radius 0 changed pixels")
	}
	got.Set(0, 0, raster.RGB(1, 1, 1))
	if src.At(0, 0) == got.At(0, 0) {
		t.Fatal("blur radius 0 returned shared storage")
	}
}

func TestBlurRejectsNegativeRadius(t *testing.T) {
	src := gradient(t, 2, 2)
	if _, err := Blur(src, -1); !errors.Is(err, raster.ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestBlurUniformImageUnchanged(t *testing.T) {
	// Replicate padding means a constant image convolves to itself.
	src, _ := raster.NewFilled(9, 9, raster.RGBA(40, 80, 120, 160))
	got, err := Blur(src, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(src, got) {
		t.Fatal("uniform image changed under blur")
	}
}

func TestBlurSpreadsImpulse(t *testing.T) {
	src, _ := raster.New(9, 9)
	src.Set(4, 4, raster.RGBA(255, 255, 255, 255))

	got, err := Blur(src, 1)
	if err != nil {
		t.Fatal(err)
	}
	center := got.At(4, 4)
	side := got.At(3, 4)
	diag := got.At(3, 3)
	if center.R == 0 || side.R == 0 || diag.R == 0 {
		t.Fatal("impulse did not spread to neighbors")
	}
	if !(center.R > side.R && side.R > diag.R) {
		t.Fatalf("kernel not monotone: center=%d side=%d diag=%d", center.R, side.R, diag.R)
	}
	// Beyond the kernel reach nothing changes.
	if got.At(0, 0).R != 0 {
		t.Fatal("blur reached past its radius")
	}
}

func TestBlurIsSymmetric(t *testing.T) {
	src, _ := raster.New(9, 9)
	src.Set(4, 4, raster.RGBA(200, 0, 0, 255))

	got, err := Blur(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got.At(3, 4).R != got.At(5, 4).R || got.At(4, 3).R != got.At(4, 5).R {
		t.Fatal("blur of a centered impulse is not symmetric")
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, radius := range []int{1, 2, 5} {
		k := gaussianKernel(radius)
		if len(k) != 2*radius+1 {
			t.Fatalf("radius %d: kernel size %d", radius, len(k))
		}
		sum := 0.0
		for _, v := range k {
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("radius %d: kernel sums to %g", radius, sum)
		}
		if k[0] != k[len(k)-1] {
			t.Fatalf("radius %d: kernel not symmetric", radius)
		}
	}
}

func TestEdgeDetectFlatImageIsBlack(t *testing.T) {
	src, _ := raster.NewFilled(8, 8, raster.RGBA(90, 90, 90, 210))
	got, err := EdgeDetect(src)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := got.At(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 {
				t.Fatalf("(%d,%d) = %+v, want black", x, y, c)
			}
			if c.A != 210 {
				t.Fatalf("(%d,%d) alpha = %d, want preserved 210", x, y, c.A)
			}
		}
	}
}

func TestEdgeDetectKeepsSubIntegerLuminance(t *testing.T) {
	// Alternating R=1/R=0 pixels: the luminance contrast is 0.299, which a
	// uint8 gray plane would round away to a flat image. The float plane
	// keeps it, and the rescale maps the maximum magnitude to 255.
	src, _ := raster.New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if (x+y)%2 == 0 {
				src.Set(x, y, raster.RGBA(1, 0, 0, 255))
			} else {
				src.Set(x, y, raster.RGBA(0, 0, 0, 255))
			}
		}
	}

	got, err := EdgeDetect(src)
	if err != nil {
		t.Fatal(err)
	}
	maxV := uint8(0)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c := got.At(x, y); c.R > maxV {
				maxV = c.R
			}
		}
	}
	if maxV != 255 {
		t.Fatalf("edge maximum is %d, want 255 from sub-integer contrast", maxV)
	}
}

func TestEdgeDetectMaxMapsTo255(t *testing.T) {
	// Hard vertical edge: half black, half white.
	src, _ := raster.New(16, 16)
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			src.Set(x, y, raster.RGBA(255, 255, 255, 255))
		}
	}

	got, err := EdgeDetect(src)
	if err != nil {
		t.Fatal(err)
	}
	maxV := uint8(0)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if c := got.At(x, y); c.R > maxV {
				maxV = c.R
			}
		}
	}
	if maxV != 255 {
		t.Fatalf("edge maximum is %d, want 255", maxV)
	}
}
