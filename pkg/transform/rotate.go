package transform

import (
	"math"

	"github.com/user/rasterkit/pkg/raster"
)

// Rotate rotates src by the given angle in degrees about its center.
// Multiples of 90 are exact, lossless pixel moves (90 and 270 swap the
// dimensions). Any other angle resamples bilinearly around the center with
// unchanged dimensions; samples falling outside the source become
// transparent black.
func Rotate(src *raster.Buffer, degrees float64) (*raster.Buffer, error) {
	deg := math.Mod(degrees, 360)
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 0:
		return src.Clone(), nil
	case 90:
		return rotate90(src)
	case 180:
		return rotate180(src)
	case 270:
		return rotate270(src)
	}
	return rotateArbitrary(src, deg)
}

func rotate90(src *raster.Buffer) (*raster.Buffer, error) {
	dst, err := raster.New(src.H, src.W)
	if err != nil {
		return nil, err
	}
	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			o := src.Offset(y, src.H-1-x)
			copy(dst.Pix[dst.Offset(x, y):dst.Offset(x, y)+4], src.Pix[o:o+4])
		}
	}
	return dst, nil
}

func rotate180(src *raster.Buffer) (*raster.Buffer, error) {
	dst, err := raster.New(src.W, src.H)
	if err != nil {
		return nil, err
	}
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			o := src.Offset(src.W-1-x, src.H-1-y)
			copy(dst.Pix[dst.Offset(x, y):dst.Offset(x, y)+4], src.Pix[o:o+4])
		}
	}
	return dst, nil
}

func rotate270(src *raster.Buffer) (*raster.Buffer, error) {
	dst, err := raster.New(src.H, src.W)
	if err != nil {
		return nil, err
	}
	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			o := src.Offset(src.W-1-y, x)
			copy(dst.Pix[dst.Offset(x, y):dst.Offset(x, y)+4], src.Pix[o:o+4])
		}
	}
	return dst, nil
}

func rotateArbitrary(src *raster.Buffer, deg float64) (*raster.Buffer, error) {
	dst, err := raster.New(src.W, src.H)
	if err != nil {
		return nil, err
	}
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	cx := float64(src.W-1) / 2
	cy := float64(src.H-1) / 2

	for y := 0; y < dst.H; y++ {
		dy := float64(y) - cy
		for x := 0; x < dst.W; x++ {
			dx := float64(x) - cx
			sx := cx + c*dx + s*dy
			sy := cy - s*dx + c*dy
			if sx < 0 || sy < 0 || sx > float64(src.W-1) || sy > float64(src.H-1) {
				continue // stays transparent black
			}
			x0 := int(math.Floor(sx))
			y0 := int(math.Floor(sy))
			x1 := clampIndex(x0+1, src.W-1)
			y1 := clampIndex(y0+1, src.H-1)
			wx := sx - float64(x0)
			wy := sy - float64(y0)

			o00 := src.Offset(x0, y0)
			o10 := src.Offset(x1, y0)
			o01 := src.Offset(x0, y1)
			o11 := src.Offset(x1, y1)
			d := dst.Offset(x, y)
			for ch := 0; ch < 4; ch++ {
				v := (1-wx)*(1-wy)*float64(src.Pix[o00+ch]) +
					wx*(1-wy)*float64(src.Pix[o10+ch]) +
					(1-wx)*wy*float64(src.Pix[o01+ch]) +
					wx*wy*float64(src.Pix[o11+ch])
				dst.Pix[d+ch] = raster.Clamp8(int(math.Round(v)))
			}
		}
	}
	return dst, nil
}
