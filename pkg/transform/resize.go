// Package transform provides geometric operations on pixel buffers:
// resampling, cropping and rotation. Every operation returns a new buffer.
package transform

import (
	"fmt"
	"math"

	"github.com/user/rasterkit/pkg/raster"
)

// Resize resamples src to targetW×targetH. With antialias false it uses
// nearest-neighbor sampling, with antialias true bilinear interpolation.
// Resizing to the source dimensions returns a pixel-identical copy.
func Resize(src *raster.Buffer, targetW, targetH int, antialias bool) (*raster.Buffer, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("transform: resize target %dx%d must be positive: %w", targetW, targetH, raster.ErrInvalidArgument)
	}
	if targetW == src.W && targetH == src.H {
		return src.Clone(), nil
	}
	dst, err := raster.New(targetW, targetH)
	if err != nil {
		return nil, err
	}
	if antialias {
		resizeBilinear(src, dst)
	} else {
		resizeNearest(src, dst)
	}
	return dst, nil
}

// ScaleBy resamples src by multiplicative factors per axis. Target dimensions
// are floor(src*factor) and must come out positive.
func ScaleBy(src *raster.Buffer, fx, fy float64, antialias bool) (*raster.Buffer, error) {
	targetW := int(math.Floor(float64(src.W) * fx))
	targetH := int(math.Floor(float64(src.H) * fy))
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("transform: scale factors %g, %g collapse %dx%d to %dx%d: %w",
			fx, fy, src.W, src.H, targetW, targetH, raster.ErrInvalidArgument)
	}
	return Resize(src, targetW, targetH, antialias)
}

// Scale keeps the historic dual-mode argument convention: when both arguments
// have absolute value <= 8 they are multiplicative factors, otherwise they
// are absolute target dimensions (floored).
//
// Deprecated: the interpretation flips based on magnitude. Use ScaleBy for
// factors or Resize for absolute dimensions.
func Scale(src *raster.Buffer, x, y float64, antialias bool) (*raster.Buffer, error) {
	if math.Abs(x) <= 8 && math.Abs(y) <= 8 {
		return ScaleBy(src, x, y, antialias)
	}
	return Resize(src, int(math.Floor(x)), int(math.Floor(y)), antialias)
}

// sourceCoord maps an output index to the fractional source coordinate for
// center-aligned resampling.
func sourceCoord(i, srcDim, targetDim int) float64 {
	return (float64(i)+0.5)*float64(srcDim)/float64(targetDim) - 0.5
}

func clampIndex(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// resizeNearest rounds fractional source coordinates half to even. On exact
// integer downscales every coordinate lands on k+0.5, and half-up rounding
// would shift the whole result one pixel right and down.
func resizeNearest(src, dst *raster.Buffer) {
	xmap := make([]int, dst.W)
	for x := 0; x < dst.W; x++ {
		xmap[x] = clampIndex(int(math.RoundToEven(sourceCoord(x, src.W, dst.W))), src.W-1)
	}
	for y := 0; y < dst.H; y++ {
		sy := clampIndex(int(math.RoundToEven(sourceCoord(y, src.H, dst.H))), src.H-1)
		srcRow := src.Pix[sy*src.W*4:]
		dstRow := dst.Pix[y*dst.W*4:]
		for x := 0; x < dst.W; x++ {
			copy(dstRow[x*4:x*4+4], srcRow[xmap[x]*4:xmap[x]*4+4])
		}
	}
}

func resizeBilinear(src, dst *raster.Buffer) {
	for y := 0; y < dst.H; y++ {
		fy := sourceCoord(y, src.H, dst.H)
		y0 := clampIndex(int(math.Floor(fy)), src.H-1)
		y1 := clampIndex(y0+1, src.H-1)
		wy := fy - math.Floor(fy)
		if fy < 0 {
			wy = 0
		}
		for x := 0; x < dst.W; x++ {
			fx := sourceCoord(x, src.W, dst.W)
			x0 := clampIndex(int(math.Floor(fx)), src.W-1)
			x1 := clampIndex(x0+1, src.W-1)
			wx := fx - math.Floor(fx)
			if fx < 0 {
				wx = 0
			}

			o00 := src.Offset(x0, y0)
			o10 := src.Offset(x1, y0)
			o01 := src.Offset(x0, y1)
			o11 := src.Offset(x1, y1)
			d := dst.Offset(x, y)
			for c := 0; c < 4; c++ {
				v := (1-wx)*(1-wy)*float64(src.Pix[o00+c]) +
					wx*(1-wy)*float64(src.Pix[o10+c]) +
					(1-wx)*wy*float64(src.Pix[o01+c]) +
					wx*wy*float64(src.Pix[o11+c])
				dst.Pix[d+c] = raster.Clamp8(int(math.RoundToEven(v)))
			}
		}
	}
}
