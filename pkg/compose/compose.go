// Package compose implements alpha compositing: blended pixel writes and
// rectangular blits with clipping.
package compose

import "github.com/user/rasterkit/pkg/raster"

// BlendPixel composites c over the pixel at the 0-based coordinate (x,y)
// using the standard "over" operator in integer arithmetic. Out-of-bounds
// writes are a no-op. This is the one in-place primitive; the rasterizer
// calls it on buffers it owns.
func BlendPixel(dst *raster.Buffer, x, y int, c raster.Color) {
	if !dst.InBounds(x, y) {
		return
	}
	o := dst.Offset(x, y)
	srcA := int(c.A)
	if srcA == 255 {
		dst.Pix[o] = c.R
		dst.Pix[o+1] = c.G
		dst.Pix[o+2] = c.B
		dst.Pix[o+3] = 255
		return
	}
	dstA := int(dst.Pix[o+3])
	outA := srcA + dstA*(255-srcA)/255
	dst.Pix[o] = raster.Clamp8((srcA*int(c.R) + (255-srcA)*int(dst.Pix[o])) / 255)
	dst.Pix[o+1] = raster.Clamp8((srcA*int(c.G) + (255-srcA)*int(dst.Pix[o+1])) / 255)
	dst.Pix[o+2] = raster.Clamp8((srcA*int(c.B) + (255-srcA)*int(dst.Pix[o+2])) / 255)
	dst.Pix[o+3] = raster.Clamp8(outA)
}

// Blit places src's top-left at the 1-based position (x,y) on dst and
// returns the combined image as a new buffer; dst is never mutated. The
// overlap is clipped on all sides, and no overlap returns a plain copy.
// With mixAlpha true every overlapping pixel is alpha-blended; with false
// source pixels are copied wherever their alpha is nonzero (binary stencil).
func Blit(src, dst *raster.Buffer, x, y int, mixAlpha bool) *raster.Buffer {
	out := dst.Clone()

	// 1-based origin to 0-based, converted once here.
	ox, oy := x-1, y-1

	srcX0, srcY0 := 0, 0
	dstX0, dstY0 := ox, oy
	if dstX0 < 0 {
		srcX0 = -dstX0
		dstX0 = 0
	}
	if dstY0 < 0 {
		srcY0 = -dstY0
		dstY0 = 0
	}
	w := src.W - srcX0
	if dstX0+w > dst.W {
		w = dst.W - dstX0
	}
	h := src.H - srcY0
	if dstY0+h > dst.H {
		h = dst.H - dstY0
	}
	if w <= 0 || h <= 0 {
		return out
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			so := src.Offset(srcX0+col, srcY0+row)
			if mixAlpha {
				BlendPixel(out, dstX0+col, dstY0+row,
					raster.RGBA(src.Pix[so], src.Pix[so+1], src.Pix[so+2], src.Pix[so+3]))
				continue
			}
			if src.Pix[so+3] != 0 {
				do := out.Offset(dstX0+col, dstY0+row)
				copy(out.Pix[do:do+4], src.Pix[so:so+4])
			}
		}
	}
	return out
}
