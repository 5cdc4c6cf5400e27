// Package filter implements per-pixel and convolution filters. Every filter
// takes one buffer and returns a new one; inputs are never mutated.
package filter

import (
	"fmt"
	"math"

	"github.com/user/rasterkit/pkg/parallel"
	"github.com/user/rasterkit/pkg/raster"
)

// Grayscale converts every pixel to its BT.601 luminance
// (0.299R + 0.587G + 0.114B) in all three color channels. Alpha unchanged.
func Grayscale(img *raster.Buffer) *raster.Buffer {
	out := img.Clone()
	for o := 0; o < len(out.Pix); o += 4 {
		lum := luminance(out.Pix[o], out.Pix[o+1], out.Pix[o+2])
		out.Pix[o] = lum
		out.Pix[o+1] = lum
		out.Pix[o+2] = lum
	}
	return out
}

func luminance(r, g, b uint8) uint8 {
	return raster.Clamp8(int(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))))
}

// Invert replaces each color channel with 255-value. Alpha unchanged.
// Large images are split across the worker pool.
func Invert(img *raster.Buffer) *raster.Buffer {
	return InvertWithWorkers(img, 0)
}

// InvertWithWorkers is Invert with an explicit worker count; workers <= 0
// uses the CPU count. Output is byte-identical for any worker count.
func InvertWithWorkers(img *raster.Buffer, workers int) *raster.Buffer {
	out := img.Clone()
	n := img.W * img.H
	if n < parallel.ParallelThreshold {
		workers = 1
	}
	parallel.ForEachRange(n, workers, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			o := p * 4
			out.Pix[o] = 255 - out.Pix[o]
			out.Pix[o+1] = 255 - out.Pix[o+1]
			out.Pix[o+2] = 255 - out.Pix[o+2]
		}
	})
	return out
}

// ReplaceColor rewrites every pixel matching src with dst. A pixel matches
// on R, G and B, plus alpha when src carries one. The replacement sets R, G
// and B, plus alpha only when dst carries one.
func ReplaceColor(img *raster.Buffer, src, dst raster.Color) *raster.Buffer {
	out := img.Clone()
	for o := 0; o < len(out.Pix); o += 4 {
		if out.Pix[o] != src.R || out.Pix[o+1] != src.G || out.Pix[o+2] != src.B {
			continue
		}
		if src.HasAlpha && out.Pix[o+3] != src.A {
			continue
		}
		out.Pix[o] = dst.R
		out.Pix[o+1] = dst.G
		out.Pix[o+2] = dst.B
		if dst.HasAlpha {
			out.Pix[o+3] = dst.A
		}
	}
	return out
}

// Channel names one of the four RGBA channels for Threshold.
type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

// ParseChannel parses a one-letter channel name.
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "r", "R":
		return ChannelR, nil
	case "g", "G":
		return ChannelG, nil
	case "b", "B":
		return ChannelB, nil
	case "a", "A":
		return ChannelA, nil
	default:
		return 0, fmt.Errorf("filter: unknown channel %q: %w", s, raster.ErrInvalidArgument)
	}
}

// Threshold overwrites every pixel whose named channel equals value exactly
// with the replacement color. Alpha is only overwritten when the replacement
// carries one; other pixels pass through unchanged.
func Threshold(img *raster.Buffer, ch Channel, value uint8, replacement raster.Color) (*raster.Buffer, error) {
	if ch < ChannelR || ch > ChannelA {
		return nil, fmt.Errorf("filter: channel %d out of range: %w", ch, raster.ErrInvalidArgument)
	}
	out := img.Clone()
	for o := 0; o < len(out.Pix); o += 4 {
		if out.Pix[o+int(ch)] != value {
			continue
		}
		out.Pix[o] = replacement.R
		out.Pix[o+1] = replacement.G
		out.Pix[o+2] = replacement.B
		if replacement.HasAlpha {
			out.Pix[o+3] = replacement.A
		}
	}
	return out, nil
}

// Cellshade snaps every pixel to the nearest palette entry by squared RGB
// distance; ties resolve to the earliest entry. Alpha comes from the palette
// entry when it carries one, otherwise the source pixel's alpha is kept.
func Cellshade(img *raster.Buffer, palette raster.Palette) (*raster.Buffer, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("filter: cellshade palette must not be empty: %w", raster.ErrInvalidArgument)
	}
	out := img.Clone()
	for o := 0; o < len(out.Pix); o += 4 {
		best := 0
		bestDist := paletteDist(out.Pix[o], out.Pix[o+1], out.Pix[o+2], palette[0])
		for i := 1; i < len(palette); i++ {
			d := paletteDist(out.Pix[o], out.Pix[o+1], out.Pix[o+2], palette[i])
			if d < bestDist {
				best = i
				bestDist = d
			}
		}
		entry := palette[best]
		out.Pix[o] = entry.R
		out.Pix[o+1] = entry.G
		out.Pix[o+2] = entry.B
		if entry.HasAlpha {
			out.Pix[o+3] = entry.A
		}
	}
	return out, nil
}

func paletteDist(r, g, b uint8, c raster.Color) int {
	dr := int(r) - int(c.R)
	dg := int(g) - int(c.G)
	db := int(b) - int(c.B)
	return dr*dr + dg*dg + db*db
}
