package raster

import "fmt"

// Color is an RGBA8 color. HasAlpha records whether the caller supplied the
// alpha component: several operations (replace, threshold, cellshade) only
// touch a pixel's alpha when the color carried one.
type Color struct {
	R, G, B, A uint8
	HasAlpha   bool
}

// RGB builds an opaque color from three components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA builds a color from four components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a, HasAlpha: true}
}

// Clamp8 clamps an integer to the [0,255] channel range.
func Clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ColorFromComponents builds a Color from 3 or 4 integer components,
// clamping each to [0,255].
func ColorFromComponents(vals []int) (Color, error) {
	switch len(vals) {
	case 3:
		return RGB(Clamp8(vals[0]), Clamp8(vals[1]), Clamp8(vals[2])), nil
	case 4:
		return RGBA(Clamp8(vals[0]), Clamp8(vals[1]), Clamp8(vals[2]), Clamp8(vals[3])), nil
	default:
		return Color{}, fmt.Errorf("raster: color needs 3 or 4 components, got %d: %w", len(vals), ErrInvalidArgument)
	}
}

// Palette is an ordered list of colors. It is treated as immutable for the
// duration of any operation that receives it.
type Palette []Color

// PaletteFromComponents builds a palette from rows of 3 or 4 components.
// All rows must have the same component count.
func PaletteFromComponents(rows [][]int) (Palette, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("raster: palette must not be empty: %w", ErrInvalidArgument)
	}
	width := len(rows[0])
	pal := make(Palette, 0, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("raster: palette row %d has %d components, want %d: %w", i, len(row), width, ErrInvalidArgument)
		}
		c, err := ColorFromComponents(row)
		if err != nil {
			return nil, err
		}
		pal = append(pal, c)
	}
	return pal, nil
}

// Point is a 2D coordinate. User-facing geometric APIs (polygon rings, crop
// corners, blit origins) take 1-based points; each operation converts to
// 0-based exactly once at its boundary.
type Point struct {
	X, Y int
}
