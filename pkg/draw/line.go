// Package draw rasterizes lines, polygons and ellipses onto pixel buffers.
// Geometric inputs are 1-based and converted to 0-based once at each entry
// point. Every operation copies its input and alpha-blends onto the copy.
package draw

import (
	"github.com/user/rasterkit/pkg/compose"
	"github.com/user/rasterkit/pkg/raster"
)

// Line draws a Bresenham line from (x0,y0) to (x1,y1), 1-based inclusive
// endpoints. thickness <= 1 blends single pixels; larger thickness stamps a
// disk brush of radius floor(thickness/2) at every step.
func Line(buf *raster.Buffer, x0, y0, x1, y1 int, c raster.Color, thickness int) (*raster.Buffer, error) {
	out := buf.Clone()
	strokeLine(out, x0-1, y0-1, x1-1, y1-1, c, thickness)
	return out, nil
}

// strokeLine draws onto out in place with 0-based endpoints.
func strokeLine(out *raster.Buffer, x0, y0, x1, y1 int, c raster.Color, thickness int) {
	radius := 0
	if thickness > 1 {
		radius = thickness / 2
	}

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	x, y := x0, y0
	if dx >= dy {
		err := dx / 2
		for {
			stamp(out, x, y, c, radius)
			if x == x1 {
				break
			}
			err -= dy
			if err < 0 {
				err += dx
				y += sy
			}
			x += sx
		}
	} else {
		err := dy / 2
		for {
			stamp(out, x, y, c, radius)
			if y == y1 {
				break
			}
			err -= dx
			if err < 0 {
				err += dy
				x += sx
			}
			y += sy
		}
	}
}

// stamp blends one pixel, or a disk of the given radius around it.
func stamp(out *raster.Buffer, x, y int, c raster.Color, radius int) {
	if radius <= 0 {
		compose.BlendPixel(out, x, y, c)
		return
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				compose.BlendPixel(out, x+dx, y+dy, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
