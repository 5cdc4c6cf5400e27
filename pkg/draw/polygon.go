package draw

import (
	"fmt"
	"math"
	"sort"

	"github.com/user/rasterkit/pkg/compose"
	"github.com/user/rasterkit/pkg/raster"
)

// Polygon draws a closed polygon. points is a 1-based closed ring: the first
// point must equal the last. With fill true the interior is filled by
// even-odd scanline rule and the edges are stroked when thickness > 0; with
// fill false only the edges are stroked. The degenerate two-point ring
// [p, p] strokes a single dot.
func Polygon(buf *raster.Buffer, points []raster.Point, c raster.Color, fill bool, thickness int) (*raster.Buffer, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("draw: polygon ring has %d points, need at least 2: %w", len(points), raster.ErrInvalidArgument)
	}
	if points[0] != points[len(points)-1] {
		return nil, fmt.Errorf("draw: polygon ring is not closed (first point != last): %w", raster.ErrInvalidArgument)
	}

	// 1-based ring to 0-based vertices, converted once here.
	verts := make([]raster.Point, len(points))
	for i, p := range points {
		verts[i] = raster.Point{X: p.X - 1, Y: p.Y - 1}
	}

	out := buf.Clone()
	if fill {
		fillPolygon(out, verts, c)
	}
	if !fill || thickness > 0 {
		for i := 0; i < len(verts)-1; i++ {
			strokeLine(out, verts[i].X, verts[i].Y, verts[i+1].X, verts[i+1].Y, c, thickness)
		}
	}
	return out, nil
}

// fillPolygon fills the interior by the even-odd rule: each scanline is
// sampled at y+0.5, edge crossings are collected with half-open vertical
// extents so shared vertices count once, and spans between crossing pairs
// are blended.
func fillPolygon(out *raster.Buffer, verts []raster.Point, c raster.Color) {
	minY, maxY := verts[0].Y, verts[0].Y
	for _, v := range verts[1:] {
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > out.H-1 {
		maxY = out.H - 1
	}

	var xs []float64
	for y := minY; y <= maxY; y++ {
		scanY := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < len(verts)-1; i++ {
			y1 := float64(verts[i].Y)
			y2 := float64(verts[i+1].Y)
			if (y1 <= scanY && scanY < y2) || (y2 <= scanY && scanY < y1) {
				x1 := float64(verts[i].X)
				x2 := float64(verts[i+1].X)
				xs = append(xs, x1+(scanY-y1)*(x2-x1)/(y2-y1))
			}
		}
		sort.Float64s(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			left := int(math.Ceil(xs[k]))
			right := int(math.Floor(xs[k+1]))
			for x := left; x <= right; x++ {
				compose.BlendPixel(out, x, y, c)
			}
		}
	}
}
