package draw

import (
	"fmt"

	"github.com/user/rasterkit/pkg/compose"
	"github.com/user/rasterkit/pkg/raster"
)

// Ellipse draws an axis-aligned ellipse centered at the 1-based point center
// with radii rx and ry. fill true fills the interior; fill false draws a
// ring thickness pixels wide, falling back to a filled ellipse when the
// inner radii would collapse to zero or less.
func Ellipse(buf *raster.Buffer, center raster.Point, rx, ry int, c raster.Color, fill bool, thickness int) (*raster.Buffer, error) {
	if rx <= 0 || ry <= 0 {
		return nil, fmt.Errorf("draw: ellipse radii %dx%d must be positive: %w", rx, ry, raster.ErrInvalidArgument)
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("draw: ellipse thickness %d must be positive: %w", thickness, raster.ErrInvalidArgument)
	}

	cx, cy := center.X-1, center.Y-1

	innerRx := rx - thickness
	innerRy := ry - thickness
	ringOnly := !fill && innerRx > 0 && innerRy > 0

	out := buf.Clone()
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if !insideEllipse(x-cx, y-cy, rx, ry) {
				continue
			}
			if ringOnly && insideEllipse(x-cx, y-cy, innerRx, innerRy) {
				continue
			}
			compose.BlendPixel(out, x, y, c)
		}
	}
	return out, nil
}

// insideEllipse evaluates the implicit equation (dx/rx)^2 + (dy/ry)^2 <= 1
// scaled to integer arithmetic.
func insideEllipse(dx, dy, rx, ry int) bool {
	// dx^2*ry^2 + dy^2*rx^2 <= rx^2*ry^2
	return dx*dx*ry*ry+dy*dy*rx*rx <= rx*rx*ry*ry
}
