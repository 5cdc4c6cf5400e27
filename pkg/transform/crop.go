package transform

import (
	"fmt"

	"github.com/user/rasterkit/pkg/raster"
)

// Crop extracts the bounding rectangle of four 1-based corner points,
// clipped to the buffer. An empty intersection fails with ErrInvalidArgument.
func Crop(src *raster.Buffer, corners [4]raster.Point) (*raster.Buffer, error) {
	// 1-based corners to 0-based bounds, converted once here.
	minX, minY := corners[0].X-1, corners[0].Y-1
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		x, y := p.X-1, p.Y-1
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > src.W-1 {
		maxX = src.W - 1
	}
	if maxY > src.H-1 {
		maxY = src.H - 1
	}

	w := maxX - minX + 1
	h := maxY - minY + 1
	if minX > maxX || minY > maxY {
		return nil, fmt.Errorf("transform: crop region lies outside the %dx%d image: %w", src.W, src.H, raster.ErrInvalidArgument)
	}

	dst, err := raster.New(w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		srcOff := src.Offset(minX, minY+y)
		copy(dst.Pix[y*w*4:(y+1)*w*4], src.Pix[srcOff:srcOff+w*4])
	}
	return dst, nil
}
