package stdcodec

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/user/rasterkit/pkg/raster"
)

// ScaleHQ resamples with the Catmull-Rom kernel from x/image/draw. The CLI
// uses it for thumbnails; the portable nearest/bilinear resampler lives in
// pkg/transform.
func ScaleHQ(src *raster.Buffer, width, height int) (*raster.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("stdcodec: scale target %dx%d must be positive: %w", width, height, raster.ErrInvalidArgument)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src.ToImage(), image.Rect(0, 0, src.W, src.H), draw.Src, nil)
	return raster.FromImage(dst)
}
