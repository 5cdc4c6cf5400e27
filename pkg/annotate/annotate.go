// Package annotate renders text captions onto images using the gg library.
// It is a host-side convenience for the CLI; nothing in the engine core
// depends on it.
package annotate

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/user/rasterkit/pkg/raster"
)

// Position selects where the caption bar sits.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// Options configures Caption.
type Options struct {
	// Position of the caption bar, bottom by default.
	Position Position
	// BarHeight in pixels; 0 picks a height from the image size.
	BarHeight int
	// FontPath optionally loads a TTF; empty uses the built-in face.
	FontPath string
	// FontSize in points, used only when FontPath is set.
	FontSize float64
}

// Caption draws a translucent bar with centered text over the top or bottom
// edge and returns the result as a new buffer.
func Caption(src *raster.Buffer, text string, opts Options) (*raster.Buffer, error) {
	if text == "" {
		return src.Clone(), nil
	}

	barHeight := opts.BarHeight
	if barHeight <= 0 {
		barHeight = src.H / 10
		if barHeight < 16 {
			barHeight = 16
		}
	}
	if barHeight > src.H {
		barHeight = src.H
	}

	dc := gg.NewContext(src.W, src.H)
	dc.DrawImage(src.ToImage(), 0, 0)

	if opts.FontPath != "" {
		size := opts.FontSize
		if size <= 0 {
			size = float64(barHeight) * 0.6
		}
		if err := dc.LoadFontFace(opts.FontPath, size); err != nil {
			return nil, fmt.Errorf("annotate: load font %s: %w", opts.FontPath, err)
		}
	}

	barY := 0
	if opts.Position != PositionTop {
		barY = src.H - barHeight
	}

	dc.SetColor(color.NRGBA{A: 160})
	dc.DrawRectangle(0, float64(barY), float64(src.W), float64(barHeight))
	dc.Fill()

	dc.SetColor(color.White)
	dc.DrawStringAnchored(text, float64(src.W)/2, float64(barY)+float64(barHeight)/2, 0.5, 0.5)

	return raster.FromImage(dc.Image())
}
