// Package pipeline applies an ordered list of image operations, typically
// loaded from a YAML pipeline file.
package pipeline

import (
	"fmt"

	"github.com/user/rasterkit/pkg/draw"
	"github.com/user/rasterkit/pkg/filter"
	"github.com/user/rasterkit/pkg/ports"
	"github.com/user/rasterkit/pkg/raster"
	"github.com/user/rasterkit/pkg/transform"
)

// Step is one operation in a pipeline. Op selects the operation; the other
// fields parameterize it and are ignored by operations that do not use them.
type Step struct {
	Op string `yaml:"op"`

	// resize / scale_by
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	FactorX   float64 `yaml:"fx"`
	FactorY   float64 `yaml:"fy"`
	Antialias bool    `yaml:"antialias"`

	// rotate
	Degrees float64 `yaml:"degrees"`

	// crop (4 corner points), polygon (closed ring), line (2 endpoints)
	Points [][]int `yaml:"points"`

	// line / polygon / ellipse
	Color     []int `yaml:"color"`
	Fill      bool  `yaml:"fill"`
	Thickness int   `yaml:"thickness"`

	// ellipse
	Center  []int `yaml:"center"`
	RadiusX int   `yaml:"rx"`
	RadiusY int   `yaml:"ry"`

	// blur
	Radius int `yaml:"radius"`

	// threshold
	Channel string `yaml:"channel"`
	Value   int    `yaml:"value"`

	// replace
	From []int `yaml:"from"`
	To   []int `yaml:"to"`

	// cellshade
	Palette [][]int `yaml:"palette"`
}

// Apply runs the steps in order, each consuming the previous step's output.
func Apply(buf *raster.Buffer, steps []Step, logger ports.Logger) (*raster.Buffer, error) {
	return ApplyWithWorkers(buf, steps, 0, logger)
}

// ApplyWithWorkers is Apply with an explicit worker count for the parallel
// filters; workers <= 0 uses the CPU count. Output is byte-identical for any
// worker count.
func ApplyWithWorkers(buf *raster.Buffer, steps []Step, workers int, logger ports.Logger) (*raster.Buffer, error) {
	log := logger.WithComponent("pipeline")
	for i, step := range steps {
		log.Debug("Step %d/%d: %s", i+1, len(steps), step.Op)
		next, err := applyStep(buf, step, workers)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		buf = next
	}
	return buf, nil
}

func applyStep(buf *raster.Buffer, step Step, workers int) (*raster.Buffer, error) {
	switch step.Op {
	case "resize":
		return transform.Resize(buf, step.Width, step.Height, step.Antialias)
	case "scale_by":
		return transform.ScaleBy(buf, step.FactorX, step.FactorY, step.Antialias)
	case "crop":
		corners, err := cornerPoints(step.Points)
		if err != nil {
			return nil, err
		}
		return transform.Crop(buf, corners)
	case "rotate":
		return transform.Rotate(buf, step.Degrees)
	case "line":
		if len(step.Points) != 2 {
			return nil, fmt.Errorf("line needs 2 points, got %d: %w", len(step.Points), raster.ErrInvalidArgument)
		}
		pts, err := toPoints(step.Points)
		if err != nil {
			return nil, err
		}
		c, err := raster.ColorFromComponents(step.Color)
		if err != nil {
			return nil, err
		}
		return draw.Line(buf, pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, c, step.Thickness)
	case "polygon":
		pts, err := toPoints(step.Points)
		if err != nil {
			return nil, err
		}
		c, err := raster.ColorFromComponents(step.Color)
		if err != nil {
			return nil, err
		}
		return draw.Polygon(buf, pts, c, step.Fill, step.Thickness)
	case "ellipse":
		if len(step.Center) != 2 {
			return nil, fmt.Errorf("ellipse center needs 2 coordinates, got %d: %w", len(step.Center), raster.ErrInvalidArgument)
		}
		c, err := raster.ColorFromComponents(step.Color)
		if err != nil {
			return nil, err
		}
		center := raster.Point{X: step.Center[0], Y: step.Center[1]}
		return draw.Ellipse(buf, center, step.RadiusX, step.RadiusY, c, step.Fill, step.Thickness)
	case "grayscale":
		return filter.Grayscale(buf), nil
	case "invert":
		return filter.InvertWithWorkers(buf, workers), nil
	case "replace":
		from, err := raster.ColorFromComponents(step.From)
		if err != nil {
			return nil, err
		}
		to, err := raster.ColorFromComponents(step.To)
		if err != nil {
			return nil, err
		}
		return filter.ReplaceColor(buf, from, to), nil
	case "threshold":
		ch, err := filter.ParseChannel(step.Channel)
		if err != nil {
			return nil, err
		}
		repl := raster.RGBA(0, 0, 0, 0)
		if len(step.Color) > 0 {
			repl, err = raster.ColorFromComponents(step.Color)
			if err != nil {
				return nil, err
			}
		}
		return filter.Threshold(buf, ch, raster.Clamp8(step.Value), repl)
	case "blur":
		return filter.BlurWithWorkers(buf, step.Radius, workers)
	case "edge":
		return filter.EdgeDetectWithWorkers(buf, workers)
	case "cellshade":
		pal, err := raster.PaletteFromComponents(step.Palette)
		if err != nil {
			return nil, err
		}
		return filter.Cellshade(buf, pal)
	default:
		return nil, fmt.Errorf("unknown operation %q: %w", step.Op, raster.ErrInvalidArgument)
	}
}

func toPoints(rows [][]int) ([]raster.Point, error) {
	pts := make([]raster.Point, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("point %d has %d coordinates, want 2: %w", i, len(row), raster.ErrInvalidArgument)
		}
		pts[i] = raster.Point{X: row[0], Y: row[1]}
	}
	return pts, nil
}

func cornerPoints(rows [][]int) ([4]raster.Point, error) {
	var corners [4]raster.Point
	if len(rows) != 4 {
		return corners, fmt.Errorf("crop needs 4 corner points, got %d: %w", len(rows), raster.ErrInvalidArgument)
	}
	pts, err := toPoints(rows)
	if err != nil {
		return corners, err
	}
	copy(corners[:], pts)
	return corners, nil
}
