// Package main provides the CLI entry point for rasterkit.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/rasterkit/pkg/adapters/logger"
	"github.com/user/rasterkit/pkg/adapters/stdcodec"
	"github.com/user/rasterkit/pkg/annotate"
	"github.com/user/rasterkit/pkg/codec"
	"github.com/user/rasterkit/pkg/codec/bmp"
	"github.com/user/rasterkit/pkg/codec/png"
	"github.com/user/rasterkit/pkg/config"
	"github.com/user/rasterkit/pkg/pipeline"
	"github.com/user/rasterkit/pkg/ports"
	"github.com/user/rasterkit/pkg/raster"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Convert ConvertCmd `cmd:"" help:"Convert an image between PNG and BMP."`
	Apply   ApplyCmd   `cmd:"" help:"Apply a single operation to an image."`
	Run     RunCmd     `cmd:"" help:"Run a YAML pipeline file."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// ConvertCmd defines the convert subcommand.
type ConvertCmd struct {
	Input  string `arg:"" help:"Input image path (PNG or BMP)."`
	Output string `short:"o" required:"" help:"Output image path; the extension picks the format."`

	Compression int    `short:"c" default:"6" help:"PNG compression level (0-9)."`
	Thumbnail   string `help:"Also resample to WxH with the high-quality scaler (e.g., 320x200)."`
	Caption     string `help:"Draw a caption bar with this text onto the output."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ApplyCmd defines the apply subcommand.
type ApplyCmd struct {
	Input  string `arg:"" help:"Input image path (PNG or BMP)."`
	Output string `short:"o" required:"" help:"Output image path; the extension picks the format."`

	Op string `arg:"" enum:"grayscale,invert,blur,edge,rotate,resize,scale" help:"Operation to apply."`

	Radius    int     `default:"1" help:"Blur radius (blur)."`
	Degrees   float64 `help:"Rotation angle in degrees (rotate)."`
	Width     int     `help:"Target width (resize)."`
	Height    int     `help:"Target height (resize)."`
	Factor    float64 `default:"1" help:"Scale factor for both axes (scale)."`
	Antialias bool    `default:"true" negatable:"" help:"Bilinear resampling for resize and scale."`

	Compression int `short:"c" default:"6" help:"PNG compression level (0-9)."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// RunCmd defines the run subcommand.
type RunCmd struct {
	Config string `arg:"" help:"Pipeline YAML file path."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("rasterkit"),
		kong.Description("Decode, transform, filter and encode PNG and BMP images."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// newLogger builds the logger shared by all commands.
func newLogger(level string, quiet bool) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// engine bundles the codec registries used by every command. The stdlib
// backends go first so they pick up format variants the pure codecs reject;
// the pure codecs are the baseline that always exists.
type engine struct {
	png *codec.Registry
	bmp *codec.Registry
	log ports.Logger
}

func newEngine(compression int, log ports.Logger) (*engine, error) {
	pure := &png.Codec{Level: compression}
	std := &stdcodec.PNGCodec{Level: compression}
	pngReg, err := codec.NewRegistry(codec.FormatPNG, log, std, pure)
	if err != nil {
		return nil, err
	}
	bmpReg, err := codec.NewRegistry(codec.FormatBMP, log, stdcodec.NewBMP(), bmp.NewCodec())
	if err != nil {
		return nil, err
	}
	return &engine{png: pngReg, bmp: bmpReg, log: log}, nil
}

// readImage loads and decodes a PNG or BMP file.
func (e *engine) readImage(path string) (*raster.Buffer, error) {
	e.log.Info("Reading %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var buf *raster.Buffer
	switch codec.Detect(data) {
	case codec.FormatPNG:
		buf, err = e.png.Decode(data)
	case codec.FormatBMP:
		buf, err = e.bmp.Decode(data)
	default:
		return nil, fmt.Errorf("%s: %w", path, raster.ErrFormat)
	}
	if err != nil {
		return nil, err
	}
	e.log.Debug("Decoded %s: %dx%d", path, buf.W, buf.H)
	return buf, nil
}

// writeImage encodes and writes the buffer; the output extension picks the
// format, defaulting to PNG.
func (e *engine) writeImage(buf *raster.Buffer, path string) error {
	var (
		data []byte
		err  error
	)
	switch codec.DetectFromPath(path) {
	case codec.FormatBMP:
		data, err = e.bmp.Encode(buf)
	case codec.FormatPNG:
		data, err = e.png.Encode(buf)
	default:
		e.log.Warn("Unknown output extension, writing PNG")
		data, err = e.png.Encode(buf)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	e.log.Info("Output saved to %s", path)
	return nil
}

// Run executes the convert command.
func (cmd *ConvertCmd) Run() error {
	log := newLogger(cmd.LogLevel, cmd.Quiet)
	eng, err := newEngine(cmd.Compression, log)
	if err != nil {
		return err
	}

	buf, err := eng.readImage(cmd.Input)
	if err != nil {
		return err
	}

	if cmd.Thumbnail != "" {
		var w, h int
		if _, err := fmt.Sscanf(cmd.Thumbnail, "%dx%d", &w, &h); err != nil {
			return fmt.Errorf("parse thumbnail size %q: %w", cmd.Thumbnail, raster.ErrInvalidArgument)
		}
		buf, err = stdcodec.ScaleHQ(buf, w, h)
		if err != nil {
			return err
		}
	}

	if cmd.Caption != "" {
		buf, err = annotate.Caption(buf, cmd.Caption, annotate.Options{})
		if err != nil {
			return err
		}
	}

	return eng.writeImage(buf, cmd.Output)
}

// Run executes the apply command.
func (cmd *ApplyCmd) Run() error {
	log := newLogger(cmd.LogLevel, cmd.Quiet)
	eng, err := newEngine(cmd.Compression, log)
	if err != nil {
		return err
	}

	buf, err := eng.readImage(cmd.Input)
	if err != nil {
		return err
	}

	log.Info("Applying %s", cmd.Op)
	step := pipeline.Step{Op: cmd.Op}
	switch cmd.Op {
	case "blur":
		step.Radius = cmd.Radius
	case "rotate":
		step.Degrees = cmd.Degrees
	case "resize":
		step.Width = cmd.Width
		step.Height = cmd.Height
		step.Antialias = cmd.Antialias
	case "scale":
		step.Op = "scale_by"
		step.FactorX = cmd.Factor
		step.FactorY = cmd.Factor
		step.Antialias = cmd.Antialias
	}
	buf, err = pipeline.Apply(buf, []pipeline.Step{step}, log)
	if err != nil {
		return err
	}

	return eng.writeImage(buf, cmd.Output)
}

// Run executes the run command.
func (cmd *RunCmd) Run() error {
	log := newLogger(cmd.LogLevel, cmd.Quiet)

	cfg, err := config.LoadFromFile(cmd.Config)
	if err != nil {
		return err
	}

	eng, err := newEngine(cfg.Compression, log)
	if err != nil {
		return err
	}

	buf, err := eng.readImage(cfg.InputPath)
	if err != nil {
		return err
	}

	log.Info("Starting pipeline with %d steps", len(cfg.Steps))
	buf, err = pipeline.ApplyWithWorkers(buf, cfg.Steps, cfg.Workers, log)
	if err != nil {
		return err
	}

	if err := eng.writeImage(buf, cfg.OutputPath); err != nil {
		return err
	}
	log.Info("Pipeline completed successfully")
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("rasterkit version %s", version))
	return nil
}
