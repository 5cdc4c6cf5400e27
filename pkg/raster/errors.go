package raster

import "errors"

// The engine's error taxonomy. Codecs and operations wrap these sentinels
// with a message naming the structural check that failed, so callers can
// match the category with errors.Is while logs stay descriptive.
var (
	// ErrFormat marks input that is not the expected format at all
	// (bad magic, missing required header or chunk).
	ErrFormat = errors.New("format error")

	// ErrUnsupported marks structurally valid input outside the supported
	// feature subset (interlaced PNG, compressed BMP, odd bit depths).
	ErrUnsupported = errors.New("unsupported format")

	// ErrCorrupt marks input that fails mid-parse (short pixel data,
	// unknown filter type byte, bad compressed stream).
	ErrCorrupt = errors.New("corrupt data")

	// ErrInvalidArgument marks bad caller input: non-positive dimensions,
	// malformed geometry, shape mismatches.
	ErrInvalidArgument = errors.New("invalid argument")
)
