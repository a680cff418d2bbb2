// Package decode turns fetched asset bytes into renderer-ready values.
//
// It covers the format-specific half of the loading pipeline:
//
//   - Sniff: classify a payload by magic number, markup and URL extension
//   - Image: decode raster formats (PNG, JPEG, GIF, BMP, TIFF, WebP)
//   - RasterizeSVG / SVGSize: rasterize vector markup at a target size
//   - Resample: scale pixel data with a chosen interpolator
//   - Text: BOM-aware decoding of text payloads to UTF-8
//   - Font: parse TrueType/OpenType font files
//
// The package knows nothing about caching or textures; the loader decides
// what to do with the decoded values.
package decode

import "errors"

// Decode errors.
var (
	// ErrEmptyData is returned when a payload has no bytes.
	ErrEmptyData = errors.New("decode: empty data")

	// ErrUnsupportedFormat is returned when no decoder accepts the payload.
	ErrUnsupportedFormat = errors.New("decode: unsupported format")

	// ErrInvalidSVG is returned for markup without usable intrinsic size.
	ErrInvalidSVG = errors.New("decode: invalid svg")
)
