// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"

	"golang.org/x/image/draw"
)

// DrawImageOptions defines options for drawing images.
type DrawImageOptions struct {
	// SrcRect is the source rectangle within the image.
	// If nil, the entire image is used.
	SrcRect *image.Rectangle

	// Size scales the drawn image to the given dimensions.
	// A zero Size draws the image at its original size.
	Size image.Point

	// Filter is the interpolation mode for scaling.
	Filter Filter
}

// Filter specifies the interpolation mode for image scaling.
type Filter uint8

const (
	// FilterNearest uses nearest-neighbor interpolation.
	FilterNearest Filter = iota

	// FilterBilinear uses bilinear interpolation.
	FilterBilinear

	// FilterCatmullRom uses the Catmull-Rom kernel. Slowest, sharpest.
	FilterCatmullRom
)

// Interpolator returns the x/image/draw interpolator for the filter.
func (f Filter) Interpolator() draw.Interpolator {
	switch f {
	case FilterBilinear:
		return draw.ApproxBiLinear
	case FilterCatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	case FilterCatmullRom:
		return "catmull-rom"
	default:
		return "unknown"
	}
}
