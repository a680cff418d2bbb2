// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
)

// Surface is the drawing-surface abstraction observed by textures.
//
// Implementations may be CPU-backed or live elsewhere; the only contract the
// texture layer relies on is that Width and Height report the current
// dimensions and Snapshot returns the current pixels.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Snapshot returns the current surface contents as an RGBA image.
	// The returned image is a copy; modifications to it do not affect the surface.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// After Close, the surface must not be used.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// ResizableSurface is an optional interface for surfaces that support resizing.
type ResizableSurface interface {
	Surface

	// Resize changes the surface dimensions.
	// Content inside the new bounds is preserved.
	Resize(width, height int) error
}

// Errors.
var (
	// ErrClosed is returned when operating on a closed surface.
	ErrClosed = errors.New("surface: closed")

	// ErrInvalidSize is returned for negative dimensions.
	ErrInvalidSize = errors.New("surface: invalid size")
)
