// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
)

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Unlike GPU-backed targets, an ImageSurface may be resized at any time and
// may be empty (0x0). It is safe for concurrent use: the texture layer reads
// its dimensions from loader and watcher goroutines.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	img := s.Snapshot()
type ImageSurface struct {
	mu     sync.RWMutex
	width  int
	height int
	img    *image.RGBA

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
// Negative dimensions are clamped to zero.
func NewImageSurface(width, height int) *ImageSurface {
	width = max(width, 0)
	height = max(height, 0)

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface will render into the provided image directly until it is
// resized.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	bounds := img.Bounds()

	return &ImageSurface{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		img:    img,
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// DrawImage composites img onto the surface with its top-left corner at at.
// If opts is nil, the whole image is drawn at its original size.
func (s *ImageSurface) DrawImage(img image.Image, at image.Point, opts *DrawImageOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || img == nil {
		return
	}

	src := img.Bounds()
	if opts != nil && opts.SrcRect != nil {
		src = opts.SrcRect.Intersect(src)
	}
	if src.Empty() {
		return
	}

	if opts == nil || opts.Size == (image.Point{}) {
		dst := image.Rectangle{Min: at, Max: at.Add(src.Size())}
		draw.Draw(s.img, dst, img, src.Min, draw.Over)
		return
	}

	dst := image.Rectangle{Min: at, Max: at.Add(opts.Size)}
	opts.Filter.Interpolator().Scale(s.img, dst, img, src, draw.Over, nil)
}

// Resize changes the surface dimensions, preserving the overlapping
// top-left region of the previous content.
func (s *ImageSurface) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return ErrInvalidSize
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if width == s.width && height == s.height {
		return nil
	}

	next := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(next, next.Bounds(), s.img, image.Point{}, draw.Src)

	s.img = next
	s.width = width
	s.height = height
	return nil
}

// Replace swaps the surface content for a copy of img, adopting its size.
func (s *ImageSurface) Replace(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	b := img.Bounds()
	next := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(next, next.Bounds(), img, b.Min, draw.Src)

	s.img = next
	s.width = b.Dx()
	s.height = b.Dy()
	return nil
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil
	}

	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(result.Pix, s.img.Pix)
	return result
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	return nil
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy, and is replaced by Resize.
func (s *ImageSurface) Image() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}
