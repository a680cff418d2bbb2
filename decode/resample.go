package decode

import (
	"image"

	"golang.org/x/image/draw"
)

// Resample scales img to width x height using interp.
// A nil interp selects bilinear filtering.
func Resample(img image.Image, width, height int, interp draw.Interpolator) *image.RGBA {
	width = max(width, 0)
	height = max(height, 0)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return dst
	}

	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	if interp == nil {
		interp = draw.ApproxBiLinear
	}
	interp.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
