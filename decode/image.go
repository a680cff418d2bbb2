package decode

import (
	"bytes"
	"fmt"
	"image"
	"io"

	// Raster formats understood by Image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// Image decodes a raster image, auto-detecting the format.
// It returns the decoded image and the registered format name.
func Image(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	return DecodeImage(bytes.NewReader(data))
}

// DecodeImage decodes a raster image from r, auto-detecting the format.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if err == image.ErrFormat {
			return nil, "", fmt.Errorf("decode: image: %w", ErrUnsupportedFormat)
		}
		return nil, "", fmt.Errorf("decode: image: %w", err)
	}
	return img, format, nil
}

// ToRGBA converts img to an *image.RGBA anchored at the origin.
// An *image.RGBA already anchored at the origin is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
