package decode

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
)

const testSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="512" height="512" viewBox="0 0 512 512">
  <rect x="0" y="0" width="512" height="512" fill="#ff0000"/>
</svg>`

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{10, 20, 30, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	pngData := encodePNG(t, 2, 2)

	tests := []struct {
		name string
		data []byte
		url  string
		want Kind
	}{
		{"png magic", pngData, "http://host/unknown.bin", KindImage},
		{"png magic wins over extension", pngData, "http://host/a.json", KindImage},
		{"svg markup", []byte(testSVG), "http://host/logo", KindSVG},
		{"svg bare", []byte("  <svg width='1' height='1'></svg>"), "", KindSVG},
		{"font magic", goregular.TTF, "font.bin", KindFont},
		{"json by extension", []byte(`{"a":1}`), "http://host/data.json?v=2", KindJSON},
		{"text fallback", []byte("hello"), "http://host/readme", KindText},
		{"binary", []byte{0x00, 0xff, 0xfe, 0x80, 0x81}, "blob", KindUnknown},
		{"empty uses url", nil, "a.png", KindImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.data, tt.url); got != tt.want {
				t.Errorf("Sniff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindIsTexture(t *testing.T) {
	if !KindImage.IsTexture() || !KindSVG.IsTexture() {
		t.Error("image and svg kinds should produce textures")
	}
	if KindText.IsTexture() || KindFont.IsTexture() {
		t.Error("text and font kinds should not produce textures")
	}
}

func TestImage(t *testing.T) {
	img, format, err := Image(encodePNG(t, 4, 3))
	if err != nil {
		t.Fatalf("Image() = %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", b)
	}
}

func TestImageErrors(t *testing.T) {
	if _, _, err := Image(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Image(nil) = %v, want ErrEmptyData", err)
	}
	if _, _, err := Image([]byte("definitely not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Image(text) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 2, 6, 5))
	src.SetNRGBA(2, 2, color.NRGBA{255, 0, 0, 255})

	got := ToRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("bounds = %v, want (0,0)-(4,3)", got.Bounds())
	}
	if c := got.RGBAAt(0, 0); c.R != 255 {
		t.Errorf("pixel = %v, want red", c)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if ToRGBA(rgba) != rgba {
		t.Error("origin-anchored RGBA should be returned as is")
	}
}

func TestResample(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	got := Resample(src, 5, 20, draw.NearestNeighbor)
	if got.Bounds().Dx() != 5 || got.Bounds().Dy() != 20 {
		t.Errorf("Resample size = %v, want 5x20", got.Bounds())
	}
	if empty := Resample(src, 0, 4, nil); !empty.Bounds().Empty() {
		t.Errorf("Resample to zero width = %v, want empty", empty.Bounds())
	}
}

func TestSVGSize(t *testing.T) {
	tests := []struct {
		name  string
		w, h  float64
		opts  SVGOptions
		wantW int
		wantH int
	}{
		{"intrinsic", 512, 512, SVGOptions{}, 512, 512},
		{"scale half", 512, 512, SVGOptions{Scale: 0.5}, 256, 256},
		{"explicit size", 512, 512, SVGOptions{Width: 128, Height: 256}, 128, 256},
		{"explicit size beats scale", 512, 512, SVGOptions{Width: 128, Height: 256, Scale: 3}, 128, 256},
		{"width only keeps aspect", 400, 200, SVGOptions{Width: 100}, 100, 50},
		{"height only keeps aspect", 400, 200, SVGOptions{Height: 100}, 200, 100},
		{"rounding", 3, 3, SVGOptions{Scale: 0.5}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := SVGSize(tt.w, tt.h, tt.opts)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("SVGSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSVGOptionsConflicting(t *testing.T) {
	if (SVGOptions{Scale: 2}).Conflicting() {
		t.Error("scale alone is not a conflict")
	}
	if !(SVGOptions{Width: 10, Scale: 2}).Conflicting() {
		t.Error("width plus scale should be reported as a conflict")
	}
}

func TestRasterizeSVG(t *testing.T) {
	img, err := RasterizeSVG(testSVG, SVGOptions{})
	if err != nil {
		t.Fatalf("RasterizeSVG() = %v", err)
	}
	if img.Bounds().Dx() != 512 || img.Bounds().Dy() != 512 {
		t.Errorf("intrinsic raster = %v, want 512x512", img.Bounds())
	}
	if c := img.RGBAAt(256, 256); c.R < 200 || c.A < 200 {
		t.Errorf("center pixel = %v, want opaque red", c)
	}

	img, err = RasterizeSVG(testSVG, SVGOptions{Scale: 0.5})
	if err != nil {
		t.Fatalf("RasterizeSVG(scale) = %v", err)
	}
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Errorf("scaled raster = %v, want 256x256", img.Bounds())
	}

	img, err = RasterizeSVG(testSVG, SVGOptions{Width: 128, Height: 256})
	if err != nil {
		t.Fatalf("RasterizeSVG(size) = %v", err)
	}
	if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 256 {
		t.Errorf("sized raster = %v, want 128x256", img.Bounds())
	}
}

func TestText(t *testing.T) {
	got, err := Text([]byte("\xef\xbb\xbfhello"))
	if err != nil {
		t.Fatalf("Text(utf8 bom) = %v", err)
	}
	if got != "hello" {
		t.Errorf("Text(utf8 bom) = %q, want %q", got, "hello")
	}

	// "hi" in UTF-16LE with BOM.
	got, err = Text([]byte{0xFF, 0xFE, 'h', 0, 'i', 0})
	if err != nil {
		t.Fatalf("Text(utf16) = %v", err)
	}
	if got != "hi" {
		t.Errorf("Text(utf16) = %q, want %q", got, "hi")
	}

	if got, _ := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}

func TestFont(t *testing.T) {
	face, err := Font(goregular.TTF)
	if err != nil {
		t.Fatalf("Font() = %v", err)
	}
	info := DescribeFont(face)
	if info.Family == "" {
		t.Error("Family should not be empty")
	}
	if info.UnitsPerEm <= 0 {
		t.Errorf("UnitsPerEm = %d, want > 0", info.UnitsPerEm)
	}

	if _, err := Font(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Font(nil) = %v, want ErrEmptyData", err)
	}
	if _, err := Font([]byte("not a font")); err == nil {
		t.Error("Font(garbage) should fail")
	}
}
