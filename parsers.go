package assets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gogpu/assets/decode"
	"github.com/gogpu/assets/texture"
)

// TextureParser builds textures from raster images and SVG markup.
//
// Metadata is honored as follows: ScaleMode selects sampling, Resolution
// (or an "@2x" URL suffix) divides the logical size, and ResourceOptions
// sizes SVG output. The texture is stored on Resource.Texture.
type TextureParser struct {
	// Uploader, if set, receives pixels of every texture built.
	Uploader texture.Uploader
}

// Handle implements Middleware.
func (p TextureParser) Handle(_ context.Context, l *Loader, res *Resource) error {
	if res.Texture != nil || !res.Kind.IsTexture() {
		return nil
	}

	src, err := p.source(l, res)
	if err != nil {
		return err
	}

	opts := []texture.BaseOption{
		texture.WithScaleMode(res.Metadata.scaleMode()),
		texture.WithResolution(res.Metadata.resolution(res.URL)),
		texture.WithLabel(res.Name),
	}
	uploader := p.Uploader
	if uploader == nil {
		uploader = l.opts.uploader
	}
	if uploader != nil {
		opts = append(opts, texture.WithUploader(uploader))
	}

	bt, err := texture.NewBaseTexture(src, opts...)
	if err != nil {
		return err
	}
	res.Texture = texture.NewTexture(bt)
	return nil
}

// source decodes the payload into a bindable resource and sets res.Data.
func (p TextureParser) source(l *Loader, res *Resource) (texture.Resource, error) {
	if res.Kind == decode.KindSVG {
		opts := res.Metadata.ResourceOptions.SVGOptions()
		if opts.Conflicting() {
			l.logger().Warn("assets: svg size and scale both set, using size",
				"name", res.Name, "width", opts.Width, "height", opts.Height, "scale", opts.Scale)
		}
		markup, err := decode.Text(res.Bytes())
		if err != nil {
			return nil, err
		}
		svg, err := texture.NewSVGResource(res.URL, markup, opts)
		if err != nil {
			return nil, err
		}
		res.Data = markup
		return svg, nil
	}

	img, format, err := decode.Image(res.Bytes())
	if err != nil {
		return nil, err
	}
	l.logger().Debug("assets: decoded image", "name", res.Name, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	res.Data = img
	return texture.NewImageResource(res.URL, img), nil
}

// TextParser decodes text payloads (with BOM detection) into a string,
// and JSON payloads into a generic value.
type TextParser struct{}

// Handle implements Middleware.
func (TextParser) Handle(_ context.Context, _ *Loader, res *Resource) error {
	if res.Data != nil {
		return nil
	}
	switch res.Kind {
	case decode.KindText:
		s, err := decode.Text(res.Bytes())
		if err != nil {
			return err
		}
		res.Data = s
	case decode.KindJSON:
		var v any
		if err := json.Unmarshal(res.Bytes(), &v); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		res.Data = v
	}
	return nil
}

// FontParser parses TrueType and OpenType payloads into a *font.Face.
type FontParser struct{}

// Handle implements Middleware.
func (FontParser) Handle(_ context.Context, l *Loader, res *Resource) error {
	if res.Data != nil || res.Kind != decode.KindFont {
		return nil
	}
	face, err := decode.Font(res.Bytes())
	if err != nil {
		return err
	}
	info := decode.DescribeFont(face)
	l.logger().Debug("assets: parsed font", "name", res.Name, "family", info.Family)
	res.Data = face
	return nil
}
