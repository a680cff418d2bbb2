package texture

import (
	"fmt"
	"image"

	"github.com/gogpu/assets/decode"
	"github.com/gogpu/assets/surface"
)

// Resource is a bindable pixel source a BaseTexture samples from.
type Resource interface {
	Width() int
	Height() int
	Valid() bool
	Bind(c Consumer) error
	Unbind(c Consumer)
	Update() error
	Destroy()

	// Image returns the current pixels, or nil while the resource is
	// not valid or after it has been destroyed.
	Image() image.Image
}

// SurfaceResource exposes a drawing surface as a texture resource.
// The surface stays owned by the caller; Destroy never closes it.
type SurfaceResource struct {
	*BindableResource
	surface surface.Surface
}

// NewSurfaceResource wraps s.
func NewSurfaceResource(s surface.Surface) *SurfaceResource {
	return &SurfaceResource{
		BindableResource: NewBindableResource(s),
		surface:          s,
	}
}

// Surface returns the wrapped surface.
func (r *SurfaceResource) Surface() surface.Surface {
	return r.surface
}

// Image returns a snapshot of the surface.
func (r *SurfaceResource) Image() image.Image {
	if r.Destroyed() || !r.Valid() {
		return nil
	}
	if snap := r.surface.Snapshot(); snap != nil {
		return snap
	}
	return nil
}

// ImageResource holds decoded raster pixels fetched from a URL.
type ImageResource struct {
	*SurfaceResource
	url string
}

// NewImageResource copies img into a private surface.
func NewImageResource(url string, img image.Image) *ImageResource {
	s := surface.NewImageSurfaceFromImage(decode.ToRGBA(img))
	return &ImageResource{
		SurfaceResource: NewSurfaceResource(s),
		url:             url,
	}
}

// URL returns the source locator of the image.
func (r *ImageResource) URL() string {
	return r.url
}

// SVGResource holds vector markup rasterized at a configured size.
type SVGResource struct {
	*SurfaceResource
	url    string
	markup string
	opts   decode.SVGOptions
}

// NewSVGResource rasterizes markup per opts.
func NewSVGResource(url, markup string, opts decode.SVGOptions) (*SVGResource, error) {
	img, err := decode.RasterizeSVG(markup, opts)
	if err != nil {
		return nil, fmt.Errorf("texture: svg %s: %w", url, err)
	}
	return &SVGResource{
		SurfaceResource: NewSurfaceResource(surface.NewImageSurfaceFromImage(img)),
		url:             url,
		markup:          markup,
		opts:            opts,
	}, nil
}

// URL returns the source locator of the markup.
func (r *SVGResource) URL() string {
	return r.url
}

// Source returns the SVG markup.
func (r *SVGResource) Source() string {
	return r.markup
}

// Options returns the rasterization options.
func (r *SVGResource) Options() decode.SVGOptions {
	return r.opts
}

// Rerasterize renders the markup again with new options and notifies bound
// consumers through Update.
func (r *SVGResource) Rerasterize(opts decode.SVGOptions) error {
	if r.Destroyed() {
		return fmt.Errorf("texture: rasterize: %w", ErrInvalidState)
	}
	img, err := decode.RasterizeSVG(r.markup, opts)
	if err != nil {
		return err
	}
	s, ok := r.surface.(*surface.ImageSurface)
	if !ok {
		return fmt.Errorf("texture: rasterize: unexpected surface %T", r.surface)
	}
	if err := s.Replace(img); err != nil {
		return err
	}
	r.opts = opts
	return r.Update()
}
