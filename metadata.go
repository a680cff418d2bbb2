package assets

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/assets/decode"
	"github.com/gogpu/assets/texture"
)

// Metadata carries per-resource construction hints. The zero value means
// defaults: linear sampling, resolution inferred from the URL, intrinsic
// vector size.
type Metadata struct {
	// ScaleMode overrides the sampling mode. Nil means texture.ScaleLinear.
	ScaleMode *texture.ScaleMode `yaml:"scaleMode,omitempty" json:"scaleMode,omitempty"`

	// Resolution is the display density divisor. Zero means inferred from
	// an "@2x"-style URL suffix, or 1.
	Resolution float64 `yaml:"resolution,omitempty" json:"resolution,omitempty"`

	// ResourceOptions controls vector rasterization.
	ResourceOptions ResourceOptions `yaml:"resourceOptions,omitempty" json:"resourceOptions,omitempty"`
}

// ResourceOptions sets the rasterized size of vector sources. Width and
// Height take precedence over Scale.
type ResourceOptions struct {
	Width  int     `yaml:"width,omitempty" json:"width,omitempty"`
	Height int     `yaml:"height,omitempty" json:"height,omitempty"`
	Scale  float64 `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// SVGOptions converts the resource options for the decoder.
func (o ResourceOptions) SVGOptions() decode.SVGOptions {
	return decode.SVGOptions{Width: o.Width, Height: o.Height, Scale: o.Scale}
}

// scaleMode returns the effective sampling mode.
func (m Metadata) scaleMode() texture.ScaleMode {
	if m.ScaleMode == nil {
		return texture.ScaleLinear
	}
	return *m.ScaleMode
}

// resolution returns the effective density for url.
func (m Metadata) resolution(url string) float64 {
	if m.Resolution > 0 {
		return m.Resolution
	}
	return ResolutionFromURL(url, 1)
}

// fingerprint encodes every field that changes the constructed texture.
// Default metadata yields "".
func (m Metadata) fingerprint(url string) string {
	var parts []string
	if mode := m.scaleMode(); mode != texture.ScaleLinear {
		parts = append(parts, "mode="+mode.String())
	}
	if r := m.resolution(url); r != ResolutionFromURL(url, 1) {
		parts = append(parts, "res="+strconv.FormatFloat(r, 'g', -1, 64))
	}
	o := m.ResourceOptions
	if o.Width > 0 {
		parts = append(parts, "w="+strconv.Itoa(o.Width))
	}
	if o.Height > 0 {
		parts = append(parts, "h="+strconv.Itoa(o.Height))
	}
	if o.Scale > 0 && o.Scale != 1 && o.Width <= 0 && o.Height <= 0 {
		parts = append(parts, "s="+strconv.FormatFloat(o.Scale, 'g', -1, 64))
	}
	if len(parts) == 0 {
		return ""
	}
	return "#" + strings.Join(parts, ",")
}

// sourceKey identifies the texture built from url with m. Default metadata
// is tagged as well, so the key never equals a bare URL alias.
func (m Metadata) sourceKey(url string) string {
	if fp := m.fingerprint(url); fp != "" {
		return url + fp
	}
	return url + "#default"
}

var resolutionPattern = regexp.MustCompile(`@([0-9]*\.?[0-9]+)x`)

// ResolutionFromURL extracts the density from names like "hero@2x.png".
// It returns def when the URL carries no valid density.
func ResolutionFromURL(url string, def float64) float64 {
	m := resolutionPattern.FindStringSubmatch(url)
	if m == nil {
		return def
	}
	r, err := strconv.ParseFloat(m[1], 64)
	if err != nil || r <= 0 {
		return def
	}
	return r
}
