package assets

import (
	"sync"

	"github.com/gogpu/assets/decode"
	"github.com/gogpu/assets/texture"
)

// State is the lifecycle state of a Resource.
type State int32

// Resource states.
const (
	StatePending State = iota
	StateLoading
	StateComplete
	StateErrored
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoading:
		return "loading"
	case StateComplete:
		return "complete"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Resource is one named item in a Loader batch.
//
// Middlewares fill Kind, Data and Texture while the item is processed.
// Once the batch completion callback runs, the resource is read-only.
type Resource struct {
	Name     string
	URL      string
	Metadata Metadata

	// Kind is the sniffed payload kind.
	Kind decode.Kind

	// Data is the parsed payload: image.Image for rasters, the markup
	// string for SVG, string for text, any for JSON, *font.Face for fonts.
	Data any

	// Texture is set for raster and vector payloads.
	Texture *texture.Texture

	mu    sync.Mutex
	state State
	err   error
	raw   []byte
}

func newResource(name, url string) *Resource {
	return &Resource{Name: name, URL: url}
}

// State returns the current lifecycle state.
func (r *Resource) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err returns the failure of an errored resource, or nil.
func (r *Resource) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Bytes returns the fetched payload. It is nil for resources served from
// the cache or by another in-flight fetch.
func (r *Resource) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.raw
}

// Done reports whether the resource reached a terminal state.
func (r *Resource) Done() bool {
	s := r.State()
	return s == StateComplete || s == StateErrored
}

func (r *Resource) setState(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
}

func (r *Resource) setRaw(b []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = b
}

func (r *Resource) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateErrored
	r.err = err
}

// adopt fills r from a texture built for another resource.
func (r *Resource) adopt(tex *texture.Texture) {
	r.Texture = tex
	switch res := tex.BaseTexture().Resource().(type) {
	case *texture.SVGResource:
		r.Kind = decode.KindSVG
		r.Data = res.Source()
	default:
		r.Kind = decode.KindImage
		r.Data = res.Image()
	}
}

// ResourceOption configures a resource at Add time.
type ResourceOption func(*Resource)

// WithMetadata replaces the resource metadata.
func WithMetadata(m Metadata) ResourceOption {
	return func(r *Resource) {
		r.Metadata = m
	}
}

// WithScaleMode sets the sampling mode.
func WithScaleMode(mode texture.ScaleMode) ResourceOption {
	return func(r *Resource) {
		r.Metadata.ScaleMode = &mode
	}
}

// WithResolution sets the display density divisor.
func WithResolution(res float64) ResourceOption {
	return func(r *Resource) {
		r.Metadata.Resolution = res
	}
}

// WithResourceOptions sets vector rasterization options.
func WithResourceOptions(o ResourceOptions) ResourceOption {
	return func(r *Resource) {
		r.Metadata.ResourceOptions = o
	}
}
