package texture

import (
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
)

// Uploader hands pixel content to a renderer. It is called whenever a base
// texture is (re)bound or its resource reports an update.
type Uploader interface {
	Upload(bt *BaseTexture, pixels image.Image) error
}

// UploaderFunc adapts a function to the Uploader interface.
type UploaderFunc func(bt *BaseTexture, pixels image.Image) error

// Upload calls f(bt, pixels).
func (f UploaderFunc) Upload(bt *BaseTexture, pixels image.Image) error {
	return f(bt, pixels)
}

// Descriptor describes the GPU texture a BaseTexture should be uploaded to.
type Descriptor struct {
	Label       string
	Size        gputypes.Extent3D
	Format      gputypes.TextureFormat
	Usage       gputypes.TextureUsage
	Dimension   gputypes.TextureDimension
	Filter      gputypes.FilterMode
	AddressMode gputypes.AddressMode
	MipLevels   uint32
	SampleCount uint32
}

// BaseOption configures a BaseTexture.
type BaseOption func(*baseOptions)

type baseOptions struct {
	scaleMode  ScaleMode
	resolution float64
	uploader   Uploader
	label      string
	shared     bool
}

func defaultBaseOptions() baseOptions {
	return baseOptions{
		scaleMode:  ScaleLinear,
		resolution: 1,
	}
}

// WithScaleMode sets the sampling mode. Default: ScaleLinear.
func WithScaleMode(m ScaleMode) BaseOption {
	return func(o *baseOptions) {
		o.scaleMode = m
	}
}

// WithResolution sets the display density divisor. Values <= 0 are ignored.
func WithResolution(r float64) BaseOption {
	return func(o *baseOptions) {
		if r > 0 && !math.IsInf(r, 0) {
			o.resolution = r
		}
	}
}

// WithUploader sets the renderer-side uploader.
func WithUploader(u Uploader) BaseOption {
	return func(o *baseOptions) {
		o.uploader = u
	}
}

// WithLabel sets the debug label used in Descriptor.
func WithLabel(label string) BaseOption {
	return func(o *baseOptions) {
		o.label = label
	}
}

// WithSharedResource marks the resource as owned elsewhere: Destroy then
// only unbinds and leaves the resource alive.
func WithSharedResource() BaseOption {
	return func(o *baseOptions) {
		o.shared = true
	}
}

// BaseTexture is the renderer-side consumer of a Resource. It mirrors the
// resource's pixel size and counts content updates.
type BaseTexture struct {
	res  Resource
	opts baseOptions

	mu         sync.RWMutex
	realWidth  int
	realHeight int
	destroyed  bool

	dirtyID   atomic.Uint64
	uploadErr atomic.Pointer[error]
}

// NewBaseTexture creates a base texture and binds it to res.
func NewBaseTexture(res Resource, opts ...BaseOption) (*BaseTexture, error) {
	if res == nil {
		return nil, ErrNilResource
	}
	o := defaultBaseOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bt := &BaseTexture{res: res, opts: o}
	if err := res.Bind(bt); err != nil {
		return nil, fmt.Errorf("texture: new base texture: %w", err)
	}
	bt.upload()
	return bt, nil
}

// SetRealSize implements Consumer.
func (bt *BaseTexture) SetRealSize(width, height int) {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	bt.realWidth = max(width, 0)
	bt.realHeight = max(height, 0)
}

// Update implements Consumer.
func (bt *BaseTexture) Update() {
	bt.dirtyID.Add(1)
	bt.upload()
}

// upload pushes the current pixels to the uploader, if any.
func (bt *BaseTexture) upload() {
	u := bt.opts.uploader
	if u == nil || !bt.Valid() {
		return
	}
	pixels := bt.res.Image()
	if pixels == nil {
		return
	}
	if err := u.Upload(bt, pixels); err != nil {
		bt.uploadErr.Store(&err)
		return
	}
	bt.uploadErr.Store(nil)
}

// UploadErr returns the error of the last upload, or nil.
func (bt *BaseTexture) UploadErr() error {
	if p := bt.uploadErr.Load(); p != nil {
		return *p
	}
	return nil
}

// RealWidth returns the width in pixels.
func (bt *BaseTexture) RealWidth() int {
	bt.mu.RLock()
	defer bt.mu.RUnlock()
	return bt.realWidth
}

// RealHeight returns the height in pixels.
func (bt *BaseTexture) RealHeight() int {
	bt.mu.RLock()
	defer bt.mu.RUnlock()
	return bt.realHeight
}

// Width returns the logical width: real width divided by resolution.
func (bt *BaseTexture) Width() float64 {
	return float64(bt.RealWidth()) / bt.opts.resolution
}

// Height returns the logical height: real height divided by resolution.
func (bt *BaseTexture) Height() float64 {
	return float64(bt.RealHeight()) / bt.opts.resolution
}

// Valid reports whether the texture has non-zero pixel dimensions and has
// not been destroyed.
func (bt *BaseTexture) Valid() bool {
	bt.mu.RLock()
	defer bt.mu.RUnlock()
	return !bt.destroyed && bt.realWidth > 0 && bt.realHeight > 0
}

// Resolution returns the display density divisor.
func (bt *BaseTexture) Resolution() float64 {
	return bt.opts.resolution
}

// ScaleMode returns the sampling mode.
func (bt *BaseTexture) ScaleMode() ScaleMode {
	return bt.opts.scaleMode
}

// DirtyID increments on every content update from the resource.
func (bt *BaseTexture) DirtyID() uint64 {
	return bt.dirtyID.Load()
}

// Resource returns the bound resource.
func (bt *BaseTexture) Resource() Resource {
	return bt.res
}

// Destroyed reports whether Destroy has been called.
func (bt *BaseTexture) Destroyed() bool {
	bt.mu.RLock()
	defer bt.mu.RUnlock()
	return bt.destroyed
}

// Descriptor returns the GPU texture description for the current size.
func (bt *BaseTexture) Descriptor() Descriptor {
	bt.mu.RLock()
	w, h := bt.realWidth, bt.realHeight
	bt.mu.RUnlock()

	return Descriptor{
		Label: bt.opts.label,
		Size: gputypes.Extent3D{
			Width:              uint32(w), //nolint:gosec // non-negative by SetRealSize
			Height:             uint32(h), //nolint:gosec // non-negative by SetRealSize
			DepthOrArrayLayers: 1,
		},
		Format:      gputypes.TextureFormatRGBA8Unorm,
		Usage:       gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		Dimension:   gputypes.TextureDimension2D,
		Filter:      bt.opts.scaleMode.FilterMode(),
		AddressMode: gputypes.AddressModeClampToEdge,
		MipLevels:   1,
		SampleCount: 1,
	}
}

// Destroy unbinds from the resource and, unless the resource is shared,
// destroys it. Destroy is idempotent.
func (bt *BaseTexture) Destroy() {
	bt.mu.Lock()
	if bt.destroyed {
		bt.mu.Unlock()
		return
	}
	bt.destroyed = true
	bt.mu.Unlock()

	bt.res.Unbind(bt)
	if !bt.opts.shared {
		bt.res.Destroy()
	}
}
