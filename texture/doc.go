// Package texture binds mutable pixel sources to renderer textures.
//
// The package is built around an observer protocol instead of a type
// hierarchy. A BindableResource watches a Source (typically a
// surface.Surface) and keeps any number of Consumers in sync with it:
//
//	res := texture.NewSurfaceResource(canvas)
//	base, _ := texture.NewBaseTexture(res)  // binds, base learns the size
//
//	_ = canvas.Resize(100, 70)
//	_ = res.Update()                        // SetRealSize(100, 70), then Update()
//
// A Consumer only needs SetRealSize and Update; BaseTexture is the
// renderer-side consumer and hands pixels to an external Uploader.
//
// Texture wraps a BaseTexture for callers and remembers every identifier it
// was registered under in a Cache, so Destroy can drop all of them at once.
// Cache is the lifetime-scoped texture registry shared by loaders; it also
// collapses concurrent constructions of the same source into one.
package texture

import "errors"

// Errors.
var (
	// ErrInvalidState is returned when operating on a destroyed resource
	// or texture.
	ErrInvalidState = errors.New("texture: invalid state")

	// ErrNilResource is returned when a base texture is created without a resource.
	ErrNilResource = errors.New("texture: nil resource")

	// ErrUncomparableConsumer is returned when binding a consumer whose
	// dynamic type does not support ==, such as a struct value holding a
	// slice.
	ErrUncomparableConsumer = errors.New("texture: consumer is not comparable")
)
