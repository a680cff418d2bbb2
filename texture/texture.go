package texture

import (
	"slices"
	"sync"
)

// Texture is the caller-facing handle to a BaseTexture. It remembers every
// cache identifier it was registered under.
type Texture struct {
	base *BaseTexture

	mu        sync.Mutex
	cache     *Cache
	ids       []string
	destroyed bool
}

// NewTexture wraps bt.
func NewTexture(bt *BaseTexture) *Texture {
	return &Texture{base: bt}
}

// BaseTexture returns the wrapped base texture.
func (t *Texture) BaseTexture() *BaseTexture {
	return t.base
}

// Width returns the logical width.
func (t *Texture) Width() float64 {
	return t.base.Width()
}

// Height returns the logical height.
func (t *Texture) Height() float64 {
	return t.base.Height()
}

// Valid reports whether the base texture is usable.
func (t *Texture) Valid() bool {
	return !t.Destroyed() && t.base.Valid()
}

// CacheIDs returns the identifiers this texture is registered under.
func (t *Texture) CacheIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.ids)
}

// Destroyed reports whether Destroy has been called.
func (t *Texture) Destroyed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destroyed
}

// addID records id. Called by Cache with no cache lock held.
func (t *Texture) addID(c *Cache, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cache = c
	if !slices.Contains(t.ids, id) {
		t.ids = append(t.ids, id)
	}
}

// removeID forgets id.
func (t *Texture) removeID(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i := slices.Index(t.ids, id); i >= 0 {
		t.ids = slices.Delete(t.ids, i, i+1)
	}
}

// Destroy removes every cache identifier of the texture. If destroyBase is
// true the base texture is destroyed as well, which unbinds it from its
// resource. Destroy is idempotent.
func (t *Texture) Destroy(destroyBase bool) {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	c, ids := t.cache, t.ids
	t.ids = nil
	t.mu.Unlock()

	if c != nil {
		c.removeIDs(t, ids)
	}
	if destroyBase {
		t.base.Destroy()
	}
}
