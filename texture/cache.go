package texture

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/assets/cache"
)

// Cache maps identifiers to textures. Several identifiers may alias one
// texture; the first successful insert for an identifier wins.
//
// Cache is safe for concurrent use and never evicts on its own.
type Cache struct {
	entries *cache.Cache[string, *Texture]
	flight  singleflight.Group
}

// NewCache creates an empty texture cache.
func NewCache() *Cache {
	return &Cache{entries: cache.New[string, *Texture]()}
}

var defaultCache = sync.OnceValue(NewCache)

// Default returns the process-wide texture cache. Loaders built without
// an explicit cache share it, so one URL is fetched and decoded once per
// process.
func Default() *Cache {
	return defaultCache()
}

// Get returns the texture registered under id.
func (c *Cache) Get(id string) (*Texture, bool) {
	return c.entries.Get(id)
}

// Add registers tex under id unless id is taken. It reports whether tex
// was inserted. Destroyed textures are never inserted.
func (c *Cache) Add(id string, tex *Texture) bool {
	if tex == nil || tex.Destroyed() {
		return false
	}
	if !c.entries.Add(id, tex) {
		return false
	}
	tex.addID(c, id)
	return true
}

// Remove deletes id and returns the texture it mapped to.
// The texture itself is not destroyed.
func (c *Cache) Remove(id string) (*Texture, bool) {
	tex, ok := c.entries.Get(id)
	if !ok {
		return nil, false
	}
	removed := c.entries.DeleteFunc(func(k string, v *Texture) bool {
		return k == id && v == tex
	})
	if len(removed) == 0 {
		return nil, false
	}
	tex.removeID(id)
	return tex, true
}

// RemoveTexture deletes every identifier that maps to tex and returns them.
func (c *Cache) RemoveTexture(tex *Texture) []string {
	ids := c.entries.DeleteFunc(func(_ string, v *Texture) bool {
		return v == tex
	})
	for _, id := range ids {
		tex.removeID(id)
	}
	return ids
}

// removeIDs deletes ids that still map to tex.
func (c *Cache) removeIDs(tex *Texture, ids []string) {
	if len(ids) == 0 {
		return
	}
	c.entries.DeleteFunc(func(k string, v *Texture) bool {
		if v != tex {
			return false
		}
		for _, id := range ids {
			if id == k {
				return true
			}
		}
		return false
	})
}

// Keys returns all identifiers in ascending order.
func (c *Cache) Keys() []string {
	return c.entries.SortedKeys(func(a, b string) bool { return strings.Compare(a, b) < 0 })
}

// Len returns the number of identifiers.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Stats returns lookup statistics.
func (c *Cache) Stats() cache.Stats {
	return c.entries.Stats()
}

// Entry is the result of one Do flight, handed to every caller.
type Entry struct {
	// Texture, if set, is registered under the flight key.
	Texture *Texture

	// Value is passed through untouched. It carries payloads that are not
	// textures and is never cached.
	Value any
}

// Do returns the texture cached under key, or runs fn once for all
// concurrent callers with the same key. shared reports whether the result
// came from the cache or another caller's fn.
//
// A texture returned by fn is registered under key before Do returns. If
// key was taken meanwhile, the registered texture replaces it in the
// result, for the caller that ran fn as well.
func (c *Cache) Do(key string, fn func() (Entry, error)) (e Entry, shared bool, err error) {
	if tex, ok := c.Get(key); ok {
		return Entry{Texture: tex}, true, nil
	}
	v, err, shared := c.flight.Do(key, func() (any, error) {
		if tex, ok := c.Get(key); ok {
			return Entry{Texture: tex}, nil
		}
		e, err := fn()
		if err != nil {
			return nil, err
		}
		if e.Texture != nil && !c.Add(key, e.Texture) {
			if existing, ok := c.Get(key); ok {
				e.Texture = existing
			}
		}
		return e, nil
	})
	if err != nil {
		return Entry{}, shared, err
	}
	e, _ = v.(Entry)
	return e, shared, nil
}
