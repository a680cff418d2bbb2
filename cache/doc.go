// Package cache provides a generic, thread-safe keyed store for
// constructed resources.
//
// Unlike a size-bounded LRU, a Cache never drops entries on its own: an entry
// lives until a caller removes it with Delete or Clear. Identifiers may alias
// the same value, and Add implements first-writer-wins insertion so that a
// late duplicate never replaces a valid entry.
//
//	c := cache.New[string, *Texture]()
//	if !c.Add("bunny", tex) {
//	    // someone else registered "bunny" first
//	}
//	tex, ok := c.Get("bunny")
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation
// (it contains a mutex).
package cache
