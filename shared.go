package assets

import "sync"

// Shared returns the process-wide loader. It uses the default fetcher and
// texture.Default(), and is created on first use.
var Shared = sync.OnceValue(func() *Loader {
	return NewLoader()
})
