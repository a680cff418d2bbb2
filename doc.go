// Package assets loads images, SVG, text, JSON and fonts in batches and
// turns visual assets into bindable textures.
//
// # Quick Start
//
//	l := assets.NewLoader()
//	l.Add("bunny", "assets/bunny.png")
//	l.Add("logo", "assets/logo.svg",
//	    assets.WithResourceOptions(assets.ResourceOptions{Scale: 0.5}))
//
//	err := l.Load(ctx, func(l *assets.Loader, res map[string]*assets.Resource) {
//	    bunny := res["bunny"].Texture
//	    fmt.Println(bunny.Width(), bunny.Height())
//	})
//
// Load never blocks; use LoadWait to block until the batch completes.
//
// # Pipeline
//
// Each item runs through pre-middlewares (URL rewriting), a cache lookup,
// in-flight deduplication, the fetch, kind sniffing and the parser chain
// (TextureParser, TextParser, FontParser, then user middlewares). A failed
// item is marked StateErrored and the batch carries on; the completion
// callback fires exactly once.
//
// # Caching
//
// Textures live in a texture.Cache keyed by resource name and source URL.
// Loaders that share a cache share textures, and concurrent requests for
// the same source and configuration are collapsed into a single fetch.
// Reset clears a loader's table but never the cache.
//
// # Logging
//
// The package logs through log/slog and is silent by default; see
// SetLogger and WithLogger.
package assets
