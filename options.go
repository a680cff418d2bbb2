package assets

import (
	"log/slog"

	"github.com/gogpu/assets/fetch"
	"github.com/gogpu/assets/texture"
)

// DefaultConcurrency is the number of items a Loader processes at once.
const DefaultConcurrency = 10

// Option configures a Loader during creation.
//
// Example:
//
//	// Defaults: local files, http(s) and data URLs, the process-wide cache
//	l := assets.NewLoader()
//
//	// Keep textures apart from other loaders and read from an embedded tree
//	l := assets.NewLoader(
//	    assets.WithCache(texture.NewCache()),
//	    assets.WithFetcher(fetch.Dir(bundle)),
//	)
type Option func(*loaderOptions)

type loaderOptions struct {
	cache       *texture.Cache
	fetcher     fetch.Fetcher
	concurrency int
	baseURL     string
	logger      *slog.Logger
	uploader    texture.Uploader
	progress    ProgressFunc
	pre         []Middleware
	use         []Middleware
}

func defaultLoaderOptions() loaderOptions {
	return loaderOptions{
		concurrency: DefaultConcurrency,
	}
}

// WithCache sets the texture cache. Loaders sharing a cache share
// textures and in-flight fetches. Default: texture.Default().
func WithCache(c *texture.Cache) Option {
	return func(o *loaderOptions) {
		o.cache = c
	}
}

// WithFetcher sets the byte source. Default: DefaultFetcher.
func WithFetcher(f fetch.Fetcher) Option {
	return func(o *loaderOptions) {
		o.fetcher = f
	}
}

// WithConcurrency limits how many items are processed at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(o *loaderOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithBaseURL resolves relative resource URLs against base.
func WithBaseURL(base string) Option {
	return func(o *loaderOptions) {
		o.baseURL = base
	}
}

// WithLogger sets a logger for this Loader only. Default: Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *loaderOptions) {
		o.logger = l
	}
}

// WithUploader passes u to every texture built by the default parser.
func WithUploader(u texture.Uploader) Option {
	return func(o *loaderOptions) {
		o.uploader = u
	}
}

// WithProgress sets a callback invoked after each item resolves.
func WithProgress(fn ProgressFunc) Option {
	return func(o *loaderOptions) {
		o.progress = fn
	}
}

// WithPreMiddleware appends middlewares that run before cache lookup.
func WithPreMiddleware(mw ...Middleware) Option {
	return func(o *loaderOptions) {
		o.pre = append(o.pre, mw...)
	}
}

// WithMiddleware appends middlewares that run after the built-in parsers.
func WithMiddleware(mw ...Middleware) Option {
	return func(o *loaderOptions) {
		o.use = append(o.use, mw...)
	}
}

// DefaultFetcher routes bare paths and file URLs to the local file system,
// http and https to an HTTP client limited to concurrency requests, and
// data URLs to an inline decoder.
func DefaultFetcher(concurrency int) *fetch.Mux {
	web := &fetch.HTTP{MaxConcurrent: int64(concurrency)}
	return fetch.NewMux().
		Handle("", fetch.Local).
		Handle("file", fetch.Local).
		Handle("http", web).
		Handle("https", web).
		Handle("data", fetch.Data)
}
