package assets

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/gogpu/assets/fetch"
)

// Middleware processes a resource inside a Loader.
//
// Pre-middlewares run before the cache lookup and may rewrite the URL or
// metadata. Use-middlewares run after the payload is fetched and sniffed;
// a parser typically checks res.Kind and returns nil for kinds it does not
// handle. An error marks the resource errored and stops its chain.
type Middleware interface {
	Handle(ctx context.Context, l *Loader, res *Resource) error
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(ctx context.Context, l *Loader, res *Resource) error

// Handle calls f(ctx, l, res).
func (f MiddlewareFunc) Handle(ctx context.Context, l *Loader, res *Resource) error {
	return f(ctx, l, res)
}

// BaseURL returns a pre-middleware that resolves relative resource URLs
// against base. URLs with a scheme and absolute paths are left alone.
func BaseURL(base string) Middleware {
	return MiddlewareFunc(func(_ context.Context, _ *Loader, res *Resource) error {
		res.URL = resolveURL(base, res.URL)
		return nil
	})
}

func resolveURL(base, ref string) string {
	if base == "" || ref == "" || fetch.Scheme(ref) != "" || strings.HasPrefix(ref, "/") {
		return ref
	}
	if fetch.Scheme(base) != "" {
		b, err := url.Parse(base)
		if err != nil {
			return ref
		}
		if !strings.HasSuffix(b.Path, "/") {
			b.Path += "/"
		}
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	}
	return path.Join(base, ref)
}
