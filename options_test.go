package assets

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/assets/fetch"
	"github.com/gogpu/assets/texture"
)

func TestDefaultOptions(t *testing.T) {
	l := NewLoader()

	assert.Equal(t, DefaultConcurrency, l.opts.concurrency)
	assert.Same(t, texture.Default(), l.Cache())
	assert.IsType(t, &fetch.Mux{}, l.Fetcher())
	assert.Same(t, Logger(), l.logger())
	// Built-in parsers only.
	assert.Len(t, l.use, 3)
	assert.Empty(t, l.pre)
}

func TestOptions(t *testing.T) {
	cache := texture.NewCache()
	mem := fetch.NewMemory(nil)
	logger := slog.New(slog.DiscardHandler)
	noop := MiddlewareFunc(func(context.Context, *Loader, *Resource) error { return nil })

	l := NewLoader(
		WithCache(cache),
		WithFetcher(mem),
		WithConcurrency(3),
		WithConcurrency(0),
		WithLogger(logger),
		WithBaseURL("assets"),
		WithPreMiddleware(noop),
		WithMiddleware(noop, noop),
	)

	assert.Same(t, cache, l.Cache())
	assert.Same(t, mem, l.Fetcher())
	assert.Equal(t, 3, l.opts.concurrency)
	assert.Same(t, logger, l.logger())
	assert.Len(t, l.pre, 2, "base url resolver plus one")
	assert.Len(t, l.use, 5)

	l.Use(noop).Pre(noop)
	assert.Len(t, l.use, 6)
	assert.Len(t, l.pre, 3)
}

func TestDefaultFetcherRoutes(t *testing.T) {
	m := DefaultFetcher(2)

	data, err := m.Fetch(context.Background(), "data:,hello")
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = m.Fetch(context.Background(), "gopher://x")
	assert.ErrorIs(t, err, fetch.ErrUnsupportedScheme)

	_, err = m.Fetch(context.Background(), "does/not/exist.png")
	assert.ErrorIs(t, err, fetch.ErrNotFound)
}
