// Package fetch retrieves raw asset bytes by URL.
//
// The loader treats fetching as an external collaborator: anything that
// implements Fetcher can be plugged in. The package ships fetchers for
// HTTP, fs.FS trees and in-memory maps, plus Mux to route by URL scheme.
package fetch

import (
	"context"
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrNotFound is returned when the URL does not resolve to content.
	ErrNotFound = errors.New("fetch: not found")

	// ErrUnsupportedScheme is returned by Mux for unrouted schemes.
	ErrUnsupportedScheme = errors.New("fetch: unsupported scheme")
)

// Fetcher retrieves the raw bytes behind url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Func adapts a function to the Fetcher interface.
type Func func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f(ctx, url).
func (f Func) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: %s: %s", e.URL, e.Status)
}

// Is reports a 404 as ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
