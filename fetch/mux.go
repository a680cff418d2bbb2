package fetch

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Mux routes fetches by URL scheme. Bare paths without a scheme use the
// fetcher registered for "".
type Mux struct {
	mu     sync.RWMutex
	routes map[string]Fetcher
}

// NewMux returns an empty router.
func NewMux() *Mux {
	return &Mux{routes: make(map[string]Fetcher)}
}

// Handle registers f for scheme (case-insensitive). A later registration
// for the same scheme replaces the earlier one.
func (m *Mux) Handle(scheme string, f Fetcher) *Mux {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.routes[strings.ToLower(scheme)] = f
	return m
}

// Fetch dispatches url to the fetcher for its scheme.
func (m *Mux) Fetch(ctx context.Context, url string) ([]byte, error) {
	scheme := Scheme(url)

	m.mu.RLock()
	f, ok := m.routes[scheme]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("fetch: %q in %s: %w", scheme, url, ErrUnsupportedScheme)
	}
	return f.Fetch(ctx, url)
}

// Scheme returns the lower-cased scheme of url, or "" for a bare path.
// Single-letter schemes are treated as Windows drive letters.
func Scheme(url string) string {
	i := strings.Index(url, ":")
	if i < 2 {
		return ""
	}
	for j, r := range url[:i] {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isOther := j > 0 && ((r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.')
		if !isAlpha && !isOther {
			return ""
		}
	}
	return strings.ToLower(url[:i])
}
