package fetch

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Memory serves assets from an in-memory map and counts fetches per URL.
// It is useful in tests and for bundled data. The zero value is empty and
// ready to use.
type Memory struct {
	mu     sync.RWMutex
	files  map[string][]byte
	counts map[string]int

	// Delay, if set, is called before every fetch. Tests use it to hold
	// requests in flight.
	Delay func(ctx context.Context, url string) error
}

// NewMemory returns a fetcher serving files.
func NewMemory(files map[string][]byte) *Memory {
	m := &Memory{}
	for url, data := range files {
		m.Set(url, data)
	}
	return m
}

// Set stores data under url.
func (m *Memory) Set(url string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[url] = slices.Clone(data)
}

// Fetch returns a copy of the data stored under url.
func (m *Memory) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[url]++
	delay := m.Delay
	m.mu.Unlock()

	if delay != nil {
		if err := delay(ctx, url); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[url]
	if !ok {
		return nil, fmt.Errorf("fetch: %s: %w", url, ErrNotFound)
	}
	return slices.Clone(data), nil
}

// Count returns how many times url was fetched.
func (m *Memory) Count(url string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[url]
}

// Total returns the number of fetches across all URLs.
func (m *Memory) Total() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, c := range m.counts {
		n += c
	}
	return n
}
