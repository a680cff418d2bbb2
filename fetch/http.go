package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultMaxBodySize caps response bodies read by HTTP.
const DefaultMaxBodySize = 64 << 20

// HTTP fetches URLs with an http.Client.
type HTTP struct {
	// Client is used for requests. Nil means http.DefaultClient.
	Client *http.Client

	// MaxConcurrent limits in-flight requests. Zero means unlimited.
	MaxConcurrent int64

	// MaxBodySize caps the bytes read per response.
	// Zero means DefaultMaxBodySize.
	MaxBodySize int64

	// Header is added to every request.
	Header http.Header

	once sync.Once
	sem  *semaphore.Weighted
}

// Fetch issues a GET for url.
func (h *HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	h.once.Do(func() {
		if h.MaxConcurrent > 0 {
			h.sem = semaphore.NewWeighted(h.MaxConcurrent)
		}
	})
	if h.sem != nil {
		if err := h.sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("fetch: %s: %w", url, err)
		}
		defer h.sem.Release(1)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	for k, vs := range h.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	limit := h.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", url, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fetch: %s: body exceeds %d bytes", url, limit)
	}
	return data, nil
}
