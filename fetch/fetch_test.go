package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bunny.png":
			assert.Equal(t, "assetload", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("png-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	h := &HTTP{Header: http.Header{"User-Agent": {"assetload"}}}

	data, err := h.Fetch(context.Background(), srv.URL+"/bunny.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = h.Fetch(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestHTTPMaxBodySize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 100))
	}))
	defer srv.Close()

	h := &HTTP{MaxBodySize: 10}
	_, err := h.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestHTTPMaxConcurrent(t *testing.T) {
	var active, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	h := &HTTP{MaxConcurrent: 2}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Fetch(context.Background(), srv.URL)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestHTTPCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := &HTTP{MaxConcurrent: 1}
	_, err := h.Fetch(ctx, "http://127.0.0.1:0/x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDir(t *testing.T) {
	fsys := fstest.MapFS{
		"img/a.png": {Data: []byte("a")},
	}
	f := Dir(fsys)

	for _, url := range []string{"img/a.png", "/img/a.png", "file:///img/a.png", "./img/../img/a.png"} {
		data, err := f.Fetch(context.Background(), url)
		require.NoError(t, err, url)
		assert.Equal(t, "a", string(data), url)
	}

	_, err := f.Fetch(context.Background(), "img/none.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	m := NewMemory(map[string][]byte{"a.txt": []byte("hello")})

	data, err := m.Fetch(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	data[0] = 'j'
	again, _ := m.Fetch(context.Background(), "a.txt")
	assert.Equal(t, "hello", string(again), "fetch must return a copy")

	_, err = m.Fetch(context.Background(), "b.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 2, m.Count("a.txt"))
	assert.Equal(t, 3, m.Total())
}

func TestMemoryZeroValue(t *testing.T) {
	var m Memory
	m.Set("x", []byte("1"))
	data, err := m.Fetch(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))
}

func TestMuxRoutes(t *testing.T) {
	files := NewMemory(map[string][]byte{"a.png": []byte("file")})
	web := Func(func(context.Context, string) ([]byte, error) { return []byte("web"), nil })

	m := NewMux().
		Handle("", files).
		Handle("HTTPS", web).
		Handle("data", Data)

	got, err := m.Fetch(context.Background(), "a.png")
	require.NoError(t, err)
	assert.Equal(t, "file", string(got))

	got, err = m.Fetch(context.Background(), "https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "web", string(got))

	got, err = m.Fetch(context.Background(), "data:image/svg+xml,%3Csvg%2F%3E")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(got))

	_, err = m.Fetch(context.Background(), "ftp://host/a.png")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestScheme(t *testing.T) {
	tests := map[string]string{
		"assets/a.png":        "",
		"/abs/a.png":          "",
		"C:\\assets\\a.png":   "",
		"http://x/a.png":      "http",
		"HTTPS://x/a.png":     "https",
		"data:text/plain,abc": "data",
		"svn+ssh://host/x":    "svn+ssh",
	}
	for in, want := range tests {
		assert.Equal(t, want, Scheme(in), in)
	}
}

func TestDataBase64(t *testing.T) {
	got, err := Data.Fetch(context.Background(), "data:text/plain;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	_, err = Data.Fetch(context.Background(), "data:text/plain;base64,!!!")
	assert.Error(t, err)
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/a.txt"
	require.NoError(t, os.WriteFile(path, []byte("local"), 0o600))

	got, err := Local.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "local", string(got))

	got, err = Local.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "local", string(got))

	_, err = Local.Fetch(context.Background(), dir+"/none.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}
