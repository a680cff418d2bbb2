package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FS reads URLs as slash-separated paths inside a file system.
type FS struct {
	fsys fs.FS
}

// Dir returns a fetcher rooted at fsys. Use os.DirFS for a directory on
// disk or an embed.FS for bundled assets.
func Dir(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Fetch reads the file named by rawURL. A "file://" prefix, a leading
// slash and a query string are ignored.
func (f *FS) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && (u.Scheme == "" || u.Scheme == "file") {
		name = u.Host + u.Path
	}
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if !fs.ValidPath(name) || name == "" {
		return nil, fmt.Errorf("fetch: %s: %w", rawURL, ErrNotFound)
	}

	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("fetch: %s: %w", rawURL, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch: %s: %w", rawURL, err)
	}
	return data, nil
}

// Local reads paths from the host file system. Relative paths resolve
// against the working directory; "file://" URLs are accepted.
var Local = Func(func(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := rawURL
	if rest, ok := strings.CutPrefix(rawURL, "file://"); ok {
		if u, err := url.Parse(rawURL); err == nil {
			rest = u.Host + u.Path
		}
		name = rest
	}

	data, err := os.ReadFile(filepath.FromSlash(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("fetch: %s: %w", rawURL, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch: %s: %w", rawURL, err)
	}
	return data, nil
})
