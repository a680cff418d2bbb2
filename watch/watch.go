// Package watch reloads file-backed surfaces when their files change and
// pushes the new content to bound texture consumers.
package watch

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/assets/decode"
	"github.com/gogpu/assets/surface"
	"github.com/gogpu/assets/texture"
)

// ErrClosed is returned when using a closed Watcher.
var ErrClosed = errors.New("watch: closed")

type target struct {
	res  *texture.SurfaceResource
	surf *surface.ImageSurface
	opts reloadOptions
}

type reloadOptions struct {
	keepSize bool
	mode     texture.ScaleMode
}

// Option configures how a file is reloaded into its surface.
type Option func(*reloadOptions)

// KeepSize fits reloaded content to the surface's current size instead of
// adopting the decoded size. Rasters are resampled with mode; vector
// sources are rasterized at the surface size.
func KeepSize(mode texture.ScaleMode) Option {
	return func(o *reloadOptions) {
		o.keepSize = true
		o.mode = mode
	}
}

// Watcher maps watched files to the surfaces they feed.
type Watcher struct {
	fsw *fsnotify.Watcher
	log *slog.Logger

	mu      sync.Mutex
	targets map[string][]target
	dirs    map[string]int
	closed  bool

	// OnReload, if set, is called after every reload attempt triggered by
	// a file event. It runs on the event goroutine.
	OnReload func(path string, err error)

	done chan struct{}
}

// New starts a watcher. A nil logger discards output.
func New(logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &Watcher{
		fsw:     fsw,
		log:     logger,
		targets: make(map[string][]target),
		dirs:    make(map[string]int),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch reloads path into s and calls res.Update whenever the file is
// written or re-created. The parent directory is watched so editors that
// replace files atomically are picked up.
func (w *Watcher) Watch(path string, res *texture.SurfaceResource, s *surface.ImageSurface, opts ...Option) error {
	if res == nil || s == nil {
		return fmt.Errorf("watch: %s: nil resource or surface", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch: %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	t := target{res: res, surf: s}
	for _, opt := range opts {
		opt(&t.opts)
	}
	w.targets[abs] = append(w.targets[abs], t)
	w.log.Debug("watch: added", "path", abs)
	return nil
}

// Unwatch stops reloading path for every resource.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(w.targets[abs])
	if n == 0 {
		return nil
	}
	delete(w.targets, abs)
	w.dirs[dir] -= n
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		if !w.closed {
			return w.fsw.Remove(dir)
		}
	}
	return nil
}

// Watched returns the number of watched files.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.targets)
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.handle(event.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch: notify error", "err", err)
		}
	}
}

func (w *Watcher) handle(name string) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return
	}

	w.mu.Lock()
	targets := append([]target(nil), w.targets[abs]...)
	w.mu.Unlock()

	for _, t := range targets {
		err := reload(abs, t.res, t.surf, t.opts)
		if err != nil {
			w.log.Warn("watch: reload failed", "path", abs, "err", err)
		} else {
			w.log.Debug("watch: reloaded", "path", abs, "width", t.surf.Width(), "height", t.surf.Height())
		}
		if w.OnReload != nil {
			w.OnReload(abs, err)
		}
	}
}

// Close stops watching. Close is idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}

// Reload decodes the file at path into s and notifies consumers through
// res.Update. By default s adopts the decoded size; see KeepSize. Raster
// images and SVG markup are supported.
func Reload(path string, res *texture.SurfaceResource, s *surface.ImageSurface, opts ...Option) error {
	var o reloadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return reload(path, res, s, o)
}

func reload(path string, res *texture.SurfaceResource, s *surface.ImageSurface, o reloadOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	var svg decode.SVGOptions
	fit := o.keepSize && s.Width() > 0 && s.Height() > 0
	if fit {
		svg = decode.SVGOptions{Width: s.Width(), Height: s.Height()}
	}

	var img image.Image
	switch kind := decode.Sniff(data, path); kind {
	case decode.KindSVG:
		img, err = decode.RasterizeSVG(string(data), svg)
	case decode.KindImage:
		img, _, err = decode.Image(data)
		if err == nil && fit {
			img = decode.Resample(img, s.Width(), s.Height(), o.mode.Interpolator())
		}
	default:
		err = fmt.Errorf("%s: %w", kind, decode.ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("watch: %s: %w", path, err)
	}

	if err := s.Replace(img); err != nil {
		return fmt.Errorf("watch: %s: %w", path, err)
	}
	return res.Update()
}
