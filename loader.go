package assets

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/gogpu/assets/decode"
	"github.com/gogpu/assets/fetch"
	"github.com/gogpu/assets/internal/parallel"
	"github.com/gogpu/assets/texture"
)

// CompleteFunc is called once per Load, after every item resolved.
// resources maps names to the Loader's resources at that moment.
type CompleteFunc func(l *Loader, resources map[string]*Resource)

// ProgressFunc is called after each item resolves, successfully or not.
type ProgressFunc func(l *Loader, res *Resource, done, total int)

// Loader fetches named resources in batches and turns them into textures,
// text, JSON values or fonts.
//
// A Loader is Idle until Load is called and Idle again once the batch
// completes. Items are dispatched in insertion order on a bounded worker
// pool. Failures are recorded per item and never abort the batch.
//
// Loader is safe for concurrent use.
type Loader struct {
	opts loaderOptions

	mu        sync.Mutex
	pending   []*Resource
	resources map[string]*Resource
	loading   bool
	gen       uint64
	pre       []Middleware
	use       []Middleware
}

// NewLoader creates an idle loader.
func NewLoader(opts ...Option) *Loader {
	o := defaultLoaderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = texture.Default()
	}
	if o.fetcher == nil {
		o.fetcher = DefaultFetcher(o.concurrency)
	}

	l := &Loader{
		opts:      o,
		resources: make(map[string]*Resource),
	}
	if o.baseURL != "" {
		l.pre = append(l.pre, BaseURL(o.baseURL))
	}
	l.pre = append(l.pre, o.pre...)
	l.use = append(l.use, TextureParser{}, TextParser{}, FontParser{})
	l.use = append(l.use, o.use...)
	return l
}

func (l *Loader) logger() *slog.Logger {
	if l.opts.logger != nil {
		return l.opts.logger
	}
	return Logger()
}

// Cache returns the texture cache used by the loader.
func (l *Loader) Cache() *texture.Cache {
	return l.opts.cache
}

// Fetcher returns the byte source used by the loader.
func (l *Loader) Fetcher() fetch.Fetcher {
	return l.opts.fetcher
}

// Pre appends a middleware that runs before the cache lookup.
func (l *Loader) Pre(mw Middleware) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pre = append(l.pre, mw)
	return l
}

// Use appends a middleware that runs after the payload is fetched.
func (l *Loader) Use(mw Middleware) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.use = append(l.use, mw)
	return l
}

// Add queues a resource. It returns the loader for chaining.
//
// Names are unique among queued and loaded resources; a repeated name
// fails with *DuplicateNameError. Adding while a batch is in flight fails
// with ErrLoading.
func (l *Loader) Add(name, url string, opts ...ResourceOption) (*Loader, error) {
	if url == "" {
		url = name
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loading {
		return l, ErrLoading
	}
	if _, ok := l.resources[name]; ok {
		return l, &DuplicateNameError{Name: name}
	}

	res := newResource(name, url)
	for _, opt := range opts {
		opt(res)
	}
	l.resources[name] = res
	l.pending = append(l.pending, res)
	return l, nil
}

// Load starts processing every queued resource and returns immediately.
// onComplete, if non-nil, is called exactly once from a loader goroutine
// after the last item resolved, unless Reset is called first.
//
// Calling Load while a batch is in flight fails with ErrLoading. A Load
// with nothing queued completes immediately.
func (l *Loader) Load(ctx context.Context, onComplete CompleteFunc) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrLoading
	}
	batch := l.pending
	l.pending = nil
	l.loading = true
	gen := l.gen
	pre := append([]Middleware(nil), l.pre...)
	use := append([]Middleware(nil), l.use...)
	l.mu.Unlock()

	l.logger().Info("assets: load started", "items", len(batch))
	go l.run(ctx, gen, batch, pre, use, onComplete)
	return nil
}

// LoadWait runs Load and blocks until it completes or ctx is done.
// The returned error joins the errors of every failed item.
func (l *Loader) LoadWait(ctx context.Context) (map[string]*Resource, error) {
	done := make(chan map[string]*Resource, 1)
	if err := l.Load(ctx, func(_ *Loader, resources map[string]*Resource) {
		done <- resources
	}); err != nil {
		return nil, err
	}

	select {
	case resources := <-done:
		var errs []error
		for _, res := range resources {
			if err := res.Err(); err != nil {
				errs = append(errs, err)
			}
		}
		return resources, errors.Join(errs...)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// run drives one batch on a worker pool.
func (l *Loader) run(ctx context.Context, gen uint64, batch []*Resource, pre, use []Middleware, onComplete CompleteFunc) {
	pool := parallel.NewWorkerPool(min(l.opts.concurrency, max(len(batch), 1)))
	pool.SetPanicHandler(func(v any) {
		l.logger().Error("assets: middleware panicked", "err", v)
	})

	var done atomic.Int64
	total := len(batch)
	for _, res := range batch {
		res.setState(StateLoading)
		pool.Submit(func() {
			defer func() {
				if !res.Done() {
					res.fail(&LoadError{Name: res.Name, URL: res.URL, Op: OpParse, Err: errors.New("middleware panicked")})
				}
				n := int(done.Add(1))
				l.progress(gen, res, n, total)
			}()
			l.process(ctx, res, pre, use)
		})
	}
	pool.Wait()
	pool.Close()

	l.finish(gen, total, onComplete)
}

// process runs the pipeline for one resource and leaves it in a terminal
// state.
func (l *Loader) process(ctx context.Context, res *Resource, pre, use []Middleware) {
	log := l.logger().With("name", res.Name)

	for _, mw := range pre {
		if err := mw.Handle(ctx, l, res); err != nil {
			l.fail(log, res, &stageError{op: OpPrepare, err: err})
			return
		}
	}
	log = log.With("url", res.URL)

	key := res.Metadata.sourceKey(res.URL)
	if tex, ok := l.opts.cache.Get(key); ok {
		log.Debug("assets: cache hit", "key", key)
		res.adopt(tex)
		l.complete(res, key)
		return
	}

	e, shared, err := l.opts.cache.Do(key, func() (texture.Entry, error) {
		if err := l.fetchAndParse(ctx, res, use); err != nil {
			return texture.Entry{}, err
		}
		return texture.Entry{Texture: res.Texture, Value: payload{kind: res.Kind, data: res.Data}}, nil
	})
	if err != nil {
		l.fail(log, res, err)
		return
	}

	switch {
	case e.Texture != nil && e.Texture != res.Texture:
		if res.Texture != nil {
			// Another loader registered key first; drop our copy.
			res.Texture.Destroy(true)
		}
		log.Debug("assets: shared texture", "key", key, "shared", shared)
		res.adopt(e.Texture)
	case e.Texture == nil:
		if p, ok := e.Value.(payload); ok {
			res.Kind, res.Data = p.kind, p.data
		}
	}
	l.complete(res, key)
}

// payload carries a parsed value from the resource that fetched it to
// every resource waiting on the same key.
type payload struct {
	kind decode.Kind
	data any
}

// stageError tags an error with the pipeline stage it came from. It
// travels through Cache.Do so followers report the leader's stage.
type stageError struct {
	op  Op
	err error
}

func (e *stageError) Error() string { return string(e.op) + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

// fetchAndParse retrieves the payload, sniffs it and runs the parsers.
func (l *Loader) fetchAndParse(ctx context.Context, res *Resource, use []Middleware) error {
	data, err := l.opts.fetcher.Fetch(ctx, res.URL)
	if err != nil {
		return &stageError{op: OpFetch, err: err}
	}
	if len(data) == 0 {
		return &stageError{op: OpParse, err: decode.ErrEmptyData}
	}
	res.setRaw(data)
	res.Kind = decode.Sniff(data, res.URL)

	for _, mw := range use {
		if err := mw.Handle(ctx, l, res); err != nil {
			return &stageError{op: OpParse, err: err}
		}
	}
	if res.Kind == decode.KindUnknown && res.Data == nil {
		return &stageError{op: OpParse, err: decode.ErrUnsupportedFormat}
	}
	return nil
}

// complete registers the texture under the resource's name, its source
// key and its bare URL, then marks it complete. Every identifier keeps its
// first texture, so a configured variant only claims the bare URL when
// nothing else did.
func (l *Loader) complete(res *Resource, key string) {
	if tex := res.Texture; tex != nil {
		for _, id := range []string{res.Name, key, res.URL} {
			l.opts.cache.Add(id, tex)
		}
	}
	res.setState(StateComplete)
}

func (l *Loader) fail(log *slog.Logger, res *Resource, err error) {
	le := &LoadError{Name: res.Name, URL: res.URL, Kind: res.Kind, Op: OpFetch, Err: err}
	var se *stageError
	if errors.As(err, &se) {
		le.Op, le.Err = se.op, se.err
	}
	log.Warn("assets: load failed", "op", le.Op, "err", le.Err)
	res.fail(le)
}

func (l *Loader) progress(gen uint64, res *Resource, done, total int) {
	if l.opts.progress == nil || !l.current(gen) {
		return
	}
	l.opts.progress(l, res, done, total)
}

func (l *Loader) current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen == gen
}

// finish returns the loader to Idle and reports the batch, unless Reset
// superseded it.
func (l *Loader) finish(gen uint64, total int, onComplete CompleteFunc) {
	l.mu.Lock()
	if l.gen != gen {
		l.mu.Unlock()
		l.logger().Debug("assets: batch finished after reset", "items", total)
		return
	}
	l.loading = false
	snapshot := maps.Clone(l.resources)
	l.mu.Unlock()

	l.logger().Info("assets: load complete", "items", total)
	if onComplete != nil {
		onComplete(l, snapshot)
	}
}

// Reset forgets every queued and loaded resource and returns the loader
// to Idle. Cached textures stay cached. In-flight items keep running and
// still populate the cache, but no longer report progress or completion.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	l.loading = false
	l.pending = nil
	l.resources = make(map[string]*Resource)
}

// Resource returns the resource added under name.
func (l *Loader) Resource(name string) (*Resource, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.resources[name]
	return res, ok
}

// Resources returns a snapshot of the resource table.
func (l *Loader) Resources() map[string]*Resource {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.resources)
}

// Loading reports whether a batch is in flight.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Pending returns the number of queued resources not yet dispatched.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
