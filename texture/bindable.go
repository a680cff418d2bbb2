package texture

import (
	"fmt"
	"reflect"
	"sync"
)

// Source is a drawing surface whose dimensions may change at any time.
// surface.Surface satisfies it.
type Source interface {
	Width() int
	Height() int
}

// Consumer receives notifications from a BindableResource.
//
// SetRealSize is called with the resource's pixel dimensions when the
// consumer is bound and whenever they change. Update is called once per
// BindableResource.Update so the consumer can re-upload pixel content.
//
// Consumers are compared with ==; use pointer types. Bind rejects values
// whose dynamic type is not comparable.
type Consumer interface {
	SetRealSize(width, height int)
	Update()
}

// BindableResource tracks the dimensions of a Source and fans out resize
// and update notifications to bound consumers.
//
// The resource never owns its source or its consumers: Destroy forgets
// both without closing anything. Notifications are delivered outside the
// internal lock, so consumers may call back into the resource.
//
// BindableResource is safe for concurrent use.
type BindableResource struct {
	mu        sync.Mutex
	src       Source
	width     int
	height    int
	consumers []Consumer
	destroyed bool
}

// NewBindableResource creates a resource observing src.
// A nil src yields a resource with no dimensions until one is attached.
func NewBindableResource(src Source) *BindableResource {
	r := &BindableResource{src: src}
	r.width, r.height = sourceSize(src)
	return r
}

// sourceSize reads non-negative dimensions from src.
func sourceSize(src Source) (int, int) {
	if src == nil {
		return 0, 0
	}
	return max(src.Width(), 0), max(src.Height(), 0)
}

// Width returns the last observed width in pixels.
func (r *BindableResource) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width
}

// Height returns the last observed height in pixels.
func (r *BindableResource) Height() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.height
}

// Valid reports whether both dimensions are non-zero.
func (r *BindableResource) Valid() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width > 0 && r.height > 0
}

// Source returns the observed source, or nil once destroyed.
func (r *BindableResource) Source() Source {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src
}

// Destroyed reports whether Destroy has been called.
func (r *BindableResource) Destroyed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyed
}

// Bound returns the number of bound consumers.
func (r *BindableResource) Bound() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.consumers)
}

// Bind registers c and immediately calls c.SetRealSize with the current
// dimensions. Binding an already bound consumer is a no-op.
func (r *BindableResource) Bind(c Consumer) error {
	if c == nil {
		return fmt.Errorf("texture: bind nil consumer")
	}
	if !isComparable(c) {
		return fmt.Errorf("texture: bind %T: %w", c, ErrUncomparableConsumer)
	}

	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return fmt.Errorf("texture: bind: %w", ErrInvalidState)
	}
	if r.indexOf(c) >= 0 {
		r.mu.Unlock()
		return nil
	}
	r.consumers = append(r.consumers, c)
	w, h := r.width, r.height
	r.mu.Unlock()

	c.SetRealSize(w, h)
	return nil
}

// Unbind removes c. Unbinding a consumer that is not bound is a no-op.
func (r *BindableResource) Unbind(c Consumer) {
	if c == nil || !isComparable(c) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(c); i >= 0 {
		r.consumers = append(r.consumers[:i], r.consumers[i+1:]...)
	}
}

// Update re-reads the source dimensions. If they changed, every bound
// consumer receives SetRealSize first; then every bound consumer receives
// exactly one Update call.
func (r *BindableResource) Update() error {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return fmt.Errorf("texture: update: %w", ErrInvalidState)
	}

	w, h := sourceSize(r.src)
	resized := w != r.width || h != r.height
	r.width, r.height = w, h

	consumers := make([]Consumer, len(r.consumers))
	copy(consumers, r.consumers)
	r.mu.Unlock()

	if resized {
		for _, c := range consumers {
			c.SetRealSize(w, h)
		}
	}
	for _, c := range consumers {
		c.Update()
	}
	return nil
}

// Destroy drops the source reference and all bindings. The source itself
// is left untouched. Later Bind and Update calls fail with ErrInvalidState.
func (r *BindableResource) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.destroyed = true
	r.src = nil
	r.consumers = nil
}

// indexOf returns the position of c in the consumer list, or -1.
// Caller must hold r.mu.
func (r *BindableResource) indexOf(c Consumer) int {
	for i, bound := range r.consumers {
		if bound == c {
			return i
		}
	}
	return -1
}

func isComparable(c Consumer) bool {
	return reflect.TypeOf(c).Comparable()
}
