package toc

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity bounds the number of widgets a Registry holds at once.
const DefaultCapacity = 10000

// Registry keeps the widgets mounted by rendered pages until the page
// releases them, stays idle longer than the TTL, or is evicted as the least
// recently used widget once the registry is full.
type Registry struct {
	mu       sync.Mutex
	widgets  map[string]*mounted
	lru      *list.List // front is most recently touched
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

type mounted struct {
	widget  *Widget
	touched time.Time
	elem    *list.Element
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCapacity sets the maximum number of mounted widgets. Values below one
// keep DefaultCapacity.
func WithCapacity(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// NewRegistry creates a Registry that evicts widgets idle for longer than ttl.
func NewRegistry(ttl time.Duration, opts ...RegistryOption) *Registry {
	r := &Registry{
		widgets:  make(map[string]*mounted),
		lru:      list.New(),
		ttl:      ttl,
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount creates a widget for headings under a fresh id, starts observing
// its headings and registers it. When the registry is full the least
// recently touched widget is released first. The returned func releases
// the widget; calling it more than once is harmless.
func (r *Registry) Mount(headings []Heading, opts ...ObserveOption) (*Widget, func()) {
	w := New(uuid.NewString(), headings)
	w.Observe(opts...)

	r.mu.Lock()
	var evicted []*Widget
	for len(r.widgets) >= r.capacity {
		oldest := r.lru.Back().Value.(*mounted)
		r.remove(oldest)
		evicted = append(evicted, oldest.widget)
	}
	m := &mounted{widget: w, touched: r.now()}
	m.elem = r.lru.PushFront(m)
	r.widgets[w.ID()] = m
	r.mu.Unlock()

	for _, old := range evicted {
		old.Release()
	}

	var once sync.Once
	return w, func() {
		once.Do(func() { r.Release(w.ID()) })
	}
}

// remove drops m from both indexes. r.mu must be held.
func (r *Registry) remove(m *mounted) {
	delete(r.widgets, m.widget.ID())
	r.lru.Remove(m.elem)
}

// Lookup returns the widget mounted under id and marks it as recently used.
func (r *Registry) Lookup(id string) (*Widget, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.widgets[id]
	if !ok {
		return nil, false
	}
	m.touched = r.now()
	r.lru.MoveToFront(m.elem)
	return m.widget, true
}

// Release unregisters the widget and disconnects its observer.
// It reports whether a widget was mounted under id.
func (r *Registry) Release(id string) bool {
	r.mu.Lock()
	m, ok := r.widgets[id]
	if ok {
		r.remove(m)
	}
	r.mu.Unlock()
	if ok {
		m.widget.Release()
	}
	return ok
}

// Sweep releases every widget idle for longer than the TTL and returns
// how many were released.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*Widget
	for e := r.lru.Back(); e != nil; {
		m := e.Value.(*mounted)
		if !m.touched.Before(cutoff) {
			break
		}
		e = e.Prev()
		r.remove(m)
		stale = append(stale, m.widget)
	}
	r.mu.Unlock()

	for _, w := range stale {
		w.Release()
	}
	return len(stale)
}

// StartSweeper runs Sweep every interval in a background goroutine.
// Call the returned function to stop it.
func (r *Registry) StartSweeper(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// Close releases every mounted widget.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.widgets
	r.widgets = make(map[string]*mounted)
	r.lru.Init()
	r.mu.Unlock()
	for _, m := range all {
		m.widget.Release()
	}
}

// Len returns the number of mounted widgets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.widgets)
}
