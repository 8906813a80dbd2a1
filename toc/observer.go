package toc

import "sync"

// FullyVisible is the default visibility ratio at which a heading counts as
// in view: its whole bounding box intersects the viewport.
const FullyVisible = 1.0

// ratioTolerance absorbs float rounding in browser-reported ratios.
const ratioTolerance = 0.001

// DefaultDepths are the heading levels tracked for the active highlight.
var DefaultDepths = []int{2, 3}

// Entry is one visibility notification for a tracked heading.
type Entry struct {
	Slug  string
	Ratio float64
}

// ObserveOption configures an Observer.
type ObserveOption func(*observeConfig)

type observeConfig struct {
	threshold float64
	depths    []int
}

// WithThreshold sets the visibility ratio a heading must reach to become active.
func WithThreshold(ratio float64) ObserveOption {
	return func(c *observeConfig) {
		c.threshold = ratio
	}
}

// WithDepths replaces the tracked heading levels.
func WithDepths(depths ...int) ObserveOption {
	return func(c *observeConfig) {
		c.depths = depths
	}
}

// Observer receives visibility notifications for the headings of one
// widget and moves the widget's active slug accordingly.
type Observer struct {
	widget    *Widget
	threshold float64

	mu        sync.Mutex
	targets   map[string]struct{}
	connected bool
}

func newObserver(w *Widget, opts ...ObserveOption) *Observer {
	cfg := observeConfig{threshold: FullyVisible, depths: DefaultDepths}
	for _, opt := range opts {
		opt(&cfg)
	}
	levels := make(map[int]struct{}, len(cfg.depths))
	for _, d := range cfg.depths {
		levels[d] = struct{}{}
	}
	targets := make(map[string]struct{})
	for _, h := range w.headings {
		if _, ok := levels[h.Depth]; ok {
			targets[h.Slug] = struct{}{}
		}
	}
	return &Observer{
		widget:    w,
		threshold: cfg.threshold,
		targets:   targets,
		connected: true,
	}
}

// Notify applies entries in delivery order. An entry for a tracked heading
// whose ratio reaches the threshold makes that heading active; the last
// qualifying entry wins. Entries arriving after Disconnect are ignored.
func (o *Observer) Notify(entries ...Entry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.connected {
		return
	}
	for _, e := range entries {
		if _, ok := o.targets[e.Slug]; !ok {
			continue
		}
		// NaN compares false and must not activate.
		if !(e.Ratio+ratioTolerance >= o.threshold) {
			continue
		}
		o.widget.setActive(e.Slug)
	}
}

// Tracked reports whether slug is registered with the observer.
func (o *Observer) Tracked(slug string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.targets[slug]
	return ok
}

// Len returns the number of registered headings.
func (o *Observer) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.targets)
}

// Connected reports whether the observer still accepts notifications.
func (o *Observer) Connected() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.connected
}

// Disconnect unregisters every heading. The widget keeps its last active slug.
func (o *Observer) Disconnect() {
	o.mu.Lock()
	o.connected = false
	o.targets = nil
	o.mu.Unlock()
}
