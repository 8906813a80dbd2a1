// Package toc implements a table of contents widget for rendered posts:
// a list of in-page links, an expand/collapse toggle and tracking of the
// heading currently in view.
//
// Each Widget owns its state. Nothing is shared between widgets, so any
// number of them may coexist on one page or across requests.
package toc

import "sync"

// Heading is one entry of a document's heading index.
// Slugs are expected to be unique within a document.
type Heading struct {
	Depth int
	Text  string
	Slug  string
}

// Widget holds the per-instance state of a rendered table of contents.
type Widget struct {
	id       string
	headings []Heading

	mu       sync.Mutex
	expanded bool
	active   string
	observer *Observer
}

// New creates a widget for headings. The list starts expanded and with no
// active heading.
func New(id string, headings []Heading) *Widget {
	hs := make([]Heading, len(headings))
	copy(hs, headings)
	return &Widget{
		id:       id,
		headings: hs,
		expanded: true,
	}
}

// ID returns the instance identifier used in DOM ids and endpoint paths.
func (w *Widget) ID() string {
	return w.id
}

// Headings returns a copy of the heading index the widget renders.
func (w *Widget) Headings() []Heading {
	hs := make([]Heading, len(w.headings))
	copy(hs, w.headings)
	return hs
}

// Expanded reports whether the link list is shown.
func (w *Widget) Expanded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expanded
}

// Toggle flips the expanded flag and returns the new value.
func (w *Widget) Toggle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.expanded = !w.expanded
	return w.expanded
}

// Active returns the slug of the heading currently in view, or "" if none
// has been reported yet.
func (w *Widget) Active() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Observe starts visibility tracking for the widget's headings and returns
// the observer. A previous observer, if any, is disconnected first.
func (w *Widget) Observe(opts ...ObserveOption) *Observer {
	o := newObserver(w, opts...)
	w.mu.Lock()
	prev := w.observer
	w.observer = o
	w.mu.Unlock()
	if prev != nil {
		prev.Disconnect()
	}
	return o
}

// Notify forwards visibility entries to the current observer. Without an
// observer the entries are dropped.
func (w *Widget) Notify(entries ...Entry) {
	w.mu.Lock()
	o := w.observer
	w.mu.Unlock()
	if o != nil {
		o.Notify(entries...)
	}
}

// Observing reports whether the widget has a connected observer.
func (w *Widget) Observing() bool {
	w.mu.Lock()
	o := w.observer
	w.mu.Unlock()
	return o != nil && o.Connected()
}

// Release disconnects the widget's observer. It is safe to call more than once.
func (w *Widget) Release() {
	w.mu.Lock()
	o := w.observer
	w.observer = nil
	w.mu.Unlock()
	if o != nil {
		o.Disconnect()
	}
}

func (w *Widget) setActive(slug string) {
	w.mu.Lock()
	w.active = slug
	w.mu.Unlock()
}
