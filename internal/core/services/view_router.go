package services

import (
	"log"
	"sync"

	"github.com/screenaware/screenaware/internal/core/domain"
)

// Navigator is the capability handed to every view.
type Navigator interface {
	Navigate(target domain.View, opts ...NavigateOption)
}

type navigateOptions struct {
	replace bool
	report  *domain.ReportResult
}

type NavigateOption func(*navigateOptions)

// WithReplace overwrites the current history entry instead of pushing a new one.
func WithReplace() NavigateOption {
	return func(o *navigateOptions) { o.replace = true }
}

// WithReport attaches a report to the new history entry.
func WithReport(report *domain.ReportResult) NavigateOption {
	return func(o *navigateOptions) { o.report = report }
}

// ViewRouter owns the current view and keeps it in step with the session history.
type ViewRouter struct {
	history domain.NavigationStore

	mu      sync.Mutex
	current domain.View
	// changes counts view changes; a render pass stops once it is stale.
	changes     uint64
	listeners   []listener
	nextID      int
	unsubscribe func()
}

type listener struct {
	id int
	fn func(domain.View)
}

var _ Navigator = (*ViewRouter)(nil)

func NewViewRouter(history domain.NavigationStore) *ViewRouter {
	initial := domain.DefaultView
	if entry, err := history.Current(); err == nil {
		initial = domain.ViewForPath(entry.Path)
	}

	return &ViewRouter{
		history: history,
		current: initial,
	}
}

// Mount starts listening for back/forward moves and makes sure the current
// history entry describes the current view. Mounting twice is a no-op.
func (r *ViewRouter) Mount() {
	r.mu.Lock()
	if r.unsubscribe != nil {
		r.mu.Unlock()
		return
	}
	r.unsubscribe = r.history.Subscribe(r.handlePop)
	current := r.current
	r.mu.Unlock()

	r.sync(current)
}

// Unmount detaches from history notifications.
func (r *ViewRouter) Unmount() {
	r.mu.Lock()
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (r *ViewRouter) Current() domain.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// OnChange registers a render callback invoked after every view change.
// Callbacks run in registration order. A callback that navigates ends the
// current pass; the remaining callbacks only see the newer view.
func (r *ViewRouter) OnChange(fn func(domain.View)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners = append(r.listeners, listener{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// Navigate moves to target. History failures are ignored: the in-memory view
// still changes and listeners still run.
func (r *ViewRouter) Navigate(target domain.View, opts ...NavigateOption) {
	var o navigateOptions
	for _, opt := range opts {
		opt(&o)
	}

	if canonical, ok := domain.ParseView(string(target)); ok {
		target = canonical
	} else {
		target = domain.DefaultView
	}

	entry := domain.NavigationEntry{
		Path:  domain.PathForView(target),
		State: &domain.HistoryState{View: target, Report: o.report},
	}

	var err error
	if o.replace {
		err = r.history.Replace(entry)
	} else {
		err = r.history.Push(entry)
	}
	if err != nil {
		log.Printf("[ROUTER] History not updated for %s: %v", target, err)
	}

	r.setCurrent(target)
}

func (r *ViewRouter) handlePop(event domain.PopEvent) {
	view := domain.ViewForPath(event.Path)
	if event.State != nil {
		if v, ok := domain.ParseView(string(event.State.View)); ok {
			view = v
		}
	}

	r.setCurrent(view)
}

func (r *ViewRouter) setCurrent(view domain.View) {
	r.mu.Lock()
	r.current = view
	r.changes++
	pass := r.changes
	listeners := make([]listener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	r.sync(view)

	for _, l := range listeners {
		r.mu.Lock()
		stale := r.changes != pass
		r.mu.Unlock()
		if stale {
			return
		}
		l.fn(view)
	}
}

// sync rewrites the top history entry so it agrees with view. An entry that
// already agrees is left untouched, payload included.
func (r *ViewRouter) sync(view domain.View) {
	path := domain.PathForView(view)

	top, err := r.history.Current()
	if err == nil && top.Path == path && top.State != nil && top.State.View == view {
		return
	}

	state := &domain.HistoryState{View: view}
	if err == nil && top.State != nil && top.State.View == view {
		state.Report = top.State.Report
	}

	if err := r.history.Replace(domain.NavigationEntry{Path: path, State: state}); err != nil {
		log.Printf("[ROUTER] History not synced to %s: %v", view, err)
	}
}
