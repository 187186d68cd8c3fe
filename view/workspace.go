// Package view is an in-memory host for the focus engine. It keeps text
// views, delivers their selection, activation and edit events, and stores
// the decorations requested by the engine so that a UI can paint them.
package view

import (
	"sync"

	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/textstyle/decoration"
	"golang.org/x/exp/slices"
)

type handler[T any] struct {
	id int
	fn func(T)
}

// handlers is a list of event callbacks. Callbacks are invoked on a
// snapshot of the list, so they may subscribe or unsubscribe freely.
type handlers[T any] struct {
	mu     sync.Mutex
	nextID int
	list   []handler[T]
}

func (h *handlers[T]) add(fn func(T)) gvfocus.Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.list = append(h.list, handler[T]{id: id, fn: fn})

	return &subscription{cancel: func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.list = slices.DeleteFunc(h.list, func(e handler[T]) bool { return e.id == id })
	}}
}

func (h *handlers[T]) publish(event T) {
	h.mu.Lock()
	list := slices.Clone(h.list)
	h.mu.Unlock()

	for _, e := range list {
		e.fn(event)
	}
}

func (h *handlers[T]) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.list)
}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// Workspace holds the open views and implements gvfocus.Workspace and
// gvfocus.ChannelFactory. Events are delivered synchronously on the
// goroutine that caused them.
type Workspace struct {
	mu     sync.Mutex
	views  []*TextView
	active *TextView
	// live counts allocated channels that are not disposed.
	live int

	selectionHandlers handlers[gvfocus.SelectionEvent]
	activeHandlers    handlers[gvfocus.View]
	editHandlers      handlers[gvfocus.EditEvent]
}

func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Open creates a visible view showing text. The first opened view becomes
// the active one.
func (w *Workspace) Open(text string) *TextView {
	v := newTextView(w, text)

	w.mu.Lock()
	w.views = append(w.views, v)
	first := w.active == nil
	if first {
		w.active = v
	}
	w.mu.Unlock()

	if first {
		w.activeHandlers.publish(v)
	}
	return v
}

// Close removes v. If v was active, the previous view in the workspace, if
// any, becomes active.
func (w *Workspace) Close(v *TextView) {
	w.mu.Lock()
	idx := slices.Index(w.views, v)
	if idx < 0 {
		w.mu.Unlock()
		return
	}
	w.views = slices.Delete(w.views, idx, idx+1)

	changed := w.active == v
	if changed {
		w.active = nil
		if len(w.views) > 0 {
			w.active = w.views[max(0, idx-1)]
		}
	}
	active := w.active
	w.mu.Unlock()

	if changed {
		w.activeHandlers.publish(asView(active))
	}
}

// SetActive focuses v. Nil removes the focus from all views.
func (w *Workspace) SetActive(v *TextView) {
	w.mu.Lock()
	if v != nil && !slices.Contains(w.views, v) {
		w.mu.Unlock()
		return
	}
	changed := w.active != v
	w.active = v
	w.mu.Unlock()

	if changed {
		w.activeHandlers.publish(asView(v))
	}
}

// Views returns all open views in opening order.
func (w *Workspace) Views() []*TextView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.views)
}

// Active returns the active view, or nil.
func (w *Workspace) Active() *TextView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Workspace) ActiveView() gvfocus.View {
	return asView(w.Active())
}

func (w *Workspace) VisibleViews() []gvfocus.View {
	w.mu.Lock()
	defer w.mu.Unlock()

	views := make([]gvfocus.View, 0, len(w.views))
	for _, v := range w.views {
		views = append(views, v)
	}
	return views
}

func (w *Workspace) OnSelectionChanged(fn func(gvfocus.SelectionEvent)) gvfocus.Subscription {
	return w.selectionHandlers.add(fn)
}

func (w *Workspace) OnActiveViewChanged(fn func(gvfocus.View)) gvfocus.Subscription {
	return w.activeHandlers.add(fn)
}

func (w *Workspace) OnDocumentEdited(fn func(gvfocus.EditEvent)) gvfocus.Subscription {
	return w.editHandlers.add(fn)
}

// Subscribers returns the number of registered event handlers.
func (w *Workspace) Subscribers() int {
	return w.selectionHandlers.len() + w.activeHandlers.len() + w.editHandlers.len()
}

// CreateChannel allocates a decoration channel.
func (w *Workspace) CreateChannel(kind gvfocus.ChannelKind, style decoration.Style) (gvfocus.Channel, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.live++
	return &channel{kind: kind, style: style, release: w.release}, nil
}

// LiveChannels returns the number of allocated channels not disposed yet.
func (w *Workspace) LiveChannels() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.live
}

func (w *Workspace) release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.live--
}

// asView avoids wrapping a nil *TextView in a non-nil interface.
func asView(v *TextView) gvfocus.View {
	if v == nil {
		return nil
	}
	return v
}
