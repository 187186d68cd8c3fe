// Package focus drives focus mode: it owns the decoration channels while the
// mode is active, follows the selection of the active view and keeps the
// focus area in sync with edits and view switches.
package focus

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/config"
	"github.com/oligo/gvfocus/internal/debounce"
	"github.com/oligo/gvfocus/region"
	"github.com/oligo/gvfocus/textstyle/decoration"
)

// Mode is the state of focus mode.
type Mode uint8

const (
	Inactive Mode = iota
	Active
)

func (m Mode) String() string {
	if m == Active {
		return "active"
	}
	return "inactive"
}

const (
	noticeActivated   = `Focus mode activated - Select text to create focus area, or run "Focus Highlight: Start Selection"`
	noticeDeactivated = "Focus mode deactivated - All highlighting cleared"
	noticeUpdateError = "Error updating focus area decorations"
)

// Option configures a Controller.
type Option func(c *Controller)

// WithConfig uses the debounce delay and channel styles of cfg. An invalid
// cfg is logged and ignored.
func WithConfig(cfg config.Config) Option {
	return func(c *Controller) {
		styles, err := cfg.Styles()
		if err != nil {
			logger.Warn("ignoring invalid config", "error", err)
			return
		}
		c.styles = styles
		c.delay = time.Duration(cfg.Debounce)
	}
}

// WithDebounce sets the quiet period after the last selection change before
// the focus area follows the selection.
func WithDebounce(delay time.Duration) Option {
	return func(c *Controller) {
		if delay > 0 {
			c.delay = delay
		}
	}
}

// WithDispatcher makes debounced updates run through dispatch, which can post
// them to the event loop of the host. By default they run on a timer
// goroutine, serialized with all other calls.
func WithDispatcher(dispatch func(fn func())) Option {
	return func(c *Controller) {
		c.dispatch = dispatch
	}
}

// WithStyles overrides the style of some channels.
func WithStyles(styles map[gvfocus.ChannelKind]decoration.Style) Option {
	return func(c *Controller) {
		for kind, style := range styles {
			c.styles[kind] = style
		}
	}
}

// Controller is the focus mode state machine. While active it holds six
// decoration channels and three workspace subscriptions. All of them are
// released by Deactivate. It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	ws       gvfocus.Workspace
	factory  gvfocus.ChannelFactory
	notifier gvfocus.Notifier
	styles   map[gvfocus.ChannelKind]decoration.Style
	delay    time.Duration
	dispatch func(fn func())
	debounce *debounce.Runner

	mode    Mode
	focus   *gvfocus.FocusRange
	regions region.RegionSet
	sync    *synchronizer
	subs    []gvfocus.Subscription
}

// New creates an inactive controller. A nil notifier sends notices to the
// log.
func New(ws gvfocus.Workspace, factory gvfocus.ChannelFactory, notifier gvfocus.Notifier, opts ...Option) *Controller {
	defaults := config.Default()
	// the built-in config is valid.
	styles, _ := defaults.Styles()

	c := &Controller{
		ws:       ws,
		factory:  factory,
		notifier: notifier,
		styles:   styles,
		delay:    time.Duration(defaults.Debounce),
	}
	if c.notifier == nil {
		c.notifier = logNotifier{}
	}

	for _, opt := range opts {
		opt(c)
	}

	c.debounce = debounce.New(c.delay, c.runLocked)
	return c
}

// runLocked runs fn under the controller lock, on the event loop of the host
// if there is a dispatcher.
func (c *Controller) runLocked(fn func()) {
	locked := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		fn()
	}

	if c.dispatch != nil {
		c.dispatch(locked)
		return
	}
	locked()
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Focus returns the current focus range, if any.
func (c *Controller) Focus() (gvfocus.FocusRange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.focus == nil {
		return gvfocus.FocusRange{}, false
	}
	return *c.focus, true
}

// Regions returns the regions last applied to a view.
func (c *Controller) Regions() region.RegionSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regions
}

// Activate turns focus mode on. It requires an active view. Either all
// channels and subscriptions are set up, or none.
func (c *Controller) Activate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activateLocked()
}

func (c *Controller) activateLocked() error {
	if c.ws.ActiveView() == nil {
		c.notifier.Warn("No active editor found")
		return ErrNoActiveView
	}
	if c.mode == Active {
		c.notifier.Info("Focus mode is already active")
		return ErrAlreadyActive
	}

	s, err := newSynchronizer(c.factory, c.styles)
	if err != nil {
		logger.Error("creating decoration channels", "error", err)
		if terr := c.teardownLocked(); terr != nil {
			logger.Warn("rolling back activation", "error", terr)
		}
		c.notifier.Error("Failed to activate focus mode")
		return fmt.Errorf("activate focus mode: %w", err)
	}

	c.sync = s
	c.mode = Active
	c.subs = append(c.subs,
		c.ws.OnSelectionChanged(c.onSelectionChanged),
		c.ws.OnActiveViewChanged(c.onActiveViewChanged),
		c.ws.OnDocumentEdited(c.onDocumentEdited),
	)

	logger.Debug("focus mode activated", "debounce", c.delay)
	c.notifier.Info(noticeActivated)
	return nil
}

// Deactivate turns focus mode off, removing every decoration and releasing
// all channels, subscriptions and the pending selection update.
func (c *Controller) Deactivate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deactivateLocked()
}

func (c *Controller) deactivateLocked() error {
	if c.mode == Inactive {
		c.notifier.Info("Focus mode is already inactive")
		return ErrAlreadyInactive
	}

	if err := c.teardownLocked(); err != nil {
		// the channels are gone anyway.
		logger.Warn("clearing decorations on deactivation", "error", err)
	}

	c.notifier.Info(noticeDeactivated)
	return nil
}

// Toggle deactivates an active controller and activates an inactive one.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == Active {
		return c.deactivateLocked()
	}
	return c.activateLocked()
}

// teardownLocked releases everything an activation acquired. It can run in
// any state.
func (c *Controller) teardownLocked() error {
	c.debounce.Cancel()
	c.focus = nil
	c.regions = region.RegionSet{}

	var err error
	if c.sync != nil {
		err = c.sync.clearAll(c.ws.VisibleViews())
		c.sync = nil
	}

	for _, sub := range c.subs {
		sub.Unsubscribe()
	}
	c.subs = nil
	c.mode = Inactive

	logger.Debug("focus mode torn down")
	return err
}

// SetFocusRange focuses the lines from start to end on view. The positions
// may come in any order and are clamped to the document. The focus area is
// removed from the other views.
func (c *Controller) SetFocusRange(view gvfocus.View, start, end gvfocus.Position) (gvfocus.FocusRange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Active {
		c.notifier.Warn("Focus mode is not active")
		return gvfocus.FocusRange{}, ErrInactive
	}

	return c.setFocusLocked(view, start, end)
}

func (c *Controller) setFocusLocked(view gvfocus.View, start, end gvfocus.Position) (gvfocus.FocusRange, error) {
	if end.Before(start) {
		start, end = end, start
	}

	rs := region.Compute(view.Document(), gvfocus.NewFocusRange(start.Line, end.Line))
	if rs.Empty() {
		if err := c.clearFocusLocked(view); err != nil {
			logger.Warn("clearing focus", "error", err)
		}
		return gvfocus.FocusRange{}, ErrEmptyDocument
	}

	// drop the focus area of other views.
	for id, painted := range c.sync.painted {
		if id == view.ID() {
			continue
		}
		if err := c.sync.clear(painted); err != nil {
			logger.Warn("clearing previous focus area", "view", id, "error", err)
		}
	}

	focus := rs.Focus
	c.focus = &focus
	if err := c.applyLocked(view, rs); err != nil {
		return focus, err
	}

	c.notifier.Info(fmt.Sprintf("Focus area updated: lines %d-%d", focus.Start+1, focus.End+1))
	return focus, nil
}

// applyLocked paints rs on view. Failures are logged and reported once.
func (c *Controller) applyLocked(view gvfocus.View, rs region.RegionSet) error {
	c.regions = rs
	logger.Debug("applying focus area", "view", view.ID(), "range", rs.Focus, "width", rs.UniformWidth)

	if err := c.sync.apply(view, rs); err != nil {
		logger.Error("updating decorations", "view", view.ID(), "error", err)
		c.notifier.Error(noticeUpdateError)
		return err
	}
	return nil
}

// ClearFocus removes the focus area from every view while keeping focus
// mode active.
func (c *Controller) ClearFocus(showNotice bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Active {
		c.notifier.Warn("Focus mode is not active")
		return ErrInactive
	}

	if err := c.clearFocusLocked(c.ws.ActiveView()); err != nil {
		logger.Error("clearing focus area", "error", err)
		c.notifier.Error(noticeUpdateError)
		return err
	}

	if showNotice {
		c.notifier.Info("Focus area cleared")
	}
	return nil
}

func (c *Controller) clearFocusLocked(current gvfocus.View) error {
	c.debounce.Cancel()
	c.focus = nil
	c.regions = region.RegionSet{}
	return c.sync.clearPainted(current)
}

func (c *Controller) onSelectionChanged(e gvfocus.SelectionEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Active || e.View == nil {
		return
	}
	active := c.ws.ActiveView()
	if active == nil || active.ID() != e.View.ID() {
		return
	}
	if sel, ok := e.Primary(); !ok || sel.IsEmpty() {
		return
	}

	c.debounce.Run(c.followSelectionLocked)
}

// followSelectionLocked focuses the latest selection of the active view. It
// runs when the selection settled.
func (c *Controller) followSelectionLocked() {
	if c.mode != Active {
		return
	}
	view := c.ws.ActiveView()
	if view == nil {
		return
	}
	sel := view.Selection()
	if sel.IsEmpty() {
		return
	}

	logger.Debug("selection settled", "view", view.ID(), "start", sel.Start(), "end", sel.End())
	if _, err := c.setFocusLocked(view, sel.Start(), sel.End()); err != nil {
		logger.Warn("following selection", "error", err)
	}
}

func (c *Controller) onActiveViewChanged(view gvfocus.View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Active || c.focus == nil || view == nil {
		return
	}

	if c.focus.End < view.Document().LineCount() {
		c.applyLocked(view, region.Compute(view.Document(), *c.focus))
		return
	}

	logger.Debug("focus range does not fit the new view", "range", *c.focus)
	if err := c.clearFocusLocked(view); err != nil {
		logger.Warn("clearing stale focus", "error", err)
	}
}

func (c *Controller) onDocumentEdited(e gvfocus.EditEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Active || c.focus == nil {
		return
	}
	active := c.ws.ActiveView()
	if active == nil || !sameDocument(e.Document, active.Document()) {
		return
	}

	if c.focus.End >= active.Document().LineCount() {
		logger.Debug("focus range is stale after edit", "range", *c.focus)
		if err := c.clearFocusLocked(active); err != nil {
			logger.Warn("clearing stale focus", "error", err)
		}
		return
	}

	c.applyLocked(active, region.Compute(active.Document(), *c.focus))
}

// sameDocument compares two documents by identity. Documents whose dynamic
// type is not comparable are never the same.
func sameDocument(a, b gvfocus.Document) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
