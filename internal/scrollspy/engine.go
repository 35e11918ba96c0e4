// Package scrollspy decides which section of a long single-page document is
// active from viewport geometry, keeps the location in sync with it, and
// orchestrates smooth programmatic scrolling between sections.
//
// Everything runs on one event loop. Nothing here is safe for concurrent use;
// timers and scroll animations are delivered back as calls into the Engine.
package scrollspy

import (
	"fmt"
	"io"
	"log/slog"
)

// FrameThrottle limits passive evaluation to one per animation frame: any
// number of scroll events between two frames costs one evaluation.
type FrameThrottle struct {
	pending bool
}

// Request marks the next frame dirty and reports whether a frame callback
// must be scheduled (false if one is already pending).
func (t *FrameThrottle) Request() bool {
	if t.pending {
		return false
	}
	t.pending = true
	return true
}

// Take consumes the pending frame.
func (t *FrameThrottle) Take() bool {
	was := t.pending
	t.pending = false
	return was
}

// Pending reports a requested frame that has not run yet.
func (t *FrameThrottle) Pending() bool { return t.pending }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Status is the read-only view offered to UI controls.
type Status struct {
	CurrentSection SectionID
	CurrentSubPath string
	IsNavigating   bool
	TargetSection  SectionID
	TargetSubPath  string
	State          NavState
	Location       Location
}

// Options wires an Engine to its host.
type Options struct {
	Catalog   *Catalog
	Tuning    Tuning
	Probe     Probe
	Scroller  Scroller
	Scheduler Scheduler
	History   History
	Logger    *slog.Logger
}

// Engine composes scorer, active-section state, navigator and synchronizer.
type Engine struct {
	catalog  *Catalog
	probe    Probe
	scroller Scroller
	history  History
	log      *slog.Logger

	state    *State
	scorer   *Scorer
	nav      *Navigator
	sync     *Synchronizer
	throttle FrameThrottle
	mounted  bool
	// deferred is set when a frame was dropped because a navigation was in
	// flight; the timer that ends it requests a fresh evaluation.
	deferred bool
}

func New(opts Options) (*Engine, error) {
	switch {
	case opts.Catalog == nil:
		return nil, fmt.Errorf("scrollspy: catalog is required")
	case opts.Probe == nil || opts.Scroller == nil || opts.Scheduler == nil:
		return nil, fmt.Errorf("scrollspy: probe, scroller and scheduler are required")
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	history := opts.History
	if history == nil {
		history = NewMemoryHistory(Location{})
	}

	e := &Engine{
		catalog:  opts.Catalog,
		probe:    opts.Probe,
		scroller: opts.Scroller,
		history:  history,
		log:      log,
		state:    NewState(),
	}
	e.scorer = NewScorer(opts.Catalog, opts.Tuning, log)
	e.sync = NewSynchronizer(history, opts.Catalog, log)
	e.nav = NewNavigator(NavigatorDeps{
		Catalog:   opts.Catalog,
		Tuning:    opts.Tuning,
		Probe:     opts.Probe,
		Scroller:  opts.Scroller,
		Scheduler: opts.Scheduler,
		State:     e.state,
		Sync:      e.sync,
		Logger:    log,
	})
	return e, nil
}

func (e *Engine) Catalog() *Catalog { return e.catalog }

func (e *Engine) Active() ActiveSection { return e.state.Current() }

// Subscribe registers a section-change listener.
func (e *Engine) Subscribe(fn Listener) func() { return e.state.Subscribe(fn) }

func (e *Engine) Status() Status {
	cur := e.state.Current()
	return Status{
		CurrentSection: cur.Section,
		CurrentSubPath: cur.SubPath,
		IsNavigating:   e.nav.State() != Idle,
		TargetSection:  e.nav.Target(),
		TargetSubPath:  e.nav.TargetSubPath(),
		State:          e.nav.State(),
		Location:       e.history.Current(),
	}
}

// Mount seeds the active section from the current location. It is called once
// the document is laid out; later calls are ignored.
func (e *Engine) Mount() {
	if e.mounted {
		return
	}
	e.mounted = true
	e.restore(e.sync.ReadSection())
}

func (e *Engine) Mounted() bool { return e.mounted }

// PopState handles a back/forward move that left loc as the current entry.
func (e *Engine) PopState(loc Location) {
	e.restore(loc)
}

// Back moves the history back if it supports it, and restores the entry.
func (e *Engine) Back() bool {
	mh, ok := e.history.(*MemoryHistory)
	if !ok {
		return false
	}
	loc, ok := mh.Back()
	if ok {
		e.PopState(loc)
	}
	return ok
}

// Forward is Back in the other direction.
func (e *Engine) Forward() bool {
	mh, ok := e.history.(*MemoryHistory)
	if !ok {
		return false
	}
	loc, ok := mh.Forward()
	if ok {
		e.PopState(loc)
	}
	return ok
}

func (e *Engine) restore(loc Location) {
	if loc.IsRoot() || !e.catalog.Contains(loc.Section) {
		e.nav.Top(WriteReplace)
		return
	}
	e.nav.Navigate(Request{
		Section:      loc.Section,
		SubPath:      loc.SubPath,
		ShouldScroll: true,
		History:      WriteReplace,
	})
}

// NavigateTo is the public navigation entry point for UI controls.
func (e *Engine) NavigateTo(section SectionID, subPath string, shouldScroll bool) Outcome {
	return e.nav.Navigate(Request{Section: section, SubPath: subPath, ShouldScroll: shouldScroll})
}

// Fire forwards a scheduled timer to the navigator and reports whether it
// changed state. If frames were dropped during the navigation it ended, a
// frame is requested; the host checks FramePending to schedule it.
func (e *Engine) Fire(t Timer) bool {
	if !e.nav.Fire(t) {
		return false
	}
	if e.deferred && e.nav.State() == Idle {
		e.deferred = false
		e.throttle.Request()
	}
	return true
}

// FramePending reports whether a Frame call is owed to the engine.
func (e *Engine) FramePending() bool { return e.throttle.Pending() }

// Arrived forwards the end of a scroll animation to the navigator.
func (e *Engine) Arrived() { e.nav.Arrived() }

// ScrollEvent records a scroll and reports whether the host must schedule a
// frame callback (Frame).
func (e *Engine) ScrollEvent() bool { return e.throttle.Request() }

// Frame runs at most one passive evaluation for all scroll events since the
// previous frame. While a navigation is in flight its optimistic section
// stands; the evaluation is deferred until a timer returns it to Idle.
func (e *Engine) Frame() bool {
	if !e.throttle.Take() || !e.mounted {
		return false
	}
	if e.nav.State() != Idle {
		e.deferred = true
		return false
	}
	e.deferred = false
	next, changed := e.scorer.Evaluate(e.probe, e.state.Current())
	if !changed {
		return false
	}
	e.state.Set(next, SourceScroll)
	e.sync.WriteSection(next, WriteReplace)
	e.log.Debug("scrollspy: passive section change", "section", next.Section)
	return true
}
