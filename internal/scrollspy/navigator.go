package scrollspy

import (
	"log/slog"
	"math"
	"time"
)

// NavState is the navigation state machine: Idle -> Navigating -> Settling -> Idle.
type NavState int

const (
	Idle NavState = iota
	Navigating
	Settling
)

func (s NavState) String() string {
	switch s {
	case Navigating:
		return "navigating"
	case Settling:
		return "settling"
	default:
		return "idle"
	}
}

// TimerKind identifies a scheduled navigator callback.
type TimerKind int

const (
	// TimerComplete fires after the estimated scroll duration.
	TimerComplete TimerKind = iota
	// TimerSafety force-resets to Idle shortly after TimerComplete was due.
	TimerSafety
	// TimerSettle ends the grace window of a navigation without scrolling.
	TimerSettle
)

func (k TimerKind) String() string {
	switch k {
	case TimerSafety:
		return "safety"
	case TimerSettle:
		return "settle"
	default:
		return "complete"
	}
}

// Timer is a callback request. Gen is the generation of the navigation that
// scheduled it; timers from superseded navigations are discarded on Fire.
type Timer struct {
	Kind  TimerKind
	Gen   uint64
	After time.Duration
}

// Scheduler delivers a Timer back to Navigator.Fire after t.After has passed.
type Scheduler interface {
	Schedule(t Timer)
}

// Scroller issues a smooth scroll to an absolute offset. A zero duration jumps.
// An in-flight scroll cannot be aborted, only replaced by a newer one.
type Scroller interface {
	ScrollTo(offset float64, d time.Duration)
}

// Request is one navigateTo call.
type Request struct {
	Section      SectionID
	SubPath      string
	ShouldScroll bool
	// History defaults to push; back/forward and initial mount use replace.
	History WriteMode
}

// Outcome reports which path Navigate took.
type Outcome int

const (
	// OutcomeScrolling issued a smooth scroll and entered Navigating.
	OutcomeScrolling Outcome = iota
	// OutcomeAlreadyThere updated state only; the target was within reach.
	OutcomeAlreadyThere
	// OutcomeMissing updated state only; the target section is not mounted.
	OutcomeMissing
	// OutcomeNoScroll updated state and entered Settling for the settle delay.
	OutcomeNoScroll
	// OutcomeRejected means the section is not in the catalog.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeScrolling:
		return "scrolling"
	case OutcomeAlreadyThere:
		return "already-there"
	case OutcomeMissing:
		return "missing"
	case OutcomeNoScroll:
		return "no-scroll"
	default:
		return "rejected"
	}
}

// Navigator owns the single navigation state machine.
type Navigator struct {
	catalog  *Catalog
	tuning   Tuning
	probe    Probe
	scroller Scroller
	sched    Scheduler
	state    *State
	sync     *Synchronizer
	log      *slog.Logger

	phase     NavState
	gen       uint64
	target    SectionID
	targetSub string
}

// NavigatorDeps are the collaborators of a Navigator.
type NavigatorDeps struct {
	Catalog   *Catalog
	Tuning    Tuning
	Probe     Probe
	Scroller  Scroller
	Scheduler Scheduler
	State     *State
	Sync      *Synchronizer
	Logger    *slog.Logger
}

func NewNavigator(d NavigatorDeps) *Navigator {
	log := d.Logger
	if log == nil {
		log = discardLogger()
	}
	return &Navigator{
		catalog:  d.Catalog,
		tuning:   d.Tuning,
		probe:    d.Probe,
		scroller: d.Scroller,
		sched:    d.Scheduler,
		state:    d.State,
		sync:     d.Sync,
		log:      log,
	}
}

func (n *Navigator) State() NavState { return n.phase }

func (n *Navigator) Generation() uint64 { return n.gen }

func (n *Navigator) Target() SectionID { return n.target }

func (n *Navigator) TargetSubPath() string { return n.targetSub }

// NavigateTo is Navigate with smooth scrolling and a history push.
func (n *Navigator) NavigateTo(section SectionID, subPath string) Outcome {
	return n.Navigate(Request{Section: section, SubPath: subPath, ShouldScroll: true})
}

// TargetOffset is the absolute scroll offset that puts section just below the
// header. ok is false when the section is not mounted.
func (n *Navigator) TargetOffset(section SectionID) (float64, bool) {
	if section == Home {
		return 0, true
	}
	r, ok := n.probe.Measure(section)
	if !ok {
		return 0, false
	}
	return math.Max(0, n.probe.ScrollY()+r.Top-n.probe.HeaderOffset()), true
}

// Navigate runs one request. Any navigation still in flight is superseded:
// its timers become stale and will be ignored.
func (n *Navigator) Navigate(req Request) Outcome {
	if !n.catalog.Contains(req.Section) {
		n.log.Warn("scrollspy: navigate to unknown section", "section", req.Section)
		return OutcomeRejected
	}
	n.gen++
	active := ActiveSection{Section: req.Section, SubPath: req.SubPath}

	if !req.ShouldScroll {
		n.commit(active, req.History)
		n.enter(Settling, req)
		n.sched.Schedule(Timer{Kind: TimerSettle, Gen: n.gen, After: n.tuning.SettleDelay})
		return OutcomeNoScroll
	}

	target, ok := n.TargetOffset(req.Section)
	if !ok {
		n.commit(active, req.History)
		n.enter(Idle, req)
		n.log.Debug("scrollspy: target not mounted", "section", req.Section)
		return OutcomeMissing
	}

	distance := math.Abs(target - n.probe.ScrollY())
	if distance < n.tuning.ArriveEpsilon {
		n.commit(active, req.History)
		n.enter(Idle, req)
		return OutcomeAlreadyThere
	}

	d := n.tuning.ScrollDuration(distance)
	n.enter(Navigating, req)
	n.commit(active, req.History)
	n.scroller.ScrollTo(target, d)
	n.sched.Schedule(Timer{Kind: TimerComplete, Gen: n.gen, After: d})
	n.sched.Schedule(Timer{Kind: TimerSafety, Gen: n.gen, After: d + n.tuning.SafetyMargin})
	n.log.Debug("scrollspy: navigating",
		"section", req.Section, "gen", n.gen, "target", target, "distance", distance, "duration", d)
	return OutcomeScrolling
}

// Top supersedes any navigation in flight and shows the empty section at the
// top of the page. A running animation is replaced by a jump to 0.
func (n *Navigator) Top(mode WriteMode) {
	inFlight := n.phase != Idle
	n.gen++
	n.enter(Idle, Request{})
	n.state.Set(ActiveSection{}, SourceLocation)
	n.sync.WriteSection(ActiveSection{}, mode)
	if inFlight || n.probe.ScrollY() != 0 {
		n.scroller.ScrollTo(0, 0)
	}
	n.log.Debug("scrollspy: back to top", "gen", n.gen, "superseded", inFlight)
}

// Arrived is called by scrollers that can observe the end of their animation.
// It moves Navigating to Settling; the pending timers finish the run.
func (n *Navigator) Arrived() {
	if n.phase == Navigating {
		n.phase = Settling
		n.log.Debug("scrollspy: scroll arrived", "gen", n.gen)
	}
}

// Fire handles a scheduled timer and reports whether it changed state.
func (n *Navigator) Fire(t Timer) bool {
	if t.Gen != n.gen {
		n.log.Debug("scrollspy: stale timer ignored", "kind", t.Kind.String(), "gen", t.Gen, "current", n.gen)
		return false
	}
	switch t.Kind {
	case TimerComplete:
		if n.phase == Idle {
			return false
		}
	case TimerSettle:
		if n.phase != Settling {
			return false
		}
	case TimerSafety:
		if n.phase == Idle {
			return false
		}
		n.log.Info("scrollspy: safety reset", "gen", n.gen, "state", n.phase.String())
	}
	n.phase = Idle
	n.target, n.targetSub = None, ""
	return true
}

func (n *Navigator) enter(s NavState, req Request) {
	n.phase = s
	if s == Idle {
		n.target, n.targetSub = None, ""
		return
	}
	n.target, n.targetSub = req.Section, req.SubPath
}

func (n *Navigator) commit(a ActiveSection, mode WriteMode) {
	n.state.Set(a, SourceNavigation)
	n.sync.WriteSection(a, mode)
}
