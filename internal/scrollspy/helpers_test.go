package scrollspy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeProbe stores absolute document positions; Measure converts them to
// viewport-relative rects using the current scroll offset.
type fakeProbe struct {
	doc          map[SectionID]Rect
	scrollY      float64
	viewport     float64
	headerOffset float64
	headerHeight float64
	reads        int
}

func newFakeProbe() *fakeProbe {
	return &fakeProbe{
		doc:          map[SectionID]Rect{},
		viewport:     800,
		headerOffset: 80,
		headerHeight: 100,
	}
}

// place positions id so that at the current scroll offset its rect is top..bottom.
func (p *fakeProbe) place(id SectionID, top, bottom float64) {
	p.doc[id] = Rect{Top: top + p.scrollY, Bottom: bottom + p.scrollY}
}

func (p *fakeProbe) Measure(id SectionID) (Rect, bool) {
	p.reads++
	r, ok := p.doc[id]
	if !ok {
		return Rect{}, false
	}
	return Rect{Top: r.Top - p.scrollY, Bottom: r.Bottom - p.scrollY}, true
}

func (p *fakeProbe) HeaderOffset() float64   { return p.headerOffset }
func (p *fakeProbe) HeaderHeight() float64   { return p.headerHeight }
func (p *fakeProbe) ScrollY() float64        { return p.scrollY }
func (p *fakeProbe) ViewportHeight() float64 { return p.viewport }

type scrollCall struct {
	offset float64
	d      time.Duration
}

type fakeScroller struct {
	probe *fakeProbe
	calls []scrollCall
	// jump applies the scroll immediately, as if the animation finished.
	jump bool
}

func (s *fakeScroller) ScrollTo(offset float64, d time.Duration) {
	s.calls = append(s.calls, scrollCall{offset: offset, d: d})
	if s.jump || d == 0 {
		s.probe.scrollY = offset
	}
}

type fakeScheduler struct {
	timers []Timer
}

func (s *fakeScheduler) Schedule(t Timer) { s.timers = append(s.timers, t) }

func (s *fakeScheduler) ofKind(k TimerKind) []Timer {
	var out []Timer
	for _, t := range s.timers {
		if t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}

// portfolioDoc lays out the default catalog as a tall page, absolute offsets.
func portfolioDoc(p *fakeProbe) {
	p.doc = map[SectionID]Rect{
		"home":           {Top: 0, Bottom: 100},
		"about":          {Top: 100, Bottom: 700},
		"experience":     {Top: 700, Bottom: 1900},
		"articles":       {Top: 1900, Bottom: 4900},
		"skills":         {Top: 4900, Bottom: 5500},
		"certifications": {Top: 5500, Bottom: 6000},
		"testimonials":   {Top: 6000, Bottom: 6800},
		"contact":        {Top: 6800, Bottom: 7400},
	}
}

type harness struct {
	probe    *fakeProbe
	scroller *fakeScroller
	sched    *fakeScheduler
	history  *MemoryHistory
	engine   *Engine
}

func newHarness(t *testing.T, initial Location) *harness {
	t.Helper()
	p := newFakeProbe()
	portfolioDoc(p)
	h := &harness{
		probe:    p,
		scroller: &fakeScroller{probe: p},
		sched:    &fakeScheduler{},
		history:  NewMemoryHistory(initial),
	}
	e, err := New(Options{
		Catalog:   MustCatalog(DefaultSections()),
		Tuning:    DefaultTuning(),
		Probe:     h.probe,
		Scroller:  h.scroller,
		Scheduler: h.sched,
		History:   h.history,
	})
	require.NoError(t, err)
	h.engine = e
	return h
}
