package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/folio/internal/scrollspy"
)

// The engine talks to the App through these adapters. Geometry is read from
// the current layout on every call; nothing is cached between renders.

type appProbe struct{ a *App }

func (p appProbe) Measure(id scrollspy.SectionID) (scrollspy.Rect, bool) {
	sp, ok := p.a.layout.spans[id]
	if !ok {
		return scrollspy.Rect{}, false
	}
	px := p.a.rowPx()
	return scrollspy.Rect{
		Top:    float64(sp.start)*px - p.a.scroll.pos,
		Bottom: float64(sp.end())*px - p.a.scroll.pos,
	}, true
}

func (p appProbe) HeaderOffset() float64 {
	cfg := p.a.cfg.Layout
	return scrollspy.HeaderOffsetFor(p.a.navMode, float64(p.a.navRows)*p.a.rowPx(), cfg.NavMarginPx, cfg.DefaultOffsetPx)
}

func (p appProbe) HeaderHeight() float64   { return float64(p.a.layout.heroRows) * p.a.rowPx() }
func (p appProbe) ScrollY() float64        { return p.a.scroll.pos }
func (p appProbe) ViewportHeight() float64 { return float64(p.a.viewportRows()) * p.a.rowPx() }

type appScroller struct{ a *App }

func (s appScroller) ScrollTo(offset float64, d time.Duration) {
	a := s.a
	if d <= 0 {
		a.scroll.jump(offset)
		a.scrolled()
		return
	}
	seq := a.scroll.start(offset, d, a.now())
	a.enqueue(a.animTick(seq))
}

type appScheduler struct{ a *App }

func (s appScheduler) Schedule(t scrollspy.Timer) {
	s.a.enqueue(s.a.tick(t.After, func(time.Time) tea.Msg { return timerMsg{t} }))
}
