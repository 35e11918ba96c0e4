package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/folio/internal/config"
	"github.com/jask/folio/internal/database/repository"
	"github.com/jask/folio/internal/scrollspy"
	"github.com/jask/folio/internal/service"
)

func testConfig() config.Config {
	var ids []string
	for _, s := range scrollspy.DefaultSections() {
		ids = append(ids, string(s.ID))
	}
	return config.Config{
		Layout: config.LayoutConfig{RowPx: 16, NavMode: "sticky", NavMarginPx: 20, DefaultOffsetPx: 80, FrameMs: 16},
		Spy: config.SpyConfig{
			VisibilityWeight: 0.7, CenterWeight: 0.3, Threshold: 0.1, StickyThreshold: 0.3, HeaderZoneRatio: 0.5,
		},
		Nav: config.NavConfig{
			PxPerMs: 2.5, MinDurationMs: 200, MaxDurationMs: 800, SafetyMarginMs: 100, SettleMs: 150, ArrivePx: 10,
		},
		Sections: config.SectionsConfig{Catalog: ids, Sticky: []string{"articles"}},
	}
}

func entries(section string, n int) []repository.Entry {
	out := make([]repository.Entry, n)
	for i := range out {
		out[i] = repository.Entry{
			ID:        fmt.Sprintf("%s-%d", section, i),
			SectionID: section,
			Slug:      fmt.Sprintf("e%d", i+1),
			Heading:   fmt.Sprintf("%s entry %d", section, i+1),
			SortOrder: i,
		}
	}
	return out
}

// testDocument lays out, with one nav row and 16px rows:
// home 0-5, about 5-11, experience 11-23, articles 23-39 (paginated),
// certifications 39-47, testimonials 47-55, contact 55-63. Skills is empty.
func testDocument() service.Document {
	sec := func(id string, n int) service.SectionContent {
		return service.SectionContent{ID: scrollspy.SectionID(id), Title: strings.ToUpper(id[:1]) + id[1:], Entries: entries(id, n)}
	}
	home := service.SectionContent{ID: scrollspy.Home, Title: "Ada", Entries: []repository.Entry{
		{ID: "hero", SectionID: "home", Slug: "hero", Heading: "Ada Example", Subheading: "Engineer"},
	}}
	articles := sec("articles", 12)
	articles.Sticky = true
	return service.Document{Sections: []service.SectionContent{
		home,
		sec("about", 2),
		sec("experience", 5),
		articles,
		sec("skills", 0),
		sec("certifications", 3),
		sec("testimonials", 3),
		sec("contact", 3),
	}}
}

// termHeight leaves a 12-row (192px) viewport.
const termHeight = 14

type scheduled struct {
	due time.Time
	fn  func(time.Time) tea.Msg
}

// sim drives the App with a virtual clock. Ticks become queue entries that
// run in due order instead of sleeping.
type sim struct {
	t     *testing.T
	app   *App
	now   time.Time
	queue []scheduled
	quit  bool
	saved []config.Config
}

func newSim(t *testing.T, initial string) *sim {
	t.Helper()
	loc, err := scrollspy.ParseLocation(initial)
	if err != nil {
		t.Fatalf("parse %q: %v", initial, err)
	}
	s := &sim{t: t, now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	app, err := New(context.Background(), Options{
		Config:  testConfig(),
		Initial: loc,
		SaveConfig: func(c config.Config) error {
			s.saved = append(s.saved, c)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	app.now = func() time.Time { return s.now }
	app.tick = func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		due := s.now.Add(d)
		return func() tea.Msg { return scheduled{due: due, fn: fn} }
	}
	s.app = app
	return s
}

func (s *sim) open(width, height int) {
	s.send(documentMsg{doc: testDocument()})
	s.send(tea.WindowSizeMsg{Width: width, Height: height})
}

func (s *sim) send(msg tea.Msg) {
	_, cmd := s.app.Update(msg)
	s.collect(cmd)
}

func (s *sim) collect(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch m := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range m {
			s.collect(c)
		}
	case scheduled:
		s.queue = append(s.queue, m)
	case tea.QuitMsg:
		s.quit = true
	default:
		s.send(m)
	}
}

// run advances the clock by d, delivering every tick that falls due.
func (s *sim) run(d time.Duration) {
	until := s.now.Add(d)
	for {
		next := -1
		for i, q := range s.queue {
			if q.due.After(until) {
				continue
			}
			if next < 0 || q.due.Before(s.queue[next].due) {
				next = i
			}
		}
		if next < 0 {
			break
		}
		q := s.queue[next]
		s.queue = append(s.queue[:next], s.queue[next+1:]...)
		s.now = q.due
		s.send(q.fn(q.due))
	}
	s.now = until
}

func (s *sim) settle() { s.run(5 * time.Second) }

func (s *sim) key(k string) {
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	s.send(msg)
}

func (s *sim) status() scrollspy.Status { return s.app.engine.Status() }

func (s *sim) expect(section scrollspy.SectionID, location string, state scrollspy.NavState) {
	s.t.Helper()
	st := s.status()
	if st.CurrentSection != section {
		s.t.Fatalf("section = %q, want %q", st.CurrentSection, section)
	}
	if got := st.Location.String(); got != location {
		s.t.Fatalf("location = %q, want %q", got, location)
	}
	if st.State != state {
		s.t.Fatalf("state = %s, want %s", st.State, state)
	}
}

func TestMountRestoresLocationAndScrolls(t *testing.T) {
	s := newSim(t, "#experience")
	s.open(100, termHeight)
	s.expect("experience", "#experience", scrollspy.Navigating)
	if s.app.scroll.pos != 0 {
		t.Fatalf("scroll should animate, got jump to %v", s.app.scroll.pos)
	}

	s.run(100 * time.Millisecond)
	if p := s.app.scroll.pos; p <= 0 || p >= 140 {
		t.Fatalf("mid-animation pos = %v, want between 0 and 140", p)
	}

	s.settle()
	s.expect("experience", "#experience", scrollspy.Idle)
	if s.app.scroll.pos != 140 {
		t.Fatalf("pos = %v, want 140 (row 11 minus 36px header offset)", s.app.scroll.pos)
	}
	if s.app.marker != "section-experience" {
		t.Fatalf("marker = %q", s.app.marker)
	}
	if !s.app.showTop {
		t.Fatalf("back-to-top hint should show inside a section")
	}
}

func TestMountAtRootStaysInHeader(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	s.settle()
	s.expect(scrollspy.None, "/", scrollspy.Idle)
	if s.app.marker != "section-none" || s.app.showTop {
		t.Fatalf("marker %q showTop %v", s.app.marker, s.app.showTop)
	}
}

func TestNumberKeysPushHistoryAndBracketsPop(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	s.settle()

	s.key("2")
	s.expect("about", "#about", scrollspy.Navigating)
	s.settle()
	s.key("3")
	s.settle()
	s.expect("experience", "#experience", scrollspy.Idle)

	s.key("[")
	s.expect("about", "#about", scrollspy.Navigating)
	s.settle()
	if s.app.scroll.pos != 44 {
		t.Fatalf("pos = %v, want 44", s.app.scroll.pos)
	}

	s.key("[")
	s.expect(scrollspy.None, "/", scrollspy.Idle)
	if s.app.scroll.pos != 0 {
		t.Fatalf("root location must jump to the top, pos = %v", s.app.scroll.pos)
	}
	s.key("[")
	if s.app.status != "no earlier location" {
		t.Fatalf("status = %q", s.app.status)
	}

	s.key("]")
	s.settle()
	s.expect("about", "#about", scrollspy.Idle)
}

func TestTabCyclesFromTarget(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	s.settle()

	s.key("tab")
	s.expect("home", "#home", scrollspy.Idle)
	s.key("tab")
	s.key("tab")
	if st := s.status(); st.TargetSection != "experience" {
		t.Fatalf("second tab should count from the in-flight target, got %q", st.TargetSection)
	}
	s.key("shift+tab")
	if st := s.status(); st.TargetSection != "about" {
		t.Fatalf("target = %q, want about", st.TargetSection)
	}
}

func TestPassiveScrollUpdatesLocation(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	s.settle()

	for i := 0; i < 10; i++ {
		s.key("j")
	}
	if len(s.queue) != 1 {
		t.Fatalf("one frame per burst, queued %d", len(s.queue))
	}
	s.settle()
	s.expect("experience", "#experience", scrollspy.Idle)
	if n := s.app.engine.Status().Location; n.Section != "experience" {
		t.Fatalf("location %v", n)
	}

	s.send(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	s.send(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	s.send(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	s.settle()
	s.expect(scrollspy.None, "/", scrollspy.Idle)
}

func TestUserScrollInterruptsAnimation(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	s.settle()

	s.key("8")
	s.expect("contact", "#contact", scrollspy.Navigating)
	s.key("j")
	s.settle()
	if s.app.scroll.pos != 16 {
		t.Fatalf("interrupted animation must not resume, pos = %v", s.app.scroll.pos)
	}
	// Still in the header zone: once the timers end the navigation the
	// dropped frame is evaluated without another scroll.
	s.expect(scrollspy.None, "/", scrollspy.Idle)
	if s.app.marker != "section-none" || s.app.showTop {
		t.Fatalf("marker %q showTop %v", s.app.marker, s.app.showTop)
	}

	s.key("j")
	s.settle()
	s.expect(scrollspy.None, "/", scrollspy.Idle)
}

func TestBackToRootDuringAnimation(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	s.settle()

	s.key("3")
	s.expect("experience", "#experience", scrollspy.Navigating)
	s.key("[")
	s.expect(scrollspy.None, "/", scrollspy.Idle)
	if s.app.scroll.animating() || s.app.scroll.pos != 0 {
		t.Fatalf("animation must be replaced by a jump to the top, pos = %v", s.app.scroll.pos)
	}

	s.settle()
	s.expect(scrollspy.None, "/", scrollspy.Idle)
	if s.app.scroll.pos != 0 {
		t.Fatalf("stale animation frames moved the page to %v", s.app.scroll.pos)
	}
}

func TestUnmountedSectionCommitsWithoutScroll(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	s.settle()

	s.key("5")
	s.expect("skills", "#skills", scrollspy.Idle)
	if s.app.scroll.pos != 0 || len(s.queue) != 0 {
		t.Fatalf("no scroll expected: pos %v queued %d", s.app.scroll.pos, len(s.queue))
	}
}

func TestPaginationChangesLocationWithoutScrolling(t *testing.T) {
	s := newSim(t, "#articles")
	s.open(100, termHeight)
	s.settle()
	pos := s.app.scroll.pos
	if pos != 332 {
		t.Fatalf("pos = %v, want 332", pos)
	}

	s.key("n")
	s.expect("articles", "#articles/page-2", scrollspy.Settling)
	if s.app.page("articles") != 2 {
		t.Fatalf("page = %d", s.app.page("articles"))
	}
	if !layoutHas(s.app.layout, "page 2 of 2") || !layoutHas(s.app.layout, "articles entry 7") {
		t.Fatalf("layout should show the second page")
	}
	s.settle()
	s.expect("articles", "#articles/page-2", scrollspy.Idle)
	if s.app.scroll.pos != pos {
		t.Fatalf("paging must not scroll: %v", s.app.scroll.pos)
	}

	s.key("n")
	if s.app.page("articles") != 2 {
		t.Fatalf("last page is sticky")
	}
	s.key("p")
	s.settle()
	s.expect("articles", "#articles/page-1", scrollspy.Idle)
}

func TestMountOnSecondPage(t *testing.T) {
	s := newSim(t, "#articles/page-2")
	s.open(100, termHeight)
	if !layoutHas(s.app.layout, "page 2 of 2") {
		t.Fatalf("initial sub-path should select the page")
	}
	s.settle()
	s.expect("articles", "#articles/page-2", scrollspy.Idle)
}

func TestJumpPrompt(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	s.settle()

	s.key("g")
	if s.app.mode != modeJump {
		t.Fatalf("mode = %s", s.app.mode)
	}
	s.key("testim")
	s.key("enter")
	if s.app.mode != modeBrowse {
		t.Fatalf("prompt should close")
	}
	s.settle()
	s.expect("testimonials", "#testimonials", scrollspy.Idle)

	s.key("g")
	s.key("zzzz")
	s.key("enter")
	if !s.app.statusErr {
		t.Fatalf("unknown section should report an error, status %q", s.app.status)
	}

	s.key("g")
	s.key("q")
	s.key("esc")
	if s.quit || s.app.mode != modeBrowse {
		t.Fatalf("q inside the prompt is text, esc closes")
	}
}

func TestNavModeToggle(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	probe := appProbe{s.app}
	if got := probe.HeaderOffset(); got != 36 {
		t.Fatalf("sticky offset = %v, want 36", got)
	}

	s.key("o")
	if s.app.navMode != scrollspy.NavFixed || probe.HeaderOffset() != 36 {
		t.Fatalf("fixed: mode %s offset %v", s.app.navMode, probe.HeaderOffset())
	}
	s.key("o")
	if s.app.navMode != scrollspy.NavStatic || probe.HeaderOffset() != 80 {
		t.Fatalf("static: mode %s offset %v", s.app.navMode, probe.HeaderOffset())
	}
	if s.app.layout.lines[0].kind != lineNav {
		t.Fatalf("static nav bar belongs to the document")
	}
	if len(s.saved) != 2 || s.saved[1].Layout.NavMode != "static" {
		t.Fatalf("saved = %+v", s.saved)
	}
}

func TestNarrowTerminalWrapsNavBar(t *testing.T) {
	s := newSim(t, "")
	s.open(60, termHeight)
	if s.app.navRows != 2 {
		t.Fatalf("navRows = %d", s.app.navRows)
	}
	if got := (appProbe{s.app}).HeaderOffset(); got != 52 {
		t.Fatalf("offset = %v, want 52", got)
	}

	lines := strings.Split(s.app.View(), "\n")
	if !strings.Contains(lines[0], "1 home") || !strings.Contains(lines[1], "5 skills") {
		t.Fatalf("nav rows:\n%s\n%s", lines[0], lines[1])
	}

	s.send(tea.WindowSizeMsg{Width: 120, Height: termHeight})
	if s.app.navRows != 1 {
		t.Fatalf("widening should unwrap the bar")
	}
}

func TestViewShowsStatus(t *testing.T) {
	s := newSim(t, "#contact")
	s.open(100, termHeight)
	view := s.app.View()
	if !strings.Contains(view, "navigating -> contact") {
		t.Fatalf("status line missing navigation state:\n%s", view)
	}
	s.settle()
	view = s.app.View()
	for _, want := range []string{"#contact", "section-contact", "t: back to top", "Contact"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if got := len(strings.Split(view, "\n")); got != termHeight {
		t.Fatalf("view has %d lines, want %d", got, termHeight)
	}
}

func TestStatusShowsTargetSubPath(t *testing.T) {
	s := newSim(t, "#articles/page-2")
	s.open(100, termHeight)
	if view := s.app.View(); !strings.Contains(view, "navigating -> articles/page-2") {
		t.Fatalf("status line missing target sub-path:\n%s", view)
	}
	s.settle()
	if view := s.app.View(); strings.Contains(view, "->") {
		t.Fatalf("idle status still shows a target:\n%s", view)
	}
}

func TestQuit(t *testing.T) {
	s := newSim(t, "")
	s.open(100, termHeight)
	s.key("q")
	if !s.quit {
		t.Fatalf("q should quit")
	}
}

func layoutHas(l layout, text string) bool {
	for _, line := range l.lines {
		if strings.Contains(line.text, text) {
			return true
		}
	}
	return false
}
