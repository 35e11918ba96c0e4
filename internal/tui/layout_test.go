package tui

import (
	"testing"
	"time"

	"github.com/jask/folio/internal/scrollspy"
)

func TestBuildLayoutSpans(t *testing.T) {
	l := buildLayout(testDocument(), layoutOptions{
		width:        100,
		viewportRows: 12,
		navRows:      1,
		mode:         scrollspy.NavSticky,
		pageSize:     defaultPageSize,
	})

	want := map[scrollspy.SectionID]span{
		"home":           {0, 5},
		"about":          {5, 6},
		"experience":     {11, 12},
		"articles":       {23, 16},
		"certifications": {39, 8},
		"testimonials":   {47, 8},
		"contact":        {55, 8},
	}
	for id, sp := range want {
		if got := l.spans[id]; got != sp {
			t.Errorf("%s span = %+v, want %+v", id, got, sp)
		}
	}
	if _, ok := l.spans["skills"]; ok {
		t.Errorf("empty section must not be laid out")
	}
	if l.heroRows != 5 {
		t.Errorf("heroRows = %d", l.heroRows)
	}
	if l.lines[0].kind != lineBlank {
		t.Errorf("pinned bar leaves a blank row, got %v", l.lines[0].kind)
	}
	if len(l.lines) != 55+12 {
		t.Errorf("tail padding: %d lines", len(l.lines))
	}
}

func TestBuildLayoutWithoutHero(t *testing.T) {
	doc := testDocument()
	doc.Sections = doc.Sections[1:]
	l := buildLayout(doc, layoutOptions{width: 80, viewportRows: 10, mode: scrollspy.NavStatic})
	if _, ok := l.spans[scrollspy.Home]; ok {
		t.Fatalf("home span without hero content")
	}
	if !layoutHas(l, "folio") {
		t.Fatalf("fallback hero name missing")
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	got, page, pages := paginate(items, 2, 3)
	if page != 2 || pages != 3 || len(got) != 3 || got[0] != 4 {
		t.Fatalf("page 2: %v %d/%d", got, page, pages)
	}
	got, page, _ = paginate(items, 9, 3)
	if page != 3 || len(got) != 1 || got[0] != 7 {
		t.Fatalf("clamped: %v page %d", got, page)
	}
	got, page, pages = paginate(items, 0, 10)
	if page != 1 || pages != 1 || len(got) != 7 {
		t.Fatalf("single page: %v %d/%d", got, page, pages)
	}
	if pageCount(12, 6) != 2 || pageCount(13, 6) != 3 || pageCount(0, 6) != 1 {
		t.Fatalf("pageCount")
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{"page-1": 1, "page-12": 12}
	for in, want := range cases {
		if got, ok := parsePage(in); !ok || got != want {
			t.Errorf("parsePage(%q) = %d, %v", in, got, ok)
		}
	}
	for _, in := range []string{"", "page-", "page-0", "page-x", "intro"} {
		if _, ok := parsePage(in); ok {
			t.Errorf("parsePage(%q) should fail", in)
		}
	}
	if pageSubPath(3) != "page-3" {
		t.Errorf("pageSubPath")
	}
}

func TestNavRowsFor(t *testing.T) {
	labels := []string{"1 home", "2 about", "3 work"}
	// 1 + 6 + 2 + 7 + 2 + 6
	if rows := navRowsFor(labels, 24); len(rows) != 1 {
		t.Fatalf("fits in 24 columns, got %d rows", len(rows))
	}
	rows := navRowsFor(labels, 23)
	if len(rows) != 2 || len(rows[0]) != 2 || rows[1][0] != 2 {
		t.Fatalf("split = %v", rows)
	}
}

func TestSmoothScroller(t *testing.T) {
	var s smoothScroller
	s.setMax(500)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seq := s.start(900, 100*time.Millisecond, t0)
	if ok, done := s.step(seq, t0.Add(50*time.Millisecond)); !ok || done {
		t.Fatalf("midway step ok=%v done=%v", ok, done)
	}
	if s.pos <= 250 || s.pos >= 500 {
		t.Fatalf("ease-out should be past halfway, pos %v", s.pos)
	}
	if ok, done := s.step(seq, t0.Add(100*time.Millisecond)); !ok || !done {
		t.Fatalf("final step ok=%v done=%v", ok, done)
	}
	if s.pos != 500 {
		t.Fatalf("target is clamped to max, pos %v", s.pos)
	}

	seq = s.start(0, time.Second, t0)
	s.by(-16)
	if ok, _ := s.step(seq, t0.Add(time.Second)); ok {
		t.Fatalf("stale animation frame must be dropped")
	}
	if s.pos != 484 || s.animating() {
		t.Fatalf("pos %v animating %v", s.pos, s.animating())
	}
	if s.row(16) != 30 {
		t.Fatalf("row = %d", s.row(16))
	}

	s.setMax(100)
	if s.pos != 100 {
		t.Fatalf("shrinking max clamps pos, got %v", s.pos)
	}
}
