package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/folio/internal/scrollspy"
	"github.com/jask/folio/internal/service"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineNav
	lineHeroName
	lineHeroTagline
	lineTitle
	lineHeading
	lineSubheading
	lineBody
	linePager
	lineEnd
)

type docLine struct {
	kind    lineKind
	text    string
	section scrollspy.SectionID
	nav     int // nav bar row, for lineNav
}

// span is the row range a section occupies in the document.
type span struct{ start, rows int }

func (s span) end() int { return s.start + s.rows }

// layout is the document flattened to terminal rows. Styling happens at
// render time so the active-section accent never forces a relayout.
type layout struct {
	lines    []docLine
	spans    map[scrollspy.SectionID]span
	heroRows int
}

type layoutOptions struct {
	width        int
	viewportRows int
	navRows      int
	mode         scrollspy.NavMode
	pages        map[scrollspy.SectionID]int
	pageSize     int
}

const defaultPageSize = 6

func (l *layout) add(d docLine) { l.lines = append(l.lines, d) }

// buildLayout places the hero first and then every mounted section in
// document order. Sections without entries are left out entirely.
func buildLayout(doc service.Document, opts layoutOptions) layout {
	l := layout{spans: map[scrollspy.SectionID]span{}}
	textWidth := opts.width - 4
	if textWidth < 10 {
		textWidth = 10
	}

	// A pinned bar floats over the first rows; a static one scrolls away
	// with the document.
	for i := 0; i < opts.navRows; i++ {
		if opts.mode.Pinned() {
			l.add(docLine{kind: lineBlank})
		} else {
			l.add(docLine{kind: lineNav, nav: i})
		}
	}

	hero, hasHero := doc.Section(scrollspy.Home)
	name, tagline, body := heroText(hero)
	l.add(docLine{kind: lineBlank})
	l.add(docLine{kind: lineHeroName, text: name, section: scrollspy.Home})
	if tagline != "" {
		l.add(docLine{kind: lineHeroTagline, text: tagline, section: scrollspy.Home})
	}
	for _, w := range wrap(body, textWidth) {
		l.add(docLine{kind: lineBody, text: w, section: scrollspy.Home})
	}
	l.add(docLine{kind: lineBlank})
	l.heroRows = len(l.lines)
	if hasHero {
		l.spans[scrollspy.Home] = span{start: 0, rows: l.heroRows}
	}

	lastStart := -1
	for _, sec := range doc.Sections {
		if sec.ID == scrollspy.Home || !sec.Mounted() {
			continue
		}
		start := len(l.lines)
		l.add(docLine{kind: lineTitle, text: sec.Title, section: sec.ID})
		l.add(docLine{kind: lineBlank})

		entries, page, pages := paginate(sec.Entries, opts.pages[sec.ID], opts.pageSize)
		for _, e := range entries {
			l.add(docLine{kind: lineHeading, text: e.Heading, section: sec.ID})
			if e.Subheading != "" {
				l.add(docLine{kind: lineSubheading, text: e.Subheading, section: sec.ID})
			}
			for _, w := range wrap(e.Body, textWidth) {
				l.add(docLine{kind: lineBody, text: w, section: sec.ID})
			}
			l.add(docLine{kind: lineBlank})
		}
		if pages > 1 {
			l.add(docLine{kind: linePager, text: fmt.Sprintf("page %d of %d", page, pages), section: sec.ID})
			l.add(docLine{kind: lineBlank})
		}
		l.spans[sec.ID] = span{start: start, rows: len(l.lines) - start}
		lastStart = start
	}

	// Pad the tail so the last section can still be scrolled under the bar.
	l.add(docLine{kind: lineEnd, text: "~"})
	for lastStart >= 0 && len(l.lines) < lastStart+opts.viewportRows {
		l.add(docLine{kind: lineBlank})
	}
	return l
}

func heroText(hero service.SectionContent) (name, tagline, body string) {
	if len(hero.Entries) == 0 {
		if hero.Title != "" {
			return hero.Title, "", ""
		}
		return "folio", "", ""
	}
	e := hero.Entries[0]
	return e.Heading, e.Subheading, e.Body
}

func wrap(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	out := strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
	for i := range out {
		out[i] = strings.TrimRight(out[i], " ")
	}
	return out
}

// paginate returns the entries of page (1-based, clamped) and the page count.
func paginate[T any](items []T, page, size int) ([]T, int, int) {
	if size <= 0 || len(items) <= size {
		return items, 1, 1
	}
	pages := (len(items) + size - 1) / size
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	end := page * size
	if end > len(items) {
		end = len(items)
	}
	return items[(page-1)*size : end], page, pages
}

func pageCount(n, size int) int {
	if size <= 0 || n <= size {
		return 1
	}
	return (n + size - 1) / size
}

// Sub-paths of paginated sections look like "page-2".
func pageSubPath(page int) string { return "page-" + strconv.Itoa(page) }

func parsePage(subPath string) (int, bool) {
	rest, ok := strings.CutPrefix(subPath, "page-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// navRowsFor splits the nav labels over one row, or two when they do not
// fit the terminal width.
func navRowsFor(labels []string, width int) [][]int {
	total := 1
	for i, l := range labels {
		total += lipgloss.Width(l)
		if i > 0 {
			total += 2
		}
	}
	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	if total <= width || len(labels) < 2 {
		return [][]int{idx}
	}
	half := (len(labels) + 1) / 2
	return [][]int{idx[:half], idx[half:]}
}
