package scrollspy

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// ErrBadLocation is returned for locations that cannot be parsed.
var ErrBadLocation = errors.New("bad location")

// Location is the address bar value: "#<section>[/<subPath>]", or the root
// "/" when no section is selected.
type Location struct {
	Section SectionID
	SubPath string
}

func (l Location) IsRoot() bool { return l.Section == None }

func (l Location) Active() ActiveSection {
	return ActiveSection{Section: l.Section, SubPath: l.SubPath}
}

func LocationOf(a ActiveSection) Location {
	return Location{Section: a.Section, SubPath: a.SubPath}
}

func (l Location) String() string {
	if l.IsRoot() {
		return "/"
	}
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(url.PathEscape(string(l.Section)))
	if l.SubPath != "" {
		for _, seg := range strings.Split(l.SubPath, "/") {
			b.WriteByte('/')
			b.WriteString(url.PathEscape(seg))
		}
	}
	return b.String()
}

// ParseLocation accepts "#id[/sub]", "/id[/sub]", "/#id[/sub]" and absolute
// URLs; the hash wins over the path when both are present. "", "/" and "#"
// are the root.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	var path, fragment string
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Location{}, fmt.Errorf("parse location %q: %w", raw, ErrBadLocation)
		}
		path, fragment = u.EscapedPath(), u.EscapedFragment()
	} else if i := strings.IndexByte(raw, '#'); i >= 0 {
		path, fragment = raw[:i], raw[i+1:]
	} else {
		path = raw
	}

	target := strings.Trim(fragment, "/")
	if target == "" {
		target = strings.Trim(path, "/")
	}
	if target == "" {
		return Location{}, nil
	}

	parts := strings.Split(target, "/")
	for i, p := range parts {
		dec, err := url.PathUnescape(p)
		if err != nil {
			return Location{}, fmt.Errorf("parse location %q: %w", raw, ErrBadLocation)
		}
		parts[i] = dec
	}
	return Location{Section: SectionID(parts[0]), SubPath: strings.Join(parts[1:], "/")}, nil
}

// History is the browser-style history stack.
type History interface {
	Current() Location
	Push(Location)
	Replace(Location)
}

// MemoryHistory is an in-process History with back/forward support.
type MemoryHistory struct {
	entries []Location
	index   int
}

func NewMemoryHistory(initial Location) *MemoryHistory {
	return &MemoryHistory{entries: []Location{initial}}
}

func (h *MemoryHistory) Current() Location { return h.entries[h.index] }

// Push truncates any forward entries, like a browser does.
func (h *MemoryHistory) Push(l Location) {
	h.entries = append(h.entries[:h.index+1], l)
	h.index++
}

func (h *MemoryHistory) Replace(l Location) { h.entries[h.index] = l }

func (h *MemoryHistory) Back() (Location, bool) {
	if h.index == 0 {
		return Location{}, false
	}
	h.index--
	return h.entries[h.index], true
}

func (h *MemoryHistory) Forward() (Location, bool) {
	if h.index+1 >= len(h.entries) {
		return Location{}, false
	}
	h.index++
	return h.entries[h.index], true
}

func (h *MemoryHistory) Len() int { return len(h.entries) }

// WriteMode selects the history semantics of a location write.
type WriteMode int

const (
	// WritePush adds a back-button stop; used for explicit navigation.
	WritePush WriteMode = iota
	// WriteReplace rewrites the current entry; used for ambient scrolling.
	WriteReplace
)

func (m WriteMode) String() string {
	if m == WriteReplace {
		return "replace"
	}
	return "push"
}

// Synchronizer bridges the active section and the history stack.
type Synchronizer struct {
	history History
	catalog *Catalog
	log     *slog.Logger
}

func NewSynchronizer(history History, catalog *Catalog, log *slog.Logger) *Synchronizer {
	if log == nil {
		log = discardLogger()
	}
	return &Synchronizer{history: history, catalog: catalog, log: log}
}

// WriteSection reflects a in the history. A push of the location that is
// already current is turned into a replace so repeated clicks add no stops.
func (s *Synchronizer) WriteSection(a ActiveSection, mode WriteMode) {
	loc := LocationOf(a)
	if mode == WritePush && s.history.Current() == loc {
		mode = WriteReplace
	}
	if mode == WritePush {
		s.history.Push(loc)
	} else {
		s.history.Replace(loc)
	}
	s.log.Debug("scrollspy: location written", "location", loc.String(), "mode", mode.String())
}

// ReadSection returns the location currently in the history. Sections that
// are not in the catalog collapse to the root.
func (s *Synchronizer) ReadSection() Location {
	loc := s.history.Current()
	if loc.IsRoot() || s.catalog.Contains(loc.Section) {
		return loc
	}
	s.log.Warn("scrollspy: location names unknown section", "location", loc.String())
	return Location{}
}
