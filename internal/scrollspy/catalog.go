package scrollspy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SectionID names one vertically stacked region of the document.
type SectionID string

// None is the empty section: above every section, in the header/hero zone.
const None SectionID = ""

// Home is the section whose navigation target is always the top of the page.
const Home SectionID = "home"

// ErrUnknownSection is returned for ids that are not part of the catalog.
var ErrUnknownSection = errors.New("unknown section")

// maxResolveDistance bounds fuzzy matches in Resolve.
const maxResolveDistance = 2

// Section is one catalog entry. Sticky sections are unusually tall and need a
// stronger competing score before the scorer switches away from them.
type Section struct {
	ID     SectionID
	Sticky bool
}

// Catalog is the fixed, ordered list of sections.
type Catalog struct {
	sections []Section
	index    map[SectionID]int
}

// DefaultSections is the stock portfolio layout. Only articles is sticky: it is
// the paginated list that used to flicker.
func DefaultSections() []Section {
	return []Section{
		{ID: "home"},
		{ID: "about"},
		{ID: "experience"},
		{ID: "articles", Sticky: true},
		{ID: "skills"},
		{ID: "certifications"},
		{ID: "testimonials"},
		{ID: "contact"},
	}
}

// NewCatalog validates ids (non-empty, unique, no '/' or '#') and keeps order.
func NewCatalog(sections []Section) (*Catalog, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("catalog: no sections")
	}
	c := &Catalog{
		sections: make([]Section, 0, len(sections)),
		index:    make(map[SectionID]int, len(sections)),
	}
	for _, s := range sections {
		id := SectionID(strings.TrimSpace(string(s.ID)))
		if id == None {
			return nil, fmt.Errorf("catalog: empty section id")
		}
		if strings.ContainsAny(string(id), "/#? ") {
			return nil, fmt.Errorf("catalog: invalid section id %q", id)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("catalog: duplicate section id %q", id)
		}
		c.index[id] = len(c.sections)
		c.sections = append(c.sections, Section{ID: id, Sticky: s.Sticky})
	}
	return c, nil
}

// MustCatalog is NewCatalog for static tables; it panics on invalid input.
func MustCatalog(sections []Section) *Catalog {
	c, err := NewCatalog(sections)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

func (c *Catalog) IDs() []SectionID {
	out := make([]SectionID, len(c.sections))
	for i, s := range c.sections {
		out[i] = s.ID
	}
	return out
}

func (c *Catalog) Len() int { return len(c.sections) }

func (c *Catalog) Contains(id SectionID) bool {
	_, ok := c.index[id]
	return ok
}

// Index returns the catalog position of id, or -1.
func (c *Catalog) Index(id SectionID) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

func (c *Catalog) At(i int) (Section, bool) {
	if i < 0 || i >= len(c.sections) {
		return Section{}, false
	}
	return c.sections[i], true
}

func (c *Catalog) IsSticky(id SectionID) bool {
	i, ok := c.index[id]
	return ok && c.sections[i].Sticky
}

// Resolve maps loosely typed input to a section: exact id, then a unique
// prefix, then the single closest id within a small edit distance.
func (c *Catalog) Resolve(name string) (SectionID, error) {
	q := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "#")))
	if q == "" {
		return None, fmt.Errorf("resolve %q: %w", name, ErrUnknownSection)
	}
	if c.Contains(SectionID(q)) {
		return SectionID(q), nil
	}

	var prefixed []SectionID
	for _, s := range c.sections {
		if strings.HasPrefix(string(s.ID), q) {
			prefixed = append(prefixed, s.ID)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}

	best, bestDist, tied := None, maxResolveDistance+1, false
	for _, s := range c.sections {
		d := levenshtein.ComputeDistance(q, string(s.ID))
		switch {
		case d < bestDist:
			best, bestDist, tied = s.ID, d, false
		case d == bestDist:
			tied = true
		}
	}
	if best == None || tied {
		return None, fmt.Errorf("resolve %q: %w", name, ErrUnknownSection)
	}
	return best, nil
}
