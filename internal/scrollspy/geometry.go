package scrollspy

import "fmt"

// Rect is viewport-relative vertical geometry of a section's root element.
type Rect struct {
	Top    float64
	Bottom float64
}

func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Probe reads layout on demand. Implementations must not cache: the header can
// collapse or expand between renders.
type Probe interface {
	// Measure returns false when the section is not currently mounted.
	Measure(id SectionID) (Rect, bool)
	// HeaderOffset is the height reserved at the top of the viewport.
	HeaderOffset() float64
	// HeaderHeight is the height of the hero/header zone above all sections.
	HeaderHeight() float64
	ScrollY() float64
	ViewportHeight() float64
}

// NavMode is the position mode of the navigation bar.
type NavMode string

const (
	NavSticky NavMode = "sticky"
	NavFixed  NavMode = "fixed"
	NavStatic NavMode = "static"
)

func ParseNavMode(s string) (NavMode, error) {
	switch m := NavMode(s); m {
	case NavSticky, NavFixed, NavStatic:
		return m, nil
	case "":
		return NavSticky, nil
	}
	return "", fmt.Errorf("nav mode %q: want sticky, fixed or static", s)
}

// Pinned reports whether the bar stays over the viewport while scrolling.
func (m NavMode) Pinned() bool { return m == NavSticky || m == NavFixed }

// HeaderOffsetFor applies the reserved-height rule: a pinned bar reserves its
// rendered height plus margin, anything else gets the fallback.
func HeaderOffsetFor(mode NavMode, navHeight, margin, fallback float64) float64 {
	if mode.Pinned() {
		return navHeight + margin
	}
	return fallback
}
