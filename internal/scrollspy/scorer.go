package scrollspy

import (
	"log/slog"
	"math"
)

// Candidate is one scored section for a single evaluation; it is never kept.
type Candidate struct {
	Section         SectionID
	VisibilityRatio float64
	CenterDistance  float64
	Score           float64
}

// Score rates a rect against the viewport. eligible is false when the section
// is entirely hidden under the header or below the viewport.
func (t Tuning) Score(id SectionID, r Rect, headerOffset, viewportHeight float64) (Candidate, bool) {
	if !(r.Bottom > headerOffset && r.Top < viewportHeight) {
		return Candidate{Section: id}, false
	}
	visibleTop := math.Max(r.Top, headerOffset)
	visibleBottom := math.Min(r.Bottom, viewportHeight)
	visibleHeight := math.Max(0, visibleBottom-visibleTop)

	ratio := 0.0
	if h := r.Height(); h > 0 {
		ratio = visibleHeight / h
	}
	centerDistance := math.Abs((r.Top+r.Bottom)/2 - viewportHeight/2)
	centerScore := 0.0
	if viewportHeight > 0 {
		centerScore = 1 / (1 + centerDistance/viewportHeight)
	}
	return Candidate{
		Section:         id,
		VisibilityRatio: ratio,
		CenterDistance:  centerDistance,
		Score:           t.VisibilityWeight*ratio + t.CenterWeight*centerScore,
	}, true
}

// Scorer decides the active section from geometry alone.
type Scorer struct {
	catalog *Catalog
	tuning  Tuning
	log     *slog.Logger
}

func NewScorer(catalog *Catalog, tuning Tuning, log *slog.Logger) *Scorer {
	if log == nil {
		log = discardLogger()
	}
	return &Scorer{catalog: catalog, tuning: tuning, log: log}
}

// InHeaderZone reports the hard override: near the top the active section is
// always empty, whatever the scores say.
func (s *Scorer) InHeaderZone(p Probe) bool {
	return p.ScrollY() < p.HeaderHeight()*s.tuning.HeaderZoneRatio
}

// Candidates scores every mounted, eligible section in catalog order.
func (s *Scorer) Candidates(p Probe) []Candidate {
	headerOffset := p.HeaderOffset()
	viewport := p.ViewportHeight()
	out := make([]Candidate, 0, s.catalog.Len())
	for _, sec := range s.catalog.sections {
		r, ok := p.Measure(sec.ID)
		if !ok {
			continue
		}
		if c, eligible := s.tuning.Score(sec.ID, r, headerOffset, viewport); eligible {
			out = append(out, c)
		}
	}
	return out
}

// Best returns the highest scoring candidate; the first one wins ties.
func Best(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, true
}

// thresholdFor returns the score a challenger must beat to replace current.
func (s *Scorer) thresholdFor(current SectionID) float64 {
	if s.catalog.IsSticky(current) {
		return s.tuning.StickyThreshold
	}
	return s.tuning.Threshold
}

// Evaluate returns the section that should be active and whether it differs
// from current. With no eligible candidate the current section is kept.
func (s *Scorer) Evaluate(p Probe, current ActiveSection) (ActiveSection, bool) {
	if s.InHeaderZone(p) {
		if current.IsEmpty() {
			return current, false
		}
		return ActiveSection{}, true
	}

	best, ok := Best(s.Candidates(p))
	if !ok {
		return current, false
	}
	if best.Section == current.Section {
		return current, false
	}
	if threshold := s.thresholdFor(current.Section); best.Score <= threshold {
		s.log.Debug("scrollspy: challenger below threshold",
			"current", current.Section, "best", best.Section, "score", best.Score, "threshold", threshold)
		return current, false
	}
	return ActiveSection{Section: best.Section}, true
}
