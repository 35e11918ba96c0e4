package tui

import (
	"math"
	"time"
)

type animation struct {
	seq   uint64
	from  float64
	to    float64
	start time.Time
	d     time.Duration
}

// smoothScroller owns the scroll offset in virtual pixels. Animations are
// advanced by frame messages carrying their sequence number; a message from
// an interrupted animation no longer matches and is dropped.
type smoothScroller struct {
	pos  float64
	max  float64
	seq  uint64
	anim *animation
}

func (s *smoothScroller) clamp(v float64) float64 {
	if v > s.max {
		v = s.max
	}
	if v < 0 {
		v = 0
	}
	return v
}

func (s *smoothScroller) setMax(limit float64) {
	if limit < 0 {
		limit = 0
	}
	s.max = limit
	s.pos = s.clamp(s.pos)
	if s.anim != nil {
		s.anim.to = s.clamp(s.anim.to)
	}
}

func (s *smoothScroller) animating() bool { return s.anim != nil }

// stop abandons any running animation and reports whether there was one.
func (s *smoothScroller) stop() bool {
	if s.anim == nil {
		return false
	}
	s.anim = nil
	s.seq++
	return true
}

func (s *smoothScroller) jump(to float64) {
	s.stop()
	s.pos = s.clamp(to)
}

func (s *smoothScroller) by(delta float64) {
	s.stop()
	s.pos = s.clamp(s.pos + delta)
}

func (s *smoothScroller) start(to float64, d time.Duration, now time.Time) uint64 {
	s.seq++
	s.anim = &animation{seq: s.seq, from: s.pos, to: s.clamp(to), start: now, d: d}
	return s.seq
}

// step moves the offset to where animation seq should be at now. ok is false
// for a stale seq; done is true once the animation reached its target.
func (s *smoothScroller) step(seq uint64, now time.Time) (ok, done bool) {
	if s.anim == nil || s.anim.seq != seq {
		return false, false
	}
	a := s.anim
	p := 1.0
	if a.d > 0 {
		p = float64(now.Sub(a.start)) / float64(a.d)
	}
	if p >= 1 {
		s.pos = a.to
		s.anim = nil
		return true, true
	}
	if p < 0 {
		p = 0
	}
	s.pos = a.from + (a.to-a.from)*easeOutCubic(p)
	return true, false
}

func easeOutCubic(p float64) float64 { return 1 - math.Pow(1-p, 3) }

// row is the first document row visible at the current offset.
func (s *smoothScroller) row(rowPx float64) int {
	return int(math.Round(s.pos / rowPx))
}
