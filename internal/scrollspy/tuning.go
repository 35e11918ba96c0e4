package scrollspy

import (
	"fmt"
	"math"
	"time"
)

// Tuning holds the empirically chosen constants of the engine. Distances are in
// pixels, durations in wall-clock time.
type Tuning struct {
	// score = VisibilityWeight*visibilityRatio + CenterWeight*centerScore
	VisibilityWeight float64
	CenterWeight     float64

	// Threshold is the score a best match must exceed to take over from a
	// regular section; StickyThreshold applies when the active section is sticky.
	Threshold       float64
	StickyThreshold float64

	// HeaderZoneRatio forces the empty section while scrollY < headerHeight*ratio.
	HeaderZoneRatio float64

	PxPerMs      float64
	MinDuration  time.Duration
	MaxDuration  time.Duration
	SafetyMargin time.Duration
	SettleDelay  time.Duration

	// ArriveEpsilon is the distance under which a navigation is already there.
	ArriveEpsilon float64
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		VisibilityWeight: 0.7,
		CenterWeight:     0.3,
		Threshold:        0.1,
		StickyThreshold:  0.3,
		HeaderZoneRatio:  0.5,
		PxPerMs:          2.5,
		MinDuration:      200 * time.Millisecond,
		MaxDuration:      800 * time.Millisecond,
		SafetyMargin:     100 * time.Millisecond,
		SettleDelay:      150 * time.Millisecond,
		ArriveEpsilon:    10,
	}
}

// Validate reports the first inconsistent field.
func (t Tuning) Validate() error {
	switch {
	case t.VisibilityWeight < 0 || t.CenterWeight < 0:
		return fmt.Errorf("tuning: weights must be non-negative")
	case t.PxPerMs <= 0:
		return fmt.Errorf("tuning: px per ms must be positive, got %v", t.PxPerMs)
	case t.MinDuration <= 0 || t.MinDuration > t.MaxDuration:
		return fmt.Errorf("tuning: duration bounds %v..%v are invalid", t.MinDuration, t.MaxDuration)
	case t.SafetyMargin < 0 || t.SettleDelay < 0:
		return fmt.Errorf("tuning: safety margin and settle delay must be non-negative")
	case t.ArriveEpsilon < 0:
		return fmt.Errorf("tuning: arrive epsilon must be non-negative")
	}
	return nil
}

// ScrollDuration maps a travel distance to a smooth-scroll duration using a
// linear speed model clamped to [MinDuration, MaxDuration].
func (t Tuning) ScrollDuration(distance float64) time.Duration {
	ms := math.Abs(distance) / t.PxPerMs
	d := time.Duration(ms * float64(time.Millisecond))
	if d < t.MinDuration {
		return t.MinDuration
	}
	if d > t.MaxDuration {
		return t.MaxDuration
	}
	return d
}
