package scrollspy

import "slices"

// ActiveSection is the section the user is focused on. The zero value is the
// empty section (header zone).
type ActiveSection struct {
	Section SectionID
	SubPath string
}

func (a ActiveSection) IsEmpty() bool { return a.Section == None }

// Marker is the section-scoped styling key, e.g. "section-experience".
func (a ActiveSection) Marker() string {
	if a.IsEmpty() {
		return "section-none"
	}
	return "section-" + string(a.Section)
}

// Source says who mutated the active section.
type Source string

const (
	SourceScroll     Source = "scroll"
	SourceNavigation Source = "navigation"
	SourceLocation   Source = "location"
)

// Change is delivered to listeners after every effective mutation.
type Change struct {
	Prev   ActiveSection
	Next   ActiveSection
	Source Source
}

type Listener func(Change)

// State owns the active section and the list of listeners interested in it.
// It is not safe for concurrent use; all calls come from the event loop.
type State struct {
	current   ActiveSection
	listeners map[int]Listener
	order     []int
	nextID    int
}

func NewState() *State {
	return &State{listeners: map[int]Listener{}}
}

func (s *State) Current() ActiveSection { return s.current }

// Set replaces the active section and notifies listeners in subscription order.
// It returns false when next equals the current value.
func (s *State) Set(next ActiveSection, src Source) bool {
	if next == s.current {
		return false
	}
	ch := Change{Prev: s.current, Next: next, Source: src}
	s.current = next
	for _, id := range s.order {
		if fn, ok := s.listeners[id]; ok {
			fn(ch)
		}
	}
	return true
}

// Subscribe registers fn and returns a function that removes it.
func (s *State) Subscribe(fn Listener) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	return func() {
		delete(s.listeners, id)
		// A fresh slice: Set may be ranging over the old one.
		s.order = slices.DeleteFunc(slices.Clone(s.order), func(v int) bool { return v == id })
	}
}
