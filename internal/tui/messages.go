package tui

import (
	"time"

	"github.com/jask/folio/internal/scrollspy"
	"github.com/jask/folio/internal/service"
)

type documentMsg struct{ doc service.Document }

// animFrameMsg advances the scroll animation with the given sequence number.
type animFrameMsg struct {
	seq uint64
	at  time.Time
}

// frameMsg runs the throttled passive evaluation.
type frameMsg struct{}

type timerMsg struct{ timer scrollspy.Timer }

type statusMsg string

type errMsg struct{ error }
