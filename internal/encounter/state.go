// Package encounter holds the boss-encounter state machine: the main
// ability timer, the mechanic alerts, and the engine that feeds matched
// chat lines into both.
//
// Nothing in this package locks. Every exported method must be called on
// the scheduler's loop, which is also where all timer callbacks run.
package encounter

import (
	"time"

	"github.com/ConserveLee/barricade-timer/internal/trigger"
)

// Phase is the main timer state.
type Phase int

const (
	Ready Phase = iota
	Counting
	AlertLive
	Canceled
)

func (p Phase) String() string {
	switch p {
	case Counting:
		return "counting"
	case AlertLive:
		return "alert_live"
	case Canceled:
		return "canceled"
	default:
		return "ready"
	}
}

// State is the encounter aggregate.
type State struct {
	Phase     Phase
	StartTime time.Time
	EndTime   time.Time

	ScarabCount int // Scarabs toward the current set, always below ScarabsPerPhase
	TargetHits  int // Scarabs delivered since the encounter started

	LastGodSpoken trigger.God

	GreenFlipActive  bool
	GreenFlipIsFirst bool
	GreenFlipCount   int
}

// MainTimerActive reports whether the main timer is counting and can still
// be canceled. It is false during AlertLive.
func (s *State) MainTimerActive() bool {
	return s.Phase == Counting
}

// Busy reports whether the main timer owns the timer region.
func (s *State) Busy() bool {
	return s.Phase != Ready
}

// Reset returns every field to its initial value.
func (s *State) Reset() {
	*s = State{}
}
