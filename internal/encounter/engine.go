package encounter

import (
	"time"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/dedup"
	"github.com/ConserveLee/barricade-timer/internal/display"
	"github.com/ConserveLee/barricade-timer/internal/logger"
	"github.com/ConserveLee/barricade-timer/internal/scheduler"
	"github.com/ConserveLee/barricade-timer/internal/settings"
	"github.com/ConserveLee/barricade-timer/internal/trigger"
)

// Entry is one matched line, as handed to a Recorder.
type Entry struct {
	At    time.Time
	Line  string
	Event trigger.Event
}

// Recorder receives the encounter history. Implementations must not block.
type Recorder interface {
	BeginEncounter(at time.Time)
	Record(e Entry)
}

// Engine turns chat lines into display updates. It owns the encounter
// state, the main timer and the mechanic alerts.
type Engine struct {
	sched   scheduler.Scheduler
	prefs   settings.Preferences
	log     logger.Logger
	dedup   *dedup.Deduplicator
	matcher *trigger.Matcher

	state    State
	board    *board
	timer    *MainTimer
	mech     *Mechanics
	recorder Recorder
}

// NewEngine creates an engine whose deduplication mark starts at the
// scheduler's current time.
func NewEngine(sched scheduler.Scheduler, out display.Display, prefs settings.Preferences, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Discard
	}
	e := &Engine{
		sched:   sched,
		prefs:   prefs,
		log:     log,
		dedup:   dedup.New(sched.Now()),
		matcher: trigger.NewMatcher(),
		board:   newBoard(out),
	}
	e.timer = newMainTimer(sched, &e.state, e.board, log)
	e.mech = newMechanics(sched, &e.state, e.board, e.timer, prefs, log)
	return e
}

// SetRecorder attaches the encounter journal. Call before the first line.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// Snapshot returns a copy of the encounter state.
func (e *Engine) Snapshot() State {
	return e.state
}

// Timer exposes the main timer for the manual controls.
func (e *Engine) Timer() *MainTimer {
	return e.timer
}

// PendingAlerts reports how many mechanic alerts are scheduled.
func (e *Engine) PendingAlerts() int {
	return e.mech.Pending()
}

// HandleLine runs one raw chat line through deduplication, matching and
// dispatch. It returns the event the line produced.
func (e *Engine) HandleLine(raw string) trigger.Event {
	now := e.sched.Now()
	if !e.dedup.Accept(raw, now) {
		e.log.Debug("Skipping old line: %s", raw)
		return trigger.Event{Kind: trigger.None}
	}

	line := trigger.Normalize(raw)
	if line == "" {
		return trigger.Event{Kind: trigger.None}
	}

	ctx := trigger.Context{
		TimerActive: e.state.MainTimerActive(),
		HardMode:    e.prefs.HardMode(),
	}
	ev := e.matcher.Match(line, ctx)
	if ev.Kind == trigger.None {
		return ev
	}

	e.log.Debug("Matched %s on %q", ev, raw)
	// Applied first so a welcome line opens the encounter it belongs to.
	e.Apply(ev)
	if e.recorder != nil {
		e.recorder.Record(Entry{At: now, Line: raw, Event: ev})
	}
	return ev
}

// Apply dispatches a matched event.
func (e *Engine) Apply(ev trigger.Event) {
	switch ev.Kind {
	case trigger.ResetInstance:
		e.log.Info("New instance detected, resetting encounter")
		e.Reset()
	case trigger.MainTimerStart:
		e.timer.Start(ev.Duration)
	case trigger.MainTimerCancel:
		e.timer.Cancel()
	case trigger.PrayerAlert:
		e.mech.Prayer(ev.Prayer)
	case trigger.TriColourWarning:
		e.mech.TriColour()
	case trigger.ScarabCollected:
		e.mech.ScarabCollected()
	case trigger.AmascutAttacking:
		e.mech.AmascutAttacking()
	case trigger.NameCalling:
		e.mech.NameCalling()
	case trigger.DirectionalCall:
		e.mech.Directional(ev.God)
	case trigger.BendTheKnee:
		e.mech.BendTheKnee()
	case trigger.GreenFlip:
		e.mech.GreenFlip()
	case trigger.KillDogs:
		e.mech.KillDogs()
	case trigger.Subjugation:
		e.mech.Subjugation()
	}
}

// Reset cancels every pending callback, reinitializes the state and
// redraws both regions. The deduplication mark is kept.
func (e *Engine) Reset() {
	e.timer.Reset()
	e.mech.StopAll()
	e.state.Reset()

	e.board.setTimer("", display.StyleReady)
	e.board.setStatus(constants.MsgReadyMonitoring, display.StyleStatus)

	if e.recorder != nil {
		e.recorder.BeginEncounter(e.sched.Now())
	}
}

// SourceSearching is shown while the chatbox is being located.
func (e *Engine) SourceSearching() {
	e.board.setStatus(constants.MsgLookingForChat, display.StyleStatus)
	if !e.state.Busy() {
		e.board.setTimer(constants.MsgSearching, display.StyleReady)
	}
}

// SourceFound is shown once the chatbox has been located.
func (e *Engine) SourceFound() {
	tag := constants.MsgNormalModeTag
	if e.prefs.HardMode() {
		tag = constants.MsgHardModeTag
	}
	e.board.setStatus(constants.MsgReadyMonitoring+tag, display.StyleStatus)
	if !e.state.Busy() {
		e.board.setTimer("", display.StyleReady)
	}
}

// SourceFailed shows an error message in the status region.
func (e *Engine) SourceFailed(msg string) {
	e.board.setStatus(msg, display.StyleError)
}
