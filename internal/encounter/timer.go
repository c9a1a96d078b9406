package encounter

import (
	"fmt"
	"time"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/display"
	"github.com/ConserveLee/barricade-timer/internal/logger"
	"github.com/ConserveLee/barricade-timer/internal/scheduler"
)

// MainTimer is the single ability countdown.
//
//	Ready -> Counting -> AlertLive -> Ready
//	Ready -> Counting -> Canceled  -> Ready
type MainTimer struct {
	sched scheduler.Scheduler
	state *State
	board *board
	log   logger.Logger

	tick   scheduler.Slot // Countdown or alert refresh
	settle scheduler.Slot // Delayed return to Ready

	timerTok  token
	statusTok token
	shown     int // Last countdown value written, to skip identical redraws
}

func newMainTimer(sched scheduler.Scheduler, state *State, b *board, log logger.Logger) *MainTimer {
	return &MainTimer{sched: sched, state: state, board: b, log: log}
}

// ceilSeconds rounds d up to whole seconds (toward zero for negative d).
func ceilSeconds(d time.Duration) int {
	if d > 0 {
		return int((d + time.Second - 1) / time.Second)
	}
	return int(d / time.Second)
}

// countdownStyle picks the colour tier for a countdown value.
func countdownStyle(secs int) display.Style {
	switch {
	case secs > constants.SafeAboveSeconds:
		return display.StyleCountdownSafe
	case secs > constants.CautionAboveSeconds:
		return display.StyleCountdownCaution
	default:
		return display.StyleCountdownUrgent
	}
}

// Active reports whether the timer is counting.
func (t *MainTimer) Active() bool {
	return t.state.Phase == Counting
}

// Start begins a countdown of d. It is ignored while already counting.
func (t *MainTimer) Start(d time.Duration) bool {
	if t.state.Phase == Counting {
		t.log.Debug("Main timer already counting, start ignored")
		return false
	}
	t.tick.Stop()
	t.settle.Stop()

	now := t.sched.Now()
	t.state.Phase = Counting
	t.state.StartTime = now
	t.state.EndTime = now.Add(d)

	secs := ceilSeconds(d)
	t.shown = secs
	t.timerTok = t.board.setTimer(fmt.Sprintf(constants.MsgCountdownFormat, secs), countdownStyle(secs))
	t.statusTok = t.board.setStatus(constants.MsgBarricadeIncoming, display.StyleStatus)

	t.tick.Every(t.sched, constants.TickInterval, t.countdown)
	t.log.Info("Barricade timer started: %ds", secs)
	return true
}

func (t *MainTimer) remaining() int {
	return ceilSeconds(t.state.EndTime.Sub(t.sched.Now()))
}

func (t *MainTimer) countdown() {
	if t.state.Phase != Counting {
		return
	}
	secs := t.remaining()
	if secs <= constants.AlertLeadSeconds {
		t.alert()
		return
	}
	if secs == t.shown {
		return
	}
	t.shown = secs
	t.timerTok = t.board.setTimer(fmt.Sprintf(constants.MsgCountdownFormat, secs), countdownStyle(secs))
}

// alert enters AlertLive. The live refresh keeps running until the nominal
// end time.
func (t *MainTimer) alert() {
	t.state.Phase = AlertLive
	t.statusTok = t.board.setStatus(constants.MsgAbilityReady, display.StyleAlertActive)
	t.log.Debug("Main timer entering alert phase")

	t.tick.Every(t.sched, constants.TickInterval, t.alertTick)
	t.alertTick()
}

func (t *MainTimer) alertTick() {
	if t.state.Phase != AlertLive {
		return
	}
	secs := t.remaining()
	if secs < 0 {
		secs = 0
	}
	t.timerTok = t.board.setTimer(fmt.Sprintf(constants.MsgUseAbilityFormat, secs), display.StyleAlertActive)
	if secs == 0 {
		t.tick.Stop()
		t.settle.After(t.sched, constants.ResetDelay, t.toReady)
	}
}

// Cancel aborts a countdown that started no more than CancelWindow ago.
// Later cancels, and cancels outside Counting, are ignored.
func (t *MainTimer) Cancel() bool {
	if t.state.Phase != Counting {
		return false
	}
	if elapsed := t.sched.Now().Sub(t.state.StartTime); elapsed > constants.CancelWindow {
		t.log.Debug("Ignoring cancel %.1fs after start", elapsed.Seconds())
		return false
	}

	t.tick.Stop()
	t.state.Phase = Canceled
	t.timerTok = t.board.setTimer(constants.MsgScarabsSkipped, display.StyleCanceled)
	t.statusTok = t.board.setStatus(constants.MsgTimerCanceled, display.StyleStatus)
	t.settle.After(t.sched, constants.CancelResetDelay, t.toReady)
	t.log.Info("Barricade timer canceled")
	return true
}

// Preempt stops a counting timer without the skipped indicator, handing the
// timer region to a mechanic. It reports whether a countdown was stopped.
func (t *MainTimer) Preempt() bool {
	if t.state.Phase != Counting {
		return false
	}
	t.tick.Stop()
	t.settle.Stop()
	t.state.Phase = Ready
	t.log.Info("Barricade timer preempted by mechanic")
	return true
}

// Reset force-stops every pending callback and returns to Ready. The
// caller redraws the display.
func (t *MainTimer) Reset() {
	t.tick.Stop()
	t.settle.Stop()
	t.state.Phase = Ready
	t.timerTok = 0
	t.statusTok = 0
	t.shown = 0
}

func (t *MainTimer) toReady() {
	t.state.Phase = Ready
	t.board.clearTimer(t.timerTok)
	t.board.idleStatus(t.statusTok)
	t.log.Debug("Main timer ready")
}
