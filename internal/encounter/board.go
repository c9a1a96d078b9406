package encounter

import (
	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/display"
)

// token identifies the write that currently owns a region. Zero never owns
// anything.
type token uint64

// board wraps the display and remembers which write owns each region, so a
// delayed revert can tell whether its text is still the one on screen.
type board struct {
	out    display.Display
	seq    token
	timer  token
	status token
}

func newBoard(out display.Display) *board {
	return &board{out: out}
}

func (b *board) setTimer(content string, style display.Style) token {
	b.seq++
	b.timer = b.seq
	b.out.SetTimerText(content, style)
	return b.seq
}

func (b *board) setStatus(content string, style display.Style) token {
	b.seq++
	b.status = b.seq
	b.out.SetStatusText(content, style)
	return b.seq
}

// clearTimer blanks the timer region if tok still owns it.
func (b *board) clearTimer(tok token) bool {
	if tok == 0 || b.timer != tok {
		return false
	}
	b.setTimer("", display.StyleReady)
	return true
}

// idleStatus puts the monitoring message back if tok still owns the status
// region.
func (b *board) idleStatus(tok token) bool {
	if tok == 0 || b.status != tok {
		return false
	}
	b.setStatus(constants.MsgMonitoringChat, display.StyleStatus)
	return true
}
