package encounter

import (
	"fmt"
	"time"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/display"
	"github.com/ConserveLee/barricade-timer/internal/logger"
	"github.com/ConserveLee/barricade-timer/internal/scheduler"
	"github.com/ConserveLee/barricade-timer/internal/settings"
	"github.com/ConserveLee/barricade-timer/internal/trigger"
)

// alert is one mechanic kind: its pending callback and the regions it last
// wrote.
type alert struct {
	name      string
	slot      scheduler.Slot
	timerTok  token
	statusTok token
}

// Mechanics schedules the time-boxed mechanic alerts. Each kind owns one
// slot, so a repeat of the same kind replaces its pending revert.
type Mechanics struct {
	sched scheduler.Scheduler
	state *State
	board *board
	timer *MainTimer
	prefs settings.Preferences
	log   logger.Logger

	prayer      alert
	triColour   alert
	attacking   alert
	directional alert
	bendKnee    alert
	greenFlip   alert
	killDogs    alert
	subjugation alert
	nameCalling alert
	scarab      alert
}

func newMechanics(sched scheduler.Scheduler, state *State, b *board, timer *MainTimer, prefs settings.Preferences, log logger.Logger) *Mechanics {
	m := &Mechanics{sched: sched, state: state, board: b, timer: timer, prefs: prefs, log: log}
	m.prayer.name = "prayer"
	m.triColour.name = "tri_colour"
	m.attacking.name = "amascut_attacking"
	m.directional.name = "directional"
	m.bendKnee.name = "bend_the_knee"
	m.greenFlip.name = "green_flip"
	m.killDogs.name = "kill_dogs"
	m.subjugation.name = "subjugation"
	m.nameCalling.name = "name_calling"
	m.scarab.name = "scarab"
	return m
}

func (m *Mechanics) all() []*alert {
	return []*alert{
		&m.prayer, &m.triColour, &m.attacking, &m.directional, &m.bendKnee,
		&m.greenFlip, &m.killDogs, &m.subjugation, &m.nameCalling, &m.scarab,
	}
}

func (m *Mechanics) enabled(k settings.Key) bool {
	if m.prefs.AlertEnabled(k) {
		return true
	}
	m.log.Debug("Alert %s disabled, skipping", k)
	return false
}

// show writes the status text, and the timer text when given and the main
// timer is idle, then arms the revert after d.
func (m *Mechanics) show(a *alert, status string, style display.Style, timerText string, d time.Duration) {
	a.slot.Stop()
	a.statusTok = m.board.setStatus(status, style)
	if timerText != "" && !m.state.Busy() {
		a.timerTok = m.board.setTimer(timerText, display.StyleAlertActive)
	}
	a.slot.After(m.sched, d, func() { m.revert(a) })
}

func (m *Mechanics) revert(a *alert) {
	m.board.clearTimer(a.timerTok)
	m.board.idleStatus(a.statusTok)
	a.timerTok = 0
	a.statusTok = 0
}

// clearOthers cancels every pending alert except keep. Alerts that were
// still on screen are reverted so nothing is left without an owner.
func (m *Mechanics) clearOthers(keep *alert) {
	for _, a := range m.all() {
		if a == keep {
			continue
		}
		if a.slot.Stop() {
			m.log.Debug("Cleared pending %s alert", a.name)
			m.revert(a)
		}
	}
}

// StopAll cancels every pending alert without touching the display.
func (m *Mechanics) StopAll() {
	for _, a := range m.all() {
		a.slot.Stop()
		a.timerTok = 0
		a.statusTok = 0
	}
}

// Pending reports how many alerts have a callback scheduled.
func (m *Mechanics) Pending() int {
	n := 0
	for _, a := range m.all() {
		if a.slot.Pending() {
			n++
		}
	}
	return n
}

// Prayer shows a protection prayer switch.
func (m *Mechanics) Prayer(p trigger.Prayer) {
	if !m.enabled(settings.KeyPrayerAlerts) {
		return
	}
	var msg string
	var style display.Style
	switch p {
	case trigger.PrayMelee:
		msg, style = constants.MsgPrayMelee, display.StylePrayerMelee
	case trigger.PrayRanged:
		msg, style = constants.MsgPrayRanged, display.StylePrayerRanged
	case trigger.PrayMagic:
		msg, style = constants.MsgPrayMagic, display.StylePrayerMagic
	default:
		return
	}
	m.show(&m.prayer, msg, style, "", constants.PrayerAlertDuration)
}

func (m *Mechanics) TriColour() {
	if !m.enabled(settings.KeyTriColourAttack) {
		return
	}
	m.show(&m.triColour, constants.MsgTriColourAttack, display.StyleCritical, "", constants.TriColourDuration)
}

func (m *Mechanics) BendTheKnee() {
	if !m.enabled(settings.KeyBendKnee) {
		return
	}
	m.show(&m.bendKnee, constants.MsgBendKneeAttack, display.StyleCritical, "", constants.BendKneeDuration)
}

// AmascutAttacking is the informational "attacking Tumeken" alert.
func (m *Mechanics) AmascutAttacking() {
	if !m.enabled(settings.KeyTumekenPhase) {
		return
	}
	msg := constants.MsgAmascutAttacking + "\n" + constants.MsgAmascutSubtext
	m.show(&m.attacking, msg, display.StyleInfo, "", constants.AmascutAttackingDuration)
}

// Directional records which god spoke and shows the matching corner. The
// god is recorded even when the alert is disabled, since name-calling reads
// it.
func (m *Mechanics) Directional(g trigger.God) {
	m.state.LastGodSpoken = g

	var msg string
	switch g {
	case trigger.GodApmeken:
		msg = constants.MsgNWVokes
	case trigger.GodHet:
		msg = constants.MsgSWVokes
	case trigger.GodScabaras:
		msg = constants.MsgNEVokes
	case trigger.GodCrondis:
		msg = constants.MsgSEVokes
	default:
		return
	}
	if !m.enabled(settings.KeyP7Mechanics) {
		return
	}
	m.show(&m.directional, msg, display.StyleDirectional, "", constants.DirectionalDuration)
}

// KillDogs starts the Tumeken phase alert.
func (m *Mechanics) KillDogs() {
	if !m.enabled(settings.KeyTumekenPhase) {
		return
	}
	m.clearOthers(&m.killDogs)
	msg := constants.MsgKillDogs + "\n" + constants.MsgKillDogsSubtext
	m.show(&m.killDogs, msg, display.StyleCritical, constants.MsgKillDogs, constants.KillDogsDuration)
}

// Subjugation starts the stand-behind alert.
func (m *Mechanics) Subjugation() {
	if !m.enabled(settings.KeySubjugation) {
		return
	}
	m.clearOthers(&m.subjugation)
	m.show(&m.subjugation, constants.MsgStandBehind, display.StyleCritical, constants.MsgStandBehindTimer, constants.SubjugationDuration)
}

// NameCalling arms the delayed name-calling alert. When it fires it takes
// the timer region from a counting main timer.
func (m *Mechanics) NameCalling() {
	if !m.enabled(settings.KeyP7Mechanics) {
		return
	}
	m.clearOthers(&m.nameCalling)
	m.nameCalling.slot.After(m.sched, constants.NameCallingDelay, m.fireNameCalling)
}

func (m *Mechanics) fireNameCalling() {
	a := &m.nameCalling

	msg := constants.MsgNameCalling
	switch m.state.LastGodSpoken {
	case trigger.GodCrondis:
		msg = constants.MsgNameCallingCrondis
	case trigger.GodScabaras:
		msg = constants.MsgNameCallingScabaras
	}
	a.statusTok = m.board.setStatus(msg, display.StyleNameCalling)

	if m.timer.Preempt() {
		a.timerTok = m.board.setTimer(constants.MsgMechanicActive, display.StyleAlertActive)
	}
	a.slot.After(m.sched, constants.NameCallingVisible, func() { m.revert(a) })
}

// GreenFlip arms the green flip mechanic on the first call and toggles
// between Green 1 and Green 2 on every later call. The mechanic stays armed
// after the display clears.
func (m *Mechanics) GreenFlip() {
	s := m.state
	s.GreenFlipCount++
	first := !s.GreenFlipActive
	if first {
		s.GreenFlipActive = true
		s.GreenFlipIsFirst = true
	} else {
		s.GreenFlipIsFirst = !s.GreenFlipIsFirst
	}

	if !m.enabled(settings.KeyGreenFlips) {
		return
	}
	if first {
		m.clearOthers(&m.greenFlip)
	}
	status, timerText := constants.MsgGreen1, constants.MsgGreen1Timer
	if !s.GreenFlipIsFirst {
		status, timerText = constants.MsgGreen2, constants.MsgGreen2Timer
	}
	m.show(&m.greenFlip, status, display.StyleInfo, timerText, constants.GreenFlipDuration)
}

// ScarabCollected counts a delivered scarab. Counting happens even when the
// display is disabled.
func (m *Mechanics) ScarabCollected() {
	s := m.state
	a := &m.scarab
	s.ScarabCount++
	s.TargetHits++
	a.slot.Stop()

	show := m.enabled(settings.KeyScarabCollection)
	if s.ScarabCount >= constants.ScarabsPerPhase {
		s.ScarabCount = 0
		m.log.Info("All scarabs collected (%d target hits)", s.TargetHits)
		if show {
			m.show(a, constants.MsgAllScarabs, display.StyleInfoLarge, "", constants.ScarabCompleteDuration)
		}
		return
	}

	if show {
		msg := fmt.Sprintf(constants.MsgScarabsFormat, s.ScarabCount, constants.ScarabsPerPhase, s.TargetHits)
		a.statusTok = m.board.setStatus(msg, display.StyleInfo)
	}
	a.slot.After(m.sched, constants.ScarabIdleTimeout, func() {
		m.log.Debug("Scarab count reset after %s idle", constants.ScarabIdleTimeout)
		s.ScarabCount = 0
		m.revert(a)
	})
}
