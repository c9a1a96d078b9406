// Package display defines the two text regions the encounter engine writes
// to and the sinks that render them.
package display

import "sync"

// Style selects a cosmetic treatment for a region. The engine never reads
// it back.
type Style int

const (
	StyleReady Style = iota
	StyleCountdownSafe
	StyleCountdownCaution
	StyleCountdownUrgent
	StyleAlertActive
	StyleCanceled
	StyleStatus
	StyleCritical
	StylePrayerMelee
	StylePrayerRanged
	StylePrayerMagic
	StyleNameCalling
	StyleDirectional
	StyleInfo
	StyleInfoLarge
	StyleError
)

var styleNames = [...]string{
	StyleReady:            "ready",
	StyleCountdownSafe:    "countdown_safe",
	StyleCountdownCaution: "countdown_caution",
	StyleCountdownUrgent:  "countdown_urgent",
	StyleAlertActive:      "alert_active",
	StyleCanceled:         "canceled",
	StyleStatus:           "status",
	StyleCritical:         "critical",
	StylePrayerMelee:      "prayer_melee",
	StylePrayerRanged:     "prayer_ranged",
	StylePrayerMagic:      "prayer_magic",
	StyleNameCalling:      "name_calling",
	StyleDirectional:      "directional",
	StyleInfo:             "info",
	StyleInfoLarge:        "info_large",
	StyleError:            "error",
}

func (s Style) String() string {
	if s >= 0 && int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// Region names one of the two display areas.
type Region string

const (
	RegionTimer  Region = "timer"
	RegionStatus Region = "status"
)

// Display is the sink the engine renders through. Content may contain "\n".
type Display interface {
	SetTimerText(content string, style Style)
	SetStatusText(content string, style Style)
}

// Text is the current content of one region.
type Text struct {
	Content string
	Style   Style
}

// Fanout forwards every update to each sink in order.
type Fanout []Display

func (f Fanout) SetTimerText(content string, style Style) {
	for _, d := range f {
		d.SetTimerText(content, style)
	}
}

func (f Fanout) SetStatusText(content string, style Style) {
	for _, d := range f {
		d.SetStatusText(content, style)
	}
}

// Recorder keeps the latest text of each region and the full history of
// updates. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	timer   Text
	status  Text
	history []Update
}

// Update is one call made on a Display.
type Update struct {
	Region Region
	Text
}

func (r *Recorder) SetTimerText(content string, style Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timer = Text{content, style}
	r.history = append(r.history, Update{RegionTimer, r.timer})
}

func (r *Recorder) SetStatusText(content string, style Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = Text{content, style}
	r.history = append(r.history, Update{RegionStatus, r.status})
}

// Timer returns the current timer region.
func (r *Recorder) Timer() Text {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer
}

// Status returns the current status region.
func (r *Recorder) Status() Text {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// History returns a copy of every update so far.
func (r *Recorder) History() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Update, len(r.history))
	copy(out, r.history)
	return out
}

// Clear drops the recorded history, keeping the current texts.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = nil
}
