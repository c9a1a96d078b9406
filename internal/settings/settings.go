// Package settings holds the user's alert toggles and difficulty flag.
package settings

import (
	"sync"

	"fyne.io/fyne/v2"
)

// Key names one persisted preference.
type Key string

const (
	KeyHardMode         Key = "hardMode"
	KeyPrayerAlerts     Key = "prayerAlerts"
	KeyTriColourAttack  Key = "triColourAttack"
	KeyBendKnee         Key = "bendKnee"
	KeyP7Mechanics      Key = "p7Mechanics"
	KeyGreenFlips       Key = "greenFlips"
	KeyTumekenPhase     Key = "tumekenPhase"
	KeySubjugation      Key = "subjugation"
	KeyScarabCollection Key = "scarabCollection"
)

// AlertKeys lists the alert toggles in the order the settings tab shows them.
var AlertKeys = []Key{
	KeyPrayerAlerts,
	KeyTriColourAttack,
	KeyBendKnee,
	KeyP7Mechanics,
	KeyGreenFlips,
	KeyTumekenPhase,
	KeySubjugation,
	KeyScarabCollection,
}

var labels = map[Key]string{
	KeyHardMode:         "Hard mode (21s attack timer)",
	KeyPrayerAlerts:     "Prayer switch alerts",
	KeyTriColourAttack:  "Tri-colour attack warning",
	KeyBendKnee:         "Bend the knee warning",
	KeyP7Mechanics:      "Name-calling and directional calls",
	KeyGreenFlips:       "Green flip tracker",
	KeyTumekenPhase:     "Tumeken phase (kill dogs)",
	KeySubjugation:      "Subjugation phase",
	KeyScarabCollection: "Scarab collection counter",
}

// Label is the human-readable name of k.
func (k Key) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// Preferences is what the encounter engine consults before every alert.
type Preferences interface {
	HardMode() bool
	AlertEnabled(k Key) bool
}

// Store persists preferences through the fyne app's preference file.
// Everything defaults to enabled.
type Store struct {
	prefs fyne.Preferences
}

// NewStore wraps p, usually fyne.CurrentApp().Preferences().
func NewStore(p fyne.Preferences) *Store {
	return &Store{prefs: p}
}

func (s *Store) HardMode() bool {
	return s.prefs.BoolWithFallback(string(KeyHardMode), true)
}

func (s *Store) AlertEnabled(k Key) bool {
	return s.prefs.BoolWithFallback(string(k), true)
}

func (s *Store) SetHardMode(v bool) {
	s.prefs.SetBool(string(KeyHardMode), v)
}

func (s *Store) SetAlertEnabled(k Key, v bool) {
	s.prefs.SetBool(string(k), v)
}

// EnableAll turns every alert toggle on. Hard mode is left alone.
func (s *Store) EnableAll() {
	for _, k := range AlertKeys {
		s.SetAlertEnabled(k, true)
	}
}

// DisableAll turns every alert toggle off. Hard mode is left alone.
func (s *Store) DisableAll() {
	for _, k := range AlertKeys {
		s.SetAlertEnabled(k, false)
	}
}

// Memory is an in-process Preferences for tests and the command-line tools.
type Memory struct {
	mu       sync.Mutex
	hard     bool
	disabled map[Key]bool
}

// NewMemory returns preferences with every alert enabled.
func NewMemory(hardMode bool) *Memory {
	return &Memory{hard: hardMode, disabled: make(map[Key]bool)}
}

func (m *Memory) HardMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hard
}

func (m *Memory) AlertEnabled(k Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.disabled[k]
}

func (m *Memory) SetHardMode(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hard = v
}

func (m *Memory) SetAlertEnabled(k Key, v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled[k] = !v
}
