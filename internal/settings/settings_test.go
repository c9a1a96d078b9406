package settings

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestStoreDefaultsToEnabled(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	s := NewStore(a.Preferences())

	if !s.HardMode() {
		t.Error("hard mode should default on")
	}
	for _, k := range AlertKeys {
		if !s.AlertEnabled(k) {
			t.Errorf("%s should default on", k)
		}
	}
}

func TestStorePersistsToggles(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	s := NewStore(a.Preferences())

	s.SetHardMode(false)
	s.SetAlertEnabled(KeyGreenFlips, false)

	again := NewStore(a.Preferences())
	if again.HardMode() {
		t.Error("hard mode change not persisted")
	}
	if again.AlertEnabled(KeyGreenFlips) {
		t.Error("green flip toggle not persisted")
	}
	if !again.AlertEnabled(KeySubjugation) {
		t.Error("unrelated toggle changed")
	}

	s.DisableAll()
	for _, k := range AlertKeys {
		if s.AlertEnabled(k) {
			t.Errorf("%s still enabled after DisableAll", k)
		}
	}
	if s.HardMode() {
		t.Error("DisableAll touched hard mode")
	}
	s.EnableAll()
	for _, k := range AlertKeys {
		if !s.AlertEnabled(k) {
			t.Errorf("%s still disabled after EnableAll", k)
		}
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(false)
	if m.HardMode() {
		t.Error("expected normal mode")
	}
	m.SetAlertEnabled(KeyPrayerAlerts, false)
	if m.AlertEnabled(KeyPrayerAlerts) {
		t.Error("prayer alerts should be off")
	}
	if !m.AlertEnabled(KeyBendKnee) {
		t.Error("bend knee should be on")
	}
}

func TestLabels(t *testing.T) {
	for _, k := range append([]Key{KeyHardMode}, AlertKeys...) {
		if k.Label() == string(k) {
			t.Errorf("%s has no label", k)
		}
	}
}
