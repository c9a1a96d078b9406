// Package settings is the alert toggle tab.
package settings

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	prefs "github.com/ConserveLee/barricade-timer/internal/settings"
)

// Store is the persisted preference set the tab edits.
type Store interface {
	prefs.Preferences
	SetHardMode(bool)
	SetAlertEnabled(prefs.Key, bool)
}

// NewSettingsPanel creates the tab with the difficulty flag and one check
// per alert family. Changes apply to the next matched line.
func NewSettingsPanel(store Store, onModeChanged func(hard bool)) fyne.CanvasObject {
	hardCheck := widget.NewCheck(prefs.KeyHardMode.Label(), func(on bool) {
		store.SetHardMode(on)
		if onModeChanged != nil {
			onModeChanged(on)
		}
	})
	hardCheck.SetChecked(store.HardMode())

	checks := make([]*widget.Check, 0, len(prefs.AlertKeys))
	alerts := container.NewVBox()
	for _, k := range prefs.AlertKeys {
		k := k
		c := widget.NewCheck(k.Label(), func(on bool) {
			store.SetAlertEnabled(k, on)
		})
		c.SetChecked(store.AlertEnabled(k))
		checks = append(checks, c)
		alerts.Add(c)
	}

	setAll := func(on bool) {
		for _, c := range checks {
			c.SetChecked(on) // OnChanged writes through
		}
	}
	enableBtn := widget.NewButton("Enable all", func() { setAll(true) })
	disableBtn := widget.NewButton("Disable all", func() { setAll(false) })

	return container.NewVScroll(container.NewVBox(
		widget.NewLabel("Difficulty:"),
		hardCheck,
		widget.NewSeparator(),
		widget.NewLabel("Alerts:"),
		alerts,
		container.NewHBox(enableBtn, disableBtn),
	))
}
