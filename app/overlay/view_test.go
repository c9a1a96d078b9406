package overlay

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/display"
)

func TestImportanceFor(t *testing.T) {
	tests := []struct {
		style display.Style
		want  widget.Importance
	}{
		{display.StyleReady, widget.MediumImportance},
		{display.StyleStatus, widget.MediumImportance},
		{display.StyleCountdownSafe, widget.SuccessImportance},
		{display.StyleCountdownCaution, widget.WarningImportance},
		{display.StyleCountdownUrgent, widget.DangerImportance},
		{display.StyleAlertActive, widget.DangerImportance},
		{display.StyleCritical, widget.DangerImportance},
		{display.StylePrayerMagic, widget.HighImportance},
		{display.StyleCanceled, widget.LowImportance},
	}
	for _, tc := range tests {
		if got := importanceFor(tc.style); got != tc.want {
			t.Errorf("importanceFor(%s) = %v, want %v", tc.style, got, tc.want)
		}
	}
}

func TestViewUpdatesLabels(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := NewView()
	if v.Status.Text != constants.MsgInitializing || v.Timer.Text != "" {
		t.Errorf("fresh view shows %q / %q", v.Timer.Text, v.Status.Text)
	}

	v.SetTimerText("Detonation in:\n4", display.StyleCountdownUrgent)
	v.SetStatusText("Pray Magic!", display.StylePrayerMagic)

	if v.Timer.Text != "Detonation in:\n4" || v.Timer.Importance != widget.DangerImportance {
		t.Errorf("timer label = %q / %v", v.Timer.Text, v.Timer.Importance)
	}
	if v.Status.Text != "Pray Magic!" || v.Status.Importance != widget.HighImportance {
		t.Errorf("status label = %q / %v", v.Status.Text, v.Status.Importance)
	}
}
