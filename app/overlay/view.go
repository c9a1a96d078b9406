package overlay

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/display"
)

// View renders the timer and status regions with two labels. Its Display
// methods may be called from any goroutine.
type View struct {
	Timer  *widget.Label
	Status *widget.Label
}

func NewView() *View {
	timer := widget.NewLabel("")
	timer.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timer.Alignment = fyne.TextAlignCenter
	timer.SizeName = theme.SizeNameHeadingText

	status := widget.NewLabel(constants.MsgInitializing)
	status.TextStyle = fyne.TextStyle{Bold: true}
	status.Alignment = fyne.TextAlignCenter
	status.Wrapping = fyne.TextWrapWord

	return &View{Timer: timer, Status: status}
}

var _ display.Display = (*View)(nil)

func (v *View) SetTimerText(content string, style display.Style) {
	fyne.Do(func() { apply(v.Timer, content, style) })
}

func (v *View) SetStatusText(content string, style display.Style) {
	fyne.Do(func() { apply(v.Status, content, style) })
}

func apply(l *widget.Label, content string, style display.Style) {
	l.Importance = importanceFor(style)
	l.SetText(content)
}

// importanceFor maps a display style onto the theme's label colours.
func importanceFor(s display.Style) widget.Importance {
	switch s {
	case display.StyleCountdownSafe, display.StylePrayerRanged:
		return widget.SuccessImportance
	case display.StyleCountdownCaution, display.StyleInfo, display.StyleInfoLarge:
		return widget.WarningImportance
	case display.StyleCountdownUrgent, display.StyleAlertActive, display.StyleCritical,
		display.StylePrayerMelee, display.StyleError:
		return widget.DangerImportance
	case display.StylePrayerMagic, display.StyleDirectional, display.StyleNameCalling:
		return widget.HighImportance
	case display.StyleCanceled:
		return widget.LowImportance
	default:
		return widget.MediumImportance
	}
}
