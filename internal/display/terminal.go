package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Colours match the overlay's label importances.
var (
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorOrange  = lipgloss.Color("#FF8800")
	ColorRed     = lipgloss.Color("#FF0000")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorBlue    = lipgloss.Color("#4488FF")
	ColorMagenta = lipgloss.Color("#FF00FF")
	ColorGray    = lipgloss.Color("#888888")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

var (
	regionStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(7)

	offsetStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// StyleFor maps a display style to its terminal rendering.
func StyleFor(s Style) lipgloss.Style {
	base := lipgloss.NewStyle()
	switch s {
	case StyleCountdownSafe:
		return base.Foreground(ColorGreen).Bold(true)
	case StyleCountdownCaution:
		return base.Foreground(ColorYellow).Bold(true)
	case StyleCountdownUrgent, StyleAlertActive:
		return base.Foreground(ColorRed).Bold(true)
	case StyleCanceled:
		return base.Foreground(ColorGray).Italic(true)
	case StyleCritical, StyleError:
		return base.Foreground(ColorRed).Bold(true)
	case StylePrayerMelee:
		return base.Foreground(ColorRed)
	case StylePrayerRanged:
		return base.Foreground(ColorGreen)
	case StylePrayerMagic:
		return base.Foreground(ColorBlue)
	case StyleNameCalling:
		return base.Foreground(ColorMagenta).Bold(true)
	case StyleDirectional:
		return base.Foreground(ColorOrange).Bold(true)
	case StyleInfo:
		return base.Foreground(ColorCyan)
	case StyleInfoLarge:
		return base.Foreground(ColorCyan).Bold(true).Underline(true)
	default:
		return base.Foreground(ColorWhite)
	}
}

// Terminal prints every region change as one styled line. The replay tool
// uses it in place of the overlay window.
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	now   func() time.Time
	start time.Time
	last  map[Region]Text
}

// NewTerminal writes to out. Offsets are measured from now() at creation.
func NewTerminal(out io.Writer, now func() time.Time) *Terminal {
	return &Terminal{
		out:   out,
		now:   now,
		start: now(),
		last:  make(map[Region]Text),
	}
}

func (t *Terminal) SetTimerText(content string, style Style) {
	t.print(RegionTimer, content, style)
}

func (t *Terminal) SetStatusText(content string, style Style) {
	t.print(RegionStatus, content, style)
}

func (t *Terminal) print(region Region, content string, style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// The countdown rewrites the same text every tick.
	txt := Text{content, style}
	if prev, ok := t.last[region]; ok && prev == txt {
		return
	}
	t.last[region] = txt

	offset := t.now().Sub(t.start).Seconds()
	shown := strings.ReplaceAll(content, "\n", " / ")
	if shown == "" {
		shown = "(clear)"
	}
	fmt.Fprintf(t.out, "%s %s %s\n",
		offsetStyle.Render(fmt.Sprintf("[+%6.1fs]", offset)),
		regionStyle.Render(string(region)),
		StyleFor(style).Render(shown),
	)
}
