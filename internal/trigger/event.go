package trigger

import (
	"fmt"
	"time"
)

// Kind identifies what a matched chat line means for the encounter.
type Kind int

const (
	None Kind = iota
	ResetInstance
	MainTimerStart
	MainTimerCancel
	PrayerAlert
	TriColourWarning
	ScarabCollected
	AmascutAttacking
	NameCalling
	DirectionalCall
	BendTheKnee
	GreenFlip
	KillDogs
	Subjugation
)

var kindNames = map[Kind]string{
	None:             "none",
	ResetInstance:    "reset_instance",
	MainTimerStart:   "main_timer_start",
	MainTimerCancel:  "main_timer_cancel",
	PrayerAlert:      "prayer_alert",
	TriColourWarning: "tri_colour_warning",
	ScarabCollected:  "scarab_collected",
	AmascutAttacking: "amascut_attacking",
	NameCalling:      "name_calling",
	DirectionalCall:  "directional_call",
	BendTheKnee:      "bend_the_knee",
	GreenFlip:        "green_flip",
	KillDogs:         "kill_dogs",
	Subjugation:      "subjugation",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Prayer is the protection prayer a prayer alert asks for.
type Prayer int

const (
	PrayNone Prayer = iota
	PrayMelee
	PrayRanged
	PrayMagic
)

func (p Prayer) String() string {
	switch p {
	case PrayMelee:
		return "melee"
	case PrayRanged:
		return "ranged"
	case PrayMagic:
		return "magic"
	default:
		return "none"
	}
}

// God is one of the four directional voices.
type God int

const (
	GodNone God = iota
	GodApmeken
	GodHet
	GodScabaras
	GodCrondis
)

func (g God) String() string {
	switch g {
	case GodApmeken:
		return "apmeken"
	case GodHet:
		return "het"
	case GodScabaras:
		return "scabaras"
	case GodCrondis:
		return "crondis"
	default:
		return "none"
	}
}

// Event is the result of matching one line. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind     Kind
	Rule     string        // Name of the catalogue rule that matched
	Duration time.Duration // MainTimerStart
	Prayer   Prayer        // PrayerAlert
	God      God           // DirectionalCall
}

func (e Event) String() string {
	switch e.Kind {
	case MainTimerStart:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Duration)
	case PrayerAlert:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Prayer)
	case DirectionalCall:
		return fmt.Sprintf("%s(%s)", e.Kind, e.God)
	default:
		return e.Kind.String()
	}
}
