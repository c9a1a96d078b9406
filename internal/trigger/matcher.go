// Package trigger maps normalized chat lines to encounter events.
package trigger

import (
	"strings"

	"github.com/ConserveLee/barricade-timer/internal/constants"
)

// Context is the slice of encounter state the rules are gated on.
type Context struct {
	TimerActive bool // Main timer is counting
	HardMode    bool
}

// Rule is one entry of the ordered catalogue.
type Rule struct {
	Name  string
	Match func(line string, ctx Context) bool
	Event func(ctx Context) Event
}

// Matcher evaluates rules in order; the first match wins.
type Matcher struct {
	rules []Rule
}

// NewMatcher returns a matcher over the fixed encounter catalogue.
func NewMatcher() *Matcher {
	return &Matcher{rules: DefaultRules()}
}

// Rules returns the rules in evaluation order.
func (m *Matcher) Rules() []Rule {
	return m.rules
}

// Normalize lowercases and trims a raw chat line.
func Normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}

// Match returns the event for an already normalized line, or an Event with
// Kind None.
func (m *Matcher) Match(line string, ctx Context) Event {
	for _, r := range m.rules {
		if r.Match(line, ctx) {
			ev := r.Event(ctx)
			ev.Rule = r.Name
			return ev
		}
	}
	return Event{Kind: None}
}

func contains(phrase string) func(string, Context) bool {
	return func(line string, _ Context) bool {
		return strings.Contains(line, phrase)
	}
}

func containsAny(phrases ...string) func(string, Context) bool {
	return func(line string, _ Context) bool {
		for _, p := range phrases {
			if strings.Contains(line, p) {
				return true
			}
		}
		return false
	}
}

func kind(k Kind) func(Context) Event {
	return func(Context) Event { return Event{Kind: k} }
}

func mainAttack(line string, ctx Context) bool {
	if ctx.TimerActive {
		return false
	}
	return strings.Contains(line, PhraseTearThemApart) ||
		strings.Contains(line, PhraseTearThem) ||
		(strings.Contains(line, PhraseAmascut) && strings.Contains(line, PhraseTear)) ||
		(strings.Contains(line, PhraseDevourer) && strings.Contains(line, PhraseTear))
}

func scabarasCall(line string, _ Context) bool {
	return line == PhraseScabaras ||
		(strings.Contains(line, PhraseScabaras) && len(line) < shortMessageLimit)
}

func prayer(p Prayer) func(Context) Event {
	return func(Context) Event { return Event{Kind: PrayerAlert, Prayer: p} }
}

func directional(g God) func(Context) Event {
	return func(Context) Event { return Event{Kind: DirectionalCall, God: g} }
}

// DefaultRules is the encounter catalogue in priority order. Reset comes
// first so a new instance always wins; timer start and cancel come before
// the looser phrase families.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "welcome", Match: contains(PhraseWelcome), Event: kind(ResetInstance)},
		{
			Name:  "tear_them_apart",
			Match: mainAttack,
			Event: func(ctx Context) Event {
				d := constants.NormalModeAttack
				if ctx.HardMode {
					d = constants.HardModeAttack
				}
				return Event{Kind: MainTimerStart, Duration: d}
			},
		},
		{
			Name: "tumeken_heart",
			Match: func(line string, ctx Context) bool {
				return !ctx.TimerActive && strings.Contains(line, PhraseTumekenHeart)
			},
			Event: func(Context) Event {
				return Event{Kind: MainTimerStart, Duration: constants.SpecialPhase}
			},
		},
		{
			Name: "enough",
			Match: func(line string, ctx Context) bool {
				return ctx.TimerActive && strings.Contains(line, PhraseEnough)
			},
			Event: kind(MainTimerCancel),
		},
		{Name: "pray_melee", Match: contains(PhraseStrengthWithers), Event: prayer(PrayMelee)},
		{Name: "pray_ranged", Match: contains(PhraseWillNotSuffer), Event: prayer(PrayRanged)},
		{Name: "pray_magic", Match: contains(PhraseSoulIsWeak), Event: prayer(PrayMagic)},
		{Name: "tri_colour", Match: containsAny(triColourPhrases...), Event: kind(TriColourWarning)},
		{Name: "scarab_collected", Match: contains(PhraseScarabCollected), Event: kind(ScarabCollected)},
		{Name: "get_out_of_my_way", Match: contains(PhraseGetOutOfMyWay), Event: kind(AmascutAttacking)},
		{Name: "you_are_nothing", Match: contains(PhraseYouAreNothing), Event: kind(NameCalling)},
		{Name: "vokes_apmeken", Match: contains(PhraseSorryApmeken), Event: directional(GodApmeken)},
		{Name: "vokes_het", Match: contains(PhraseForgiveHet), Event: directional(GodHet)},
		{Name: "vokes_scabaras", Match: scabarasCall, Event: directional(GodScabaras)},
		{Name: "vokes_crondis", Match: contains(PhraseCrondis), Event: directional(GodCrondis)},
		{Name: "bend_the_knee", Match: contains(PhraseBendTheKnee), Event: kind(BendTheKnee)},
		{Name: "light_snuffed", Match: contains(PhraseLightSnuffed), Event: kind(GreenFlip)},
		{Name: "new_dawn", Match: contains(PhraseNewDawn), Event: kind(KillDogs)},
		{Name: "not_be_subjugated", Match: contains(PhraseNotBeSubjugated), Event: kind(Subjugation)},
	}
}
