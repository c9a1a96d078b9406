package trigger

// Boss dialogue phrases, lowercase as they appear after normalization.
const (
	PhraseWelcome         = "welcome to your session against: amascut, the devourer"
	PhraseTearThemApart   = "tear them apart"
	PhraseTearThem        = "tear them"
	PhraseTear            = "tear"
	PhraseAmascut         = "amascut"
	PhraseDevourer        = "devourer"
	PhraseTumekenHeart    = "tumeken's heart, delivered to me by these mortals"
	PhraseEnough          = "enough"
	PhraseStrengthWithers = "all strength withers"
	PhraseWillNotSuffer   = "i will not suffer this"
	PhraseSoulIsWeak      = "your soul is weak"
	PhraseGrovel          = "grovel"
	PhrasePathetic        = "pathetic"
	PhraseWeak            = "weak"
	PhraseScarabCollected = "the scarab is sucked into portal"
	PhraseGetOutOfMyWay   = "get out of my way"
	PhraseYouAreNothing   = "you are nothing"
	PhraseSorryApmeken    = "i am sorry, apmeken"
	PhraseForgiveHet      = "forgive me, het"
	PhraseScabaras        = "scabaras.."
	PhraseCrondis         = "crondis... it should have never come to this"
	PhraseBendTheKnee     = "bend the knee"
	PhraseLightSnuffed    = "your light will be snuffed out, once and for all"
	PhraseNewDawn         = "a new dawn"
	PhraseNotBeSubjugated = "i will not be subjugated"
)

// shortMessageLimit bounds the Scabaras call. Longer lines that merely
// contain the fragment are other dialogue.
const shortMessageLimit = 20

// triColourPhrases are matched without a speaker qualifier, so unrelated
// dialogue containing these words also fires the warning.
var triColourPhrases = []string{PhraseGrovel, PhrasePathetic, PhraseWeak}
