package constants

import "time"

// Chat Reader Configuration
const (
	// Scan Intervals
	AcquireInterval = 1 * time.Second        // Retry interval while looking for the chatbox
	PollInterval    = 300 * time.Millisecond // Chat read interval once the chatbox is found
	TickInterval    = 100 * time.Millisecond // Main timer display refresh

	// Image Matching
	DefaultTolerance   = 60   // Color tolerance for pixel comparison
	ChatColorTolerance = 40   // Color tolerance when isolating chat text for OCR
	AnchorROIMargin    = 40   // Margin around the last anchor position for the fast path
	MaxFailRate        = 0.10 // Share of template pixels allowed to differ
)

// Main Timer
const (
	HardModeAttack   = 21 * time.Second // "Tear them apart" in hard mode
	NormalModeAttack = 36 * time.Second // "Tear them apart" in normal mode
	SpecialPhase     = 14 * time.Second // "Tumeken's heart"

	CancelWindow     = 10 * time.Second // "Enough" only cancels inside this window
	AlertLeadSeconds = 6                // AlertLive starts this many seconds before zero
	ResetDelay       = 2 * time.Second  // Hold after the alert reaches zero
	CancelResetDelay = 3 * time.Second  // Hold on "Scarabs Skipped"

	SafeAboveSeconds    = 10 // Countdown tier: safe above this
	CautionAboveSeconds = 5  // Countdown tier: caution above this, urgent otherwise
)

// Mechanic Alerts
const (
	PrayerAlertDuration      = 6 * time.Second
	TriColourDuration        = 3 * time.Second
	AmascutAttackingDuration = 3 * time.Second
	DirectionalDuration      = 4 * time.Second
	BendKneeDuration         = 3 * time.Second
	GreenFlipDuration        = 3 * time.Second
	KillDogsDuration         = 9 * time.Second
	SubjugationDuration      = 8 * time.Second
	NameCallingDelay         = 3600 * time.Millisecond
	NameCallingVisible       = 5 * time.Second
	ScarabIdleTimeout        = 12 * time.Second
	ScarabCompleteDuration   = 5 * time.Second

	ScarabsPerPhase = 4
)

// Journal
const (
	JournalBuffer = 256 // Entries queued before the journal starts dropping
)
