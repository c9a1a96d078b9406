package constants

// Display texts shown in the timer and status regions.
const (
	MsgPrayMelee  = "Pray Melee!"
	MsgPrayRanged = "Pray Ranged!"
	MsgPrayMagic  = "Pray Magic!"

	MsgTriColourAttack  = "Tri-Colour Attack Incoming!"
	MsgAmascutAttacking = "Amascut attacking Tumeken!"
	MsgAmascutSubtext   = "Kill dogs & watch for your name!"
	MsgBendKneeAttack   = "Bend the Knee Attack Incoming!"

	MsgNameCalling         = "NAME-CALLING MECHANIC!"
	MsgNameCallingCrondis  = "NAME-CALLING MECHANIC! NO SKULLS!"
	MsgNameCallingScabaras = "NAME-CALLING MECHANIC! THROW SCARABS!"
	MsgMechanicActive      = "Mechanic Active"

	MsgNWVokes = "NW Vokes!"
	MsgSWVokes = "SW Vokes!"
	MsgNEVokes = "NE Vokes! THROW SCARABS!"
	MsgSEVokes = "SE Vokes!"

	MsgGreen1      = "Green 1 Active!"
	MsgGreen2      = "Green 2 Active!"
	MsgGreen1Timer = "GREEN 1"
	MsgGreen2Timer = "GREEN 2"

	MsgKillDogs         = "KILL DOGS NOW!"
	MsgKillDogsSubtext  = "Amascut attacking Tumeken"
	MsgStandBehind      = "STAND BEHIND AMASCUT, KILL MINIONS!"
	MsgStandBehindTimer = "STAND BEHIND\nAMASCUT"

	MsgAllScarabs    = "All scarabs collected!"
	MsgScarabsFormat = "Scarabs: %d/%d\nTarget hits: %d"

	MsgCountdownFormat   = "Detonation in:\n%d"
	MsgUseAbilityFormat  = "USE BARRICADE!\n(%ds left)"
	MsgAbilityReady      = "Ability ready!"
	MsgBarricadeIncoming = "Barricade incoming..."
	MsgScarabsSkipped    = "Scarabs Skipped"
	MsgTimerCanceled     = "Timer canceled"

	MsgMonitoringChat  = "Monitoring chat..."
	MsgLookingForChat  = "Looking for chatbox..."
	MsgReadyMonitoring = "Ready - Monitoring chat..."
	MsgSearching       = "Searching..."
	MsgInitializing    = "Initializing..."
	MsgHardModeTag     = " [HARD MODE]"
	MsgNormalModeTag   = " [NORMAL MODE]"

	MsgErrNotFound   = "Error: Can't find the game client"
	MsgErrPermission = "Error: No permission - allow screen capture"
	MsgErrNoAnchor   = "Error: No chat anchor - crop one in Tools"
	MsgErrUnknown    = "Unknown error - check log"
)
