package daily

// BonusCycleDays is the length of the login bonus cycle
const BonusCycleDays = 7

// Bonus item tags credited alongside seeds on the last days of a cycle
const (
	BonusRareSeed      = "rare_seed"
	BonusLegendarySeed = "legendary_seed"
)

// Visitor ids
const (
	VisitorSeedShop  = "seed_shop"
	VisitorTraveler  = "traveler"
	VisitorWizard    = "wizard"
	VisitorFairyKing = "fairy_king"
	VisitorMystery   = "mystery"
)

// scheduleVariation is the chance, out of scheduleVariationBase, that a daytime slot
// departs from the resident type's usual activity
const (
	scheduleVariation     = 1
	scheduleVariationBase = 4
)

// Log messages
const (
	LogMsgRollover      = "New day started"
	LogMsgBonusClaimed  = "Login bonus claimed"
	LogMsgVisitorRolled = "Daily visitor rolled"
	LogMsgMarkedWatered = "Marked garden watered today"
	LogMsgFirstLogin    = "First login recorded"
)
