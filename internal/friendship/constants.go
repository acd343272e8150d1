package friendship

// ============================================================================
// Levels
// ============================================================================

// Level keys, derived purely from the score
const (
	LevelStranger     = "stranger"
	LevelAcquaintance = "acquaintance"
	LevelFriend       = "friend"
	LevelBestFriend   = "bestfriend"
	LevelFamily       = "family"
)

// ============================================================================
// Milestone Rewards
// ============================================================================

const (
	RewardGreetingUnlock = "greeting_unlock"
	RewardGiftUnlock     = "gift_unlock"
	RewardPlayUnlock     = "play_unlock"
	RewardNamingUnlock   = "naming_unlock"
)

// ============================================================================
// Gifts and Visits
// ============================================================================

const (
	// LikedGiftDelta replaces the plain gift delta when the resident type favors the item
	LikedGiftDelta = 15

	// VisitStreakStep is the number of consecutive visit days per extra bonus point
	VisitStreakStep = 7
	// VisitStreakBonusMax caps the streak bonus
	VisitStreakBonusMax = 3

	// MaxNameLength is the longest name a resident accepts, in runes
	MaxNameLength = 20
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgInteraction      = "Friendship interaction applied"
	LogMsgMilestoneReached = "Friendship milestone reached"
	LogMsgResidentNamed    = "Resident named"
	LogMsgLimitReached     = "Daily interaction limit reached"
)
