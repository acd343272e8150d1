package domain

import "time"

// Growth stage constants
const (
	StageSeed     = 0
	StageSprout   = 1
	StageBud      = 2
	StageComplete = 3 // terminal, no more water or growth

	// StageCount is the number of stages that carry a duration (0, 1 and 2)
	StageCount = 3

	// ProgressComplete is the progress value at which a stage finishes
	ProgressComplete = 100.0
)

// Default growth timings, used when a variety does not override them
const (
	DefaultStageHours0        = 1.0
	DefaultStageHours1        = 2.0
	DefaultStageHours2        = 3.0
	DefaultWaterIntervalHours = 12.0
)

// Friendship bounds and thresholds
const (
	FriendshipMin = 0
	FriendshipMax = 100

	// FriendshipQuestThreshold is the minimum score for a resident to hand out quests
	FriendshipQuestThreshold = 25

	// PetDailyLimit is the number of successful pets allowed per resident per day
	PetDailyLimit = 3
	// GiftDailyLimit is the number of gifts a resident accepts per day
	GiftDailyLimit = 1
)

// Interaction kinds accepted by the friendship ledger
const (
	ActionVisit   = "visit"
	ActionGift    = "gift"
	ActionQuest   = "quest"
	ActionPlay    = "play"
	ActionPet     = "pet"
	ActionTalk    = "talk"
	ActionSpecial = "special"
)

// Quest types
const (
	QuestTypeGrow     = "grow"
	QuestTypeCollect  = "collect"
	QuestTypeBuild    = "build"
	QuestTypeVisit    = "visit"
	QuestTypeGift     = "gift"
	QuestTypeDiscover = "discover"
)

// Quest target wildcards
const (
	QuestTargetAnyPlant = "any_plant"
	QuestTargetAny      = "any"
)

// Seed kinds
const (
	SeedGreen  = "green"
	SeedBrown  = "brown"
	SeedPink   = "pink"
	SeedBlue   = "blue"
	SeedYellow = "yellow"
	SeedPurple = "purple"
	SeedGold   = "gold"
)

// Area names
const (
	AreaGarden = "garden"
	AreaForest = "forest"
	AreaLake   = "lake"
	AreaCave   = "cave"
	AreaSky    = "sky"
	AreaSecret = "secret"
)

// Time-of-day buckets used by resident schedules
const (
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayEvening   = "evening"
	TimeOfDayNight     = "night"
)

// Save document identity
const (
	// SaveVersion is the current schema version of the save document
	SaveVersion = 2

	// AppName tags exported documents so foreign files can be rejected
	AppName    = "mahounoniwa"
	AppVersion = "1.0.0"
)

// DateKeyLayout formats calendar-date keys (daily visitor cache, schedules)
const DateKeyLayout = "2006-01-02"

// WaterCooldown is the default debounce window between two manual waterings
const WaterCooldown = 500 * time.Millisecond

// AllAreas lists every area in unlock order
var AllAreas = []string{AreaGarden, AreaForest, AreaLake, AreaCave, AreaSky, AreaSecret}

// AllSeedKinds lists every seed kind in rarity order
var AllSeedKinds = []string{SeedGreen, SeedBrown, SeedPink, SeedBlue, SeedYellow, SeedPurple, SeedGold}
