package game

// Log messages
const (
	LogMsgStarted          = "Garden started"
	LogMsgPlanted          = "Seed planted"
	LogMsgResidentArrived  = "Resident moved in"
	LogMsgSpawnUnresolved  = "Home attracts an unknown resident type"
	LogMsgTickFailed       = "Growth tick failed"
	LogMsgQuestTickFailed  = "Quest tick failed"
	LogMsgMarkWateredFail  = "Failed to record today's watering"
	LogMsgDiscoveriesFound = "New discoveries recorded"
)
