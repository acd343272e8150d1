package growth

// Stage display names, indexed by stage
var stageNames = [...]string{"seed", "sprout", "bud", "complete"}

// Log messages
const (
	LogMsgStageChanged  = "Plant advanced a stage"
	LogMsgOfflineGrowth = "Applied offline growth"
)
