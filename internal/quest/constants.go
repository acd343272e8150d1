package quest

// DefaultGenerationChance is the per-tick probability that an eligible resident hands out a quest
const DefaultGenerationChance = 0.1

// Log messages
const (
	LogMsgQuestGenerated   = "Quest generated"
	LogMsgQuestCompleted   = "Quest completed"
	LogMsgQuestCancelled   = "Quest cancelled"
	LogMsgQuestCompletable = "Quest is completable"
	LogMsgGenerateFailed   = "Failed to generate quest"
	LogMsgResidentGone     = "Quest owner no longer lives here"
)

// Error messages
const (
	ErrMsgNoTemplates = "no quest templates for resident type"
)
