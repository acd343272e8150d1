package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "plant.stage_changed")
const (
	// EventTypePlantStageChanged is published when a plant moves to the next stage
	EventTypePlantStageChanged = "plant.stage_changed"

	// EventTypePlantWatered is published for every applied watering
	EventTypePlantWatered = "plant.watered"

	// EventTypePlantPlanted is published when a seed is planted
	EventTypePlantPlanted = "plant.planted"

	// EventTypeResidentArrived is published when a grown home attracts a resident
	EventTypeResidentArrived = "resident.arrived"

	// EventTypeFriendshipChanged is published for every applied interaction
	EventTypeFriendshipChanged = "friendship.changed"

	// EventTypeFriendshipMilestone is published when a score crosses a tier boundary upward
	EventTypeFriendshipMilestone = "friendship.milestone_reached"

	// EventTypeQuestGenerated is published when a resident hands out a quest
	EventTypeQuestGenerated = "quest.generated"

	// EventTypeQuestCompletable is published on each tick for quests whose predicate holds
	EventTypeQuestCompletable = "quest.completable"

	// EventTypeQuestCompleted is published after a completion is committed
	EventTypeQuestCompleted = "quest.completed"

	// EventTypeDailyRollover is published when a new calendar day is detected
	EventTypeDailyRollover = "daily.rollover"

	// EventTypeDailyBonusClaimed is published when the login bonus is claimed
	EventTypeDailyBonusClaimed = "daily.bonus_claimed"

	// EventTypeDiscoveryMade is published the first time a recipe is found
	EventTypeDiscoveryMade = "discovery.made"

	// EventTypeSaveWritten is published after a successful save
	EventTypeSaveWritten = "save.written"
)
