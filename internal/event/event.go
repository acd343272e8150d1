package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Garden event types
const (
	PlantStageChanged   Type = domain.EventTypePlantStageChanged
	PlantWatered        Type = domain.EventTypePlantWatered
	PlantPlanted        Type = domain.EventTypePlantPlanted
	ResidentArrived     Type = domain.EventTypeResidentArrived
	FriendshipChanged   Type = domain.EventTypeFriendshipChanged
	FriendshipMilestone Type = domain.EventTypeFriendshipMilestone
	QuestGenerated      Type = domain.EventTypeQuestGenerated
	QuestCompletable    Type = domain.EventTypeQuestCompletable
	QuestCompleted      Type = domain.EventTypeQuestCompleted
	DailyRollover       Type = domain.EventTypeDailyRollover
	DailyBonusClaimed   Type = domain.EventTypeDailyBonusClaimed
	DiscoveryMade       Type = domain.EventTypeDiscoveryMade
	SaveWritten         Type = domain.EventTypeSaveWritten
)

// Typed event payloads for type safety

// PlantStageChangedPayloadV1 is the typed payload for stage change events
type PlantStageChangedPayloadV1 struct {
	PlantID  string `json:"plant_id"`
	Variety  string `json:"variety"`
	OldStage int    `json:"old_stage"`
	NewStage int    `json:"new_stage"`
	Source   string `json:"source"` // "tick" or "offline"
}

// PlantWateredPayloadV1 is the typed payload for watering events
type PlantWateredPayloadV1 struct {
	PlantID string `json:"plant_id"`
	Variety string `json:"variety"`
	Batch   bool   `json:"batch"`
}

// PlantPlantedPayloadV1 is the typed payload for planting events
type PlantPlantedPayloadV1 struct {
	PlantID  string `json:"plant_id"`
	SeedKind string `json:"seed_kind"`
	Variety  string `json:"variety"`
	Area     string `json:"area"`
}

// ResidentArrivedPayloadV1 is the typed payload for resident arrivals
type ResidentArrivedPayloadV1 struct {
	ResidentID   string `json:"resident_id"`
	ResidentType string `json:"resident_type"`
	HomeID       string `json:"home_id"`
	Area         string `json:"area"`
}

// FriendshipChangedPayloadV1 is the typed payload for applied interactions
type FriendshipChangedPayloadV1 struct {
	ResidentID string `json:"resident_id"`
	Action     string `json:"action"`
	Delta      int    `json:"delta"`
	NewScore   int    `json:"new_score"`
}

// FriendshipMilestonePayloadV1 is the typed payload for milestone events
type FriendshipMilestonePayloadV1 struct {
	ResidentID   string `json:"resident_id"`
	ResidentType string `json:"resident_type"`
	Threshold    int    `json:"threshold"`
	Level        string `json:"level"`
	Reward       string `json:"reward"`
}

// QuestPayloadV1 is the typed payload shared by quest lifecycle events
type QuestPayloadV1 struct {
	QuestID    string `json:"quest_id"`
	ResidentID string `json:"resident_id"`
	QuestType  string `json:"quest_type"`
	Target     string `json:"target"`
}

// DailyRolloverPayloadV1 is the typed payload for day rollover events
type DailyRolloverPayloadV1 struct {
	Date      string `json:"date"`
	Streak    int    `json:"streak"`
	Continued bool   `json:"continued"`
}

// DailyBonusClaimedPayloadV1 is the typed payload for login bonus claims
type DailyBonusClaimedPayloadV1 struct {
	Day   int    `json:"day"`
	Seeds int    `json:"seeds"`
	Bonus string `json:"bonus,omitempty"`
}

// DiscoveryMadePayloadV1 is the typed payload for first-time discoveries
type DiscoveryMadePayloadV1 struct {
	DiscoveryID string `json:"discovery_id"`
	Area        string `json:"area"`
}

// SaveWrittenPayloadV1 is the typed payload for successful saves
type SaveWrittenPayloadV1 struct {
	Slot    string `json:"slot"`
	Bytes   int    `json:"bytes"`
	Retried bool   `json:"retried"`
}

// New builds a versioned event
func New(eventType Type, payload interface{}) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously in
// subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes a notification. Subscriber failures are logged and never reach the
// caller, so a broken listener cannot fail a game action. A nil bus is a no-op.
func Emit(ctx context.Context, bus Bus, evt Event) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
	}
}
