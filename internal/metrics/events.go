package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// EventMetricsCollector turns game notifications into metrics. Handlers run inside
// the publisher's save update, so they only touch counters.
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Types lists the notifications the collector records
func (e *EventMetricsCollector) Types() []event.Type {
	return []event.Type{
		event.PlantPlanted,
		event.PlantStageChanged,
		event.PlantWatered,
		event.ResidentArrived,
		event.FriendshipChanged,
		event.FriendshipMilestone,
		event.QuestGenerated,
		event.QuestCompletable,
		event.QuestCompleted,
		event.DailyRollover,
		event.DailyBonusClaimed,
		event.DiscoveryMade,
		event.SaveWritten,
	}
}

// Register subscribes to all recorded notifications
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range e.Types() {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent updates metrics for one notification
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.PlantPlanted:
		var p event.PlantPlantedPayloadV1
		if p, err = event.Payload[event.PlantPlantedPayloadV1](evt); err == nil {
			PlantsPlanted.WithLabelValues(p.Variety).Inc()
		}

	case event.PlantStageChanged:
		var p event.PlantStageChangedPayloadV1
		if p, err = event.Payload[event.PlantStageChangedPayloadV1](evt); err == nil {
			StageChanges.WithLabelValues(p.Source).Add(float64(p.NewStage - p.OldStage))
		}

	case event.PlantWatered:
		var p event.PlantWateredPayloadV1
		if p, err = event.Payload[event.PlantWateredPayloadV1](evt); err == nil {
			PlantsWatered.WithLabelValues(strconv.FormatBool(p.Batch)).Inc()
		}

	case event.ResidentArrived:
		var p event.ResidentArrivedPayloadV1
		if p, err = event.Payload[event.ResidentArrivedPayloadV1](evt); err == nil {
			ResidentsArrived.WithLabelValues(p.ResidentType).Inc()
		}

	case event.FriendshipChanged:
		var p event.FriendshipChangedPayloadV1
		if p, err = event.Payload[event.FriendshipChangedPayloadV1](evt); err == nil {
			Interactions.WithLabelValues(p.Action).Inc()
		}

	case event.FriendshipMilestone:
		var p event.FriendshipMilestonePayloadV1
		if p, err = event.Payload[event.FriendshipMilestonePayloadV1](evt); err == nil {
			FriendshipMilestones.WithLabelValues(p.Level).Inc()
		}

	case event.QuestGenerated:
		Quests.WithLabelValues(QuestStateGenerated).Inc()
	case event.QuestCompletable:
		Quests.WithLabelValues(QuestStateCompletable).Inc()
	case event.QuestCompleted:
		Quests.WithLabelValues(QuestStateCompleted).Inc()

	case event.DailyRollover:
		var p event.DailyRolloverPayloadV1
		if p, err = event.Payload[event.DailyRolloverPayloadV1](evt); err == nil {
			DailyRollovers.Inc()
			LoginStreak.Set(float64(p.Streak))
		}

	case event.DailyBonusClaimed:
		BonusClaims.Inc()

	case event.DiscoveryMade:
		var p event.DiscoveryMadePayloadV1
		if p, err = event.Payload[event.DiscoveryMadePayloadV1](evt); err == nil {
			Discoveries.WithLabelValues(p.DiscoveryID).Inc()
		}

	case event.SaveWritten:
		var p event.SaveWrittenPayloadV1
		if p, err = event.Payload[event.SaveWrittenPayloadV1](evt); err == nil {
			SaveWrites.WithLabelValues(strconv.FormatBool(p.Retried)).Inc()
			SaveBytes.WithLabelValues(p.Slot).Set(float64(p.Bytes))
		}
	}

	if err != nil {
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
