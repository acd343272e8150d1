package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(PlantStageChanged, func(ctx context.Context, evt Event) error {
		assert.Equal(t, PlantStageChanged, evt.Type)
		payload, err := Payload[PlantStageChangedPayloadV1](evt)
		require.NoError(t, err)
		assert.Equal(t, 2, payload.NewStage)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), New(PlantStageChanged, PlantStageChangedPayloadV1{
		PlantID:  "p1",
		OldStage: 1,
		NewStage: 2,
		Source:   SourceTick,
	}))

	require.NoError(t, err)
	assert.True(t, handled)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0

	handler := func(ctx context.Context, evt Event) error {
		count++
		return nil
	}

	bus.Subscribe(QuestCompleted, handler)
	bus.Subscribe(QuestCompleted, handler)

	require.NoError(t, bus.Publish(context.Background(), New(QuestCompleted, QuestPayloadV1{})))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(DailyRollover, func(ctx context.Context, evt Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), New(DailyRollover, DailyRolloverPayloadV1{}))
	assert.Error(t, err)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), New(SaveWritten, SaveWrittenPayloadV1{})))
}

func TestEmit_SwallowsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	bus.Subscribe(DiscoveryMade, func(ctx context.Context, evt Event) error {
		calls++
		return errors.New("listener broke")
	})

	assert.NotPanics(t, func() {
		Emit(context.Background(), bus, New(DiscoveryMade, DiscoveryMadePayloadV1{DiscoveryID: "forest"}))
		Emit(context.Background(), nil, New(DiscoveryMade, DiscoveryMadePayloadV1{}))
	})
	assert.Equal(t, 1, calls)
}

func TestPayload_FromMap(t *testing.T) {
	evt := New(QuestCompleted, map[string]interface{}{
		"quest_id":   "q1",
		"quest_type": "gift",
	})

	payload, err := Payload[QuestPayloadV1](evt)
	require.NoError(t, err)
	assert.Equal(t, "q1", payload.QuestID)
	assert.Equal(t, "gift", payload.QuestType)

	_, err = Payload[QuestPayloadV1](Event{Type: QuestCompleted})
	assert.Error(t, err)

	_, err = Payload[QuestPayloadV1](New(QuestCompleted, "not an object"))
	assert.Error(t, err)
}

func TestGetMetadataValue(t *testing.T) {
	evt := Event{Metadata: map[string]interface{}{"slot": "main"}}
	assert.Equal(t, "main", evt.GetMetadataValue("slot"))
	assert.Nil(t, Event{}.GetMetadataValue("slot"))
}
