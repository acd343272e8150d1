package watering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
)

var start = time.Date(2026, 4, 1, 12, 0, 0, 0, time.Local)

func newTracker() (*Tracker, *clock.SimulatedClock) {
	clk := clock.NewSimulatedClock(start)
	return NewTracker(catalog.Default(), clk, event.NewMemoryBus(), 0), clk
}

func plant(id, variety string, wateredAgo time.Duration, stage int) *domain.Plant {
	return &domain.Plant{
		ID:          id,
		Variety:     variety,
		PlantedAt:   start.Add(-48 * time.Hour),
		LastWatered: start.Add(-wateredAgo),
		Stage:       stage,
	}
}

func TestNeedsWater_Boundary(t *testing.T) {
	tr, clk := newTracker()
	p := plant("p1", "flower_red", 0, 0)

	clk.Advance(12*time.Hour - time.Millisecond)
	assert.False(t, tr.NeedsWater(p), "one millisecond before the interval")

	clk.Advance(time.Millisecond)
	assert.True(t, tr.NeedsWater(p), "exactly at the interval")
}

func TestNeedsWater_Table(t *testing.T) {
	tr, _ := newTracker()

	tests := []struct {
		name  string
		plant *domain.Plant
		want  bool
	}{
		{"fresh", plant("a", "flower_red", time.Hour, 0), false},
		{"thirsty", plant("b", "flower_red", 13*time.Hour, 1), true},
		{"complete never needs water", plant("c", "flower_red", 100*time.Hour, domain.StageComplete), false},
		{"water feature never needs water", plant("d", "pond", 1000*time.Hour, 0), false},
		{"unknown variety uses default interval", plant("e", "mystery_sprout", 12*time.Hour, 0), true},
		{"short interval variety", plant("f", "vegetable_carrot", 8*time.Hour, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.NeedsWater(tt.plant))
		})
	}
}

func TestWater_Reasons(t *testing.T) {
	tr, clk := newTracker()
	ctx := context.Background()

	_, err := tr.Water(ctx, plant("done", "flower_red", 20*time.Hour, domain.StageComplete))
	assert.ErrorIs(t, err, domain.ErrAlreadyComplete)

	_, err = tr.Water(ctx, plant("wet", "flower_red", time.Hour, 0))
	assert.ErrorIs(t, err, domain.ErrNotNeeded)

	p := plant("dry", "flower_red", 20*time.Hour, 1)
	res, err := tr.Water(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, start, p.LastWatered)
	assert.Equal(t, "dry", res.PlantID)

	other := plant("dry2", "flower_red", 20*time.Hour, 1)
	clk.Advance(200 * time.Millisecond)
	_, err = tr.Water(ctx, other)
	assert.ErrorIs(t, err, domain.ErrCooldownActive)

	var cd CooldownError
	require.True(t, errors.As(err, &cd))
	assert.Equal(t, 300*time.Millisecond, cd.Remaining)
	assert.Equal(t, start.Add(-20*time.Hour), other.LastWatered, "rejected watering leaves the plant alone")

	_, err = tr.Water(ctx, other, WithCooldownBypass())
	assert.NoError(t, err)

	clk.Advance(500 * time.Millisecond)
	_, err = tr.Water(ctx, plant("dry3", "flower_red", 20*time.Hour, 0))
	assert.NoError(t, err)
}

func TestWater_FailedAttemptDoesNotStartCooldown(t *testing.T) {
	tr, _ := newTracker()
	ctx := context.Background()

	_, err := tr.Water(ctx, plant("wet", "flower_red", time.Hour, 0))
	require.ErrorIs(t, err, domain.ErrNotNeeded)

	_, err = tr.Water(ctx, plant("dry", "flower_red", 20*time.Hour, 0))
	assert.NoError(t, err)
}

func TestApply_ReleaseReturnsCooldown(t *testing.T) {
	tr, _ := newTracker()
	ctx := context.Background()

	watered := 0
	bus := event.NewMemoryBus()
	bus.Subscribe(event.PlantWatered, func(context.Context, event.Event) error {
		watered++
		return nil
	})
	tr.bus = bus

	p := plant("a", "flower_red", 20*time.Hour, 0)
	res, err := tr.Apply(ctx, p)
	require.NoError(t, err)
	assert.True(t, start.Equal(p.LastWatered))
	assert.Zero(t, watered, "nothing is announced before commit")

	_, err = tr.Apply(ctx, plant("b", "flower_red", 20*time.Hour, 0))
	assert.ErrorIs(t, err, domain.ErrCooldownActive, "the window is reserved")

	tr.Release(res)
	res, err = tr.Apply(ctx, plant("b", "flower_red", 20*time.Hour, 0))
	require.NoError(t, err)

	tr.Commit(ctx, res)
	assert.Equal(t, 1, watered)
}

func TestWaterAll(t *testing.T) {
	tr, _ := newTracker()
	ctx := context.Background()

	bus := event.NewMemoryBus()
	batch := 0
	bus.Subscribe(event.PlantWatered, func(_ context.Context, e event.Event) error {
		if e.Payload.(event.PlantWateredPayloadV1).Batch {
			batch++
		}
		return nil
	})
	tr.bus = bus

	plants := []*domain.Plant{
		plant("a", "flower_red", 13*time.Hour, 0),
		plant("b", "flower_red", 14*time.Hour, 2),
		plant("c", "flower_red", time.Hour, 1),
		plant("d", "flower_red", 30*time.Hour, domain.StageComplete),
		plant("e", "pond", 30*time.Hour, 0),
	}

	assert.Equal(t, 2, tr.WaterAll(ctx, plants))
	assert.Equal(t, 2, batch)
	assert.Equal(t, 0, tr.WaterAll(ctx, plants))
}

func TestStatus(t *testing.T) {
	tr, _ := newTracker()

	plants := []*domain.Plant{
		plant("a", "flower_red", 13*time.Hour, 0),
		plant("b", "flower_red", 10*time.Hour, 0),
		plant("c", "flower_red", 4*time.Hour, 0),
		plant("d", "pond", 4*time.Hour, 0),
	}

	s := tr.Status(plants)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.NeedingWater)
	assert.False(t, s.AllWatered)
	require.NotNil(t, s.NextWateringAt)
	assert.Equal(t, start.Add(2*time.Hour), *s.NextWateringAt)
	assert.Equal(t, 2*time.Hour, s.NextWateringIn)

	empty := tr.Status(nil)
	assert.True(t, empty.AllWatered)
	assert.Nil(t, empty.NextWateringAt)
}

func TestInfo(t *testing.T) {
	tr, _ := newTracker()

	info := tr.Info(plant("a", "flower_red", 3*time.Hour, 1))
	assert.False(t, info.NeedsWater)
	assert.Equal(t, 9*time.Hour, info.UntilNeeded)
	assert.Equal(t, 3*time.Hour, info.SinceWatered)

	thirsty := tr.Info(plant("b", "flower_red", 15*time.Hour, 1))
	assert.True(t, thirsty.CanBeWatered)
	assert.Zero(t, thirsty.UntilNeeded)

	pond := tr.Info(plant("c", "pond", 15*time.Hour, 1))
	assert.True(t, pond.NeverNeedsWater)
	assert.False(t, pond.NeedsWater)
}
