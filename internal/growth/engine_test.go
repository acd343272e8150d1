package growth

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/watering"
)

var start = time.Date(2026, 4, 1, 8, 0, 0, 0, time.Local)

func newEngine() (*Engine, *clock.SimulatedClock, *event.MemoryBus) {
	clk := clock.NewSimulatedClock(start)
	bus := event.NewMemoryBus()
	cat := catalog.Default()
	return NewEngine(cat, clk, watering.NewTracker(cat, clk, bus, 0), bus), clk, bus
}

func seedling(id, variety string) *domain.Plant {
	return &domain.Plant{ID: id, Variety: variety, PlantedAt: start, LastWatered: start}
}

func TestApplyOfflineGrowth_FourHours(t *testing.T) {
	e, clk, bus := newEngine()

	var sources []string
	bus.Subscribe(event.PlantStageChanged, func(_ context.Context, evt event.Event) error {
		sources = append(sources, evt.Payload.(event.PlantStageChangedPayloadV1).Source)
		return nil
	})

	p := seedling("p1", "flower_red")
	clk.AdvanceHours(4)

	ups := e.ApplyOfflineGrowth(context.Background(), p, 4*time.Hour)

	assert.Equal(t, 2, ups)
	assert.Equal(t, domain.StageBud, p.Stage)
	assert.InDelta(t, 33.333, p.StageProgress, 0.01)
	assert.Equal(t, []string{event.SourceOffline}, sources)
	assert.Equal(t, 67, e.TotalProgress(p))
	assert.Equal(t, 2*time.Hour, e.TimeToComplete(p))
}

func TestApplyOfflineGrowth_CappedByWater(t *testing.T) {
	tests := []struct {
		name         string
		offline      time.Duration
		wantStage    int
		wantProgress float64
	}{
		// 12h interval, 10h already since watering: 2h of budget left
		{"capped at remaining water", 10 * time.Hour, domain.StageSprout, 50},
		// already thirsty on return
		{"thirsty plant does not grow", 14 * time.Hour, domain.StageSeed, 0},
		{"zero offline", 0, domain.StageSeed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clk, _ := newEngine()
			p := seedling("p1", "flower_red")
			clk.Advance(tt.offline)

			e.ApplyOfflineGrowth(context.Background(), p, tt.offline)

			assert.Equal(t, tt.wantStage, p.Stage)
			assert.InDelta(t, tt.wantProgress, p.StageProgress, 0.001)
		})
	}
}

func TestApplyOfflineGrowth_LongGapIsClosedForm(t *testing.T) {
	e, clk, _ := newEngine()
	p := seedling("p1", "pond")
	twoWeeks := 14 * 24 * time.Hour
	clk.Advance(twoWeeks)

	began := time.Now()
	ups := e.ApplyOfflineGrowth(context.Background(), p, twoWeeks)

	assert.Equal(t, 3, ups)
	assert.True(t, p.IsComplete())
	assert.Zero(t, p.StageProgress)
	assert.Less(t, time.Since(began), 100*time.Millisecond)

	assert.Zero(t, e.ApplyOfflineGrowth(context.Background(), p, twoWeeks), "complete plants stay put")
}

func TestAdvance_MatchesOfflineCatchUp(t *testing.T) {
	e, clk, _ := newEngine()
	stepped := seedling("a", "flower_red")
	caught := seedling("b", "flower_red")

	changes := 0
	for range 48 {
		clk.Advance(5 * time.Minute)
		if e.Advance(context.Background(), stepped, 5*time.Minute) {
			changes++
		}
	}
	e.ApplyOfflineGrowth(context.Background(), caught, 4*time.Hour)

	assert.Equal(t, 2, changes)
	assert.Equal(t, caught.Stage, stepped.Stage)
	assert.InDelta(t, caught.StageProgress, stepped.StageProgress, 0.001)
}

func TestAdvance_CrossesSeveralStagesInOneCall(t *testing.T) {
	e, clk, _ := newEngine()
	p := seedling("p1", "flower_red")
	clk.AdvanceHours(3.5)

	assert.True(t, e.Advance(context.Background(), p, 210*time.Minute))
	assert.Equal(t, domain.StageBud, p.Stage)
	assert.InDelta(t, 16.667, p.StageProgress, 0.01)
}

func TestAdvance_NoGrowthWhenThirstyOrComplete(t *testing.T) {
	e, clk, _ := newEngine()
	thirsty := seedling("a", "flower_red")
	done := seedling("b", "flower_red")
	done.Stage = domain.StageComplete
	clk.AdvanceHours(13)

	assert.False(t, e.Advance(context.Background(), thirsty, time.Hour))
	assert.Zero(t, thirsty.StageProgress)
	assert.False(t, e.Advance(context.Background(), done, time.Hour))
	assert.Equal(t, domain.StageComplete, done.Stage)
}

func TestAdvance_StageMonotonicAndBounded(t *testing.T) {
	e, clk, _ := newEngine()
	r := rand.New(rand.NewPCG(1, 2))
	plants := []*domain.Plant{
		seedling("a", "flower_red"),
		seedling("b", "pond"),
		seedling("c", "vegetable_carrot"),
		seedling("d", "mystery_sprout"),
	}

	for range 500 {
		step := time.Duration(r.Int64N(int64(20 * time.Minute)))
		clk.Advance(step)
		for _, p := range plants {
			before := p.Stage
			e.Advance(context.Background(), p, step)
			require.GreaterOrEqual(t, p.Stage, before)
			require.LessOrEqual(t, p.Stage, domain.StageComplete)
			require.GreaterOrEqual(t, p.StageProgress, 0.0)
			require.Less(t, p.StageProgress, domain.ProgressComplete)
			if r.IntN(10) == 0 {
				p.LastWatered = clk.Now()
			}
		}
	}
}

func TestTick_ReturnsChangedPlants(t *testing.T) {
	e, clk, _ := newEngine()
	fast := seedling("fast", "grass")
	slow := seedling("slow", "tree_large")
	clk.Advance(40 * time.Minute)

	changed := e.Tick(context.Background(), []*domain.Plant{fast, slow}, 40*time.Minute)

	require.Len(t, changed, 1)
	assert.Equal(t, "fast", changed[0].ID)
}

func TestInfoAndSummary(t *testing.T) {
	e, clk, _ := newEngine()
	growing := seedling("a", "flower_red")
	growing.Stage = domain.StageSprout
	growing.StageProgress = 50
	done := seedling("b", "flower_red")
	done.Stage = domain.StageComplete
	clk.AdvanceHours(12)

	info := e.Info(growing)
	assert.Equal(t, "sprout", info.StageName)
	assert.True(t, info.NeedsWater)
	assert.False(t, info.Complete)
	assert.Equal(t, 4*time.Hour, info.TimeToComplete)
	assert.Equal(t, 33, info.TotalProgress)

	doneInfo := e.Info(done)
	assert.Equal(t, "complete", doneInfo.StageName)
	assert.Equal(t, 100, doneInfo.TotalProgress)
	assert.Zero(t, doneInfo.TimeToComplete)

	s := e.Summary([]*domain.Plant{growing, done})
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.NeedingWater)
	assert.Equal(t, 1, s.ByStage[domain.StageSprout])
	assert.Equal(t, 1, s.ByStage[domain.StageComplete])
}
