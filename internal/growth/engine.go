package growth

import (
	"context"
	"math"
	"time"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// WaterGate tells the engine whether and for how long a plant may keep growing
type WaterGate interface {
	NeedsWater(p *domain.Plant) bool
	TimeUntilThirsty(p *domain.Plant) (time.Duration, bool)
}

// Info is a read-only view of a plant's growth
type Info struct {
	Stage          int
	StageName      string
	StageProgress  float64
	TotalProgress  int
	TimeToComplete time.Duration
	NeedsWater     bool
	Complete       bool
}

// Summary counts plants by growth state
type Summary struct {
	Total        int
	ByStage      [domain.StageComplete + 1]int
	Completed    int
	NeedingWater int
}

// Engine advances plant growth over elapsed time
type Engine struct {
	catalog *catalog.Catalog
	clock   clock.Clock
	water   WaterGate
	bus     event.Bus
}

// NewEngine creates a growth engine
func NewEngine(cat *catalog.Catalog, clk clock.Clock, water WaterGate, bus event.Bus) *Engine {
	return &Engine{
		catalog: cat,
		clock:   clk,
		water:   water,
		bus:     bus,
	}
}

// Advance grows a plant by elapsed and reports whether its stage changed. Thirsty and
// complete plants do not grow. Growth stops at the moment the plant runs out of water,
// and an elapsed span covering several stages completes all of them.
func (e *Engine) Advance(ctx context.Context, p *domain.Plant, elapsed time.Duration) bool {
	if p.IsComplete() || elapsed <= 0 || e.water.NeedsWater(p) {
		return false
	}
	oldStage := p.Stage
	ups := e.grow(p, e.capByWater(p, elapsed))
	if ups == 0 {
		return false
	}
	e.publishStageChange(ctx, p, oldStage, event.SourceTick)
	return true
}

// ApplyOfflineGrowth catches a plant up on an offline gap in closed form and returns the
// number of stages completed. The budget is the offline time, capped by how long the
// plant can still go without water.
func (e *Engine) ApplyOfflineGrowth(ctx context.Context, p *domain.Plant, offline time.Duration) int {
	if p.IsComplete() || offline <= 0 || e.water.NeedsWater(p) {
		return 0
	}
	budget := e.capByWater(p, offline)
	if budget <= 0 {
		return 0
	}

	oldStage := p.Stage
	ups := e.grow(p, budget)
	if ups > 0 {
		e.publishStageChange(ctx, p, oldStage, event.SourceOffline)
	}
	logger.FromContext(ctx).Debug(LogMsgOfflineGrowth,
		"plant_id", p.ID, "offline", offline, "budget", budget, "stage_ups", ups, "stage", p.Stage)
	return ups
}

// Tick advances every plant by elapsed and returns the plants whose stage changed
func (e *Engine) Tick(ctx context.Context, plants []*domain.Plant, elapsed time.Duration) []*domain.Plant {
	var changed []*domain.Plant
	for _, p := range plants {
		if e.Advance(ctx, p, elapsed) {
			changed = append(changed, p)
		}
	}
	return changed
}

// ApplyOfflineGrowthAll catches up every plant and returns the total number of stage-ups
func (e *Engine) ApplyOfflineGrowthAll(ctx context.Context, plants []*domain.Plant, offline time.Duration) int {
	total := 0
	for _, p := range plants {
		total += e.ApplyOfflineGrowth(ctx, p, offline)
	}
	return total
}

func (e *Engine) capByWater(p *domain.Plant, budget time.Duration) time.Duration {
	remaining, limited := e.water.TimeUntilThirsty(p)
	if !limited {
		return budget
	}
	return max(0, min(budget, remaining))
}

// grow spends budget on the current and following stages, exact to the nanosecond
func (e *Engine) grow(p *domain.Plant, budget time.Duration) int {
	variety := e.catalog.Variety(p.Variety)
	ups := 0
	for budget > 0 && p.Stage < domain.StageComplete {
		required := variety.StageDuration(p.Stage)
		need := time.Duration((domain.ProgressComplete - p.StageProgress) / domain.ProgressComplete * float64(required))
		if budget >= need {
			p.Stage++
			p.StageProgress = 0
			budget -= need
			ups++
			continue
		}
		p.StageProgress += float64(budget) / float64(required) * domain.ProgressComplete
		if p.StageProgress >= domain.ProgressComplete {
			p.StageProgress = math.Nextafter(domain.ProgressComplete, 0)
		}
		budget = 0
	}
	return ups
}

func (e *Engine) publishStageChange(ctx context.Context, p *domain.Plant, oldStage int, source string) {
	logger.FromContext(ctx).Info(LogMsgStageChanged,
		"plant_id", p.ID, "variety", p.Variety, "from", oldStage, "to", p.Stage, "source", source)
	event.Emit(ctx, e.bus, event.New(event.PlantStageChanged, event.PlantStageChangedPayloadV1{
		PlantID:  p.ID,
		Variety:  p.Variety,
		OldStage: oldStage,
		NewStage: p.Stage,
		Source:   source,
	}))
}

// TimeToComplete returns the remaining growing time, ignoring water
func (e *Engine) TimeToComplete(p *domain.Plant) time.Duration {
	if p.IsComplete() {
		return 0
	}
	variety := e.catalog.Variety(p.Variety)
	current := variety.StageDuration(p.Stage)
	total := time.Duration((domain.ProgressComplete - p.StageProgress) / domain.ProgressComplete * float64(current))
	for s := p.Stage + 1; s < domain.StageComplete; s++ {
		total += variety.StageDuration(s)
	}
	return total
}

// TotalProgress returns overall growth as a rounded percentage
func (e *Engine) TotalProgress(p *domain.Plant) int {
	if p.IsComplete() {
		return 100
	}
	variety := e.catalog.Variety(p.Variety)
	total := variety.TotalGrowth()
	if total <= 0 {
		return 0
	}
	done := total - e.TimeToComplete(p)
	return int(math.Round(float64(done) / float64(total) * 100))
}

// Info describes a plant's growth
func (e *Engine) Info(p *domain.Plant) Info {
	stage := min(max(p.Stage, 0), domain.StageComplete)
	return Info{
		Stage:          p.Stage,
		StageName:      stageNames[stage],
		StageProgress:  p.StageProgress,
		TotalProgress:  e.TotalProgress(p),
		TimeToComplete: e.TimeToComplete(p),
		NeedsWater:     e.water.NeedsWater(p),
		Complete:       p.IsComplete(),
	}
}

// Summary counts plants per stage
func (e *Engine) Summary(plants []*domain.Plant) Summary {
	var s Summary
	s.Total = len(plants)
	for _, p := range plants {
		s.ByStage[min(max(p.Stage, 0), domain.StageComplete)]++
		if p.IsComplete() {
			s.Completed++
		} else if e.water.NeedsWater(p) {
			s.NeedingWater++
		}
	}
	return s
}
