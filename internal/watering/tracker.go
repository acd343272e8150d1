package watering

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// CooldownError is returned when a manual watering lands inside the debounce window
type CooldownError struct {
	Remaining time.Duration
}

func (e CooldownError) Error() string {
	return fmt.Sprintf("%s: %dms remaining", domain.ErrMsgCooldownActive, e.Remaining.Milliseconds())
}

// Is allows errors.Is() to match both CooldownError and domain.ErrCooldownActive
func (e CooldownError) Is(target error) bool {
	if target == domain.ErrCooldownActive {
		return true
	}
	_, ok := target.(CooldownError)
	return ok
}

// Result describes a successful watering
type Result struct {
	PlantID   string
	Variety   string
	WateredAt time.Time
	Batch     bool

	prevLastWater time.Time
}

// Status summarizes the watering state of a set of plants
type Status struct {
	Total          int
	NeedingWater   int
	AllWatered     bool
	NextWateringAt *time.Time
	NextWateringIn time.Duration
}

// Info is the watering detail of one plant
type Info struct {
	LastWatered     time.Time
	SinceWatered    time.Duration
	NeedsWater      bool
	UntilNeeded     time.Duration
	FullyGrown      bool
	CanBeWatered    bool
	NeverNeedsWater bool
}

type waterOptions struct {
	bypassCooldown bool
	batch          bool
}

// Option adjusts a single Water call
type Option func(*waterOptions)

// WithCooldownBypass skips the debounce window, used by batch watering
func WithCooldownBypass() Option {
	return func(o *waterOptions) { o.bypassCooldown = true }
}

func inBatch() Option {
	return func(o *waterOptions) { o.batch = true }
}

// Tracker decides when plants need water and applies waterings
type Tracker struct {
	catalog  *catalog.Catalog
	clock    clock.Clock
	bus      event.Bus
	cooldown time.Duration

	mu        sync.Mutex
	lastWater time.Time
}

// NewTracker creates a tracker. A cooldown of zero uses domain.WaterCooldown.
func NewTracker(cat *catalog.Catalog, clk clock.Clock, bus event.Bus, cooldown time.Duration) *Tracker {
	if cooldown <= 0 {
		cooldown = domain.WaterCooldown
	}
	return &Tracker{
		catalog:  cat,
		clock:    clk,
		bus:      bus,
		cooldown: cooldown,
	}
}

// TimeUntilThirsty returns how long until the plant needs water. It is zero or negative
// once water is needed. The second result is false for varieties that never need water.
func (t *Tracker) TimeUntilThirsty(p *domain.Plant) (time.Duration, bool) {
	interval := t.catalog.Variety(p.Variety).WaterInterval()
	if interval <= 0 {
		return 0, false
	}
	return interval - t.clock.Since(p.LastWatered), true
}

// NeedsWater reports whether the watering interval has fully elapsed. Complete plants
// and varieties without an interval never need water.
func (t *Tracker) NeedsWater(p *domain.Plant) bool {
	if p.IsComplete() {
		return false
	}
	remaining, limited := t.TimeUntilThirsty(p)
	return limited && remaining <= 0
}

// Apply waters one plant in memory and reserves the cooldown window. Nothing is
// announced until Commit, and Release hands the window back when the watering was
// never persisted.
func (t *Tracker) Apply(ctx context.Context, p *domain.Plant, opts ...Option) (*Result, error) {
	var o waterOptions
	for _, opt := range opts {
		opt(&o)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if !o.bypassCooldown && !t.lastWater.IsZero() {
		if since := now.Sub(t.lastWater); since < t.cooldown {
			return nil, CooldownError{Remaining: t.cooldown - since}
		}
	}
	if p.IsComplete() {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyComplete, p.ID)
	}
	if !t.NeedsWater(p) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotNeeded, p.ID)
	}

	res := &Result{
		PlantID:       p.ID,
		Variety:       p.Variety,
		WateredAt:     now,
		Batch:         o.batch,
		prevLastWater: t.lastWater,
	}
	p.LastWatered = now
	t.lastWater = now
	return res, nil
}

// Commit announces waterings that were persisted
func (t *Tracker) Commit(ctx context.Context, results ...*Result) {
	log := logger.FromContext(ctx)
	for _, res := range results {
		log.Debug(LogMsgWatered, "plant_id", res.PlantID, "variety", res.Variety, "batch", res.Batch)
		event.Emit(ctx, t.bus, event.New(event.PlantWatered, event.PlantWateredPayloadV1{
			PlantID: res.PlantID,
			Variety: res.Variety,
			Batch:   res.Batch,
		}))
	}
}

// Release returns the cooldown window reserved by waterings that were not persisted.
// A window taken by a later watering is left alone.
func (t *Tracker) Release(results ...*Result) {
	if len(results) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastWater.Equal(results[len(results)-1].WateredAt) {
		t.lastWater = results[0].prevLastWater
	}
}

// Water waters one plant and announces it
func (t *Tracker) Water(ctx context.Context, p *domain.Plant, opts ...Option) (*Result, error) {
	res, err := t.Apply(ctx, p, opts...)
	if err != nil {
		return nil, err
	}
	t.Commit(ctx, res)
	return res, nil
}

// ApplyAll waters every plant that needs it in memory, ignoring the cooldown
func (t *Tracker) ApplyAll(ctx context.Context, plants []*domain.Plant) []*Result {
	var results []*Result
	for _, p := range plants {
		if !t.NeedsWater(p) {
			continue
		}
		res, err := t.Apply(ctx, p, WithCooldownBypass(), inBatch())
		if err != nil {
			if !errors.Is(err, domain.ErrNotNeeded) {
				logger.FromContext(ctx).Warn(LogMsgWaterFailed, "plant_id", p.ID, "error", err)
			}
			continue
		}
		results = append(results, res)
	}
	logger.FromContext(ctx).Info(LogMsgWaterAll, "watered", len(results), "plants", len(plants))
	return results
}

// WaterAll waters every plant that needs it, ignoring the cooldown, and returns how many
// were watered
func (t *Tracker) WaterAll(ctx context.Context, plants []*domain.Plant) int {
	results := t.ApplyAll(ctx, plants)
	t.Commit(ctx, results...)
	return len(results)
}

// Status reports how many plants need water and when the next one will
func (t *Tracker) Status(plants []*domain.Plant) Status {
	s := Status{Total: len(plants)}
	now := t.clock.Now()
	for _, p := range plants {
		if p.IsComplete() {
			continue
		}
		if t.NeedsWater(p) {
			s.NeedingWater++
			continue
		}
		remaining, limited := t.TimeUntilThirsty(p)
		if !limited {
			continue
		}
		at := now.Add(remaining)
		if s.NextWateringAt == nil || at.Before(*s.NextWateringAt) {
			s.NextWateringAt = &at
			s.NextWateringIn = remaining
		}
	}
	s.AllWatered = s.NeedingWater == 0
	return s
}

// Info returns the watering detail of one plant
func (t *Tracker) Info(p *domain.Plant) Info {
	remaining, limited := t.TimeUntilThirsty(p)
	needs := t.NeedsWater(p)
	info := Info{
		LastWatered:     p.LastWatered,
		SinceWatered:    t.clock.Since(p.LastWatered),
		NeedsWater:      needs,
		FullyGrown:      p.IsComplete(),
		CanBeWatered:    needs && !p.IsComplete(),
		NeverNeedsWater: !limited,
	}
	if limited && !needs && remaining > 0 {
		info.UntilNeeded = remaining
	}
	return info
}
