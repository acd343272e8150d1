package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/daily"
	"github.com/osse101/MagicGarden_Go/internal/discovery"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/friendship"
	"github.com/osse101/MagicGarden_Go/internal/growth"
	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/quest"
	"github.com/osse101/MagicGarden_Go/internal/utils"
	"github.com/osse101/MagicGarden_Go/internal/watering"
	"github.com/osse101/MagicGarden_Go/internal/world"
)

// Store is the save document access shared by every component of a game
type Store interface {
	Load(ctx context.Context) *domain.SaveDocument
	Update(ctx context.Context, fn func(doc *domain.SaveDocument) error) (*domain.SaveDocument, error)
}

// errUnchanged aborts an Update that has nothing to write
var errUnchanged = errors.New("unchanged")

type options struct {
	waterCooldown time.Duration
	questChance   float64
	rng           utils.Random
}

// Option configures a Game
type Option func(*options)

// WithWaterCooldown sets the debounce window between manual waterings
func WithWaterCooldown(d time.Duration) Option {
	return func(o *options) { o.waterCooldown = d }
}

// WithQuestChance sets the per-tick quest generation probability
func WithQuestChance(p float64) Option {
	return func(o *options) { o.questChance = p }
}

// WithRandom sets the random source for seed outcomes, quests and visitors
func WithRandom(r utils.Random) Option {
	return func(o *options) { o.rng = r }
}

// Game is the context every operation of one garden runs through. It owns the
// simulation components and routes all document changes through its store.
type Game struct {
	store   Store
	catalog *catalog.Catalog
	clock   clock.Clock
	bus     event.Bus
	rng     utils.Random

	growth    *growth.Engine
	water     *watering.Tracker
	ledger    *friendship.Ledger
	quests    quest.Service
	daily     *daily.Manager
	discovery *discovery.Detector
}

// New wires a game over a store
func New(store Store, cat *catalog.Catalog, clk clock.Clock, bus event.Bus, opts ...Option) *Game {
	o := options{questChance: quest.DefaultGenerationChance, rng: utils.DefaultRandom}
	for _, opt := range opts {
		opt(&o)
	}

	tracker := watering.NewTracker(cat, clk, bus, o.waterCooldown)
	ledger := friendship.NewLedger(cat, clk, bus)
	return &Game{
		store:     store,
		catalog:   cat,
		clock:     clk,
		bus:       bus,
		rng:       o.rng,
		growth:    growth.NewEngine(cat, clk, tracker, bus),
		water:     tracker,
		ledger:    ledger,
		quests:    quest.NewService(store, cat, ledger, clk, bus, quest.WithChance(o.questChance), quest.WithRandom(o.rng)),
		daily:     daily.NewManager(store, cat, clk, bus, o.rng),
		discovery: discovery.NewDetector(cat, bus),
	}
}

// Quests exposes the quest service
func (g *Game) Quests() quest.Service {
	return g.quests
}

// traced gives an operation its own trace id unless the caller already set one
func traced(ctx context.Context) context.Context {
	if _, ok := logger.TraceIDFromContext(ctx); ok {
		return ctx
	}
	return logger.NewTrace(ctx)
}

// StartReport describes what happened while the garden was away
type StartReport struct {
	Rollover *daily.Rollover
	Offline  time.Duration
	StageUps int
	Arrivals []*domain.Resident
}

// Start opens a session: it runs the day rollover, then catches plants up on the time
// elapsed since the last access and stamps the new access time.
func (g *Game) Start(ctx context.Context) (*StartReport, error) {
	ctx = traced(ctx)
	rollover, err := g.daily.CheckRollover(ctx)
	if err != nil {
		return nil, err
	}

	report := &StartReport{Rollover: rollover}
	_, err = g.store.Update(ctx, func(doc *domain.SaveDocument) error {
		now := g.clock.Now()
		report.Offline = clock.OfflineDuration(doc.LastAccess, now)
		report.StageUps = g.growth.ApplyOfflineGrowthAll(ctx, doc.Plants(), report.Offline)
		report.Arrivals = g.settleResidents(ctx, doc)
		doc.LastAccess = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgStarted,
		"offline", report.Offline,
		"stage_ups", report.StageUps,
		"arrivals", len(report.Arrivals),
		"streak", rollover.Streak)
	return report, nil
}

// Rollover checks for a new calendar day
func (g *Game) Rollover(ctx context.Context) (*daily.Rollover, error) {
	return g.daily.CheckRollover(traced(ctx))
}

// TickReport describes one simulation step
type TickReport struct {
	Changed  []*domain.Plant
	Arrivals []*domain.Resident
	Quests   *quest.TickResult
}

// Tick advances growth by elapsed, stamps the access time and then runs the quest
// tick. A failed quest tick is logged and does not fail the growth step.
func (g *Game) Tick(ctx context.Context, elapsed time.Duration) (*TickReport, error) {
	ctx = traced(ctx)
	log := logger.FromContext(ctx)

	report := &TickReport{}
	_, err := g.store.Update(ctx, func(doc *domain.SaveDocument) error {
		report.Changed = g.growth.Tick(ctx, doc.Plants(), elapsed)
		report.Arrivals = g.settleResidents(ctx, doc)
		now := g.clock.Now()
		doc.LastAccess = &now
		return nil
	})
	if err != nil {
		log.Warn(LogMsgTickFailed, "error", err)
		return nil, err
	}

	qr, err := g.quests.Tick(ctx)
	if err != nil {
		log.Warn(LogMsgQuestTickFailed, "error", err)
	}
	report.Quests = qr
	return report, nil
}

// Plant sows one seed of a kind at a free position of an unlocked area. The variety is
// drawn uniformly from the seed's outcomes.
func (g *Game) Plant(ctx context.Context, seedKind, area string, pos domain.Position) (*domain.Plant, error) {
	ctx = traced(ctx)
	if !g.catalog.HasSeed(seedKind) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSeedKind, seedKind)
	}

	var planted *domain.Plant
	_, err := g.store.Update(ctx, func(doc *domain.SaveDocument) error {
		if err := world.CheckPlacement(doc, area, pos); err != nil {
			return err
		}
		if hit, ok := world.FromDocument(ctx, doc).At(area, pos); ok {
			return fmt.Errorf("%w: %s stands there", domain.ErrPositionOccupied, hit.EntityID())
		}
		if err := doc.Inventory.TakeSeed(seedKind); err != nil {
			return fmt.Errorf("%w: %s", err, seedKind)
		}
		variety, ok := utils.Pick(g.rng, g.catalog.Outcomes(seedKind))
		if !ok {
			return fmt.Errorf("%w: %s has no outcomes", domain.ErrUnknownSeedKind, seedKind)
		}

		now := g.clock.Now()
		planted = &domain.Plant{
			ID:          uuid.NewString(),
			SeedKind:    seedKind,
			Variety:     variety,
			Position:    pos,
			PlantedAt:   now,
			LastWatered: now,
		}
		doc.World.Objects = append(doc.World.Objects, domain.NewPlantObject(area, planted))
		doc.Collection.AddPlant(variety)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgPlanted, "plant_id", planted.ID, "variety", planted.Variety, "area", area)
	event.Emit(ctx, g.bus, event.New(event.PlantPlanted, event.PlantPlantedPayloadV1{
		PlantID:  planted.ID,
		SeedKind: seedKind,
		Variety:  planted.Variety,
		Area:     area,
	}))
	return planted, nil
}

// settleResidents moves a resident into every grown home that attracts one and does
// not house anybody yet
func (g *Game) settleResidents(ctx context.Context, doc *domain.SaveDocument) []*domain.Resident {
	log := logger.FromContext(ctx)
	var arrivals []*domain.Resident
	for _, obj := range doc.World.Objects {
		p := obj.Plant
		if obj.Kind != domain.EntityPlant || p == nil || !p.IsComplete() {
			continue
		}
		v, ok := g.catalog.LookupVariety(p.Variety)
		if !ok || v.SpawnsResident == "" {
			continue
		}
		if _, housed := doc.ResidentHomedAt(p.ID); housed {
			continue
		}

		typeID := v.SpawnsResident
		if typeID == catalog.SpawnRandom {
			typeID, _ = utils.Pick(g.rng, g.catalog.ResidentIDs())
		}
		rt, ok := g.catalog.ResidentType(typeID)
		if !ok {
			log.Warn(LogMsgSpawnUnresolved, "home_id", p.ID, "resident_type", typeID)
			continue
		}

		now := g.clock.Now()
		r := &domain.Resident{
			ID:        uuid.NewString(),
			Type:      rt.ID,
			Area:      obj.Area,
			Position:  p.Position,
			ArrivedAt: now,
			HomeID:    p.ID,
		}
		r.Schedule = daily.DailySchedule(r.ID, rt.Schedule, now)
		doc.Residents = append(doc.Residents, r)
		doc.Collection.AddResident(rt.ID)
		arrivals = append(arrivals, r)

		log.Info(LogMsgResidentArrived, "resident_id", r.ID, "resident_type", r.Type, "home_id", p.ID)
		event.Emit(ctx, g.bus, event.New(event.ResidentArrived, event.ResidentArrivedPayloadV1{
			ResidentID:   r.ID,
			ResidentType: r.Type,
			HomeID:       p.ID,
			Area:         obj.Area,
		}))
	}
	return arrivals
}
