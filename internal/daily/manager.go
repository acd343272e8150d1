package daily

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/utils"
)

// Store is the document access the daily cycle needs
type Store interface {
	Update(ctx context.Context, fn func(doc *domain.SaveDocument) error) (*domain.SaveDocument, error)
}

// Bonus is one entry of the login bonus cycle
type Bonus struct {
	Day   int
	Seeds int
	Item  string
}

var bonusTable = [BonusCycleDays]Bonus{
	{Day: 1, Seeds: 1},
	{Day: 2, Seeds: 2},
	{Day: 3, Seeds: 3},
	{Day: 4, Seeds: 4},
	{Day: 5, Seeds: 5},
	{Day: 6, Seeds: 5, Item: BonusRareSeed},
	{Day: 7, Seeds: 5, Item: BonusLegendarySeed},
}

// Visitor is a once-a-day guest
type Visitor struct {
	ID   string
	Gift string
}

var visitorTable = []utils.Weighted[Visitor]{
	{Value: Visitor{ID: VisitorSeedShop, Gift: "rare_seeds_sale"}, Weight: 30},
	{Value: Visitor{ID: VisitorTraveler, Gift: "foreign_seed"}, Weight: 20},
	{Value: Visitor{ID: VisitorWizard, Gift: "magic_seed"}, Weight: 10},
	{Value: Visitor{ID: VisitorFairyKing, Gift: "legendary_seed"}, Weight: 5},
	{Value: Visitor{ID: VisitorMystery, Gift: "mystery_gift"}, Weight: 1},
}

// LookupVisitor returns a visitor definition by id
func LookupVisitor(id string) (Visitor, bool) {
	for _, v := range visitorTable {
		if v.Value.ID == id {
			return v.Value, true
		}
	}
	return Visitor{}, false
}

// BonusStatus is the login bonus offer for the current day
type BonusStatus struct {
	Available bool
	Streak    int
	Bonus     Bonus
}

// Rollover describes what CheckRollover found
type Rollover struct {
	NewDay    bool
	Continued bool
	Streak    int
	Date      string
}

// errUnchanged aborts an Update that has nothing to write
var errUnchanged = errors.New("unchanged")

// Manager gates day-based transitions: streaks, the login bonus, daily resets and the
// daily visitor
type Manager struct {
	store   Store
	catalog *catalog.Catalog
	clock   clock.Clock
	bus     event.Bus
	rng     utils.Random
}

// NewManager creates a daily cycle manager
func NewManager(store Store, cat *catalog.Catalog, clk clock.Clock, bus event.Bus, rng utils.Random) *Manager {
	if rng == nil {
		rng = utils.DefaultRandom
	}
	return &Manager{store: store, catalog: cat, clock: clk, bus: bus, rng: rng}
}

// BonusForStreak returns the cycle entry of a streak day
func BonusForStreak(streak int) Bonus {
	streak = max(streak, 1)
	return bonusTable[(streak-1)%BonusCycleDays]
}

// LoginBonus reports today's bonus
func LoginBonus(doc *domain.SaveDocument) BonusStatus {
	streak := max(doc.Daily.Streak, 1)
	return BonusStatus{
		Available: !doc.Daily.BonusClaimed,
		Streak:    streak,
		Bonus:     BonusForStreak(streak),
	}
}

// CheckRollover compares the last login with today on the local calendar. On a new day
// it extends or restarts the streak, clears the daily flags and per-resident counters,
// and deals each resident the day's schedule. Calling it again on the same day is a no-op.
func (m *Manager) CheckRollover(ctx context.Context) (*Rollover, error) {
	log := logger.FromContext(ctx)
	now := m.clock.Now()
	result := &Rollover{Date: clock.DateKey(now)}

	_, err := m.store.Update(ctx, func(doc *domain.SaveDocument) error {
		d := &doc.Daily
		if d.LastLogin != nil && clock.SameDay(*d.LastLogin, now) {
			result.Streak = d.Streak
			return errUnchanged
		}

		switch {
		case d.LastLogin == nil:
			log.Info(LogMsgFirstLogin)
			d.Streak = 1
		case clock.IsYesterday(*d.LastLogin, now):
			d.Streak++
			result.Continued = true
		default:
			d.Streak = 1
		}

		d.LastLogin = &now
		d.BonusClaimed = false
		d.TodayWatered = false
		for _, r := range doc.Residents {
			r.ResetDaily()
			usual, _ := m.catalog.ResidentType(r.Type)
			r.Schedule = DailySchedule(r.ID, usual.Schedule, now)
		}

		result.NewDay = true
		result.Streak = d.Streak
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgRollover, "date", result.Date, "streak", result.Streak, "continued", result.Continued)
	event.Emit(ctx, m.bus, event.New(event.DailyRollover, event.DailyRolloverPayloadV1{
		Date:      result.Date,
		Streak:    result.Streak,
		Continued: result.Continued,
	}))
	return result, nil
}

// ClaimBonus marks today's bonus claimed and credits its green seeds and bonus item in
// the same write
func (m *Manager) ClaimBonus(ctx context.Context) (*Bonus, error) {
	var bonus Bonus
	_, err := m.store.Update(ctx, func(doc *domain.SaveDocument) error {
		status := LoginBonus(doc)
		if !status.Available {
			return fmt.Errorf("%w: streak day %d", domain.ErrAlreadyClaimed, status.Bonus.Day)
		}
		now := m.clock.Now()
		doc.Daily.BonusClaimed = true
		doc.Daily.LastClaimed = &now

		bonus = status.Bonus
		doc.Inventory.AddSeeds(domain.SeedGreen, bonus.Seeds)
		doc.Player.TotalSeeds += bonus.Seeds
		if bonus.Item != "" {
			doc.Inventory.AddItem(bonus.Item, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgBonusClaimed, "day", bonus.Day, "seeds", bonus.Seeds, "item", bonus.Item)
	event.Emit(ctx, m.bus, event.New(event.DailyBonusClaimed, event.DailyBonusClaimedPayloadV1{
		Day:   bonus.Day,
		Seeds: bonus.Seeds,
		Bonus: bonus.Item,
	}))
	return &bonus, nil
}

// RollDailyVisitor returns today's visitor, drawing it on the first call of each
// calendar day. A day without a visitor is cached too, so the draw happens once.
func (m *Manager) RollDailyVisitor(ctx context.Context) (*Visitor, error) {
	today := clock.DateKey(m.clock.Now())

	var id string
	_, err := m.store.Update(ctx, func(doc *domain.SaveDocument) error {
		if doc.Daily.VisitorDate == today {
			id = doc.Daily.TodayVisitor
			return errUnchanged
		}
		if v, ok := utils.PickWeighted(m.rng, visitorTable); ok {
			id = v.ID
		}
		doc.Daily.TodayVisitor = id
		doc.Daily.VisitorDate = today
		logger.FromContext(ctx).Info(LogMsgVisitorRolled, "date", today, "visitor", id)
		return nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return nil, err
	}

	if id == "" {
		return nil, nil
	}
	v, ok := LookupVisitor(id)
	if !ok {
		return &Visitor{ID: id}, nil
	}
	return &v, nil
}

// MarkWatered records that the garden was watered today
func (m *Manager) MarkWatered(ctx context.Context) error {
	_, err := m.store.Update(ctx, func(doc *domain.SaveDocument) error {
		if doc.Daily.TodayWatered {
			return errUnchanged
		}
		doc.Daily.TodayWatered = true
		return nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgMarkedWatered)
	return nil
}
