package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/MagicGarden_Go/internal/daily"
	"github.com/osse101/MagicGarden_Go/internal/discovery"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/friendship"
	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/quest"
	"github.com/osse101/MagicGarden_Go/internal/watering"
	"github.com/osse101/MagicGarden_Go/internal/world"
)

// Water waters one plant
func (g *Game) Water(ctx context.Context, plantID string) (*watering.Result, error) {
	ctx = traced(ctx)
	var res *watering.Result
	doc, err := g.store.Update(ctx, func(doc *domain.SaveDocument) error {
		p, ok := doc.Plant(plantID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlantNotFound, plantID)
		}
		var err error
		res, err = g.water.Apply(ctx, p)
		return err
	})
	if err != nil {
		if res != nil {
			g.water.Release(res)
		}
		return nil, err
	}
	g.water.Commit(ctx, res)
	g.markWatered(ctx, doc)
	return res, nil
}

// WaterAll waters every thirsty plant and returns how many were watered
func (g *Game) WaterAll(ctx context.Context) (int, error) {
	ctx = traced(ctx)
	var results []*watering.Result
	doc, err := g.store.Update(ctx, func(doc *domain.SaveDocument) error {
		results = g.water.ApplyAll(ctx, doc.Plants())
		if len(results) == 0 {
			return errUnchanged
		}
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return 0, nil
	}
	if err != nil {
		g.water.Release(results...)
		return 0, err
	}
	g.water.Commit(ctx, results...)
	g.markWatered(ctx, doc)
	return len(results), nil
}

func (g *Game) markWatered(ctx context.Context, doc *domain.SaveDocument) {
	if doc.Daily.TodayWatered {
		return
	}
	if err := g.daily.MarkWatered(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgMarkWateredFail, "error", err)
	}
}

// Interact applies a friendship action to a resident. The visit action goes through
// the once-a-day visit with its streak bonus.
func (g *Game) Interact(ctx context.Context, residentID, action string) (*friendship.Result, error) {
	ctx = traced(ctx)
	return g.withResident(ctx, residentID, func(doc *domain.SaveDocument, r *domain.Resident) (*friendship.Result, error) {
		if action == domain.ActionVisit {
			return g.ledger.Visit(ctx, r)
		}
		return g.ledger.ApplyInteraction(ctx, r, action)
	})
}

// Gift hands one inventory item to a resident
func (g *Game) Gift(ctx context.Context, residentID, item string) (*friendship.Result, error) {
	ctx = traced(ctx)
	return g.withResident(ctx, residentID, func(doc *domain.SaveDocument, r *domain.Resident) (*friendship.Result, error) {
		if doc.Inventory.ItemCount(item) <= 0 || item == domain.QuestTargetAny {
			return nil, fmt.Errorf("%w: %s", domain.ErrGiftNotInInventory, item)
		}
		res, err := g.ledger.GiveGift(ctx, r, item)
		if err != nil {
			return nil, err
		}
		doc.Inventory.TakeItem(item)
		return res, nil
	})
}

// Name gives a resident its name
func (g *Game) Name(ctx context.Context, residentID, name string) error {
	ctx = traced(ctx)
	_, err := g.withResident(ctx, residentID, func(_ *domain.SaveDocument, r *domain.Resident) (*friendship.Result, error) {
		return nil, g.ledger.SetName(ctx, r, name)
	})
	return err
}

func (g *Game) withResident(ctx context.Context, residentID string,
	fn func(doc *domain.SaveDocument, r *domain.Resident) (*friendship.Result, error)) (*friendship.Result, error) {
	var res *friendship.Result
	_, err := g.store.Update(ctx, func(doc *domain.SaveDocument) error {
		r, ok := doc.Resident(residentID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrResidentNotFound, residentID)
		}
		var err error
		res, err = fn(doc, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// VisitArea enters an unlocked area and reports whether it was the first visit
func (g *Game) VisitArea(ctx context.Context, area string) (bool, error) {
	ctx = traced(ctx)
	return g.areaChange(ctx, func(doc *domain.SaveDocument) (bool, error) {
		return world.Visit(ctx, doc, area)
	})
}

// UnlockArea opens an area and reports whether it was locked
func (g *Game) UnlockArea(ctx context.Context, area string) (bool, error) {
	ctx = traced(ctx)
	return g.areaChange(ctx, func(doc *domain.SaveDocument) (bool, error) {
		return world.Unlock(ctx, doc, area)
	})
}

func (g *Game) areaChange(ctx context.Context, fn func(doc *domain.SaveDocument) (bool, error)) (bool, error) {
	var changed bool
	_, err := g.store.Update(ctx, func(doc *domain.SaveDocument) error {
		var err error
		if changed, err = fn(doc); err != nil {
			return err
		}
		if !changed {
			return errUnchanged
		}
		return nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return false, err
	}
	return changed, nil
}

// CompleteQuest hands in a completable quest
func (g *Game) CompleteQuest(ctx context.Context, questID string) (*quest.Completion, error) {
	return g.quests.Complete(traced(ctx), questID)
}

// ClaimBonus claims today's login bonus
func (g *Game) ClaimBonus(ctx context.Context) (*daily.Bonus, error) {
	return g.daily.ClaimBonus(traced(ctx))
}

// DailyVisitor returns today's visitor, or nil when nobody comes
func (g *Game) DailyVisitor(ctx context.Context) (*daily.Visitor, error) {
	return g.daily.RollDailyVisitor(traced(ctx))
}

// CheckDiscoveries looks for recipes in every unlocked area and records the ones found
// for the first time
func (g *Game) CheckDiscoveries(ctx context.Context) ([]discovery.Match, error) {
	ctx = traced(ctx)
	var found []discovery.Match
	_, err := g.store.Update(ctx, func(doc *domain.SaveDocument) error {
		ix := world.FromDocument(ctx, doc)
		for _, area := range domain.AllAreas {
			if a, ok := doc.World.Areas[area]; !ok || !a.Unlocked {
				continue
			}
			for _, m := range g.discovery.Check(ix, area) {
				if g.discovery.Record(ctx, doc, m.RecipeID, area) {
					found = append(found, m)
				}
			}
		}
		if len(found) == 0 {
			return errUnchanged
		}
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgDiscoveriesFound, "count", len(found))
	return found, nil
}
