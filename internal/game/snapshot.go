package game

import (
	"context"

	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/daily"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/friendship"
	"github.com/osse101/MagicGarden_Go/internal/growth"
	"github.com/osse101/MagicGarden_Go/internal/quest"
	"github.com/osse101/MagicGarden_Go/internal/watering"
)

// Snapshot is a read-only view of the whole garden at one instant
type Snapshot struct {
	Document   *domain.SaveDocument
	TimeOfDay  string
	Season     string
	Growth     growth.Summary
	Watering   watering.Status
	Friendship friendship.Statistics
	Quests     quest.Statistics
	Bonus      daily.BonusStatus
	// Activities maps resident ids to what they are doing right now
	Activities map[string]string
}

// Snapshot reads the current state without changing it
func (g *Game) Snapshot(ctx context.Context) *Snapshot {
	doc := g.store.Load(ctx)
	now := g.clock.Now()
	bucket := clock.TimeOfDay(now)
	plants := doc.Plants()

	activities := make(map[string]string, len(doc.Residents))
	for _, r := range doc.Residents {
		activities[r.ID] = r.Schedule.ActivityAt(bucket)
	}

	return &Snapshot{
		Document:   doc,
		TimeOfDay:  bucket,
		Season:     clock.SeasonOf(now),
		Growth:     g.growth.Summary(plants),
		Watering:   g.water.Status(plants),
		Friendship: friendship.Stats(doc.Residents),
		Quests:     g.quests.Statistics(ctx),
		Bonus:      daily.LoginBonus(doc),
		Activities: activities,
	}
}
