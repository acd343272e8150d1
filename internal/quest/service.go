package quest

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/friendship"
	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/utils"
)

// Store is the document access the quest service needs
type Store interface {
	Load(ctx context.Context) *domain.SaveDocument
	Update(ctx context.Context, fn func(doc *domain.SaveDocument) error) (*domain.SaveDocument, error)
}

// Ledger applies the friendship gain of a completed quest
type Ledger interface {
	ApplyInteraction(ctx context.Context, r *domain.Resident, action string) (*friendship.Result, error)
}

// Service defines the quest lifecycle operations
type Service interface {
	// Evaluation
	Evaluate(q *domain.Quest, doc *domain.SaveDocument) bool
	Progress(q *domain.Quest, doc *domain.SaveDocument) int

	// Lifecycle
	Generate(ctx context.Context, residentID string) (*domain.Quest, error)
	Complete(ctx context.Context, questID string) (*Completion, error)
	Cancel(ctx context.Context, questID string) error

	// Called by the host loop
	Tick(ctx context.Context) (*TickResult, error)

	// Queries
	Active(ctx context.Context) []domain.Quest
	ForResident(ctx context.Context, residentID string) (*domain.Quest, bool)
	Statistics(ctx context.Context) Statistics
}

// Completion is the committed outcome of completing a quest
type Completion struct {
	Quest      domain.Quest
	Reward     domain.Reward
	Friendship *friendship.Result
}

// TickResult reports what one quest tick did
type TickResult struct {
	ActiveCount int
	Completable []string
	Generated   []*domain.Quest
}

// Statistics summarizes the quest log
type Statistics struct {
	ActiveCount    int
	CompletedCount int
	TotalRewards   map[string]int
}

// Option configures the service
type Option func(*service)

// WithChance sets the per-tick generation probability
func WithChance(p float64) Option {
	return func(s *service) { s.chance = p }
}

// WithRandom sets the random source used for template picks and generation rolls
func WithRandom(r utils.Random) Option {
	return func(s *service) { s.rng = r }
}

type service struct {
	store   Store
	catalog *catalog.Catalog
	ledger  Ledger
	clock   clock.Clock
	bus     event.Bus
	rng     utils.Random
	chance  float64

	mu       sync.Mutex
	notified map[string]bool
}

// NewService creates a quest service
func NewService(store Store, cat *catalog.Catalog, ledger Ledger, clk clock.Clock, bus event.Bus, opts ...Option) Service {
	s := &service{
		store:    store,
		catalog:  cat,
		ledger:   ledger,
		clock:    clk,
		bus:      bus,
		rng:      utils.DefaultRandom,
		chance:   DefaultGenerationChance,
		notified: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate reports whether a quest's completion predicate holds for doc
func (s *service) Evaluate(q *domain.Quest, doc *domain.SaveDocument) bool {
	switch q.Type {
	case domain.QuestTypeVisit:
		area, ok := doc.World.Areas[q.Target]
		return ok && area.Visited
	case domain.QuestTypeDiscover:
		if q.Target == domain.QuestTargetAny {
			return len(doc.Collection.Discoveries) > 0
		}
		return doc.Collection.HasDiscovery(q.Target)
	}
	return s.Progress(q, doc) >= max(q.Count, 1)
}

// Progress counts what the player has toward a quest's target
func (s *service) Progress(q *domain.Quest, doc *domain.SaveDocument) int {
	switch q.Type {
	case domain.QuestTypeGrow:
		n := 0
		for _, p := range doc.Plants() {
			if p.IsComplete() && s.plantMatches(p.Variety, q.Target) {
				n++
			}
		}
		return n
	case domain.QuestTypeBuild:
		n := 0
		for _, b := range doc.Buildings() {
			if b.Built && s.catalog.MatchesTag(b.Type, q.Target) {
				n++
			}
		}
		for _, p := range doc.Plants() {
			if p.IsComplete() && s.catalog.MatchesTag(p.Variety, q.Target) {
				n++
			}
		}
		return n
	case domain.QuestTypeCollect, domain.QuestTypeGift:
		if q.Target == domain.QuestTargetAny {
			return doc.Inventory.ItemCount(domain.QuestTargetAny)
		}
		n := 0
		for item, count := range doc.Inventory.Items {
			if s.catalog.MatchesTag(item, q.Target) {
				n += count
			}
		}
		return n
	case domain.QuestTypeVisit, domain.QuestTypeDiscover:
		if s.Evaluate(q, doc) {
			return max(q.Count, 1)
		}
	}
	return 0
}

func (s *service) plantMatches(variety, target string) bool {
	return target == domain.QuestTargetAnyPlant || s.catalog.MatchesTag(variety, target)
}

// Generate hands out a quest from a resident. Residents with an active quest or below
// the friendship threshold are not eligible.
func (s *service) Generate(ctx context.Context, residentID string) (*domain.Quest, error) {
	var q domain.Quest
	_, err := s.store.Update(ctx, func(doc *domain.SaveDocument) error {
		r, ok := doc.Resident(residentID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrResidentNotFound, residentID)
		}
		if _, busy := doc.ActiveQuestFor(residentID); busy {
			return fmt.Errorf("%w: %s already has a quest", domain.ErrNotEligible, residentID)
		}
		if r.Friendship < domain.FriendshipQuestThreshold {
			return fmt.Errorf("%w: friendship %d below %d", domain.ErrNotEligible, r.Friendship, domain.FriendshipQuestThreshold)
		}

		tmpl, ok := utils.Pick(s.rng, s.catalog.QuestTemplates(r.Type))
		if !ok {
			return fmt.Errorf("%w: %s %s", domain.ErrNotEligible, ErrMsgNoTemplates, r.Type)
		}

		q = domain.Quest{
			ID:           uuid.NewString(),
			ResidentID:   r.ID,
			ResidentType: r.Type,
			Type:         tmpl.Type,
			Target:       tmpl.Target,
			Count:        max(tmpl.Count, 1),
			Reward:       domain.Reward{Seeds: maps.Clone(tmpl.Reward.Seeds)},
			Text:         tmpl.Text,
			CreatedAt:    s.clock.Now(),
		}
		doc.Quests.Active = append(doc.Quests.Active, q)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgQuestGenerated,
		"quest_id", q.ID, "resident_id", q.ResidentID, "type", q.Type, "target", q.Target)
	event.Emit(ctx, s.bus, event.New(event.QuestGenerated, payloadOf(&q)))
	return &q, nil
}

// Complete moves a completable quest to the completed list, credits its reward and
// applies the quest friendship gain, all in one document write.
func (s *service) Complete(ctx context.Context, questID string) (*Completion, error) {
	log := logger.FromContext(ctx)

	var c Completion
	_, err := s.store.Update(ctx, func(doc *domain.SaveDocument) error {
		idx := doc.ActiveQuestIndex(questID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questID)
		}
		q := doc.Quests.Active[idx]
		if !s.Evaluate(&q, doc) {
			return fmt.Errorf("%w: %s", domain.ErrNotYetCompletable, questID)
		}

		now := s.clock.Now()
		q.CompletedAt = &now
		doc.Quests.Active = slices.Delete(doc.Quests.Active, idx, idx+1)
		doc.Quests.Completed = append(doc.Quests.Completed, q)

		for kind, n := range q.Reward.Seeds {
			doc.Inventory.AddSeeds(kind, n)
			doc.Player.TotalSeeds += n
		}

		c = Completion{Quest: q, Reward: q.Reward}
		if r, ok := doc.Resident(q.ResidentID); ok {
			res, err := s.ledger.ApplyInteraction(ctx, r, domain.ActionQuest)
			if err != nil {
				return err
			}
			c.Friendship = res
		} else {
			log.Warn(LogMsgResidentGone, "quest_id", q.ID, "resident_id", q.ResidentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.forget(questID)
	log.Info(LogMsgQuestCompleted, "quest_id", questID, "resident_id", c.Quest.ResidentID, "reward", c.Reward.Seeds)
	event.Emit(ctx, s.bus, event.New(event.QuestCompleted, payloadOf(&c.Quest)))
	return &c, nil
}

// Cancel drops an active quest without reward or penalty
func (s *service) Cancel(ctx context.Context, questID string) error {
	_, err := s.store.Update(ctx, func(doc *domain.SaveDocument) error {
		idx := doc.ActiveQuestIndex(questID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questID)
		}
		doc.Quests.Active = slices.Delete(doc.Quests.Active, idx, idx+1)
		return nil
	})
	if err != nil {
		return err
	}
	s.forget(questID)
	logger.FromContext(ctx).Info(LogMsgQuestCancelled, "quest_id", questID)
	return nil
}

// Tick announces quests that became completable since the last tick, then gives every
// eligible resident a chance to hand out a new quest
func (s *service) Tick(ctx context.Context) (*TickResult, error) {
	log := logger.FromContext(ctx)
	doc := s.store.Load(ctx)

	result := &TickResult{ActiveCount: len(doc.Quests.Active)}
	for i := range doc.Quests.Active {
		q := &doc.Quests.Active[i]
		if !s.Evaluate(q, doc) {
			continue
		}
		result.Completable = append(result.Completable, q.ID)
		if s.markNotified(q.ID) {
			log.Debug(LogMsgQuestCompletable, "quest_id", q.ID)
			event.Emit(ctx, s.bus, event.New(event.QuestCompletable, payloadOf(q)))
		}
	}

	for _, r := range doc.Residents {
		if r.Friendship < domain.FriendshipQuestThreshold {
			continue
		}
		if _, busy := doc.ActiveQuestFor(r.ID); busy {
			continue
		}
		if s.rng.Float64() >= s.chance {
			continue
		}
		q, err := s.Generate(ctx, r.ID)
		if err != nil {
			if errors.Is(err, domain.ErrPersistenceFailure) {
				return result, err
			}
			log.Warn(LogMsgGenerateFailed, "resident_id", r.ID, "error", err)
			continue
		}
		result.Generated = append(result.Generated, q)
		result.ActiveCount++
	}
	return result, nil
}

// Active lists the active quests
func (s *service) Active(ctx context.Context) []domain.Quest {
	return s.store.Load(ctx).Quests.Active
}

// ForResident returns the active quest a resident handed out
func (s *service) ForResident(ctx context.Context, residentID string) (*domain.Quest, bool) {
	return s.store.Load(ctx).ActiveQuestFor(residentID)
}

// Statistics counts quests and sums the rewards earned
func (s *service) Statistics(ctx context.Context) Statistics {
	doc := s.store.Load(ctx)
	st := Statistics{
		ActiveCount:    len(doc.Quests.Active),
		CompletedCount: len(doc.Quests.Completed),
		TotalRewards:   map[string]int{},
	}
	for _, q := range doc.Quests.Completed {
		for kind, n := range q.Reward.Seeds {
			st.TotalRewards[kind] += n
		}
	}
	return st
}

func (s *service) markNotified(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notified[id] {
		return false
	}
	s.notified[id] = true
	return true
}

func (s *service) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notified, id)
}

func payloadOf(q *domain.Quest) event.QuestPayloadV1 {
	return event.QuestPayloadV1{
		QuestID:    q.ID,
		ResidentID: q.ResidentID,
		QuestType:  q.Type,
		Target:     q.Target,
	}
}
