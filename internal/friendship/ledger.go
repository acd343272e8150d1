package friendship

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/utils"
)

var actionDeltas = map[string]int{
	domain.ActionVisit:   5,
	domain.ActionGift:    10,
	domain.ActionQuest:   15,
	domain.ActionPlay:    10,
	domain.ActionPet:     5,
	domain.ActionTalk:    3,
	domain.ActionSpecial: 20,
}

// Level is one named friendship tier
type Level struct {
	Key string
	Min int
}

// levels are ordered by threshold
var levels = []Level{
	{LevelStranger, 0},
	{LevelAcquaintance, 25},
	{LevelFriend, 50},
	{LevelBestFriend, 75},
	{LevelFamily, 100},
}

// Milestone unlocks a feature when the score first reaches Threshold
type Milestone struct {
	Threshold int
	Reward    string
}

var milestones = []Milestone{
	{25, RewardGreetingUnlock},
	{50, RewardGiftUnlock},
	{75, RewardPlayUnlock},
	{100, RewardNamingUnlock},
}

// MilestoneStatus is a milestone and whether a resident reached it
type MilestoneStatus struct {
	Milestone
	Achieved bool
}

// Result describes an applied interaction
type Result struct {
	ResidentID   string
	Action       string
	Delta        int
	OldScore     int
	NewScore     int
	OldLevel     string
	NewLevel     string
	LevelChanged bool
	Milestone    *Milestone
}

// Statistics summarizes friendship across residents
type Statistics struct {
	ResidentCount int
	Total         int
	Average       int
	MaxLevel      string
	FamilyCount   int
}

// Delta returns the point change of an action kind
func Delta(action string) (int, bool) {
	d, ok := actionDeltas[action]
	return d, ok
}

// LevelOf maps a score to its tier key
func LevelOf(score int) string {
	key := LevelStranger
	for _, l := range levels {
		if score >= l.Min {
			key = l.Key
		}
	}
	return key
}

// crossedMilestone returns the lowest milestone crossed upward, if any
func crossedMilestone(oldScore, newScore int) *Milestone {
	for _, m := range milestones {
		if oldScore < m.Threshold && newScore >= m.Threshold {
			return &m
		}
	}
	return nil
}

// Ledger applies friendship interactions to residents. It only mutates the resident it
// is given; callers persist the document.
type Ledger struct {
	catalog *catalog.Catalog
	clock   clock.Clock
	bus     event.Bus
}

// NewLedger creates a friendship ledger
func NewLedger(cat *catalog.Catalog, clk clock.Clock, bus event.Bus) *Ledger {
	return &Ledger{catalog: cat, clock: clk, bus: bus}
}

// ApplyInteraction applies an action's fixed delta. Pets and gifts are subject to the
// per-day caps recorded on the resident.
func (l *Ledger) ApplyInteraction(ctx context.Context, r *domain.Resident, action string) (*Result, error) {
	delta, ok := actionDeltas[action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}
	if err := l.checkDailyLimit(ctx, r, action); err != nil {
		return nil, err
	}
	return l.apply(ctx, r, action, delta), nil
}

// GiveGift applies a gift interaction, worth more when the resident type likes the item
func (l *Ledger) GiveGift(ctx context.Context, r *domain.Resident, item string) (*Result, error) {
	if err := l.checkDailyLimit(ctx, r, domain.ActionGift); err != nil {
		return nil, err
	}
	delta := actionDeltas[domain.ActionGift]
	if l.catalog.IsLikedGift(r.Type, item) {
		delta = LikedGiftDelta
	}
	return l.apply(ctx, r, domain.ActionGift, delta), nil
}

// Visit applies the once-per-day visit interaction. Consecutive days build a streak
// that adds one point per week, up to a small cap.
func (l *Ledger) Visit(ctx context.Context, r *domain.Resident) (*Result, error) {
	now := l.clock.Now()
	if r.LastVisit != nil && clock.SameDay(*r.LastVisit, now) {
		return nil, fmt.Errorf("%w: %s already visited today", domain.ErrDailyLimitReached, r.ID)
	}

	if r.LastVisit != nil && clock.IsYesterday(*r.LastVisit, now) {
		r.VisitStreak++
	} else {
		r.VisitStreak = 1
	}
	r.LastVisit = &now

	bonus := min(VisitStreakBonusMax, r.VisitStreak/VisitStreakStep)
	return l.apply(ctx, r, domain.ActionVisit, actionDeltas[domain.ActionVisit]+bonus), nil
}

func (l *Ledger) checkDailyLimit(ctx context.Context, r *domain.Resident, action string) error {
	var limited bool
	switch action {
	case domain.ActionPet:
		limited = r.TodayPetCount >= domain.PetDailyLimit
	case domain.ActionGift:
		limited = r.TodayGiftReceived
	}
	if !limited {
		return nil
	}
	logger.FromContext(ctx).Debug(LogMsgLimitReached, "resident_id", r.ID, "action", action)
	return fmt.Errorf("%w: %s for %s", domain.ErrDailyLimitReached, action, r.ID)
}

func (l *Ledger) apply(ctx context.Context, r *domain.Resident, action string, delta int) *Result {
	log := logger.FromContext(ctx)
	now := l.clock.Now()

	oldScore := r.Friendship
	newScore := utils.Clamp(oldScore+delta, domain.FriendshipMin, domain.FriendshipMax)
	r.Friendship = newScore
	r.LastInteraction = &now

	switch action {
	case domain.ActionPet:
		r.TodayPetCount++
	case domain.ActionGift:
		r.TodayGiftReceived = true
	}

	res := &Result{
		ResidentID: r.ID,
		Action:     action,
		Delta:      newScore - oldScore,
		OldScore:   oldScore,
		NewScore:   newScore,
		OldLevel:   LevelOf(oldScore),
		NewLevel:   LevelOf(newScore),
		Milestone:  crossedMilestone(oldScore, newScore),
	}
	res.LevelChanged = res.OldLevel != res.NewLevel

	log.Info(LogMsgInteraction, "resident_id", r.ID, "action", action, "old", oldScore, "new", newScore)
	event.Emit(ctx, l.bus, event.New(event.FriendshipChanged, event.FriendshipChangedPayloadV1{
		ResidentID: r.ID,
		Action:     action,
		Delta:      res.Delta,
		NewScore:   newScore,
	}))

	if res.Milestone != nil {
		log.Info(LogMsgMilestoneReached, "resident_id", r.ID, "threshold", res.Milestone.Threshold)
		event.Emit(ctx, l.bus, event.New(event.FriendshipMilestone, event.FriendshipMilestonePayloadV1{
			ResidentID:   r.ID,
			ResidentType: r.Type,
			Threshold:    res.Milestone.Threshold,
			Level:        res.NewLevel,
			Reward:       res.Milestone.Reward,
		}))
	}
	return res
}

// CanName reports whether a resident may be given a name
func CanName(r *domain.Resident) bool {
	return r.Friendship >= domain.FriendshipMax && !r.HasName()
}

// SetName assigns a resident's name once friendship is maxed. The name is trimmed and
// NFC-normalized.
func (l *Ledger) SetName(ctx context.Context, r *domain.Resident, name string) error {
	if !CanName(r) {
		return fmt.Errorf("%w: %s cannot be named", domain.ErrNotEligible, r.ID)
	}
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	r.Name = name
	logger.FromContext(ctx).Info(LogMsgResidentNamed, "resident_id", r.ID, "name", name)
	return nil
}

// Milestones lists every milestone and whether the resident reached it
func Milestones(r *domain.Resident) []MilestoneStatus {
	out := make([]MilestoneStatus, len(milestones))
	for i, m := range milestones {
		out[i] = MilestoneStatus{Milestone: m, Achieved: r.Friendship >= m.Threshold}
	}
	return out
}

// Stats summarizes a set of residents
func Stats(residents []*domain.Resident) Statistics {
	s := Statistics{ResidentCount: len(residents), MaxLevel: LevelStranger}
	if len(residents) == 0 {
		return s
	}
	best := 0
	for _, r := range residents {
		s.Total += r.Friendship
		best = max(best, r.Friendship)
		if r.Friendship >= domain.FriendshipMax {
			s.FamilyCount++
		}
	}
	s.Average = int(float64(s.Total)/float64(len(residents)) + 0.5)
	s.MaxLevel = LevelOf(best)
	return s
}
