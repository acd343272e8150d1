package domain

import "time"

// Reward is credited once when a quest completes
type Reward struct {
	Seeds map[string]int `json:"seeds,omitempty" yaml:"seeds"`
}

// QuestTemplate is the catalog definition a quest is generated from
type QuestTemplate struct {
	Type   string `json:"type" yaml:"type"`
	Target string `json:"target" yaml:"target"`
	Count  int    `json:"count" yaml:"count"`
	Reward Reward `json:"reward" yaml:"reward"`
	Text   string `json:"text" yaml:"text"`
}

// Quest is a quest instance handed out by a resident.
// Quests never expire and have no failure state.
type Quest struct {
	ID           string     `json:"id" validate:"required"`
	ResidentID   string     `json:"residentId" validate:"required"`
	ResidentType string     `json:"residentType"`
	Type         string     `json:"type" validate:"oneof=grow collect build visit gift discover"`
	Target       string     `json:"target"`
	Count        int        `json:"count" validate:"gte=1"`
	Reward       Reward     `json:"reward"`
	Text         string     `json:"text,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// IsCompleted reports whether the quest reached its terminal state
func (q *Quest) IsCompleted() bool {
	return q.CompletedAt != nil
}
