package domain

import "time"

// Schedule holds one activity per time-of-day bucket
type Schedule struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
	Night     string `json:"night"`
}

// ActivityAt returns the activity for a time-of-day bucket
func (s Schedule) ActivityAt(bucket string) string {
	switch bucket {
	case TimeOfDayMorning:
		return s.Morning
	case TimeOfDayAfternoon:
		return s.Afternoon
	case TimeOfDayEvening:
		return s.Evening
	default:
		return s.Night
	}
}

// Resident is a character living in the garden
type Resident struct {
	ID                string     `json:"id" validate:"required"`
	Type              string     `json:"type" validate:"required"`
	Name              string     `json:"name,omitempty"`
	Area              string     `json:"area,omitempty"`
	Position          Position   `json:"position"`
	Friendship        int        `json:"friendship" validate:"gte=0,lte=100"`
	TodayPetCount     int        `json:"todayPetCount" validate:"gte=0"`
	TodayGiftReceived bool       `json:"todayGiftReceived"`
	Schedule          Schedule   `json:"schedule"`
	ArrivedAt         time.Time  `json:"arrivedAt"`
	LastInteraction   *time.Time `json:"lastInteraction,omitempty"`
	LastVisit         *time.Time `json:"lastVisit,omitempty"`
	VisitStreak       int        `json:"visitStreak" validate:"gte=0"`
	HomeID            string     `json:"homeId,omitempty"`
}

func (r *Resident) EntityID() string    { return r.ID }
func (r *Resident) Kind() EntityKind    { return EntityResident }
func (r *Resident) Pos() Position       { return r.Position }
func (r *Resident) SetPos(pos Position) { r.Position = pos }

// HasName reports whether the player already named this resident
func (r *Resident) HasName() bool {
	return r.Name != ""
}

// DisplayName returns the player-given name, or the type when unnamed
func (r *Resident) DisplayName() string {
	if r.HasName() {
		return r.Name
	}
	return r.Type
}

// ResetDaily clears the per-day interaction counters
func (r *Resident) ResetDaily() {
	r.TodayPetCount = 0
	r.TodayGiftReceived = false
}
