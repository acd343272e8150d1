package daily

import (
	"hash/fnv"
	"time"

	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/domain"
)

// Activities used when a resident type has no schedule of its own
var defaultSchedule = domain.Schedule{
	Morning:   "walk",
	Afternoon: "garden",
	Evening:   "home",
	Night:     "sleep",
}

var daytimeActivities = []string{"walk", "garden", "play", "home"}

// DailySchedule derives a resident's schedule for a calendar day. The result depends only
// on the resident id, its usual schedule and the date, so it is stable for the whole day.
// Nights are never varied.
func DailySchedule(residentID string, usual domain.Schedule, day time.Time) domain.Schedule {
	if usual == (domain.Schedule{}) {
		usual = defaultSchedule
	}
	key := clock.DateKey(day)
	return domain.Schedule{
		Morning:   vary(residentID, key, domain.TimeOfDayMorning, usual.Morning),
		Afternoon: vary(residentID, key, domain.TimeOfDayAfternoon, usual.Afternoon),
		Evening:   vary(residentID, key, domain.TimeOfDayEvening, usual.Evening),
		Night:     usual.Night,
	}
}

func vary(residentID, dateKey, bucket, usual string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(residentID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(dateKey))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(bucket))
	sum := h.Sum64()

	if sum%scheduleVariationBase >= scheduleVariation {
		return usual
	}
	return daytimeActivities[(sum/scheduleVariationBase)%uint64(len(daytimeActivities))]
}
