package clock

import (
	"time"

	"github.com/osse101/MagicGarden_Go/internal/domain"
)

// Season names
const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
)

// Hour boundaries of the time-of-day buckets, [start, end)
const (
	MorningStartHour   = 6
	AfternoonStartHour = 10
	EveningStartHour   = 16
	NightStartHour     = 20
)

// OfflineDuration returns how long the game was closed. An unknown or future
// last access yields zero.
func OfflineDuration(lastAccess *time.Time, now time.Time) time.Duration {
	if lastAccess == nil || lastAccess.IsZero() {
		return 0
	}
	d := now.Sub(*lastAccess)
	if d < 0 {
		return 0
	}
	return d
}

// SameDay reports whether a and b fall on the same calendar date in b's location
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsYesterday reports whether prev falls on the calendar day before now, in now's location
func IsYesterday(prev, now time.Time) bool {
	return SameDay(prev, StartOfDay(now).AddDate(0, 0, -1))
}

// StartOfDay returns local midnight of t's calendar date
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMidnight returns the next local midnight strictly after t
func NextMidnight(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// DateKey formats t's calendar date as YYYY-MM-DD
func DateKey(t time.Time) string {
	return t.Format(domain.DateKeyLayout)
}

// TimeOfDay maps an hour of t to its schedule bucket
func TimeOfDay(t time.Time) string {
	h := t.Hour()
	switch {
	case h >= MorningStartHour && h < AfternoonStartHour:
		return domain.TimeOfDayMorning
	case h >= AfternoonStartHour && h < EveningStartHour:
		return domain.TimeOfDayAfternoon
	case h >= EveningStartHour && h < NightStartHour:
		return domain.TimeOfDayEvening
	default:
		return domain.TimeOfDayNight
	}
}

// SeasonOf returns the season of t's month
func SeasonOf(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// HoursToDuration converts fractional catalog hours to an exact duration
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
