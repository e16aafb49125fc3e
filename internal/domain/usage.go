package domain

import "time"

// Day is a calendar day in YYYY-MM-DD form. Usage is keyed by day, not
// instant, so samples reported at different times of day collapse to the
// same key.
type Day string

// DayOf returns the calendar day of the given instant in UTC.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format("2006-01-02"))
}

// UsageSample is one observed per-app usage reading. Usage is typically
// reported cumulatively per day, so a later sample for the same (day, app)
// overwrites the earlier one.
type UsageSample struct {
	Day     Day   `json:"day"`
	App     AppID `json:"app"`
	Minutes int   `json:"minutes"`
}

// StreakState maps each app to its count of consecutive evaluated days
// at/under the configured limit. Absent apps default to 0.
type StreakState map[AppID]int
