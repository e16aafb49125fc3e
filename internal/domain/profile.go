// Package domain holds the core types of the atomic habit engine:
// profiles, usage samples, streaks, rewards, triggers, and interventions.
// Domain types are pure — no infrastructure dependency.
package domain

// AppID identifies a tracked application. Unique within a profile.
type AppID string

// Profile holds the user's target apps and behavior-change configuration.
// Invariant: every key of DailyLimitMinutes is a target app. An app may
// lack a configured limit — that means "no limit", not "limit 0".
type Profile struct {
	TargetApps               []AppID         `json:"target_apps"`
	DailyLimitMinutes        map[AppID]int   `json:"daily_limit_minutes"`
	ReplacementActivities    []string        `json:"replacement_activities"`
	ImplementationIntentions []string        `json:"implementation_intentions"`
}

// IsTarget reports whether the app is in the target set.
func (p Profile) IsTarget(app AppID) bool {
	for _, a := range p.TargetApps {
		if a == app {
			return true
		}
	}
	return false
}

// Limit returns the configured daily limit for the app and whether one exists.
func (p Profile) Limit(app AppID) (int, bool) {
	limit, ok := p.DailyLimitMinutes[app]
	return limit, ok
}
