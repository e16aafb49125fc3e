package habit

import (
	"sort"

	"github.com/salmancert/atomic/internal/domain"
)

// Point values for the daily evaluation rules.
const (
	pointsUnderLimit = 20 // usage at/under the daily limit
	pointsUnderHalf  = 20 // further bonus at/under half the limit
	pointsPerStreak  = 5  // per streak day
	streakBonusCap   = 50 // streak bonus ceiling per app
)

// RewardLedger accumulates points from daily evaluation, detects milestones,
// and grants rewards from the catalog. It owns RewardState and is its only
// mutator.
type RewardLedger struct {
	state      domain.RewardState
	catalog    []domain.Reward
	milestones domain.Milestones
}

// NewRewardLedger creates a reward ledger over the given catalogs.
func NewRewardLedger(catalog []domain.Reward, milestones domain.Milestones) *RewardLedger {
	return &RewardLedger{
		catalog:    catalog,
		milestones: milestones,
	}
}

// SetCatalog overwrites the reward catalog. Total overwrite, no merge.
func (r *RewardLedger) SetCatalog(catalog []domain.Reward) {
	r.catalog = catalog
}

// SetMilestones overwrites the milestone table. Total overwrite, no merge.
func (r *RewardLedger) SetMilestones(m domain.Milestones) {
	r.milestones = m
}

// EvaluateDaily runs the once-per-day evaluation:
//
//  1. Per app with a limit: +20 points at/under the limit, +20 more at/under
//     half the limit (integer division) — an at/under-half day is worth 40.
//  2. Per app with a streak: +min(streak*5, 50) points, and a milestone hit
//     for every table entry whose length EQUALS the current streak.
//  3. Sweep the reward catalog: repeated in-order passes, granting each
//     affordable reward once per pass, until a pass grants nothing. A single
//     call may grant the same reward repeatedly across passes, or nothing at
//     all below the cheapest threshold.
//
// Idempotency per calendar day is the caller's scheduling discipline: a
// second call for the same day earns points again.
func (r *RewardLedger) EvaluateDaily(day domain.Day, limits map[domain.AppID]int, usage map[domain.AppID]int, streaks domain.StreakState) (domain.DailyResult, error) {
	if len(limits) == 0 {
		return domain.DailyResult{}, domain.ErrNoLimitsConfigured
	}

	result := domain.DailyResult{Day: day}

	for _, app := range sortedApps(limits) {
		limit := limits[app]
		minutes := usage[app] // 0 when unrecorded
		if minutes <= limit {
			result.PointsEarned += pointsUnderLimit
			if minutes <= limit/2 {
				result.PointsEarned += pointsUnderHalf
			}
		}
	}

	for _, app := range sortedApps(streaks) {
		streak := streaks[app]
		if streak <= 0 {
			continue
		}
		bonus := streak * pointsPerStreak
		if bonus > streakBonusCap {
			bonus = streakBonusCap
		}
		result.PointsEarned += bonus

		if label, ok := r.milestones[streak]; ok {
			result.Milestones = append(result.Milestones, domain.MilestoneHit{App: app, Label: label})
		}
	}

	r.state.Points += result.PointsEarned

	// Reward sweep: repeated passes over the catalog in order, each pass
	// granting each affordable reward once, until a full pass grants
	// nothing. Earlier-listed rewards are granted first, and a reward can
	// be granted more than once across passes.
	for swept := true; swept; {
		swept = false
		for _, reward := range r.catalog {
			if reward.CostPoints <= 0 {
				continue
			}
			if r.state.Points >= reward.CostPoints {
				r.state.Points -= reward.CostPoints
				r.state.Granted = append(r.state.Granted, reward.Name)
				result.Rewards = append(result.Rewards, reward.Name)
				swept = true
			}
		}
	}

	return result, nil
}

// Points returns the current unspent point balance.
func (r *RewardLedger) Points() int {
	return r.state.Points
}

// Granted returns a copy of the granted-reward multiset in grant order.
func (r *RewardLedger) Granted() []string {
	out := make([]string, len(r.state.Granted))
	copy(out, r.state.Granted)
	return out
}

// sortedApps returns the map's keys in lexical order so evaluation output
// is deterministic.
func sortedApps[V any](m map[domain.AppID]V) []domain.AppID {
	apps := make([]domain.AppID, 0, len(m))
	for app := range m {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i] < apps[j] })
	return apps
}
