package domain

// ─── Reward Types ───────────────────────────────────────────────────────────

// Reward is one entry in the static reward catalog. Catalog order is the
// evaluation order: earlier-listed rewards are granted first during a sweep.
type Reward struct {
	Name       string `json:"name"`
	CostPoints int    `json:"cost_points"`
}

// RewardState is the accumulated reward account. Granted is a multiset kept
// in grant order — the same reward may appear more than once.
type RewardState struct {
	Points  int      `json:"points"`
	Granted []string `json:"granted"`
}

// Milestones maps an exact streak length to its label. A milestone fires
// only when a streak equals the length — not when it passes it.
type Milestones map[int]string

// MilestoneHit records a milestone reached by one app's streak.
type MilestoneHit struct {
	App   AppID  `json:"app"`
	Label string `json:"label"`
}

// DailyResult is the outcome of one daily evaluation.
type DailyResult struct {
	Day          Day            `json:"day"`
	PointsEarned int            `json:"points_earned"`
	Milestones   []MilestoneHit `json:"milestones"`
	Rewards      []string       `json:"rewards"`
}
