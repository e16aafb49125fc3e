package habit

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salmancert/atomic/internal/domain"
	"github.com/salmancert/atomic/internal/infra/metrics"
)

// Notifier delivers rendered notifications. Delivery, permission handling,
// and scheduling belong entirely to the implementation — the engine treats
// Notify as fire-and-forget.
type Notifier interface {
	Notify(n domain.Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n domain.Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n domain.Notification) { f(n) }

// Engine is the habit-evaluation and intervention-triggering engine. It owns
// the profile, the usage ledger, and the reward ledger; one mutex guards
// them all so a Record and an EvaluateDaily never interleave partially even
// when the host's callbacks arrive concurrently.
//
// The engine performs no I/O: usage samples and location fixes are pushed in
// already resolved, and decisions leave as notifications through the
// Notifier.
type Engine struct {
	mu sync.Mutex

	profile  domain.Profile
	triggers domain.Triggers
	catalog  []domain.Intervention

	ledger    *UsageLedger
	rewards   *RewardLedger
	evaluator *TriggerEvaluator

	notifier Notifier
}

// NewEngine creates an engine that hands notifications to the given
// notifier. A nil notifier discards them.
func NewEngine(notifier Notifier, evaluator *TriggerEvaluator) *Engine {
	if notifier == nil {
		notifier = NotifierFunc(func(domain.Notification) {})
	}
	if evaluator == nil {
		evaluator = NewTriggerEvaluator()
	}
	return &Engine{
		profile: domain.Profile{
			DailyLimitMinutes: make(map[domain.AppID]int),
		},
		ledger:    NewUsageLedger(),
		rewards:   NewRewardLedger(nil, nil),
		evaluator: evaluator,
		notifier:  notifier,
	}
}

// ─── Configuration (total-overwrite setters, no partial merge) ──────────────

// SetTargetApps overwrites the target set. Limits configured for apps no
// longer targeted are dropped, preserving the invariant that every limit
// key is a target app.
func (e *Engine) SetTargetApps(apps []domain.AppID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.profile.TargetApps = append([]domain.AppID(nil), apps...)
	for app := range e.profile.DailyLimitMinutes {
		if !e.profile.IsTarget(app) {
			delete(e.profile.DailyLimitMinutes, app)
		}
	}
}

// SetLimit configures the daily limit in minutes for a target app.
func (e *Engine) SetLimit(app domain.AppID, minutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if minutes < 0 {
		return domain.ErrNegativeLimit
	}
	if !e.profile.IsTarget(app) {
		return domain.ErrNotTargetApp
	}
	e.profile.DailyLimitMinutes[app] = minutes
	return nil
}

// SetReplacementActivities overwrites the replacement-activity list.
func (e *Engine) SetReplacementActivities(activities []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.ReplacementActivities = append([]string(nil), activities...)
}

// SetImplementationIntentions overwrites the intention list.
func (e *Engine) SetImplementationIntentions(intentions []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.ImplementationIntentions = append([]string(nil), intentions...)
}

// SetTriggers overwrites the configured trigger set.
func (e *Engine) SetTriggers(t domain.Triggers) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.triggers = domain.Triggers{
		Times:     append([]domain.TimeTrigger(nil), t.Times...),
		Locations: append([]domain.LocationTrigger(nil), t.Locations...),
	}
}

// SetInterventionCatalog overwrites the intervention catalog.
func (e *Engine) SetInterventionCatalog(catalog []domain.Intervention) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.catalog = append([]domain.Intervention(nil), catalog...)
}

// SetRewardCatalog overwrites the reward catalog. Order matters: earlier
// rewards are granted first during the daily sweep.
func (e *Engine) SetRewardCatalog(catalog []domain.Reward) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rewards.SetCatalog(catalog)
}

// SetMilestones overwrites the streak-milestone table.
func (e *Engine) SetMilestones(m domain.Milestones) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rewards.SetMilestones(m)
}

// ─── Usage ingestion ────────────────────────────────────────────────────────

// Record stores a pushed usage sample and updates the app's streak.
func (e *Engine) Record(s domain.UsageSample) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ledger.Record(s, e.profile.DailyLimitMinutes); err != nil {
		return err
	}
	metrics.SamplesRecorded.WithLabelValues(string(s.App)).Inc()
	metrics.StreakDays.WithLabelValues(string(s.App)).Set(float64(e.ledger.Streak(s.App)))
	return nil
}

// Usage returns the recorded minutes for (day, app), or 0 if absent.
func (e *Engine) Usage(day domain.Day, app domain.AppID) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Usage(day, app)
}

// ─── Daily evaluation ───────────────────────────────────────────────────────

// CheckIn runs the daily evaluation for the given day and emits one
// notification per milestone hit and per reward granted. Calling it more
// than once for the same day earns points again — once-per-day scheduling
// is the caller's discipline.
func (e *Engine) CheckIn(day domain.Day) (domain.DailyResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result, err := e.rewards.EvaluateDaily(day, e.profile.DailyLimitMinutes, e.ledger.UsageForDay(day), e.ledger.Streaks())
	if err != nil {
		return domain.DailyResult{}, err
	}

	metrics.PointsAwarded.Add(float64(result.PointsEarned))
	metrics.PointsBalance.Set(float64(e.rewards.Points()))

	for _, hit := range result.Milestones {
		metrics.MilestonesHit.Inc()
		e.emit(domain.Notification{
			Type:  domain.NotifyMilestone,
			Title: "Milestone Reached",
			Body:  "Congratulations! You've achieved " + hit.Label + " for " + string(hit.App) + "!",
		})
	}
	for _, reward := range result.Rewards {
		metrics.RewardsGranted.WithLabelValues(reward).Inc()
		e.emit(domain.Notification{
			Type:  domain.NotifyReward,
			Title: "Reward Earned",
			Body:  "You've earned the " + reward + "!",
		})
	}

	return result, nil
}

// ─── Trigger checks ─────────────────────────────────────────────────────────

// Tick checks the time triggers against the given instant. The host calls
// it on its periodic background tick; any firing cadence is the host's
// responsibility. Returns the emitted notification, if any.
func (e *Engine) Tick(now time.Time) (*domain.Notification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	iv, err := e.evaluator.CheckTime(now, e.triggers.Times, e.catalog)
	if err != nil || iv == nil {
		return nil, err
	}
	metrics.InterventionsFired.WithLabelValues("time").Inc()
	return e.dispatch(*iv, domain.DayOf(now)), nil
}

// LocationFix checks the location triggers against a resolved fix pushed
// by the location collaborator. Returns the emitted notification, if any.
func (e *Engine) LocationFix(fix domain.Fix) (*domain.Notification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	iv, err := e.evaluator.CheckLocation(fix, e.triggers.Locations, e.catalog)
	if err != nil || iv == nil {
		return nil, err
	}
	metrics.InterventionsFired.WithLabelValues("location").Inc()
	return e.dispatch(*iv, domain.DayOf(time.Now())), nil
}

// dispatch renders the intervention and emits the result. Callers hold e.mu.
func (e *Engine) dispatch(iv domain.Intervention, day domain.Day) *domain.Notification {
	n, ok := Render(iv, e.dispatchContext(day))
	if !ok {
		return nil // unknown kind: silent no-op
	}
	return e.emit(n)
}

// dispatchContext picks the triggering app for rendered bodies: the target
// app with the most recorded usage today. Callers hold e.mu.
func (e *Engine) dispatchContext(day domain.Day) DispatchContext {
	ctx := DispatchContext{}
	for _, app := range e.profile.TargetApps {
		if m := e.ledger.Usage(day, app); ctx.App == "" || m > ctx.Minutes {
			ctx.App = app
			ctx.Minutes = m
		}
	}
	if len(e.profile.ReplacementActivities) > 0 {
		ctx.Goal = e.profile.ReplacementActivities[0]
	}
	return ctx
}

// emit stamps and hands a notification to the notifier. Callers hold e.mu.
func (e *Engine) emit(n domain.Notification) *domain.Notification {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	metrics.NotificationsEmitted.WithLabelValues(string(n.Type)).Inc()
	e.notifier.Notify(n)
	return &n
}

// ─── Snapshots ──────────────────────────────────────────────────────────────

// Profile returns a copy of the current profile.
func (e *Engine) Profile() domain.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()

	limits := make(map[domain.AppID]int, len(e.profile.DailyLimitMinutes))
	for app, m := range e.profile.DailyLimitMinutes {
		limits[app] = m
	}
	return domain.Profile{
		TargetApps:               append([]domain.AppID(nil), e.profile.TargetApps...),
		DailyLimitMinutes:        limits,
		ReplacementActivities:    append([]string(nil), e.profile.ReplacementActivities...),
		ImplementationIntentions: append([]string(nil), e.profile.ImplementationIntentions...),
	}
}

// Streaks returns a copy of the current streak state.
func (e *Engine) Streaks() domain.StreakState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Streaks()
}

// LongestStreak returns the longest streak the app has ever held.
func (e *Engine) LongestStreak(app domain.AppID) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.LongestStreak(app)
}

// Points returns the current unspent point balance.
func (e *Engine) Points() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rewards.Points()
}

// GrantedRewards returns the granted-reward multiset in grant order.
func (e *Engine) GrantedRewards() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rewards.Granted()
}

// Triggers returns a copy of the configured trigger set.
func (e *Engine) Triggers() domain.Triggers {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.Triggers{
		Times:     append([]domain.TimeTrigger(nil), e.triggers.Times...),
		Locations: append([]domain.LocationTrigger(nil), e.triggers.Locations...),
	}
}

// InterventionCatalog returns a copy of the intervention catalog.
func (e *Engine) InterventionCatalog() []domain.Intervention {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Intervention(nil), e.catalog...)
}
