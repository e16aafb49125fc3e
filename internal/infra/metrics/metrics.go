// Package metrics provides Prometheus metrics for the atomic engine:
// counters and gauges for samples, points, rewards, triggers, and
// notifications.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Usage ──────────────────────────────────────────────────────────────────

// SamplesRecorded tracks recorded usage samples by app.
var SamplesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "atomic",
	Name:      "samples_recorded_total",
	Help:      "Total usage samples recorded.",
}, []string{"app"})

// StreakDays tracks the current streak length per app.
var StreakDays = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "atomic",
	Name:      "streak_days",
	Help:      "Current consecutive days at/under limit, per app.",
}, []string{"app"})

// ─── Rewards ────────────────────────────────────────────────────────────────

// PointsAwarded tracks points earned by daily evaluation.
var PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "atomic",
	Name:      "points_awarded_total",
	Help:      "Total points awarded by daily evaluation.",
})

// PointsBalance tracks the current unspent point balance.
var PointsBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "atomic",
	Name:      "points_balance_current",
	Help:      "Current unspent point balance.",
})

// RewardsGranted tracks granted rewards by name.
var RewardsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "atomic",
	Name:      "rewards_granted_total",
	Help:      "Total rewards granted.",
}, []string{"reward"})

// MilestonesHit tracks milestone events.
var MilestonesHit = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "atomic",
	Name:      "milestones_hit_total",
	Help:      "Total milestone events emitted.",
})

// ─── Triggers & Notifications ───────────────────────────────────────────────

// InterventionsFired tracks fired interventions by trigger source.
var InterventionsFired = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "atomic",
	Name:      "interventions_fired_total",
	Help:      "Total interventions fired.",
}, []string{"source"})

// NotificationsEmitted tracks notifications handed to the notifier.
var NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "atomic",
	Name:      "notifications_emitted_total",
	Help:      "Total notifications emitted.",
}, []string{"type"})

// NotificationsSuppressed tracks notifications dropped by delivery policy.
var NotificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "atomic",
	Name:      "notifications_suppressed_total",
	Help:      "Total notifications suppressed by policy.",
}, []string{"reason"})
