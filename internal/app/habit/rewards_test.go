package habit_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/salmancert/atomic/internal/app/habit"
	"github.com/salmancert/atomic/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Point Accumulation Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestRewards_UnderHalfLimitEarnsForty(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)
	limits := map[domain.AppID]int{"instagram": 30}
	usage := map[domain.AppID]int{"instagram": 10}

	result, err := r.EvaluateDaily("2026-07-01", limits, usage, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.PointsEarned != 40 {
		t.Errorf("expected 40 points (20 under limit + 20 under half), got %d", result.PointsEarned)
	}
	if r.Points() != 40 {
		t.Errorf("expected balance 40, got %d", r.Points())
	}
}

func TestRewards_UnderLimitOnlyEarnsTwenty(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)
	limits := map[domain.AppID]int{"instagram": 30}
	usage := map[domain.AppID]int{"instagram": 20} // over half (15), under limit

	result, err := r.EvaluateDaily("2026-07-01", limits, usage, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.PointsEarned != 20 {
		t.Errorf("expected 20 points, got %d", result.PointsEarned)
	}
}

func TestRewards_OverLimitEarnsNothing(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)
	limits := map[domain.AppID]int{"instagram": 30}
	usage := map[domain.AppID]int{"instagram": 31}

	result, err := r.EvaluateDaily("2026-07-01", limits, usage, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.PointsEarned != 0 {
		t.Errorf("expected 0 points over the limit, got %d", result.PointsEarned)
	}
}

func TestRewards_HalfLimitUsesIntegerDivision(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)
	limits := map[domain.AppID]int{"instagram": 31} // half is 15, not 15.5
	usage := map[domain.AppID]int{"instagram": 15}

	result, err := r.EvaluateDaily("2026-07-01", limits, usage, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.PointsEarned != 40 {
		t.Errorf("expected 40 points at the integer half, got %d", result.PointsEarned)
	}
}

func TestRewards_UnrecordedAppCountsAsZeroMinutes(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)
	limits := map[domain.AppID]int{"instagram": 30}

	result, err := r.EvaluateDaily("2026-07-01", limits, map[domain.AppID]int{}, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.PointsEarned != 40 {
		t.Errorf("expected 40 points for an unrecorded app (0 minutes), got %d", result.PointsEarned)
	}
}

func TestRewards_StreakBonusCapped(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)
	limits := map[domain.AppID]int{"instagram": 30}
	usage := map[domain.AppID]int{"instagram": 31} // over limit: isolate the streak bonus

	result, err := r.EvaluateDaily("2026-07-01", limits, usage, domain.StreakState{"instagram": 20})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.PointsEarned != 50 {
		t.Errorf("expected streak bonus capped at 50, got %d", result.PointsEarned)
	}
}

func TestRewards_StreakBonusBelowCap(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)
	limits := map[domain.AppID]int{"instagram": 30}
	usage := map[domain.AppID]int{"instagram": 31}

	result, err := r.EvaluateDaily("2026-07-01", limits, usage, domain.StreakState{"instagram": 7})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.PointsEarned != 35 {
		t.Errorf("expected 35 points for a 7-day streak, got %d", result.PointsEarned)
	}
}

func TestRewards_NoLimitsConfigured(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)

	_, err := r.EvaluateDaily("2026-07-01", nil, nil, nil)
	if !errors.Is(err, domain.ErrNoLimitsConfigured) {
		t.Fatalf("expected ErrNoLimitsConfigured, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Milestone Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestRewards_MilestoneFiresOnExactStreak(t *testing.T) {
	milestones := domain.Milestones{7: "One week streak"}
	limits := map[domain.AppID]int{"instagram": 30}
	usage := map[domain.AppID]int{"instagram": 31}

	for _, tc := range []struct {
		streak int
		want   int
	}{
		{6, 0},
		{7, 1},
		{8, 0},
	} {
		r := habit.NewRewardLedger(nil, milestones)
		result, err := r.EvaluateDaily("2026-07-01", limits, usage, domain.StreakState{"instagram": tc.streak})
		if err != nil {
			t.Fatalf("evaluate streak %d: %v", tc.streak, err)
		}
		if len(result.Milestones) != tc.want {
			t.Errorf("streak %d: expected %d milestone hits, got %d", tc.streak, tc.want, len(result.Milestones))
		}
	}
}

func TestRewards_MilestoneCarriesAppAndLabel(t *testing.T) {
	r := habit.NewRewardLedger(nil, domain.Milestones{3: "Three day streak"})
	limits := map[domain.AppID]int{"instagram": 30}

	result, err := r.EvaluateDaily("2026-07-01", limits, map[domain.AppID]int{"instagram": 31}, domain.StreakState{"instagram": 3})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := []domain.MilestoneHit{{App: "instagram", Label: "Three day streak"}}
	if !reflect.DeepEqual(result.Milestones, want) {
		t.Errorf("expected %v, got %v", want, result.Milestones)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Reward Sweep Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestRewards_SweepGrantsInCatalogOrder(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)

	// Bank 320 points over two evaluations with no catalog to sweep.
	limits := map[domain.AppID]int{"a": 30, "b": 30, "c": 30, "d": 30}
	for _, day := range []domain.Day{"2026-07-01", "2026-07-02"} {
		if _, err := r.EvaluateDaily(day, limits, nil, nil); err != nil {
			t.Fatalf("evaluate %s: %v", day, err)
		}
	}
	if r.Points() != 320 {
		t.Fatalf("expected 320 banked points, got %d", r.Points())
	}

	// Final evaluation earns 30 more (20 under limit + 10 streak bonus) for
	// a 350 balance, then sweeps: Badge (100) first, then Unlock (250).
	r.SetCatalog([]domain.Reward{
		{Name: "Badge", CostPoints: 100},
		{Name: "Unlock", CostPoints: 250},
	})
	result, err := r.EvaluateDaily("2026-07-03",
		map[domain.AppID]int{"a": 30},
		map[domain.AppID]int{"a": 20},
		domain.StreakState{"a": 2})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	want := []string{"Badge", "Unlock"}
	if !reflect.DeepEqual(result.Rewards, want) {
		t.Errorf("expected grants %v, got %v", want, result.Rewards)
	}
	if r.Points() != 0 {
		t.Errorf("expected 0 points after the sweep, got %d", r.Points())
	}
	if !reflect.DeepEqual(r.Granted(), want) {
		t.Errorf("expected granted state %v, got %v", want, r.Granted())
	}
}

func TestRewards_SweepGrantsSameRewardAcrossPasses(t *testing.T) {
	r := habit.NewRewardLedger(nil, nil)

	// Bank 200 points, then sweep a single 100-point reward: two grants.
	limits := map[domain.AppID]int{"a": 30, "b": 30, "c": 30, "d": 30, "e": 30}
	if _, err := r.EvaluateDaily("2026-07-01", limits, nil, nil); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if r.Points() != 200 {
		t.Fatalf("expected 200 banked points, got %d", r.Points())
	}

	r.SetCatalog([]domain.Reward{{Name: "Badge", CostPoints: 100}})
	result, err := r.EvaluateDaily("2026-07-02",
		map[domain.AppID]int{"a": 30},
		map[domain.AppID]int{"a": 31}, // over limit: no new points
		nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	want := []string{"Badge", "Badge"}
	if !reflect.DeepEqual(result.Rewards, want) {
		t.Errorf("expected %v, got %v", want, result.Rewards)
	}
	if r.Points() != 0 {
		t.Errorf("expected 0 points remaining, got %d", r.Points())
	}
}

func TestRewards_NothingGrantedBelowCheapest(t *testing.T) {
	r := habit.NewRewardLedger([]domain.Reward{{Name: "Badge", CostPoints: 100}}, nil)

	result, err := r.EvaluateDaily("2026-07-01",
		map[domain.AppID]int{"instagram": 30},
		map[domain.AppID]int{"instagram": 10},
		nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(result.Rewards) != 0 {
		t.Errorf("expected no grants at 40 points, got %v", result.Rewards)
	}
	if r.Points() != 40 {
		t.Errorf("points must carry over, got %d", r.Points())
	}
}
