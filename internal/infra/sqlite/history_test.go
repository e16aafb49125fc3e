package sqlite

import (
	"testing"
	"time"

	"github.com/salmancert/atomic/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ═══════════════════════════════════════════════════════════════════════════
// State Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestState_SetGet(t *testing.T) {
	db := testDB(t)

	if err := db.SetState("last_checkin_day", "2026-07-01"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := db.GetState("last_checkin_day")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "2026-07-01" {
		t.Errorf("expected 2026-07-01, got %q", got)
	}
}

func TestState_MissingKeyIsEmpty(t *testing.T) {
	db := testDB(t)

	got, err := db.GetState("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestState_Overwrite(t *testing.T) {
	db := testDB(t)

	_ = db.SetState("k", "one")
	_ = db.SetState("k", "two")

	got, _ := db.GetState("k")
	if got != "two" {
		t.Errorf("expected two, got %q", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Sample Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestSamples_UpsertLastWriteWins(t *testing.T) {
	db := testDB(t)
	at := time.Now()

	s := domain.UsageSample{Day: "2026-07-01", App: "instagram", Minutes: 10}
	if err := db.UpsertSample(s, at); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	s.Minutes = 25
	if err := db.UpsertSample(s, at.Add(time.Hour)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	samples, err := db.SamplesForDay("2026-07-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected one row per (day, app), got %d", len(samples))
	}
	if samples[0].Minutes != 25 {
		t.Errorf("expected the later write to win, got %d", samples[0].Minutes)
	}
}

func TestSamples_ForDayOrderedByApp(t *testing.T) {
	db := testDB(t)
	at := time.Now()

	_ = db.UpsertSample(domain.UsageSample{Day: "2026-07-01", App: "tiktok", Minutes: 5}, at)
	_ = db.UpsertSample(domain.UsageSample{Day: "2026-07-01", App: "instagram", Minutes: 10}, at)
	_ = db.UpsertSample(domain.UsageSample{Day: "2026-07-02", App: "instagram", Minutes: 15}, at)

	samples, err := db.SamplesForDay("2026-07-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].App != "instagram" || samples[1].App != "tiktok" {
		t.Errorf("expected app ordering, got %v", samples)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEvents_ListNewestFirst(t *testing.T) {
	db := testDB(t)
	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	_ = db.InsertEvent(Event{ID: "e-1", Kind: EventMilestone, App: "instagram", Label: "One week streak", Day: "2026-07-01", CreatedAt: base})
	_ = db.InsertEvent(Event{ID: "e-2", Kind: EventReward, Label: "Bronze Badge", Day: "2026-07-02", CreatedAt: base.Add(24 * time.Hour)})

	events, err := db.ListEvents(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "e-2" {
		t.Errorf("expected newest first, got %s", events[0].ID)
	}
	if events[1].Kind != EventMilestone || events[1].App != "instagram" {
		t.Errorf("milestone event round-trip broken: %+v", events[1])
	}
}

func TestEvents_LimitApplies(t *testing.T) {
	db := testDB(t)
	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_ = db.InsertEvent(Event{
			ID: string(rune('a' + i)), Kind: EventReward, Label: "Badge",
			Day: "2026-07-01", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	events, err := db.ListEvents(3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("expected 3 events, got %d", len(events))
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Notification Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestNotifications_PendingAndShown(t *testing.T) {
	db := testDB(t)
	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	_ = db.InsertNotification(domain.Notification{ID: "n-1", Type: domain.NotifyMilestone, Title: "Milestone Reached", Body: "x", CreatedAt: base})
	_ = db.InsertNotification(domain.Notification{ID: "n-2", Type: domain.NotifyReward, Title: "Reward Earned", Body: "y", CreatedAt: base.Add(time.Minute)})

	pending, err := db.ListPendingNotifications(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	if pending[0].ID != "n-1" {
		t.Errorf("expected oldest first, got %s", pending[0].ID)
	}

	if err := db.MarkNotificationShown("n-1"); err != nil {
		t.Fatalf("mark shown: %v", err)
	}

	pending, _ = db.ListPendingNotifications(10)
	if len(pending) != 1 || pending[0].ID != "n-2" {
		t.Errorf("expected only n-2 pending, got %v", pending)
	}
}

func TestNotifications_CountToday(t *testing.T) {
	db := testDB(t)

	_ = db.InsertNotification(domain.Notification{ID: "old", Type: domain.NotifyIntervention, Title: "t", Body: "b", CreatedAt: time.Now().AddDate(0, 0, -2)})
	_ = db.InsertNotification(domain.Notification{ID: "new", Type: domain.NotifyIntervention, Title: "t", Body: "b", CreatedAt: time.Now()})

	count, err := db.NotificationCountToday()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 notification today, got %d", count)
	}
}
