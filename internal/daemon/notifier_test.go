package daemon

import (
	"testing"
	"time"

	"github.com/salmancert/atomic/internal/domain"
	"github.com/salmancert/atomic/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestIsQuietHour_WrapsMidnight(t *testing.T) {
	policy := domain.NotificationPolicy{QuietStart: "22:00", QuietEnd: "08:00"}

	for _, tc := range []struct {
		hour, min int
		quiet     bool
	}{
		{23, 0, true},
		{2, 30, true},
		{7, 59, true},
		{8, 0, false},
		{12, 0, false},
		{21, 59, false},
		{22, 0, true},
	} {
		at := time.Date(2026, 7, 1, tc.hour, tc.min, 0, 0, time.Local)
		if got := isQuietHour(policy, at); got != tc.quiet {
			t.Errorf("%02d:%02d: expected quiet=%v, got %v", tc.hour, tc.min, tc.quiet, got)
		}
	}
}

func TestIsQuietHour_SameDayWindow(t *testing.T) {
	policy := domain.NotificationPolicy{QuietStart: "13:00", QuietEnd: "14:00"}

	if !isQuietHour(policy, time.Date(2026, 7, 1, 13, 30, 0, 0, time.Local)) {
		t.Error("13:30 should be quiet")
	}
	if isQuietHour(policy, time.Date(2026, 7, 1, 14, 0, 0, 0, time.Local)) {
		t.Error("the window end is exclusive")
	}
}

func TestIsQuietHour_EmptyPolicyNeverQuiet(t *testing.T) {
	if isQuietHour(domain.NotificationPolicy{}, time.Now()) {
		t.Error("an empty policy must never suppress")
	}
}

func TestJournalNotifier_JournalsNotification(t *testing.T) {
	db := testDB(t)
	n := newJournalNotifier(db, domain.NotificationPolicy{MaxPerDay: 3})

	n.Notify(domain.Notification{
		ID:        "n-1",
		Type:      domain.NotifyMilestone,
		Title:     "Milestone Reached",
		Body:      "Congratulations! You've achieved One week streak for instagram!",
		CreatedAt: time.Date(2026, 7, 1, 12, 0, 0, 0, time.Local),
	})

	pending, err := db.ListPendingNotifications(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 journaled notification, got %d", len(pending))
	}
	if pending[0].ID != "n-1" {
		t.Errorf("expected n-1, got %s", pending[0].ID)
	}
}

func TestJournalNotifier_DailyCapSuppresses(t *testing.T) {
	db := testDB(t)
	n := newJournalNotifier(db, domain.NotificationPolicy{MaxPerDay: 2})

	at := time.Now() // count-today truncates to local midnight
	for i := 0; i < 4; i++ {
		n.Notify(domain.Notification{
			ID:        string(rune('a' + i)),
			Type:      domain.NotifyIntervention,
			Title:     "Usage Alert",
			CreatedAt: at,
		})
	}

	count, err := db.NotificationCountToday()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected the cap to hold at 2, got %d", count)
	}
}

func TestJournalNotifier_QuietHoursSuppress(t *testing.T) {
	db := testDB(t)
	n := newJournalNotifier(db, domain.NotificationPolicy{
		MaxPerDay:  10,
		QuietStart: "00:00",
		QuietEnd:   "23:59",
	})

	n.Notify(domain.Notification{
		ID:        "quiet-1",
		Type:      domain.NotifyIntervention,
		Title:     "Usage Alert",
		CreatedAt: time.Now(),
	})

	pending, err := db.ListPendingNotifications(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected suppression during quiet hours, got %d journaled", len(pending))
	}
}
