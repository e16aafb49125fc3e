package daemon

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/salmancert/atomic/internal/domain"
	"github.com/salmancert/atomic/internal/infra/metrics"
	"github.com/salmancert/atomic/internal/infra/sqlite"
)

// journalNotifier is the daemon's notification collaborator. It applies the
// delivery policy (daily cap, quiet hours), journals what survives, and logs
// it. A real host would forward to the platform notification service here —
// the engine never knows the difference.
type journalNotifier struct {
	db     *sqlite.DB
	policy domain.NotificationPolicy
}

func newJournalNotifier(db *sqlite.DB, policy domain.NotificationPolicy) *journalNotifier {
	return &journalNotifier{db: db, policy: policy}
}

// Notify applies the policy and journals the notification. Suppression is
// silent from the engine's point of view — delivery is not its concern.
func (n *journalNotifier) Notify(notif domain.Notification) {
	if n.policy.MaxPerDay > 0 {
		count, err := n.db.NotificationCountToday()
		if err != nil {
			log.Printf("[notify] count today: %v", err)
		} else if count >= n.policy.MaxPerDay {
			metrics.NotificationsSuppressed.WithLabelValues("daily_limit").Inc()
			return
		}
	}

	if isQuietHour(n.policy, notif.CreatedAt) {
		metrics.NotificationsSuppressed.WithLabelValues("quiet_hours").Inc()
		return
	}

	if err := n.db.InsertNotification(notif); err != nil {
		log.Printf("[notify] journal: %v", err)
	}
	log.Printf("[notify] %s: %s", notif.Title, notif.Body)
}

// isQuietHour returns true if the given time falls within quiet hours.
func isQuietHour(policy domain.NotificationPolicy, t time.Time) bool {
	if policy.QuietStart == "" || policy.QuietEnd == "" {
		return false
	}

	startHour, startMin := parseHHMM(policy.QuietStart)
	endHour, endMin := parseHHMM(policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g. 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
