package sqlite

import (
	"database/sql"
	"time"

	"github.com/salmancert/atomic/internal/domain"
)

// ─── State Key-Value ────────────────────────────────────────────────────────

// SetState stores a state key-value pair.
func (d *DB) SetState(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetState retrieves a state value by key.
// Returns "" if key not found.
func (d *DB) GetState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Usage Samples ──────────────────────────────────────────────────────────

// UpsertSample journals a usage sample, overwriting any earlier row for the
// same (day, app).
func (d *DB) UpsertSample(s domain.UsageSample, at time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO samples (day, app, minutes, recorded_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(day, app) DO UPDATE SET minutes=excluded.minutes, recorded_at=excluded.recorded_at`,
		string(s.Day), string(s.App), s.Minutes, at.Unix(),
	)
	return err
}

// SamplesForDay returns all journaled samples for the day.
func (d *DB) SamplesForDay(day domain.Day) ([]domain.UsageSample, error) {
	rows, err := d.db.Query(
		`SELECT day, app, minutes FROM samples WHERE day = ? ORDER BY app`,
		string(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []domain.UsageSample
	for rows.Next() {
		var s domain.UsageSample
		if err := rows.Scan(&s.Day, &s.App, &s.Minutes); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// ─── Events ─────────────────────────────────────────────────────────────────

// EventKind classifies journal events.
type EventKind string

const (
	EventMilestone EventKind = "milestone"
	EventReward    EventKind = "reward"
)

// Event is a journaled reward or milestone event.
type Event struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	App       string    `json:"app,omitempty"`
	Label     string    `json:"label"`
	Day       string    `json:"day"`
	CreatedAt time.Time `json:"created_at"`
}

// InsertEvent journals an event.
func (d *DB) InsertEvent(e Event) error {
	_, err := d.db.Exec(
		`INSERT INTO events (id, kind, app, label, day, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), e.App, e.Label, e.Day, e.CreatedAt.Unix(),
	)
	return err
}

// ListEvents returns the most recent events, newest first.
func (d *DB) ListEvents(limit int) ([]Event, error) {
	rows, err := d.db.Query(
		`SELECT id, kind, app, label, day, created_at FROM events
		 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Kind, &e.App, &e.Label, &e.Day, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		events = append(events, e)
	}
	return events, rows.Err()
}

// ─── Notifications ──────────────────────────────────────────────────────────

// InsertNotification journals an emitted notification.
func (d *DB) InsertNotification(n domain.Notification) error {
	_, err := d.db.Exec(
		`INSERT INTO notifications (id, type, title, body, created_at, shown) VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, string(n.Type), n.Title, n.Body, n.CreatedAt.Unix(), n.Shown,
	)
	return err
}

// NotificationCountToday returns how many notifications were created today.
func (d *DB) NotificationCountToday() (int, error) {
	midnight := time.Now().Truncate(24 * time.Hour).Unix()
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ?`, midnight,
	).Scan(&count)
	return count, err
}

// ListPendingNotifications returns unshown notifications, oldest first.
func (d *DB) ListPendingNotifications(limit int) ([]domain.Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, body, created_at, shown FROM notifications
		 WHERE shown = 0 ORDER BY created_at ASC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(createdAt, 0)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
func (d *DB) MarkNotificationShown(id string) error {
	_, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	return err
}
