// Package daemon manages the atomic daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/salmancert/atomic/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	Storage       StorageConfig       `toml:"storage"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
	Checkin       CheckinConfig       `toml:"checkin"`
	Notifications NotificationsConfig `toml:"notifications"`
	Profile       ProfileConfig       `toml:"profile"`
	Triggers      TriggersConfig      `toml:"triggers"`
	Interventions []InterventionItem  `toml:"interventions"`
	Rewards       []RewardItem        `toml:"rewards"`
	Milestones    map[string]string   `toml:"milestones"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig controls the journal database location.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// CheckinConfig controls when the daemon runs the daily evaluation.
type CheckinConfig struct {
	At string `toml:"at"` // "HH:MM", local time
}

// NotificationsConfig controls delivery-side suppression.
type NotificationsConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// ProfileConfig seeds the engine profile at startup.
type ProfileConfig struct {
	TargetApps               []string       `toml:"target_apps"`
	Limits                   map[string]int `toml:"limits"`
	ReplacementActivities    []string       `toml:"replacement_activities"`
	ImplementationIntentions []string       `toml:"implementation_intentions"`
}

// TriggersConfig seeds the trigger set at startup.
type TriggersConfig struct {
	Times     []TimeTriggerItem     `toml:"times"`
	Locations []LocationTriggerItem `toml:"locations"`
}

// TimeTriggerItem is one configured time-of-day trigger.
type TimeTriggerItem struct {
	At string `toml:"at"`
}

// LocationTriggerItem is one configured geofence trigger.
type LocationTriggerItem struct {
	Name         string  `toml:"name"`
	Latitude     float64 `toml:"latitude"`
	Longitude    float64 `toml:"longitude"`
	RadiusMeters float64 `toml:"radius_meters"`
}

// InterventionItem is one catalog entry.
type InterventionItem struct {
	Kind   string `toml:"kind"`
	Name   string `toml:"name"`
	Action string `toml:"action"`
}

// RewardItem is one reward catalog entry. File order is grant order.
type RewardItem struct {
	Name       string `toml:"name"`
	CostPoints int    `toml:"cost_points"`
}

// DefaultConfig returns a sensible default configuration. The intervention,
// reward, and milestone catalogs ship with defaults so a bare install has a
// working engine; all of them are plain configuration, not behavior.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7420,
		},
		Storage: StorageConfig{
			Dir: atomicHome(),
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Checkin: CheckinConfig{
			At: "21:30",
		},
		Notifications: NotificationsConfig{
			MaxPerDay:  3,
			QuietStart: "22:00",
			QuietEnd:   "08:00",
		},
		Triggers: TriggersConfig{
			Times: []TimeTriggerItem{{At: "21:00"}},
		},
		Interventions: []InterventionItem{
			{Kind: "obvious", Name: "Usage summary", Action: "Take a look at where the time went."},
			{Kind: "unattractive", Name: "Opportunity cost", Action: "A walk, a chapter, a call home."},
			{Kind: "difficult", Name: "Ten-second pause", Action: "Breathe before you open it."},
			{Kind: "unsatisfying", Name: "Goal framing", Action: "Your future self is watching."},
		},
		Rewards: []RewardItem{
			{Name: "Bronze Badge", CostPoints: 100},
			{Name: "Theme Unlock", CostPoints: 250},
			{Name: "Golden Streak Frame", CostPoints: 500},
		},
		Milestones: map[string]string{
			"3":  "Three day streak",
			"7":  "One week streak",
			"30": "One month streak",
		},
	}
}

// LoadConfig reads config from $ATOMIC_HOME/config.toml, falling back to
// defaults when the file does not exist.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(atomicHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to $ATOMIC_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(atomicHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// atomicHome returns the atomic data directory.
func atomicHome() string {
	if env := os.Getenv("ATOMIC_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".atomic")
}

// AtomicHome is exported for use by other packages.
func AtomicHome() string {
	return atomicHome()
}

// ─── Config → domain conversion ─────────────────────────────────────────────

// MilestoneTable converts the string-keyed milestone config into the
// domain table, skipping entries whose key is not a positive integer.
func (c Config) MilestoneTable() domain.Milestones {
	table := make(domain.Milestones, len(c.Milestones))
	for key, label := range c.Milestones {
		days, err := strconv.Atoi(key)
		if err != nil || days <= 0 {
			continue
		}
		table[days] = label
	}
	return table
}

// InterventionCatalog converts the configured catalog, preserving order.
func (c Config) InterventionCatalog() []domain.Intervention {
	catalog := make([]domain.Intervention, 0, len(c.Interventions))
	for _, item := range c.Interventions {
		catalog = append(catalog, domain.Intervention{
			Kind:   domain.InterventionKind(item.Kind),
			Name:   item.Name,
			Action: item.Action,
		})
	}
	return catalog
}

// RewardCatalog converts the configured reward list, preserving order.
func (c Config) RewardCatalog() []domain.Reward {
	catalog := make([]domain.Reward, 0, len(c.Rewards))
	for _, item := range c.Rewards {
		catalog = append(catalog, domain.Reward{Name: item.Name, CostPoints: item.CostPoints})
	}
	return catalog
}

// TriggerSet converts the configured triggers.
func (c Config) TriggerSet() domain.Triggers {
	var t domain.Triggers
	for _, item := range c.Triggers.Times {
		t.Times = append(t.Times, domain.TimeTrigger{At: item.At})
	}
	for _, item := range c.Triggers.Locations {
		t.Locations = append(t.Locations, domain.LocationTrigger{
			Name:         item.Name,
			Latitude:     item.Latitude,
			Longitude:    item.Longitude,
			RadiusMeters: item.RadiusMeters,
		})
	}
	return t
}
