package domain

// ─── Trigger Types ──────────────────────────────────────────────────────────

// DefaultGeofenceRadius is the geofence radius in meters when a location
// trigger does not configure one.
const DefaultGeofenceRadius = 100.0

// TimeTrigger fires when the current time-of-day matches At exactly.
// At is "HH:MM" — minute resolution, no tolerance window.
type TimeTrigger struct {
	At string `json:"at"`
}

// LocationTrigger fires when a location fix lands strictly inside the
// geofence around (Latitude, Longitude).
type LocationTrigger struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"` // 0 means DefaultGeofenceRadius
}

// Triggers is the full configured trigger set.
type Triggers struct {
	Times     []TimeTrigger     `json:"times"`
	Locations []LocationTrigger `json:"locations"`
}

// Fix is a resolved location fix supplied by the location collaborator.
type Fix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ─── Intervention Types ─────────────────────────────────────────────────────

// InterventionKind classifies an intervention by behavior-change strategy.
type InterventionKind string

const (
	InterventionObvious      InterventionKind = "obvious"
	InterventionUnattractive InterventionKind = "unattractive"
	InterventionDifficult    InterventionKind = "difficult"
	InterventionUnsatisfying InterventionKind = "unsatisfying"
)

// Intervention is a behavior-change prompt. Kind determines the rendered
// notification content.
type Intervention struct {
	Kind   InterventionKind `json:"kind"`
	Name   string           `json:"name"`
	Action string           `json:"action"`
}
