package habit

import (
	"math"
	"math/rand"
	"time"

	"github.com/salmancert/atomic/internal/domain"
)

const earthRadiusMeters = 6371000.0

// TriggerEvaluator decides whether a configured trigger fires for the
// current inputs. Each call is a stateless decision; the only carried state
// is the injected randomness used for intervention selection, so tests can
// fix the outcome with a seeded source.
type TriggerEvaluator struct {
	rng *rand.Rand
}

// NewTriggerEvaluator creates an evaluator with time-seeded selection.
func NewTriggerEvaluator() *TriggerEvaluator {
	return NewTriggerEvaluatorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewTriggerEvaluatorWithRand creates an evaluator with the given random
// source for intervention selection.
func NewTriggerEvaluatorWithRand(rng *rand.Rand) *TriggerEvaluator {
	return &TriggerEvaluator{rng: rng}
}

// CheckTime fires when the current time-of-day equals any configured
// trigger time exactly — minute resolution, no tolerance window. At most
// one intervention is returned per call even when several triggers match;
// selection draws uniformly from the full catalog regardless of which
// trigger matched.
//
// Returns (nil, nil) when nothing fires.
func (e *TriggerEvaluator) CheckTime(now time.Time, triggers []domain.TimeTrigger, catalog []domain.Intervention) (*domain.Intervention, error) {
	hhmm := now.Format("15:04")
	for _, tr := range triggers {
		if tr.At == hhmm {
			return e.selectIntervention(catalog)
		}
	}
	return nil, nil
}

// CheckLocation fires when the fix lands strictly inside a trigger's
// geofence (great-circle distance < radius; a fix exactly on the radius
// does not fire). The first matching trigger in configured order wins —
// later geofences never override an earlier match.
func (e *TriggerEvaluator) CheckLocation(fix domain.Fix, triggers []domain.LocationTrigger, catalog []domain.Intervention) (*domain.Intervention, error) {
	for _, tr := range triggers {
		radius := tr.RadiusMeters
		if radius <= 0 {
			radius = domain.DefaultGeofenceRadius
		}
		d := DistanceMeters(fix, domain.Fix{Latitude: tr.Latitude, Longitude: tr.Longitude})
		if d < radius {
			return e.selectIntervention(catalog)
		}
	}
	return nil, nil
}

// selectIntervention draws uniformly from the full catalog.
func (e *TriggerEvaluator) selectIntervention(catalog []domain.Intervention) (*domain.Intervention, error) {
	if len(catalog) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	iv := catalog[e.rng.Intn(len(catalog))]
	return &iv, nil
}

// DistanceMeters returns the great-circle (haversine) distance between two
// fixes in meters.
func DistanceMeters(a, b domain.Fix) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
