package kosmorrolib

import (
	"math"
	"time"

	"github.com/Kosmorro/lib/internal/astro"
	"github.com/Kosmorro/lib/internal/ephem"
)

// Object is an astronomical object: identity, classification and
// physical radius. Objects are plain values; the package-level variables
// below are the only instances the solvers ever produce.
type Object struct {
	Identifier ObjectIdentifier `json:"identifier"`
	Type       ObjectType       `json:"type"`
	RadiusKm   float64          `json:"radius_km"`
}

var (
	ObjectSun     = Object{IdentifierSun, ObjectTypeStar, 696342}
	ObjectMoon    = Object{IdentifierMoon, ObjectTypeSatellite, 1737.4}
	ObjectMercury = Object{IdentifierMercury, ObjectTypePlanet, 2439.7}
	ObjectVenus   = Object{IdentifierVenus, ObjectTypePlanet, 6051.8}
	ObjectEarth   = Object{IdentifierEarth, ObjectTypePlanet, 6371.0}
	ObjectMars    = Object{IdentifierMars, ObjectTypePlanet, 3396.2}
	ObjectJupiter = Object{IdentifierJupiter, ObjectTypePlanet, 71492}
	ObjectSaturn  = Object{IdentifierSaturn, ObjectTypePlanet, 60268}
	ObjectUranus  = Object{IdentifierUranus, ObjectTypePlanet, 25559}
	ObjectNeptune = Object{IdentifierNeptune, ObjectTypePlanet, 24764}
	ObjectPluto   = Object{IdentifierPluto, ObjectTypeDwarfPlanet, 1185}
)

// AllObjects lists the observable objects in the traditional order. The
// Earth is not in the list: it is the point of view, not a target.
var AllObjects = []Object{
	ObjectSun,
	ObjectMoon,
	ObjectMercury,
	ObjectVenus,
	ObjectMars,
	ObjectJupiter,
	ObjectSaturn,
	ObjectUranus,
	ObjectNeptune,
	ObjectPluto,
}

// ObjectByIdentifier returns the object with the given identifier.
func ObjectByIdentifier(id ObjectIdentifier) (Object, bool) {
	if id == IdentifierEarth {
		return ObjectEarth, true
	}
	for _, o := range AllObjects {
		if o.Identifier == id {
			return o, true
		}
	}
	return Object{}, false
}

// target maps an object to its ephemeris provider target. The Earth has
// no target; callers never observe it.
func (o Object) target() ephem.Target {
	switch o.Identifier {
	case IdentifierSun:
		return ephem.Sun
	case IdentifierMoon:
		return ephem.Moon
	case IdentifierMercury:
		return ephem.Mercury
	case IdentifierVenus:
		return ephem.Venus
	case IdentifierMars:
		return ephem.Mars
	case IdentifierJupiter:
		return ephem.Jupiter
	case IdentifierSaturn:
		return ephem.Saturn
	case IdentifierUranus:
		return ephem.Uranus
	case IdentifierNeptune:
		return ephem.Neptune
	default:
		return ephem.Pluto
	}
}

// apparentRadiusDeg returns the apparent semidiameter of the object, in
// degrees, at the given distance.
func (o Object) apparentRadiusDeg(distanceKm float64) float64 {
	if distanceKm <= o.RadiusKm {
		return 90
	}
	return math.Asin(o.RadiusKm/distanceKm) * 180 / math.Pi
}

// Serialize converts the object to a flat mapping.
func (o Object) Serialize() map[string]any {
	return map[string]any{
		"identifier": o.Identifier.String(),
		"type":       o.Type.String(),
		"radius_km":  o.RadiusKm,
	}
}

// Position is an observer location on Earth. It is a plain immutable
// value, shared read-only by every solver.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the position is on the globe.
func (p Position) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return newPositionError("latitude", p.Latitude, -90, 90)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return newPositionError("longitude", p.Longitude, -180, 180)
	}
	return nil
}

func (p Position) observer() astro.Observer {
	return astro.Observer{LatDeg: p.Latitude, LonDeg: p.Longitude}
}

// MoonPhase describes the Moon phase on a given date.
type MoonPhase struct {
	// Phase is the current named phase.
	Phase MoonPhaseType `json:"phase"`

	// Ratio is the phase as a fraction of the synodic cycle, in [0, 1):
	// 0 = new, 0.25 = first quarter, 0.5 = full, 0.75 = last quarter.
	Ratio float64 `json:"ratio"`

	// Time is the exact instant the current phase began. It is only set
	// for the four quarter phases; crescent and gibbous phases spread
	// over several days and have no meaningful instant.
	Time *time.Time `json:"time,omitempty"`

	// NextPhase is the next quarter phase, and NextPhaseDate the instant
	// it happens.
	NextPhase     MoonPhaseType `json:"next_phase"`
	NextPhaseDate time.Time     `json:"next_phase_date"`
}

// Serialize converts the moon phase to a flat mapping.
func (m MoonPhase) Serialize() map[string]any {
	out := map[string]any{
		"phase": m.Phase.String(),
		"ratio": m.Ratio,
		"time":  nil,
		"next": map[string]any{
			"phase": m.NextPhase.String(),
			"time":  m.NextPhaseDate.Format(time.RFC3339),
		},
	}
	if m.Time != nil {
		out["time"] = m.Time.Format(time.RFC3339)
	}
	return out
}

// AsterEphemerides holds the rise, culmination and set times of one
// object for one day, in the requested timezone. A nil time is a normal
// outcome, not an error: the object keeps above or below the horizon, or
// the event happens on a neighbouring day.
type AsterEphemerides struct {
	Object          Object     `json:"object"`
	RiseTime        *time.Time `json:"rise_time"`
	CulminationTime *time.Time `json:"culmination_time"`
	SetTime         *time.Time `json:"set_time"`
}

// Serialize converts the ephemerides to a flat mapping.
func (e AsterEphemerides) Serialize() map[string]any {
	return map[string]any{
		"object":           e.Object.Serialize(),
		"rise_time":        formatOptional(e.RiseTime),
		"culmination_time": formatOptional(e.CulminationTime),
		"set_time":         formatOptional(e.SetTime),
	}
}

// Event is a dated celestial event. StartTime is always set; EndTime is
// only set for events with a duration (eclipses). Event-specific numbers
// live in Details, keyed by name.
type Event struct {
	Type      EventType  `json:"type"`
	Objects   []Object   `json:"objects"`
	StartTime time.Time  `json:"starts_at"`
	EndTime   *time.Time `json:"ends_at,omitempty"`

	// Peak is the instant of greatest extent, for eclipse events.
	Peak *time.Time `json:"peak,omitempty"`

	// Season qualifies equinox and solstice events.
	Season SeasonType `json:"season,omitempty"`

	// EclipseKind qualifies eclipse events.
	EclipseKind EclipseKind `json:"eclipse_kind,omitempty"`

	Details map[string]float64 `json:"details,omitempty"`
}

// Serialize converts the event to a flat mapping.
func (ev Event) Serialize() map[string]any {
	objects := make([]map[string]any, 0, len(ev.Objects))
	for _, o := range ev.Objects {
		objects = append(objects, o.Serialize())
	}

	out := map[string]any{
		"type":      ev.Type.String(),
		"objects":   objects,
		"starts_at": ev.StartTime.Format(time.RFC3339),
		"ends_at":   formatOptional(ev.EndTime),
	}
	if ev.Peak != nil {
		out["peak"] = ev.Peak.Format(time.RFC3339)
	}
	if ev.Type == EventEquinox || ev.Type == EventSolstice {
		out["season"] = ev.Season.String()
	}
	if ev.EclipseKind != EclipseNone {
		out["eclipse_kind"] = ev.EclipseKind.String()
	}
	if len(ev.Details) > 0 {
		details := make(map[string]any, len(ev.Details))
		for k, v := range ev.Details {
			details[k] = v
		}
		out["details"] = details
	}
	return out
}

func formatOptional(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
