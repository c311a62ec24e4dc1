// Package ephem provides apparent positions of solar-system bodies at
// arbitrary instants. It is the data boundary of the library: everything
// above it only ever sees a Point.
package ephem

import (
	"fmt"
	"time"

	"github.com/Kosmorro/lib/internal/astro"
)

// Target identifies a body the provider can observe.
type Target int

const (
	Sun Target = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// Targets lists every observable body, in the traditional order.
var Targets = []Target{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// String returns the target name.
func (tg Target) String() string {
	switch tg {
	case Sun:
		return "Sun"
	case Moon:
		return "Moon"
	case Mercury:
		return "Mercury"
	case Venus:
		return "Venus"
	case Mars:
		return "Mars"
	case Jupiter:
		return "Jupiter"
	case Saturn:
		return "Saturn"
	case Uranus:
		return "Uranus"
	case Neptune:
		return "Neptune"
	case Pluto:
		return "Pluto"
	default:
		return "unknown"
	}
}

// Point is the apparent position of a body at one instant, as seen from
// the given observer (horizontal coordinates) and from the geocenter
// (everything else).
type Point struct {
	AltDeg     float64 // topocentric altitude above the horizon
	AzDeg      float64 // azimuth, 0 = North, 90 = East
	RADeg      float64 // right ascension
	DecDeg     float64 // declination
	EclLonDeg  float64 // geocentric ecliptic longitude of date
	EclLatDeg  float64 // geocentric ecliptic latitude
	DistanceKm float64 // geocentric distance
}

// Provider supplies apparent positions. Implementations must be safe for
// concurrent use; the solvers issue position queries from independent
// searches with no coordination.
type Provider interface {
	// Name returns the provider name for display and logging.
	Name() string

	// Observe returns the apparent position of a target at an instant.
	// Instants outside Span fail with a *RangeError.
	Observe(target Target, t time.Time, obs astro.Observer) (Point, error)

	// Span returns the time range the provider can evaluate.
	Span() (start, end time.Time)
}

// RangeError reports a query outside the supported ephemeris span. It is
// propagated, never swallowed: the library does not approximate outside
// the range its series are valid for.
type RangeError struct {
	Requested  time.Time
	Start, End time.Time
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("ephem: %s is outside the supported span (%s to %s)",
		e.Requested.Format("2006-01-02"),
		e.Start.Format("2006-01-02"),
		e.End.Format("2006-01-02"))
}
