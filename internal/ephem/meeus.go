package ephem

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/base"
	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/moonposition"
	"github.com/mooncaker816/learnmeeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/Kosmorro/lib/internal/astro"
)

// Meeus computes positions from the Meeus algorithm series: apparent
// solar coordinates from the low-precision solar theory, the lunar
// position from the abridged ELP series, and the planets from the JPL
// approximate Keplerian elements. It is stateless and safe for
// concurrent use.
//
// Accuracy is on the order of an arcminute for the Sun and Moon and a
// few arcminutes for the planets, which keeps every solved instant well
// inside the one-minute output resolution.
type Meeus struct{}

// NewMeeus returns a Meeus-backed provider.
func NewMeeus() *Meeus { return &Meeus{} }

// The Keplerian element table is fitted for 1800-2050; the span is
// clamped to it even though the Sun/Moon series extend further.
var (
	spanStart = time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)
	spanEnd   = time.Date(2050, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Name implements Provider.
func (m *Meeus) Name() string { return "meeus" }

// Span implements Provider.
func (m *Meeus) Span() (start, end time.Time) { return spanStart, spanEnd }

// Observe implements Provider.
func (m *Meeus) Observe(target Target, t time.Time, obs astro.Observer) (Point, error) {
	if t.Before(spanStart) || !t.Before(spanEnd) {
		return Point{}, &RangeError{Requested: t, Start: spanStart, End: spanEnd}
	}

	// The dynamical series take Terrestrial Time.
	jde := julian.TimeToJD(t.UTC().Add(deltaT(t)))

	var (
		ecl    astro.Ecliptic
		eq     astro.Equatorial
		distKm float64
	)

	switch target {
	case Sun:
		alpha, delta := solar.ApparentEquatorial(jde)
		eq = astro.Equatorial{
			RADeg:  astro.Normalize360(unit.Angle(alpha).Deg()),
			DecDeg: delta.Deg(),
		}
		cT := base.J2000Century(jde)
		ecl = astro.Ecliptic{LonDeg: astro.Normalize360(solar.ApparentLongitude(cT).Deg())}
		distKm = solar.Radius(cT) * astro.AU

	case Moon:
		lon, lat, dist := moonposition.Position(jde)
		ecl = astro.Ecliptic{
			LonDeg: astro.Normalize360(lon.Deg()),
			LatDeg: lat.Deg(),
		}
		eq = astro.EclipticToEquatorial(ecl, t)
		distKm = dist

	default:
		p, ok := planetOf(target)
		if !ok {
			return Point{}, astro.ErrUnknownPlanet
		}
		var distAU float64
		var err error
		ecl, distAU, err = astro.GeocentricPlanet(p, t)
		if err != nil {
			return Point{}, err
		}
		eq = astro.EclipticToEquatorial(ecl, t)
		distKm = distAU * astro.AU
	}

	hz := astro.EquatorialToHorizontal(eq, obs, t)

	return Point{
		AltDeg:     topocentricAltitude(hz.AltDeg, distKm),
		AzDeg:      hz.AzDeg,
		RADeg:      eq.RADeg,
		DecDeg:     eq.DecDeg,
		EclLonDeg:  ecl.LonDeg,
		EclLatDeg:  ecl.LatDeg,
		DistanceKm: distKm,
	}, nil
}

func planetOf(target Target) (astro.Planet, bool) {
	switch target {
	case Mercury:
		return astro.Mercury, true
	case Venus:
		return astro.Venus, true
	case Mars:
		return astro.Mars, true
	case Jupiter:
		return astro.Jupiter, true
	case Saturn:
		return astro.Saturn, true
	case Uranus:
		return astro.Uranus, true
	case Neptune:
		return astro.Neptune, true
	case Pluto:
		return astro.Pluto, true
	default:
		return 0, false
	}
}

// topocentricAltitude lowers a geocentric altitude by the diurnal
// parallax. Negligible for the planets, about a degree for the Moon.
func topocentricAltitude(altDeg, distKm float64) float64 {
	if distKm <= astro.EarthRadiusKm {
		return altDeg
	}
	par := math.Asin(astro.EarthRadiusKm/distKm) * 180 / math.Pi
	return altDeg - par*math.Cos(altDeg*math.Pi/180)
}

// deltaT approximates TT-UT. The polynomials are the NASA eclipse-site
// fits for 1961-2050; earlier years fall back to the long-term parabola,
// good to a few tens of seconds, far below the solver tolerances.
func deltaT(t time.Time) time.Duration {
	y := float64(t.Year()) + (float64(t.YearDay())-0.5)/365.25

	var dt float64
	switch {
	case y >= 2005:
		u := y - 2000
		dt = 62.92 + 0.32217*u + 0.005589*u*u
	case y >= 1986:
		u := y - 2000
		dt = 63.86 + 0.3345*u - 0.060374*u*u + 0.0017275*u*u*u +
			0.000651814*u*u*u*u + 0.00002373599*u*u*u*u*u
	case y >= 1961:
		u := y - 1975
		dt = 45.45 + 1.067*u - u*u/260 - u*u*u/718
	default:
		u := (y - 1820) / 100
		dt = -20 + 32*u*u
	}

	return time.Duration(dt * float64(time.Second))
}
