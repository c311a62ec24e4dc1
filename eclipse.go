package kosmorrolib

import (
	"math"
	"time"

	"github.com/Kosmorro/lib/internal/astro"
	"github.com/Kosmorro/lib/internal/search"
)

// Eclipse geometry uses the classical shadow-cone model: the Earth's
// penumbral and umbral radii at the Moon's distance follow from the
// horizontal parallaxes and the solar semidiameter, enlarged by 2% for
// the atmosphere.
const shadowEnlargement = 1.02

const (
	syzygySearchStep  = 2 * time.Hour
	eclipsePeakStep   = 20 * time.Minute
	eclipseEdgeWindow = 5 * time.Hour
)

// eclipseGeometry gathers the angles the shadow model needs at an
// instant. All values are in degrees.
type eclipseGeometry struct {
	moonParallax  float64
	sunParallax   float64
	moonSemidiam  float64
	sunSemidiam   float64
	moonSunSep    float64 // Moon to Sun
	moonShadowSep float64 // Moon to the anti-solar point
}

func (c *Computer) eclipseGeometryAt(t time.Time) (eclipseGeometry, error) {
	moon, err := c.observeGeo(ObjectMoon, t)
	if err != nil {
		return eclipseGeometry{}, err
	}
	sun, err := c.observeGeo(ObjectSun, t)
	if err != nil {
		return eclipseGeometry{}, err
	}

	return eclipseGeometry{
		moonParallax:  asinDeg(astro.EarthRadiusKm / moon.DistanceKm),
		sunParallax:   asinDeg(astro.EarthRadiusKm / sun.DistanceKm),
		moonSemidiam:  ObjectMoon.apparentRadiusDeg(moon.DistanceKm),
		sunSemidiam:   ObjectSun.apparentRadiusDeg(sun.DistanceKm),
		moonSunSep:    astro.Separation(moon.EclLonDeg, moon.EclLatDeg, sun.EclLonDeg, sun.EclLatDeg),
		moonShadowSep: astro.Separation(moon.EclLonDeg, moon.EclLatDeg, sun.EclLonDeg+180, -sun.EclLatDeg),
	}, nil
}

// penumbralRadius and umbralRadius are the angular radii of the Earth's
// shadow cones at the Moon's distance.
func (g eclipseGeometry) penumbralRadius() float64 {
	return shadowEnlargement * (g.moonParallax + g.sunParallax + g.sunSemidiam)
}

func (g eclipseGeometry) umbralRadius() float64 {
	return shadowEnlargement * (g.moonParallax + g.sunParallax - g.sunSemidiam)
}

// findLunarEclipses detects lunar eclipses inside the window. A lunar
// eclipse can only happen at full moon, so the full moons seed the
// search; one occurs when the Moon's limb reaches the penumbral cone.
// The event carries first contact, greatest eclipse and last contact,
// with the umbral (or, for penumbral eclipses, penumbral) magnitude.
func (c *Computer) findLunarEclipses(start, end time.Time) ([]Event, error) {
	fullMoons, err := search.Crossings(c.phaseBoundaryFunc(180), start.Add(-eclipseEdgeWindow), end.Add(eclipseEdgeWindow), c.searchOptions(syzygySearchStep))
	if err != nil {
		return nil, err
	}

	shadowDistance := func(t time.Time) (float64, error) {
		g, err := c.eclipseGeometryAt(t)
		if err != nil {
			return 0, err
		}
		return g.moonShadowSep, nil
	}

	var events []Event
	for _, syzygy := range fullMoons {
		minima, err := search.Minima(shadowDistance, syzygy.Time.Add(-eclipseEdgeWindow), syzygy.Time.Add(eclipseEdgeWindow), c.searchOptions(eclipsePeakStep))
		if err != nil {
			return nil, err
		}
		peak, ok := deepestMinimum(minima)
		if !ok {
			continue
		}

		g, err := c.eclipseGeometryAt(peak.Time)
		if err != nil {
			return nil, err
		}
		f1, f2, sm := g.penumbralRadius(), g.umbralRadius(), g.moonSemidiam
		if peak.Value >= f1+sm {
			continue
		}

		kind := EclipsePenumbral
		magnitude := (f1 + sm - peak.Value) / (2 * sm)
		switch {
		case peak.Value < f2-sm:
			kind = EclipseTotal
			magnitude = (f2 + sm - peak.Value) / (2 * sm)
		case peak.Value < f2+sm:
			kind = EclipsePartial
			magnitude = (f2 + sm - peak.Value) / (2 * sm)
		}

		first, last, err := c.eclipseContacts(shadowDistance, f1+sm, peak.Time)
		if err != nil {
			return nil, err
		}
		if !inWindow(peak.Time, start, end) {
			continue
		}

		peakTime := peak.Time
		events = append(events, Event{
			Type:        EventLunarEclipse,
			Objects:     []Object{ObjectMoon},
			StartTime:   first,
			EndTime:     &last,
			Peak:        &peakTime,
			EclipseKind: kind,
			Details:     map[string]float64{"magnitude": round2(magnitude)},
		})
	}
	return events, nil
}

// findSolarEclipses detects solar eclipses inside the window, seeded by
// the new moons. The model is geocentric: an eclipse is reported when
// the lunar disk, shifted by the parallax budget, can reach the solar
// disk somewhere on Earth. Central eclipses are total when the Moon
// appears larger than the Sun and annular otherwise.
func (c *Computer) findSolarEclipses(start, end time.Time) ([]Event, error) {
	newMoons, err := search.Crossings(c.phaseBoundaryFunc(0), start.Add(-eclipseEdgeWindow), end.Add(eclipseEdgeWindow), c.searchOptions(syzygySearchStep))
	if err != nil {
		return nil, err
	}

	sunDistance := func(t time.Time) (float64, error) {
		g, err := c.eclipseGeometryAt(t)
		if err != nil {
			return 0, err
		}
		return g.moonSunSep, nil
	}

	var events []Event
	for _, syzygy := range newMoons {
		minima, err := search.Minima(sunDistance, syzygy.Time.Add(-eclipseEdgeWindow), syzygy.Time.Add(eclipseEdgeWindow), c.searchOptions(eclipsePeakStep))
		if err != nil {
			return nil, err
		}
		peak, ok := deepestMinimum(minima)
		if !ok {
			continue
		}

		g, err := c.eclipseGeometryAt(peak.Time)
		if err != nil {
			return nil, err
		}
		threshold := g.moonSemidiam + g.sunSemidiam + g.moonParallax - g.sunParallax
		if peak.Value >= threshold {
			continue
		}

		kind := EclipsePartial
		if peak.Value < g.moonParallax-g.sunParallax {
			if g.moonSemidiam > g.sunSemidiam {
				kind = EclipseTotal
			} else {
				kind = EclipseAnnular
			}
		}
		magnitude := (g.moonSemidiam + g.sunSemidiam + g.moonParallax - g.sunParallax - peak.Value) / (2 * g.sunSemidiam)
		if magnitude > 1 && kind != EclipsePartial {
			magnitude = 1
		}

		first, last, err := c.eclipseContacts(sunDistance, threshold, peak.Time)
		if err != nil {
			return nil, err
		}
		if !inWindow(peak.Time, start, end) {
			continue
		}

		peakTime := peak.Time
		events = append(events, Event{
			Type:        EventSolarEclipse,
			Objects:     []Object{ObjectMoon, ObjectSun},
			StartTime:   first,
			EndTime:     &last,
			Peak:        &peakTime,
			EclipseKind: kind,
			Details:     map[string]float64{"magnitude": round2(magnitude)},
		})
	}
	return events, nil
}

// eclipseContacts solves the first and last contact instants: the
// crossings of the separation function against the contact threshold on
// both sides of the greatest eclipse.
func (c *Computer) eclipseContacts(distance search.Func, threshold float64, peak time.Time) (time.Time, time.Time, error) {
	depth := func(t time.Time) (float64, error) {
		v, err := distance(t)
		if err != nil {
			return 0, err
		}
		return threshold - v, nil
	}

	crossings, err := search.Crossings(depth, peak.Add(-eclipseEdgeWindow), peak.Add(eclipseEdgeWindow), c.searchOptions(eclipsePeakStep))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	first, last := peak, peak
	for _, cr := range crossings {
		if cr.Rising && cr.Time.Before(peak) {
			first = cr.Time
		}
		if !cr.Rising && cr.Time.After(peak) && last.Equal(peak) {
			last = cr.Time
		}
	}
	return first, last, nil
}

func deepestMinimum(minima []search.Extremum) (search.Extremum, bool) {
	if len(minima) == 0 {
		return search.Extremum{}, false
	}
	best := minima[0]
	for _, m := range minima[1:] {
		if m.Value < best.Value {
			best = m
		}
	}
	return best, true
}

func asinDeg(x float64) float64 {
	return math.Asin(x) * 180 / math.Pi
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
