package kosmorrolib

import (
	"fmt"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/moonphase"

	"github.com/Kosmorro/lib/internal/astro"
	"github.com/Kosmorro/lib/internal/search"
)

// phaseSegmentDeg is the width of one named-phase segment of the
// Moon-Sun elongation circle.
const phaseSegmentDeg = 45.0

// phaseSearchStep samples the elongation, which grows by roughly 12.2°
// per day, finely enough that no segment boundary can hide between two
// samples.
const phaseSearchStep = 2 * time.Hour

// phaseAngle returns the geocentric Moon-Sun elongation in ecliptic
// longitude, normalized to [0, 360). It increases monotonically over a
// synodic month: 0 = new, 180 = full.
func (c *Computer) phaseAngle(t time.Time) (float64, error) {
	moon, err := c.observeGeo(ObjectMoon, t)
	if err != nil {
		return 0, err
	}
	sun, err := c.observeGeo(ObjectSun, t)
	if err != nil {
		return 0, err
	}
	return astro.Normalize360(moon.EclLonDeg - sun.EclLonDeg), nil
}

// phaseBoundaryFunc is the solved function for a boundary crossing: it
// rises through zero when the elongation passes the boundary angle.
func (c *Computer) phaseBoundaryFunc(boundaryDeg float64) search.Func {
	return func(t time.Time) (float64, error) {
		angle, err := c.phaseAngle(t)
		if err != nil {
			return 0, err
		}
		return astro.Wrap180(angle - boundaryDeg), nil
	}
}

// MoonPhase computes the Moon phase for the given date, expressed in the
// given timezone offset.
//
// The named phase is the 45° elongation segment in effect on that day;
// when a segment boundary falls inside the day the new segment wins and,
// if it is a quarter phase, its exact instant is reported in Time. The
// next quarter phase is always located, searching forward past a full
// synodic month when necessary.
func (c *Computer) MoonPhase(forDate time.Time, timezone float64) (MoonPhase, error) {
	if err := validateTimezone(timezone); err != nil {
		return MoonPhase{}, err
	}

	dayStart, dayEnd := localDayBounds(forDate, timezone)

	angle, err := c.phaseAngle(dayStart)
	if err != nil {
		return MoonPhase{}, wrapRange(err)
	}

	segment := int(angle/phaseSegmentDeg) % 8
	result := MoonPhase{Ratio: angle / 360}

	// At most one boundary can fall inside a single day.
	boundary := phaseSegmentDeg * float64((segment+1)%8)
	crossings, err := search.Crossings(c.phaseBoundaryFunc(boundary), dayStart, dayEnd, c.searchOptions(phaseSearchStep))
	if err != nil {
		return MoonPhase{}, wrapRange(err)
	}

	searchFrom := dayStart
	switch {
	case len(crossings) > 0:
		segment = (segment + 1) % 8
		searchFrom = crossings[0].Time
		if MoonPhaseType(segment).IsQuarter() {
			at := TranslateToTimezone(crossings[0].Time, timezone)
			result.Time = &at
		}
	case MoonPhaseType(segment).IsQuarter():
		// The day sits inside a quarter segment entered earlier; report
		// the instant the segment began.
		began, err := c.segmentStart(segment, dayStart)
		if err != nil {
			return MoonPhase{}, wrapRange(err)
		}
		if began != nil {
			at := TranslateToTimezone(*began, timezone)
			result.Time = &at
		}
	}

	result.Phase = MoonPhaseType(segment)
	result.NextPhase = result.Phase.Next()

	next, err := c.nextQuarter(result.NextPhase, searchFrom)
	if err != nil {
		return MoonPhase{}, wrapRange(err)
	}
	result.NextPhaseDate = TranslateToTimezone(next, timezone)

	return result, nil
}

// segmentStart locates the instant the current elongation segment was
// entered, at most one segment length (about 3.7 days) in the past.
func (c *Computer) segmentStart(segment int, before time.Time) (*time.Time, error) {
	boundary := phaseSegmentDeg * float64(segment)
	crossings, err := search.Crossings(c.phaseBoundaryFunc(boundary), before.AddDate(0, 0, -5), before, c.searchOptions(phaseSearchStep))
	if err != nil {
		return nil, err
	}
	if len(crossings) == 0 {
		return nil, nil
	}
	at := crossings[len(crossings)-1].Time
	return &at, nil
}

// nextQuarter returns the instant the given quarter phase next begins
// after the given instant. The Meeus lunation almanac supplies a coarse
// candidate and the crossing search pins it down; if the almanac
// candidates land in the past, a bounded forward sweep longer than one
// synodic month guarantees a result.
func (c *Computer) nextQuarter(quarter MoonPhaseType, after time.Time) (time.Time, error) {
	boundary := phaseSegmentDeg * float64(quarter)

	var almanac func(float64) float64
	switch quarter {
	case MoonNewMoon:
		almanac = moonphase.New
	case MoonFirstQuarter:
		almanac = moonphase.First
	case MoonFullMoon:
		almanac = moonphase.Full
	default:
		almanac = moonphase.Last
	}

	for _, probe := range []time.Time{after, after.AddDate(0, 0, 31)} {
		seed := julian.JDToTime(almanac(decimalYear(probe)))
		if !seed.After(after) {
			continue
		}
		crossings, err := search.Crossings(c.phaseBoundaryFunc(boundary), seed.AddDate(0, 0, -1), seed.AddDate(0, 0, 1), c.searchOptions(phaseSearchStep))
		if err != nil {
			return time.Time{}, err
		}
		for _, cr := range crossings {
			if cr.Rising && cr.Time.After(after) {
				return cr.Time, nil
			}
		}
	}

	// Almanac seeds missed (should not happen); sweep a window longer
	// than one synodic month.
	crossings, err := search.Crossings(c.phaseBoundaryFunc(boundary), after, after.AddDate(0, 0, 40), c.searchOptions(6*time.Hour))
	if err != nil {
		return time.Time{}, err
	}
	for _, cr := range crossings {
		if cr.Rising {
			return cr.Time, nil
		}
	}
	return time.Time{}, fmt.Errorf("no %s found within 40 days of %s", quarter, after.Format("2006-01-02"))
}
