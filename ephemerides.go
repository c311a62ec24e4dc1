package kosmorrolib

import (
	"time"

	"github.com/Kosmorro/lib/internal/search"
)

// refractionDeg is the standard altitude of the apparent horizon:
// atmospheric refraction lifts objects by about 34 arcminutes when they
// sit on the geometric horizon.
const refractionDeg = 0.5667

// riseSetStep samples the altitude function densely enough to separate
// the two horizon crossings of a near-grazing polar day.
const riseSetStep = 15 * time.Minute

// dayMargin widens the searched window beyond the local day so that
// events right on the midnight boundaries are still bracketed; results
// are filtered back to the exact requested day afterwards.
const dayMargin = time.Hour

// Ephemerides computes the rise, culmination and set times of every
// object for the given position and date, expressed in the given
// timezone offset (hours, fractional allowed).
//
// The date is interpreted as a calendar day in that timezone. A nil
// rise, culmination or set time means the event does not occur on that
// day: the object may keep above or below the horizon (polar latitudes),
// or cross the horizon on a neighbouring day.
func (c *Computer) Ephemerides(position Position, forDate time.Time, timezone float64) ([]AsterEphemerides, error) {
	if err := position.Validate(); err != nil {
		return nil, err
	}
	if err := validateTimezone(timezone); err != nil {
		return nil, err
	}

	dayStart, dayEnd := localDayBounds(forDate, timezone)

	out := make([]AsterEphemerides, 0, len(AllObjects))
	for _, obj := range AllObjects {
		eph, err := c.riseCulminationSet(obj, position, dayStart, dayEnd, forDate, timezone)
		if err != nil {
			return nil, wrapRange(err)
		}
		out = append(out, eph)
	}
	c.log.Debug("solved ephemerides for %d objects on %s", len(out), forDate.Format("2006-01-02"))
	return out, nil
}

// riseCulminationSet solves one object for one local day.
//
// The solved function is f(t) = altitude(t) - horizonOffset, where the
// horizon offset accounts for refraction and the apparent semidiameter
// of the object (about -0.83° for the Sun, -0.57° for a point-like
// planet). Rise is a crossing from negative to positive, set the
// reverse, culmination the interior maximum of altitude.
func (c *Computer) riseCulminationSet(obj Object, position Position, dayStart, dayEnd time.Time, forDate time.Time, timezone float64) (AsterEphemerides, error) {
	obs := position.observer()

	f := func(t time.Time) (float64, error) {
		p, err := c.provider.Observe(obj.target(), t, obs)
		if err != nil {
			return 0, err
		}
		return p.AltDeg + refractionDeg + obj.apparentRadiusDeg(p.DistanceKm), nil
	}

	opts := c.searchOptions(riseSetStep)
	windowStart := dayStart.Add(-dayMargin)
	windowEnd := dayEnd.Add(dayMargin)

	crossings, err := search.Crossings(f, windowStart, windowEnd, opts)
	if err != nil {
		return AsterEphemerides{}, err
	}
	maxima, err := search.Maxima(f, windowStart, windowEnd, opts)
	if err != nil {
		return AsterEphemerides{}, err
	}

	eph := AsterEphemerides{Object: obj}

	for _, cr := range crossings {
		if !sameLocalDay(cr.Time, forDate, timezone) {
			continue
		}
		local := NormalizeToMinute(TranslateToTimezone(cr.Time, timezone))
		if cr.Rising {
			eph.RiseTime = &local
		} else {
			eph.SetTime = &local
		}
	}

	// Culmination: the highest in-day maximum, and only when the object
	// actually clears the horizon there. A body that never comes up has
	// no culmination to report.
	var best *search.Extremum
	for i, ext := range maxima {
		if ext.Value <= 0 || !sameLocalDay(ext.Time, forDate, timezone) {
			continue
		}
		if best == nil || ext.Value > best.Value {
			best = &maxima[i]
		}
	}
	if best != nil {
		local := NormalizeToMinute(TranslateToTimezone(best.Time, timezone))
		eph.CulminationTime = &local
	}

	return eph, nil
}
