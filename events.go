package kosmorrolib

import (
	"math"
	"sort"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/apsis"
	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/perihelion"
	"github.com/mooncaker816/learnmeeus/v3/solstice"

	"github.com/Kosmorro/lib/internal/astro"
	"github.com/Kosmorro/lib/internal/search"
)

// Acceptance bands. A longitude alignment only becomes an event when the
// true angular separation confirms it; this rejects the spurious
// candidates a coarse sampling grid can produce and, for oppositions,
// the high-latitude outliers (Pluto can stand 17° off the ecliptic).
const (
	oppositionMinSepDeg       = 160.0
	solarConjunctionMaxSepDeg = 15.0
	conjunctionMaxSepDeg      = 10.0
	elongationMinDeg          = 10.0
)

// Sampling steps per finder. The Moon is the fastest mover at about
// 12.2°/day relative to the Sun; everything else is slower.
const (
	pairStep       = 2 * time.Hour
	planetStep     = 6 * time.Hour
	elongationStep = 3 * time.Hour
	distanceStep   = time.Hour
)

// apsisSlack widens apsis and season windows past the day boundaries so
// that an extremum sitting right on midnight is still bracketed by
// interior samples. Results are filtered back to the requested window.
const apsisSlack = 12 * time.Hour

var superiorPlanets = []Object{ObjectMars, ObjectJupiter, ObjectSaturn, ObjectUranus, ObjectNeptune, ObjectPluto}

var innerPlanets = []Object{ObjectMercury, ObjectVenus}

var allPlanets = []Object{ObjectMercury, ObjectVenus, ObjectMars, ObjectJupiter, ObjectSaturn, ObjectUranus, ObjectNeptune, ObjectPluto}

// conjunctionBodies take part in pairwise conjunction/occultation
// detection: the Moon and the planets, never the Sun.
var conjunctionBodies = []Object{ObjectMoon, ObjectMercury, ObjectVenus, ObjectMars, ObjectJupiter, ObjectSaturn, ObjectUranus, ObjectNeptune, ObjectPluto}

// Events computes every event occurring on the given date, expressed in
// the given timezone offset, sorted by start time. An empty slice means
// nothing notable happens that day.
func (c *Computer) Events(forDate time.Time, timezone float64) ([]Event, error) {
	if err := validateTimezone(timezone); err != nil {
		return nil, err
	}
	start, end := localDayBounds(forDate, timezone)
	return c.collectEvents(AllEventTypes, start, end, timezone)
}

// SearchEvents finds events of the requested types between two dates
// inclusive, expressed in the given timezone offset, sorted by start
// time. Passing the same date twice searches that single day.
func (c *Computer) SearchEvents(types []EventType, start, end time.Time, timezone float64) ([]Event, error) {
	if err := validateTimezone(timezone); err != nil {
		return nil, err
	}

	from, _ := localDayBounds(start, timezone)
	_, to := localDayBounds(end, timezone)
	if to.Before(from) || from.Equal(to) {
		return nil, &InvalidDateRangeError{Start: start, End: end}
	}

	return c.collectEvents(types, from, to, timezone)
}

// finderEntry binds one finder to the event types it can produce, so
// that a search for several of them runs the finder once.
type finderEntry struct {
	produces []EventType
	run      func(start, end time.Time) ([]Event, error)
}

func (c *Computer) eventFinders() []finderEntry {
	return []finderEntry{
		{[]EventType{EventOpposition}, c.findOppositions},
		{[]EventType{EventConjunction, EventOccultation}, c.findConjunctionsOccultations},
		{[]EventType{EventConjunction}, c.findSolarConjunctions},
		{[]EventType{EventMaximalElongation}, c.findMaximalElongations},
		{[]EventType{EventApogee, EventPerigee}, c.findMoonApsides},
		{[]EventType{EventPerihelion, EventAphelion}, c.findEarthApsides},
		{[]EventType{EventEquinox, EventSolstice}, c.findSeasons},
		{[]EventType{EventLunarEclipse}, c.findLunarEclipses},
		{[]EventType{EventSolarEclipse}, c.findSolarEclipses},
	}
}

func (c *Computer) collectEvents(types []EventType, start, end time.Time, timezone float64) ([]Event, error) {
	wanted := make(map[EventType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	var events []Event
	for _, entry := range c.eventFinders() {
		run := false
		for _, t := range entry.produces {
			if wanted[t] {
				run = true
				break
			}
		}
		if !run {
			continue
		}
		found, err := entry.run(start, end)
		if err != nil {
			return nil, wrapRange(err)
		}
		for _, ev := range found {
			if wanted[ev.Type] {
				events = append(events, translateEvent(ev, timezone))
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
	c.log.Debug("found %d events between %s and %s",
		len(events), start.Format("2006-01-02"), end.Format("2006-01-02"))
	return events, nil
}

func translateEvent(ev Event, timezone float64) Event {
	ev.StartTime = TranslateToTimezone(ev.StartTime, timezone)
	if ev.EndTime != nil {
		t := TranslateToTimezone(*ev.EndTime, timezone)
		ev.EndTime = &t
	}
	if ev.Peak != nil {
		t := TranslateToTimezone(*ev.Peak, timezone)
		ev.Peak = &t
	}
	return ev
}

// longitudeDiff builds the solved function wrap180(λa - λb - offset).
// Its rising zero-crossings are the instants body a passes offset
// degrees of ecliptic longitude ahead of body b.
func (c *Computer) longitudeDiff(a, b Object, offsetDeg float64) search.Func {
	return func(t time.Time) (float64, error) {
		pa, err := c.observeGeo(a, t)
		if err != nil {
			return 0, err
		}
		pb, err := c.observeGeo(b, t)
		if err != nil {
			return 0, err
		}
		return astro.Wrap180(pa.EclLonDeg - pb.EclLonDeg - offsetDeg), nil
	}
}

// separation returns the true angular separation of two bodies at an
// instant, in degrees.
func (c *Computer) separation(a, b Object, t time.Time) (float64, error) {
	pa, err := c.observeGeo(a, t)
	if err != nil {
		return 0, err
	}
	pb, err := c.observeGeo(b, t)
	if err != nil {
		return 0, err
	}
	return astro.Separation(pa.EclLonDeg, pa.EclLatDeg, pb.EclLonDeg, pb.EclLatDeg), nil
}

// findOppositions locates the instants a superior planet stands opposite
// the Sun. The longitude difference crossing 180° gives the instant; the
// separation band confirms the geometry.
func (c *Computer) findOppositions(start, end time.Time) ([]Event, error) {
	var events []Event
	for _, planet := range superiorPlanets {
		crossings, err := search.Crossings(c.longitudeDiff(planet, ObjectSun, 180), start, end, c.searchOptions(planetStep))
		if err != nil {
			return nil, err
		}
		for _, cr := range crossings {
			sep, err := c.separation(planet, ObjectSun, cr.Time)
			if err != nil {
				return nil, err
			}
			if sep < oppositionMinSepDeg {
				continue
			}
			events = append(events, Event{
				Type:      EventOpposition,
				Objects:   []Object{planet},
				StartTime: cr.Time,
				Details:   map[string]float64{"elongation_deg": round1(sep)},
			})
		}
	}
	return events, nil
}

// findSolarConjunctions locates the instants a planet aligns with the
// Sun in ecliptic longitude with a confirming small separation.
func (c *Computer) findSolarConjunctions(start, end time.Time) ([]Event, error) {
	var events []Event
	for _, planet := range allPlanets {
		crossings, err := search.Crossings(c.longitudeDiff(planet, ObjectSun, 0), start, end, c.searchOptions(planetStep))
		if err != nil {
			return nil, err
		}
		for _, cr := range crossings {
			sep, err := c.separation(planet, ObjectSun, cr.Time)
			if err != nil {
				return nil, err
			}
			if sep > solarConjunctionMaxSepDeg {
				continue
			}
			events = append(events, Event{
				Type:      EventConjunction,
				Objects:   []Object{planet, ObjectSun},
				StartTime: cr.Time,
				Details:   map[string]float64{"separation_deg": round1(sep)},
			})
		}
	}
	return events, nil
}

// findConjunctionsOccultations walks every Moon/planet pair looking for
// longitude alignments. An alignment closer than the summed apparent
// radii is an occultation, with the nearer body listed first as the
// occulting one; anything else within the conjunction band is a
// conjunction.
func (c *Computer) findConjunctionsOccultations(start, end time.Time) ([]Event, error) {
	var events []Event
	for i, first := range conjunctionBodies {
		for _, second := range conjunctionBodies[i+1:] {
			crossings, err := search.Crossings(c.longitudeDiff(first, second, 0), start, end, c.searchOptions(pairStep))
			if err != nil {
				return nil, err
			}
			for _, cr := range crossings {
				ev, ok, err := c.classifyPair(first, second, cr.Time)
				if err != nil {
					return nil, err
				}
				if ok {
					events = append(events, ev)
				}
			}
		}
	}
	return events, nil
}

func (c *Computer) classifyPair(first, second Object, at time.Time) (Event, bool, error) {
	pa, err := c.observeGeo(first, at)
	if err != nil {
		return Event{}, false, err
	}
	pb, err := c.observeGeo(second, at)
	if err != nil {
		return Event{}, false, err
	}

	sep := astro.Separation(pa.EclLonDeg, pa.EclLatDeg, pb.EclLonDeg, pb.EclLatDeg)

	if sep < first.apparentRadiusDeg(pa.DistanceKm)+second.apparentRadiusDeg(pb.DistanceKm) {
		objects := []Object{first, second}
		if pb.DistanceKm < pa.DistanceKm {
			objects = []Object{second, first}
		}
		return Event{
			Type:      EventOccultation,
			Objects:   objects,
			StartTime: at,
			Details:   map[string]float64{"separation_deg": round1(sep)},
		}, true, nil
	}

	if sep > conjunctionMaxSepDeg {
		return Event{}, false, nil
	}
	return Event{
		Type:      EventConjunction,
		Objects:   []Object{first, second},
		StartTime: at,
		Details:   map[string]float64{"separation_deg": round1(sep)},
	}, true, nil
}

// findMaximalElongations locates the greatest elongations of the inner
// planets: interior maxima of their angular separation from the Sun.
func (c *Computer) findMaximalElongations(start, end time.Time) ([]Event, error) {
	var events []Event
	for _, planet := range innerPlanets {
		f := func(t time.Time) (float64, error) {
			return c.separation(planet, ObjectSun, t)
		}
		maxima, err := search.Maxima(f, start.Add(-apsisSlack), end.Add(apsisSlack), c.searchOptions(elongationStep))
		if err != nil {
			return nil, err
		}
		for _, ext := range maxima {
			if ext.Value < elongationMinDeg || !inWindow(ext.Time, start, end) {
				continue
			}
			events = append(events, Event{
				Type:      EventMaximalElongation,
				Objects:   []Object{planet},
				StartTime: ext.Time,
				Details:   map[string]float64{"deg": round1(ext.Value)},
			})
		}
	}
	return events, nil
}

// findMoonApsides locates lunar apogees and perigees: extrema of the
// geocentric lunar distance. The Meeus apsis almanac prunes windows that
// cannot contain one; the distance search supplies the instant.
func (c *Computer) findMoonApsides(start, end time.Time) ([]Event, error) {
	distance := func(t time.Time) (float64, error) {
		p, err := c.observeGeo(ObjectMoon, t)
		if err != nil {
			return 0, err
		}
		return p.DistanceKm, nil
	}

	apogees, err := c.findApsides(EventApogee, ObjectMoon, distance, apsis.Apogee, start, end)
	if err != nil {
		return nil, err
	}
	perigees, err := c.findApsides(EventPerigee, ObjectMoon, distance, apsis.Perigee, start, end)
	if err != nil {
		return nil, err
	}
	return append(apogees, perigees...), nil
}

// findEarthApsides locates the Earth's perihelion and aphelion: extrema
// of the geocentric solar distance.
func (c *Computer) findEarthApsides(start, end time.Time) ([]Event, error) {
	distance := func(t time.Time) (float64, error) {
		p, err := c.observeGeo(ObjectSun, t)
		if err != nil {
			return 0, err
		}
		return p.DistanceKm, nil
	}

	aphelia, err := c.findApsides(EventAphelion, ObjectEarth, distance, func(y float64) float64 {
		return perihelion.Aphelion(perihelion.Earth, y)
	}, start, end)
	if err != nil {
		return nil, err
	}
	perihelia, err := c.findApsides(EventPerihelion, ObjectEarth, distance, func(y float64) float64 {
		return perihelion.Perihelion(perihelion.Earth, y)
	}, start, end)
	if err != nil {
		return nil, err
	}
	return append(aphelia, perihelia...), nil
}

func (c *Computer) findApsides(kind EventType, body Object, distance search.Func, almanac func(float64) float64, start, end time.Time) ([]Event, error) {
	mid := start.Add(end.Sub(start) / 2)
	seed := julian.JDToTime(almanac(decimalYear(mid)))
	if seed.Before(start.Add(-apsisSlack)) || seed.After(end.Add(apsisSlack)) {
		return nil, nil
	}

	finder := search.Maxima
	if kind == EventPerigee || kind == EventPerihelion {
		finder = search.Minima
	}

	extrema, err := finder(distance, start.Add(-apsisSlack), end.Add(apsisSlack), c.searchOptions(distanceStep))
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, ext := range extrema {
		if !inWindow(ext.Time, start, end) {
			continue
		}
		events = append(events, Event{
			Type:      kind,
			Objects:   []Object{body},
			StartTime: ext.Time,
			Details:   map[string]float64{"distance_km": ext.Value},
		})
	}
	return events, nil
}

// findSeasons locates equinoxes and solstices: the Sun's apparent
// ecliptic longitude crossing a multiple of 90°. The Meeus solstice
// almanac names the candidates; the crossing search solves the instant
// against the same solar series the rest of the library uses.
func (c *Computer) findSeasons(start, end time.Time) ([]Event, error) {
	type quarter struct {
		almanac func(int) float64
		lonDeg  float64
		season  SeasonType
		kind    EventType
	}
	quarters := []quarter{
		{solstice.March, 0, SeasonMarchEquinox, EventEquinox},
		{solstice.June, 90, SeasonJuneSolstice, EventSolstice},
		{solstice.September, 180, SeasonSeptemberEquinox, EventEquinox},
		{solstice.December, 270, SeasonDecemberSolstice, EventSolstice},
	}

	sunLongitude := func(target float64) search.Func {
		return func(t time.Time) (float64, error) {
			p, err := c.observeGeo(ObjectSun, t)
			if err != nil {
				return 0, err
			}
			return astro.Wrap180(p.EclLonDeg - target), nil
		}
	}

	var events []Event
	for year := start.Year(); year <= end.Year(); year++ {
		for _, q := range quarters {
			approx := julian.JDToTime(q.almanac(year))
			if approx.Before(start.AddDate(0, 0, -1)) || approx.After(end.AddDate(0, 0, 1)) {
				continue
			}
			crossings, err := search.Crossings(sunLongitude(q.lonDeg), approx.AddDate(0, 0, -2), approx.AddDate(0, 0, 2), c.searchOptions(planetStep))
			if err != nil {
				return nil, err
			}
			for _, cr := range crossings {
				if cr.Rising && inWindow(cr.Time, start, end) {
					events = append(events, Event{
						Type:      q.kind,
						StartTime: cr.Time,
						Season:    q.season,
					})
				}
			}
		}
	}
	return events, nil
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
