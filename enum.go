package kosmorrolib

// ObjectType classifies an astronomical object.
type ObjectType int

const (
	ObjectTypeStar ObjectType = iota
	ObjectTypePlanet
	ObjectTypeDwarfPlanet
	ObjectTypeSatellite
)

func (ot ObjectType) String() string {
	switch ot {
	case ObjectTypeStar:
		return "STAR"
	case ObjectTypePlanet:
		return "PLANET"
	case ObjectTypeDwarfPlanet:
		return "DWARF_PLANET"
	case ObjectTypeSatellite:
		return "SATELLITE"
	default:
		return "UNKNOWN"
	}
}

// ObjectIdentifier names an astronomical object. The set is closed: the
// solvers pattern-match on it and are not extensible at this layer.
type ObjectIdentifier int

const (
	IdentifierSun ObjectIdentifier = iota
	IdentifierMoon
	IdentifierMercury
	IdentifierVenus
	IdentifierEarth
	IdentifierMars
	IdentifierJupiter
	IdentifierSaturn
	IdentifierUranus
	IdentifierNeptune
	IdentifierPluto
)

func (id ObjectIdentifier) String() string {
	switch id {
	case IdentifierSun:
		return "SUN"
	case IdentifierMoon:
		return "MOON"
	case IdentifierMercury:
		return "MERCURY"
	case IdentifierVenus:
		return "VENUS"
	case IdentifierEarth:
		return "EARTH"
	case IdentifierMars:
		return "MARS"
	case IdentifierJupiter:
		return "JUPITER"
	case IdentifierSaturn:
		return "SATURN"
	case IdentifierUranus:
		return "URANUS"
	case IdentifierNeptune:
		return "NEPTUNE"
	case IdentifierPluto:
		return "PLUTO"
	default:
		return "UNKNOWN"
	}
}

// MoonPhaseType is one of the eight named Moon phases. The numeric value
// is the index of the 45° segment of the Moon-Sun elongation the phase
// covers, starting at 0° = New Moon.
type MoonPhaseType int

const (
	MoonNewMoon MoonPhaseType = iota
	MoonWaxingCrescent
	MoonFirstQuarter
	MoonWaxingGibbous
	MoonFullMoon
	MoonWaningGibbous
	MoonLastQuarter
	MoonWaningCrescent
)

func (p MoonPhaseType) String() string {
	switch p {
	case MoonNewMoon:
		return "NEW_MOON"
	case MoonWaxingCrescent:
		return "WAXING_CRESCENT"
	case MoonFirstQuarter:
		return "FIRST_QUARTER"
	case MoonWaxingGibbous:
		return "WAXING_GIBBOUS"
	case MoonFullMoon:
		return "FULL_MOON"
	case MoonWaningGibbous:
		return "WANING_GIBBOUS"
	case MoonLastQuarter:
		return "LAST_QUARTER"
	case MoonWaningCrescent:
		return "WANING_CRESCENT"
	default:
		return "UNKNOWN"
	}
}

// IsQuarter reports whether the phase is one of the four quarter phases,
// the ones that happen at an exact instant.
func (p MoonPhaseType) IsQuarter() bool {
	return p%2 == 0
}

// Next returns the quarter phase that follows this one.
func (p MoonPhaseType) Next() MoonPhaseType {
	switch p {
	case MoonNewMoon, MoonWaxingCrescent:
		return MoonFirstQuarter
	case MoonFirstQuarter, MoonWaxingGibbous:
		return MoonFullMoon
	case MoonFullMoon, MoonWaningGibbous:
		return MoonLastQuarter
	default:
		return MoonNewMoon
	}
}

// EventType tags an Event variant.
type EventType int

const (
	EventOpposition EventType = iota
	EventConjunction
	EventOccultation
	EventMaximalElongation
	EventApogee
	EventPerigee
	EventPerihelion
	EventAphelion
	EventEquinox
	EventSolstice
	EventLunarEclipse
	EventSolarEclipse
)

func (et EventType) String() string {
	switch et {
	case EventOpposition:
		return "OPPOSITION"
	case EventConjunction:
		return "CONJUNCTION"
	case EventOccultation:
		return "OCCULTATION"
	case EventMaximalElongation:
		return "MAXIMAL_ELONGATION"
	case EventApogee:
		return "APOGEE"
	case EventPerigee:
		return "PERIGEE"
	case EventPerihelion:
		return "PERIHELION"
	case EventAphelion:
		return "APHELION"
	case EventEquinox:
		return "EQUINOX"
	case EventSolstice:
		return "SOLSTICE"
	case EventLunarEclipse:
		return "LUNAR_ECLIPSE"
	case EventSolarEclipse:
		return "SOLAR_ECLIPSE"
	default:
		return "UNKNOWN"
	}
}

// AllEventTypes lists every supported event type.
var AllEventTypes = []EventType{
	EventOpposition,
	EventConjunction,
	EventOccultation,
	EventMaximalElongation,
	EventApogee,
	EventPerigee,
	EventPerihelion,
	EventAphelion,
	EventEquinox,
	EventSolstice,
	EventLunarEclipse,
	EventSolarEclipse,
}

// SeasonType identifies which quarter of the year an equinox or solstice
// event belongs to.
type SeasonType int

const (
	SeasonMarchEquinox SeasonType = iota
	SeasonJuneSolstice
	SeasonSeptemberEquinox
	SeasonDecemberSolstice
)

func (s SeasonType) String() string {
	switch s {
	case SeasonMarchEquinox:
		return "MARCH_EQUINOX"
	case SeasonJuneSolstice:
		return "JUNE_SOLSTICE"
	case SeasonSeptemberEquinox:
		return "SEPTEMBER_EQUINOX"
	case SeasonDecemberSolstice:
		return "DECEMBER_SOLSTICE"
	default:
		return "UNKNOWN"
	}
}

// EclipseKind classifies an eclipse event. The zero value means the
// event is not an eclipse.
type EclipseKind int

const (
	EclipseNone EclipseKind = iota
	EclipsePenumbral
	EclipsePartial
	EclipseAnnular
	EclipseTotal
)

func (k EclipseKind) String() string {
	switch k {
	case EclipsePenumbral:
		return "PENUMBRAL"
	case EclipsePartial:
		return "PARTIAL"
	case EclipseAnnular:
		return "ANNULAR"
	case EclipseTotal:
		return "TOTAL"
	default:
		return "NONE"
	}
}
