package astro

import (
	"errors"
	"math"
	"time"
)

// Planet identifies a planet in the Keplerian element table.
type Planet int

const (
	Mercury Planet = iota
	Venus
	EarthMoonBary
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// ErrUnknownPlanet is returned for identifiers outside the element table.
var ErrUnknownPlanet = errors.New("astro: unknown planet")

// Vec3 is a 3D vector in the ecliptic frame, components in AU.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// keplerElements holds mean orbital elements at J2000 and their rates
// per Julian century: semi-major axis (AU), eccentricity, inclination,
// mean longitude, longitude of perihelion, longitude of ascending node
// (all angles in degrees).
type keplerElements struct {
	a, e, i, l, varpi, node       float64
	da, de, di, dl, dvarpi, dnode float64
}

// planetElements is the JPL approximate-position element table,
// valid for 1800-2050 AD.
var planetElements = map[Planet]keplerElements{
	Mercury: {
		0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
	},
	Venus: {
		0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
	},
	EarthMoonBary: {
		1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
	},
	Mars: {
		1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
	},
	Jupiter: {
		5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
	},
	Saturn: {
		9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
	},
	Uranus: {
		19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589,
	},
	Neptune: {
		30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664,
	},
	Pluto: {
		39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
		-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482,
	},
}

// generalPrecession is the accumulated general precession in ecliptic
// longitude, degrees per Julian century, used to bring the J2000
// element frame to the ecliptic of date.
const generalPrecession = 1.3969713

// HeliocentricPosition returns the heliocentric ecliptic (J2000)
// position of a planet in AU.
func HeliocentricPosition(p Planet, t time.Time) (Vec3, error) {
	el, ok := planetElements[p]
	if !ok {
		return Vec3{}, ErrUnknownPlanet
	}

	T := JulianCentury(t)

	a := el.a + el.da*T
	e := el.e + el.de*T
	i := degToRad(el.i + el.di*T)
	l := el.l + el.dl*T
	varpi := el.varpi + el.dvarpi*T
	node := degToRad(el.node + el.dnode*T)

	// Argument of perihelion and mean anomaly.
	omega := degToRad(varpi) - node
	m := degToRad(Wrap180(l - varpi))

	ea := solveKepler(m, e)

	// Position in the orbital plane, perihelion along +x.
	xp := a * (math.Cos(ea) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ea)

	cosO := math.Cos(omega)
	sinO := math.Sin(omega)
	cosN := math.Cos(node)
	sinN := math.Sin(node)
	cosI := math.Cos(i)
	sinI := math.Sin(i)

	return Vec3{
		X: (cosO*cosN-sinO*sinN*cosI)*xp + (-sinO*cosN-cosO*sinN*cosI)*yp,
		Y: (cosO*sinN+sinO*cosN*cosI)*xp + (-sinO*sinN+cosO*cosN*cosI)*yp,
		Z: sinO*sinI*xp + cosO*sinI*yp,
	}, nil
}

// GeocentricPlanet returns the geocentric ecliptic-of-date coordinates of
// a planet and its distance from the Earth in AU.
func GeocentricPlanet(p Planet, t time.Time) (Ecliptic, float64, error) {
	planet, err := HeliocentricPosition(p, t)
	if err != nil {
		return Ecliptic{}, 0, err
	}
	earth, err := HeliocentricPosition(EarthMoonBary, t)
	if err != nil {
		return Ecliptic{}, 0, err
	}

	g := planet.Sub(earth)
	dist := g.Norm()

	lon := radToDeg(math.Atan2(g.Y, g.X))
	lat := radToDeg(math.Asin(g.Z / dist))

	// The element table is referred to the J2000 ecliptic; shift the
	// longitude to the equinox of date to match the Sun/Moon series.
	lon += generalPrecession * JulianCentury(t)

	return Ecliptic{LonDeg: Normalize360(lon), LatDeg: lat}, dist, nil
}

// solveKepler solves Kepler's equation M = E - e*sin(E) for the
// eccentric anomaly, all in radians.
func solveKepler(m, e float64) float64 {
	ea := m + e*math.Sin(m)
	for iter := 0; iter < 30; iter++ {
		delta := (ea - e*math.Sin(ea) - m) / (1 - e*math.Cos(ea))
		ea -= delta
		if math.Abs(delta) < 1e-10 {
			break
		}
	}
	return ea
}
