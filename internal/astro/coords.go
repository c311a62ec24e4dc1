// Package astro provides the spherical astronomy primitives shared by the
// ephemeris provider and the event solvers: Julian dates, sidereal time,
// frame conversions and angular separations.
package astro

import (
	"math"
	"time"
)

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// EarthRadiusKm is the Earth equatorial radius, used for parallax.
const EarthRadiusKm = 6378.137

// Observer is a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
}

// Equatorial holds equatorial coordinates, in degrees.
type Equatorial struct {
	RADeg  float64 // Right Ascension (0-360)
	DecDeg float64 // Declination (-90 to +90)
}

// Ecliptic holds geocentric ecliptic coordinates, in degrees.
type Ecliptic struct {
	LonDeg float64 // Ecliptic longitude (0-360)
	LatDeg float64 // Ecliptic latitude (-90 to +90)
}

// Horizontal holds observer-relative horizontal coordinates, in degrees.
// Azimuth convention: 0° = North, 90° = East, 180° = South, 270° = West.
type Horizontal struct {
	AltDeg float64 // Altitude above the horizon (90 = zenith)
	AzDeg  float64
}

// JulianDate returns the Julian Date for a given time.
func JulianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0

	// January and February count as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction.
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + b - 1524.5
}

// JulianCentury returns Julian centuries since J2000.0 for a given time.
func JulianCentury(t time.Time) float64 {
	return (JulianDate(t) - 2451545.0) / 36525.0
}

// GreenwichSiderealTime returns GMST in degrees for a given UTC time,
// using the IAU 1982 formula.
func GreenwichSiderealTime(t time.Time) float64 {
	jd := JulianDate(t)
	T := (jd - 2451545.0) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return Normalize360(gmst)
}

// LocalSiderealTime returns LST in degrees for a UTC time and a longitude.
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	return Normalize360(GreenwichSiderealTime(t) + lonDeg)
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(t time.Time) float64 {
	T := JulianCentury(t)
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}

// EclipticToEquatorial converts geocentric ecliptic coordinates to
// equatorial coordinates of the same epoch.
func EclipticToEquatorial(ecl Ecliptic, t time.Time) Equatorial {
	eps := degToRad(MeanObliquity(t))
	lon := degToRad(ecl.LonDeg)
	lat := degToRad(ecl.LatDeg)

	sinLon := math.Sin(lon)
	ra := math.Atan2(sinLon*math.Cos(eps)-math.Tan(lat)*math.Sin(eps), math.Cos(lon))
	dec := math.Asin(math.Sin(lat)*math.Cos(eps) + math.Cos(lat)*math.Sin(eps)*sinLon)

	return Equatorial{RADeg: Normalize360(radToDeg(ra)), DecDeg: radToDeg(dec)}
}

// EquatorialToEcliptic converts equatorial coordinates to geocentric
// ecliptic coordinates of the same epoch.
func EquatorialToEcliptic(eq Equatorial, t time.Time) Ecliptic {
	eps := degToRad(MeanObliquity(t))
	ra := degToRad(eq.RADeg)
	dec := degToRad(eq.DecDeg)

	sinRA := math.Sin(ra)
	lon := math.Atan2(sinRA*math.Cos(eps)+math.Tan(dec)*math.Sin(eps), math.Cos(ra))
	lat := math.Asin(math.Sin(dec)*math.Cos(eps) - math.Cos(dec)*math.Sin(eps)*sinRA)

	return Ecliptic{LonDeg: Normalize360(radToDeg(lon)), LatDeg: radToDeg(lat)}
}

// EquatorialToHorizontal converts equatorial coordinates to horizontal
// coordinates for a given observer and time.
func EquatorialToHorizontal(eq Equatorial, obs Observer, t time.Time) Horizontal {
	lat := degToRad(obs.LatDeg)
	ra := degToRad(eq.RADeg)
	dec := degToRad(eq.DecDeg)

	// Hour Angle = LST - RA
	ha := degToRad(LocalSiderealTime(t, obs.LonDeg)) - ra

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(clamp1(sinAlt))

	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))
	az := math.Acos(clamp1(cosAz))

	// Positive hour angle means the object is west of the meridian.
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return Horizontal{AltDeg: radToDeg(alt), AzDeg: radToDeg(az)}
}

// Separation returns the angular separation in degrees between two points
// given by spherical longitude/latitude pairs in degrees. The formula is
// the haversine, stable for small separations.
func Separation(lon1, lat1, lon2, lat2 float64) float64 {
	l1 := degToRad(lon1)
	b1 := degToRad(lat1)
	l2 := degToRad(lon2)
	b2 := degToRad(lat2)

	dl := l2 - l1
	db := b2 - b1

	a := math.Sin(db/2)*math.Sin(db/2) +
		math.Cos(b1)*math.Cos(b2)*math.Sin(dl/2)*math.Sin(dl/2)
	if a > 1 {
		a = 1
	}

	return radToDeg(2 * math.Asin(math.Sqrt(a)))
}

// AngularSeparation returns the separation in degrees between two
// equatorial positions.
func AngularSeparation(a, b Equatorial) float64 {
	return Separation(a.RADeg, a.DecDeg, b.RADeg, b.DecDeg)
}

// Normalize360 normalizes an angle to [0, 360) degrees.
func Normalize360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Wrap180 normalizes an angle to [-180, 180) degrees.
func Wrap180(a float64) float64 {
	a = Normalize360(a)
	if a >= 180 {
		a -= 360
	}
	return a
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
