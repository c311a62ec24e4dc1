package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"sputnik launch", time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"midnight", time.Date(2021, 6, 9, 0, 0, 0, 0, time.UTC), 2459374.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.time)
			if math.Abs(got-tt.want) > 1e-5 {
				t.Errorf("JulianDate(%v) = %f, want %f", tt.time, got, tt.want)
			}
		})
	}
}

func TestGreenwichSiderealTime(t *testing.T) {
	// Meeus example 12.b: 1987 April 10, 19:21:00 UT.
	at := time.Date(1987, 4, 10, 19, 21, 0, 0, time.UTC)
	got := GreenwichSiderealTime(at)

	// 8h 34m 57.0896s in degrees.
	want := (8 + 34/60.0 + 57.0896/3600.0) * 15
	if math.Abs(got-want) > 0.01 {
		t.Errorf("GMST = %f, want %f", got, want)
	}
}

func TestMeanObliquity(t *testing.T) {
	// Near J2000 the obliquity is about 23.4393 degrees.
	got := MeanObliquity(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(got-23.4393) > 0.001 {
		t.Errorf("MeanObliquity at J2000 = %f, want 23.4393", got)
	}
}

func TestEclipticEquatorialRoundTrip(t *testing.T) {
	at := time.Date(2021, 6, 9, 12, 0, 0, 0, time.UTC)

	tests := []Ecliptic{
		{LonDeg: 0, LatDeg: 0},
		{LonDeg: 78.5, LatDeg: 3.2},
		{LonDeg: 181.0, LatDeg: -5.1},
		{LonDeg: 300.0, LatDeg: 1.0},
	}

	for _, ecl := range tests {
		eq := EclipticToEquatorial(ecl, at)
		back := EquatorialToEcliptic(eq, at)

		if math.Abs(Wrap180(back.LonDeg-ecl.LonDeg)) > 1e-9 {
			t.Errorf("round trip lon: got %f, want %f", back.LonDeg, ecl.LonDeg)
		}
		if math.Abs(back.LatDeg-ecl.LatDeg) > 1e-9 {
			t.Errorf("round trip lat: got %f, want %f", back.LatDeg, ecl.LatDeg)
		}
	}
}

func TestEclipticToEquatorialOnEquinox(t *testing.T) {
	// The ecliptic origin is the vernal equinox point: RA and Dec zero.
	at := time.Date(2021, 3, 20, 0, 0, 0, 0, time.UTC)
	eq := EclipticToEquatorial(Ecliptic{}, at)

	if math.Abs(Wrap180(eq.RADeg)) > 1e-9 || math.Abs(eq.DecDeg) > 1e-9 {
		t.Errorf("equinox point maps to RA=%f Dec=%f, want 0,0", eq.RADeg, eq.DecDeg)
	}
}

func TestEquatorialToHorizontal(t *testing.T) {
	// An object at the observer's declination and local meridian sits at
	// the zenith.
	obs := Observer{LatDeg: 45, LonDeg: 0}
	at := time.Date(2021, 6, 9, 3, 0, 0, 0, time.UTC)
	lst := LocalSiderealTime(at, obs.LonDeg)

	hz := EquatorialToHorizontal(Equatorial{RADeg: lst, DecDeg: 45}, obs, at)
	if math.Abs(hz.AltDeg-90) > 0.01 {
		t.Errorf("zenith object altitude = %f, want 90", hz.AltDeg)
	}

	// The opposite pole direction is below the horizon.
	hz = EquatorialToHorizontal(Equatorial{RADeg: lst, DecDeg: -90}, obs, at)
	if math.Abs(hz.AltDeg - -45) > 0.01 {
		t.Errorf("south pole altitude from 45N = %f, want -45", hz.AltDeg)
	}
}

func TestSeparation(t *testing.T) {
	tests := []struct {
		name                   string
		lon1, lat1, lon2, lat2 float64
		want                   float64
	}{
		{"coincident", 10, 5, 10, 5, 0},
		{"along equator", 0, 0, 90, 0, 90},
		{"antipodal", 0, 0, 180, 0, 180},
		{"pole to pole", 0, -90, 0, 90, 180},
		{"small separation", 100, 0, 100.5, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Separation(tt.lon1, tt.lat1, tt.lon2, tt.lat2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Separation = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNormalize360(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{-10, 350},
		{725, 5},
		{-725, 355},
	}

	for _, tt := range tests {
		if got := Normalize360(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Normalize360(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestWrap180(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{179, 179},
		{180, -180},
		{181, -179},
		{359, -1},
		{-1, -1},
	}

	for _, tt := range tests {
		if got := Wrap180(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Wrap180(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
