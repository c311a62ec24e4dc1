package astro

import (
	"math"
	"testing"
	"time"
)

func TestHeliocentricPositionEarth(t *testing.T) {
	// The Earth-Moon barycenter stays within the orbital eccentricity of
	// 1 AU all year.
	for month := time.January; month <= time.December; month++ {
		at := time.Date(2021, month, 15, 0, 0, 0, 0, time.UTC)
		pos, err := HeliocentricPosition(EarthMoonBary, at)
		if err != nil {
			t.Fatalf("HeliocentricPosition: %v", err)
		}
		r := pos.Norm()
		if r < 0.98 || r > 1.02 {
			t.Errorf("%v: Earth heliocentric distance = %f AU", month, r)
		}
	}
}

func TestHeliocentricPositionUnknown(t *testing.T) {
	if _, err := HeliocentricPosition(Planet(99), time.Now()); err != ErrUnknownPlanet {
		t.Errorf("unknown planet error = %v, want ErrUnknownPlanet", err)
	}
}

func TestGeocentricPlanetDistanceBounds(t *testing.T) {
	tests := []struct {
		name     string
		planet   Planet
		min, max float64 // AU
	}{
		{"mars", Mars, 0.37, 2.7},
		{"venus", Venus, 0.25, 1.75},
		{"jupiter", Jupiter, 3.9, 6.5},
		{"saturn", Saturn, 8.0, 11.1},
		{"neptune", Neptune, 28.8, 31.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for year := 2000; year <= 2040; year += 7 {
				at := time.Date(year, 3, 1, 0, 0, 0, 0, time.UTC)
				_, dist, err := GeocentricPlanet(tt.planet, at)
				if err != nil {
					t.Fatalf("GeocentricPlanet: %v", err)
				}
				if dist < tt.min || dist > tt.max {
					t.Errorf("%d: distance = %f AU, want in [%f, %f]", year, dist, tt.min, tt.max)
				}
			}
		})
	}
}

func TestGeocentricPlanetMarsOpposition(t *testing.T) {
	// At the 2020-10-13 opposition Mars stood opposite the Sun, which
	// puts its geocentric longitude about 180 degrees from the Sun's
	// (around 21 degrees of ecliptic longitude for mid-October).
	at := time.Date(2020, 10, 13, 23, 0, 0, 0, time.UTC)
	ecl, dist, err := GeocentricPlanet(Mars, at)
	if err != nil {
		t.Fatalf("GeocentricPlanet: %v", err)
	}

	if math.Abs(Wrap180(ecl.LonDeg-21)) > 2 {
		t.Errorf("Mars longitude at opposition = %f, want about 21", ecl.LonDeg)
	}
	if dist < 0.40 || dist > 0.45 {
		t.Errorf("Mars distance at opposition = %f AU, want about 0.42", dist)
	}
}

func TestSolveKepler(t *testing.T) {
	tests := []struct {
		name string
		m, e float64
	}{
		{"circular", 1.0, 0},
		{"low eccentricity", 0.5, 0.0167},
		{"mercury", 2.0, 0.2056},
		{"pluto", 4.5, 0.2488},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ea := solveKepler(tt.m, tt.e)
			// The solution must satisfy Kepler's equation.
			back := ea - tt.e*math.Sin(ea)
			if math.Abs(back-tt.m) > 1e-9 {
				t.Errorf("E - e*sin(E) = %f, want %f", back, tt.m)
			}
		})
	}
}
