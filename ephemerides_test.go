package kosmorrolib

import (
	"errors"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// testPosition is a mid-latitude European site with well-behaved rise
// and set times in June.
var testPosition = Position{Latitude: 50.5824, Longitude: 3.0624}

var testDate = time.Date(2021, 6, 9, 0, 0, 0, 0, time.UTC)

func TestEphemerides(t *testing.T) {
	c := NewComputer()

	ephemerides, err := c.Ephemerides(testPosition, testDate, 0)
	if err != nil {
		t.Fatalf("Ephemerides: %v", err)
	}
	if len(ephemerides) != len(AllObjects) {
		t.Fatalf("got %d objects, want %d", len(ephemerides), len(AllObjects))
	}

	for i, eph := range ephemerides {
		if eph.Object != AllObjects[i] {
			t.Errorf("object %d = %v, want %v", i, eph.Object.Identifier, AllObjects[i].Identifier)
		}
	}

	sun := ephemerides[0]
	if sun.RiseTime == nil || sun.CulminationTime == nil || sun.SetTime == nil {
		t.Fatalf("Sun events missing: rise=%v culmination=%v set=%v",
			sun.RiseTime, sun.CulminationTime, sun.SetTime)
	}

	// All three events belong to the requested day and come in order.
	for _, at := range []*time.Time{sun.RiseTime, sun.CulminationTime, sun.SetTime} {
		if !sameLocalDay(*at, testDate, 0) {
			t.Errorf("event %v outside the requested day", at)
		}
	}
	if !sun.RiseTime.Before(*sun.CulminationTime) || !sun.CulminationTime.Before(*sun.SetTime) {
		t.Errorf("events out of order: rise=%v culmination=%v set=%v",
			sun.RiseTime, sun.CulminationTime, sun.SetTime)
	}
}

func TestEphemeridesSunAgainstReference(t *testing.T) {
	c := NewComputer()

	ephemerides, err := c.Ephemerides(testPosition, testDate, 0)
	if err != nil {
		t.Fatalf("Ephemerides: %v", err)
	}
	sun := ephemerides[0]
	if sun.RiseTime == nil || sun.SetTime == nil {
		t.Fatal("Sun rise/set missing")
	}

	wantRise, wantSet := sunrise.SunriseSunset(
		testPosition.Latitude, testPosition.Longitude,
		testDate.Year(), testDate.Month(), testDate.Day())

	const slack = 5 * time.Minute
	if d := sun.RiseTime.Sub(wantRise); d < -slack || d > slack {
		t.Errorf("sunrise = %v, reference says %v (delta %v)", sun.RiseTime, wantRise, d)
	}
	if d := sun.SetTime.Sub(wantSet); d < -slack || d > slack {
		t.Errorf("sunset = %v, reference says %v (delta %v)", sun.SetTime, wantSet, d)
	}
}

func TestEphemeridesPolarDay(t *testing.T) {
	c := NewComputer()

	// Near the pole around the June solstice the Sun never sets: no rise
	// and no set, but a culmination, and no error.
	polar := Position{Latitude: 89, Longitude: 0}
	date := time.Date(2021, 6, 21, 0, 0, 0, 0, time.UTC)

	ephemerides, err := c.Ephemerides(polar, date, 0)
	if err != nil {
		t.Fatalf("Ephemerides: %v", err)
	}

	sun := ephemerides[0]
	if sun.RiseTime != nil || sun.SetTime != nil {
		t.Errorf("polar day Sun has rise=%v set=%v, want none", sun.RiseTime, sun.SetTime)
	}
	if sun.CulminationTime == nil {
		t.Error("polar day Sun has no culmination")
	}
}

func TestEphemeridesPolarNight(t *testing.T) {
	c := NewComputer()

	// Same site at the December solstice: the Sun stays below the
	// horizon, so there is nothing to report at all.
	polar := Position{Latitude: 89, Longitude: 0}
	date := time.Date(2021, 12, 21, 0, 0, 0, 0, time.UTC)

	ephemerides, err := c.Ephemerides(polar, date, 0)
	if err != nil {
		t.Fatalf("Ephemerides: %v", err)
	}

	sun := ephemerides[0]
	if sun.RiseTime != nil || sun.SetTime != nil || sun.CulminationTime != nil {
		t.Errorf("polar night Sun has rise=%v culmination=%v set=%v, want none",
			sun.RiseTime, sun.CulminationTime, sun.SetTime)
	}
}

func TestEphemeridesTimezone(t *testing.T) {
	c := NewComputer()

	utc, err := c.Ephemerides(testPosition, testDate, 0)
	if err != nil {
		t.Fatalf("Ephemerides(UTC): %v", err)
	}
	paris, err := c.Ephemerides(testPosition, testDate, 2)
	if err != nil {
		t.Fatalf("Ephemerides(UTC+2): %v", err)
	}

	// The Sun culminates near local solar noon regardless of the
	// requested zone; the instants must agree, only the rendering moves.
	cu, cp := utc[0].CulminationTime, paris[0].CulminationTime
	if cu == nil || cp == nil {
		t.Fatal("culmination missing")
	}
	if !cu.Equal(*cp) {
		t.Errorf("culmination instant differs across timezones: %v vs %v", cu, cp)
	}
	if cp.Hour()-cu.Hour() != 2 {
		t.Errorf("wall clock offset = %d, want 2", cp.Hour()-cu.Hour())
	}
}

func TestEphemeridesIdempotent(t *testing.T) {
	c := NewComputer()

	first, err := c.Ephemerides(testPosition, testDate, 0)
	if err != nil {
		t.Fatalf("Ephemerides: %v", err)
	}
	second, err := c.Ephemerides(testPosition, testDate, 0)
	if err != nil {
		t.Fatalf("Ephemerides: %v", err)
	}

	for i := range first {
		if !equalOptional(first[i].RiseTime, second[i].RiseTime) ||
			!equalOptional(first[i].CulminationTime, second[i].CulminationTime) ||
			!equalOptional(first[i].SetTime, second[i].SetTime) {
			t.Errorf("%v: results differ between identical queries", first[i].Object.Identifier)
		}
	}
}

func TestEphemeridesValidation(t *testing.T) {
	c := NewComputer()

	tests := []struct {
		name     string
		position Position
		timezone float64
		want     error
	}{
		{"bad latitude", Position{Latitude: 95, Longitude: 0}, 0, ErrInvalidPosition},
		{"bad longitude", Position{Latitude: 0, Longitude: -200}, 0, ErrInvalidPosition},
		{"bad timezone low", testPosition, -13, ErrInvalidTimezone},
		{"bad timezone high", testPosition, 15, ErrInvalidTimezone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Ephemerides(tt.position, testDate, tt.timezone)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEphemeridesOutOfRange(t *testing.T) {
	c := NewComputer()

	_, err := c.Ephemerides(testPosition, time.Date(1750, 6, 9, 0, 0, 0, 0, time.UTC), 0)
	var rangeErr *OutOfRangeDateError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error = %v, want OutOfRangeDateError", err)
	}
	if rangeErr.Min.Year() != 1800 || rangeErr.Max.Year() != 2049 {
		t.Errorf("advertised range = %v..%v", rangeErr.Min, rangeErr.Max)
	}
}

func equalOptional(a, b *time.Time) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || a.Equal(*b)
}
