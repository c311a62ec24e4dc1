package kosmorrolib

import (
	"fmt"
	"math"
	"time"
)

// TranslateToTimezone converts an instant to a fixed-offset timezone.
// The instant itself is unchanged; only the presentation zone moves.
func TranslateToTimezone(t time.Time, offsetHours float64) time.Time {
	seconds := int(math.Round(offsetHours * 3600))
	return t.In(time.FixedZone(zoneName(offsetHours), seconds))
}

// NormalizeToMinute rounds an instant to the nearest minute. Rise,
// culmination and set times are published at minute resolution.
func NormalizeToMinute(t time.Time) time.Time {
	return t.Round(time.Minute)
}

func zoneName(offsetHours float64) string {
	if offsetHours == 0 {
		return "UTC"
	}
	seconds := int(math.Round(offsetHours * 3600))
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if m == 0 {
		return fmt.Sprintf("UTC%s%d", sign, h)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, h, m)
}

// localDayBounds returns the UTC instants bounding the calendar day of
// forDate as seen in the given timezone offset. Only the year, month and
// day of forDate are considered.
func localDayBounds(forDate time.Time, offsetHours float64) (start, end time.Time) {
	y, m, d := forDate.Date()
	offset := time.Duration(math.Round(offsetHours * float64(time.Hour)))
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(-offset)
	return start, start.Add(24 * time.Hour)
}

// sameLocalDay reports whether an instant falls on the calendar day of
// forDate when rendered in the given timezone offset.
func sameLocalDay(t time.Time, forDate time.Time, offsetHours float64) bool {
	local := TranslateToTimezone(t, offsetHours)
	y1, m1, d1 := local.Date()
	y2, m2, d2 := forDate.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// decimalYear expresses an instant as a fractional year, the time scale
// the almanac seed functions take.
func decimalYear(t time.Time) float64 {
	t = t.UTC()
	return float64(t.Year()) + (float64(t.YearDay())-0.5)/365.25
}
