// Package export renders a computed almanac to text and JSON for the
// headless modes.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	kosmorrolib "github.com/Kosmorro/lib"
	"github.com/Kosmorro/lib/internal/state"
)

// AlmanacExport is the JSON-serializable representation of an almanac.
type AlmanacExport struct {
	Date        string           `json:"date"`
	Position    map[string]any   `json:"position"`
	Timezone    float64          `json:"timezone"`
	Ephemerides []map[string]any `json:"ephemerides"`
	MoonPhase   map[string]any   `json:"moon_phase"`
	Events      []map[string]any `json:"events"`
}

// ExportAlmanac converts an almanac to an exportable format.
func ExportAlmanac(a state.Almanac) *AlmanacExport {
	export := &AlmanacExport{
		Date: a.Date.Format("2006-01-02"),
		Position: map[string]any{
			"latitude":  a.Position.Latitude,
			"longitude": a.Position.Longitude,
		},
		Timezone:    a.Timezone,
		Ephemerides: make([]map[string]any, 0, len(a.Objects)),
		MoonPhase:   a.Moon.Serialize(),
		Events:      make([]map[string]any, 0, len(a.Events)),
	}
	for _, eph := range a.Objects {
		export.Ephemerides = append(export.Ephemerides, eph.Serialize())
	}
	for _, ev := range a.Events {
		export.Events = append(export.Events, ev.Serialize())
	}
	return export
}

// WriteJSON writes the almanac as indented JSON to the given writer.
func (e *AlmanacExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteText writes a human-readable almanac report to the given writer.
func WriteText(w io.Writer, a state.Almanac) {
	fmt.Fprintf(w, "Almanac for %s (UTC%+g) at %s\n",
		a.Date.Format("Monday January 2, 2006"), a.Timezone, FormatPosition(a.Position))
	fmt.Fprintln(w, strings.Repeat("─", 58))

	// Ephemerides table
	fmt.Fprintf(w, "%-10s %-12s %-12s %-12s\n", "Object", "Rise", "Culmination", "Set")
	fmt.Fprintln(w, strings.Repeat("─", 58))
	for _, eph := range a.Objects {
		fmt.Fprintf(w, "%-10s %-12s %-12s %-12s\n",
			ObjectName(eph.Object),
			formatClock(eph.RiseTime),
			formatClock(eph.CulminationTime),
			formatClock(eph.SetTime),
		)
	}

	// Moon phase
	fmt.Fprintf(w, "\nMoon phase: %s\n", PhaseName(a.Moon.Phase))
	fmt.Fprintf(w, "%s on %s\n",
		PhaseName(a.Moon.NextPhase),
		a.Moon.NextPhaseDate.Format("Monday January 2, 2006 at 15:04"))

	// Events
	fmt.Fprintln(w, "\nExpected events:")
	if len(a.Events) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, ev := range a.Events {
		fmt.Fprintf(w, "  %s  %s\n", ev.StartTime.Format("15:04"), DescribeEvent(ev))
	}
}

// FormatPosition renders an observer position with hemisphere suffixes.
func FormatPosition(p kosmorrolib.Position) string {
	latSuffix, lonSuffix := "N", "E"
	lat, lon := p.Latitude, p.Longitude
	if lat < 0 {
		lat, latSuffix = -lat, "S"
	}
	if lon < 0 {
		lon, lonSuffix = -lon, "W"
	}
	return fmt.Sprintf("%.4f%s, %.4f%s", lat, latSuffix, lon, lonSuffix)
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}

// ObjectName returns the display name of an object.
func ObjectName(o kosmorrolib.Object) string {
	return titleWord(o.Identifier.String())
}

// PhaseName returns the display name of a Moon phase, e.g.
// "Waxing Gibbous".
func PhaseName(p kosmorrolib.MoonPhaseType) string {
	parts := strings.Split(p.String(), "_")
	for i, part := range parts {
		parts[i] = titleWord(part)
	}
	return strings.Join(parts, " ")
}

func titleWord(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DescribeEvent renders a one-line human description of an event.
func DescribeEvent(ev kosmorrolib.Event) string {
	name := func(i int) string {
		if i < len(ev.Objects) {
			return ObjectName(ev.Objects[i])
		}
		return "?"
	}

	switch ev.Type {
	case kosmorrolib.EventOpposition:
		return fmt.Sprintf("%s is in opposition", name(0))
	case kosmorrolib.EventConjunction:
		return fmt.Sprintf("%s and %s are in conjunction", name(0), name(1))
	case kosmorrolib.EventOccultation:
		return fmt.Sprintf("%s occults %s", name(0), name(1))
	case kosmorrolib.EventMaximalElongation:
		return fmt.Sprintf("%s's largest elongation (%.1f°)", name(0), ev.Details["deg"])
	case kosmorrolib.EventApogee:
		return fmt.Sprintf("%s is at its apogee (%.0f km)", name(0), ev.Details["distance_km"])
	case kosmorrolib.EventPerigee:
		return fmt.Sprintf("%s is at its perigee (%.0f km)", name(0), ev.Details["distance_km"])
	case kosmorrolib.EventAphelion:
		return fmt.Sprintf("%s is at its aphelion", name(0))
	case kosmorrolib.EventPerihelion:
		return fmt.Sprintf("%s is at its perihelion", name(0))
	case kosmorrolib.EventEquinox, kosmorrolib.EventSolstice:
		return seasonName(ev.Season)
	case kosmorrolib.EventLunarEclipse:
		return fmt.Sprintf("%s lunar eclipse", titleWord(ev.EclipseKind.String()))
	case kosmorrolib.EventSolarEclipse:
		return fmt.Sprintf("%s solar eclipse", titleWord(ev.EclipseKind.String()))
	default:
		return ev.Type.String()
	}
}

func seasonName(s kosmorrolib.SeasonType) string {
	switch s {
	case kosmorrolib.SeasonMarchEquinox:
		return "March equinox"
	case kosmorrolib.SeasonJuneSolstice:
		return "June solstice"
	case kosmorrolib.SeasonSeptemberEquinox:
		return "September equinox"
	default:
		return "December solstice"
	}
}
