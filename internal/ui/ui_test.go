package ui

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	kosmorrolib "github.com/Kosmorro/lib"
	"github.com/Kosmorro/lib/internal/state"
)

func testSnapshot() state.Snapshot {
	rise := time.Date(2021, 6, 9, 3, 51, 0, 0, time.UTC)
	set := time.Date(2021, 6, 9, 19, 45, 0, 0, time.UTC)

	return state.Snapshot{
		HasData: true,
		Current: state.Almanac{
			Date:     time.Date(2021, 6, 9, 0, 0, 0, 0, time.UTC),
			Position: kosmorrolib.Position{Latitude: 50.5824, Longitude: 3.0624},
			Objects: []kosmorrolib.AsterEphemerides{
				{Object: kosmorrolib.ObjectSun, RiseTime: &rise, SetTime: &set},
				{Object: kosmorrolib.ObjectMoon},
			},
			Moon: kosmorrolib.MoonPhase{
				Phase:         kosmorrolib.MoonNewMoon,
				Ratio:         0.98,
				NextPhase:     kosmorrolib.MoonFirstQuarter,
				NextPhaseDate: time.Date(2021, 6, 18, 3, 54, 0, 0, time.UTC),
			},
			Events: []kosmorrolib.Event{
				{
					Type:      kosmorrolib.EventOpposition,
					Objects:   []kosmorrolib.Object{kosmorrolib.ObjectMars},
					StartTime: time.Date(2021, 6, 9, 14, 21, 0, 0, time.UTC),
				},
			},
		},
	}
}

func TestMoonArtShapes(t *testing.T) {
	phases := []kosmorrolib.MoonPhaseType{
		kosmorrolib.MoonNewMoon,
		kosmorrolib.MoonWaxingCrescent,
		kosmorrolib.MoonFirstQuarter,
		kosmorrolib.MoonWaxingGibbous,
		kosmorrolib.MoonFullMoon,
		kosmorrolib.MoonWaningGibbous,
		kosmorrolib.MoonLastQuarter,
		kosmorrolib.MoonWaningCrescent,
	}

	for _, p := range phases {
		art := moonArt(p)
		if len(art) != 5 {
			t.Errorf("%v: %d lines, want 5", p, len(art))
		}
		for i, line := range art {
			if n := len([]rune(line)); n != 10 {
				t.Errorf("%v line %d: %d runes, want 10", p, i, n)
			}
		}
	}
}

func TestRenderCycleBar(t *testing.T) {
	tests := []struct {
		ratio float64
		pos   int
	}{
		{0, 0},
		{0.5, 5},
		{0.999, 9},
		{1.5, 9},  // clamped
		{-0.2, 0}, // clamped
	}

	for _, tt := range tests {
		bar := renderCycleBar(tt.ratio, 10)
		runes := []rune(bar)
		if len(runes) != 12 {
			t.Fatalf("ratio %f: bar %q has %d runes, want 12", tt.ratio, bar, len(runes))
		}
		if runes[0] != '[' || runes[11] != ']' {
			t.Errorf("ratio %f: bar %q missing brackets", tt.ratio, bar)
		}
		if runes[1+tt.pos] != '●' {
			t.Errorf("ratio %f: marker not at position %d in %q", tt.ratio, tt.pos, bar)
		}
		if strings.Count(bar, "●") != 1 {
			t.Errorf("ratio %f: bar %q should carry exactly one marker", tt.ratio, bar)
		}
	}
}

func TestGradientColor(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9A-F]{6}$`)

	for _, col := range []int{0, 20, 40, 71} {
		for _, row := range []int{0, 3, 5} {
			c := gradientColor(col, row, 72, 6)
			if !hex.MatchString(c) {
				t.Errorf("gradientColor(%d, %d) = %q, not a hex color", col, row, c)
			}
		}
	}

	// Lower rows fade darker.
	var rt, gt, bt, rb, gb, bb int
	fmt.Sscanf(gradientColor(10, 0, 72, 6), "#%02X%02X%02X", &rt, &gt, &bt)
	fmt.Sscanf(gradientColor(10, 5, 72, 6), "#%02X%02X%02X", &rb, &gb, &bb)
	if rb > rt || gb > gt || bb > bt {
		t.Errorf("bottom row (%d,%d,%d) brighter than top row (%d,%d,%d)", rb, gb, bb, rt, gt, bt)
	}
}

func TestClamp8(t *testing.T) {
	if clamp8(-5) != 0 || clamp8(300) != 255 || clamp8(128) != 128 {
		t.Error("clamp8 out of bounds")
	}
}

func TestModelViewSwitching(t *testing.T) {
	m := New(state.NewManager(state.DefaultConfig()), nil, time.Now())

	key := func(s string) tea.KeyMsg {
		if s == "tab" {
			return tea.KeyMsg{Type: tea.KeyTab}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	tests := []struct {
		press string
		want  ViewMode
	}{
		{"2", ViewEvents},
		{"3", ViewMoon},
		{"1", ViewEphemerides},
		{"v", ViewEvents},
		{"m", ViewMoon},
		{"e", ViewEphemerides},
		{"tab", ViewEvents},
		{"tab", ViewMoon},
		{"tab", ViewEphemerides},
	}

	var model tea.Model = m
	for _, tt := range tests {
		model, _ = model.Update(key(tt.press))
		if got := model.(Model).viewMode; got != tt.want {
			t.Fatalf("after %q: viewMode = %v, want %v", tt.press, got, tt.want)
		}
	}
}

func TestModelAlmanacMsgUpdatesState(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	m := New(mgr, nil, time.Date(2021, 6, 9, 0, 0, 0, 0, time.UTC))

	snap := testSnapshot()
	updated, _ := m.Update(AlmanacMsg{Almanac: snap.Current, Took: 50 * time.Millisecond})

	if !mgr.HasData() {
		t.Error("AlmanacMsg did not reach the state manager")
	}
	if !updated.(Model).snapshot.HasData {
		t.Error("model snapshot not refreshed")
	}
}

func TestChangeDateUsesCache(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	cached := testSnapshot().Current
	mgr.Update(cached, time.Millisecond, nil)

	m := New(mgr, nil, cached.Date.AddDate(0, 0, 1))

	// The cached day promotes without recomputing.
	if cmd := (&m).changeDate(cached.Date); cmd != nil {
		t.Error("cached day triggered a recompute")
	}
	if !m.date.Equal(cached.Date) {
		t.Errorf("date = %v, want %v", m.date, cached.Date)
	}
	if !m.snapshot.Current.Date.Equal(cached.Date) {
		t.Error("snapshot not promoted from cache")
	}

	// An unknown day must compute.
	m.compute = func(date time.Time) (state.Almanac, error) {
		return state.Almanac{Date: date}, nil
	}
	if cmd := (&m).changeDate(cached.Date.AddDate(0, 0, -7)); cmd == nil {
		t.Error("uncached day did not trigger a compute")
	}
}

func TestModelView(t *testing.T) {
	m := New(state.NewManager(state.DefaultConfig()), nil, time.Date(2021, 6, 9, 0, 0, 0, 0, time.UTC))

	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before sizing = %q", got)
	}

	var model tea.Model = m
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model, _ = model.Update(AlmanacMsg{Almanac: testSnapshot().Current})

	out := model.View()
	for _, want := range []string{"Ephemerides", "Sun", "03:51", "[1] Ephemerides", "computed in"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEventsViewRender(t *testing.T) {
	m := NewEventsModel().SetSize(100, 30).UpdateData(testSnapshot())

	out := m.View()
	for _, want := range []string{"Expected events", "(1)", "14:21", "OPPOSITION", "Mars is in opposition"} {
		if !strings.Contains(out, want) {
			t.Errorf("events view missing %q:\n%s", want, out)
		}
	}

	empty := testSnapshot()
	empty.Current.Events = nil
	out = NewEventsModel().SetSize(100, 30).UpdateData(empty).View()
	if !strings.Contains(out, "Nothing notable happens on this day.") {
		t.Error("empty events view missing placeholder")
	}
}

func TestEphemeridesViewRender(t *testing.T) {
	m := NewEphemeridesModel().SetSize(100, 30).UpdateData(testSnapshot())

	out := m.View()
	for _, want := range []string{"Ephemerides", "Object", "Sun", "Moon", "03:51", "19:45", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("ephemerides view missing %q:\n%s", want, out)
		}
	}

	// Cursor moves within bounds.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Errorf("cursor = %d, should stop at the last row", m.cursor)
	}
}

func TestMoonViewRender(t *testing.T) {
	m := NewMoonModel().SetSize(100, 30).UpdateData(testSnapshot())

	out := m.View()
	for _, want := range []string{"Moon", "New Moon", "98% of cycle", "First Quarter on"} {
		if !strings.Contains(out, want) {
			t.Errorf("moon view missing %q:\n%s", want, out)
		}
	}
}

func TestFooterStates(t *testing.T) {
	m := New(state.NewManager(state.DefaultConfig()), nil, time.Now())

	m.snapshot = state.Snapshot{Computing: true}
	if !strings.Contains(m.renderFooter(), "computing...") {
		t.Error("computing footer missing spinner text")
	}

	m.snapshot = state.Snapshot{LastError: fmt.Errorf("out of range")}
	if !strings.Contains(m.renderFooter(), "ERROR: out of range") {
		t.Error("error footer missing message")
	}

	m.snapshot = state.Snapshot{HasData: true, ComputeDuration: 42 * time.Millisecond}
	if !strings.Contains(m.renderFooter(), "computed in 42ms") {
		t.Error("idle footer missing duration")
	}
}
