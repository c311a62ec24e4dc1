package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kosmorrolib "github.com/Kosmorro/lib"
	"github.com/Kosmorro/lib/internal/export"
	"github.com/Kosmorro/lib/internal/state"
)

var moonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))

// MoonModel is the Moon phase view.
type MoonModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewMoonModel creates a new Moon view model.
func NewMoonModel() MoonModel {
	return MoonModel{}
}

// SetSize updates the viewport size.
func (m MoonModel) SetSize(width, height int) MoonModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m MoonModel) UpdateData(snapshot state.Snapshot) MoonModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages.
func (m MoonModel) Update(msg tea.Msg) (MoonModel, tea.Cmd) {
	return m, nil
}

// View renders the Moon panel.
func (m MoonModel) View() string {
	var b strings.Builder

	if !m.snapshot.HasData {
		b.WriteString("  Computing Moon phase...\n")
		return b.String()
	}

	moon := m.snapshot.Current.Moon

	b.WriteString("  " + titleStyle.Render("Moon"))
	b.WriteString("\n\n")

	art := moonArt(moon.Phase)
	for _, line := range art {
		b.WriteString("    " + moonStyle.Render(line) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + headerStyle.Render(export.PhaseName(moon.Phase)))
	b.WriteString("\n")
	b.WriteString("  " + rowStyle.Render(renderCycleBar(moon.Ratio, 28)))
	b.WriteString(dimStyle2.Render(fmt.Sprintf(" %.0f%% of cycle", moon.Ratio*100)))
	b.WriteString("\n\n")

	if moon.Time != nil {
		b.WriteString("  " + dimStyle2.Render("Began "+moon.Time.Format("Monday January 2 at 15:04")))
		b.WriteString("\n")
	}
	b.WriteString("  " + rowStyle.Render(fmt.Sprintf("%s on %s",
		export.PhaseName(moon.NextPhase),
		moon.NextPhaseDate.Format("Monday January 2 at 15:04"))))
	b.WriteString("\n")

	return b.String()
}

// renderCycleBar renders the synodic cycle position as a bar.
func renderCycleBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio >= 1 {
		ratio = 0.999
	}
	pos := int(ratio * float64(width))
	return "[" + strings.Repeat("·", pos) + "●" + strings.Repeat("·", width-pos-1) + "]"
}

// moonArt returns a small ASCII disk for each of the eight phases, lit
// side as seen from the northern hemisphere.
func moonArt(p kosmorrolib.MoonPhaseType) []string {
	switch p {
	case kosmorrolib.MoonNewMoon:
		return []string{
			"   _..._  ",
			"  .     . ",
			" .       .",
			"  .     . ",
			"   `...`  ",
		}
	case kosmorrolib.MoonWaxingCrescent:
		return []string{
			"   _..._  ",
			"  .    ▓▓ ",
			" .     ▓▓▓",
			"  .    ▓▓ ",
			"   `...`  ",
		}
	case kosmorrolib.MoonFirstQuarter:
		return []string{
			"   _..▓▓  ",
			"  .   ▓▓▓ ",
			" .    ▓▓▓▓",
			"  .   ▓▓▓ ",
			"   `..▓▓  ",
		}
	case kosmorrolib.MoonWaxingGibbous:
		return []string{
			"   _.▓▓▓  ",
			"  . ▓▓▓▓▓ ",
			" .  ▓▓▓▓▓▓",
			"  . ▓▓▓▓▓ ",
			"   `.▓▓▓  ",
		}
	case kosmorrolib.MoonFullMoon:
		return []string{
			"   ▓▓▓▓▓  ",
			"  ▓▓▓▓▓▓▓ ",
			" ▓▓▓▓▓▓▓▓▓",
			"  ▓▓▓▓▓▓▓ ",
			"   ▓▓▓▓▓  ",
		}
	case kosmorrolib.MoonWaningGibbous:
		return []string{
			"   ▓▓▓._  ",
			"  ▓▓▓▓▓ . ",
			" ▓▓▓▓▓▓  .",
			"  ▓▓▓▓▓ . ",
			"   ▓▓▓.`  ",
		}
	case kosmorrolib.MoonLastQuarter:
		return []string{
			"   ▓▓.._  ",
			"  ▓▓▓   . ",
			" ▓▓▓▓    .",
			"  ▓▓▓   . ",
			"   ▓▓..`  ",
		}
	default: // waning crescent
		return []string{
			"   _..._  ",
			"  ▓▓    . ",
			" ▓▓▓     .",
			"  ▓▓    . ",
			"   `...`  ",
		}
	}
}
