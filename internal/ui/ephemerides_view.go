package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kosmorro/lib/internal/export"
	"github.com/Kosmorro/lib/internal/state"
)

// Styles for the ephemerides table
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	dimStyle2 = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// EphemeridesModel is the rise/culmination/set table view.
type EphemeridesModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewEphemeridesModel creates a new ephemerides view model.
func NewEphemeridesModel() EphemeridesModel {
	return EphemeridesModel{}
}

// SetSize updates the viewport size.
func (m EphemeridesModel) SetSize(width, height int) EphemeridesModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m EphemeridesModel) UpdateData(snapshot state.Snapshot) EphemeridesModel {
	m.snapshot = snapshot
	if n := len(snapshot.Current.Objects); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	return m
}

// Update handles messages.
func (m EphemeridesModel) Update(msg tea.Msg) (EphemeridesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		rows := len(m.snapshot.Current.Objects)
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < rows-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if rows > 0 {
				m.cursor = rows - 1
			}
		}
	}
	return m, nil
}

// View renders the table.
func (m EphemeridesModel) View() string {
	var b strings.Builder

	if m.snapshot.LastError != nil {
		b.WriteString(errStyle.Render("Error: " + m.snapshot.LastError.Error()))
		b.WriteString("\n\n")
	}
	if !m.snapshot.HasData {
		b.WriteString("  Computing ephemerides...\n")
		return b.String()
	}

	a := m.snapshot.Current

	b.WriteString("  " + titleStyle.Render("Ephemerides"))
	b.WriteString(dimStyle2.Render(fmt.Sprintf("  %s, UTC%+g", export.FormatPosition(a.Position), a.Timezone)))
	b.WriteString("\n\n")

	b.WriteString("  " + headerStyle.Render(fmt.Sprintf("%-10s %-9s %-13s %-9s", "Object", "Rise", "Culmination", "Set")))
	b.WriteString("\n")

	for i, eph := range a.Objects {
		line := fmt.Sprintf("%-10s %-9s %-13s %-9s",
			export.ObjectName(eph.Object),
			clock(eph.RiseTime),
			clock(eph.CulminationTime),
			clock(eph.SetTime),
		)
		if i == m.cursor {
			b.WriteString("  " + selectedRowStyle.Render(line))
		} else {
			b.WriteString("  " + rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + dimStyle2.Render("A dash means the object keeps above or below the horizon all day."))
	b.WriteString("\n")

	return b.String()
}

func clock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}
