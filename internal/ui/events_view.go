package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kosmorro/lib/internal/export"
	"github.com/Kosmorro/lib/internal/state"
)

var eventTagStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("39")).
	Bold(true)

// EventsModel is the celestial events list view.
type EventsModel struct {
	width    int
	height   int
	offset   int
	snapshot state.Snapshot
}

// NewEventsModel creates a new events view model.
func NewEventsModel() EventsModel {
	return EventsModel{}
}

// SetSize updates the viewport size.
func (m EventsModel) SetSize(width, height int) EventsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m EventsModel) UpdateData(snapshot state.Snapshot) EventsModel {
	m.snapshot = snapshot
	m.offset = 0
	return m
}

// Update handles messages.
func (m EventsModel) Update(msg tea.Msg) (EventsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.snapshot.Current.Events)-1 {
				m.offset++
			}
		}
	}
	return m, nil
}

// View renders the events list.
func (m EventsModel) View() string {
	var b strings.Builder

	if !m.snapshot.HasData {
		b.WriteString("  Computing events...\n")
		return b.String()
	}

	events := m.snapshot.Current.Events

	b.WriteString("  " + titleStyle.Render("Expected events"))
	b.WriteString(dimStyle2.Render(fmt.Sprintf("  (%d)", len(events))))
	b.WriteString("\n\n")

	if len(events) == 0 {
		b.WriteString("  " + dimStyle2.Render("Nothing notable happens on this day."))
		b.WriteString("\n")
		return b.String()
	}

	visible := m.height - 4
	if visible < 1 {
		visible = len(events)
	}

	for i := m.offset; i < len(events) && i < m.offset+visible; i++ {
		ev := events[i]
		b.WriteString("  " + rowStyle.Render(ev.StartTime.Format("15:04")))
		b.WriteString("  " + eventTagStyle.Render(fmt.Sprintf("%-18s", ev.Type.String())))
		b.WriteString("  " + rowStyle.Render(export.DescribeEvent(ev)))
		if ev.EndTime != nil {
			b.WriteString(dimStyle2.Render(fmt.Sprintf("  (until %s)", ev.EndTime.Format("15:04"))))
		}
		b.WriteString("\n")
	}

	if len(events) > m.offset+visible {
		b.WriteString("  " + dimStyle2.Render(fmt.Sprintf("... %d more", len(events)-m.offset-visible)))
		b.WriteString("\n")
	}

	return b.String()
}
