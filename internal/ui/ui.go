// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kosmorro/lib/internal/state"
	"github.com/Kosmorro/lib/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewEphemerides ViewMode = iota
	ViewEvents
	ViewMoon
)

// ComputeFunc computes the almanac for one day. It runs off the UI
// goroutine and may take a while.
type ComputeFunc func(date time.Time) (state.Almanac, error)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// AlmanacMsg signals a finished almanac computation.
	AlmanacMsg struct {
		Almanac state.Almanac
		Took    time.Duration
		Err     error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state   *state.Manager
	compute ComputeFunc

	// UI state
	viewMode ViewMode
	date     time.Time
	width    int
	height   int
	ready    bool
	animTick int

	// Sub-models
	ephemerides EphemeridesModel
	events      EventsModel
	moon        MoonModel

	// Data snapshot (updated on AlmanacMsg and ticks)
	snapshot state.Snapshot
}

// New creates a new root UI model starting on the given date.
func New(mgr *state.Manager, compute ComputeFunc, date time.Time) Model {
	return Model{
		state:       mgr,
		compute:     compute,
		date:        date,
		viewMode:    ViewEphemerides,
		ephemerides: NewEphemeridesModel(),
		events:      NewEventsModel(),
		moon:        NewMoonModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.computeCmd(m.date),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "e":
			m.viewMode = ViewEphemerides
		case "2", "v":
			m.viewMode = ViewEvents
		case "3", "m":
			m.viewMode = ViewMoon

		case "tab":
			m.viewMode = (m.viewMode + 1) % 3

		case "left", "h":
			cmds = append(cmds, m.changeDate(m.date.AddDate(0, 0, -1)))
		case "right", "l":
			cmds = append(cmds, m.changeDate(m.date.AddDate(0, 0, 1)))
		case "t":
			cmds = append(cmds, m.changeDate(time.Now()))

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 13
		m.ephemerides = m.ephemerides.SetSize(msg.Width, contentHeight)
		m.events = m.events.SetSize(msg.Width, contentHeight)
		m.moon = m.moon.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case AlmanacMsg:
		m.state.Update(msg.Almanac, msg.Took, msg.Err)
		m.snapshot = m.state.Snapshot()
		m = m.pushSnapshot()

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// changeDate moves the browsed day, serving from cache when possible.
func (m *Model) changeDate(date time.Time) tea.Cmd {
	m.date = date
	if m.state.Promote(date) {
		m.snapshot = m.state.Snapshot()
		*m = m.pushSnapshot()
		return nil
	}
	return m.computeCmd(date)
}

// computeCmd starts an async almanac computation.
func (m Model) computeCmd(date time.Time) tea.Cmd {
	m.state.SetComputing(true)
	compute := m.compute
	return func() tea.Msg {
		start := time.Now()
		a, err := compute(date)
		return AlmanacMsg{Almanac: a, Took: time.Since(start), Err: err}
	}
}

// pushSnapshot propagates the current snapshot to the sub-models.
func (m Model) pushSnapshot() Model {
	m.ephemerides = m.ephemerides.UpdateData(m.snapshot)
	m.events = m.events.UpdateData(m.snapshot)
	m.moon = m.moon.UpdateData(m.snapshot)
	return m
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewEphemerides:
		m.ephemerides, cmd = m.ephemerides.Update(msg)
	case ViewEvents:
		m.events, cmd = m.events.Update(msg)
	case ViewMoon:
		m.moon, cmd = m.moon.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewEphemerides:
		content = m.ephemerides.View()
	case ViewEvents:
		content = m.events.View()
	case ViewMoon:
		content = m.moon.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	// ASCII art with smooth truecolor gradient
	logo := []string{
		`  ██╗  ██╗ ██████╗ ███████╗███╗   ███╗ ██████╗ ██████╗ ██████╗  ██████╗ `,
		`  ██║ ██╔╝██╔═══██╗██╔════╝████╗ ████║██╔═══██╗██╔══██╗██╔══██╗██╔═══██╗`,
		`  █████╔╝ ██║   ██║███████╗██╔████╔██║██║   ██║██████╔╝██████╔╝██║   ██║`,
		`  ██╔═██╗ ██║   ██║╚════██║██║╚██╔╝██║██║   ██║██╔══██╗██╔══██╗██║   ██║`,
		`  ██║  ██╗╚██████╔╝███████║██║ ╚═╝ ██║╚██████╔╝██║  ██║██║  ██║╚██████╔╝`,
		`  ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝     ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝ `,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	tagline := fmt.Sprintf("  Ephemerides & Celestial Events · %s | v%s",
		m.date.Format("Monday January 2, 2006"), version.Version)
	b.WriteString(muted.Render(tagline))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo
// gradient: a dusk sky sweep from deep blue through violet to amber.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Deep blue (#1E3A8A) -> violet (#7C3AED) -> amber (#F59E0B)
	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 30 + t*(124-30)
		g = 58 + t*(58-58)
		b = 138 + t*(237-138)
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 124 + t*(245-124)
		g = 58 + t*(158-58)
		b = 237 + t*(11-237)
	}

	// Dim toward the bottom rows
	fade := 1.0 - yRatio*0.45
	return fmt.Sprintf("#%02X%02X%02X", clamp8(r*fade), clamp8(g*fade), clamp8(b*fade))
}

func clamp8(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Ephemerides", "[2] Events", "[3] Moon"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.Computing:
		status = accentStyle.Render(spinner) + dimStyle.Render(" computing...")
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.HasData:
		status = dimStyle.Render(fmt.Sprintf("computed in %v",
			m.snapshot.ComputeDuration.Round(time.Millisecond)))
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" waiting for data...")
	}

	var help string
	switch m.viewMode {
	case ViewEvents:
		help = dimStyle.Render("←/→: day | t: today | ↑↓: scroll | tab: switch view")
	default:
		help = dimStyle.Render("←/→: day | t: today | ↑↓: navigate | tab: switch view")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
