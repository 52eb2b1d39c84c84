package monitor

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tegratop/internal/telemetry"
)

// Refresher produces a new snapshot on demand. *telemetry.Sampler satisfies it.
type Refresher interface {
	Refresh() telemetry.Snapshot
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	sampler  Refresher
	interval time.Duration

	snapshot   telemetry.Snapshot
	history    *History
	lastUpdate time.Time
	ticks      int

	width    int
	height   int
	showHelp bool
	quitting bool
}

// Message types for Bubble Tea
type tickMsg time.Time
type refreshMsg struct{}

// NewModel creates a dashboard that refreshes s every interval.
func NewModel(s Refresher, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}
	return Model{
		sampler:  s,
		interval: interval,
		history:  NewHistory(DefaultHistorySize),
		width:    DefaultWidth,
		height:   24,
	}
}

// Init starts the first refresh and the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return refreshMsg{} },
		m.tickCmd(),
	)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles incoming messages. Refreshes run on the update loop so the
// sampler is only ever touched from one goroutine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.refresh()
		return m, m.tickCmd()

	case refreshMsg:
		m.refresh()
	}

	return m, nil
}

func (m *Model) refresh() {
	m.snapshot = m.sampler.Refresh()
	m.history.Push(m.snapshot)
	m.lastUpdate = m.snapshot.Timestamp
	m.ticks++
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	body := renderDashboard(m.snapshot, m.history, m.width)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) renderHeader() string {
	title := "tegratop"
	if m.snapshot.Board.Model != nil {
		title += " " + *m.snapshot.Board.Model
	}

	updated := "waiting for first sample"
	if !m.lastUpdate.IsZero() {
		updated = "updated " + m.lastUpdate.Format("15:04:05")
	}

	left := HeaderStyle.Render(title)
	right := HeaderStyle.Render(updated)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	fill := lipgloss.NewStyle().Background(ColorSurfaceBg).Render(strings.Repeat(" ", gap))
	return left + fill + right
}

func (m Model) renderFooter() string {
	return FooterStyle.Render(fmt.Sprintf("q quit  r refresh  ? help  every %s", m.interval))
}
