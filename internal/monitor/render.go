package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tegratop/internal/telemetry"
)

// DefaultWidth is used when the terminal size is unknown.
const DefaultWidth = 80

// splitWidth is the narrowest terminal that fits the bottom row side by side.
const splitWidth = 96

// Render draws every panel for a snapshot. Panels are stacked vertically in
// a fixed order with network, thermal and power sharing the bottom row when
// the terminal is wide enough.
func Render(snap telemetry.Snapshot, width int) string {
	return renderDashboard(snap, nil, width)
}

func renderDashboard(snap telemetry.Snapshot, history *History, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	var cpuHistory, gpuHistory []float64
	if history != nil {
		cpuHistory = history.CPU(DefaultHistorySize)
		gpuHistory = history.GPU(DefaultHistorySize)
	}

	sections := []string{
		renderBoard(snap.Board, width),
		renderCPU(snap.CPU, cpuHistory, width),
		renderMemory(snap.Memory, width),
		renderGPU(snap.GPU, gpuHistory, width),
		renderSystem(snap.System, width),
		renderFan(snap.Fan, width),
		renderDisk(snap.Disk, width),
		renderEngines(snap.Engines, width),
		renderBottomRow(snap, width),
	}
	return strings.Join(sections, "\n")
}

func renderBottomRow(snap telemetry.Snapshot, width int) string {
	if width < splitWidth {
		return strings.Join([]string{
			renderNetwork(snap.Network, width),
			renderThermal(snap.Thermal, width),
			renderPower(snap.Power, width),
		}, "\n")
	}

	third := width / 3
	last := width - 2*third
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderNetwork(snap.Network, third),
		renderThermal(snap.Thermal, third),
		renderPower(snap.Power, last),
	)
}
