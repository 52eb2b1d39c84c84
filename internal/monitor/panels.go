package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tegratop/internal/telemetry"
)

// barWidth sizes a bar to the space left in a panel line after the label
// and value columns.
func barWidth(panelWidth, reserved int) int {
	w := panelWidth - 4 - reserved
	if w < 5 {
		return 5
	}
	if w > 40 {
		return 40
	}
	return w
}

func renderBoard(b telemetry.BoardInfo, width int) string {
	lines := []string{
		label("Model", 6) + ValueStyle.Render(fmtString(b.Model)),
		label("L4T", 6) + ValueStyle.Render(fmtString(b.L4T)) + "   " +
			label("BIOS", 5) + ValueStyle.Render(fmtString(b.BIOS)),
	}
	return panel("Board", "", lines, width)
}

func renderCPU(cores []telemetry.CoreStats, history []float64, width int) string {
	if len(cores) == 0 {
		return panel("CPU", "", []string{MutedStyle.Render(na)}, width)
	}

	const reserved = 7 + 1 + 7 + 9 // name, gap, percent, frequency
	bw := barWidth(width, reserved)
	lines := make([]string, 0, len(cores))
	for _, c := range cores {
		pct := lipgloss.NewStyle().Foreground(MetricColor(c.Utilization)).Render(fmt.Sprintf("%6.1f%%", c.Utilization))
		lines = append(lines, label(c.Name, 7)+Bar(bw, c.Utilization)+" "+pct+" "+
			ValueStyle.Render(fmt.Sprintf("%8s", fmtUint(c.FrequencyMHz, " MHz"))))
	}

	value := fmt.Sprintf("avg %.1f%%", MeanUtilization(cores))
	if spark := Sparkline(history, 12); spark != "" {
		value = spark + " " + value
	}
	return panel("CPU", value, lines, width)
}

func renderMemory(m telemetry.MemoryStats, width int) string {
	var lines []string
	if m.RAM == nil {
		lines = append(lines, label("RAM", 6)+MutedStyle.Render(na), label("Swap", 6)+MutedStyle.Render(na))
	} else {
		const reserved = 6 + 1 + 17
		bw := barWidth(width, reserved)
		lines = append(lines,
			label("RAM", 6)+Bar(bw, Percent(m.RAM.UsedMB, m.RAM.TotalMB))+" "+
				ValueStyle.Render(fmt.Sprintf("%.0f/%.0f MB", m.RAM.UsedMB, m.RAM.TotalMB)),
			label("Swap", 6)+Bar(bw, Percent(m.RAM.SwapUsedMB, m.RAM.SwapTotalMB))+" "+
				ValueStyle.Render(fmt.Sprintf("%.0f/%.0f MB", m.RAM.SwapUsedMB, m.RAM.SwapTotalMB)),
		)
	}
	lines = append(lines, label("EMC", 6)+ValueStyle.Render(fmtFrequency(m.EMC)))
	return panel("Memory", "", lines, width)
}

func renderGPU(g telemetry.GPUStats, history []float64, width int) string {
	load := MutedStyle.Render(na)
	if g.Load != nil {
		bw := barWidth(width, 6+1+5)
		load = Bar(bw, *g.Load) + " " + lipgloss.NewStyle().Foreground(MetricColor(*g.Load)).Render(fmt.Sprintf("%3.0f%%", *g.Load))
	}
	lines := []string{
		label("Load", 6) + load,
		label("Freq", 6) + ValueStyle.Render(fmtFrequency(g.Frequency)),
	}
	return panel("GPU", Sparkline(history, 12), lines, width)
}

func renderSystem(s telemetry.SystemStats, width int) string {
	load := na
	if s.LoadAvg != nil {
		load = fmt.Sprintf("%.2f %.2f %.2f", s.LoadAvg[0], s.LoadAvg[1], s.LoadAvg[2])
	}
	uptime := na
	if s.Uptime != nil {
		uptime = telemetry.FormatUptime(*s.Uptime)
	}
	lines := []string{
		label("Load", 8) + ValueStyle.Render(load),
		label("Uptime", 8) + ValueStyle.Render(uptime),
	}
	return panel("System", "", lines, width)
}

func renderFan(f telemetry.FanStats, width int) string {
	lines := []string{
		label("Speed", 8) + ValueStyle.Render(fmtUint(f.RPM, " RPM")),
		label("Profile", 8) + ValueStyle.Render(fmtString(f.Profile)),
	}
	return panel("Fan", "", lines, width)
}

func renderDisk(d telemetry.DiskStats, width int) string {
	space := MutedStyle.Render(na)
	if d.Space != nil {
		bw := barWidth(width, 8+1+17)
		space = Bar(bw, Percent(d.Space.UsedGB(), d.Space.TotalGB)) + " " +
			ValueStyle.Render(fmt.Sprintf("%.1f/%.1f GB", d.Space.UsedGB(), d.Space.TotalGB))
	}
	io := na
	if d.IO != nil {
		io = fmt.Sprintf("read %.1f MB  written %.1f MB", d.IO.ReadMB, d.IO.WrittenMB)
	}
	device := d.Device
	if device == "" {
		device = na
	}
	lines := []string{
		label("Used", 8) + space,
		label("I/O", 8) + ValueStyle.Render(io),
	}
	return panel("Disk", device, lines, width)
}

func renderEngines(engines []telemetry.EngineStats, width int) string {
	if len(engines) == 0 {
		return panel("Engines", "", []string{MutedStyle.Render(na)}, width)
	}

	// Engines are laid out in as many columns as fit.
	const cell = 26
	perRow := (width - 4) / cell
	if perRow < 1 {
		perRow = 1
	}

	var lines []string
	var row []string
	for i, e := range engines {
		state := MutedStyle.Render(fmt.Sprintf("%-7s", e.State))
		if e.State == telemetry.EngineRunning {
			state = RunningStyle.Render(fmt.Sprintf("%-7s", e.State))
		}
		entry := label(e.Name, 6) + state + ValueStyle.Render(fmt.Sprintf("%7.1f MHz", e.FrequencyMHz))
		row = append(row, lipgloss.NewStyle().Width(cell).Render(entry))
		if len(row) == perRow || i == len(engines)-1 {
			lines = append(lines, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, row...), " "))
			row = nil
		}
	}
	return panel("Engines", "", lines, width)
}

func renderNetwork(ifaces []telemetry.NetworkInterface, width int) string {
	if len(ifaces) == 0 {
		return panel("Network", "", []string{MutedStyle.Render(na)}, width)
	}
	lines := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		ip := iface.IPv4
		if ip == "" {
			ip = na
		}
		lines = append(lines, label(iface.Name, 10)+ValueStyle.Render(ip))
	}
	return panel("Network", "", lines, width)
}

func renderThermal(sensors []telemetry.ThermalSensor, width int) string {
	if len(sensors) == 0 {
		return panel("Thermal", "", []string{MutedStyle.Render(na)}, width)
	}
	lines := make([]string, 0, len(sensors))
	for _, s := range sensors {
		temp := MutedStyle.Render(na)
		if s.Valid {
			temp = lipgloss.NewStyle().Foreground(TemperatureColor(s.Celsius)).Render(fmt.Sprintf("%.1f °C", s.Celsius))
		}
		lines = append(lines, label(s.Name, 10)+temp)
	}
	return panel("Thermal", "", lines, width)
}

func renderPower(p telemetry.PowerStats, width int) string {
	mode := ""
	if p.Mode != nil {
		mode = p.Mode.Name
	}

	var lines []string
	var total float64
	for _, c := range p.Channels {
		total += c.Milliwatts
		lines = append(lines, label(c.Name, 14)+ValueStyle.Render(FormatPower(c.Milliwatts)))
	}
	if len(p.Channels) > 1 {
		lines = append(lines, label("Total", 14)+accentStyle.Render(FormatPower(total)))
	}
	if len(p.Modes) > 0 {
		names := make([]string, 0, len(p.Modes))
		for _, m := range p.Modes {
			name := fmt.Sprintf("%d:%s", m.ID, m.Name)
			if p.Mode != nil && m.ID == p.Mode.ID {
				name = RunningStyle.Render(name)
			} else {
				name = MutedStyle.Render(name)
			}
			names = append(names, name)
		}
		lines = append(lines, label("Modes", 14)+strings.Join(names, " "))
	}
	if len(lines) == 0 {
		lines = append(lines, MutedStyle.Render(na))
	}
	return panel("Power", mode, lines, width)
}
