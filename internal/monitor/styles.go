package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors for metrics
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#76B900") // NVIDIA green
	ColorValue  = lipgloss.Color("#00FFFF")
)

// Thresholds for percentage metrics.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// Temperature thresholds in degrees Celsius.
const (
	WarningCelsius  = 70.0
	CriticalCelsius = 85.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	RunningStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Bold(true)

	borderStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
)

// colorProfile is shared by lipgloss and the progress bars.
var colorProfile = termenv.ColorProfile()

// SetColorProfile selects how colors are emitted. termenv.Ascii disables
// color entirely.
func SetColorProfile(p termenv.Profile) {
	colorProfile = p
	lipgloss.SetColorProfile(p)
}

// MetricColor returns the color for a percentage: green below 70%, amber
// below 90%, red above.
func MetricColor(percent float64) lipgloss.Color {
	return thresholdColor(percent, WarningThreshold, CriticalThreshold)
}

// TemperatureColor returns the color for a temperature in Celsius.
func TemperatureColor(celsius float64) lipgloss.Color {
	return thresholdColor(celsius, WarningCelsius, CriticalCelsius)
}

func thresholdColor(v, warning, critical float64) lipgloss.Color {
	switch {
	case v >= critical:
		return ColorCritical
	case v >= warning:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// panel draws a bordered box of the given outer width:
//
//	╭─ Title ───────────── Value ╮
//	│ line                        │
//	╰─────────────────────────────╯
func panel(title, value string, lines []string, width int) string {
	if width < 12 {
		width = 12
	}

	var b strings.Builder
	b.WriteString(panelTop(title, value, width))
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(panelLine(line, width))
	}
	b.WriteString("\n")
	b.WriteString(borderStyle.Render("╰" + strings.Repeat("─", width-2) + "╯"))
	return b.String()
}

func panelTop(title, value string, width int) string {
	left := 3 + lipgloss.Width(title) + 1 // "╭─ " title " "
	right := 2                            // " ╮" or "─╮"
	if value != "" {
		right += 1 + lipgloss.Width(value)
	}
	fill := width - left - right
	if fill < 1 {
		fill = 1
	}

	top := borderStyle.Render("╭─ ") + titleStyle.Render(title) + borderStyle.Render(" "+strings.Repeat("─", fill))
	if value == "" {
		return top + borderStyle.Render("─╮")
	}
	return top + borderStyle.Render(" ") + accentStyle.Render(value) + borderStyle.Render(" ╮")
}

// panelLine pads or truncates content to fit between the side borders.
func panelLine(content string, width int) string {
	inner := width - 4
	if w := lipgloss.Width(content); w > inner {
		content = truncate(content, inner)
	} else {
		content += strings.Repeat(" ", inner-w)
	}
	side := borderStyle.Render("│")
	return side + " " + content + " " + side
}

// truncate cuts s to n display cells, keeping any styling intact.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(n).Render(s)
}
