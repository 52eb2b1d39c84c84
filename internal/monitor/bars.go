package monitor

import (
	"github.com/charmbracelet/bubbles/progress"
)

// Bar renders a fixed-width usage bar colored by threshold. percent is 0-100
// and is clamped.
func Bar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	p := progress.New(
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithSolidFill(string(MetricColor(percent))),
		progress.WithFillCharacters('▰', '▱'),
		progress.WithColorProfile(colorProfile),
	)
	p.EmptyColor = string(ColorBorder)
	return p.ViewAs(percent / 100)
}

// Percent returns used/total as a percentage, or 0 when total is 0.
func Percent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return used / total * 100
}
