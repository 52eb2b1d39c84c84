package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks are the eight vertical levels of a sparkline, lowest first.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders percentage samples (0-100) as one row of block
// characters, colored by the newest sample. Samples are resampled to width
// so peaks survive compression.
func Sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	var b strings.Builder
	for _, v := range resample(data, width) {
		level := int(v / 100 * float64(len(sparkBlocks)-1))
		if level < 0 {
			level = 0
		}
		if level >= len(sparkBlocks) {
			level = len(sparkBlocks) - 1
		}
		b.WriteRune(sparkBlocks[level])
	}
	return lipgloss.NewStyle().Foreground(MetricColor(data[len(data)-1])).Render(b.String())
}

// resample stretches or compresses data to n points. Compression keeps the
// maximum of each bucket; stretching repeats the nearest sample.
func resample(data []float64, n int) []float64 {
	if len(data) == n {
		return data
	}
	out := make([]float64, n)
	if len(data) < n {
		for i := range out {
			out[i] = data[i*len(data)/n]
		}
		return out
	}

	bucket := float64(len(data)) / float64(n)
	for i := range out {
		start := int(float64(i) * bucket)
		end := int(float64(i+1) * bucket)
		if end > len(data) {
			end = len(data)
		}
		if end <= start {
			end = start + 1
		}
		peak := data[start]
		for _, v := range data[start+1 : end] {
			if v > peak {
				peak = v
			}
		}
		out[i] = peak
	}
	return out
}
