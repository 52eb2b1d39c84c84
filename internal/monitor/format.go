package monitor

import (
	"fmt"
	"strconv"

	"github.com/rileyhilliard/tegratop/internal/telemetry"
)

const na = telemetry.Placeholder

func fmtUint(v *uint64, unit string) string {
	if v == nil {
		return na
	}
	return strconv.FormatUint(*v, 10) + unit
}

func fmtString(v *string) string {
	if v == nil || *v == "" {
		return na
	}
	return *v
}

// fmtFrequency renders "cur/max MHz".
func fmtFrequency(f *telemetry.Frequency) string {
	if f == nil {
		return na
	}
	return fmt.Sprintf("%d/%d MHz", f.CurrentMHz, f.MaxMHz)
}

// FormatPower renders milliwatts, switching to watts above 10 W.
func FormatPower(mw float64) string {
	if mw >= 10000 {
		return fmt.Sprintf("%.1f W", mw/1000)
	}
	return fmt.Sprintf("%.0f mW", mw)
}

// label pads a field name so values line up within a panel.
func label(s string, width int) string {
	return LabelStyle.Render(fmt.Sprintf("%-*s", width, s))
}
