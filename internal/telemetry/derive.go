package telemetry

import (
	"math"

	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

// CounterDelta returns curr-prev for a cumulative counter. When the counter
// went backwards (driver reload, wrap) it returns 0 and reset=true, and the
// caller should adopt curr as the new baseline.
func CounterDelta(prev, curr uint64) (delta uint64, reset bool) {
	if curr < prev {
		return 0, true
	}
	return curr - prev, false
}

// FloatDelta is CounterDelta for counters already converted to float units.
func FloatDelta(prev, curr float64) (delta float64, reset bool) {
	if curr < prev {
		return 0, true
	}
	return curr - prev, false
}

// Utilization returns the busy percentage of a core between two samples.
// It is 0 when no time elapsed or either counter went backwards.
func Utilization(prev, curr parsers.CPUTimes) float64 {
	totalDiff, totalReset := CounterDelta(prev.TotalTime(), curr.TotalTime())
	idleDiff, idleReset := CounterDelta(prev.IdleTime(), curr.IdleTime())
	if totalReset || idleReset || totalDiff == 0 || idleDiff > totalDiff {
		return 0
	}
	return 100 * float64(totalDiff-idleDiff) / float64(totalDiff)
}

// KHzToMHz converts a cpufreq reading.
func KHzToMHz(khz uint64) uint64 {
	return khz / 1000
}

// HzToMHz converts a devfreq or clk reading.
func HzToMHz(hz uint64) uint64 {
	return hz / 1_000_000
}

// HzToMHzFloat converts an engine clock, keeping the fraction.
func HzToMHzFloat(hz float64) float64 {
	return hz / 1_000_000
}

// SectorsToMB converts 512-byte sectors to MB.
func SectorsToMB(sectors uint64) float64 {
	return float64(sectors) * 512 / 1024 / 1024
}

// BlocksToGB converts filesystem blocks of the given fragment size to GB.
func BlocksToGB(blocks, fragment uint64) float64 {
	return float64(blocks) * float64(fragment) / (1 << 30)
}

// KBToMB converts kB to MB, rounded.
func KBToMB(kb float64) float64 {
	return math.Round(kb / 1024)
}

// RAMUsedMB is memory in use excluding reclaimable caches.
func RAMUsedMB(m parsers.MemInfo) float64 {
	used := float64(m.MemTotal) - float64(m.MemFree)
	caches := float64(m.Buffers) + float64(m.Cached) + float64(m.SReclaimable) - float64(m.Shmem)
	return KBToMB(used - caches)
}

// SwapUsedMB is swap in use.
func SwapUsedMB(m parsers.MemInfo) float64 {
	return KBToMB(float64(m.SwapTotal) - float64(m.SwapFree))
}

// PowerMilliwatts is rail power from current in mA and voltage in mV.
func PowerMilliwatts(currentMA, voltageMV float64) float64 {
	return math.Round(currentMA * voltageMV / 1000)
}

// MilliCelsius converts a thermal zone reading to degrees Celsius.
func MilliCelsius(milli float64) float64 {
	return milli / 1000
}

// GPULoadPercent converts the devfreq load, reported in tenths of a percent.
func GPULoadPercent(raw float64) float64 {
	return math.Round(raw / 10)
}
