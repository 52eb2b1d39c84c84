package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

func TestCounterDelta(t *testing.T) {
	tests := []struct {
		name      string
		prev      uint64
		curr      uint64
		wantDelta uint64
		wantReset bool
	}{
		{"increase", 100, 150, 50, false},
		{"unchanged", 100, 100, 0, false},
		{"from zero", 0, 42, 42, false},
		{"reset", 150, 10, 0, true},
		{"near max", math.MaxUint64 - 1, math.MaxUint64, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, reset := CounterDelta(tt.prev, tt.curr)
			assert.Equal(t, tt.wantDelta, delta)
			assert.Equal(t, tt.wantReset, reset)
		})
	}
}

func TestFloatDelta(t *testing.T) {
	delta, reset := FloatDelta(100.0, 150.0)
	assert.False(t, reset)
	assert.Equal(t, 50.0, delta)

	delta, reset = FloatDelta(150.0, 100.0)
	assert.True(t, reset)
	assert.Zero(t, delta)
}

func TestUtilization(t *testing.T) {
	tests := []struct {
		name string
		prev parsers.CPUTimes
		curr parsers.CPUTimes
		want float64
	}{
		{
			name: "total 1000 idle 800",
			prev: parsers.CPUTimes{},
			curr: parsers.CPUTimes{User: 150, System: 50, Idle: 700, IOWait: 100},
			want: 20.0,
		},
		{
			name: "fully busy",
			prev: parsers.CPUTimes{User: 100, Idle: 100},
			curr: parsers.CPUTimes{User: 200, Idle: 100},
			want: 100.0,
		},
		{
			name: "no time elapsed",
			prev: parsers.CPUTimes{User: 100, Idle: 100},
			curr: parsers.CPUTimes{User: 100, Idle: 100},
			want: 0,
		},
		{
			name: "counters went backwards",
			prev: parsers.CPUTimes{User: 500, Idle: 500},
			curr: parsers.CPUTimes{User: 10, Idle: 10},
			want: 0,
		},
		{
			name: "idle went backwards",
			prev: parsers.CPUTimes{User: 100, Idle: 500},
			curr: parsers.CPUTimes{User: 700, Idle: 400},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Utilization(tt.prev, tt.curr)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestFrequencyConversions(t *testing.T) {
	assert.Equal(t, uint64(1300), KHzToMHz(1300000))
	assert.Equal(t, uint64(1300), HzToMHz(1300000000))
	assert.Equal(t, uint64(729), KHzToMHz(729600))
	assert.Equal(t, uint64(1300), HzToMHz(1300500000))
	assert.InDelta(t, 1036.8, HzToMHzFloat(1036800000), 1e-9)
}

func TestSizeConversions(t *testing.T) {
	assert.Equal(t, 100.0, SectorsToMB(204800))
	assert.Equal(t, 150.0, SectorsToMB(307200))
	assert.Equal(t, 16.0, BlocksToGB(16<<18, 4096))
	assert.Equal(t, 2.0, KBToMB(2048))
	assert.Equal(t, 2.0, KBToMB(2500))
}

func TestMemoryUsage(t *testing.T) {
	m := parsers.MemInfo{
		MemTotal:     8000000,
		MemFree:      4000000,
		Buffers:      100000,
		Cached:       500000,
		Shmem:        50000,
		SReclaimable: 50000,
		SwapTotal:    2000000,
		SwapFree:     1500000,
	}

	want := math.Round(((8000000 - 4000000) - (100000 + (500000 + 50000 - 50000))) / 1024.0)
	assert.Equal(t, want, RAMUsedMB(m))
	assert.Equal(t, 3320.0, RAMUsedMB(m))
	assert.Equal(t, 488.0, SwapUsedMB(m))

	assert.Zero(t, SwapUsedMB(parsers.MemInfo{MemTotal: 1}))
}

func TestPowerAndGauges(t *testing.T) {
	assert.Equal(t, 2500.0, PowerMilliwatts(500, 5000))
	assert.Equal(t, 1502.0, PowerMilliwatts(300.4, 5000))
	assert.Equal(t, 45.5, MilliCelsius(45500))
	assert.Equal(t, -256.0, MilliCelsius(-256000))
	assert.Equal(t, 52.0, GPULoadPercent(523))
	assert.Equal(t, 100.0, GPULoadPercent(999))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "1days, 2h, 3min, 4s", FormatUptime(93784*time.Second))
	assert.Equal(t, "0days, 0h, 0min, 59s", FormatUptime(59*time.Second+900*time.Millisecond))
}
