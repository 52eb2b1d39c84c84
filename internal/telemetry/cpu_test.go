package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverCPU_Missing(t *testing.T) {
	b := newBoard(t)
	assert.Nil(t, discoverCPU(b.probe(SubsystemCPU)))
	assert.True(t, b.log.Contains("warn", "stat absent"))
}

func TestDiscoverCPU_FrequencyFallback(t *testing.T) {
	b := newBoard(t)
	b.write("/proc/stat", "cpu0 1 0 1 1\ncpu1 1 0 1 1\ncpu2 1 0 1 1\n")
	b.write("/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_cur_freq", "1000000\n")
	b.write("/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq", "2000000\n")
	b.write("/sys/devices/system/cpu/cpu1/cpufreq/scaling_cur_freq", "2000000\n")

	e := b.env()
	sub := discoverCPU(e.probe(SubsystemCPU))
	require.NotNil(t, sub)

	snap := sample(sub)
	require.Len(t, snap.CPU, 3)
	require.NotNil(t, snap.CPU[0].FrequencyMHz)
	assert.Equal(t, uint64(1000), *snap.CPU[0].FrequencyMHz, "cpuinfo_cur_freq is preferred")
	require.NotNil(t, snap.CPU[1].FrequencyMHz)
	assert.Equal(t, uint64(2000), *snap.CPU[1].FrequencyMHz)
	assert.Nil(t, snap.CPU[2].FrequencyMHz)

	st, ok := findStatus(e.report, SubsystemCPU, "cpu2 frequency")
	require.True(t, ok)
	assert.False(t, st.Present)
	assert.Equal(t, "/sys/devices/system/cpu/cpu2/cpufreq/scaling_cur_freq", st.Path)
}

func TestCPU_NewCoresIgnored(t *testing.T) {
	b := newBoard(t)
	b.write("/proc/stat", "cpu0 0 0 0 0\n")
	sub := discoverCPU(b.probe(SubsystemCPU))
	require.NotNil(t, sub)

	b.write("/proc/stat", "cpu0 50 0 0 50\ncpu1 10 0 0 10\n")
	snap := sample(sub)
	require.Len(t, snap.CPU, 1)
	assert.Equal(t, "cpu0", snap.CPU[0].Name)
	assert.InDelta(t, 50.0, snap.CPU[0].Utilization, 1e-9)
}

func TestCPU_OfflineCoreKeepsLastValue(t *testing.T) {
	b := newBoard(t)
	b.write("/proc/stat", "cpu0 0 0 0 0\ncpu1 0 0 0 0\n")
	sub := discoverCPU(b.probe(SubsystemCPU))
	require.NotNil(t, sub)

	b.write("/proc/stat", "cpu0 25 0 0 75\ncpu1 75 0 0 25\n")
	sample(sub)

	// cpu1 went offline; its line disappears from /proc/stat.
	b.write("/proc/stat", "cpu0 50 0 0 150\n")
	snap := sample(sub)
	require.Len(t, snap.CPU, 2)
	assert.InDelta(t, 25.0, snap.CPU[0].Utilization, 1e-9)
	assert.InDelta(t, 75.0, snap.CPU[1].Utilization, 1e-9)
}
