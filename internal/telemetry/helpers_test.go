package telemetry

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
)

type fakeStatter struct {
	stats FsStats
	err   error
}

func (f *fakeStatter) Statfs(string) (FsStats, error) {
	return f.stats, f.err
}

type fakeLister struct {
	ifaces []NetworkInterface
	err    error
	calls  int
}

func (f *fakeLister) Interfaces(context.Context) ([]NetworkInterface, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]NetworkInterface(nil), f.ifaces...), nil
}

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

// board is an in-memory kernel tree plus fakes for statfs and interfaces.
type board struct {
	t       *testing.T
	fs      afero.Fs
	statter *fakeStatter
	lister  *fakeLister
	log     *logger.BufferLogger
}

func newBoard(t *testing.T) *board {
	return &board{
		t:       t,
		fs:      afero.NewMemMapFs(),
		statter: &fakeStatter{err: afero.ErrFileNotFound},
		lister:  &fakeLister{err: afero.ErrFileNotFound},
		log:     logger.NewBufferLogger(),
	}
}

func (b *board) write(path, content string) {
	b.t.Helper()
	require.NoError(b.t, afero.WriteFile(b.fs, path, []byte(content), 0o644))
}

func (b *board) env() *env {
	return &env{
		fs:      sysfs.New(b.fs, 0),
		log:     b.log,
		statter: b.statter,
		lister:  b.lister,
	}
}

func (b *board) probe(name string) *probe {
	return b.env().probe(name)
}

func (b *board) sampler(disabled ...string) *Sampler {
	return NewSampler(Options{
		FS:       sysfs.New(b.fs, 0),
		Logger:   b.log,
		Statter:  b.statter,
		Lister:   b.lister,
		Disabled: disabled,
		Now:      func() time.Time { return fixedNow },
	})
}

const orinMeminfo = `MemTotal:        8000000 kB
MemFree:         4000000 kB
Buffers:          100000 kB
Cached:           500000 kB
Shmem:             50000 kB
SReclaimable:      50000 kB
SwapTotal:       2000000 kB
SwapFree:        1500000 kB
`

const orinNvpmodel = `< POWER_MODEL ID=0 NAME=MAXN >
< POWER_MODEL ID=1 NAME=15W >
< POWER_MODEL ID=2 NAME=30W >
< PM_CONFIG DEFAULT=2 >
`

// orin populates a tree modeled on an AGX Orin developer kit.
func (b *board) orin() *board {
	b.write("/sys/firmware/devicetree/base/model", "NVIDIA Jetson AGX Orin Developer Kit\x00")
	b.write("/etc/nv_tegra_release", "# R35 (release), REVISION: 4.1, GCID: 33958178, BOARD: t186ref\n")
	b.write("/sys/class/dmi/id/bios_version", "35.4.1-gcid-33958178\n")

	b.write("/proc/stat", "cpu  0 0 0 0 0 0 0 0 0 0\ncpu0 0 0 0 0 0 0 0 0 0 0\ncpu1 0 0 0 0 0 0 0 0 0 0\n")
	b.write("/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_cur_freq", "1300000\n")
	b.write("/sys/devices/system/cpu/cpu1/cpufreq/scaling_cur_freq", "729600\n")

	b.write("/proc/meminfo", orinMeminfo)
	b.write("/sys/kernel/debug/clk/emc/clk_rate", "2133000000\n")
	b.write("/sys/kernel/debug/clk/emc/clk_max_rate", "3199000000\n")

	b.write("/proc/mounts", "/dev/mmcblk0p1 / ext4 rw,relatime 0 0\nproc /proc proc rw 0 0\n")
	b.writeDiskstats(204800, 102400)
	b.statter.err = nil
	b.statter.stats = FsStats{Blocks: 16 << 18, BlocksAvailable: 4 << 18, FragmentSize: 4096}

	b.write("/sys/class/devfreq/17000000.ga10b/device/load", "523\n")
	b.write("/sys/class/devfreq/17000000.ga10b/cur_freq", "1300000000\n")
	b.write("/sys/class/devfreq/17000000.ga10b/max_freq", "1300500000\n")

	b.write("/sys/kernel/debug/clk/nvenc/clk_enable_count", "1\n")
	b.write("/sys/kernel/debug/clk/nvenc/clk_rate", "1036800000\n")
	b.write("/sys/kernel/debug/clk/vic/clk_enable_count", "0\n")
	b.write("/sys/kernel/debug/clk/vic/clk_rate", "729600000\n")

	b.write("/sys/class/hwmon/hwmon0/name", "pwmfan\n")
	b.write("/sys/class/hwmon/hwmon0/rpm", "2500\n")
	b.write("/sys/class/hwmon/hwmon1/name", "ina3221\n")
	b.write("/sys/class/hwmon/hwmon1/in1_label", "VDD_GPU_SOC\n")
	b.write("/sys/class/hwmon/hwmon1/curr1_input", "500\n")
	b.write("/sys/class/hwmon/hwmon1/in1_input", "5000\n")
	b.write("/sys/class/hwmon/hwmon1/in2_label", "VDD_CPU_CV\n")
	b.write("/sys/class/hwmon/hwmon1/curr2_input", "300\n")
	b.write("/sys/class/hwmon/hwmon1/in2_input", "5000\n")
	b.write("/sys/class/hwmon/hwmon1/in7_label", "Sum of shunt voltages\n")
	b.write("/sys/class/hwmon/hwmon1/in7_input", "10000\n")

	b.write("/etc/nvpmodel.conf", orinNvpmodel)
	b.write("/var/lib/nvpmodel/status", "pmode:0000\n")
	b.write("/etc/nvfancontrol.conf", "FAN_CONTROL close_loop\nFAN_DEFAULT_PROFILE quiet\n")

	b.write("/sys/devices/virtual/thermal/thermal_zone0/type", "cpu-thermal\n")
	b.write("/sys/devices/virtual/thermal/thermal_zone0/temp", "45500\n")
	b.write("/sys/devices/virtual/thermal/thermal_zone1/type", "gpu-thermal\n")
	b.write("/sys/devices/virtual/thermal/thermal_zone1/temp", "44000\n")
	b.write("/sys/devices/virtual/thermal/thermal_zone2/type", "tj-thermal\n")
	b.write("/sys/devices/virtual/thermal/thermal_zone2/temp", "-256000\n")
	b.write("/sys/devices/virtual/thermal/cooling_device0/type", "pwm-fan\n")

	b.write("/proc/loadavg", "0.52 0.58 0.59 1/467 12345\n")
	b.write("/proc/uptime", "93784.56 350000.12\n")

	b.lister.err = nil
	b.lister.ifaces = []NetworkInterface{{Name: "eth0", IPv4: "192.168.1.20"}, {Name: "wlan0"}}
	return b
}

func (b *board) writeDiskstats(read, written int) {
	b.write("/proc/diskstats", diskstatsLine("mmcblk0", read+100, written+100)+diskstatsLine("mmcblk0p1", read, written))
}

func diskstatsLine(dev string, read, written int) string {
	return " 179 0 " + dev + " 100 0 " + strconv.Itoa(read) + " 10 50 0 " + strconv.Itoa(written) + " 20 0 30 40\n"
}

// sample refreshes one subsystem and renders it into a fresh snapshot.
func sample(sub subsystem) Snapshot {
	sub.refresh()
	snap := newSnapshot(fixedNow, 0)
	sub.fill(&snap)
	return snap
}

// findStatus returns the report entry for a subsystem part.
func findStatus(report []SourceStatus, subsystem, part string) (SourceStatus, bool) {
	for _, s := range report {
		if s.Subsystem == subsystem && s.Part == part {
			return s, true
		}
	}
	return SourceStatus{}, false
}
