package telemetry

import (
	"path"

	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const (
	procStatPath = "/proc/stat"
	cpuSysfsDir  = "/sys/devices/system/cpu"
)

// cpuFreqFiles are tried in order for each core.
var cpuFreqFiles = []string{"cpuinfo_cur_freq", "scaling_cur_freq"}

type cpuCore struct {
	name string
	freq *sysfs.Handle[uint64] // kHz
	prev parsers.CPUTimes
	util float64
	hf   health
}

type cpuSubsystem struct {
	log   logger.Logger
	stat  *sysfs.Handle[[]parsers.CPUTimes]
	cores []*cpuCore
	index map[string]*cpuCore
	hs    health
}

func discoverCPU(p *probe) subsystem {
	src := sysfs.Source{Path: procStatPath, Kind: sysfs.Counter}
	stat := openPart(p, "stat", src, text(parsers.ParseProcStat), false)
	if stat == nil {
		return nil
	}

	c := &cpuSubsystem{
		log:   p.log,
		stat:  stat,
		index: make(map[string]*cpuCore),
	}

	// The first sample is the baseline; utilization reads 0 until the next tick.
	for _, times := range stat.Value() {
		core := &cpuCore{name: times.Name, prev: times}
		core.freq = openCoreFreq(p, times.Name)
		c.cores = append(c.cores, core)
		c.index[times.Name] = core
	}
	return c
}

func openCoreFreq(p *probe, core string) *sysfs.Handle[uint64] {
	var lastErr error
	var lastSrc sysfs.Source
	for _, file := range cpuFreqFiles {
		src := sysfs.Source{Path: path.Join(cpuSysfsDir, core, "cpufreq", file), Kind: sysfs.Gauge}
		h, err := sysfs.Open(p.fs, src, text(parsers.ParseUint))
		if err == nil {
			p.found(core+" frequency", src)
			return h
		}
		lastErr, lastSrc = err, src
	}
	p.missing(core+" frequency", lastSrc, lastErr, false)
	return nil
}

func (c *cpuSubsystem) refresh() {
	times, err := c.stat.Refresh()
	c.hs.observe(c.log, "stat", err)
	if err == nil {
		for _, t := range times {
			core, ok := c.index[t.Name]
			if !ok {
				// Cores brought online after discovery are not tracked.
				continue
			}
			core.util = Utilization(core.prev, t)
			core.prev = t
		}
	}

	for _, core := range c.cores {
		if core.freq == nil {
			continue
		}
		_, err := core.freq.Refresh()
		core.hf.observe(c.log, core.name+" frequency", err)
	}
}

func (c *cpuSubsystem) fill(s *Snapshot) {
	for _, core := range c.cores {
		stats := CoreStats{Name: core.name, Utilization: core.util}
		if core.freq != nil {
			stats.FrequencyMHz = ptr(KHzToMHz(core.freq.Value()))
		}
		s.CPU = append(s.CPU, stats)
	}
}

func (c *cpuSubsystem) close() error {
	cs := []closer{c.stat}
	for _, core := range c.cores {
		if core.freq != nil {
			cs = append(cs, core.freq)
		}
	}
	return closeAll(cs...)
}
