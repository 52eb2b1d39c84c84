package telemetry

import (
	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const (
	meminfoPath    = "/proc/meminfo"
	emcRatePath    = "/sys/kernel/debug/clk/emc/clk_rate"
	emcMaxRatePath = "/sys/kernel/debug/clk/emc/clk_max_rate"
)

type memorySubsystem struct {
	log     logger.Logger
	meminfo *sysfs.Handle[parsers.MemInfo]
	emc     *sysfs.Pair[uint64, uint64] // Hz
	hm, he  health
}

func discoverMemory(p *probe) subsystem {
	m := &memorySubsystem{log: p.log}

	m.meminfo = openPart(p, "meminfo",
		sysfs.Source{Path: meminfoPath, Kind: sysfs.Gauge}, text(parsers.ParseMeminfo), false)

	// debugfs is root-only, so the EMC clock is often unreadable.
	m.emc = openPairPart(p, "emc clock",
		sysfs.Source{Path: emcRatePath, Kind: sysfs.Gauge}, text(parsers.ParseUint),
		sysfs.Source{Path: emcMaxRatePath, Kind: sysfs.StaticText}, text(parsers.ParseUint),
		false)

	if m.meminfo == nil && m.emc == nil {
		return nil
	}
	return m
}

func (m *memorySubsystem) refresh() {
	if m.meminfo != nil {
		_, err := m.meminfo.Refresh()
		m.hm.observe(m.log, "meminfo", err)
	}
	if m.emc != nil {
		_, _, err := m.emc.Refresh()
		m.he.observe(m.log, "emc clock", err)
	}
}

func (m *memorySubsystem) fill(s *Snapshot) {
	if m.meminfo != nil {
		info := m.meminfo.Value()
		s.Memory.RAM = &RAMStats{
			TotalMB:     KBToMB(float64(info.MemTotal)),
			UsedMB:      RAMUsedMB(info),
			SwapTotalMB: KBToMB(float64(info.SwapTotal)),
			SwapUsedMB:  SwapUsedMB(info),
		}
	}
	if m.emc != nil {
		cur, peak := m.emc.Values()
		s.Memory.EMC = &Frequency{CurrentMHz: HzToMHz(cur), MaxMHz: HzToMHz(peak)}
	}
}

func (m *memorySubsystem) close() error {
	return closeAll(m.meminfo, m.emc)
}
