package telemetry

import (
	"path"
	"strings"

	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const clkDebugDir = "/sys/kernel/debug/clk"

// engineNames are the clock-gated accelerators shown in the Engines panel.
// Each maps to /sys/kernel/debug/clk/<lowercase name>.
var engineNames = []string{"APE", "DLA", "CVNAS", "MSENC", "NVENC", "NVDEC", "NVJPG", "PVA", "SE", "VIC"}

type engine struct {
	name  string
	clock *sysfs.Pair[uint64, float64] // enable count, Hz
	h     health
}

type engineSubsystem struct {
	log     logger.Logger
	engines []*engine
}

func discoverEngines(p *probe) subsystem {
	e := &engineSubsystem{log: p.log}

	for _, name := range engineNames {
		dir := path.Join(clkDebugDir, strings.ToLower(name))
		clock := openPairPart(p, name,
			sysfs.Source{Path: path.Join(dir, "clk_enable_count"), Kind: sysfs.Gauge}, text(parsers.ParseUint),
			sysfs.Source{Path: path.Join(dir, "clk_rate"), Kind: sysfs.Gauge}, text(parsers.ParseFloat),
			true)
		if clock == nil {
			continue
		}
		e.engines = append(e.engines, &engine{name: name, clock: clock})
	}

	if len(e.engines) == 0 {
		return nil
	}
	return e
}

func (e *engineSubsystem) refresh() {
	for _, eng := range e.engines {
		_, _, err := eng.clock.Refresh()
		eng.h.observe(e.log, eng.name, err)
	}
}

func (e *engineSubsystem) fill(s *Snapshot) {
	for _, eng := range e.engines {
		count, hz := eng.clock.Values()
		state := EngineIdle
		if count > 0 {
			state = EngineRunning
		}
		s.Engines = append(s.Engines, EngineStats{
			Name:         eng.name,
			State:        state,
			FrequencyMHz: HzToMHzFloat(hz),
		})
	}
}

func (e *engineSubsystem) close() error {
	cs := make([]closer, 0, len(e.engines))
	for _, eng := range e.engines {
		cs = append(cs, eng.clock)
	}
	return closeAll(cs...)
}
