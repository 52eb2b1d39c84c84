package telemetry

import (
	"path"
	"strings"

	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const devfreqDir = "/sys/class/devfreq"

// gpuDevfreqNames are substrings of the devfreq node of the integrated GPU
// across Jetson generations (Xavier, TX2, Orin, generic).
var gpuDevfreqNames = []string{"gv11b", "gp10b", "ga10b", "gpu"}

type gpuSubsystem struct {
	log    logger.Logger
	load   *sysfs.Handle[float64]      // per-mille
	freq   *sysfs.Pair[uint64, uint64] // Hz
	hl, hf health
}

func discoverGPU(p *probe) subsystem {
	node, ok := findGPUNode(p)
	if !ok {
		return nil
	}

	g := &gpuSubsystem{log: p.log}
	g.load = openPart(p, "load",
		sysfs.Source{Path: path.Join(node, "device", "load"), Kind: sysfs.Gauge}, text(parsers.ParseFloat), false)
	g.freq = openPairPart(p, "frequency",
		sysfs.Source{Path: path.Join(node, "cur_freq"), Kind: sysfs.Gauge}, text(parsers.ParseUint),
		sysfs.Source{Path: path.Join(node, "max_freq"), Kind: sysfs.Gauge}, text(parsers.ParseUint),
		false)

	if g.load == nil && g.freq == nil {
		return nil
	}
	return g
}

// findGPUNode returns the first devfreq entry whose name contains a known
// GPU fragment.
func findGPUNode(p *probe) (string, bool) {
	dirSrc := sysfs.Source{Path: devfreqDir, Kind: sysfs.StaticText}
	names, err := p.fs.Entries(devfreqDir)
	if err != nil {
		p.missing("devfreq node", dirSrc, err, false)
		return "", false
	}
	for _, name := range names {
		if matchesAny(name, gpuDevfreqNames) {
			node := path.Join(devfreqDir, name)
			p.found("devfreq node", sysfs.Source{Path: node, Kind: sysfs.StaticText})
			return node, true
		}
	}
	p.missing("devfreq node", dirSrc, errNotFound("GPU devfreq node"), false)
	return "", false
}

func matchesAny(name string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

func (g *gpuSubsystem) refresh() {
	if g.load != nil {
		_, err := g.load.Refresh()
		g.hl.observe(g.log, "load", err)
	}
	if g.freq != nil {
		_, _, err := g.freq.Refresh()
		g.hf.observe(g.log, "frequency", err)
	}
}

func (g *gpuSubsystem) fill(s *Snapshot) {
	if g.load != nil {
		s.GPU.Load = ptr(GPULoadPercent(g.load.Value()))
	}
	if g.freq != nil {
		cur, peak := g.freq.Values()
		s.GPU.Frequency = &Frequency{CurrentMHz: HzToMHz(cur), MaxMHz: HzToMHz(peak)}
	}
}

func (g *gpuSubsystem) close() error {
	return closeAll(g.load, g.freq)
}
