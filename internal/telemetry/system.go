package telemetry

import (
	"time"

	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const (
	loadavgPath = "/proc/loadavg"
	uptimePath  = "/proc/uptime"
)

type systemSubsystem struct {
	log     logger.Logger
	loadavg *sysfs.Handle[[3]float64]
	uptime  *sysfs.Handle[time.Duration]
	hl, hu  health
}

func discoverSystem(p *probe) subsystem {
	s := &systemSubsystem{log: p.log}
	s.loadavg = openPart(p, "loadavg",
		sysfs.Source{Path: loadavgPath, Kind: sysfs.Gauge}, text(parsers.ParseLoadavg), false)
	s.uptime = openPart(p, "uptime",
		sysfs.Source{Path: uptimePath, Kind: sysfs.Gauge}, text(parsers.ParseUptime), false)

	if s.loadavg == nil && s.uptime == nil {
		return nil
	}
	return s
}

func (s *systemSubsystem) refresh() {
	if s.loadavg != nil {
		_, err := s.loadavg.Refresh()
		s.hl.observe(s.log, "loadavg", err)
	}
	if s.uptime != nil {
		_, err := s.uptime.Refresh()
		s.hu.observe(s.log, "uptime", err)
	}
}

func (s *systemSubsystem) fill(snap *Snapshot) {
	if s.loadavg != nil {
		snap.System.LoadAvg = ptr(s.loadavg.Value())
	}
	if s.uptime != nil {
		snap.System.Uptime = ptr(s.uptime.Value())
	}
}

func (s *systemSubsystem) close() error {
	return closeAll(s.loadavg, s.uptime)
}
