package telemetry

import (
	"fmt"
	"path"

	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const fanControlConfPath = "/etc/nvfancontrol.conf"

type fanSubsystem struct {
	log     logger.Logger
	rpm     *sysfs.Handle[uint64]
	profile *sysfs.Handle[parsers.FanProfile]
	hr, hp  health
}

func discoverFan(p *probe) subsystem {
	f := &fanSubsystem{log: p.log}

	if src, ok := findFanRPM(p); ok {
		f.rpm = openPart(p, "rpm", src, text(parsers.ParseUint), false)
	}
	f.profile = openPart(p, "profile",
		sysfs.Source{Path: fanControlConfPath, Kind: sysfs.StaticText}, parseFanProfile, false)

	if f.rpm == nil && f.profile == nil {
		return nil
	}
	return f
}

// findFanRPM returns the rpm node of the first hwmon device that has one.
func findFanRPM(p *probe) (sysfs.Source, bool) {
	dirSrc := sysfs.Source{Path: hwmonDir, Kind: sysfs.Gauge}
	devices, err := p.fs.Entries(hwmonDir)
	if err != nil {
		p.missing("rpm", dirSrc, err, false)
		return sysfs.Source{}, false
	}
	for _, dev := range devices {
		rpm := path.Join(hwmonDir, dev, "rpm")
		if p.fs.Exists(rpm) {
			return sysfs.Source{Path: rpm, Kind: sysfs.Gauge}, true
		}
	}
	p.missing("rpm", dirSrc, errNotFound("hwmon rpm node"), false)
	return sysfs.Source{}, false
}

func parseFanProfile(data []byte) (parsers.FanProfile, error) {
	profile, ok := parsers.ParseFanProfile(string(data))
	if !ok {
		return "", fmt.Errorf("no FAN_DEFAULT_PROFILE line")
	}
	return profile, nil
}

func (f *fanSubsystem) refresh() {
	if f.rpm != nil {
		_, err := f.rpm.Refresh()
		f.hr.observe(f.log, "rpm", err)
	}
	if f.profile != nil {
		_, err := f.profile.Refresh()
		f.hp.observe(f.log, "profile", err)
	}
}

func (f *fanSubsystem) fill(s *Snapshot) {
	if f.rpm != nil {
		s.Fan.RPM = ptr(f.rpm.Value())
	}
	if f.profile != nil {
		s.Fan.Profile = ptr(string(f.profile.Value()))
	}
}

func (f *fanSubsystem) close() error {
	return closeAll(f.rpm, f.profile)
}
