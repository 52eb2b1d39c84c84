package telemetry

import (
	"path"
	"regexp"
	"sort"
	"strconv"

	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const (
	hwmonDir           = "/sys/class/hwmon"
	powerMonitorName   = "ina3221"
	nvpmodelConfPath   = "/etc/nvpmodel.conf"
	nvpmodelStatusPath = "/var/lib/nvpmodel/status"
)

var railLabelRe = regexp.MustCompile(`^in(\d+)_label$`)

type powerRail struct {
	name    string
	reading *sysfs.Pair[float64, float64] // mA, mV
	h       health
}

type powerSubsystem struct {
	log   logger.Logger
	rails []*powerRail

	conf   parsers.NvpmodelConf
	status *sysfs.Handle[int]
	mode   *parsers.PowerMode
	hs     health
}

func discoverPower(p *probe) subsystem {
	w := &powerSubsystem{log: p.log}
	w.rails = discoverRails(p)
	w.discoverModes(p)

	if len(w.rails) == 0 && len(w.conf.Modes) == 0 {
		return nil
	}
	return w
}

// discoverRails finds every ina3221 hwmon device and opens a current/voltage
// pair for each labeled channel that has a current input.
func discoverRails(p *probe) []*powerRail {
	dirSrc := sysfs.Source{Path: hwmonDir, Kind: sysfs.StaticText}
	devices, err := p.fs.Entries(hwmonDir)
	if err != nil {
		p.missing("rails", dirSrc, err, false)
		return nil
	}

	var rails []*powerRail
	for _, dev := range devices {
		dir := path.Join(hwmonDir, dev)
		name, err := p.fs.ReadString(path.Join(dir, "name"))
		if err != nil || name != powerMonitorName {
			continue
		}

		files, err := p.fs.Entries(dir)
		if err != nil {
			p.missing("rails", sysfs.Source{Path: dir, Kind: sysfs.StaticText}, err, false)
			continue
		}

		var indexes []int
		for _, f := range files {
			if m := railLabelRe.FindStringSubmatch(f); m != nil {
				n, _ := strconv.Atoi(m[1])
				indexes = append(indexes, n)
			}
		}
		sort.Ints(indexes)

		for _, n := range indexes {
			label, err := p.fs.ReadString(path.Join(dir, "in"+strconv.Itoa(n)+"_label"))
			if err != nil {
				continue
			}
			curr := sysfs.Source{Path: path.Join(dir, "curr"+strconv.Itoa(n)+"_input"), Kind: sysfs.Gauge}
			// Summing channels have a label but no current input.
			if !p.fs.Exists(curr.Path) {
				continue
			}
			volt := sysfs.Source{Path: path.Join(dir, "in"+strconv.Itoa(n)+"_input"), Kind: sysfs.Gauge}
			reading := openPairPart(p, label, curr, text(parsers.ParseFloat), volt, text(parsers.ParseFloat), false)
			if reading == nil {
				continue
			}
			rails = append(rails, &powerRail{name: label, reading: reading})
		}
	}

	if len(rails) == 0 {
		p.missing("rails", dirSrc, errNotFound(powerMonitorName+" channels"), false)
	}
	return rails
}

// discoverModes loads the NVP mode list. The active mode comes from the
// nvpmodel status file when it names a known mode, and from the configured
// default otherwise.
func (w *powerSubsystem) discoverModes(p *probe) {
	confSrc := sysfs.Source{Path: nvpmodelConfPath, Kind: sysfs.StaticText}
	content, err := p.fs.ReadString(nvpmodelConfPath)
	if err == nil {
		w.conf, err = parsers.ParseNvpmodelConf(content)
	}
	if err != nil {
		p.missing("power modes", confSrc, err, false)
		return
	}
	p.found("power modes", confSrc)

	w.status = openPart(p, "active mode",
		sysfs.Source{Path: nvpmodelStatusPath, Kind: sysfs.Gauge}, text(parsers.ParseNvpmodelStatus), false)
	if w.status != nil {
		if mode, ok := w.conf.Find(w.status.Value()); ok {
			w.mode = &mode
			return
		}
	}
	if w.conf.HasDefault {
		if mode, ok := w.conf.Find(w.conf.DefaultID); ok {
			w.mode = &mode
		}
	}
}

func (w *powerSubsystem) refresh() {
	for _, r := range w.rails {
		_, _, err := r.reading.Refresh()
		r.h.observe(w.log, r.name, err)
	}

	if w.status != nil {
		id, err := w.status.Refresh()
		w.hs.observe(w.log, "active mode", err)
		if err == nil {
			if mode, ok := w.conf.Find(id); ok {
				w.mode = &mode
			}
		}
	}
}

func (w *powerSubsystem) fill(s *Snapshot) {
	for _, r := range w.rails {
		current, voltage := r.reading.Values()
		s.Power.Channels = append(s.Power.Channels, PowerChannel{
			Name:       r.name,
			Milliwatts: PowerMilliwatts(current, voltage),
		})
	}
	for _, m := range w.conf.Modes {
		s.Power.Modes = append(s.Power.Modes, PowerMode{ID: m.ID, Name: m.Name})
	}
	if w.mode != nil {
		s.Power.Mode = &PowerMode{ID: w.mode.ID, Name: w.mode.Name}
	}
}

func (w *powerSubsystem) close() error {
	cs := []closer{w.status}
	for _, r := range w.rails {
		cs = append(cs, r.reading)
	}
	return closeAll(cs...)
}
