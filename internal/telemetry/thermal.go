package telemetry

import (
	"path"
	"strings"

	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const thermalDir = "/sys/devices/virtual/thermal"

// MinValidCelsius is the lowest plausible reading. Zones whose sensor is
// powered off report large negative sentinels.
const MinValidCelsius = -25.0

// thermalKinds maps lowercase zone-name fragments to a logical location.
// The first matching row wins.
var thermalKinds = []struct {
	fragments []string
	kind      SensorKind
}{
	{[]string{"cpu"}, SensorCPU},
	{[]string{"gpu"}, SensorGPU},
	{[]string{"soc"}, SensorSoC},
	{[]string{"cv"}, SensorCV},
	{[]string{"tj", "tdiode", "junction"}, SensorJunction},
	{[]string{"tboard", "board"}, SensorBoard},
	{[]string{"pmic"}, SensorPMIC},
}

func classifyThermal(name string) SensorKind {
	lower := strings.ToLower(name)
	for _, row := range thermalKinds {
		if matchesAny(lower, row.fragments) {
			return row.kind
		}
	}
	return SensorOther
}

type thermalZone struct {
	name string
	kind SensorKind
	temp *sysfs.Handle[float64] // millidegrees
	h    health
}

type thermalSubsystem struct {
	log   logger.Logger
	zones []*thermalZone
}

func discoverThermal(p *probe) subsystem {
	dirSrc := sysfs.Source{Path: thermalDir, Kind: sysfs.StaticText}
	entries, err := p.fs.Entries(thermalDir)
	if err != nil {
		p.missing("zones", dirSrc, err, false)
		return nil
	}

	t := &thermalSubsystem{log: p.log}
	for _, entry := range entries {
		dir := path.Join(thermalDir, entry)
		if !strings.HasPrefix(entry, "thermal_zone") || !p.fs.IsDir(dir) {
			continue
		}

		zoneType, err := p.fs.ReadString(path.Join(dir, "type"))
		if err != nil {
			p.missing(entry, sysfs.Source{Path: path.Join(dir, "type"), Kind: sysfs.StaticText}, err, false)
			continue
		}
		name := parsers.ParseThermalType(zoneType)

		temp := openPart(p, name,
			sysfs.Source{Path: path.Join(dir, "temp"), Kind: sysfs.Gauge}, text(parsers.ParseFloat), false)
		if temp == nil {
			continue
		}
		t.zones = append(t.zones, &thermalZone{name: name, kind: classifyThermal(name), temp: temp})
	}

	if len(t.zones) == 0 {
		p.missing("zones", dirSrc, errNotFound("thermal zones"), false)
		return nil
	}
	return t
}

func (t *thermalSubsystem) refresh() {
	for _, z := range t.zones {
		_, err := z.temp.Refresh()
		z.h.observe(t.log, z.name, err)
	}
}

func (t *thermalSubsystem) fill(s *Snapshot) {
	for _, z := range t.zones {
		c := MilliCelsius(z.temp.Value())
		s.Thermal = append(s.Thermal, ThermalSensor{
			Name:    z.name,
			Kind:    z.kind,
			Celsius: c,
			Valid:   c >= MinValidCelsius,
		})
	}
}

func (t *thermalSubsystem) close() error {
	cs := make([]closer, 0, len(t.zones))
	for _, z := range t.zones {
		cs = append(cs, z.temp)
	}
	return closeAll(cs...)
}
