package telemetry

import (
	"fmt"
	"path"

	"github.com/rileyhilliard/tegratop/internal/errors"
	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const (
	mountsPath    = "/proc/mounts"
	cmdlinePath   = "/proc/cmdline"
	diskstatsPath = "/proc/diskstats"
	rootMount     = "/"
)

type diskSubsystem struct {
	log     logger.Logger
	statter Statter

	device string // diskstats name, e.g. "mmcblk0p1"
	stats  *sysfs.Handle[parsers.DiskSectors]

	// Absolute MB at the previous sample, and the delta since then.
	prevRead, prevWritten float64
	io                    DiskIO

	space  *DiskSpace
	hi, hs health
}

func discoverDisk(p *probe) subsystem {
	d := &diskSubsystem{log: p.log, statter: p.statter}

	if dev, ok := rootDevice(p); ok {
		d.device = path.Base(dev)
		src := sysfs.Source{Path: diskstatsPath, Kind: sysfs.Counter}
		d.stats = openPart(p, "io "+d.device, src, d.parseSectors, false)
		if d.stats != nil {
			sectors := d.stats.Value()
			d.prevRead = SectorsToMB(sectors.Read)
			d.prevWritten = SectorsToMB(sectors.Written)
		}
	}

	spaceSrc := sysfs.Source{Path: "statfs(" + rootMount + ")", Kind: sysfs.Gauge}
	if space, err := d.statSpace(); err != nil {
		p.missing("space", spaceSrc, err, false)
	} else {
		p.found("space", spaceSrc)
		d.space = &space
	}

	if d.stats == nil && d.space == nil {
		return nil
	}
	return d
}

// rootDevice resolves the block device mounted at "/". Some boards mount
// "/dev/root", whose real name is only on the kernel command line.
func rootDevice(p *probe) (string, bool) {
	mountsSrc := sysfs.Source{Path: mountsPath, Kind: sysfs.StaticText}
	content, err := p.fs.ReadString(mountsPath)
	if err != nil {
		p.missing("root device", mountsSrc, err, false)
		return "", false
	}
	dev, ok := parsers.ParseMounts(content)
	if !ok {
		p.missing("root device", mountsSrc, errors.ParseFailure(mountsPath, fmt.Errorf("no filesystem mounted at /")), false)
		return "", false
	}
	if dev != "/dev/root" {
		p.found("root device", mountsSrc)
		return dev, true
	}

	cmdlineSrc := sysfs.Source{Path: cmdlinePath, Kind: sysfs.StaticText}
	cmdline, err := p.fs.ReadString(cmdlinePath)
	if err != nil {
		p.missing("root device", cmdlineSrc, err, false)
		return "", false
	}
	dev, ok = parsers.ParseCmdlineRoot(cmdline)
	if !ok {
		p.missing("root device", cmdlineSrc, errors.ParseFailure(cmdlinePath, fmt.Errorf("no root=/dev/... argument")), false)
		return "", false
	}
	p.found("root device", cmdlineSrc)
	return dev, true
}

func (d *diskSubsystem) parseSectors(data []byte) (parsers.DiskSectors, error) {
	sectors, ok, err := parsers.ParseDiskstats(string(data), d.device)
	if err != nil {
		return parsers.DiskSectors{}, err
	}
	if !ok {
		return parsers.DiskSectors{}, fmt.Errorf("device %s not listed", d.device)
	}
	return sectors, nil
}

func (d *diskSubsystem) statSpace() (DiskSpace, error) {
	st, err := d.statter.Statfs(rootMount)
	if err != nil {
		return DiskSpace{}, errors.IOFailure("statfs("+rootMount+")", err)
	}
	return DiskSpace{
		TotalGB:     BlocksToGB(st.Blocks, st.FragmentSize),
		AvailableGB: BlocksToGB(st.BlocksAvailable, st.FragmentSize),
	}, nil
}

func (d *diskSubsystem) refresh() {
	if d.stats != nil {
		sectors, err := d.stats.Refresh()
		d.hi.observe(d.log, "io", err)
		if err == nil {
			d.advance(SectorsToMB(sectors.Read), SectorsToMB(sectors.Written))
		}
	}

	if d.space != nil {
		space, err := d.statSpace()
		d.hs.observe(d.log, "space", err)
		if err == nil {
			*d.space = space
		}
	}
}

// advance computes the per-tick delta. A counter that went backwards becomes
// the new baseline and reports 0 for this tick.
func (d *diskSubsystem) advance(readMB, writtenMB float64) {
	var readReset, writeReset bool
	d.io.ReadMB, readReset = FloatDelta(d.prevRead, readMB)
	d.io.WrittenMB, writeReset = FloatDelta(d.prevWritten, writtenMB)
	if readReset || writeReset {
		d.log.Info("io counters for %s went backwards, rebaselining", d.device)
	}
	d.prevRead, d.prevWritten = readMB, writtenMB
}

func (d *diskSubsystem) fill(s *Snapshot) {
	s.Disk.Device = d.device
	if d.stats != nil {
		io := d.io
		s.Disk.IO = &io
	}
	if d.space != nil {
		space := *d.space
		s.Disk.Space = &space
	}
}

func (d *diskSubsystem) close() error {
	return closeAll(d.stats)
}
