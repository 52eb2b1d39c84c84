package telemetry

import (
	"fmt"

	"github.com/rileyhilliard/tegratop/internal/errors"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
	"github.com/rileyhilliard/tegratop/internal/telemetry/parsers"
)

const (
	deviceTreeModelPath = "/sys/firmware/devicetree/base/model"
	tegraReleasePath    = "/etc/nv_tegra_release"
	biosVersionPath     = "/sys/class/dmi/id/bios_version"
)

// boardSubsystem is read once at discovery. Its strings never change while
// the board is up, so refresh does nothing and no handle stays open.
type boardSubsystem struct {
	info BoardInfo
}

func discoverBoard(p *probe) subsystem {
	b := &boardSubsystem{}

	b.info.Model = readStatic(p, "model", deviceTreeModelPath, func(s string) (string, error) {
		return parsers.ParseDeviceTreeModel(s), nil
	})
	b.info.L4T = readStatic(p, "l4t", tegraReleasePath, func(s string) (string, error) {
		release, ok := parsers.ParseTegraRelease(s)
		if !ok {
			return "", fmt.Errorf("no release/revision line")
		}
		return release, nil
	})
	b.info.BIOS = readStatic(p, "bios", biosVersionPath, func(s string) (string, error) {
		return parsers.ParseBiosVersion(s), nil
	})

	if b.info.Model == nil && b.info.L4T == nil && b.info.BIOS == nil {
		return nil
	}
	return b
}

// readStatic reads a StaticText source once. Each part is independent of
// the others.
func readStatic(p *probe, part, file string, parse func(string) (string, error)) *string {
	src := sysfs.Source{Path: file, Kind: sysfs.StaticText}
	content, err := p.fs.ReadString(file)
	if err != nil {
		p.missing(part, src, err, false)
		return nil
	}
	v, err := parse(content)
	if err != nil {
		p.missing(part, src, errors.ParseFailure(file, err), false)
		return nil
	}
	p.found(part, src)
	return &v
}

func (b *boardSubsystem) refresh() {}

func (b *boardSubsystem) fill(s *Snapshot) {
	if b.info.Model != nil {
		s.Board.Model = ptr(*b.info.Model)
	}
	if b.info.L4T != nil {
		s.Board.L4T = ptr(*b.info.L4T)
	}
	if b.info.BIOS != nil {
		s.Board.BIOS = ptr(*b.info.BIOS)
	}
}

func (b *boardSubsystem) close() error {
	return nil
}
