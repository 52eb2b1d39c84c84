package telemetry

import (
	"github.com/rileyhilliard/tegratop/internal/errors"
	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
)

// networkSource labels the interface enumeration in the discovery report.
var networkSource = sysfs.Source{Path: "getifaddrs", Kind: sysfs.Gauge}

// networkSubsystem re-enumerates interfaces every tick, since addresses come
// and go with DHCP and hotplug. A failed enumeration keeps the previous list.
type networkSubsystem struct {
	log        logger.Logger
	env        *env
	interfaces []NetworkInterface
	h          health
}

func discoverNetwork(p *probe) subsystem {
	n := &networkSubsystem{log: p.log, env: p.env}
	ifaces, err := n.list()
	if err != nil {
		p.missing("interfaces", networkSource, err, false)
		return nil
	}
	p.found("interfaces", networkSource)
	n.interfaces = ifaces
	return n
}

func (n *networkSubsystem) list() ([]NetworkInterface, error) {
	ctx, cancel := n.env.ctx()
	defer cancel()
	ifaces, err := n.env.lister.Interfaces(ctx)
	if err != nil {
		return nil, errors.IOFailure(networkSource.Path, err)
	}
	return ifaces, nil
}

func (n *networkSubsystem) refresh() {
	ifaces, err := n.list()
	n.h.observe(n.log, "interfaces", err)
	if err == nil {
		n.interfaces = ifaces
	}
}

func (n *networkSubsystem) fill(s *Snapshot) {
	s.Network = append(s.Network, n.interfaces...)
}

func (n *networkSubsystem) close() error {
	return nil
}
