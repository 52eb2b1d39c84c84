package telemetry

import (
	"context"
	"fmt"
	stdnet "net"
	"slices"
	"time"

	"github.com/shirou/gopsutil/v4/net"

	"github.com/rileyhilliard/tegratop/internal/errors"
	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
)

// FsStats is the subset of statfs results used for disk space.
type FsStats struct {
	Blocks          uint64
	BlocksAvailable uint64
	FragmentSize    uint64
}

// Statter returns filesystem statistics for a mount point.
type Statter interface {
	Statfs(path string) (FsStats, error)
}

// InterfaceLister enumerates network interfaces.
type InterfaceLister interface {
	Interfaces(ctx context.Context) ([]NetworkInterface, error)
}

// NewInterfaceLister returns the gopsutil-backed lister.
func NewInterfaceLister() InterfaceLister {
	return gopsutilLister{}
}

type gopsutilLister struct{}

// Interfaces lists every non-loopback interface with its first IPv4 address.
func (gopsutilLister) Interfaces(ctx context.Context) ([]NetworkInterface, error) {
	stats, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]NetworkInterface, 0, len(stats))
	for _, s := range stats {
		if slices.Contains(s.Flags, "loopback") {
			continue
		}
		iface := NetworkInterface{Name: s.Name}
		for _, a := range s.Addrs {
			if ip := firstIPv4(a.Addr); ip != "" {
				iface.IPv4 = ip
				break
			}
		}
		out = append(out, iface)
	}
	return out, nil
}

// firstIPv4 accepts "ip/prefix" or a bare address.
func firstIPv4(addr string) string {
	ip, _, err := stdnet.ParseCIDR(addr)
	if err != nil {
		ip = stdnet.ParseIP(addr)
	}
	if ip4 := ip.To4(); ip4 != nil {
		return ip4.String()
	}
	return ""
}

// SourceStatus is one line of the discovery report.
type SourceStatus struct {
	Subsystem string `json:"subsystem" yaml:"subsystem"`
	Part      string `json:"part" yaml:"part"`
	Path      string `json:"path" yaml:"path"`
	Kind      string `json:"kind" yaml:"kind"`
	Present   bool   `json:"present" yaml:"present"`
	Cause     string `json:"cause,omitempty" yaml:"cause,omitempty"`
}

// env is what discovery needs from the sampler.
type env struct {
	fs      *sysfs.FS
	log     logger.Logger
	statter Statter
	lister  InterfaceLister
	timeout time.Duration
	report  []SourceStatus
}

// probe scopes discovery bookkeeping to one subsystem.
func (e *env) probe(subsystem string) *probe {
	return &probe{
		env:       e,
		subsystem: subsystem,
		log:       logger.WithPrefix(e.log, "["+subsystem+"]"),
	}
}

type probe struct {
	*env
	subsystem string
	log       logger.Logger
}

// found records a part that was opened successfully.
func (p *probe) found(part string, src sysfs.Source) {
	p.report = append(p.report, SourceStatus{
		Subsystem: p.subsystem,
		Part:      part,
		Path:      src.Path,
		Kind:      src.Kind.String(),
		Present:   true,
	})
	p.log.Debug("%s found at %s", part, src.Path)
}

// missing records an absent part. Optional parts, which most boards don't
// have, are logged at debug level only.
func (p *probe) missing(part string, src sysfs.Source, err error, optional bool) {
	p.report = append(p.report, SourceStatus{
		Subsystem: p.subsystem,
		Part:      part,
		Path:      src.Path,
		Kind:      src.Kind.String(),
		Cause:     errors.Short(err),
	})
	if optional {
		p.log.Debug("%s absent: %s", part, errors.Short(err))
		return
	}
	p.log.Warn("%s absent: %s", part, errors.Short(err))
}

// ctx returns a context bounded by the read timeout for calls that take one.
func (e *env) ctx() (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), e.timeout)
}

// health tracks whether a part is currently failing so repeated failures of
// the same part don't flood the log on every tick.
type health struct {
	failing bool
}

func (h *health) observe(log logger.Logger, part string, err error) {
	switch {
	case err != nil && !h.failing:
		h.failing = true
		log.Warn("%s refresh failed, keeping last value: %s", part, errors.Short(err))
	case err != nil:
		log.Debug("%s still failing: %s", part, errors.Short(err))
	case h.failing:
		h.failing = false
		log.Info("%s recovered", part)
	}
}

// text adapts a string parser to sysfs.ParseFunc.
func text[T any](parse func(string) (T, error)) sysfs.ParseFunc[T] {
	return func(data []byte) (T, error) {
		return parse(string(data))
	}
}

// errNotFound is the cause recorded when a scan found no candidate.
func errNotFound(what string) error {
	return errors.New(errors.ErrSourceUnavailable, fmt.Sprintf("no %s found", what), "")
}

// openPart opens one handle and records the outcome in the report.
func openPart[T any](p *probe, part string, src sysfs.Source, parse sysfs.ParseFunc[T], optional bool) *sysfs.Handle[T] {
	h, err := sysfs.Open(p.fs, src, parse)
	if err != nil {
		p.missing(part, src, err, optional)
		return nil
	}
	p.found(part, src)
	return h
}

// openPairPart opens a pair of related handles and records the outcome
// under the first source's path.
func openPairPart[A, B any](p *probe, part string, srcA sysfs.Source, parseA sysfs.ParseFunc[A], srcB sysfs.Source, parseB sysfs.ParseFunc[B], optional bool) *sysfs.Pair[A, B] {
	pair, err := sysfs.OpenPair(p.fs, srcA, parseA, srcB, parseB)
	if err != nil {
		p.missing(part, srcA, err, optional)
		return nil
	}
	p.found(part, srcA)
	return pair
}
