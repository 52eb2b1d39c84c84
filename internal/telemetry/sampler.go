package telemetry

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/sysfs"
)

// DefaultReadTimeout bounds each pseudo-file read when Options leaves it unset.
const DefaultReadTimeout = 250 * time.Millisecond

// State is the lifecycle of a Sampler.
type State int

const (
	StateUninitialized State = iota
	StateDiscovering
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateDiscovering:
		return "discovering"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options configures a Sampler. Zero values select the real system.
type Options struct {
	// Root prefixes every kernel path; "" or "/" means the live system.
	Root string
	// ReadTimeout bounds each read. Zero uses DefaultReadTimeout; negative
	// disables the bound.
	ReadTimeout time.Duration
	// Disabled lists subsystem names to skip entirely.
	Disabled []string

	FS      *sysfs.FS
	Logger  logger.Logger
	Statter Statter
	Lister  InterfaceLister
	Now     func() time.Time
}

// Sampler discovers metric sources once and refreshes them on every tick.
// It is not safe for concurrent use; the caller's tick loop owns it.
type Sampler struct {
	env      *env
	log      logger.Logger
	now      func() time.Time
	disabled map[string]bool

	state      State
	subsystems map[string]subsystem
	tick       uint64
	snapshot   Snapshot
}

// NewSampler builds a Sampler without touching the filesystem.
func NewSampler(opts Options) *Sampler {
	timeout := opts.ReadTimeout
	switch {
	case timeout == 0:
		timeout = DefaultReadTimeout
	case timeout < 0:
		timeout = 0
	}

	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	fs := opts.FS
	if fs == nil {
		fs = sysfs.NewOS(opts.Root, timeout)
	}
	statter := opts.Statter
	if statter == nil {
		statter = NewStatter(opts.Root)
	}
	lister := opts.Lister
	if lister == nil {
		lister = NewInterfaceLister()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	disabled := make(map[string]bool, len(opts.Disabled))
	for _, name := range opts.Disabled {
		disabled[name] = true
	}

	return &Sampler{
		env: &env{
			fs:      fs,
			log:     log,
			statter: statter,
			lister:  lister,
			timeout: timeout,
		},
		log:        log,
		now:        now,
		disabled:   disabled,
		subsystems: make(map[string]subsystem),
		snapshot:   newSnapshot(time.Time{}, 0),
	}
}

// State returns the current lifecycle state.
func (s *Sampler) State() State {
	return s.state
}

// Discover probes every enabled subsystem once, in a fixed order, and takes
// the first snapshot. Calling it again has no effect.
func (s *Sampler) Discover() {
	if s.state != StateUninitialized {
		return
	}
	s.state = StateDiscovering
	s.log.Info("discovering metric sources")

	for _, d := range discoveryOrder {
		if s.disabled[d.name] {
			s.log.Info("[%s] disabled by configuration", d.name)
			continue
		}
		if sub := s.discoverOne(d.name, d.discover); sub != nil {
			s.subsystems[d.name] = sub
		} else {
			s.log.Info("[%s] not available on this board", d.name)
		}
	}

	s.snapshot = s.assemble()
	s.state = StateReady
	s.log.Info("discovery complete: %d of %d subsystems present", len(s.subsystems), len(discoveryOrder))
}

func (s *Sampler) discoverOne(name string, discover discoverFunc) (sub subsystem) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("[%s] discovery panicked, treating as absent: %v\n%s", name, r, debug.Stack())
			sub = nil
		}
	}()
	return discover(s.env.probe(name))
}

// Refresh re-reads every present subsystem in a fixed order and returns the
// new snapshot. A failure or panic in one subsystem never affects the others.
func (s *Sampler) Refresh() Snapshot {
	if s.state == StateUninitialized {
		s.Discover()
	}

	for _, name := range refreshOrder {
		sub, ok := s.subsystems[name]
		if !ok {
			continue
		}
		s.guard(name, "refresh", sub.refresh)
	}

	s.tick++
	s.snapshot = s.assemble()
	return s.snapshot
}

// Snapshot returns the snapshot from the most recent Discover or Refresh.
func (s *Sampler) Snapshot() Snapshot {
	return s.snapshot
}

// Report returns the outcome of every probe made during discovery.
func (s *Sampler) Report() []SourceStatus {
	out := make([]SourceStatus, len(s.env.report))
	copy(out, s.env.report)
	return out
}

// Present reports whether a subsystem was found during discovery.
func (s *Sampler) Present(name string) bool {
	_, ok := s.subsystems[name]
	return ok
}

// Close releases every open handle.
func (s *Sampler) Close() error {
	var first error
	for _, d := range discoveryOrder {
		sub, ok := s.subsystems[d.name]
		if !ok {
			continue
		}
		if err := sub.close(); err != nil {
			s.log.Warn("[%s] close: %v", d.name, err)
			if first == nil {
				first = err
			}
		}
	}
	s.subsystems = make(map[string]subsystem)
	return first
}

func (s *Sampler) assemble() Snapshot {
	snap := newSnapshot(s.now(), s.tick)
	for _, d := range discoveryOrder {
		sub, ok := s.subsystems[d.name]
		if !ok {
			continue
		}
		s.guard(d.name, "snapshot", func() { sub.fill(&snap) })
	}
	return snap
}

// guard runs fn and confines a panic to the named subsystem.
func (s *Sampler) guard(name, phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("[%s] %s panicked: %v\n%s", name, phase, r, debug.Stack())
		}
	}()
	fn()
}
