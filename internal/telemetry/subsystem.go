package telemetry

// Subsystem names, in the order they are refreshed. Board is discovered
// first and never refreshed.
const (
	SubsystemBoard   = "board"
	SubsystemCPU     = "cpu"
	SubsystemDisk    = "disk"
	SubsystemEngines = "engines"
	SubsystemFan     = "fan"
	SubsystemGPU     = "gpu"
	SubsystemMemory  = "memory"
	SubsystemNetwork = "network"
	SubsystemPower   = "power"
	SubsystemSystem  = "system"
	SubsystemThermal = "thermal"
)

// subsystem is the refresh phase of one aggregate. Discovery constructs it;
// a nil subsystem means the board doesn't expose it.
type subsystem interface {
	// refresh re-reads every present part. Failures are logged and leave
	// the previous value in place.
	refresh()
	// fill copies the current state into the snapshot.
	fill(s *Snapshot)
	close() error
}

type discoverFunc func(p *probe) subsystem

var discoveryOrder = []struct {
	name     string
	discover discoverFunc
}{
	{SubsystemBoard, discoverBoard},
	{SubsystemCPU, discoverCPU},
	{SubsystemDisk, discoverDisk},
	{SubsystemEngines, discoverEngines},
	{SubsystemFan, discoverFan},
	{SubsystemGPU, discoverGPU},
	{SubsystemMemory, discoverMemory},
	{SubsystemNetwork, discoverNetwork},
	{SubsystemPower, discoverPower},
	{SubsystemSystem, discoverSystem},
	{SubsystemThermal, discoverThermal},
}

var refreshOrder = []string{
	SubsystemCPU,
	SubsystemDisk,
	SubsystemEngines,
	SubsystemFan,
	SubsystemGPU,
	SubsystemMemory,
	SubsystemNetwork,
	SubsystemPower,
	SubsystemSystem,
	SubsystemThermal,
}

// Subsystems returns every subsystem name in discovery order.
func Subsystems() []string {
	names := make([]string, 0, len(discoveryOrder))
	for _, d := range discoveryOrder {
		names = append(names, d.name)
	}
	return names
}

// closer is anything holding an open handle.
type closer interface {
	Close() error
}

// closeAll closes every non-nil closer and returns the first error.
func closeAll(cs ...closer) error {
	var first error
	for _, c := range cs {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
