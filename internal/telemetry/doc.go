// Package telemetry is the sampling engine: it discovers which kernel metric
// sources a Jetson board exposes, keeps persistent handles on them, derives
// normalized metrics on every tick and publishes a read-only Snapshot.
//
// Lifecycle:
//
//	s := telemetry.NewSampler(telemetry.Options{Logger: log})
//	s.Discover()          // Uninitialized -> Discovering -> Ready
//	snap := s.Refresh()   // once per tick
//	defer s.Close()
//
// Each subsystem (CPU, memory, disk, GPU, engines, power, thermal, fan,
// network, system, board) is discovered once. A subsystem that is absent at
// discovery stays absent for the life of the process. Within a present
// subsystem every part fails independently: a read or parse error is logged
// and the last good value is kept.
package telemetry
