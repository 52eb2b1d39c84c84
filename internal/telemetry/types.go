package telemetry

import (
	"fmt"
	"time"
)

// Placeholder is what the presentation layer shows for an absent metric.
const Placeholder = "-"

// Snapshot is the read-only view of every subsystem after one refresh.
// It is built fresh by copying subsystem state, so holding on to a Snapshot
// never aliases sampler internals. Pointer fields are nil when the source is
// absent on this board; slices are empty when no instance exists.
type Snapshot struct {
	Timestamp time.Time          `json:"timestamp" yaml:"timestamp"`
	Tick      uint64             `json:"tick" yaml:"tick"`
	Board     BoardInfo          `json:"board" yaml:"board"`
	CPU       []CoreStats        `json:"cpu" yaml:"cpu"`
	Memory    MemoryStats        `json:"memory" yaml:"memory"`
	Disk      DiskStats          `json:"disk" yaml:"disk"`
	GPU       GPUStats           `json:"gpu" yaml:"gpu"`
	Engines   []EngineStats      `json:"engines" yaml:"engines"`
	Power     PowerStats         `json:"power" yaml:"power"`
	Thermal   []ThermalSensor    `json:"thermal" yaml:"thermal"`
	Fan       FanStats           `json:"fan" yaml:"fan"`
	Network   []NetworkInterface `json:"network" yaml:"network"`
	System    SystemStats        `json:"system" yaml:"system"`
}

func newSnapshot(now time.Time, tick uint64) Snapshot {
	return Snapshot{
		Timestamp: now,
		Tick:      tick,
		CPU:       []CoreStats{},
		Engines:   []EngineStats{},
		Power:     PowerStats{Modes: []PowerMode{}, Channels: []PowerChannel{}},
		Thermal:   []ThermalSensor{},
		Network:   []NetworkInterface{},
	}
}

// BoardInfo identifies the module and its firmware.
type BoardInfo struct {
	Model *string `json:"model" yaml:"model"`
	L4T   *string `json:"l4t" yaml:"l4t"`
	BIOS  *string `json:"bios" yaml:"bios"`
}

// CoreStats is one CPU core.
type CoreStats struct {
	Name         string  `json:"name" yaml:"name"`
	Utilization  float64 `json:"utilization" yaml:"utilization"`
	FrequencyMHz *uint64 `json:"frequency_mhz" yaml:"frequency_mhz"`
}

// Frequency is a current/max clock pair in MHz.
type Frequency struct {
	CurrentMHz uint64 `json:"current_mhz" yaml:"current_mhz"`
	MaxMHz     uint64 `json:"max_mhz" yaml:"max_mhz"`
}

// RAMStats holds RAM and swap usage in MB.
type RAMStats struct {
	TotalMB     float64 `json:"total_mb" yaml:"total_mb"`
	UsedMB      float64 `json:"used_mb" yaml:"used_mb"`
	SwapTotalMB float64 `json:"swap_total_mb" yaml:"swap_total_mb"`
	SwapUsedMB  float64 `json:"swap_used_mb" yaml:"swap_used_mb"`
}

// MemoryStats groups RAM usage and the external memory controller clock.
type MemoryStats struct {
	RAM *RAMStats  `json:"ram" yaml:"ram"`
	EMC *Frequency `json:"emc" yaml:"emc"`
}

// DiskSpace is the root filesystem size in GB.
type DiskSpace struct {
	TotalGB     float64 `json:"total_gb" yaml:"total_gb"`
	AvailableGB float64 `json:"available_gb" yaml:"available_gb"`
}

// UsedGB is total minus available.
func (d DiskSpace) UsedGB() float64 {
	return d.TotalGB - d.AvailableGB
}

// DiskIO is the MB read and written since the previous tick.
type DiskIO struct {
	ReadMB    float64 `json:"read_mb" yaml:"read_mb"`
	WrittenMB float64 `json:"written_mb" yaml:"written_mb"`
}

// DiskStats describes the root block device.
type DiskStats struct {
	Device string     `json:"device" yaml:"device"`
	Space  *DiskSpace `json:"space" yaml:"space"`
	IO     *DiskIO    `json:"io" yaml:"io"`
}

// GPUStats is the integrated GPU load (percent) and clock.
type GPUStats struct {
	Load      *float64   `json:"load" yaml:"load"`
	Frequency *Frequency `json:"frequency" yaml:"frequency"`
}

// EngineState is whether a hardware engine clock is enabled.
type EngineState string

const (
	EngineRunning EngineState = "running"
	EngineIdle    EngineState = "idle"
)

// EngineStats is one clock-gated accelerator (NVENC, DLA, ...).
type EngineStats struct {
	Name         string      `json:"name" yaml:"name"`
	State        EngineState `json:"state" yaml:"state"`
	FrequencyMHz float64     `json:"frequency_mhz" yaml:"frequency_mhz"`
}

// PowerMode is an NVP power profile.
type PowerMode struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// PowerChannel is one monitored power rail.
type PowerChannel struct {
	Name       string  `json:"name" yaml:"name"`
	Milliwatts float64 `json:"milliwatts" yaml:"milliwatts"`
}

// PowerStats holds the active NVP mode, the modes available and rail power.
type PowerStats struct {
	Mode     *PowerMode     `json:"mode" yaml:"mode"`
	Modes    []PowerMode    `json:"modes" yaml:"modes"`
	Channels []PowerChannel `json:"channels" yaml:"channels"`
}

// SensorKind is the logical location of a thermal zone.
type SensorKind string

const (
	SensorCPU      SensorKind = "cpu"
	SensorGPU      SensorKind = "gpu"
	SensorSoC      SensorKind = "soc"
	SensorCV       SensorKind = "cv"
	SensorJunction SensorKind = "junction"
	SensorBoard    SensorKind = "board"
	SensorPMIC     SensorKind = "pmic"
	SensorOther    SensorKind = "other"
)

// ThermalSensor is one thermal zone. Valid is false for the sentinel values
// some zones report when their sensor is off.
type ThermalSensor struct {
	Name    string     `json:"name" yaml:"name"`
	Kind    SensorKind `json:"kind" yaml:"kind"`
	Celsius float64    `json:"celsius" yaml:"celsius"`
	Valid   bool       `json:"valid" yaml:"valid"`
}

// FanStats is the fan tachometer reading and configured profile.
type FanStats struct {
	RPM     *uint64 `json:"rpm" yaml:"rpm"`
	Profile *string `json:"profile" yaml:"profile"`
}

// NetworkInterface is a non-loopback interface and its first IPv4 address,
// empty when it has none.
type NetworkInterface struct {
	Name string `json:"name" yaml:"name"`
	IPv4 string `json:"ipv4" yaml:"ipv4"`
}

// SystemStats holds load averages and uptime.
type SystemStats struct {
	LoadAvg *[3]float64    `json:"load_avg" yaml:"load_avg"`
	Uptime  *time.Duration `json:"uptime" yaml:"uptime"`
}

// FormatUptime renders an uptime as "<d>days, <h>h, <m>min, <s>s".
func FormatUptime(d time.Duration) string {
	secs := uint64(d / time.Second)
	days := secs / 86400
	hours := (secs / 3600) % 24
	minutes := (secs / 60) % 60
	seconds := secs % 60
	return fmt.Sprintf("%ddays, %dh, %dmin, %ds", days, hours, minutes, seconds)
}

func ptr[T any](v T) *T {
	return &v
}
