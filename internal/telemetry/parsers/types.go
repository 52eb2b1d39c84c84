package parsers

// CPUTimes holds the cumulative jiffy counters of one core from /proc/stat.
type CPUTimes struct {
	Name      string
	User      uint64
	Nice      uint64
	System    uint64
	Idle      uint64
	IOWait    uint64
	IRQ       uint64
	SoftIRQ   uint64
	Steal     uint64
	Guest     uint64
	GuestNice uint64
}

// IdleTime is idle plus iowait.
func (c CPUTimes) IdleTime() uint64 {
	return c.Idle + c.IOWait
}

// TotalTime is the sum of every accounted state, idle included.
func (c CPUTimes) TotalTime() uint64 {
	return c.User + c.Nice + c.System + c.IRQ + c.SoftIRQ +
		c.IdleTime() + c.Steal + c.Guest + c.GuestNice
}

// MemInfo holds the /proc/meminfo fields used for RAM and swap, in kB.
type MemInfo struct {
	MemTotal     uint64
	MemFree      uint64
	Buffers      uint64
	Cached       uint64
	Shmem        uint64
	SReclaimable uint64
	SwapTotal    uint64
	SwapFree     uint64
}

// DiskSectors holds cumulative sector counts for one block device.
type DiskSectors struct {
	Read    uint64
	Written uint64
}

// PowerMode is one NVP power profile from nvpmodel.conf.
type PowerMode struct {
	ID   int
	Name string
}

// NvpmodelConf is the parsed content of /etc/nvpmodel.conf.
type NvpmodelConf struct {
	Modes      []PowerMode
	DefaultID  int
	HasDefault bool
}

// Find returns the mode with the given id.
func (c NvpmodelConf) Find(id int) (PowerMode, bool) {
	for _, m := range c.Modes {
		if m.ID == id {
			return m, true
		}
	}
	return PowerMode{}, false
}

// FanProfile is the default fan profile configured for nvfancontrol.
type FanProfile string

const (
	FanQuiet   FanProfile = "quiet"
	FanCool    FanProfile = "cool"
	FanUnknown FanProfile = "unknown"
)
