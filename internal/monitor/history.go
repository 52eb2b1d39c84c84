package monitor

import "github.com/rileyhilliard/tegratop/internal/telemetry"

// DefaultHistorySize is the number of samples kept per series.
const DefaultHistorySize = 60

// History keeps recent averages for the header sparklines. It is only
// touched from the Bubble Tea update loop.
type History struct {
	cpu *ringBuffer
	gpu *ringBuffer
}

// NewHistory creates a history holding size samples per series.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{cpu: newRingBuffer(size), gpu: newRingBuffer(size)}
}

// Push records the mean core utilization and GPU load of a snapshot.
// Series whose metric is absent are left untouched.
func (h *History) Push(snap telemetry.Snapshot) {
	if len(snap.CPU) > 0 {
		h.cpu.push(MeanUtilization(snap.CPU))
	}
	if snap.GPU.Load != nil {
		h.gpu.push(*snap.GPU.Load)
	}
}

// CPU returns up to count CPU samples, oldest first.
func (h *History) CPU(count int) []float64 { return h.cpu.last(count) }

// GPU returns up to count GPU samples, oldest first.
func (h *History) GPU(count int) []float64 { return h.gpu.last(count) }

// MeanUtilization averages utilization across cores.
func MeanUtilization(cores []telemetry.CoreStats) float64 {
	if len(cores) == 0 {
		return 0
	}
	var sum float64
	for _, c := range cores {
		sum += c.Utilization
	}
	return sum / float64(len(cores))
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{data: make([]float64, size)}
}

func (r *ringBuffer) push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// last returns the newest count values in chronological order.
func (r *ringBuffer) last(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}
	out := make([]float64, count)
	start := (r.head - count + len(r.data)) % len(r.data)
	for i := range out {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}
