// Package parsers turns the text content of procfs/sysfs files into typed
// values. Every function here is pure: no file access, no logging.
package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseProcStat parses the per-core lines (cpu0, cpu1, ...) of /proc/stat.
// The aggregate "cpu " line is skipped. Trailing fields missing on older
// kernels are left at zero.
func ParseProcStat(content string) ([]CPUTimes, error) {
	var cores []CPUTimes

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()

		// Only individual cores: "cpu" followed by a digit
		if !strings.HasPrefix(line, "cpu") || len(line) < 4 || line[3] < '0' || line[3] > '9' {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, fmt.Errorf("invalid /proc/stat core line: %s", line)
		}

		var vals [10]uint64
		for i := 1; i < len(fields) && i <= len(vals); i++ {
			v, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s field %d: %w", fields[0], i, err)
			}
			vals[i-1] = v
		}

		cores = append(cores, CPUTimes{
			Name:      fields[0],
			User:      vals[0],
			Nice:      vals[1],
			System:    vals[2],
			Idle:      vals[3],
			IOWait:    vals[4],
			IRQ:       vals[5],
			SoftIRQ:   vals[6],
			Steal:     vals[7],
			Guest:     vals[8],
			GuestNice: vals[9],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	if len(cores) == 0 {
		return nil, fmt.Errorf("no per-core lines in /proc/stat")
	}
	return cores, nil
}

// ParseMeminfo extracts the RAM and swap fields of /proc/meminfo. MemTotal is
// required; the other keys default to zero when missing.
func ParseMeminfo(content string) (MemInfo, error) {
	var info MemInfo
	targets := map[string]*uint64{
		"MemTotal":     &info.MemTotal,
		"MemFree":      &info.MemFree,
		"Buffers":      &info.Buffers,
		"Cached":       &info.Cached,
		"Shmem":        &info.Shmem,
		"SReclaimable": &info.SReclaimable,
		"SwapTotal":    &info.SwapTotal,
		"SwapFree":     &info.SwapFree,
	}
	seenTotal := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		dst, wanted := targets[key]
		if !wanted {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return MemInfo{}, fmt.Errorf("missing value for %s", key)
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return MemInfo{}, fmt.Errorf("failed to parse %s: %w", key, err)
		}
		*dst = v
		if key == "MemTotal" {
			seenTotal = true
		}
	}

	if err := scanner.Err(); err != nil {
		return MemInfo{}, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}
	if !seenTotal {
		return MemInfo{}, fmt.Errorf("MemTotal not found in /proc/meminfo")
	}
	return info, nil
}

// ParseDiskstats finds device in /proc/diskstats and returns its cumulative
// read and written sector counts (fields 5 and 9). The bool is false when the
// device has no line.
func ParseDiskstats(content, device string) (DiskSectors, bool, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 || fields[2] != device {
			continue
		}

		read, err := strconv.ParseUint(fields[5], 10, 64)
		if err != nil {
			return DiskSectors{}, false, fmt.Errorf("failed to parse sectors read for %s: %w", device, err)
		}
		written, err := strconv.ParseUint(fields[9], 10, 64)
		if err != nil {
			return DiskSectors{}, false, fmt.Errorf("failed to parse sectors written for %s: %w", device, err)
		}
		return DiskSectors{Read: read, Written: written}, true, nil
	}

	if err := scanner.Err(); err != nil {
		return DiskSectors{}, false, fmt.Errorf("error scanning /proc/diskstats: %w", err)
	}
	return DiskSectors{}, false, nil
}

// ParseMounts returns the device mounted at "/". The initramfs "rootfs" entry
// is ignored, and when "/" is stacked the last mount wins.
func ParseMounts(content string) (string, bool) {
	device := ""
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[1] != "/" || fields[0] == "rootfs" {
			continue
		}
		device = fields[0]
	}
	return device, device != ""
}

// ParseCmdlineRoot returns the root= device from /proc/cmdline, for boards that
// report "/dev/root" in /proc/mounts. Only /dev paths are accepted.
func ParseCmdlineRoot(content string) (string, bool) {
	for _, field := range strings.Fields(content) {
		if v, ok := strings.CutPrefix(field, "root="); ok && strings.HasPrefix(v, "/dev/") {
			return v, true
		}
	}
	return "", false
}

// ParseLoadavg parses the 1, 5 and 15 minute load averages.
func ParseLoadavg(content string) ([3]float64, error) {
	var load [3]float64
	fields := strings.Fields(content)
	if len(fields) < 3 {
		return load, fmt.Errorf("expected at least 3 fields in /proc/loadavg, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return load, fmt.Errorf("failed to parse loadavg field %d: %w", i, err)
		}
		load[i] = v
	}
	return load, nil
}

// ParseUptime returns the whole seconds of /proc/uptime.
func ParseUptime(content string) (time.Duration, error) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty /proc/uptime")
	}
	whole, _, _ := strings.Cut(fields[0], ".")
	secs, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse uptime: %w", err)
	}
	return time.Duration(secs) * time.Second, nil
}
