package parsers

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseUint parses a single unsigned integer node such as clk_rate or rpm.
func ParseUint(content string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(content), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected unsigned integer: %w", err)
	}
	return v, nil
}

// ParseFloat parses a single numeric node such as temp or curr1_input.
func ParseFloat(content string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(content), 64)
	if err != nil {
		return 0, fmt.Errorf("expected number: %w", err)
	}
	return v, nil
}

var tegraReleaseRe = regexp.MustCompile(`R(\d+) \(release\), REVISION: (\d+\.\d+)`)

// ParseTegraRelease extracts "<release>.<revision>" (e.g. "35.4.1") from
// /etc/nv_tegra_release.
func ParseTegraRelease(content string) (string, bool) {
	m := tegraReleaseRe.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1] + "." + m[2], true
}

// ParseBiosVersion returns the part of bios_version before the first dash.
func ParseBiosVersion(content string) string {
	version, _, _ := strings.Cut(content, "-")
	return strings.TrimSpace(version)
}

// ParseDeviceTreeModel strips the NUL terminator the device tree stores.
func ParseDeviceTreeModel(content string) string {
	return strings.TrimSpace(strings.TrimRight(content, "\x00"))
}

var (
	powerModelRe = regexp.MustCompile(`< POWER_MODEL ID=(\d+) NAME=([^\s>]+) >`)
	pmDefaultRe  = regexp.MustCompile(`< PM_CONFIG DEFAULT=(\d+) >`)
)

// ParseNvpmodelConf lists the power modes and the default mode id declared
// in /etc/nvpmodel.conf. A file without any POWER_MODEL entry is an error.
func ParseNvpmodelConf(content string) (NvpmodelConf, error) {
	var conf NvpmodelConf

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()

		if m := powerModelRe.FindStringSubmatch(line); m != nil {
			id, err := strconv.Atoi(m[1])
			if err != nil {
				return NvpmodelConf{}, fmt.Errorf("invalid power mode id %q: %w", m[1], err)
			}
			conf.Modes = append(conf.Modes, PowerMode{ID: id, Name: m[2]})
			continue
		}

		if m := pmDefaultRe.FindStringSubmatch(line); m != nil && !conf.HasDefault {
			id, err := strconv.Atoi(m[1])
			if err != nil {
				return NvpmodelConf{}, fmt.Errorf("invalid default power mode %q: %w", m[1], err)
			}
			conf.DefaultID = id
			conf.HasDefault = true
		}
	}

	if err := scanner.Err(); err != nil {
		return NvpmodelConf{}, fmt.Errorf("error scanning nvpmodel.conf: %w", err)
	}
	if len(conf.Modes) == 0 {
		return NvpmodelConf{}, fmt.Errorf("no POWER_MODEL entries")
	}
	return conf, nil
}

// ParseNvpmodelStatus parses the active mode id from /var/lib/nvpmodel/status,
// whose content looks like "pmode:0002".
func ParseNvpmodelStatus(content string) (int, error) {
	_, id, ok := strings.Cut(strings.TrimSpace(content), ":")
	if !ok {
		return 0, fmt.Errorf("expected pmode:<id>, got %q", strings.TrimSpace(content))
	}
	v, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return 0, fmt.Errorf("invalid power mode id: %w", err)
	}
	return v, nil
}

// ParseFanProfile finds the FAN_DEFAULT_PROFILE line of nvfancontrol.conf.
// Profiles other than quiet and cool map to FanUnknown.
func ParseFanProfile(content string) (FanProfile, bool) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 || fields[0] != "FAN_DEFAULT_PROFILE" {
			continue
		}
		switch FanProfile(fields[1]) {
		case FanQuiet:
			return FanQuiet, true
		case FanCool:
			return FanCool, true
		default:
			return FanUnknown, true
		}
	}
	return "", false
}

// ParseThermalType returns the zone name before the first dash
// ("CPU-therm" becomes "CPU").
func ParseThermalType(content string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(content), "-")
	return strings.TrimSpace(name)
}
