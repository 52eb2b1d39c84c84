package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/tegratop/internal/telemetry"
)

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, formatText, outputFormat(false, false))
	assert.Equal(t, formatJSON, outputFormat(true, false))
	assert.Equal(t, formatYAML, outputFormat(false, true))
}

func testSnapshot() telemetry.Snapshot {
	uptime := 90 * time.Second
	model := "NVIDIA Jetson Orin Nano Developer Kit"
	return telemetry.Snapshot{
		Timestamp: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
		Tick:      1,
		Board:     telemetry.BoardInfo{Model: &model},
		CPU:       []telemetry.CoreStats{{Name: "cpu0", Utilization: 25}},
		Engines:   []telemetry.EngineStats{},
		Thermal:   []telemetry.ThermalSensor{},
		Network:   []telemetry.NetworkInterface{},
		System:    telemetry.SystemStats{Uptime: &uptime},
	}
}

func TestWriteSnapshot_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshot(&buf, testSnapshot(), formatJSON, 0))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Contains(t, raw, "cpu")
	assert.Nil(t, raw["fan"].(map[string]any)["rpm"], "absent metrics encode as null")
	assert.Equal(t, []any{}, raw["engines"], "empty collections encode as []")
}

func TestWriteSnapshot_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshot(&buf, testSnapshot(), formatYAML, 0))

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &raw))
	board := raw["board"].(map[string]any)
	assert.Equal(t, "NVIDIA Jetson Orin Nano Developer Kit", board["model"])
	assert.Equal(t, "1m30s", raw["system"].(map[string]any)["uptime"])
}

func TestWriteSnapshot_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshot(&buf, testSnapshot(), formatText, 0))
	assert.Contains(t, buf.String(), "NVIDIA Jetson Orin Nano Developer Kit")
	assert.Contains(t, buf.String(), "cpu0")
}

// fakeRoot lays out a minimal kernel tree under a temp dir and points the
// config at it.
func fakeRoot(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("proc/uptime", "90.50 300.00\n")
	write("proc/loadavg", "0.10 0.20 0.30 1/100 42\n")
	write("sys/firmware/devicetree/base/model", "NVIDIA Jetson Orin Nano Developer Kit\x00")

	withGlobals(t, fmt.Sprintf("root: %s\ninterval: 500ms\ndisable: [network]\n", root))
}

func TestSnapshotCommand(t *testing.T) {
	fakeRoot(t)

	var slept time.Duration
	oldSleep := sleep
	sleep = func(d time.Duration) { slept = d }
	t.Cleanup(func() { sleep = oldSleep })

	var buf bytes.Buffer
	snapshotCmd.SetOut(&buf)
	t.Cleanup(func() { snapshotCmd.SetOut(nil) })

	require.NoError(t, snapshotCommand(snapshotCmd, formatJSON))
	assert.Equal(t, 500*time.Millisecond, slept, "waits one interval between samples")

	var snap telemetry.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
	assert.Equal(t, uint64(1), snap.Tick)
	require.NotNil(t, snap.Board.Model)
	assert.Equal(t, "NVIDIA Jetson Orin Nano Developer Kit", *snap.Board.Model)
	require.NotNil(t, snap.System.Uptime)
	assert.Equal(t, 90*time.Second, snap.System.Uptime.Truncate(time.Second))
	require.NotNil(t, snap.System.LoadAvg)
	assert.Equal(t, [3]float64{0.10, 0.20, 0.30}, *snap.System.LoadAvg)
	assert.Nil(t, snap.GPU.Load)
	assert.Empty(t, snap.Network)
}
