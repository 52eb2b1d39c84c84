package sysfs

import (
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tegratop/internal/errors"
)

// gatedFs counts opens per path and can hold reads until a gate is closed.
type gatedFs struct {
	afero.Fs
	mu    sync.Mutex
	opens map[string]int
	gate  chan struct{}
}

func newGatedFs() *gatedFs {
	return &gatedFs{Fs: afero.NewMemMapFs(), opens: make(map[string]int)}
}

func (g *gatedFs) Open(name string) (afero.File, error) {
	g.mu.Lock()
	g.opens[name]++
	g.mu.Unlock()

	f, err := g.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	return &gatedFile{File: f, fs: g}, nil
}

func (g *gatedFs) openCount(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opens[name]
}

func (g *gatedFs) hold() chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gate = make(chan struct{})
	return g.gate
}

func (g *gatedFs) release(gate chan struct{}) {
	g.mu.Lock()
	g.gate = nil
	g.mu.Unlock()
	close(gate)
}

type gatedFile struct {
	afero.File
	fs *gatedFs
}

func (f *gatedFile) Read(p []byte) (int, error) {
	f.fs.mu.Lock()
	gate := f.fs.gate
	f.fs.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.File.Read(p)
}

func parseInt(data []byte) (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func write(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestOpen(t *testing.T) {
	mem := afero.NewMemMapFs()
	write(t, mem, "/sys/gauge", "42\n")
	write(t, mem, "/sys/garbage", "not a number\n")
	fs := New(mem, 0)

	tests := []struct {
		name     string
		path     string
		wantCode string
		want     int
	}{
		{name: "valid file", path: "/sys/gauge", want: 42},
		{name: "missing file", path: "/sys/missing", wantCode: errors.ErrSourceUnavailable},
		{name: "unparseable file", path: "/sys/garbage", wantCode: errors.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Open(fs, Source{Path: tt.path, Kind: Gauge}, parseInt)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Nil(t, h)
				assert.Equal(t, tt.wantCode, errors.Classify(err))
				return
			}
			require.NoError(t, err)
			defer h.Close()
			assert.Equal(t, tt.want, h.Value())
			assert.Equal(t, tt.path, h.Source().Path)
			assert.Equal(t, Gauge, h.Source().Kind)
		})
	}
}

func TestHandle_RefreshRereadsWithoutReopening(t *testing.T) {
	g := newGatedFs()
	write(t, g.Fs, "/proc/counter", "100\n")

	h, err := Open(New(g, 0), Source{Path: "/proc/counter", Kind: Counter}, parseInt)
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, 100, h.Value())

	for _, next := range []string{"150", "7", "123456789"} {
		write(t, g.Fs, "/proc/counter", next+"\n")
		v, err := h.Refresh()
		require.NoError(t, err)
		want, _ := strconv.Atoi(next)
		assert.Equal(t, want, v)
	}

	assert.Equal(t, 1, g.openCount("/proc/counter"))
}

func TestHandle_RefreshKeepsValueOnParseFailure(t *testing.T) {
	mem := afero.NewMemMapFs()
	write(t, mem, "/sys/temp", "41000\n")

	h, err := Open(New(mem, 0), Source{Path: "/sys/temp", Kind: Gauge}, parseInt)
	require.NoError(t, err)
	defer h.Close()

	write(t, mem, "/sys/temp", "garbage\n")
	v, err := h.Refresh()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrParse))
	assert.Equal(t, 41000, v)
	assert.Equal(t, 41000, h.Value())

	write(t, mem, "/sys/temp", "42000\n")
	v, err = h.Refresh()
	require.NoError(t, err)
	assert.Equal(t, 42000, v)
}

func TestHandle_RefreshAfterClose(t *testing.T) {
	mem := afero.NewMemMapFs()
	write(t, mem, "/sys/x", "1")

	h, err := Open(New(mem, 0), Source{Path: "/sys/x", Kind: Gauge}, parseInt)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	v, err := h.Refresh()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrIO))
	assert.Equal(t, 1, v)
}

func TestHandle_ReadTimeoutMarksStalled(t *testing.T) {
	g := newGatedFs()
	write(t, g.Fs, "/sys/kernel/debug/clk/emc/clk_rate", "1600\n")

	h, err := Open(New(g, 20*time.Millisecond), Source{Path: "/sys/kernel/debug/clk/emc/clk_rate", Kind: Gauge}, parseInt)
	require.NoError(t, err)
	defer h.Close()

	gate := g.hold()

	v, err := h.Refresh()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadTimeout))
	assert.Equal(t, 1600, v)
	assert.True(t, h.Stalled())

	// While the first read is still stuck, later refreshes fail fast.
	_, err = h.Refresh()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadTimeout))

	g.release(gate)
	require.Eventually(t, func() bool { return !h.Stalled() }, time.Second, 5*time.Millisecond)

	write(t, g.Fs, "/sys/kernel/debug/clk/emc/clk_rate", "2133\n")
	v, err = h.Refresh()
	require.NoError(t, err)
	assert.Equal(t, 2133, v)
	assert.Equal(t, 1, g.openCount("/sys/kernel/debug/clk/emc/clk_rate"))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "counter", Counter.String())
	assert.Equal(t, "gauge", Gauge.String())
	assert.Equal(t, "static", StaticText.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
