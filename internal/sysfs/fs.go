package sysfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/rileyhilliard/tegratop/internal/errors"
)

// Kind is the semantic kind of a metric source.
type Kind int

const (
	// Counter sources are monotonically non-decreasing and need a delta.
	Counter Kind = iota
	// Gauge sources are instantaneous values.
	Gauge
	// StaticText sources are parsed once or change rarely.
	StaticText
)

// String returns a human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case Counter:
		return "counter"
	case Gauge:
		return "gauge"
	case StaticText:
		return "static"
	default:
		return "unknown"
	}
}

// Source identifies a kernel pseudo-file and its kind.
type Source struct {
	Path string
	Kind Kind
}

// FS is a read-only view of the kernel pseudo-filesystems.
type FS struct {
	fs      afero.Fs
	timeout time.Duration
}

// NewOS returns an FS over the real filesystem. A root other than "" or "/"
// re-roots every absolute path under it (useful for captured board trees).
func NewOS(root string, timeout time.Duration) *FS {
	var base afero.Fs = afero.NewOsFs()
	if root != "" && filepath.Clean(root) != "/" {
		base = afero.NewBasePathFs(base, root)
	}
	return New(base, timeout)
}

// New returns an FS over an arbitrary afero filesystem.
func New(fs afero.Fs, timeout time.Duration) *FS {
	return &FS{fs: fs, timeout: timeout}
}

// Timeout returns the per-read bound. Zero means reads are not bounded.
func (f *FS) Timeout() time.Duration {
	return f.timeout
}

// Exists reports whether path exists.
func (f *FS) Exists(path string) bool {
	ok, err := afero.Exists(f.fs, path)
	return err == nil && ok
}

// IsDir reports whether path exists and is a directory, following symlinks.
func (f *FS) IsDir(path string) bool {
	ok, err := afero.IsDir(f.fs, path)
	return err == nil && ok
}

// Entries returns the sorted names inside a directory.
func (f *FS) Entries(dir string) ([]string, error) {
	infos, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		return nil, classifyOpen(dir, err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Glob returns the sorted paths matching pattern.
func (f *FS) Glob(pattern string) ([]string, error) {
	matches, err := afero.Glob(f.fs, pattern)
	if err != nil {
		return nil, errors.IOFailure(pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ReadString reads a whole file once, without keeping it open, and returns
// its content with surrounding whitespace trimmed. Used for StaticText
// sources that are read at discovery only.
func (f *FS) ReadString(path string) (string, error) {
	file, err := f.open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	r := newReader(file, f.timeout)
	data, err := r.read()
	if err != nil {
		return "", errors.IOFailure(path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// open opens path read-only and classifies the failure.
func (f *FS) open(path string) (afero.File, error) {
	file, err := f.fs.Open(path)
	if err != nil {
		return nil, classifyOpen(path, err)
	}
	return file, nil
}

func classifyOpen(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.SourceUnavailable(path, err)
	}
	return errors.IOFailure(path, err)
}
