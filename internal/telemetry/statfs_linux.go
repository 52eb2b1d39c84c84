//go:build linux

package telemetry

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// NewStatter returns a Statter backed by statfs(2). Paths are resolved under
// root, matching the sysfs.FS prefix.
func NewStatter(root string) Statter {
	return unixStatter{root: root}
}

type unixStatter struct {
	root string
}

func (s unixStatter) Statfs(path string) (FsStats, error) {
	if s.root != "" {
		path = filepath.Join(s.root, path)
	}
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return FsStats{}, err
	}
	return FsStats{
		Blocks:          st.Blocks,
		BlocksAvailable: st.Bavail,
		FragmentSize:    uint64(st.Frsize),
	}, nil
}
