//go:build !linux

package telemetry

import "github.com/rileyhilliard/tegratop/internal/errors"

// NewStatter returns a Statter that always fails; disk space is only
// sampled on Linux.
func NewStatter(root string) Statter {
	return unsupportedStatter{}
}

type unsupportedStatter struct{}

func (unsupportedStatter) Statfs(path string) (FsStats, error) {
	return FsStats{}, errors.New(errors.ErrSourceUnavailable, "statfs is only supported on Linux", "")
}
