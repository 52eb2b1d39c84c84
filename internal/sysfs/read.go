package sysfs

import (
	"io"
	"time"

	"github.com/spf13/afero"

	"github.com/rileyhilliard/tegratop/internal/errors"
)

// ErrReadTimeout is the cause attached to reads that exceeded the FS timeout,
// and to reads refused because an earlier read on the same file is still stuck.
var ErrReadTimeout = errors.New(errors.ErrIO, "read timed out", "")

type readResult struct {
	data []byte
	err  error
}

// reader performs rewind-and-read on one open file, bounded by a timeout.
// It is owned by a single Handle and never used concurrently by callers.
type reader struct {
	file    afero.File
	timeout time.Duration

	// pending is non-nil while a timed-out read is still running in the
	// background. Until it delivers, the file must not be touched again.
	pending chan readResult
}

func newReader(file afero.File, timeout time.Duration) *reader {
	return &reader{file: file, timeout: timeout}
}

// stalled reports whether a previous read has timed out and not yet returned.
func (r *reader) stalled() bool {
	if r.pending == nil {
		return false
	}
	select {
	case <-r.pending:
		r.pending = nil
		return false
	default:
		return true
	}
}

func (r *reader) read() ([]byte, error) {
	if r.stalled() {
		return nil, ErrReadTimeout
	}
	if r.timeout <= 0 {
		return rewindAndRead(r.file)
	}

	done := make(chan readResult, 1)
	go func() {
		data, err := rewindAndRead(r.file)
		done <- readResult{data: data, err: err}
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.data, res.err
	case <-timer.C:
		r.pending = done
		return nil, ErrReadTimeout
	}
}

func (r *reader) close() error {
	return r.file.Close()
}

func rewindAndRead(f afero.File) ([]byte, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}
