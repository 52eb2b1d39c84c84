package sysfs

import (
	"github.com/rileyhilliard/tegratop/internal/errors"
)

// ParseFunc turns the raw bytes of a pseudo-file into a typed value.
type ParseFunc[T any] func(data []byte) (T, error)

// Handle keeps one pseudo-file open for the lifetime of the sampler and
// re-reads it from offset 0 on every Refresh.
type Handle[T any] struct {
	src   Source
	r     *reader
	parse ParseFunc[T]
	value T
}

// Open opens src once and performs the first read. A missing path yields a
// SourceUnavailable error; a path that exists but can't be read or parsed
// yields an IO or Parse error. No handle is returned on failure.
func Open[T any](fs *FS, src Source, parse ParseFunc[T]) (*Handle[T], error) {
	file, err := fs.open(src.Path)
	if err != nil {
		return nil, err
	}

	h := &Handle[T]{
		src:   src,
		r:     newReader(file, fs.timeout),
		parse: parse,
	}
	if _, err := h.Refresh(); err != nil {
		_ = h.r.close()
		return nil, err
	}
	return h, nil
}

// Refresh rewinds, re-reads and re-parses the file. On failure the previously
// parsed value is returned alongside the error and stays current.
func (h *Handle[T]) Refresh() (T, error) {
	data, err := h.fetch()
	if err != nil {
		return h.value, err
	}
	v, err := h.decode(data)
	if err != nil {
		return h.value, err
	}
	h.value = v
	return v, nil
}

// Value returns the last successfully parsed value.
func (h *Handle[T]) Value() T {
	return h.value
}

// Source returns the path and kind this handle reads.
func (h *Handle[T]) Source() Source {
	return h.src
}

// Stalled reports whether the last read timed out and has not returned yet.
func (h *Handle[T]) Stalled() bool {
	return h.r.stalled()
}

// Close releases the underlying file. Closing a nil handle is a no-op.
func (h *Handle[T]) Close() error {
	if h == nil {
		return nil
	}
	return h.r.close()
}

func (h *Handle[T]) fetch() ([]byte, error) {
	data, err := h.r.read()
	if err != nil {
		return nil, errors.IOFailure(h.src.Path, err)
	}
	return data, nil
}

func (h *Handle[T]) decode(data []byte) (T, error) {
	v, err := h.parse(data)
	if err != nil {
		var zero T
		return zero, errors.ParseFailure(h.src.Path, err)
	}
	return v, nil
}
