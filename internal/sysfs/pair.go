package sysfs

import stderrors "errors"

// Pair refreshes two related handles together. New values are committed only
// if both files were read and parsed, so a reading never mixes a fresh value
// with a stale one.
type Pair[A, B any] struct {
	first  *Handle[A]
	second *Handle[B]
}

// OpenPair opens both sources. If the second fails, the first is closed.
func OpenPair[A, B any](fs *FS, srcA Source, parseA ParseFunc[A], srcB Source, parseB ParseFunc[B]) (*Pair[A, B], error) {
	first, err := Open(fs, srcA, parseA)
	if err != nil {
		return nil, err
	}
	second, err := Open(fs, srcB, parseB)
	if err != nil {
		_ = first.Close()
		return nil, err
	}
	return &Pair[A, B]{first: first, second: second}, nil
}

// Refresh reads both files, then parses both, then commits both. On any
// failure the previous pair of values is returned with the error.
func (p *Pair[A, B]) Refresh() (A, B, error) {
	rawA, err := p.first.fetch()
	if err != nil {
		return p.first.value, p.second.value, err
	}
	rawB, err := p.second.fetch()
	if err != nil {
		return p.first.value, p.second.value, err
	}

	a, err := p.first.decode(rawA)
	if err != nil {
		return p.first.value, p.second.value, err
	}
	b, err := p.second.decode(rawB)
	if err != nil {
		return p.first.value, p.second.value, err
	}

	p.first.value = a
	p.second.value = b
	return a, b, nil
}

// Values returns the last committed pair.
func (p *Pair[A, B]) Values() (A, B) {
	return p.first.value, p.second.value
}

// Sources returns both sources in order.
func (p *Pair[A, B]) Sources() (Source, Source) {
	return p.first.src, p.second.src
}

// Close releases both files. Closing a nil pair is a no-op.
func (p *Pair[A, B]) Close() error {
	if p == nil {
		return nil
	}
	return stderrors.Join(p.first.Close(), p.second.Close())
}
