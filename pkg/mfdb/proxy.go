package mfdb

import (
	"fmt"
	"slices"
)

// Proxy is a lazy handle on one accession of a Store. It holds no sequence
// data; every method fetches on demand.
type Proxy struct {
	store     *Store
	accession string
}

// Get returns a proxy for ac, failing with ErrNotFound when ac does not
// resolve. No sequence data is read.
func (s *Store) Get(ac string) (Proxy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, _, err := s.lookup(ac); err != nil {
		return Proxy{}, err
	}
	return Proxy{store: s, accession: ac}, nil
}

// Accession returns the accession the proxy was created with.
func (p Proxy) Accession() string { return p.accession }

// Sequence fetches the whole sequence.
func (p Proxy) Sequence() (string, error) { return p.store.Fetch(p.accession) }

// Len returns the stored length.
func (p Proxy) Len() (int, error) { return p.store.Length(p.accession) }

// Slice fetches [start, stop). Use ToEnd for an open stop.
func (p Proxy) Slice(start, stop int) (string, error) {
	return p.store.FetchRange(p.accession, start, stop)
}

// SliceStep fetches [start, stop) forward for step 1 and reversed for
// step -1. Other steps fail with ErrUnsupportedIndex.
func (p Proxy) SliceStep(start, stop, step int) (string, error) {
	switch step {
	case 1:
		return p.Slice(start, stop)
	case -1:
		seq, err := p.Slice(start, stop)
		if err != nil {
			return "", err
		}
		b := []byte(seq)
		slices.Reverse(b)
		return string(b), nil
	default:
		return "", fmt.Errorf("step %d: %w", step, ErrUnsupportedIndex)
	}
}
