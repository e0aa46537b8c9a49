package mfdb

import (
	"fmt"

	"mfdb/internal/accession"
)

// ToEnd as an end coordinate means the full sequence length.
const ToEnd = -1

// Location is one file holding an accession.
type Location struct {
	Path   string
	Handle Handle
}

// lookup resolves ac to its entry and authoritative file. mu must be held.
func (s *Store) lookup(ac string) (accession.Entry, *SequenceFile, error) {
	if s.closed {
		return accession.Entry{}, nil, ErrClosed
	}
	e, ok := s.index.Lookup(ac)
	if !ok {
		return accession.Entry{}, nil, &AccessionError{Accession: ac}
	}
	return e, &s.reg.files[e.File], nil
}

// Fetch returns the whole sequence ac resolves to.
func (s *Store) Fetch(ac string) (string, error) {
	return s.FetchRange(ac, 0, ToEnd)
}

// FetchRange returns the zero-based half-open interval [start, end) of the
// sequence ac resolves to, read from the first registered file holding it.
// An end past the sequence is truncated to its length.
func (s *Store) FetchRange(ac string, start, end int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, f, err := s.lookup(ac)
	if err != nil {
		return "", err
	}
	n, _ := f.Len(e.Primary)
	if start < 0 || (end != ToEnd && (end < 0 || start > end)) {
		return "", &RangeError{Accession: ac, Start: start, End: end, Length: n}
	}
	if end == ToEnd || end > n {
		end = n
	}
	if start > end {
		return "", &RangeError{Accession: ac, Start: start, End: end, Length: n}
	}
	if start == end {
		return "", nil
	}
	seq, err := f.handle.Extract(e.Primary, start, end)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", ac, err)
	}
	return seq, nil
}

// Resolve returns the primary accession ac resolves to.
func (s *Store) Resolve(ac string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, _, err := s.lookup(ac)
	return e.Primary, err
}

// Length returns the stored length of the sequence ac resolves to.
func (s *Store) Length(ac string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, f, err := s.lookup(ac)
	if err != nil {
		return 0, err
	}
	n, _ := f.Len(e.Primary)
	return n, nil
}

// Locate returns the file fetches of ac are served from.
func (s *Store) Locate(ac string) (Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, f, err := s.lookup(ac)
	if err != nil {
		return Location{}, err
	}
	return Location{Path: f.path, Handle: f.handle}, nil
}

// WhereIs lists, in registration order, every file storing ac literally.
// An accession stored nowhere under its own name but resolving through the
// meta index reports the files storing its primary instead.
func (s *Store) WhereIs(ac string) ([]Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	locs := s.holding(ac)
	if len(locs) == 0 {
		if e, ok := s.index.Lookup(ac); ok && e.Primary != ac {
			locs = s.holding(e.Primary)
		}
	}
	if len(locs) == 0 {
		return nil, &AccessionError{Accession: ac}
	}
	return locs, nil
}

func (s *Store) holding(ac string) []Location {
	var out []Location
	for i := range s.reg.files {
		f := &s.reg.files[i]
		if f.Has(ac) {
			out = append(out, Location{Path: f.path, Handle: f.handle})
		}
	}
	return out
}
