package mfdb

import (
	"io"

	"go.uber.org/zap"

	"mfdb/internal/fasta"
)

// Presence reports whether an accession is stored in one file.
type Presence interface {
	Has(accession string) bool
}

// RangeExtractor reads the half-open interval [start, end) of a stored
// sequence. Callers pass a range already validated against Len.
type RangeExtractor interface {
	Extract(accession string, start, end int) (string, error)
}

// Handle is an opened indexed sequence file. Handles shared by a Store
// across goroutines must be safe for concurrent Extract calls.
type Handle interface {
	Presence
	RangeExtractor
	io.Closer

	// Names lists stored accessions in file order.
	Names() []string
	// Lengths is parallel to Names.
	Lengths() []int
	Len(accession string) (int, bool)
}

// Opener opens the file at path.
type Opener func(path string) (Handle, error)

func fastaOpener(log *zap.Logger, writeIndex bool) Opener {
	opts := fasta.Options{Logger: log, WriteIndex: writeIndex}
	return func(path string) (Handle, error) {
		f, err := fasta.Open(path, opts)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}
