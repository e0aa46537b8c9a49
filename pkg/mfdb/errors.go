package mfdb

import (
	"errors"
	"fmt"
	"strings"

	"mfdb/internal/source"
)

var (
	// ErrSourceNotFound is returned by Open and Reopen when a source is
	// neither a file nor a directory.
	ErrSourceNotFound = source.ErrNotFound
	// ErrOpen marks a file or index that could not be opened.
	ErrOpen = errors.New("cannot open sequence file")
	// ErrNotFound marks an accession that does not resolve.
	ErrNotFound = errors.New("accession not found")
	// ErrInvalidRange marks a negative start or a start past the end.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnsupportedIndex marks a proxy slice step other than 1 or -1.
	ErrUnsupportedIndex = errors.New("unsupported index")
	// ErrClosed is returned by every read after Close.
	ErrClosed = errors.New("store is closed")
)

// OpenError names the file that failed to open. The path is printed once:
// causes that already name it are reported as is.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	msg := e.Err.Error()
	if strings.Contains(msg, e.Path) {
		return msg
	}
	return fmt.Sprintf("open %s: %s", e.Path, msg)
}

func (e *OpenError) Unwrap() []error { return []error{ErrOpen, e.Err} }

// AccessionError names an accession that does not resolve.
type AccessionError struct {
	Accession string
}

func (e *AccessionError) Error() string {
	return fmt.Sprintf("%q: %v", e.Accession, ErrNotFound)
}

func (e *AccessionError) Unwrap() error { return ErrNotFound }

// RangeError describes a rejected range.
type RangeError struct {
	Accession  string
	Start, End int
	Length     int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s:%d-%d (length %d): %v", e.Accession, e.Start, e.End, e.Length, ErrInvalidRange)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// IsNotFound reports whether err is an unresolved accession.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidRange reports whether err is a rejected range.
func IsInvalidRange(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}
