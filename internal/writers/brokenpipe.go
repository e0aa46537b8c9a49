package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err comes from a reader that went away,
// such as `mfdb refs | head`.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// IgnoreBrokenPipe returns nil for broken-pipe errors and err otherwise.
// Output cut short by the reader is not a failure.
func IgnoreBrokenPipe(err error) error {
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}
