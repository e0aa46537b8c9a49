// internal/fasta/open.go
package fasta

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrNotBGZF is returned for gzip data that is not block compressed.
// Random access needs BGZF; recompress such files with bgzip.
var ErrNotBGZF = errors.New("gzip data is not BGZF block compressed")

type encoding int

const (
	plain encoding = iota
	blocked
	gzipped
)

func (e encoding) String() string {
	switch e {
	case blocked:
		return "bgzf"
	case gzipped:
		return "gzip"
	default:
		return "plain"
	}
}

// bgzfHeaderLen is the fixed header size of a BGZF block: the gzip member
// header plus the single BC extra subfield carrying BSIZE.
const bgzfHeaderLen = 18

// sniff detects the encoding by magic number (1F 8B) and, for gzip data,
// the BGZF "BC" extra subfield. Suffixes are not consulted.
func sniff(r io.ReaderAt) (encoding, error) {
	var hdr [bgzfHeaderLen]byte
	n, err := r.ReadAt(hdr[:], 0)
	if err != nil && err != io.EOF {
		return plain, err
	}
	if n < 2 || hdr[0] != 0x1f || hdr[1] != 0x8b {
		return plain, nil
	}
	if _, ok := blockSize(hdr[:n]); ok {
		return blocked, nil
	}
	return gzipped, nil
}

// blockSize parses a BGZF block header and returns the total block size.
func blockSize(hdr []byte) (int64, bool) {
	if len(hdr) < bgzfHeaderLen {
		return 0, false
	}
	if hdr[0] != 0x1f || hdr[1] != 0x8b || hdr[2] != 8 || hdr[3]&0x04 == 0 {
		return 0, false
	}
	if binary.LittleEndian.Uint16(hdr[10:12]) < 6 {
		return 0, false
	}
	if hdr[12] != 'B' || hdr[13] != 'C' || binary.LittleEndian.Uint16(hdr[14:16]) != 2 {
		return 0, false
	}
	return int64(binary.LittleEndian.Uint16(hdr[16:18])) + 1, true
}

// multiCloser closes multiple io.Closers in order, keeping the first error.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var err error
	for _, c := range m {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func notBGZF(path string) error {
	return fmt.Errorf("%s: %w (recompress with bgzip)", path, ErrNotBGZF)
}
