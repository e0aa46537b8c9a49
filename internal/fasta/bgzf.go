package fasta

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/biogo/hts/bgzf"
	"go.uber.org/zap"
)

// block maps the compressed file offset of a BGZF block to the
// uncompressed offset of its first byte.
type block struct {
	coff int64
	uoff int64
}

// blockReaderAt gives io.ReaderAt semantics over uncompressed BGZF data so
// fai range reads work unchanged. The bgzf reader is stateful, so reads
// are serialized.
type blockReaderAt struct {
	mu     sync.Mutex
	bg     *bgzf.Reader
	blocks []block
	size   int64 // uncompressed size
}

func newBlockReaderAt(f *os.File, path string, size int64, modTime time.Time, log *zap.Logger) (*blockReaderAt, error) {
	blocks, total, err := loadBlocks(f, path, size, modTime, log)
	if err != nil {
		return nil, err
	}
	bg, err := bgzf.NewReader(f, 1)
	if err != nil {
		return nil, fmt.Errorf("%s: bgzf: %w", path, err)
	}
	return &blockReaderAt{bg: bg, blocks: blocks, size: total}, nil
}

func (r *blockReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("bgzf: negative offset")
	}
	if off >= r.size {
		return 0, io.EOF
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := sort.Search(len(r.blocks), func(i int) bool { return r.blocks[i].uoff > off }) - 1
	if i < 0 {
		return 0, io.EOF
	}
	b := r.blocks[i]
	// Uncompressed block payloads are at most 64KiB, so the in-block
	// offset always fits.
	if err := r.bg.Seek(bgzf.Offset{File: b.coff, Block: uint16(off - b.uoff)}); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(r.bg, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

func (r *blockReaderAt) Close() error { return r.bg.Close() }

// GZIPath returns the companion .gzi path for a BGZF file.
func GZIPath(path string) string { return path + ".gzi" }

// loadBlocks reads the block table from a .gzi companion when present and
// otherwise scans block headers. The scan reads only headers and ISIZE
// trailers, never payloads. A .gzi older than the data is not trusted.
func loadBlocks(f *os.File, path string, size int64, modTime time.Time, log *zap.Logger) ([]block, int64, error) {
	gziPath := GZIPath(path)
	info, err := os.Stat(gziPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return scanFile(f, path, size)
	case err != nil:
		return nil, 0, err
	case modTime.After(info.ModTime()):
		log.Warn("stale index",
			zap.String("index", gziPath),
			zap.Time("index_modified", info.ModTime()),
			zap.Time("data_modified", modTime))
		return scanFile(f, path, size)
	}

	blocks, err := readGZI(gziPath)
	if err != nil {
		return nil, 0, err
	}
	last := blocks[len(blocks)-1]
	if last.coff >= size {
		return nil, 0, fmt.Errorf("%s: block offset %d beyond data size %d", gziPath, last.coff, size)
	}
	_, isize, err := readBlock(f, last.coff)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return blocks, last.uoff + isize, nil
}

func scanFile(f *os.File, path string, size int64) ([]block, int64, error) {
	blocks, total, err := scanBlocks(f, size)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return blocks, total, nil
}

// readBlock returns the total size and uncompressed size of the block at coff.
func readBlock(r io.ReaderAt, coff int64) (int64, int64, error) {
	var (
		hdr  [bgzfHeaderLen]byte
		tail [4]byte
	)
	if _, err := r.ReadAt(hdr[:], coff); err != nil {
		return 0, 0, fmt.Errorf("bgzf block header at %d: %w", coff, err)
	}
	bsize, ok := blockSize(hdr[:])
	if !ok {
		return 0, 0, fmt.Errorf("bgzf block at %d: %w", coff, ErrNotBGZF)
	}
	if _, err := r.ReadAt(tail[:], coff+bsize-4); err != nil {
		return 0, 0, fmt.Errorf("bgzf block trailer at %d: %w", coff, err)
	}
	return bsize, int64(binary.LittleEndian.Uint32(tail[:])), nil
}

func scanBlocks(r io.ReaderAt, size int64) ([]block, int64, error) {
	var (
		blocks []block
		coff   int64
		uoff   int64
	)
	for coff < size {
		bsize, isize, err := readBlock(r, coff)
		if err != nil {
			return nil, 0, err
		}
		if isize > 0 {
			blocks = append(blocks, block{coff: coff, uoff: uoff})
		}
		uoff += isize
		coff += bsize
	}
	return blocks, uoff, nil
}

// readGZI parses a samtools .gzi file: a little-endian uint64 entry count
// followed by (compressed, uncompressed) offset pairs. The first block at
// (0, 0) is implicit. Offsets must be strictly increasing.
func readGZI(path string) ([]block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < 8 {
		return nil, fmt.Errorf("%s: truncated gzi index", path)
	}
	n := binary.LittleEndian.Uint64(data[:8])
	body := uint64(len(data) - 8)
	if n > body/16 || body != n*16 {
		return nil, fmt.Errorf("%s: gzi index holds %d bytes for %d entries", path, body, n)
	}
	blocks := make([]block, 0, n+1)
	blocks = append(blocks, block{})
	for i := uint64(0); i < n; i++ {
		rec := data[8+i*16:]
		coff := binary.LittleEndian.Uint64(rec[:8])
		uoff := binary.LittleEndian.Uint64(rec[8:16])
		prev := blocks[len(blocks)-1]
		if coff > math.MaxInt64 || uoff > math.MaxInt64 ||
			int64(coff) <= prev.coff || int64(uoff) <= prev.uoff {
			return nil, fmt.Errorf("%s: gzi entry %d (%d, %d) does not follow (%d, %d)",
				path, i, coff, uoff, prev.coff, prev.uoff)
		}
		blocks = append(blocks, block{coff: int64(coff), uoff: int64(uoff)})
	}
	return blocks, nil
}
