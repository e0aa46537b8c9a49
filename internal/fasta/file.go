// Package fasta opens .fai-indexed FASTA files for random access.
//
// Plain and BGZF block-compressed files are supported; the encoding is
// detected from the data, not the name. A missing .fai is built on open
// and, when Options.WriteIndex is set, written next to the data the way
// samtools faidx does.
package fasta

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/biogo/hts/fai"
	"go.uber.org/zap"
)

// Options control how a File is opened.
type Options struct {
	// Logger receives stale-index warnings and index build notices.
	Logger *zap.Logger
	// WriteIndex persists a freshly built .fai beside the data file.
	WriteIndex bool
}

// File is one opened indexed FASTA file. Range reads are safe for
// concurrent use.
type File struct {
	path    string
	enc     encoding
	index   fai.Index
	records []fai.Record // file order
	seqs    *fai.File
	written bool
	closer  io.Closer
}

// Open opens path and its companion index.
func Open(path string, opts Options) (*File, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	enc, err := sniff(fh)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var (
		ra      io.ReaderAt = fh
		closers             = multiCloser{fh}
	)
	switch enc {
	case gzipped:
		_ = fh.Close()
		return nil, notBGZF(path)
	case blocked:
		br, err := newBlockReaderAt(fh, path, info.Size(), info.ModTime(), log)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		ra = br
		closers = multiCloser{br, fh}
	}

	idx, written, err := loadIndex(path, fh, enc, info.ModTime(), info.Size(), opts, log)
	if err != nil {
		_ = closers.Close()
		return nil, err
	}

	records := make([]fai.Record, 0, len(idx))
	for _, rec := range idx {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Start < records[j].Start })

	return &File{
		path:    path,
		enc:     enc,
		index:   idx,
		records: records,
		seqs:    fai.NewFile(ra, idx),
		written: written,
		closer:  closers,
	}, nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string { return f.path }

// Compressed reports whether the data is BGZF block compressed.
func (f *File) Compressed() bool { return f.enc == blocked }

// IndexWritten reports whether Open built and wrote a new .fai.
func (f *File) IndexWritten() bool { return f.written }

// Names returns the sequence names in file order.
func (f *File) Names() []string {
	out := make([]string, len(f.records))
	for i, r := range f.records {
		out[i] = r.Name
	}
	return out
}

// Lengths returns sequence lengths parallel to Names.
func (f *File) Lengths() []int {
	out := make([]int, len(f.records))
	for i, r := range f.records {
		out[i] = r.Length
	}
	return out
}

// Has reports whether name is a sequence in this file.
func (f *File) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Len returns the length of the named sequence.
func (f *File) Len(name string) (int, bool) {
	rec, ok := f.index[name]
	return rec.Length, ok
}

// Extract reads the half-open interval [start, end) of the named sequence.
// Line breaks are skipped; residues are returned as stored.
func (f *File) Extract(name string, start, end int) (string, error) {
	s, err := f.seqs.SeqRange(name, start, end)
	if err != nil {
		return "", fmt.Errorf("%s: %s:%d-%d: %w", f.path, name, start, end, err)
	}
	b, err := io.ReadAll(s)
	if err != nil {
		return "", fmt.Errorf("%s: %s:%d-%d: %w", f.path, name, start, end, err)
	}
	return string(b), nil
}

// Close releases the file descriptor and any decompressor.
func (f *File) Close() error { return f.closer.Close() }
