package mfdb

import (
	"errors"
	"slices"

	"go.uber.org/zap"
)

// SequenceFile is one opened file of a Store, in registration order.
type SequenceFile struct {
	path    string
	handle  Handle
	refs    []string
	lengths []int
}

// Path returns the canonical absolute path.
func (f *SequenceFile) Path() string { return f.path }

// Handle returns the reader for this file.
func (f *SequenceFile) Handle() Handle { return f.handle }

// References returns the stored accessions in file order.
func (f *SequenceFile) References() []string { return slices.Clone(f.refs) }

// Lengths is parallel to References.
func (f *SequenceFile) Lengths() []int { return slices.Clone(f.lengths) }

// Has reports whether accession is stored literally in this file.
func (f *SequenceFile) Has(accession string) bool { return f.handle.Has(accession) }

// Len returns the stored length of accession.
func (f *SequenceFile) Len(accession string) (int, bool) { return f.handle.Len(accession) }

type registry struct {
	files []SequenceFile
}

// openRegistry opens every path in order. On the first failure every
// handle already opened is closed.
func openRegistry(paths []string, open Opener, log *zap.Logger) (*registry, error) {
	r := &registry{files: make([]SequenceFile, 0, len(paths))}
	for _, p := range paths {
		h, err := open(p)
		if err != nil {
			if cerr := r.close(); cerr != nil {
				log.Warn("closing after failed open", zap.Error(cerr))
			}
			return nil, &OpenError{Path: p, Err: err}
		}
		refs, lengths := h.Names(), h.Lengths()
		r.files = append(r.files, SequenceFile{path: p, handle: h, refs: refs, lengths: lengths})
		log.Info("opened", zap.String("path", p), zap.Int("sequences", len(refs)))
	}
	return r, nil
}

func (r *registry) references() []string {
	var out []string
	for i := range r.files {
		out = append(out, r.files[i].refs...)
	}
	return out
}

func (r *registry) lengths() []int {
	var out []int
	for i := range r.files {
		out = append(out, r.files[i].lengths...)
	}
	return out
}

func (r *registry) close() error {
	var errs []error
	for i := range r.files {
		if err := r.files[i].handle.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.files = nil
	return errors.Join(errs...)
}
