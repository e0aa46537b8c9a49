// Package mfdb presents many indexed FASTA files as one accession-keyed
// sequence store.
//
// Sources are files or directories, registered in order. When an accession
// is stored in more than one file the earliest registered file wins, so
// callers control precedence through source order. With the meta index
// enabled, identifiers such as gi|53292629|ref|NP_001005405.1| also resolve
// through the accessions embedded after their ref and gb tags.
//
// A Store is safe for concurrent reads. Reopen and Close wait for reads in
// flight and exclude new ones until they return.
package mfdb

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"mfdb/internal/accession"
	"mfdb/internal/source"
)

type options struct {
	suffixes   []string
	meta       bool
	logger     *zap.Logger
	opener     Opener
	writeIndex bool
}

// Option configures Open.
type Option func(*options)

// WithSuffixes replaces the file name suffixes kept from directory walks.
// A missing leading dot is added.
func WithSuffixes(suffixes ...string) Option {
	return func(o *options) { o.suffixes = source.NormalizeSuffixes(suffixes) }
}

// WithMetaIndex enables secondary accession derivation.
func WithMetaIndex(on bool) Option {
	return func(o *options) { o.meta = on }
}

// WithLogger sets the logger. The store logs under the name "mfdb".
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOpener replaces the FASTA reader.
func WithOpener(open Opener) Option {
	return func(o *options) { o.opener = open }
}

// WithIndexWriting controls whether missing .fai indexes built on open are
// written beside their data files. It has no effect with WithOpener.
func WithIndexWriting(on bool) Option {
	return func(o *options) { o.writeIndex = on }
}

// DefaultSuffixes returns the suffixes kept from directory walks when
// WithSuffixes is not given.
func DefaultSuffixes() []string { return source.DefaultSuffixes() }

// Store is an ordered collection of opened sequence files and the
// accession index built over them.
type Store struct {
	sources []string
	opts    options
	log     *zap.Logger

	mu     sync.RWMutex
	reg    *registry
	index  *accession.Index
	closed bool
}

// Open resolves sources, opens every file and builds the accession index.
// On error nothing stays open.
func Open(sources []string, opts ...Option) (*Store, error) {
	o := options{
		suffixes:   source.DefaultSuffixes(),
		logger:     zap.NewNop(),
		writeIndex: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store{
		sources: slices.Clone(sources),
		opts:    o,
		log:     o.logger.Named("mfdb"),
	}
	if s.opts.opener == nil {
		s.opts.opener = fastaOpener(s.log, o.writeIndex)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load must be called with mu held or before s is shared.
func (s *Store) load() error {
	paths, err := source.Resolve(s.sources, s.opts.suffixes)
	if err != nil {
		return err
	}
	reg, err := openRegistry(paths, s.opts.opener, s.log)
	if err != nil {
		return err
	}
	files := make([]accession.File, len(reg.files))
	for i := range reg.files {
		files[i] = &reg.files[i]
	}
	s.reg = reg
	s.index = accession.Build(files, accession.Options{Meta: s.opts.meta, Logger: s.log})
	s.closed = false
	return nil
}

func (s *Store) release() error {
	var err error
	if s.reg != nil {
		err = s.reg.close()
	}
	s.reg, s.index, s.closed = nil, nil, true
	return err
}

// Reopen releases every handle, then resolves the original sources again
// and rebuilds the index. If rebuilding fails the store is left closed.
func (s *Store) Reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.release(); err != nil {
		s.log.Warn("closing before reopen", zap.Error(err))
	}
	return s.load()
}

// Close releases every handle. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.release()
}

// Sources returns the sources the store was opened with.
func (s *Store) Sources() []string { return slices.Clone(s.sources) }

// Contains reports whether accession resolves through the index.
func (s *Store) Contains(accession string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed && s.index.Contains(accession)
}

// References concatenates the stored accessions of every file in
// registration order. The slice is built per call. It is nil once closed.
func (s *Store) References() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	return s.reg.references()
}

// Lengths is parallel to References.
func (s *Store) Lengths() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	return s.reg.lengths()
}

// Files returns the opened files in registration order.
func (s *Store) Files() []*SequenceFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	out := make([]*SequenceFile, len(s.reg.files))
	for i := range s.reg.files {
		out[i] = &s.reg.files[i]
	}
	return out
}

// Accessions returns every resolvable accession: primaries in registration
// order, then derived secondaries.
func (s *Store) Accessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	return s.index.Keys()
}

// Stats summarizes an open store.
type Stats struct {
	Files      int
	References int
	Accessions int
	Collisions int
	MetaIndex  bool
}

// Stats returns counts for the current index.
func (s *Store) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Stats{}, ErrClosed
	}
	st := Stats{
		Files:      len(s.reg.files),
		Accessions: s.index.Len(),
		Collisions: s.index.Collisions(),
		MetaIndex:  s.index.Meta(),
	}
	for i := range s.reg.files {
		st.References += len(s.reg.files[i].refs)
	}
	return st, nil
}
