// Package accession builds the accession index of an aggregate store: the
// mapping from every primary accession, and optionally every secondary
// accession derived from it, to the primary that names the stored
// sequence and the first file holding it.
//
// Registration is first-wins. Primary accessions are registered before any
// secondary is derived, so a primary always resolves to itself even when
// an earlier file derives a secondary with the same name.
package accession

import (
	"regexp"

	"go.uber.org/zap"
)

// secondaryPattern captures the payload after a "ref" or "gb" tag in a
// pipe-delimited composite identifier such as gi|53292629|ref|NP_001005405.1|.
var secondaryPattern = regexp.MustCompile(`(?:ref|gb)\|([^|]+)`)

// Secondary returns the secondary accessions derivable from ref, left to
// right. A tag repeated within ref is returned once per occurrence, and
// Build counts each repeat as a collision.
func Secondary(ref string) []string {
	matches := secondaryPattern.FindAllStringSubmatch(ref, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// File is the view of a registered sequence file the builder needs.
type File interface {
	Path() string
	References() []string
	Has(accession string) bool
}

// Entry locates the sequence an accession resolves to.
type Entry struct {
	Primary   string // accession the sequence is stored under
	File      int    // ordinal of the first file holding Primary
	Secondary bool   // derived rather than stored
}

// Options control Build.
type Options struct {
	// Meta enables secondary accession derivation.
	Meta   bool
	Logger *zap.Logger
}

// Index is immutable once built.
type Index struct {
	entries    map[string]Entry
	keys       []string
	collisions int
	meta       bool
}

// Build indexes files in order.
func Build(files []File, opts Options) *Index {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b := builder{
		idx:   &Index{entries: make(map[string]Entry), meta: opts.Meta},
		files: files,
		log:   log,
	}

	refs := make([][]string, len(files))
	for i, f := range files {
		refs[i] = f.References()
		for _, ref := range refs[i] {
			b.add(ref, Entry{Primary: ref, File: i})
		}
	}
	if opts.Meta {
		for _, list := range refs {
			for _, ref := range list {
				owner := b.idx.entries[ref]
				for _, ac := range Secondary(ref) {
					b.add(ac, Entry{Primary: ref, File: owner.File, Secondary: true})
				}
			}
		}
	}

	log.Debug("accession index built",
		zap.Int("files", len(files)),
		zap.Int("accessions", len(b.idx.keys)),
		zap.Int("collisions", b.idx.collisions),
		zap.Bool("meta", opts.Meta))
	return b.idx
}

type builder struct {
	idx   *Index
	files []File
	log   *zap.Logger
}

func (b *builder) add(ac string, e Entry) {
	kept, dup := b.idx.entries[ac]
	if !dup {
		b.idx.entries[ac] = e
		b.idx.keys = append(b.idx.keys, ac)
		return
	}
	b.idx.collisions++
	if b.log.Core().Enabled(zap.DebugLevel) {
		b.log.Debug("multiple entries for accession",
			zap.String("accession", ac),
			zap.String("kept", kept.Primary),
			zap.String("dropped", e.Primary),
			zap.Strings("files", b.where(ac, kept.Primary)))
	}
}

// where lists files holding the accession itself or the primary it maps to.
func (b *builder) where(ac, primary string) []string {
	var out []string
	for _, f := range b.files {
		if f.Has(ac) || f.Has(primary) {
			out = append(out, f.Path())
		}
	}
	return out
}

// Lookup returns the entry for ac.
func (x *Index) Lookup(ac string) (Entry, bool) {
	e, ok := x.entries[ac]
	return e, ok
}

// Contains reports whether ac resolves.
func (x *Index) Contains(ac string) bool {
	_, ok := x.entries[ac]
	return ok
}

// Len returns the number of resolvable accessions.
func (x *Index) Len() int { return len(x.keys) }

// Keys returns accessions in registration order: primaries first, then
// secondaries.
func (x *Index) Keys() []string { return append([]string(nil), x.keys...) }

// Collisions counts registrations dropped because the key already existed.
func (x *Index) Collisions() int { return x.collisions }

// Meta reports whether secondary accessions were derived.
func (x *Index) Meta() bool { return x.meta }
