package mfdb

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mfdb/internal/fixture"
)

func openT(t *testing.T, sources []string, opts ...Option) *Store {
	t.Helper()
	s, err := Open(sources, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_Tree(t *testing.T) {
	dir := fixture.Tree(t)
	s := openT(t, []string{dir})

	want := []string{
		"s1", "s2", "s3", "s4", "s1", "s5", "s3", "s6",
		fixture.NP001005405, fixture.NP001004713,
		fixture.NM001005405, fixture.NM001004713, fixture.AF233079,
	}
	if diff := cmp.Diff(want, s.References()); diff != "" {
		t.Fatalf("references (-want +got):\n%s", diff)
	}

	lengths := s.Lengths()
	require.Len(t, lengths, len(want))
	assert.Equal(t, []int{6, 6, 6, 6, 6, 6, 6, 6, 156, 95, 150, 133, 48}, lengths)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Files: 6, References: 13, Accessions: 11, Collisions: 2}, st)
}

func TestOpen_ReferencesParallelLengths(t *testing.T) {
	s := openT(t, []string{fixture.Tree(t)})
	refs, lengths := s.References(), s.Lengths()
	require.Equal(t, len(refs), len(lengths))

	for _, f := range s.Files() {
		for i, ref := range f.References() {
			n, ok := f.Len(ref)
			require.True(t, ok)
			assert.Equal(t, f.Lengths()[i], n, ref)
		}
	}
}

func TestOpen_FilesInRegistrationOrder(t *testing.T) {
	dir := fixture.Tree(t)
	s := openT(t, []string{filepath.Join(dir, "d2"), filepath.Join(dir, "d1")})

	var got []string
	for _, f := range s.Files() {
		rel, err := filepath.Rel(dir, f.Path())
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"d2/f3.fa", "d2/f4.fa", "d1/f1.fasta", "d1/f2.fasta"}, got)
}

func TestOpen_SourceNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := Open([]string{missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
	assert.Contains(t, err.Error(), missing)
}

func TestOpen_Suffixes(t *testing.T) {
	dir := fixture.Tree(t)
	s := openT(t, []string{dir}, WithSuffixes("fa"))
	assert.Len(t, s.Files(), 2)
	assert.Equal(t, []string{"s1", "s5", "s3", "s6"}, s.References())
}

func TestOpen_WritesIndexes(t *testing.T) {
	dir := fixture.Tree(t)
	openT(t, []string{dir})
	assert.FileExists(t, filepath.Join(dir, "d1", "f1.fasta.fai"))

	dir = fixture.Tree(t)
	openT(t, []string{dir}, WithIndexWriting(false))
	assert.NoFileExists(t, filepath.Join(dir, "d1", "f1.fasta.fai"))
}

func TestOpen_LogsUnderStoreName(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	openT(t, []string{fixture.Tree(t)}, WithLogger(zap.New(core)))

	opened := logs.FilterMessage("opened").All()
	require.Len(t, opened, 6)
	for _, e := range opened {
		assert.Equal(t, "mfdb", e.LoggerName)
	}
	assert.Equal(t, 6, logs.FilterMessage("built index").Len())
}

func TestOpen_StaleIndexWarns(t *testing.T) {
	dir := fixture.Tree(t)
	openT(t, []string{dir}).Close()

	fn := filepath.Join(dir, "d1", "f1.fasta")
	info, err := os.Stat(fn + ".fai")
	require.NoError(t, err)
	later := info.ModTime().Add(time.Hour)
	require.NoError(t, os.Chtimes(fn, later, later))

	core, logs := observer.New(zapcore.WarnLevel)
	s := openT(t, []string{dir}, WithLogger(zap.New(core)))
	stale := logs.FilterMessage("stale index").All()
	require.Len(t, stale, 1)
	assert.Equal(t, fn+".fai", stale[0].ContextMap()["index"])

	got, err := s.Fetch("s1")
	require.NoError(t, err)
	assert.Equal(t, "d1f1s1", got)
}

type fakeHandle struct {
	names  []string
	seqs   map[string]string
	closed *int
}

func (h fakeHandle) Has(ac string) bool { _, ok := h.seqs[ac]; return ok }
func (h fakeHandle) Names() []string    { return h.names }
func (h fakeHandle) Lengths() []int {
	out := make([]int, len(h.names))
	for i, n := range h.names {
		out[i] = len(h.seqs[n])
	}
	return out
}
func (h fakeHandle) Len(ac string) (int, bool) { s, ok := h.seqs[ac]; return len(s), ok }
func (h fakeHandle) Extract(ac string, start, end int) (string, error) {
	return h.seqs[ac][start:end], nil
}
func (h fakeHandle) Close() error { *h.closed++; return nil }

var errCorrupt = errors.New("corrupt index")

func TestOpen_FailureClosesOpenedHandles(t *testing.T) {
	dir := fixture.Tree(t)
	closed, opened := 0, 0
	opener := func(path string) (Handle, error) {
		if filepath.Base(path) == "f3.fa" {
			return nil, errCorrupt
		}
		opened++
		return fakeHandle{names: []string{"x"}, seqs: map[string]string{"x": "ACGT"}, closed: &closed}, nil
	}

	s, err := Open([]string{dir}, WithOpener(opener))
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrOpen)
	assert.ErrorIs(t, err, errCorrupt)

	var oe *OpenError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "f3.fa", filepath.Base(oe.Path))
	assert.Equal(t, "open "+oe.Path+": corrupt index", err.Error())
	assert.Equal(t, 2, opened)
	assert.Equal(t, opened, closed)
}

func TestOpen_PlainGzipRejected(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "x.fa.gz")
	writeGzip(t, fn, fixture.Format(fixture.Record{Name: "s1", Seq: "ACGT"}))

	_, err := Open([]string{dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOpen)
	assert.Contains(t, err.Error(), "x.fa.gz")

	var oe *OpenError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 1, strings.Count(err.Error(), oe.Path), err.Error())
}

func writeGzip(t *testing.T, path, text string) {
	t.Helper()
	fh, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(fh)
	_, err = zw.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, fh.Close())
}

func TestWithOpener_ReceivesCanonicalPaths(t *testing.T) {
	dir := fixture.Tree(t)
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "d1"), link))
	target, err := filepath.EvalSymlinks(filepath.Join(dir, "d1"))
	require.NoError(t, err)

	var seen []string
	closed := 0
	opener := func(path string) (Handle, error) {
		seen = append(seen, path)
		return fakeHandle{seqs: map[string]string{}, closed: &closed}, nil
	}
	s := openT(t, []string{link}, WithOpener(opener))
	assert.Equal(t, []string{
		filepath.Join(target, "f1.fasta"),
		filepath.Join(target, "f2.fasta"),
	}, seen)
	require.NoError(t, s.Close())
	assert.Equal(t, 2, closed)
}

func TestClose_Idempotent(t *testing.T) {
	s := openT(t, []string{fixture.Tree(t)})
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Fetch("s1")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.WhereIs("s1")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Get("s1")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Stats()
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, s.Contains("s1"))
	assert.Nil(t, s.References())
	assert.Nil(t, s.Files())
}

func TestReopen_RebuildsEqualIndex(t *testing.T) {
	dir := fixture.Tree(t)
	closed := 0
	opener := func(path string) (Handle, error) {
		h, err := fastaOpener(zap.NewNop(), false)(path)
		if err != nil {
			return nil, err
		}
		return countingHandle{Handle: h, closed: &closed}, nil
	}
	s := openT(t, []string{dir}, WithOpener(opener), WithMetaIndex(true))
	before := s.Accessions()

	require.NoError(t, s.Reopen())
	assert.Equal(t, 6, closed)
	assert.Equal(t, before, s.Accessions())

	require.NoError(t, s.Close())
	assert.Equal(t, 12, closed)

	require.NoError(t, s.Reopen())
	assert.Equal(t, before, s.Accessions())
	got, err := s.Fetch("NP_001004713.1")
	require.NoError(t, err)
	assert.Equal(t, fixture.NP001004713Seq, got)
}

func TestReopen_FailureLeavesStoreClosed(t *testing.T) {
	dir := fixture.Tree(t)
	src := filepath.Join(dir, "d1")
	s := openT(t, []string{src})

	require.NoError(t, os.RemoveAll(src))
	err := s.Reopen()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)

	_, err = s.Fetch("s1")
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, s.Contains("s1"))
}

func TestReopen_SeesNewFiles(t *testing.T) {
	dir := fixture.Tree(t)
	s := openT(t, []string{dir})
	assert.False(t, s.Contains("s7"))

	fixture.WriteFASTA(t, filepath.Join(dir, "d3", "f5.fa"), fixture.Record{Name: "s7", Seq: "d3f5s7"})
	require.NoError(t, s.Reopen())
	got, err := s.Fetch("s7")
	require.NoError(t, err)
	assert.Equal(t, "d3f5s7", got)
}

type countingHandle struct {
	Handle
	closed *int
}

func (h countingHandle) Close() error {
	*h.closed++
	return h.Handle.Close()
}
