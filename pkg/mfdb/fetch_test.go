package mfdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfdb/internal/fixture"
)

func TestFetch_WholeAndRange(t *testing.T) {
	dir := fixture.Tree(t)
	s := openT(t, []string{filepath.Join(dir, "d1", "f1.fasta")})

	got, err := s.Fetch("s1")
	require.NoError(t, err)
	assert.Equal(t, "d1f1s1", got)

	got, err = s.FetchRange("s1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "d1", got)
}

func TestFetchRange_EverySubstring(t *testing.T) {
	dir := fixture.Tree(t)
	s := openT(t, []string{filepath.Join(dir, "ncbi")})

	for _, rec := range []fixture.Record{
		{Name: fixture.NP001004713, Seq: fixture.NP001004713Seq},
		{Name: fixture.NM001004713, Seq: fixture.NM001004713Seq},
	} {
		n := len(rec.Seq)
		for i := 0; i <= n; i += 7 {
			for j := i; j <= n; j += 11 {
				got, err := s.FetchRange(rec.Name, i, j)
				require.NoError(t, err)
				require.Equal(t, rec.Seq[i:j], got, "%s[%d:%d]", rec.Name, i, j)
			}
			got, err := s.FetchRange(rec.Name, i, n)
			require.NoError(t, err)
			require.Equal(t, rec.Seq[i:], got)
		}
	}
}

func TestFetch_FirstRegisteredWins(t *testing.T) {
	dir := fixture.Tree(t)
	d1, d2 := filepath.Join(dir, "d1"), filepath.Join(dir, "d2")

	for _, tc := range []struct {
		sources []string
		s1, s3  string
	}{
		{[]string{d1, d2}, "d1f1s1", "d1f2s3"},
		{[]string{d2, d1}, "d2f3s1", "d2f4s3"},
		{[]string{dir}, "d1f1s1", "d1f2s3"},
	} {
		s := openT(t, tc.sources)
		got, err := s.Fetch("s1")
		require.NoError(t, err)
		assert.Equal(t, tc.s1, got)
		got, err = s.Fetch("s3")
		require.NoError(t, err)
		assert.Equal(t, tc.s3, got)
	}
}

func TestFetch_MetaIndex(t *testing.T) {
	dir := filepath.Join(fixture.Tree(t), "ncbi")

	plain := openT(t, []string{dir})
	assert.False(t, plain.Contains("NP_001005405.1"))
	_, err := plain.Fetch("NP_001005405.1")
	assert.ErrorIs(t, err, ErrNotFound)

	s := openT(t, []string{dir}, WithMetaIndex(true))
	for primary, secondary := range map[string]string{
		fixture.NP001005405: "NP_001005405.1",
		fixture.NP001004713: "NP_001004713.1",
		fixture.NM001005405: "NM_001005405.2",
		fixture.NM001004713: "NM_001004713.1",
		fixture.AF233079:    "AF233079.1",
	} {
		want, err := s.Fetch(primary)
		require.NoError(t, err)
		got, err := s.Fetch(secondary)
		require.NoError(t, err)
		assert.Equal(t, want, got, secondary)

		p, err := s.Resolve(secondary)
		require.NoError(t, err)
		assert.Equal(t, primary, p)
	}

	got, err := s.FetchRange("NP_001005405.1", 10, 20)
	require.NoError(t, err)
	assert.Equal(t, fixture.NP001005405Seq[10:20], got)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 10, st.Accessions)
	assert.True(t, st.MetaIndex)
}

func TestFetch_PrimaryTakesPrecedenceOverSecondary(t *testing.T) {
	dir := t.TempDir()
	early := fixture.WriteFASTA(t, filepath.Join(dir, "a.fa"),
		fixture.Record{Name: "gi|1|ref|NM_1.1|", Seq: "EARLY"})
	late := fixture.WriteFASTA(t, filepath.Join(dir, "b.fa"),
		fixture.Record{Name: "NM_1.1", Seq: "LATE"})

	s := openT(t, []string{early, late}, WithMetaIndex(true))
	got, err := s.Fetch("NM_1.1")
	require.NoError(t, err)
	assert.Equal(t, "LATE", got)
}

func TestFetch_NotFound(t *testing.T) {
	s := openT(t, []string{fixture.Tree(t)})

	_, err := s.Fetch("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))
	var ae *AccessionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "nope", ae.Accession)

	_, err = s.FetchRange("nope", 0, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Length("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Locate("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, s.Contains("nope"))
}

func TestFetchRange_Bounds(t *testing.T) {
	dir := fixture.Tree(t)
	s := openT(t, []string{filepath.Join(dir, "d1")})

	for _, tc := range []struct {
		start, end int
		want       string
	}{
		{0, ToEnd, "d1f1s1"},
		{2, ToEnd, "f1s1"},
		{0, 100, "d1f1s1"},
		{4, 100, "s1"},
		{6, ToEnd, ""},
		{6, 100, ""},
		{3, 3, ""},
	} {
		got, err := s.FetchRange("s1", tc.start, tc.end)
		require.NoError(t, err, "%d-%d", tc.start, tc.end)
		assert.Equal(t, tc.want, got, "%d-%d", tc.start, tc.end)
	}

	for _, tc := range []struct{ start, end int }{
		{-1, 2},
		{3, 2},
		{7, ToEnd},
		{50, 100},
		{0, -2},
	} {
		_, err := s.FetchRange("s1", tc.start, tc.end)
		require.Error(t, err, "%d-%d", tc.start, tc.end)
		assert.True(t, IsInvalidRange(err))
		var re *RangeError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, 6, re.Length)
	}
}

func TestLengthAndLocate(t *testing.T) {
	dir := fixture.Tree(t)
	s := openT(t, []string{dir}, WithMetaIndex(true))

	n, err := s.Length("NM_001005405.2")
	require.NoError(t, err)
	assert.Equal(t, 150, n)

	loc, err := s.Locate("s3")
	require.NoError(t, err)
	assert.Equal(t, "f2.fasta", filepath.Base(loc.Path))
	assert.True(t, loc.Handle.Has("s3"))
}

func TestWhereIs(t *testing.T) {
	dir := fixture.Tree(t)
	s := openT(t, []string{dir}, WithMetaIndex(true))

	base := func(locs []Location) []string {
		var out []string
		for _, l := range locs {
			out = append(out, filepath.Base(l.Path))
		}
		return out
	}

	locs, err := s.WhereIs("s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"f1.fasta", "f3.fa"}, base(locs))

	locs, err = s.WhereIs("s6")
	require.NoError(t, err)
	assert.Equal(t, []string{"f4.fa"}, base(locs))

	// secondaries report the files holding their primary
	locs, err = s.WhereIs("NP_001005405.1")
	require.NoError(t, err)
	assert.Equal(t, []string{"f1.human.protein.small.faa"}, base(locs))
	assert.True(t, locs[0].Handle.Has(fixture.NP001005405))

	_, err = s.WhereIs("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
