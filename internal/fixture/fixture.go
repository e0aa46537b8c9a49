// Package fixture writes small FASTA trees for tests.
//
// The layout mirrors a typical multi-release sequence directory:
//
//	d1/f1.fasta  s1 s2
//	d1/f2.fasta  s3 s4
//	d2/f3.fa     s1 s5
//	d2/f4.fa     s3 s6
//	ncbi/f1.human.protein.small.faa  two gi|..|ref|..| proteins
//	ncbi/f2.human.rna.small.fna      two ref transcripts, one gb record
//
// Sequences in d1/d2 spell their own location (d1f1s1 and so on) so a
// fetch result names the file it came from.
package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biogo/hts/bgzf"
)

// LineWidth is the residue count per FASTA line written by this package.
const LineWidth = 60

// Record is one FASTA entry.
type Record struct {
	Name string
	Seq  string
}

// NCBI accessions and sequences.
const (
	NP001005405    = "gi|53292629|ref|NP_001005405.1|"
	NP001005405Seq = "MGCCGCSGGCGSGCGGCGSGSGGCGSGCGGCGSSCCVPICCCKPVCCCVPACSCSSCGSCGGSKGGCGSCGSSKGGCGSCGCSQSNCCKPCCSSSGCGSFCCQSSCSKPCCCQSSCCQSSCCKPCCCQSSCCQSSCFKPCCCQSSCCVPVCCQCKI"

	NP001004713    = "gi|52317162|ref|NP_001004713.1|"
	NP001004713Seq = "MMFPCDVENWCTHCDQQDIDVQCWEIWCWWPCICVFLQFVEWLVGEWWHNEVDWCYHSVQMRWRNLIGIDWLTSMRLYDETQGMFSQCDVWMMNY"

	NM001005405    = "gi|123173798|ref|NM_001005405.2|"
	NM001005405Seq = "TTAAGTAAGTGTGATGCATACGCCTTTACTTGCTGTGTCCACCCCATCGGACTGGCATTTTTATTACACTCAGAAACAGAACTCGGGTAATTTTGACAGGTCACGCAGAGGCGCGCCCTCCTGAAGTGCGTGGACACTCGCTATGAATCT"

	NM001004713    = "gi|52317161|ref|NM_001004713.1|"
	NM001004713Seq = "CTGATTTACCCACTCTGCCAAACTCCAGCGCGGTCAGTTCCATCACCCTAAGTAACCGAATAATGCGTTCGCTCTATTGACTACGACGCGCTCATTCCCTTGTCGGAGAGTTATGGAACAAGGACGCTGTCTG"

	AF233079    = "gi|7108402|gb|AF233079.1|"
	AF233079Seq = "ACGTTGCAACGTTGCAACGTTGCAACGTTGCAACGTTGCAACGTTGCA"
)

// Files lists the fixture tree in write order, keyed by slash path.
var Files = []struct {
	Path    string
	Records []Record
}{
	{"d1/f1.fasta", []Record{{"s1", "d1f1s1"}, {"s2", "d1f1s2"}}},
	{"d1/f2.fasta", []Record{{"s3", "d1f2s3"}, {"s4", "d1f2s4"}}},
	{"d2/f3.fa", []Record{{"s1", "d2f3s1"}, {"s5", "d2f3s5"}}},
	{"d2/f4.fa", []Record{{"s3", "d2f4s3"}, {"s6", "d2f4s6"}}},
	{"ncbi/f1.human.protein.small.faa", []Record{
		{NP001005405, NP001005405Seq},
		{NP001004713, NP001004713Seq},
	}},
	{"ncbi/f2.human.rna.small.fna", []Record{
		{NM001005405, NM001005405Seq},
		{NM001004713, NM001004713Seq},
		{AF233079, AF233079Seq},
	}},
}

// Format renders records as FASTA wrapped at LineWidth.
func Format(recs ...Record) string {
	var b strings.Builder
	for _, r := range recs {
		b.WriteString(">" + r.Name + "\n")
		for s := r.Seq; len(s) > 0; {
			n := min(LineWidth, len(s))
			b.WriteString(s[:n] + "\n")
			s = s[n:]
		}
	}
	return b.String()
}

// WriteTree writes every fixture file under dir and returns dir.
func WriteTree(tb testing.TB, dir string) string {
	tb.Helper()
	for _, f := range Files {
		WriteFASTA(tb, filepath.Join(dir, filepath.FromSlash(f.Path)), f.Records...)
	}
	return dir
}

// Tree writes the fixture tree into a fresh temporary directory.
func Tree(tb testing.TB) string {
	tb.Helper()
	return WriteTree(tb, tb.TempDir())
}

// WriteFASTA writes a plain FASTA file, creating parent directories.
func WriteFASTA(tb testing.TB, path string, recs ...Record) string {
	tb.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(Format(recs...)), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteBGZF writes BGZF compressed text. Each chunk is flushed into its
// own block, so splitting a record across chunks makes reads cross block
// boundaries.
func WriteBGZF(tb testing.TB, path string, chunks ...string) string {
	tb.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir: %v", err)
	}
	fh, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	bw := bgzf.NewWriter(fh, 1)
	for _, c := range chunks {
		if _, err := bw.Write([]byte(c)); err != nil {
			tb.Fatalf("write bgzf: %v", err)
		}
		if err := bw.Flush(); err != nil {
			tb.Fatalf("flush bgzf: %v", err)
		}
	}
	if err := bw.Close(); err != nil {
		tb.Fatalf("close bgzf: %v", err)
	}
	if err := fh.Close(); err != nil {
		tb.Fatalf("close file: %v", err)
	}
	return path
}
