package writers

import (
	"fmt"
	"io"

	"mfdb/internal/jsonlutil"
	"mfdb/internal/jsonutil"
	"mfdb/pkg/api"
)

// LineWidth is the residue count per FASTA output line.
const LineWidth = 60

// Sequences renders fetched sequences.
var Sequences = newRegistry[api.SequenceV1]("sequence")

func init() {
	Sequences.Register(FormatText, func(w io.Writer, list []api.SequenceV1) error {
		for _, s := range list {
			if _, err := fmt.Fprintln(w, s.Seq); err != nil {
				return err
			}
		}
		return nil
	})
	Sequences.Register(FormatJSON, func(w io.Writer, list []api.SequenceV1) error {
		return jsonutil.EncodeList(w, list)
	})
	Sequences.Register(FormatJSONL, func(w io.Writer, list []api.SequenceV1) error {
		return jsonlutil.Write(w, list, IsBrokenPipe)
	})
	Sequences.Register(FormatFASTA, WriteFASTA)
}

// FASTAHeader returns the header line for s without the leading '>'.
func FASTAHeader(s api.SequenceV1) string {
	h := fmt.Sprintf("%s start=%d end=%d len=%d", s.Accession, s.Start, s.End, len(s.Seq))
	if s.Reverse {
		h += " strand=-"
	}
	return h
}

// WriteFASTA writes each sequence as a FASTA record wrapped at LineWidth.
func WriteFASTA(w io.Writer, list []api.SequenceV1) error {
	for _, s := range list {
		if _, err := fmt.Fprintf(w, ">%s\n", FASTAHeader(s)); err != nil {
			return err
		}
		for seq := s.Seq; len(seq) > 0; {
			n := min(LineWidth, len(seq))
			if _, err := io.WriteString(w, seq[:n]+"\n"); err != nil {
				return err
			}
			seq = seq[n:]
		}
	}
	return nil
}
