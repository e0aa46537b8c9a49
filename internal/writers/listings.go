package writers

import (
	"fmt"
	"io"

	"mfdb/internal/jsonlutil"
	"mfdb/internal/jsonutil"
	"mfdb/pkg/api"
)

// Locations renders where-is results.
var Locations = newRegistry[api.LocationV1]("location")

// References renders the reference listing.
var References = newRegistry[api.ReferenceV1]("reference")

// Summaries renders index summaries.
var Summaries = newRegistry[api.IndexSummaryV1]("summary")

func init() {
	Locations.Register(FormatText, func(w io.Writer, list []api.LocationV1) error {
		for _, l := range list {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", l.Accession, l.Path); err != nil {
				return err
			}
		}
		return nil
	})
	Locations.Register(FormatJSON, func(w io.Writer, list []api.LocationV1) error {
		return jsonutil.EncodeList(w, list)
	})
	Locations.Register(FormatJSONL, func(w io.Writer, list []api.LocationV1) error {
		return jsonlutil.Write(w, list, IsBrokenPipe)
	})

	References.Register(FormatText, func(w io.Writer, list []api.ReferenceV1) error {
		for _, r := range list {
			var err error
			if r.Path != "" {
				_, err = fmt.Fprintf(w, "%s\t%d\t%s\n", r.Accession, r.Length, r.Path)
			} else {
				_, err = fmt.Fprintf(w, "%s\t%d\n", r.Accession, r.Length)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	References.Register(FormatJSON, func(w io.Writer, list []api.ReferenceV1) error {
		return jsonutil.EncodeList(w, list)
	})
	References.Register(FormatJSONL, func(w io.Writer, list []api.ReferenceV1) error {
		return jsonlutil.Write(w, list, IsBrokenPipe)
	})

	Summaries.Register(FormatText, func(w io.Writer, list []api.IndexSummaryV1) error {
		for _, s := range list {
			for _, f := range s.PerFile {
				if _, err := fmt.Fprintf(w, "%s\t%d\n", f.Path, f.Sequences); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w,
				"files=%d references=%d accessions=%d collisions=%d meta_index=%t\n",
				s.Files, s.References, s.Accessions, s.Collisions, s.MetaIndex,
			); err != nil {
				return err
			}
		}
		return nil
	})
	Summaries.Register(FormatJSON, func(w io.Writer, list []api.IndexSummaryV1) error {
		if len(list) == 1 {
			return jsonutil.EncodePretty(w, list[0])
		}
		return jsonutil.EncodeList(w, list)
	})
}
