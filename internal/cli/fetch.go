package cli

import (
	"github.com/spf13/cobra"

	"mfdb/internal/writers"
	"mfdb/pkg/api"
	"mfdb/pkg/mfdb"
)

type fetchOptions struct {
	start      int
	end        int
	reverse    bool
	withSource bool
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &fetchOptions{}
	cmd := &cobra.Command{
		Use:   "fetch <accession>...",
		Short: "Print sequences or ranges by accession",
		Long: `Print the sequence stored under each accession.

Coordinates are zero-based and half-open: --start 0 --end 2 prints the
first two residues. An end past the sequence is truncated. With --reverse
the range is printed back to front (residues are not complemented).

Nothing is printed unless every accession resolves.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, rootOpts, opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.start, "start", 0, "zero-based start")
	cmd.Flags().IntVar(&opts.end, "end", mfdb.ToEnd, "exclusive end; -1 for the end of the sequence")
	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "reverse the fetched range")
	cmd.Flags().BoolVar(&opts.withSource, "with-source", false, "report the file each sequence is read from (json formats)")
	return cmd
}

func runFetch(cmd *cobra.Command, rootOpts *RootOptions, opts *fetchOptions, accessions []string) error {
	format := rootOpts.cfg.Format
	if err := checkFormat(writers.Sequences, format); err != nil {
		return err
	}
	s, err := rootOpts.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	step := 1
	if opts.reverse {
		step = -1
	}
	out := make([]api.SequenceV1, 0, len(accessions))
	for _, ac := range accessions {
		p, err := s.Get(ac)
		if err != nil {
			return classify(err)
		}
		seq, err := p.SliceStep(opts.start, opts.end, step)
		if err != nil {
			return classify(err)
		}
		n, err := p.Len()
		if err != nil {
			return classify(err)
		}
		primary, err := s.Resolve(ac)
		if err != nil {
			return classify(err)
		}
		end := opts.end
		if end == mfdb.ToEnd || end > n {
			end = n
		}
		v := api.SequenceV1{
			Accession: ac,
			Primary:   primary,
			Start:     opts.start,
			End:       end,
			Length:    n,
			Reverse:   opts.reverse,
			Seq:       seq,
		}
		if opts.withSource {
			loc, err := s.Locate(ac)
			if err != nil {
				return classify(err)
			}
			v.Source = loc.Path
		}
		out = append(out, v)
	}
	return write(cmd, writers.Sequences, format, out)
}
