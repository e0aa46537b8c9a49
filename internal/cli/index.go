package cli

import (
	"github.com/spf13/cobra"

	"mfdb/internal/writers"
	"mfdb/pkg/api"
)

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	var files bool
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build missing .fai indexes and summarize the store",
		Long: `Open every source, building and writing any missing .fai index, and
report how many files, sequences and accessions the store holds.
Collisions count accessions dropped because an earlier file already
provided them. Run with --log-level info to see each index built.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := rootOpts.cfg.Format
			if err := checkFormat(writers.Summaries, format); err != nil {
				return err
			}
			s, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.Stats()
			if err != nil {
				return classify(err)
			}
			sum := api.IndexSummaryV1{
				Files:      st.Files,
				References: st.References,
				Accessions: st.Accessions,
				Collisions: st.Collisions,
				MetaIndex:  st.MetaIndex,
			}
			if files {
				for _, f := range s.Files() {
					fs := api.FileSummaryV1{Path: f.Path(), Sequences: len(f.References())}
					if c, ok := f.Handle().(interface{ Compressed() bool }); ok {
						fs.Compressed = c.Compressed()
					}
					sum.PerFile = append(sum.PerFile, fs)
				}
			}
			return write(cmd, writers.Summaries, format, []api.IndexSummaryV1{sum})
		},
	}
	cmd.Flags().BoolVar(&files, "files", false, "also list each file with its sequence count")
	return cmd
}
