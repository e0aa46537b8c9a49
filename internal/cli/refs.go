package cli

import (
	"github.com/spf13/cobra"

	"mfdb/internal/writers"
	"mfdb/pkg/api"
)

// NewRefsCommand creates the refs command.
func NewRefsCommand(rootOpts *RootOptions) *cobra.Command {
	var paths bool
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "List stored accessions and their lengths",
		Long: `List every stored sequence in search order: the files in source order and
each file's sequences in file order. Accessions stored in several files
are listed once per file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := rootOpts.cfg.Format
			if err := checkFormat(writers.References, format); err != nil {
				return err
			}
			s, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			var out []api.ReferenceV1
			for _, f := range s.Files() {
				lengths := f.Lengths()
				for i, ac := range f.References() {
					r := api.ReferenceV1{Accession: ac, Length: lengths[i]}
					if paths {
						r.Path = f.Path()
					}
					out = append(out, r)
				}
			}
			return write(cmd, writers.References, format, out)
		},
	}
	cmd.Flags().BoolVar(&paths, "paths", false, "include the file of each sequence")
	return cmd
}
