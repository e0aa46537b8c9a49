package cli

import (
	"github.com/spf13/cobra"

	"mfdb/internal/writers"
	"mfdb/pkg/api"
)

// NewWhereCommand creates the where command.
func NewWhereCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "where <accession>...",
		Short: "List every file storing an accession",
		Long: `List, in search order, every file storing each accession under its own
name. The first file listed is the one fetch reads from. An accession
known only through the meta index lists the files storing its primary.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := rootOpts.cfg.Format
			if err := checkFormat(writers.Locations, format); err != nil {
				return err
			}
			s, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			var out []api.LocationV1
			for _, ac := range args {
				locs, err := s.WhereIs(ac)
				if err != nil {
					return classify(err)
				}
				for _, l := range locs {
					out = append(out, api.LocationV1{Accession: ac, Path: l.Path})
				}
			}
			return write(cmd, writers.Locations, format, out)
		},
	}
}
