package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mfdb/internal/cliutil"
	"mfdb/internal/writers"
	"mfdb/pkg/mfdb"
)

func (o *RootOptions) openStore() (*mfdb.Store, error) {
	if len(o.cfg.Sources) == 0 {
		return nil, NewExitError(ExitUsage, "no sources: pass --source or set sources in --config")
	}
	sources, err := cliutil.ExpandGlobs(o.cfg.Sources)
	if err != nil {
		return nil, WrapExitError(ExitUsage, "", err)
	}
	opts := []mfdb.Option{
		mfdb.WithMetaIndex(o.cfg.MetaIndex),
		mfdb.WithIndexWriting(o.cfg.WriteIndex),
		mfdb.WithLogger(o.logger),
	}
	if len(o.cfg.Suffixes) > 0 {
		opts = append(opts, mfdb.WithSuffixes(o.cfg.Suffixes...))
	}
	s, err := mfdb.Open(sources, opts...)
	if err != nil {
		return nil, classify(err)
	}
	return s, nil
}

func checkFormat[T any](reg *writers.Registry[T], format string) error {
	if reg.Supports(format) {
		return nil
	}
	return NewExitError(ExitUsage, fmt.Sprintf("format %q is not available for this command (want one of %v)", format, reg.Formats()))
}

func write[T any](cmd *cobra.Command, reg *writers.Registry[T], format string, list []T) error {
	if err := writers.IgnoreBrokenPipe(reg.Write(format, cmd.OutOrStdout(), list)); err != nil {
		return WrapExitError(ExitIO, "write output", err)
	}
	return nil
}
