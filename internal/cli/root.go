// Package cli implements the mfdb command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mfdb/internal/config"
	"mfdb/internal/logging"
	"mfdb/internal/version"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath   string
	Sources      []string
	Suffixes     []string
	MetaIndex    bool
	NoWriteIndex bool
	Format       string
	LogLevel     string
	LogJSON      bool

	cfg    config.Config
	logger *zap.Logger
}

// NewRootCommand creates the root command for the mfdb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mfdb",
		Short: "mfdb - many indexed FASTA files as one accession-keyed store",
		Long: `mfdb opens FASTA files and directories of FASTA files, indexes every
accession they hold, and serves whole sequences or zero-based half-open
ranges by accession.

Sources are searched in the order given; when an accession is stored in
several files the first one wins. Missing .fai indexes are built on open
and written beside the data. BGZF compressed files (bgzip) are supported.`,
		Example: `  mfdb -s refs/ fetch NC_000913.3 --start 100 --end 200
  mfdb -s refs/ -m -o fasta fetch NP_001005405.1
  mfdb --config mfdb.yaml refs`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "YAML config file; flags override its values")
	pf.StringArrayVarP(&opts.Sources, "source", "s", nil, "FASTA file or directory (repeatable, searched in order)")
	pf.StringSliceVar(&opts.Suffixes, "suffix", nil, "file suffixes kept from directories (default .fa,.fasta,.faa,.fna and their .bgz/.gz forms)")
	pf.BoolVarP(&opts.MetaIndex, "meta-index", "m", false, "also resolve accessions embedded after ref| and gb| tags")
	pf.BoolVar(&opts.NoWriteIndex, "no-write-index", false, "keep newly built .fai indexes in memory only")
	pf.StringVarP(&opts.Format, "format", "o", "text", fmt.Sprintf("output format %v", config.Formats))
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	pf.BoolVar(&opts.LogJSON, "log-json", false, "write logs as JSON lines")

	cmd.AddCommand(NewFetchCommand(opts))
	cmd.AddCommand(NewWhereCommand(opts))
	cmd.AddCommand(NewRefsCommand(opts))
	cmd.AddCommand(NewIndexCommand(opts))

	return cmd
}

// resolve merges flags over the config file and builds the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		c, err := config.Load(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitUsage, "invalid config", err)
		}
		cfg = c
	}

	f := cmd.Flags()
	if f.Changed("source") {
		cfg.Sources = o.Sources
	}
	if f.Changed("suffix") {
		cfg.Suffixes = o.Suffixes
	}
	if f.Changed("meta-index") {
		cfg.MetaIndex = o.MetaIndex
	}
	if f.Changed("no-write-index") {
		cfg.WriteIndex = !o.NoWriteIndex
	}
	if f.Changed("format") {
		cfg.Format = o.Format
	}
	if f.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitUsage, "invalid options", err)
	}

	log, err := logging.New(cfg.LogLevel, o.LogJSON, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitUsage, "invalid options", err)
	}
	o.cfg, o.logger = cfg, log
	return nil
}
