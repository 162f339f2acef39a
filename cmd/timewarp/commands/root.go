// SPDX-License-Identifier: MIT

// Package commands implements the timewarp CLI commands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/timewarp/config"
)

// Build information, set with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// globals holds the persistent flags and the state derived from them in
// PersistentPreRunE.
type globals struct {
	configPath string
	verbose    bool
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the timewarp command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "timewarp",
		Short: "Dynamic Time Warping alignment of numeric sequences",
		Long: `timewarp aligns two numeric sequences with Dynamic Time Warping.

Commands:
  align     Align two sequences (or pair files) and print distance and path
  serve     Run the HTTP alignment service
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default ./timewarp.yaml)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&g.logFormat, "log-format", "", "log format: text or json (overrides config)")

	root.AddCommand(newAlignCommand(g))
	root.AddCommand(newServeCommand(g))
	root.AddCommand(newVersionCommand())

	return root
}

// load reads the configuration and applies the global flag overrides.
func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.verbose {
		cfg.Logging.Level = "debug"
	}
	if g.logFormat != "" {
		cfg.Logging.Format = g.logFormat
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	g.cfg = cfg
	g.logger = config.NewLogger(cfg.Logging, cmd.ErrOrStderr())

	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// no config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timewarp %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}
