package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tenniscalc/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DBPath     string // overrides [store] path when set

	// Config is loaded in the root command's pre-run. Commands built on
	// their own (tests) fall back to config.DefaultConfig.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tenniscalc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tenniscalc",
		Short: "Tennis match scoring calculator",
		Long: `Score tennis matches from point-by-point records and answer queries.

Match files are ingested into a tournament that persists between runs.
Queries report a match's score or a player's games won and lost.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultPath, "path to TOML config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to tournament database (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewProcessCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// load reads the config file, applies flag overrides and installs the
// logger. Flags given explicitly win over config values.
func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return reportError(o.formatter(cmd), &LoadError{Code: ErrCodeConfig, Message: "failed to load config", Err: err})
	}
	o.Config = cfg

	if !cmd.Flags().Changed("format") {
		o.Format = cfg.Output.Format
	}
	if !isValidFormat(o.Format) {
		format := o.Format
		o.Format = "text"
		return reportError(o.formatter(cmd), &LoadError{
			Code:    ErrCodeGeneric,
			Message: fmt.Sprintf("invalid format %q: must be one of %v", format, ValidFormats),
		})
	}

	level := cfg.Log.Level
	if o.Verbose {
		level = "debug"
	}
	return setupLogging(cmd.ErrOrStderr(), level)
}

// config returns the loaded config or the defaults.
func (o *RootOptions) config() *config.Config {
	if o.Config == nil {
		return config.DefaultConfig()
	}
	return o.Config
}

// storePath returns the --db flag, or the configured store path.
func (o *RootOptions) storePath() string {
	if o.DBPath != "" {
		return o.DBPath
	}
	return o.config().Store.Path
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
