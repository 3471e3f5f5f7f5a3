package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DataDir    string // overrides config data_dir
	Database   string // overrides config database
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the lawbook CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lawbook",
		Short: "lawbook - a catalog of mathematical laws",
		Long: `A local catalog of named mathematical laws, each with a formula and a
subject section. Names are matched case-insensitively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to TOML config file (default ./lawbook.toml if present)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "catalog data directory (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "catalog database file (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewSetFormulaCommand(opts))
	cmd.AddCommand(NewSetSectionCommand(opts))
	cmd.AddCommand(NewRenameCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
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
