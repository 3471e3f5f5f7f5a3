package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/lawbook/internal/catalogfile"
	"github.com/roach88/lawbook/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	SkipExisting bool
}

// importSummary is the JSON payload of a successful import.
type importSummary struct {
	Added   int      `json:"added"`
	Skipped []string `json:"skipped"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import laws from a YAML or CUE catalog file",
		Long: `Import laws from a catalog file (.yaml, .yml or .cue).

The import is all-or-nothing: if any name already exists (ignoring letter
case) nothing is imported, unless --skip-existing is given.

Example:
  lawbook import laws.yaml
  lawbook import laws.cue --skip-existing`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipExisting, "skip-existing", false, "skip laws whose name already exists")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	// Read the file before opening the catalog so a bad file never
	// touches storage.
	doc, err := catalogfile.ReadFile(path)
	if err != nil {
		return renderOutcome(newFormatter(opts.RootOptions, cmd), err)
	}

	return withSession(opts.RootOptions, cmd, func(s *session) error {
		result, err := s.store.Import(s.ctx, doc.Laws(), store.ImportOptions{SkipExisting: opts.SkipExisting})
		if err != nil {
			return s.outcome(err)
		}

		summary := importSummary{Added: result.Added, Skipped: result.Skipped}
		if summary.Skipped == nil {
			summary.Skipped = []string{}
		}
		return s.out.Report(
			fmt.Sprintf("Imported %d laws (%d skipped)\n", result.Added, len(result.Skipped)),
			summary,
		)
	})
}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as YAML",
		Long: `Export every law as a YAML catalog file, readable by import.

Writes to stdout unless --output is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts.RootOptions, cmd, func(s *session) error {
				return runExport(opts, s, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *ExportOptions, s *session, stdout io.Writer) error {
	laws, err := s.store.ListLaws(s.ctx)
	if err != nil {
		return s.outcome(err)
	}
	doc := catalogfile.FromLaws(laws)

	if opts.Output == "" {
		if err := catalogfile.EncodeYAML(stdout, doc); err != nil {
			return s.out.fail(ExitCommandError, ErrCodeWriteFailed, "export failed", err)
		}
		return nil
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return s.out.fail(ExitCommandError, ErrCodeWriteFailed, "export failed", err)
	}
	if err := catalogfile.EncodeYAML(f, doc); err != nil {
		f.Close()
		return s.out.fail(ExitCommandError, ErrCodeWriteFailed, "export failed", err)
	}
	if err := f.Close(); err != nil {
		return s.out.fail(ExitCommandError, ErrCodeWriteFailed, "export failed", err)
	}

	return s.out.Report(
		fmt.Sprintf("Exported %d laws to %s\n", len(laws), opts.Output),
		map[string]interface{}{"exported": len(laws), "path": opts.Output},
	)
}
