package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lawbook/internal/errors"
	"github.com/roach88/lawbook/internal/store"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Formula string
	Section string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new law",
		Long: `Add a new law to the catalog.

Fails with "law already exists" if a law with the same name, ignoring
letter case, is already stored.

Example:
  lawbook add "Newton's Second Law" --formula "F = m*a" --section Mechanics`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts.RootOptions, cmd, func(s *session) error {
				law := store.Law{Name: args[0], Formula: opts.Formula, Section: opts.Section}
				if err := s.store.Add(s.ctx, law); err != nil {
					return s.outcome(err)
				}
				return s.out.Report(fmt.Sprintf("Added %q\n", law.Name), law)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Formula, "formula", "", "formula of the law")
	cmd.Flags().StringVar(&opts.Section, "section", "", "mathematics section of the law")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a law",
		Long: `Show the name, formula and section of a law.

The name is matched ignoring letter case; the stored casing is printed.`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: completeLawNames(rootOpts),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session) error {
				law, err := findLaw(s, args[0])
				if err != nil {
					return s.outcome(err)
				}
				return s.out.Report(formatLaw(law), law)
			})
		},
	}

	return cmd
}

// findLaw returns the stored law matching name, or ErrNotFound.
func findLaw(s *session, name string) (store.Law, error) {
	law, found, err := s.store.FindByName(s.ctx, name)
	if err != nil {
		return store.Law{}, err
	}
	if !found {
		return store.Law{}, errors.Wrapf(store.ErrNotFound, "%q", name)
	}
	return law, nil
}

// formatLaw renders a law as read-only text.
func formatLaw(law store.Law) string {
	return fmt.Sprintf("%s\n%s\nSection: %s\n", law.Name, law.Formula, law.Section)
}

// NewSetFormulaCommand creates the set-formula command.
func NewSetFormulaCommand(rootOpts *RootOptions) *cobra.Command {
	return newFieldCommand(rootOpts, fieldCommand{
		use:   "set-formula <name> <formula>",
		short: "Change the formula of a law",
		field: "formula",
		apply: func(s *session, name, value string) error {
			return s.store.UpdateFormula(s.ctx, name, value)
		},
	})
}

// NewSetSectionCommand creates the set-section command.
func NewSetSectionCommand(rootOpts *RootOptions) *cobra.Command {
	return newFieldCommand(rootOpts, fieldCommand{
		use:   "set-section <name> <section>",
		short: "Change the mathematics section of a law",
		field: "section",
		apply: func(s *session, name, value string) error {
			return s.store.UpdateSection(s.ctx, name, value)
		},
	})
}

type fieldCommand struct {
	use   string
	short string
	field string
	apply func(s *session, name, value string) error
}

func newFieldCommand(rootOpts *RootOptions, fc fieldCommand) *cobra.Command {
	return &cobra.Command{
		Use:   fc.use,
		Short: fc.short,
		Long: fmt.Sprintf(`%s.

The law is matched ignoring letter case. Fails with "law not found" if no
law matches; nothing is changed in that case.`, fc.short),
		Args:              cobra.ExactArgs(2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: completeLawNames(rootOpts),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session) error {
				if err := fc.apply(s, args[0], args[1]); err != nil {
					return s.outcome(err)
				}
				// Report the stored casing, as show does.
				law, err := findLaw(s, args[0])
				if err != nil {
					return s.outcome(err)
				}
				return s.out.Report(fmt.Sprintf("Updated %s of %q\n", fc.field, law.Name), law)
			})
		},
	}
}

// NewRenameCommand creates the rename command.
func NewRenameCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a law",
		Long: `Rename a law.

Fails with "law not found" if no law matches old-name, or with "law already
exists" if a different law already matches new-name. Changing only the
letter case of a name is allowed.`,
		Args:              cobra.ExactArgs(2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: completeLawNames(rootOpts),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session) error {
				if err := s.store.Rename(s.ctx, args[0], args[1]); err != nil {
					return s.outcome(err)
				}
				return s.out.Report(
					fmt.Sprintf("Renamed %q to %q\n", args[0], args[1]),
					map[string]string{"old_name": args[0], "name": args[1]},
				)
			})
		},
	}

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "delete <name>",
		Short:             "Delete a law",
		Long:              `Permanently delete a law. The name is matched ignoring letter case.`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: completeLawNames(rootOpts),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session) error {
				law, err := findLaw(s, args[0])
				if err != nil {
					return s.outcome(err)
				}
				if err := s.store.Delete(s.ctx, law.Name); err != nil {
					return s.outcome(err)
				}
				return s.out.Report(
					fmt.Sprintf("Deleted %q\n", law.Name),
					map[string]string{"name": law.Name},
				)
			})
		},
	}

	return cmd
}

// withSession opens the catalog, runs fn and closes the catalog on every
// exit path.
func withSession(opts *RootOptions, cmd *cobra.Command, fn func(s *session) error) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
