package cli

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Long bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List law names",
		Long: `List the names of all stored laws in storage order.

With --long, formula and section are printed as well.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts.RootOptions, cmd, func(s *session) error {
				if opts.Long {
					return listLaws(s)
				}
				return listNames(s)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Long, "long", "l", false, "include formula and section")

	return cmd
}

func listNames(s *session) error {
	names, err := s.store.ListNames(s.ctx)
	if err != nil {
		return s.outcome(err)
	}

	var buf bytes.Buffer
	for _, name := range names {
		fmt.Fprintln(&buf, name)
	}
	return s.out.Report(buf.String(), names)
}

func listLaws(s *session) error {
	laws, err := s.store.ListLaws(s.ctx)
	if err != nil {
		return s.outcome(err)
	}

	var buf bytes.Buffer
	if len(laws) > 0 {
		tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tFORMULA\tSECTION")
		for _, law := range laws {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", law.Name, law.Formula, law.Section)
		}
		if err := tw.Flush(); err != nil {
			return s.outcome(err)
		}
	}
	return s.out.Report(buf.String(), laws)
}
