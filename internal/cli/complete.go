package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lawbook/internal/store"
)

// completeLawNames completes the first positional argument with stored
// law names, matching the typed prefix ignoring letter case.
func completeLawNames(opts *RootOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		// Completion output goes to the shell, so nothing is rendered or
		// logged here; any failure just disables completion.
		cfg, err := resolveConfig(opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		// Pressing tab must not create a catalog.
		path := cfg.DatabasePath()
		if _, err := os.Stat(path); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer st.Close()

		names, err := st.ListNames(commandContext(cmd))
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return matchPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// matchPrefix returns the names whose normalized form starts with the
// normalized prefix.
func matchPrefix(names []string, prefix string) []string {
	key := store.NormalizeName(prefix)
	out := []string{}
	for _, name := range names {
		if strings.HasPrefix(store.NormalizeName(name), key) {
			out = append(out, name)
		}
	}
	return out
}
