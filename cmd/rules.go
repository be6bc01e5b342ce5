package cmd

import (
	"fmt"
	"io"

	"ezcode/pkg/editable"

	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rules",
		Short:             "Print the editable-file rules",
		PersistentPreRunE: skipSetup,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			include, exclude := editable.Rules()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Exclude (checked first):")
			printRules(out, exclude)
			fmt.Fprintln(out, "Include:")
			printRules(out, include)
			return nil
		},
	}
}

func printRules(w io.Writer, rules []editable.Rule) {
	for _, r := range rules {
		fmt.Fprintf(w, "  %-18s %s", r.Name, r.Pattern)
		if r.Except != nil {
			fmt.Fprintf(w, " except %s", r.Except)
		}
		fmt.Fprintln(w)
	}
}
